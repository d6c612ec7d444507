package game

import (
	"encoding/json"

	"tavernbot/internal/store"
)

// RecordVersion is stamped on every record so future readers can tell
// which shape they are looking at. There is no migration mechanism;
// readers default missing fields instead.
const RecordVersion = 1

const (
	StartingCoins  = 250
	StartingHealth = 100
	StartingMana   = 50
)

// Player is the typed view of a user record. The store keeps the raw
// document; handlers decode it at the boundary with DecodePlayer, which
// fills every missing branch with its default, and write changes back
// as partial documents.
type Player struct {
	ID        string           `json:"id"`
	Version   int              `json:"version"`
	Coins     int              `json:"coins"`
	XP        int              `json:"xp"`
	Level     int              `json:"level"`
	Health    int              `json:"health"`
	MaxHealth int              `json:"maxHealth"`
	Mana      int              `json:"mana"`
	MaxMana   int              `json:"maxMana"`
	Inventory Inventory        `json:"inventory"`
	Skills    map[string]Skill `json:"skills"`
	Cooldowns map[string]int64 `json:"cooldowns"`
	Bank      *Bank            `json:"bank,omitempty"`
	Farm      *Farm            `json:"farm,omitempty"`
	Pet       *Pet             `json:"pet,omitempty"`
	LastDaily int64            `json:"lastDaily"`
	LastSeen  int64            `json:"lastSeen"`
}

// Inventory maps item names to quantities, split by category.
type Inventory struct {
	Materials map[string]int `json:"materials"`
	Items     map[string]int `json:"items"`
	Potions   map[string]int `json:"potions"`
	Equipment map[string]int `json:"equipment"`
}

// Skill tracks progress in one trainable skill.
type Skill struct {
	Level     int `json:"level"`
	XP        int `json:"xp"`
	NextLevel int `json:"nextLevel"`
}

// Bank holds the banking subsystem state.
type Bank struct {
	Balance    int   `json:"balance"`
	LoanAmount int   `json:"loanAmount"`
	LoanDue    int64 `json:"loanDue"`
}

// Farm holds the farming subsystem state.
type Farm struct {
	Plots []Plot `json:"plots"`
}

// Plot is one planted crop.
type Plot struct {
	Crop      string `json:"crop"`
	PlantedAt int64  `json:"plantedAt"`
}

// Pet holds the pet subsystem state.
type Pet struct {
	Name      string `json:"name"`
	Species   string `json:"species"`
	Level     int    `json:"level"`
	Happiness int    `json:"happiness"`
}

// NewPlayer returns the canonical new-account shape. Pure and
// deterministic; the store calls the document form on first access.
func NewPlayer(id string) *Player {
	return &Player{
		ID:        id,
		Version:   RecordVersion,
		Coins:     StartingCoins,
		Level:     1,
		Health:    StartingHealth,
		MaxHealth: StartingHealth,
		Mana:      StartingMana,
		MaxMana:   StartingMana,
		Inventory: NewInventory(),
		Skills:    map[string]Skill{},
		Cooldowns: map[string]int64{},
	}
}

// NewInventory is the default empty inventory.
func NewInventory() Inventory {
	return Inventory{
		Materials: map[string]int{},
		Items:     map[string]int{},
		Potions:   map[string]int{},
		Equipment: map[string]int{},
	}
}

// NewBank is the default banking state for an account that has never
// used the bank.
func NewBank() *Bank {
	return &Bank{}
}

// NewFarm is the default farming state.
func NewFarm() *Farm {
	return &Farm{Plots: []Plot{}}
}

// NewPlayerDoc is the store factory for user records.
func NewPlayerDoc(id string) store.Doc {
	doc, err := encodeDoc(NewPlayer(id))
	if err != nil {
		// NewPlayer is a fixed literal, this cannot happen
		panic(err)
	}
	return doc
}

// DecodePlayer turns a raw user document into the typed view and
// defaults every branch the document is missing. Records written by
// any past version of the bot decode here, that is the whole schema
// evolution story.
func DecodePlayer(doc store.Doc) (*Player, error) {
	var p Player
	if err := decodeDoc(doc, &p); err != nil {
		return nil, err
	}
	p.Normalize()
	return &p, nil
}

// Normalize lazily initializes missing branches. Only structure is
// defaulted here; starting values come from NewPlayer so that a record
// with a legitimate zero is left alone.
func (p *Player) Normalize() {
	if p.Version == 0 {
		p.Version = RecordVersion
	}
	if p.Level == 0 {
		p.Level = 1
	}
	if p.MaxHealth == 0 {
		p.MaxHealth = StartingHealth
	}
	if p.MaxMana == 0 {
		p.MaxMana = StartingMana
	}
	if p.Inventory.Materials == nil {
		p.Inventory.Materials = map[string]int{}
	}
	if p.Inventory.Items == nil {
		p.Inventory.Items = map[string]int{}
	}
	if p.Inventory.Potions == nil {
		p.Inventory.Potions = map[string]int{}
	}
	if p.Inventory.Equipment == nil {
		p.Inventory.Equipment = map[string]int{}
	}
	if p.Skills == nil {
		p.Skills = map[string]Skill{}
	}
	if p.Cooldowns == nil {
		p.Cooldowns = map[string]int64{}
	}
}

// EnsureBank returns the bank branch, creating the default if the
// account has never banked.
func (p *Player) EnsureBank() *Bank {
	if p.Bank == nil {
		p.Bank = NewBank()
	}
	return p.Bank
}

// EnsureFarm returns the farm branch, creating the default if the
// account has never farmed.
func (p *Player) EnsureFarm() *Farm {
	if p.Farm == nil {
		p.Farm = NewFarm()
	}
	return p.Farm
}

// XPForLevel is the experience threshold to advance past the given
// level.
func XPForLevel(level int) int {
	return 100 * level * level
}

// GrantXP adds experience and applies any level ups, returning the
// number of levels gained.
func (p *Player) GrantXP(amount int) int {
	p.XP += amount
	levels := 0
	for p.XP >= XPForLevel(p.Level) {
		p.XP -= XPForLevel(p.Level)
		p.Level++
		levels++
	}
	return levels
}

// SkillXPForLevel is the per-skill experience threshold.
func SkillXPForLevel(level int) int {
	return 50 * level * level
}

// GrantSkillXP adds experience to one skill, applying level ups, and
// returns the updated skill progress.
func (p *Player) GrantSkillXP(name string, amount int) Skill {
	skill, ok := p.Skills[name]
	if !ok {
		skill = Skill{Level: 1, NextLevel: SkillXPForLevel(1)}
	}
	skill.XP += amount
	for skill.XP >= SkillXPForLevel(skill.Level) {
		skill.XP -= SkillXPForLevel(skill.Level)
		skill.Level++
	}
	skill.NextLevel = SkillXPForLevel(skill.Level)
	p.Skills[name] = skill
	return skill
}

func encodeDoc(v any) (store.Doc, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc store.Doc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeDoc(doc store.Doc, v any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// EncodeSkill renders one skill back to document form for a partial
// update.
func EncodeSkill(s Skill) store.Doc {
	return store.Doc{"level": s.Level, "xp": s.XP, "nextLevel": s.NextLevel}
}

// EncodeBank renders the bank branch back to document form.
func EncodeBank(b *Bank) store.Doc {
	return store.Doc{"balance": b.Balance, "loanAmount": b.LoanAmount, "loanDue": b.LoanDue}
}

// EncodeFarm renders the farm branch back to document form. Plots are
// an array, so a merge replaces them wholesale, which is what farming
// handlers rely on.
func EncodeFarm(f *Farm) store.Doc {
	plots := make([]any, len(f.Plots))
	for i, plot := range f.Plots {
		plots[i] = store.Doc{"crop": plot.Crop, "plantedAt": plot.PlantedAt}
	}
	return store.Doc{"plots": plots}
}
