package game

import "math/rand"

// Outcome rolls take the random source as a parameter so tests can
// seed them.

// Coinflip returns true when the player wins.
func Coinflip(rng *rand.Rand) bool {
	return rng.Intn(2) == 0
}

// Slot symbols, weighted towards the cheap ones.
var slotSymbols = []string{"🍺", "🍺", "🍺", "🧪", "🧪", "🗡️", "🗡️", "💰", "👑"}

// SlotMultipliers maps a tripled symbol to its payout multiplier.
var SlotMultipliers = map[string]int{
	"🍺": 2,
	"🧪": 3,
	"🗡️": 5,
	"💰": 10,
	"👑": 25,
}

// SlotSpin rolls three symbols. The multiplier is zero unless all
// three match; a pair refunds the bet (multiplier one).
func SlotSpin(rng *rand.Rand) ([3]string, int) {
	var reels [3]string
	for i := range reels {
		reels[i] = slotSymbols[rng.Intn(len(slotSymbols))]
	}
	if reels[0] == reels[1] && reels[1] == reels[2] {
		return reels, SlotMultipliers[reels[0]]
	}
	if reels[0] == reels[1] || reels[1] == reels[2] || reels[0] == reels[2] {
		return reels, 1
	}
	return reels, 0
}

// CatchFish draws a species from the rarity-weighted table and rolls
// its value.
func CatchFish(rng *rand.Rand) (Fish, int) {
	total := 0
	for _, fish := range FishTable {
		total += fish.Weight
	}
	roll := rng.Intn(total)
	for _, fish := range FishTable {
		roll -= fish.Weight
		if roll < 0 {
			value := fish.MinValue + rng.Intn(fish.MaxValue-fish.MinValue+1)
			return fish, value
		}
	}
	// Unreachable while the table is non-empty
	last := FishTable[len(FishTable)-1]
	return last, last.MinValue
}

// JobEarnings rolls a wage within the job's range.
func JobEarnings(rng *rand.Rand, job Job) int {
	return job.MinWage + rng.Intn(job.MaxWage-job.MinWage+1)
}

// FightResult is the outcome of one arena fight.
type FightResult struct {
	Won         int  // reward paid out, zero on a loss
	XP          int
	DamageTaken int
	Rounds      int
	Victory     bool
}

// ArenaFight resolves a fight between the player and an opponent. The
// player's power grows with level and combat skill; each round both
// sides trade blows until one drops. The player record is not mutated.
func ArenaFight(rng *rand.Rand, p *Player, o Opponent) FightResult {
	power := 10 + 3*p.Level + 2*p.Skills["combat"].Level
	playerHP := p.Health
	opponentHP := 20 + 10*o.Level

	var result FightResult
	for playerHP > 0 && opponentHP > 0 {
		result.Rounds++
		opponentHP -= 1 + rng.Intn(power)
		if opponentHP <= 0 {
			break
		}
		hit := 1 + rng.Intn(o.Power)
		playerHP -= hit
		result.DamageTaken += hit
	}
	if playerHP > 0 {
		result.Victory = true
		result.Won = o.Reward
		result.XP = o.XP
	} else {
		// A knockout still teaches something
		result.XP = o.XP / 4
		result.DamageTaken = p.Health - 1 // leave the loser at 1 HP
	}
	return result
}
