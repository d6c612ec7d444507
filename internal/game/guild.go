package game

import "tavernbot/internal/store"

// Guild is the typed view of a guild record.
type Guild struct {
	ID          string        `json:"id"`
	Version     int           `json:"version"`
	Settings    GuildSettings `json:"settings"`
	CommandsRun int           `json:"commandsRun"`
	LastSeen    int64         `json:"lastSeen"`
}

// GuildSettings holds per-server configuration.
type GuildSettings struct {
	// Currency is the display name used in embeds for this server.
	Currency string `json:"currency"`
}

// NewGuild returns the canonical shape for a server the bot has never
// seen.
func NewGuild(id string) *Guild {
	return &Guild{
		ID:       id,
		Version:  RecordVersion,
		Settings: GuildSettings{Currency: "coins"},
	}
}

// NewGuildDoc is the store factory for guild records.
func NewGuildDoc(id string) store.Doc {
	doc, err := encodeDoc(NewGuild(id))
	if err != nil {
		panic(err)
	}
	return doc
}

// DecodeGuild turns a raw guild document into the typed view,
// defaulting missing branches.
func DecodeGuild(doc store.Doc) (*Guild, error) {
	var g Guild
	if err := decodeDoc(doc, &g); err != nil {
		return nil, err
	}
	if g.Version == 0 {
		g.Version = RecordVersion
	}
	if g.Settings.Currency == "" {
		g.Settings.Currency = "coins"
	}
	return &g, nil
}
