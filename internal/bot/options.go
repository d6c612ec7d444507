package bot

import "github.com/bwmarrin/discordgo"

type optionTable map[string]*discordgo.ApplicationCommandInteractionDataOption

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) optionTable {
	table := make(optionTable, len(options))
	for _, option := range options {
		table[option.Name] = option
	}
	return table
}

func (t optionTable) text(name string) string {
	if option, ok := t[name]; ok {
		return option.StringValue()
	}
	return ""
}

func (t optionTable) integer(name string, fallback int) int {
	if option, ok := t[name]; ok {
		return int(option.IntValue())
	}
	return fallback
}

// subcommand splits a subcommand interaction into its name and nested
// options.
func subcommand(data discordgo.ApplicationCommandInteractionData) (string, optionTable) {
	if len(data.Options) == 0 {
		return "", optionTable{}
	}
	sub := data.Options[0]
	return sub.Name, optionMap(sub.Options)
}
