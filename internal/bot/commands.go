package bot

import (
	"sort"

	"github.com/bwmarrin/discordgo"

	"tavernbot/internal/game"
)

// commands are registered on startup via bulk overwrite, so this slice
// is the single source of truth for the command surface.
var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "profile",
		Description: "Show your adventurer profile",
	},
	{
		Name:        "inventory",
		Description: "Show everything you are carrying",
	},
	{
		Name:        "daily",
		Description: "Collect your daily allowance",
	},
	{
		Name:        "work",
		Description: "Put in a shift and earn a wage",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "job",
				Description: "The job to work",
				Required:    true,
				Choices:     jobChoices(),
			},
		},
	},
	{
		Name:        "brew",
		Description: "Brew a potion from materials",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "potion",
				Description: "The potion to brew",
				Required:    true,
				Choices:     recipeChoices(),
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "quantity",
				Description: "How many to brew (default 1)",
			},
		},
	},
	{
		Name:        "bank",
		Description: "Banking services",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "balance",
				Description: "Show your account",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "deposit",
				Description: "Deposit coins",
				Options:     []*discordgo.ApplicationCommandOption{amountOption("Amount to deposit")},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "withdraw",
				Description: "Withdraw coins",
				Options:     []*discordgo.ApplicationCommandOption{amountOption("Amount to withdraw")},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "loan",
				Description: "Take out a loan",
				Options:     []*discordgo.ApplicationCommandOption{amountOption("Amount to borrow")},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "repay",
				Description: "Repay your loan",
				Options:     []*discordgo.ApplicationCommandOption{amountOption("Amount to repay")},
			},
		},
	},
	{
		Name:        "arena",
		Description: "Fight in the arena",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "opponent",
				Description: "Who to fight",
				Required:    true,
				Choices:     opponentChoices(),
			},
		},
	},
	{
		Name:        "fish",
		Description: "Cast a line into the river",
	},
	{
		Name:        "farm",
		Description: "Tend your farm",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "status",
				Description: "Show your plots",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "plant",
				Description: "Plant a crop in a free plot",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "crop",
						Description: "The crop to plant",
						Required:    true,
						Choices:     cropChoices(),
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "harvest",
				Description: "Harvest every ripe plot",
			},
		},
	},
	{
		Name:        "gamble",
		Description: "Risk your coins",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "coinflip",
				Description: "Double or nothing",
				Options:     []*discordgo.ApplicationCommandOption{amountOption("Your bet")},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "slots",
				Description: "Spin the slot machine",
				Options:     []*discordgo.ApplicationCommandOption{amountOption("Your bet")},
			},
		},
	},
	{
		Name:        "shop",
		Description: "The item shop",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "view",
				Description: "Browse the wares",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "buy",
				Description: "Buy items, with bulk discounts",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "item",
						Description: "The item to buy",
						Required:    true,
						Choices:     shopChoices(),
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "quantity",
						Description: "How many (default 1)",
					},
				},
			},
		},
	},
	{
		Name:        "market",
		Description: "The player marketplace",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "listings",
				Description: "Browse current listings",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "sell",
				Description: "Put an item up for sale",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "item",
						Description: "The item to sell",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "quantity",
						Description: "How many to sell",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "price",
						Description: "Total asking price",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "buy",
				Description: "Buy a listing by id",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "id",
						Description: "The listing id",
						Required:    true,
					},
				},
			},
		},
	},
	{
		Name:        "train",
		Description: "Train a skill",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "skill",
				Description: "The skill to train",
				Required:    true,
				Choices:     skillChoices(),
			},
		},
	},
	{
		Name:        "help",
		Description: "What this bot can do",
	},
}

func amountOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "amount",
		Description: description,
		Required:    true,
	}
}

func nameChoices(names []string) []*discordgo.ApplicationCommandOptionChoice {
	sort.Strings(names)
	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(names))
	for i, name := range names {
		choices[i] = &discordgo.ApplicationCommandOptionChoice{Name: name, Value: name}
	}
	return choices
}

func jobChoices() []*discordgo.ApplicationCommandOptionChoice {
	names := make([]string, 0, len(game.Jobs))
	for name := range game.Jobs {
		names = append(names, name)
	}
	return nameChoices(names)
}

func recipeChoices() []*discordgo.ApplicationCommandOptionChoice {
	names := make([]string, 0, len(game.Recipes))
	for name := range game.Recipes {
		names = append(names, name)
	}
	return nameChoices(names)
}

func opponentChoices() []*discordgo.ApplicationCommandOptionChoice {
	names := make([]string, 0, len(game.Opponents))
	for name := range game.Opponents {
		names = append(names, name)
	}
	return nameChoices(names)
}

func cropChoices() []*discordgo.ApplicationCommandOptionChoice {
	names := make([]string, 0, len(game.Crops))
	for name := range game.Crops {
		names = append(names, name)
	}
	return nameChoices(names)
}

func shopChoices() []*discordgo.ApplicationCommandOptionChoice {
	names := make([]string, 0, len(game.ShopItems))
	for name := range game.ShopItems {
		names = append(names, name)
	}
	return nameChoices(names)
}

func skillChoices() []*discordgo.ApplicationCommandOptionChoice {
	names := make([]string, 0, len(game.TrainableSkills))
	for name := range game.TrainableSkills {
		names = append(names, name)
	}
	return nameChoices(names)
}
