package bot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"tavernbot/internal/game"
	"tavernbot/internal/store"
)

func (bot *Bot) brew(s *discordgo.Session, i *discordgo.InteractionCreate) (*response, error) {
	options := optionMap(i.ApplicationCommandData().Options)
	recipe, ok := game.Recipes[options.text("potion")]
	if !ok {
		return nil, game.NewError(game.TagUnknownItem, "no recipe for %q", options.text("potion"))
	}
	quantity := options.integer("quantity", 1)
	if quantity < 1 || quantity > 100 {
		return nil, game.NewError(game.TagInvalidQuantity, "cannot brew %d potions", quantity)
	}

	p, err := bot.player(i)
	if err != nil {
		return nil, err
	}
	if p.Level < recipe.Level {
		return nil, game.NewError(game.TagLevelTooLow, "%s potion needs level %d", recipe.Name, recipe.Level)
	}
	cost := recipe.Coins * quantity
	if p.Coins < cost {
		return nil, game.NewError(game.TagInsufficientCoins, "need %d, have %d", cost, p.Coins)
	}

	// Check every material before touching anything
	materialsPatch := store.Doc{}
	for material, perUnit := range recipe.Materials {
		needed := perUnit * quantity
		if p.Inventory.Materials[material] < needed {
			return nil, game.NewError(game.TagInsufficientMaterials,
				"need %d %s, have %d", needed, material, p.Inventory.Materials[material])
		}
		materialsPatch[material] = p.Inventory.Materials[material] - needed
	}

	ok = bot.db.Update(store.KindUser, interactionUser(i).ID, store.Doc{
		"coins": p.Coins - cost,
		"inventory": store.Doc{
			"materials": materialsPatch,
			"potions":   store.Doc{recipe.Name: p.Inventory.Potions[recipe.Name] + quantity},
		},
	})
	if !ok {
		return nil, ErrNotPersisted
	}

	embed := &discordgo.MessageEmbed{
		Title: "The cauldron bubbles",
		Description: fmt.Sprintf("You brew **%d× %s potion** for %d %s.\n*%s*",
			quantity, recipe.Name, cost, bot.currency(i), recipe.Effect),
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Materials used",
				Value:  recipeMaterialLines(recipe, quantity),
				Inline: false,
			},
		},
	}
	return &response{embed: embed}, nil
}

func recipeMaterialLines(recipe game.Recipe, quantity int) string {
	names := make([]string, 0, len(recipe.Materials))
	for name := range recipe.Materials {
		names = append(names, name)
	}
	sort.Strings(names)
	lines := make([]string, len(names))
	for idx, name := range names {
		lines[idx] = fmt.Sprintf("%s ×%d", name, recipe.Materials[name]*quantity)
	}
	return strings.Join(lines, "\n")
}
