package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"tavernbot/internal/game"
	"tavernbot/internal/store"
)

func (bot *Bot) shop(s *discordgo.Session, i *discordgo.InteractionCreate) (*response, error) {
	sub, options := subcommand(i.ApplicationCommandData())
	currency := bot.currency(i)

	switch sub {
	case "view":
		return &response{embed: ShopEmbed(currency), ephemeral: true}, nil

	case "buy":
		item, ok := game.ShopItems[options.text("item")]
		if !ok {
			return nil, game.NewError(game.TagUnknownItem, "the shop does not sell %q", options.text("item"))
		}
		quantity := options.integer("quantity", 1)
		if quantity < 1 || quantity > 1000 {
			return nil, game.NewError(game.TagInvalidQuantity, "cannot buy %d", quantity)
		}

		p, err := bot.player(i)
		if err != nil {
			return nil, err
		}
		cost := game.BulkCost(item.Price, quantity)
		if p.Coins < cost {
			return nil, game.NewError(game.TagInsufficientCoins, "need %d, have %d", cost, p.Coins)
		}

		owned := inventoryCategory(&p.Inventory, item.Category)
		ok = bot.db.Update(store.KindUser, interactionUser(i).ID, store.Doc{
			"coins": p.Coins - cost,
			"inventory": store.Doc{
				item.Category: store.Doc{item.Name: owned[item.Name] + quantity},
			},
		})
		if !ok {
			return nil, ErrNotPersisted
		}

		description := fmt.Sprintf("You buy **%d× %s** for **%d %s**.", quantity, item.Name, cost, currency)
		if full := item.Price * quantity; cost < full {
			description += fmt.Sprintf("\nBulk discount saved you %d %s.", full-cost, currency)
		}
		embed := &discordgo.MessageEmbed{
			Title:       "A pleasure doing business",
			Description: description,
			Color:       color,
		}
		return &response{embed: embed}, nil

	default:
		return nil, game.NewError(game.TagUnknownItem, "no shop action %q", sub)
	}
}

func inventoryCategory(inv *game.Inventory, category string) map[string]int {
	switch category {
	case "materials":
		return inv.Materials
	case "potions":
		return inv.Potions
	case "equipment":
		return inv.Equipment
	default:
		return inv.Items
	}
}
