package bot

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/bwmarrin/discordgo"

	"tavernbot/internal/game"
	"tavernbot/internal/store"
)

func (bot *Bot) gamble(s *discordgo.Session, i *discordgo.InteractionCreate) (*response, error) {
	sub, options := subcommand(i.ApplicationCommandData())

	p, err := bot.player(i)
	if err != nil {
		return nil, err
	}
	bet := options.integer("amount", 0)
	if bet < 1 {
		return nil, game.NewError(game.TagInvalidQuantity, "cannot bet %d", bet)
	}
	if p.Coins < bet {
		return nil, game.NewError(game.TagInsufficientCoins, "bet %d, purse %d", bet, p.Coins)
	}
	currency := bot.currency(i)

	var embed *discordgo.MessageEmbed
	switch sub {
	case "coinflip":
		var won bool
		bot.roll(func(rng *rand.Rand) { won = game.Coinflip(rng) })
		if won {
			p.Coins += bet
			embed = &discordgo.MessageEmbed{
				Title:       "Heads!",
				Description: fmt.Sprintf("You win **%d %s**.", bet, currency),
				Color:       color,
			}
		} else {
			p.Coins -= bet
			embed = &discordgo.MessageEmbed{
				Title:       "Tails.",
				Description: fmt.Sprintf("The house thanks you for **%d %s**.", bet, currency),
				Color:       color,
			}
		}

	case "slots":
		var (
			reels      [3]string
			multiplier int
		)
		bot.roll(func(rng *rand.Rand) { reels, multiplier = game.SlotSpin(rng) })
		payout := bet * multiplier
		p.Coins += payout - bet
		display := strings.Join(reels[:], " | ")
		switch {
		case multiplier > 1:
			embed = &discordgo.MessageEmbed{
				Title:       display,
				Description: fmt.Sprintf("Three of a kind! You collect **%d %s**.", payout, currency),
				Color:       color,
			}
		case multiplier == 1:
			embed = &discordgo.MessageEmbed{
				Title:       display,
				Description: "A pair. Your bet comes back to you.",
				Color:       color,
			}
		default:
			embed = &discordgo.MessageEmbed{
				Title:       display,
				Description: fmt.Sprintf("Nothing lines up. **%d %s** gone.", bet, currency),
				Color:       color,
			}
		}

	default:
		return nil, game.NewError(game.TagUnknownItem, "no game called %q", sub)
	}

	if !bot.db.Update(store.KindUser, interactionUser(i).ID, store.Doc{"coins": p.Coins}) {
		return nil, ErrNotPersisted
	}
	return &response{embed: embed}, nil
}
