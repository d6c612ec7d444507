package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"tavernbot/internal/game"
	"tavernbot/internal/store"
)

func (bot *Bot) farm(s *discordgo.Session, i *discordgo.InteractionCreate) (*response, error) {
	sub, options := subcommand(i.ApplicationCommandData())

	p, err := bot.player(i)
	if err != nil {
		return nil, err
	}
	farm := p.EnsureFarm()
	now := time.Now()

	switch sub {
	case "status":
		return &response{embed: farmEmbed(farm, now), ephemeral: true}, nil

	case "plant":
		crop, ok := game.Crops[options.text("crop")]
		if !ok {
			return nil, game.NewError(game.TagUnknownItem, "no crop called %q", options.text("crop"))
		}
		if len(farm.Plots) >= game.FarmPlots {
			return nil, game.NewError(game.TagPlotsFull, "all %d plots planted", game.FarmPlots)
		}
		if p.Coins < crop.SeedCost {
			return nil, game.NewError(game.TagInsufficientCoins, "seeds cost %d, have %d", crop.SeedCost, p.Coins)
		}

		farm.Plots = append(farm.Plots, game.Plot{Crop: crop.Name, PlantedAt: now.UnixMilli()})
		ok = bot.db.Update(store.KindUser, interactionUser(i).ID, store.Doc{
			"coins": p.Coins - crop.SeedCost,
			"farm":  game.EncodeFarm(farm),
		})
		if !ok {
			return nil, ErrNotPersisted
		}
		embed := &discordgo.MessageEmbed{
			Title: "Seeds in the ground",
			Description: fmt.Sprintf("You plant **%s** for %d %s. Ready in %s.",
				crop.Name, crop.SeedCost, bot.currency(i), crop.GrowTime),
			Color: color,
		}
		return &response{embed: embed}, nil

	case "harvest":
		var (
			remaining []game.Plot
			earnings  int
			harvested []string
		)
		for _, plot := range farm.Plots {
			crop := game.Crops[plot.Crop]
			if now.Sub(time.UnixMilli(plot.PlantedAt)) < crop.GrowTime {
				remaining = append(remaining, plot)
				continue
			}
			earnings += crop.Yield * crop.SellPrice
			harvested = append(harvested, fmt.Sprintf("%s ×%d", crop.Name, crop.Yield))
		}
		if len(harvested) == 0 {
			return nil, game.NewError(game.TagNothingGrowing, "%d plots, none ripe", len(farm.Plots))
		}

		farm.Plots = remaining
		if farm.Plots == nil {
			farm.Plots = []game.Plot{}
		}
		skill := p.GrantSkillXP("farming", 10*len(harvested))
		ok := bot.db.Update(store.KindUser, interactionUser(i).ID, store.Doc{
			"coins":  p.Coins + earnings,
			"farm":   game.EncodeFarm(farm),
			"skills": store.Doc{"farming": game.EncodeSkill(skill)},
		})
		if !ok {
			return nil, ErrNotPersisted
		}
		embed := &discordgo.MessageEmbed{
			Title: "Harvest day",
			Description: fmt.Sprintf("You bring in %s and sell the lot for **%d %s**.",
				strings.Join(harvested, ", "), earnings, bot.currency(i)),
			Color: color,
		}
		return &response{embed: embed}, nil

	default:
		return nil, game.NewError(game.TagUnknownItem, "no farm action %q", sub)
	}
}

func farmEmbed(farm *game.Farm, now time.Time) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Your farm",
		Color: color,
	}
	if len(farm.Plots) == 0 {
		embed.Description = fmt.Sprintf("All %d plots lie fallow.", game.FarmPlots)
		return embed
	}
	for idx, plot := range farm.Plots {
		crop := game.Crops[plot.Crop]
		ready := time.UnixMilli(plot.PlantedAt).Add(crop.GrowTime)
		value := "**ripe**"
		if now.Before(ready) {
			value = fmt.Sprintf("ripe in %s", ready.Sub(now).Round(time.Minute))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("Plot %d: %s", idx+1, plot.Crop),
			Value:  value,
			Inline: true,
		})
	}
	return embed
}
