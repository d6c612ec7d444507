package bot

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"tavernbot/internal/game"
	"tavernbot/internal/store"
)

const dailyCooldown = 24 * time.Hour

func (bot *Bot) profile(s *discordgo.Session, i *discordgo.InteractionCreate) (*response, error) {
	p, err := bot.player(i)
	if err != nil {
		return nil, err
	}
	return &response{embed: ProfileEmbed(interactionUser(i), p, bot.currency(i))}, nil
}

func (bot *Bot) inventory(s *discordgo.Session, i *discordgo.InteractionCreate) (*response, error) {
	p, err := bot.player(i)
	if err != nil {
		return nil, err
	}
	return &response{embed: InventoryEmbed(interactionUser(i), p.Inventory), ephemeral: true}, nil
}

func (bot *Bot) daily(s *discordgo.Session, i *discordgo.InteractionCreate) (*response, error) {
	p, err := bot.player(i)
	if err != nil {
		return nil, err
	}
	user := interactionUser(i)

	now := time.Now()
	nextDaily := time.UnixMilli(p.LastDaily).Add(dailyCooldown)
	if now.Before(nextDaily) {
		return nil, game.NewError(game.TagCooldownActive,
			"daily already collected, next one in %s", nextDaily.Sub(now).Round(time.Second))
	}

	// A grown adventurer gets a grown allowance
	reward := game.DailyReward + 10*p.Level
	ok := bot.db.Update(store.KindUser, user.ID, store.Doc{
		"coins":     p.Coins + reward,
		"lastDaily": now.UnixMilli(),
	})
	if !ok {
		return nil, ErrNotPersisted
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Daily allowance",
		Description: fmt.Sprintf("You pocket **%d %s**.", reward, bot.currency(i)),
		Color:       color,
		Footer:      cooldownFooter(dailyCooldown),
	}
	return &response{embed: embed}, nil
}

func (bot *Bot) help(s *discordgo.Session, i *discordgo.InteractionCreate) (*response, error) {
	return &response{embed: HelpEmbed(), ephemeral: true}, nil
}
