package bot

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/bwmarrin/discordgo"

	"tavernbot/internal/game"
	"tavernbot/internal/store"
)

func (bot *Bot) fish(s *discordgo.Session, i *discordgo.InteractionCreate) (*response, error) {
	p, err := bot.player(i)
	if err != nil {
		return nil, err
	}
	if p.Inventory.Equipment["fishing rod"] < 1 {
		return nil, game.NewError(game.TagInsufficientItems, "no fishing rod, the shop sells them")
	}
	now := time.Now()
	if remaining := game.CooldownRemaining(p, "fish", now); remaining > 0 {
		return nil, game.NewError(game.TagCooldownActive, "the fish need %s to forget you", remaining.Round(time.Second))
	}

	var (
		catch game.Fish
		value int
	)
	bot.roll(func(rng *rand.Rand) { catch, value = game.CatchFish(rng) })

	// The fishing skill fattens the payout a little per level
	skillBefore := p.Skills["fishing"].Level
	value += value * 5 * skillBefore / 100
	skill := p.GrantSkillXP("fishing", catch.XP)
	levelsGained := p.GrantXP(catch.XP / 2)
	game.StartCooldown(p, "fish", game.FishingCooldown, now)

	ok := bot.db.Update(store.KindUser, interactionUser(i).ID, store.Doc{
		"coins":     p.Coins + value,
		"xp":        p.XP,
		"level":     p.Level,
		"skills":    store.Doc{"fishing": game.EncodeSkill(skill)},
		"cooldowns": store.Doc{"fish": p.Cooldowns["fish"]},
	})
	if !ok {
		return nil, ErrNotPersisted
	}

	description := fmt.Sprintf("You land a **%s** and sell it at the dock for **%d %s**.",
		catch.Name, value, bot.currency(i))
	if levelsGained > 0 {
		description += fmt.Sprintf("\nYou reached **level %d**!", p.Level)
	}
	embed := &discordgo.MessageEmbed{
		Title:       "Something bites",
		Description: description,
		Color:       color,
		Footer:      cooldownFooter(game.FishingCooldown),
	}
	return &response{embed: embed}, nil
}
