package bot

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/bwmarrin/discordgo"

	"tavernbot/internal/game"
	"tavernbot/internal/store"
)

func (bot *Bot) work(s *discordgo.Session, i *discordgo.InteractionCreate) (*response, error) {
	options := optionMap(i.ApplicationCommandData().Options)
	job, ok := game.Jobs[options.text("job")]
	if !ok {
		return nil, game.NewError(game.TagUnknownItem, "no job called %q", options.text("job"))
	}

	p, err := bot.player(i)
	if err != nil {
		return nil, err
	}
	if p.Level < job.Level {
		return nil, game.NewError(game.TagLevelTooLow, "%s needs level %d", job.Name, job.Level)
	}
	now := time.Now()
	if remaining := game.CooldownRemaining(p, "work", now); remaining > 0 {
		return nil, game.NewError(game.TagCooldownActive, "still exhausted for %s", remaining.Round(time.Second))
	}

	var wage int
	bot.roll(func(rng *rand.Rand) { wage = game.JobEarnings(rng, job) })
	levelsGained := p.GrantXP(job.XP)
	game.StartCooldown(p, "work", job.Cooldown, now)

	ok = bot.db.Update(store.KindUser, interactionUser(i).ID, store.Doc{
		"coins":     p.Coins + wage,
		"xp":        p.XP,
		"level":     p.Level,
		"cooldowns": store.Doc{"work": p.Cooldowns["work"]},
	})
	if !ok {
		return nil, ErrNotPersisted
	}

	description := fmt.Sprintf("A shift as **%s** earns you **%d %s** and %d XP.",
		job.Name, wage, bot.currency(i), job.XP)
	if levelsGained > 0 {
		description += fmt.Sprintf("\nYou reached **level %d**!", p.Level)
	}
	embed := &discordgo.MessageEmbed{
		Title:       "Hard work",
		Description: description,
		Color:       color,
		Footer:      cooldownFooter(job.Cooldown),
	}
	return &response{embed: embed}, nil
}
