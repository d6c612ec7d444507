package bot

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"tavernbot/internal/game"
	"tavernbot/internal/store"
)

func (bot *Bot) train(s *discordgo.Session, i *discordgo.InteractionCreate) (*response, error) {
	options := optionMap(i.ApplicationCommandData().Options)
	training, ok := game.TrainableSkills[options.text("skill")]
	if !ok {
		return nil, game.NewError(game.TagUnknownItem, "no skill called %q", options.text("skill"))
	}

	p, err := bot.player(i)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if remaining := game.CooldownRemaining(p, "train", now); remaining > 0 {
		return nil, game.NewError(game.TagCooldownActive, "your tutor is busy for %s", remaining.Round(time.Second))
	}
	if p.Coins < training.Cost {
		return nil, game.NewError(game.TagInsufficientCoins, "lessons cost %d, have %d", training.Cost, p.Coins)
	}

	before := p.Skills[training.Name].Level
	skill := p.GrantSkillXP(training.Name, training.XP)
	game.StartCooldown(p, "train", game.TrainingCooldown, now)

	ok = bot.db.Update(store.KindUser, interactionUser(i).ID, store.Doc{
		"coins":     p.Coins - training.Cost,
		"skills":    store.Doc{training.Name: game.EncodeSkill(skill)},
		"cooldowns": store.Doc{"train": p.Cooldowns["train"]},
	})
	if !ok {
		return nil, ErrNotPersisted
	}

	description := fmt.Sprintf("A lesson in **%s** for %d %s earns you %d skill XP.",
		training.Name, training.Cost, bot.currency(i), training.XP)
	if skill.Level > before {
		description += fmt.Sprintf("\n**%s** is now level %d.", training.Name, skill.Level)
	}
	embed := &discordgo.MessageEmbed{
		Title:       "Practice makes permanent",
		Description: description,
		Color:       color,
		Footer:      cooldownFooter(game.TrainingCooldown),
	}
	return &response{embed: embed}, nil
}
