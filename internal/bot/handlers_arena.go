package bot

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/bwmarrin/discordgo"

	"tavernbot/internal/game"
	"tavernbot/internal/store"
)

// Too battered to fight below this
const arenaMinHealth = 10

func (bot *Bot) arena(s *discordgo.Session, i *discordgo.InteractionCreate) (*response, error) {
	options := optionMap(i.ApplicationCommandData().Options)
	opponent, ok := game.Opponents[options.text("opponent")]
	if !ok {
		return nil, game.NewError(game.TagUnknownItem, "no opponent called %q", options.text("opponent"))
	}

	p, err := bot.player(i)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if remaining := game.CooldownRemaining(p, "arena", now); remaining > 0 {
		return nil, game.NewError(game.TagCooldownActive, "the arena reopens for you in %s", remaining.Round(time.Second))
	}
	if p.Health < arenaMinHealth {
		return nil, game.NewError(game.TagCooldownActive,
			"too wounded to fight at %d health, drink a healing potion", p.Health)
	}

	// A healing potion in the pack is drunk automatically before the
	// fight when below half health
	potionsPatch := store.Doc{}
	if p.Health < p.MaxHealth/2 && p.Inventory.Potions["healing"] > 0 {
		p.Inventory.Potions["healing"]--
		potionsPatch["healing"] = p.Inventory.Potions["healing"]
		p.Health = min(p.Health+game.HealingPotionRestore, p.MaxHealth)
	}

	var result game.FightResult
	bot.roll(func(rng *rand.Rand) { result = game.ArenaFight(rng, p, opponent) })

	p.Health = max(p.Health-result.DamageTaken, 1)
	p.Coins += result.Won
	levelsGained := p.GrantXP(result.XP)
	combatXP := result.XP / 2
	skill := p.GrantSkillXP("combat", combatXP)
	game.StartCooldown(p, "arena", game.ArenaCooldown, now)

	patch := store.Doc{
		"coins":     p.Coins,
		"xp":        p.XP,
		"level":     p.Level,
		"health":    p.Health,
		"skills":    store.Doc{"combat": game.EncodeSkill(skill)},
		"cooldowns": store.Doc{"arena": p.Cooldowns["arena"]},
	}
	if len(potionsPatch) > 0 {
		patch["inventory"] = store.Doc{"potions": potionsPatch}
	}
	if !bot.db.Update(store.KindUser, interactionUser(i).ID, patch) {
		return nil, ErrNotPersisted
	}

	var embed *discordgo.MessageEmbed
	if result.Victory {
		description := fmt.Sprintf("After %d rounds you take **%d %s** and %d XP, losing %d health.",
			result.Rounds, result.Won, bot.currency(i), result.XP, result.DamageTaken)
		if levelsGained > 0 {
			description += fmt.Sprintf("\nYou reached **level %d**!", p.Level)
		}
		embed = &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("Victory over the %s!", opponent.Name),
			Description: description,
			Color:       color,
		}
	} else {
		embed = &discordgo.MessageEmbed{
			Title: fmt.Sprintf("The %s leaves you in the dust", opponent.Name),
			Description: fmt.Sprintf("You crawl out after %d rounds with 1 health and %d XP for the trouble.",
				result.Rounds, result.XP),
			Color: color,
		}
	}
	embed.Footer = cooldownFooter(game.ArenaCooldown)
	return &response{embed: embed}, nil
}
