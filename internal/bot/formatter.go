package bot

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"tavernbot/internal/game"
)

// Use "goldenrod" for the bot, it is an economy after all
const color int = 0xDAA520

func GenericFailure() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "That did not go as planned",
		Description: genericFailureMessage,
		Color:       color,
	}
}

func ErrorNotice(message string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Description: message,
		Color:       color,
	}
}

func ProfileEmbed(user *discordgo.User, p *game.Player, currency string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s, level %d", user.Username, p.Level),
		Color: color,
	}
	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{
			Name:   "Purse",
			Value:  fmt.Sprintf("%d %s", p.Coins, currency),
			Inline: true,
		},
		&discordgo.MessageEmbedField{
			Name:   "Experience",
			Value:  fmt.Sprintf("%d / %d", p.XP, game.XPForLevel(p.Level)),
			Inline: true,
		},
		&discordgo.MessageEmbedField{
			Name:   "Health",
			Value:  fmt.Sprintf("%d / %d", p.Health, p.MaxHealth),
			Inline: true,
		},
		&discordgo.MessageEmbedField{
			Name:   "Mana",
			Value:  fmt.Sprintf("%d / %d", p.Mana, p.MaxMana),
			Inline: true,
		},
	)
	if p.Bank != nil {
		value := fmt.Sprintf("%d %s banked", p.Bank.Balance, currency)
		if p.Bank.LoanAmount > 0 {
			value += fmt.Sprintf(", %d owed", p.Bank.LoanAmount)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Bank", Value: value, Inline: true,
		})
	}
	if len(p.Skills) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Skills", Value: skillLines(p.Skills), Inline: false,
		})
	}
	return embed
}

func skillLines(skills map[string]game.Skill) string {
	names := make([]string, 0, len(skills))
	for name := range skills {
		names = append(names, name)
	}
	sort.Strings(names)
	lines := make([]string, len(names))
	for i, name := range names {
		skill := skills[name]
		lines[i] = fmt.Sprintf("**%s** %d (%d/%d)", name, skill.Level, skill.XP, skill.NextLevel)
	}
	return strings.Join(lines, "\n")
}

func InventoryEmbed(user *discordgo.User, inv game.Inventory) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s's pack", user.Username),
		Color: color,
	}
	categories := []struct {
		name  string
		items map[string]int
	}{
		{"Materials", inv.Materials},
		{"Items", inv.Items},
		{"Potions", inv.Potions},
		{"Equipment", inv.Equipment},
	}
	for _, category := range categories {
		if len(category.items) == 0 {
			continue
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   category.name,
			Value:  itemLines(category.items),
			Inline: true,
		})
	}
	if len(embed.Fields) == 0 {
		embed.Description = "Nothing but lint."
	}
	return embed
}

func itemLines(items map[string]int) string {
	names := make([]string, 0, len(items))
	for name, count := range items {
		if count > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = fmt.Sprintf("%s ×%d", name, items[name])
	}
	if len(lines) == 0 {
		return "None"
	}
	return strings.Join(lines, "\n")
}

func ShopEmbed(currency string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "The item shop",
		Color: color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Bulk discounts: 5% from 3, 10% from 5, 15% from 10",
		},
	}
	names := make([]string, 0, len(game.ShopItems))
	for name := range game.ShopItems {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		item := game.ShopItems[name]
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   item.Name,
			Value:  fmt.Sprintf("%d %s (%s)", item.Price, currency, item.Category),
			Inline: true,
		})
	}
	return embed
}

func ListingsEmbed(listings map[string]game.Listing, currency string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Marketplace",
		Color: color,
	}
	if len(listings) == 0 {
		embed.Description = "The market square is empty."
		return embed
	}
	ids := make([]string, 0, len(listings))
	for id := range listings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		listing := listings[id]
		expires := time.Until(time.UnixMilli(listing.ExpiresAt)).Round(time.Minute)
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("%s ×%d — %d %s", listing.Item, listing.Quantity, listing.Price, currency),
			Value: fmt.Sprintf("Seller %s, expires in %s\n`%s`",
				listing.SellerName, expires, listing.ID),
			Inline: false,
		})
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: "Buy with /market buy id:<listing id>"}
	return embed
}

func HelpEmbed() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{Title: "Life at the tavern", Color: color}
	entries := []struct{ name, value string }{
		{"`/profile` `/inventory`", "See where you stand"},
		{"`/daily`", "A free allowance every day"},
		{"`/work <job>`", "Honest wages, honest cooldowns"},
		{"`/brew <potion>`", "Turn materials into potions"},
		{"`/bank`", "Deposit, withdraw, borrow, repay"},
		{"`/arena <opponent>`", "Fight for coin and glory"},
		{"`/fish`", "Patience pays, sometimes in gold"},
		{"`/farm`", "Plant now, harvest later"},
		{"`/gamble`", "Coinflip and slots, house rules"},
		{"`/shop`", "Materials and gear, bulk discounts"},
		{"`/market`", "Trade with other players"},
		{"`/train <skill>`", "Coin in, competence out"},
	}
	for _, entry := range entries {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: entry.name, Value: entry.value, Inline: false,
		})
	}
	return embed
}

// cooldownFooter renders the standard "come back in" footer.
func cooldownFooter(d time.Duration) *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Come back in %s", d.Round(time.Second)),
	}
}
