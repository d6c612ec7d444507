package bot

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"tavernbot/internal/game"
	"tavernbot/internal/store"
)

// Loans carry a flat 10% fee and a week to settle up. Nothing bad
// happens past the due date yet, the ledger just remembers.
const (
	loanFeePercent = 10
	loanTerm       = 7 * 24 * time.Hour
	loanPerLevel   = 250
)

func (bot *Bot) bank(s *discordgo.Session, i *discordgo.InteractionCreate) (*response, error) {
	sub, options := subcommand(i.ApplicationCommandData())

	p, err := bot.player(i)
	if err != nil {
		return nil, err
	}
	account := p.EnsureBank()
	currency := bot.currency(i)

	switch sub {
	case "balance":
		return &response{embed: bankEmbed(account, p.Coins, currency), ephemeral: true}, nil
	case "deposit":
		amount := options.integer("amount", 0)
		if amount < 1 {
			return nil, game.NewError(game.TagInvalidQuantity, "cannot deposit %d", amount)
		}
		if p.Coins < amount {
			return nil, game.NewError(game.TagInsufficientCoins, "need %d, have %d", amount, p.Coins)
		}
		account.Balance += amount
		p.Coins -= amount
	case "withdraw":
		amount := options.integer("amount", 0)
		if amount < 1 {
			return nil, game.NewError(game.TagInvalidQuantity, "cannot withdraw %d", amount)
		}
		if account.Balance < amount {
			return nil, game.NewError(game.TagBankEmpty, "balance is %d, asked for %d", account.Balance, amount)
		}
		account.Balance -= amount
		p.Coins += amount
	case "loan":
		amount := options.integer("amount", 0)
		if amount < 1 {
			return nil, game.NewError(game.TagInvalidQuantity, "cannot borrow %d", amount)
		}
		if account.LoanAmount > 0 {
			return nil, game.NewError(game.TagLoanOutstanding, "still owing %d", account.LoanAmount)
		}
		if limit := loanPerLevel * p.Level; amount > limit {
			return nil, game.NewError(game.TagInvalidQuantity, "loan limit at level %d is %d", p.Level, limit)
		}
		account.LoanAmount = amount + amount*loanFeePercent/100
		account.LoanDue = time.Now().Add(loanTerm).UnixMilli()
		p.Coins += amount
	case "repay":
		amount := options.integer("amount", 0)
		if account.LoanAmount == 0 {
			return nil, game.NewError(game.TagNoLoan, "no outstanding loan")
		}
		if amount < 1 {
			return nil, game.NewError(game.TagInvalidQuantity, "cannot repay %d", amount)
		}
		if amount > account.LoanAmount {
			amount = account.LoanAmount
		}
		if p.Coins < amount {
			return nil, game.NewError(game.TagInsufficientCoins, "need %d, have %d", amount, p.Coins)
		}
		account.LoanAmount -= amount
		if account.LoanAmount == 0 {
			account.LoanDue = 0
		}
		p.Coins -= amount
	default:
		return nil, game.NewError(game.TagUnknownItem, "no bank service %q", sub)
	}

	ok := bot.db.Update(store.KindUser, interactionUser(i).ID, store.Doc{
		"coins": p.Coins,
		"bank":  game.EncodeBank(account),
	})
	if !ok {
		return nil, ErrNotPersisted
	}
	return &response{embed: bankEmbed(account, p.Coins, currency)}, nil
}

func bankEmbed(account *game.Bank, coins int, currency string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "The counting house",
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Balance", Value: fmt.Sprintf("%d %s", account.Balance, currency), Inline: true},
			{Name: "Purse", Value: fmt.Sprintf("%d %s", coins, currency), Inline: true},
		},
	}
	if account.LoanAmount > 0 {
		due := time.UnixMilli(account.LoanDue).Format("Jan 2")
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Loan",
			Value:  fmt.Sprintf("%d %s due %s", account.LoanAmount, currency, due),
			Inline: true,
		})
	}
	return embed
}
