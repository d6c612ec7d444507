package bot

import (
	"errors"

	"github.com/bwmarrin/discordgo"

	"tavernbot/internal/game"
)

const genericFailureMessage = "Something went wrong on my side. It has been noted."

// persistence problems never lose in-memory state, only the flush lags
const notPersistedMessage = "I could not save that just now. Your progress is safe in memory, please try again in a moment."

// ErrNotPersisted is returned by handlers when the store reports an
// update did not stick.
var ErrNotPersisted = errors.New(notPersistedMessage)

// Platform error codes and domain tags are mapped in two independent
// tables, composed in UserMessage.

var transportMessages = map[int]string{
	discordgo.ErrCodeUnknownInteraction:                    "Discord dropped that interaction, please run the command again",
	discordgo.ErrCodeInteractionHasAlreadyBeenAcknowledged: "I answered that one already",
	discordgo.ErrCodeMissingPermissions:                    "I am missing permissions in this channel",
	discordgo.ErrCodeMissingAccess:                         "I cannot see that channel",
	discordgo.ErrCodeCannotSendMessagesToThisUser:          "I cannot send you direct messages",
}

const rateLimitMessage = "Discord is rate limiting me, give me a few seconds"

var domainMessages = map[game.Tag]string{
	game.TagInsufficientCoins:     "You cannot afford that",
	game.TagInsufficientMaterials: "You are missing some of the required materials",
	game.TagInsufficientItems:     "You do not have enough of that item",
	game.TagLevelTooLow:           "Your level is too low for that",
	game.TagCooldownActive:        "You need to rest first, that is still on cooldown",
	game.TagListingNotFound:       "That market listing does not exist",
	game.TagInvalidQuantity:       "That is not a valid quantity",
	game.TagNothingGrowing:        "Nothing is ready to harvest",
	game.TagPlotsFull:             "All your plots are already planted",
	game.TagBankEmpty:             "Your bank account does not hold that much",
	game.TagLoanOutstanding:       "Pay off your current loan first",
	game.TagNoLoan:                "You have no loan to repay",
	game.TagUnknownItem:           "I do not know that item",
	game.TagSelfPurchase:          "You cannot buy your own listing",
	game.TagConfirmExpired:        "That purchase confirmation has expired",
	game.TagNotYourConfirm:        "That confirmation is not yours to answer",
}

// UserMessage translates an error into the short text shown to the
// user. Platform codes first, then domain tags, then the error's own
// message, then a generic string. Pure lookup, no delivery.
func UserMessage(err error) string {
	if err == nil {
		return genericFailureMessage
	}

	var rateLimit *discordgo.RateLimitError
	if errors.As(err, &rateLimit) {
		return rateLimitMessage
	}
	// A REST error never falls through to err.Error(): discordgo's
	// Error() reads the HTTP response, which may be nil.
	var rest *discordgo.RESTError
	if errors.As(err, &rest) {
		if rest.Message != nil {
			if message, ok := transportMessages[rest.Message.Code]; ok {
				return message
			}
			if rest.Message.Message != "" {
				return rest.Message.Message
			}
		}
		return genericFailureMessage
	}

	if tag, ok := game.TagOf(err); ok {
		if message, ok := domainMessages[tag]; ok {
			return message
		}
	}

	if message := err.Error(); message != "" {
		return message
	}
	return genericFailureMessage
}
