package game

import (
	"errors"
	"fmt"
)

// Tag classifies a domain error. Handlers construct these on purpose
// when a precondition fails; they are user-facing outcomes, never bugs,
// and the bot layer maps each tag to a fixed friendly message.
type Tag string

const (
	TagInsufficientCoins     Tag = "insufficient_coins"
	TagInsufficientMaterials Tag = "insufficient_materials"
	TagInsufficientItems     Tag = "insufficient_items"
	TagLevelTooLow           Tag = "level_too_low"
	TagCooldownActive        Tag = "cooldown_active"
	TagListingNotFound       Tag = "listing_not_found"
	TagInvalidQuantity       Tag = "invalid_quantity"
	TagNothingGrowing        Tag = "nothing_growing"
	TagPlotsFull             Tag = "plots_full"
	TagBankEmpty             Tag = "bank_empty"
	TagLoanOutstanding       Tag = "loan_outstanding"
	TagNoLoan                Tag = "no_loan"
	TagUnknownItem           Tag = "unknown_item"
	TagSelfPurchase          Tag = "self_purchase"
	TagConfirmExpired        Tag = "confirm_expired"
	TagNotYourConfirm        Tag = "not_your_confirm"
)

// Error is a tagged domain error.
type Error struct {
	Tag     Tag
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is lets errors.Is match two domain errors by tag.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Tag == other.Tag
}

// NewError builds a tagged domain error with a formatted detail
// message. The detail ends up in logs; the user sees the fixed message
// for the tag.
func NewError(tag Tag, format string, args ...any) *Error {
	return &Error{Tag: tag, Message: fmt.Sprintf(format, args...)}
}

// TagOf extracts the domain tag from an error chain.
func TagOf(err error) (Tag, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Tag, true
	}
	return "", false
}
