package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tavernbot/internal/game"
	"tavernbot/internal/store"
)

const (
	confirmPrefix = "market-confirm:"
	cancelPrefix  = "market-cancel:"
)

// pendingPurchase is a purchase waiting for its confirmation button.
// Nothing is reserved: no side effect happens before the confirm.
type pendingPurchase struct {
	buyer     string
	listingID string
	expires   time.Time
}

func (bot *Bot) market(s *discordgo.Session, i *discordgo.InteractionCreate) (*response, error) {
	sub, options := subcommand(i.ApplicationCommandData())

	switch sub {
	case "listings":
		listings := game.DecodeListings(bot.db.GetGlobalData(game.MarketBlob))
		return &response{embed: ListingsEmbed(listings, bot.currency(i)), ephemeral: true}, nil
	case "sell":
		return bot.marketSell(i, options)
	case "buy":
		return bot.marketBuy(i, options.text("id"))
	default:
		return nil, game.NewError(game.TagUnknownItem, "no market action %q", sub)
	}
}

func (bot *Bot) marketSell(i *discordgo.InteractionCreate, options optionTable) (*response, error) {
	item := options.text("item")
	quantity := options.integer("quantity", 0)
	price := options.integer("price", 0)
	if quantity < 1 {
		return nil, game.NewError(game.TagInvalidQuantity, "cannot sell %d", quantity)
	}
	if price < 1 {
		return nil, game.NewError(game.TagInvalidQuantity, "price must be at least 1")
	}

	p, err := bot.player(i)
	if err != nil {
		return nil, err
	}
	user := interactionUser(i)

	// Find the item in whichever pocket holds it
	category, owned := findInInventory(&p.Inventory, item)
	if owned < quantity {
		return nil, game.NewError(game.TagInsufficientItems, "selling %d %s, have %d", quantity, item, owned)
	}

	now := time.Now()
	listing := game.Listing{
		ID:         uuid.NewString(),
		Seller:     user.ID,
		SellerName: user.Username,
		Item:       item,
		Category:   category,
		Price:      price,
		Quantity:   quantity,
		ListedAt:   now.UnixMilli(),
		ExpiresAt:  now.Add(game.MarketListingTTL).UnixMilli(),
	}

	// The goods leave the seller's pack first; if writing the listing
	// then fails the items are gone, same as losing them to an expiry.
	// Two blobs, no transaction.
	ok := bot.db.Update(store.KindUser, user.ID, store.Doc{
		"inventory": store.Doc{category: store.Doc{item: owned - quantity}},
	})
	if !ok {
		return nil, ErrNotPersisted
	}
	listings := game.DecodeListings(bot.db.GetGlobalData(game.MarketBlob))
	listings[listing.ID] = listing
	if !bot.db.SetGlobalData(game.MarketBlob, game.EncodeListings(listings)) {
		return nil, ErrNotPersisted
	}

	embed := &discordgo.MessageEmbed{
		Title: "Listed on the market",
		Description: fmt.Sprintf("**%d× %s** for **%d %s**, good for %s.\nListing id: `%s`",
			quantity, item, price, bot.currency(i), game.MarketListingTTL, listing.ID),
		Color: color,
	}
	return &response{embed: embed}, nil
}

func (bot *Bot) marketBuy(i *discordgo.InteractionCreate, listingID string) (*response, error) {
	listings := game.DecodeListings(bot.db.GetGlobalData(game.MarketBlob))
	listing, ok := listings[strings.TrimSpace(listingID)]
	if !ok {
		return nil, game.NewError(game.TagListingNotFound, "no listing with id %q", listingID)
	}
	user := interactionUser(i)
	if listing.Seller == user.ID {
		return nil, game.NewError(game.TagSelfPurchase, "own listing %s", listing.ID)
	}

	// Big purchases ask first
	if listing.Price >= game.MarketConfirmThreshold {
		key := uuid.NewString()
		bot.pendingMu.Lock()
		bot.pending[key] = pendingPurchase{
			buyer:     user.ID,
			listingID: listing.ID,
			expires:   time.Now().Add(game.MarketConfirmWindow),
		}
		bot.pendingMu.Unlock()

		embed := &discordgo.MessageEmbed{
			Title: "Confirm this purchase",
			Description: fmt.Sprintf("**%d× %s** from %s for **%d %s**. Sure?",
				listing.Quantity, listing.Item, listing.SellerName, listing.Price, bot.currency(i)),
			Color:  color,
			Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Offer expires in %s", game.MarketConfirmWindow)},
		}
		buttons := []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{Label: "Buy", Style: discordgo.SuccessButton, CustomID: confirmPrefix + key},
					discordgo.Button{Label: "Walk away", Style: discordgo.SecondaryButton, CustomID: cancelPrefix + key},
				},
			},
		}
		return &response{embed: embed, components: buttons, ephemeral: true}, nil
	}

	return bot.executePurchase(i, listing.ID)
}

// executePurchase settles a listing: debit the buyer, credit the
// seller, hand over the goods, drop the listing. These are independent
// store calls; a crash in between leaves the ledger inconsistent.
// That is a documented property of this store, not a bug to paper over
// here.
func (bot *Bot) executePurchase(i *discordgo.InteractionCreate, listingID string) (*response, error) {
	// Refetch, the listing may have been sold or purged meanwhile
	listings := game.DecodeListings(bot.db.GetGlobalData(game.MarketBlob))
	listing, ok := listings[listingID]
	if !ok {
		return nil, game.NewError(game.TagListingNotFound, "listing %s disappeared", listingID)
	}

	user := interactionUser(i)
	buyer, err := game.DecodePlayer(bot.db.Get(store.KindUser, user.ID))
	if err != nil {
		return nil, err
	}
	if buyer.Coins < listing.Price {
		return nil, game.NewError(game.TagInsufficientCoins, "price %d, purse %d", listing.Price, buyer.Coins)
	}

	owned := inventoryCategory(&buyer.Inventory, listing.Category)
	ok = bot.db.Update(store.KindUser, user.ID, store.Doc{
		"coins": buyer.Coins - listing.Price,
		"inventory": store.Doc{
			listing.Category: store.Doc{listing.Item: owned[listing.Item] + listing.Quantity},
		},
	})
	if !ok {
		return nil, ErrNotPersisted
	}

	seller, err := game.DecodePlayer(bot.db.Get(store.KindUser, listing.Seller))
	if err == nil {
		if !bot.db.Update(store.KindUser, listing.Seller, store.Doc{"coins": seller.Coins + listing.Price}) {
			log.Error().Msg(fmt.Sprintf("Listing %s: buyer %s paid but seller %s was not credited",
				listing.ID, user.ID, listing.Seller))
		}
	}

	delete(listings, listingID)
	bot.db.SetGlobalData(game.MarketBlob, game.EncodeListings(listings))

	embed := &discordgo.MessageEmbed{
		Title: "Sold!",
		Description: fmt.Sprintf("**%d× %s** is yours for **%d %s**.",
			listing.Quantity, listing.Item, listing.Price, bot.currency(i)),
		Color: color,
	}
	return &response{embed: embed}, nil
}

// component routes button presses. Only the purchase confirmation flow
// uses components for now; an unrecognized custom id still gets a
// reply, the same as an unknown command.
func (bot *Bot) component(i *discordgo.InteractionCreate) (*response, error) {
	customID := i.MessageComponentData().CustomID
	switch {
	case strings.HasPrefix(customID, confirmPrefix):
		return bot.confirmPurchase(i, strings.TrimPrefix(customID, confirmPrefix))
	case strings.HasPrefix(customID, cancelPrefix):
		return bot.cancelPurchase(i, strings.TrimPrefix(customID, cancelPrefix))
	default:
		log.Warn().Msg(fmt.Sprintf("No component handler for custom id %s", customID))
		return &response{embed: GenericFailure(), ephemeral: true}, nil
	}
}

func (bot *Bot) confirmPurchase(i *discordgo.InteractionCreate, key string) (*response, error) {
	pending, err := bot.takePending(i, key)
	if err != nil {
		return nil, err
	}
	resp, err := bot.executePurchase(i, pending.listingID)
	if err != nil {
		return nil, err
	}
	resp.update = true
	resp.components = []discordgo.MessageComponent{}
	return resp, nil
}

func (bot *Bot) cancelPurchase(i *discordgo.InteractionCreate, key string) (*response, error) {
	if _, err := bot.takePending(i, key); err != nil {
		return nil, err
	}
	embed := &discordgo.MessageEmbed{
		Description: "You walk away. The listing stays on the market.",
		Color:       color,
	}
	return &response{embed: embed, components: []discordgo.MessageComponent{}, update: true}, nil
}

// takePending claims a pending confirmation for the pressing user.
// Expired or foreign confirmations are rejected; a claimed one is
// removed so the buttons cannot fire twice.
func (bot *Bot) takePending(i *discordgo.InteractionCreate, key string) (pendingPurchase, error) {
	bot.pendingMu.Lock()
	defer bot.pendingMu.Unlock()

	pending, ok := bot.pending[key]
	if !ok {
		return pendingPurchase{}, game.NewError(game.TagConfirmExpired, "no pending purchase %s", key)
	}
	if pending.buyer != interactionUser(i).ID {
		return pendingPurchase{}, game.NewError(game.TagNotYourConfirm, "pending purchase %s belongs to %s", key, pending.buyer)
	}
	if time.Now().After(pending.expires) {
		delete(bot.pending, key)
		return pendingPurchase{}, game.NewError(game.TagConfirmExpired, "pending purchase %s expired", key)
	}
	delete(bot.pending, key)
	return pending, nil
}

// findInInventory locates an item across the inventory categories and
// returns the category name and the count held.
func findInInventory(inv *game.Inventory, item string) (string, int) {
	for _, category := range []string{"materials", "items", "potions", "equipment"} {
		if count := inventoryCategory(inv, category)[item]; count > 0 {
			return category, count
		}
	}
	return "items", 0
}
