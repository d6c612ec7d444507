package bot

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"tavernbot/internal/game"
	"tavernbot/internal/store"
)

// handlerFunc services one slash command and returns the message to
// send, or a domain/transport error for the mapper.
type handlerFunc func(s *discordgo.Session, i *discordgo.InteractionCreate) (*response, error)

// Bot wires the document store to the Discord gateway. The store is
// injected; the bot never constructs its own persistence.
type Bot struct {
	token             string
	guildID           string
	db                *store.Store
	housekeepingCycle time.Duration

	handlers map[string]handlerFunc

	rngMu sync.Mutex
	rng   *rand.Rand

	pendingMu sync.Mutex
	pending   map[string]pendingPurchase
}

// New creates a bot around an already opened store. guildID scopes the
// slash commands to one server for fast iteration; empty registers
// them globally.
func New(token string, guildID string, db *store.Store, housekeepingCycle time.Duration) *Bot {
	if housekeepingCycle <= 0 {
		housekeepingCycle = 10 * time.Minute
	}
	bot := &Bot{
		token:             token,
		guildID:           guildID,
		db:                db,
		housekeepingCycle: housekeepingCycle,
		rng:               rand.New(rand.NewSource(time.Now().UnixNano())),
		pending:           map[string]pendingPurchase{},
	}
	bot.handlers = map[string]handlerFunc{
		"profile":   bot.profile,
		"inventory": bot.inventory,
		"daily":     bot.daily,
		"work":      bot.work,
		"brew":      bot.brew,
		"bank":      bot.bank,
		"arena":     bot.arena,
		"fish":      bot.fish,
		"farm":      bot.farm,
		"gamble":    bot.gamble,
		"shop":      bot.shop,
		"market":    bot.market,
		"train":     bot.train,
		"help":      bot.help,
	}
	return bot
}

// Run opens the gateway session, registers the slash commands and
// blocks until SIGINT or SIGTERM.
func (bot *Bot) Run() error {
	discord, err := discordgo.New("Bot " + bot.token)
	if err != nil {
		return fmt.Errorf("could not create discord session: %w", err)
	}
	discord.Identify.Intents = discordgo.IntentsGuilds

	discord.AddHandler(bot.onInteraction)

	if err := discord.Open(); err != nil {
		return fmt.Errorf("could not open discord session: %w", err)
	}
	defer discord.Close()

	if _, err := discord.ApplicationCommandBulkOverwrite(discord.State.User.ID, bot.guildID, commands); err != nil {
		return fmt.Errorf("could not register commands: %w", err)
	}
	log.Info().Msg(fmt.Sprintf("Registered %d commands as %s", len(commands), discord.State.User.Username))

	// Periodic housekeeping for the shared market
	done := make(chan struct{})
	go bot.housekeeping(done)
	defer close(done)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	log.Info().Msg("Shutting down")
	return nil
}

// onInteraction is the single dispatch point. No panic escapes to
// discordgo: every route is wrapped so all paths end in a reply.
func (bot *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer func() {
		if r := recover(); r != nil {
			user := interactionUser(i)
			log.Error().Msg(fmt.Sprintf("Panic handling %s for user %s in guild %s: %v",
				interactionName(i), user.ID, i.GuildID, r))
			bot.send(s, i, &response{embed: GenericFailure()})
		}
	}()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		handler, ok := bot.handlers[name]
		if !ok {
			log.Warn().Msg(fmt.Sprintf("No handler for command %s", name))
			bot.send(s, i, &response{embed: GenericFailure()})
			return
		}
		bot.touchGuild(i)
		resp, err := handler(s, i)
		if err != nil {
			bot.notifyError(s, i, err)
			return
		}
		bot.send(s, i, resp)
	case discordgo.InteractionMessageComponent:
		resp, err := bot.component(i)
		if err != nil {
			bot.notifyError(s, i, err)
			return
		}
		bot.send(s, i, resp)
	}
}

// notifyError turns any error into a user-visible notice. Domain errors
// are expected outcomes and logged at debug only.
func (bot *Bot) notifyError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	user := interactionUser(i)
	if _, ok := game.TagOf(err); ok {
		log.Debug().Msg(fmt.Sprintf("Command %s rejected for user %s: %v", interactionName(i), user.ID, err))
	} else {
		log.Error().Msg(fmt.Sprintf("Command %s failed for user %s in guild %s: %v",
			interactionName(i), user.ID, i.GuildID, err))
	}
	bot.send(s, i, &response{embed: ErrorNotice(UserMessage(err)), ephemeral: true})
}

// touchGuild counts the command against the guild record, creating the
// record the first time the bot sees the server.
func (bot *Bot) touchGuild(i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		return
	}
	guild, err := game.DecodeGuild(bot.db.Get(store.KindGuild, i.GuildID))
	if err != nil {
		log.Warn().Msg(fmt.Sprintf("Could not decode guild record %s: %v", i.GuildID, err))
		return
	}
	bot.db.Update(store.KindGuild, i.GuildID, store.Doc{"commandsRun": guild.CommandsRun + 1})
}

// currency is the display name for money in the current server.
func (bot *Bot) currency(i *discordgo.InteractionCreate) string {
	if i.GuildID == "" {
		return "coins"
	}
	guild, err := game.DecodeGuild(bot.db.Get(store.KindGuild, i.GuildID))
	if err != nil {
		return "coins"
	}
	return guild.Settings.Currency
}

// player fetches and decodes the caller's record.
func (bot *Bot) player(i *discordgo.InteractionCreate) (*game.Player, error) {
	return game.DecodePlayer(bot.db.Get(store.KindUser, interactionUser(i).ID))
}

// roll runs fn with the bot's random source. Handlers run on gateway
// goroutines, so the source is guarded.
func (bot *Bot) roll(fn func(rng *rand.Rand)) {
	bot.rngMu.Lock()
	defer bot.rngMu.Unlock()
	fn(bot.rng)
}

// housekeeping periodically sweeps the shared market: expired listings
// and stale purchase confirmations go away.
func (bot *Bot) housekeeping(done chan struct{}) {
	ticker := time.NewTicker(bot.housekeepingCycle)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			bot.sweepMarket(time.Now())
			bot.sweepPending(time.Now())
		case <-done:
			return
		}
	}
}

func (bot *Bot) sweepMarket(now time.Time) {
	listings := game.DecodeListings(bot.db.GetGlobalData(game.MarketBlob))
	purged := game.PurgeExpiredListings(listings, now)
	if purged == 0 {
		return
	}
	bot.db.SetGlobalData(game.MarketBlob, game.EncodeListings(listings))
	log.Info().Msg(fmt.Sprintf("Market housekeeping purged %d expired listings", purged))
}

func (bot *Bot) sweepPending(now time.Time) {
	bot.pendingMu.Lock()
	defer bot.pendingMu.Unlock()
	for id, p := range bot.pending {
		if now.After(p.expires) {
			delete(bot.pending, id)
		}
	}
}

func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

func interactionName(i *discordgo.InteractionCreate) string {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		return i.ApplicationCommandData().Name
	case discordgo.InteractionMessageComponent:
		return i.MessageComponentData().CustomID
	default:
		return fmt.Sprintf("interaction type %d", i.Type)
	}
}
