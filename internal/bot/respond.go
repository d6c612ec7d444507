package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// response is what a handler wants delivered.
type response struct {
	embed      *discordgo.MessageEmbed
	components []discordgo.MessageComponent
	ephemeral  bool
	// update edits the message the component sits on instead of
	// sending a new reply
	update bool
}

// send delivers a response over whichever channel is still open: the
// initial interaction response first, the follow-up webhook when the
// interaction was already acknowledged. Delivery failures are logged,
// never propagated; there is nobody left to tell.
func (bot *Bot) send(s *discordgo.Session, i *discordgo.InteractionCreate, resp *response) {
	if resp == nil || resp.embed == nil {
		return
	}

	data := &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{resp.embed},
		Components: resp.components,
	}
	if resp.ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	responseType := discordgo.InteractionResponseChannelMessageWithSource
	if resp.update {
		responseType = discordgo.InteractionResponseUpdateMessage
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: responseType,
		Data: data,
	})
	if err == nil {
		return
	}

	// The interaction may already be acknowledged, try the follow-up
	followup := &discordgo.WebhookParams{
		Embeds:     data.Embeds,
		Components: data.Components,
		Flags:      data.Flags,
	}
	if _, ferr := s.FollowupMessageCreate(i.Interaction, true, followup); ferr != nil {
		log.Warn().Msg(fmt.Sprintf("Could not deliver response for %s: respond %v, followup %v",
			interactionName(i), err, ferr))
	}
}
