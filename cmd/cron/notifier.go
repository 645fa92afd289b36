package main

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// notifierDiscord delivers direct messages through the Discord REST API; no
// gateway connection is needed for DMs.
type notifierDiscord struct {
	session *discordgo.Session
}

func (n *notifierDiscord) Notify(ctx context.Context, userID string, message string) error {
	channel, err := n.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return err
	}

	_, err = n.session.ChannelMessageSend(channel.ID, message, discordgo.WithContext(ctx))
	return err
}
