package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"saucebot/internal/activities"
	"saucebot/internal/models"
	"saucebot/internal/services"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/do"
)

const commandPrefix = "-"

// spawn odds per eligible message, one in N
const (
	popupSpawnOdds = 25
	dropSpawnOdds  = 40
	guessSpawnOdds = 60
	rushSpawnOdds  = 400
)

type botHandler struct {
	container *do.Injector
	session   *discordgo.Session
}

func (b *botHandler) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	ctx := context.Background()

	serviceUser, err := do.Invoke[*services.ServiceUser](b.container)
	if err != nil {
		log.Println("invoke user service:", err)
		return
	}

	if _, err := serviceUser.FindOrCreateUser(ctx, m.Author.ID, m.Author.Username); err != nil {
		log.Println("find or create user:", err)
		return
	}

	content := strings.TrimSpace(m.Content)
	if strings.HasPrefix(content, commandPrefix) {
		b.dispatchCommand(ctx, m, strings.TrimPrefix(content, commandPrefix))
		return
	}

	if newLevel, err := serviceUser.AddMessageXP(ctx, m.Author.ID, m.GuildID); err == nil && newLevel > 0 {
		b.reply(m.ChannelID, "🎉 <@"+m.Author.ID+"> reached level %d!", newLevel)
	}

	b.chatTriggers(ctx, m, content)
	b.tryClaimPopup(ctx, m, content)
	b.maybeSpawn(ctx, m)
}

// triggerReply maps the legacy keyword lines the bot started life with to
// their canned responses, "" when nothing matches.
func triggerReply(content string) string {
	lower := strings.ToLower(content)

	switch {
	case strings.Contains(lower, "ketchup") || strings.Contains(lower, "catsup"):
		return "🍅 Did someone say sauce?"
	case strings.Contains(lower, "your wish?"):
		return "I want to rule the sauce kingdom, and I will consume everyone who stands in my way!"
	case strings.Contains(lower, "why???"):
		return "Because... It's late, imma go back to sleep..."
	}

	return ""
}

func (b *botHandler) chatTriggers(ctx context.Context, m *discordgo.MessageCreate, content string) {
	if reply := triggerReply(content); reply != "" {
		b.reply(m.ChannelID, reply)
		return
	}

	lower := strings.ToLower(content)
	if strings.HasPrefix(lower, "hello") && strings.Contains(lower, "sauce") {
		serviceConfig, err := do.Invoke[*services.ServiceConfig](b.container)
		if err != nil {
			return
		}
		welcome, _ := serviceConfig.GetStringConfig(ctx, services.CONFIG_TEXT_WELCOME, "Welcome to the Sauce Kingdom, %s!")
		b.reply(m.ChannelID, welcome, m.Author.Username)
	}
}

// tryClaimPopup matches a plain message against a live pop-up question in the
// channel. Only a correct answer consumes the activity.
func (b *botHandler) tryClaimPopup(ctx context.Context, m *discordgo.MessageCreate, content string) {
	serviceActivity, err := do.Invoke[*services.ServiceActivity](b.container)
	if err != nil {
		return
	}

	registry, err := do.Invoke[*activities.Registry](b.container)
	if err != nil {
		return
	}

	active := registry.Active(activities.ScopeChannel(m.ChannelID))
	if active == nil || active.Kind != activities.KindPopup {
		return
	}

	result, err := serviceActivity.AnswerPopup(ctx, m.ChannelID, m.Author.ID, m.GuildID, content)
	if err != nil || result.Status != models.StatusOK {
		return
	}

	b.reply(m.ChannelID, "✅ <@"+m.Author.ID+"> got it! %s", renderOutcomes(result))
}

func (b *botHandler) maybeSpawn(ctx context.Context, m *discordgo.MessageCreate) {
	serviceActivity, err := do.Invoke[*services.ServiceActivity](b.container)
	if err != nil {
		return
	}

	switch {
	case rand.Intn(popupSpawnOdds) == 0:
		result, err := serviceActivity.SpawnPopup(ctx, m.ChannelID)
		if err == nil && result.Status == models.StatusOK {
			b.reply(m.ChannelID, "❓ Pop quiz! %v", result.Detail["question"])
		}
	case rand.Intn(dropSpawnOdds) == 0:
		result, err := serviceActivity.SpawnDrop(ctx, m.ChannelID)
		if err == nil && result.Status == models.StatusOK {
			b.reply(m.ChannelID, "🌟 A Starr Drop appeared! Type `-catch` to grab it.")
		}
	case rand.Intn(guessSpawnOdds) == 0:
		result, err := serviceActivity.SpawnGuess(ctx, m.ChannelID)
		if err == nil && result.Status == models.StatusOK {
			b.reply(m.ChannelID, "🔢 Guess the number between 1 and %v with `-guess <n>`. Four tries each!", result.Detail["max"])
		}
	case rand.Intn(rushSpawnOdds) == 0:
		result, err := serviceActivity.StartSugarRush(ctx, m.GuildID)
		if err == nil && result.Status == models.StatusOK {
			b.reply(m.ChannelID, "🍭 SUGAR RUSH! Box rewards are tripled for %v minutes!", result.Detail["duration_minutes"])
		}
	}
}

// sweepLoop expires stale activities and posts a single notice per activity.
func (b *botHandler) sweepLoop(ctx context.Context, serviceActivity *services.ServiceActivity, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, a := range serviceActivity.Sweep(ctx) {
				channelID, ok := strings.CutPrefix(a.Scope, "channel:")
				if !ok {
					continue
				}

				switch a.Kind {
				case activities.KindPopup:
					b.reply(channelID, "⏰ Time's up! The answer was **%s**.", a.Answer)
				case activities.KindDrop:
					b.reply(channelID, "💨 The Starr Drop faded away...")
				case activities.KindGuess:
					b.reply(channelID, "⏰ Nobody guessed it. The number was **%d**.", a.Target)
				}
			}
		}
	}
}

func (b *botHandler) reply(channelID string, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	if _, err := b.session.ChannelMessageSend(channelID, msg); err != nil {
		log.Println("send message:", err)
	}
}
