package main

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"saucebot/internal/models"
	"saucebot/internal/rewards"
	"saucebot/internal/services"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/do"
)

// commandNames is every prefix command the dispatcher accepts.
var commandNames = map[string]bool{
	"profile": true,
	"daily":   true,
	"weekly":  true,
	"box":     true,
	"open":    true,
	"shop":    true,
	"buy":     true,
	"build":   true,
	"collect": true,
	"catch":   true,
	"guess":   true,
	"pass":    true,
	"top":     true,
	"rush":    true,
	"reset":   true,
	"help":    true,
}

func isCommand(name string) bool {
	return commandNames[name]
}

func (b *botHandler) dispatchCommand(ctx context.Context, m *discordgo.MessageCreate, raw string) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return
	}
	command, args := strings.ToLower(fields[0]), fields[1:]
	if !isCommand(command) {
		return
	}

	if serviceUser, err := do.Invoke[*services.ServiceUser](b.container); err == nil {
		//nolint:errcheck
		serviceUser.CountCommand(ctx, m.Author.ID)
	}

	switch command {
	case "profile":
		b.commandProfile(ctx, m)
	case "daily":
		b.commandClaim(ctx, m, "daily")
	case "weekly":
		b.commandClaim(ctx, m, "weekly")
	case "box":
		b.commandBox(ctx, m)
	case "open":
		b.commandOpen(ctx, m, args)
	case "shop":
		b.commandShop(m)
	case "buy":
		b.commandBuy(ctx, m, args)
	case "build":
		b.commandBuild(ctx, m, args)
	case "collect":
		b.commandCollect(ctx, m)
	case "catch":
		b.commandCatch(ctx, m)
	case "guess":
		b.commandGuess(ctx, m, args)
	case "pass":
		b.commandPass(ctx, m, args)
	case "top":
		b.commandTop(ctx, m, args)
	case "rush":
		b.commandRush(ctx, m)
	case "reset":
		b.commandReset(ctx, m)
	case "help":
		b.reply(m.ChannelID, helpText)
	}
}

const helpText = "**Sauce Kingdom commands**\n" +
	"`-profile` `-daily` `-weekly` `-box` `-open <tier>` `-shop` `-buy <item>` `-rush`\n" +
	"`-build <building>` `-collect` `-catch` `-guess <n>` `-pass [claim <tier>]` `-top <board>`"

func (b *botHandler) commandProfile(ctx context.Context, m *discordgo.MessageCreate) {
	serviceUser, err := do.Invoke[*services.ServiceUser](b.container)
	if err != nil {
		return
	}

	profile, err := serviceUser.GetProfile(ctx, m.Author.ID, m.GuildID)
	if err != nil {
		b.reply(m.ChannelID, "Couldn't load your profile.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** — level %d (%d/%d XP), golden tier %d\n",
		profile.User.Username, profile.Level, profile.LevelXP, profile.LevelXP+profile.NextLevel, profile.GoldenTier)
	for _, balance := range profile.Balances {
		fmt.Fprintf(&sb, "%s: %d  ", balance.Currency, balance.Amount)
	}
	b.reply(m.ChannelID, sb.String())
}

func (b *botHandler) commandClaim(ctx context.Context, m *discordgo.MessageCreate, kind string) {
	serviceUser, err := do.Invoke[*services.ServiceUser](b.container)
	if err != nil {
		return
	}

	var result *models.Result
	if kind == "daily" {
		result, err = serviceUser.ClaimDaily(ctx, m.Author.ID, m.GuildID)
	} else {
		result, err = serviceUser.ClaimWeekly(ctx, m.Author.ID, m.GuildID)
	}
	if err != nil {
		log.Println("claim:", err)
		return
	}

	if result.Status == models.StatusCooldown {
		b.reply(m.ChannelID, "You already claimed your %s reward. Come back later!", kind)
		return
	}

	b.reply(m.ChannelID, "🎁 %s claim: %s (streak %v)", kind, renderOutcomes(result), result.Detail["streak"])
}

func (b *botHandler) commandBox(ctx context.Context, m *discordgo.MessageCreate) {
	serviceEconomy, err := do.Invoke[*services.ServiceEconomy](b.container)
	if err != nil {
		return
	}

	result, err := serviceEconomy.RollBox(ctx, m.Author.ID)
	if err != nil {
		log.Println("roll box:", err)
		return
	}

	if result.Status == models.StatusCooldown {
		b.reply(m.ChannelID, "Your next free box isn't ready yet.")
		return
	}

	b.reply(m.ChannelID, "🎁 You received a **%v** box! Open it with `-open %v`.", result.Detail["tier"], result.Detail["tier"])
}

func (b *botHandler) commandOpen(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	tier := rewards.BoxSmall
	if len(args) > 0 {
		tier = strings.ToLower(args[0])
	}

	serviceEconomy, err := do.Invoke[*services.ServiceEconomy](b.container)
	if err != nil {
		return
	}

	result, err := serviceEconomy.OpenBox(ctx, m.Author.ID, m.GuildID, tier)
	if err != nil {
		log.Println("open box:", err)
		return
	}

	switch result.Status {
	case models.StatusInsufficientFunds:
		b.reply(m.ChannelID, "You don't have a %s box.", tier)
	case models.StatusOK:
		prefix := "📦"
		if result.Detail["sugar_rush"] == true {
			prefix = "🍭 SUGAR RUSH"
		}
		b.reply(m.ChannelID, "%s opened a %s box: %s", prefix, tier, renderOutcomes(result))
	}
}

func (b *botHandler) commandShop(m *discordgo.MessageCreate) {
	b.reply(m.ChannelID, "**Shop**: small-box (20 gold), regular-box (45 gold), big-box (110 gold), mega-box (250 gold), mystery-box (8 diamonds). `-buy <item>`")
}

func (b *botHandler) commandBuy(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		b.reply(m.ChannelID, "Usage: `-buy <item>`")
		return
	}

	serviceEconomy, err := do.Invoke[*services.ServiceEconomy](b.container)
	if err != nil {
		return
	}

	result, err := serviceEconomy.BuyItem(ctx, m.Author.ID, m.GuildID, strings.ToLower(args[0]))
	if err != nil {
		b.reply(m.ChannelID, "That's not for sale.")
		return
	}

	if result.Status == models.StatusInsufficientFunds {
		b.reply(m.ChannelID, "Not enough funds, you're short %v.", result.Detail["shortfall"])
		return
	}

	b.reply(m.ChannelID, "🛒 Bought: %s", renderOutcomes(result))
}

func (b *botHandler) commandBuild(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		b.reply(m.ChannelID, "Usage: `-build <building>` e.g. `-build lumbermill`")
		return
	}

	serviceBuilding, err := do.Invoke[*services.ServiceBuilding](b.container)
	if err != nil {
		return
	}

	result, err := serviceBuilding.Upgrade(ctx, m.Author.ID, m.GuildID, strings.ToLower(args[0]))
	if err != nil {
		b.reply(m.ChannelID, "Unknown building.")
		return
	}

	switch result.Status {
	case models.StatusMissingPrerequisite:
		b.reply(m.ChannelID, "🚧 Missing prerequisites: %v", result.Detail["missing"])
	case models.StatusMaxLevel:
		b.reply(m.ChannelID, "That building is already max level.")
	case models.StatusInsufficientFunds:
		b.reply(m.ChannelID, "Not enough resources, short %v.", result.Detail["shortfall"])
	case models.StatusOK:
		b.reply(m.ChannelID, "🏗️ %v is now level %v!", result.Detail["building"], result.Detail["level"])
	}
}

func (b *botHandler) commandCollect(ctx context.Context, m *discordgo.MessageCreate) {
	serviceBuilding, err := do.Invoke[*services.ServiceBuilding](b.container)
	if err != nil {
		return
	}

	result, err := serviceBuilding.Collect(ctx, m.Author.ID, m.GuildID)
	if err != nil {
		log.Println("collect:", err)
		return
	}

	if result.Status == models.StatusNothingToClaim {
		b.reply(m.ChannelID, "Nothing ready to collect yet.")
		return
	}

	b.reply(m.ChannelID, "⛏️ Collected from %v buildings: %s", result.Detail["collected"], renderOutcomes(result))
}

func (b *botHandler) commandCatch(ctx context.Context, m *discordgo.MessageCreate) {
	serviceActivity, err := do.Invoke[*services.ServiceActivity](b.container)
	if err != nil {
		return
	}

	result, err := serviceActivity.CatchDrop(ctx, m.ChannelID, m.Author.ID, m.GuildID)
	if err != nil {
		log.Println("catch:", err)
		return
	}

	switch result.Status {
	case models.StatusOK:
		b.reply(m.ChannelID, "🌟 <@"+m.Author.ID+"> caught a **%v** Starr Drop: %s", result.Detail["rarity"], renderOutcomes(result))
	case models.StatusAlreadyClaimed, models.StatusNothingToClaim:
		b.reply(m.ChannelID, "Too slow, nothing to catch.")
	case models.StatusExpired:
		b.reply(m.ChannelID, "The drop just expired.")
	}
}

func (b *botHandler) commandGuess(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return
	}

	serviceActivity, err := do.Invoke[*services.ServiceActivity](b.container)
	if err != nil {
		return
	}

	result, err := serviceActivity.SubmitGuess(ctx, m.ChannelID, m.Author.ID, m.GuildID, n)
	if err != nil {
		log.Println("guess:", err)
		return
	}

	switch result.Status {
	case models.StatusOK:
		b.reply(m.ChannelID, "🎯 <@"+m.Author.ID+"> nailed it! %s", renderOutcomes(result))
	case models.StatusWrongAnswer:
		b.reply(m.ChannelID, "Try %v! %v attempts left.", result.Detail["hint"], result.Detail["attempts_left"])
	case models.StatusAttemptsExhausted:
		b.reply(m.ChannelID, "<@"+m.Author.ID+"> you're out of guesses for this round.")
	}
}

func (b *botHandler) commandPass(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	servicePass, err := do.Invoke[*services.ServicePass](b.container)
	if err != nil {
		return
	}

	if len(args) == 2 && strings.ToLower(args[0]) == "claim" {
		tier, err := strconv.Atoi(args[1])
		if err != nil {
			return
		}

		result, err := servicePass.ClaimTier(ctx, m.Author.ID, m.GuildID, tier)
		if err != nil {
			log.Println("pass claim:", err)
			return
		}

		switch result.Status {
		case models.StatusOK:
			b.reply(m.ChannelID, "🏅 Golden Pass tier %d claimed: %s", tier, renderOutcomes(result))
		case models.StatusAlreadyClaimed:
			b.reply(m.ChannelID, "Tier %d is already claimed.", tier)
		case models.StatusNothingToClaim:
			b.reply(m.ChannelID, "You haven't reached tier %d yet (currently %v).", tier, result.Detail["tier"])
		}
		return
	}

	result, err := servicePass.GetPass(ctx, m.Author.ID)
	if err != nil {
		log.Println("pass:", err)
		return
	}

	b.reply(m.ChannelID, "🏅 Golden Pass: tier %v, %v XP to the next tier. Claim with `-pass claim <tier>`.",
		result.Detail["tier"], result.Detail["next_tier_xp"])
}

func (b *botHandler) commandRush(ctx context.Context, m *discordgo.MessageCreate) {
	serviceEconomy, err := do.Invoke[*services.ServiceEconomy](b.container)
	if err != nil {
		return
	}

	serviceConfig, err := do.Invoke[*services.ServiceConfig](b.container)
	if err != nil {
		return
	}

	minutes, _ := serviceConfig.GetIntConfig(ctx, services.CONFIG_BOOST_DURATION_MINUTES, services.BOOST_DURATION_DEFAULT)

	result, err := serviceEconomy.ActivateSugarRush(ctx, m.Author.ID, m.GuildID, time.Duration(minutes)*time.Minute)
	if err != nil {
		log.Println("rush:", err)
		return
	}

	switch result.Status {
	case models.StatusCooldown:
		b.reply(m.ChannelID, "A Sugar Rush is already running for you.")
	case models.StatusInsufficientFunds:
		b.reply(m.ChannelID, "A Sugar Rush costs %d diamonds, you're short %v.", services.SugarRushPrice, result.Detail["shortfall"])
	case models.StatusOK:
		b.reply(m.ChannelID, "🍭 <@"+m.Author.ID+"> started a personal Sugar Rush for %d minutes!", minutes)
	}
}

func (b *botHandler) commandReset(ctx context.Context, m *discordgo.MessageCreate) {
	perms, err := b.session.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil || perms&discordgo.PermissionManageChannels == 0 {
		return
	}

	serviceActivity, err := do.Invoke[*services.ServiceActivity](b.container)
	if err != nil {
		return
	}

	if err := serviceActivity.ResetChannel(ctx, m.ChannelID); err != nil {
		log.Println("reset:", err)
		return
	}

	b.reply(m.ChannelID, "🔄 Spawn cooldown cleared for this channel.")
}

func (b *botHandler) commandTop(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	board := models.BOARD_GOLD
	if len(args) > 0 {
		board = strings.ToLower(args[0])
	}

	serviceLeaderboard, err := do.Invoke[*services.ServiceLeaderboard](b.container)
	if err != nil {
		return
	}

	entries, err := serviceLeaderboard.GetLeaderboard(ctx, m.GuildID, board)
	if err != nil {
		log.Println("leaderboard:", err)
		return
	}
	if len(entries) == 0 {
		b.reply(m.ChannelID, "The %s board is empty.", board)
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**Top %s**\n", board)
	for _, entry := range entries {
		name := entry.Username
		if name == "" {
			name = entry.UserID
		}
		fmt.Fprintf(&sb, "%d. %s — %d\n", entry.Rank, name, entry.Score)
	}
	b.reply(m.ChannelID, sb.String())
}

func renderOutcomes(result *models.Result) string {
	var parts []string
	for _, outcome := range result.Outcomes {
		for _, grant := range outcome.Grants {
			switch grant.Kind {
			case rewards.GrantCurrency:
				parts = append(parts, fmt.Sprintf("%d %s", grant.Amount, grant.Currency))
			case rewards.GrantCollectible:
				parts = append(parts, fmt.Sprintf("%s (%s)", grant.Collectible, grant.CollectibleKind))
			case rewards.GrantBox:
				parts = append(parts, fmt.Sprintf("%d× %s box", grant.Quantity, grant.Box))
			}
		}
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, ", ")
}
