package bot

import (
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/perkycoffee/perkyjump/internal/model"
)

func welcomeText(name string) string {
	return fmt.Sprintf("☕ Welcome to *Perky Jump*, %s!\n\nBounce your way up, collect beans, climb the leaderboard. Pick an option below.", name)
}

func menuText(name string) string {
	return fmt.Sprintf("☕ *Perky Jump*\n\nWhat next, %s?", name)
}

func helpText() string {
	var sb strings.Builder
	sb.WriteString("*How to play*\n\n")
	sb.WriteString("Tap *Play* to open the game. Jump from platform to platform, the higher you get the better your score.\n\n")
	sb.WriteString("Beans you collect in runs add up and can be spent on skins in the shop.\n\n")
	sb.WriteString("Commands:\n/start - main menu\n/help - this message")
	return sb.String()
}

func statsText(player *model.Player) string {
	if player == nil {
		return "No stats yet. Play a round first!"
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 *Stats for %s*\n\n", player.DisplayName))
	sb.WriteString(fmt.Sprintf("🏔 Best height: *%d*\n", player.MaxHeight))
	sb.WriteString(fmt.Sprintf("🫘 Beans: *%d*\n", player.TotalBeans))
	sb.WriteString(fmt.Sprintf("🎮 Games played: *%d*", player.GamesPlayed))
	return sb.String()
}

func leaderboardText(entries []model.LeaderboardEntry) string {
	if len(entries) == 0 {
		return "🏆 *Leaderboard*\n\nNobody has played yet. Be the first!"
	}
	var sb strings.Builder
	sb.WriteString("🏆 *Leaderboard*\n\n")
	for _, entry := range entries {
		sb.WriteString(fmt.Sprintf("%s %s — %d\n", rankBadge(entry.Rank), entry.DisplayName, entry.MaxHeight))
	}
	return sb.String()
}

func rankBadge(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d.", rank)
	}
}

func shopText(statuses []model.SkinStatus, beans int) string {
	var sb strings.Builder
	sb.WriteString("🛍 *Skin shop*\n\n")
	sb.WriteString(fmt.Sprintf("Your beans: *%d*\n\n", beans))
	for _, status := range statuses {
		sb.WriteString(fmt.Sprintf("%s *%s*", skinBadge(status), status.Skin.Name))
		if !status.Skin.IsDefault && !status.Owned {
			sb.WriteString(fmt.Sprintf(" — %d beans", status.Skin.Price))
		}
		sb.WriteString("\n")
		if status.Skin.Description != "" {
			sb.WriteString(fmt.Sprintf("_%s_\n", status.Skin.Description))
		}
	}
	return sb.String()
}

func skinBadge(status model.SkinStatus) string {
	switch {
	case status.Active:
		return "✅"
	case status.Owned:
		return "📦"
	default:
		return "🔒"
	}
}

func purchaseErrorText(err error) string {
	switch {
	case errors.Is(err, model.ErrInsufficientBeans):
		return "Not enough beans. Go collect some more!"
	case errors.Is(err, model.ErrSkinAlreadyOwned):
		return "You already own that skin."
	case errors.Is(err, model.ErrSkinNotPurchasable):
		return "That skin is not for sale."
	case errors.Is(err, model.ErrSkinNotOwned):
		return "Buy that skin first."
	case errors.Is(err, model.ErrSkinNotFound):
		return "That skin does not exist."
	default:
		return "Something went wrong, try again."
	}
}

func mainMenuKeyboard(webAppURL string) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	if webAppURL != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.InlineKeyboardButton{
				Text:   "🎮 Play",
				WebApp: &tgbotapi.WebAppInfo{URL: webAppURL},
			},
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 My stats", "stats"),
			tgbotapi.NewInlineKeyboardButtonData("🏆 Leaderboard", "leaderboard"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛍 Shop", "shop"),
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ Help", "help"),
		),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", "menu"),
		),
	)
}

func shopKeyboard(statuses []model.SkinStatus) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, status := range statuses {
		switch {
		case status.Active:
			// nothing to do for the equipped skin
		case status.Owned || status.Skin.IsDefault:
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("Equip %s", status.Skin.Name),
					fmt.Sprintf("equip:%s", status.Skin.ID),
				),
			))
		default:
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("Buy %s (%d)", status.Skin.Name, status.Skin.Price),
					fmt.Sprintf("buy:%s", status.Skin.ID),
				),
			))
		}
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", "menu"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
