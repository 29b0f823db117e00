package bot

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/perkycoffee/perkyjump/internal/model"
	"github.com/perkycoffee/perkyjump/internal/services/ledger"
)

// Bot routes Telegram commands and button callbacks to the ledger
type Bot struct {
	api       *tgbotapi.BotAPI
	ledger    *ledger.Service
	logger    *slog.Logger
	webAppURL string
}

// New creates the bot and authenticates against the Telegram API
func New(token, webAppURL string, ledgerService *ledger.Service, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	logger.Info("telegram bot authorized", slog.String("username", api.Self.UserName))

	return &Bot{
		api:       api,
		ledger:    ledgerService,
		logger:    logger,
		webAppURL: webAppURL,
	}, nil
}

// RegisterWebhook points Telegram at the given public URL
func (b *Bot) RegisterWebhook(url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return err
	}
	_, err = b.api.Request(wh)
	return err
}

// WebhookHandler returns the HTTP handler Telegram posts updates to
func (b *Bot) WebhookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			b.logger.Warn("malformed webhook update", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		b.HandleUpdate(r.Context(), update)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

// HandleUpdate dispatches one Telegram update
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.handleStart(ctx, msg)
	case "help":
		reply := tgbotapi.NewMessage(msg.Chat.ID, helpText())
		reply.ParseMode = tgbotapi.ModeMarkdown
		b.send(reply)
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	user := msg.From
	if user == nil {
		return
	}

	player, err := b.ledger.SyncPlayer(ctx, model.PlayerID(user.ID), displayName(user))
	if err != nil {
		b.logger.Error("failed to sync player", slog.Int64("user_id", user.ID), slog.String("error", err.Error()))
		return
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, welcomeText(player.DisplayName))
	reply.ParseMode = tgbotapi.ModeMarkdown
	reply.ReplyMarkup = mainMenuKeyboard(b.webAppURL)
	b.send(reply)
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// Always ack so the client stops its spinner
	b.request(tgbotapi.NewCallback(query.ID, ""))

	if query.From == nil || query.Message == nil {
		return
	}
	playerID := model.PlayerID(query.From.ID)

	var (
		text   string
		markup tgbotapi.InlineKeyboardMarkup
	)

	data := query.Data
	switch {
	case data == "stats":
		text, markup = b.statsView(ctx, playerID)
	case data == "leaderboard":
		text, markup = b.leaderboardView(ctx)
	case data == "shop":
		text, markup = b.shopView(ctx, playerID)
	case data == "help":
		text, markup = helpText(), backKeyboard()
	case data == "menu":
		text, markup = menuText(displayName(query.From)), mainMenuKeyboard(b.webAppURL)
	case strings.HasPrefix(data, "buy:"):
		b.handleBuy(ctx, playerID, model.SkinID(strings.TrimPrefix(data, "buy:")), query)
		text, markup = b.shopView(ctx, playerID)
	case strings.HasPrefix(data, "equip:"):
		b.handleEquip(ctx, playerID, model.SkinID(strings.TrimPrefix(data, "equip:")), query)
		text, markup = b.shopView(ctx, playerID)
	default:
		return
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(query.Message.Chat.ID, query.Message.MessageID, text, markup)
	edit.ParseMode = tgbotapi.ModeMarkdown
	b.request(edit)
}

func (b *Bot) statsView(ctx context.Context, id model.PlayerID) (string, tgbotapi.InlineKeyboardMarkup) {
	player, err := b.ledger.GetPlayerStats(ctx, id)
	if err != nil {
		return statsText(nil), backKeyboard()
	}
	return statsText(player), backKeyboard()
}

func (b *Bot) leaderboardView(ctx context.Context) (string, tgbotapi.InlineKeyboardMarkup) {
	entries, err := b.ledger.GetLeaderboard(ctx, ledger.DefaultLeaderboardLimit)
	if err != nil {
		b.logger.Error("failed to load leaderboard", slog.String("error", err.Error()))
		entries = nil
	}
	return leaderboardText(entries), backKeyboard()
}

func (b *Bot) shopView(ctx context.Context, id model.PlayerID) (string, tgbotapi.InlineKeyboardMarkup) {
	player, err := b.ledger.GetPlayerStats(ctx, id)
	if err != nil {
		return shopText(nil, 0), backKeyboard()
	}
	statuses, err := b.ledger.ListSkins(ctx, id)
	if err != nil {
		return shopText(nil, player.TotalBeans), backKeyboard()
	}
	return shopText(statuses, player.TotalBeans), shopKeyboard(statuses)
}

func (b *Bot) handleBuy(ctx context.Context, id model.PlayerID, skinID model.SkinID, query *tgbotapi.CallbackQuery) {
	_, err := b.ledger.PurchaseSkin(ctx, id, skinID)
	if err != nil {
		b.request(tgbotapi.NewCallbackWithAlert(query.ID, purchaseErrorText(err)))
		return
	}
	b.logger.Info("skin bought via bot",
		slog.Int64("user_id", int64(id)),
		slog.String("skin_id", string(skinID)),
	)
}

func (b *Bot) handleEquip(ctx context.Context, id model.PlayerID, skinID model.SkinID, query *tgbotapi.CallbackQuery) {
	if _, err := b.ledger.ActivateSkin(ctx, id, skinID); err != nil {
		b.request(tgbotapi.NewCallbackWithAlert(query.ID, purchaseErrorText(err)))
	}
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.logger.Error("failed to send message", slog.String("error", err.Error()))
	}
}

func (b *Bot) request(c tgbotapi.Chattable) {
	if _, err := b.api.Request(c); err != nil {
		b.logger.Error("telegram request failed", slog.String("error", err.Error()))
	}
}

// displayName picks the friendliest available name for a Telegram user
func displayName(user *tgbotapi.User) string {
	if user.FirstName != "" {
		return user.FirstName
	}
	return user.UserName
}
