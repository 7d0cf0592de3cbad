package bot

import (
	"context"
	"fmt"
	"strings"

	"freshnest-bot/internal/config"
	"freshnest-bot/internal/storage"
	"freshnest-bot/pkg/api"
	"freshnest-bot/pkg/redis"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Bot struct {
	bot      *tgbotapi.BotAPI
	logger   *zap.Logger
	state    *StateStorage
	storage  *storage.PostgresStorage
	api      *api.Client
	cfg      *config.Config
	handlers map[string]func(context.Context, int64, string)
}

func New(
	token string,
	apiClient *api.Client,
	redisClient *redis.Client,
	pgStorage *storage.PostgresStorage,
	cfg *config.Config,
	logger *zap.Logger,
) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	logger.Info("Bot authorized",
		zap.String("username", botAPI.Self.UserName),
		zap.Int64("id", botAPI.Self.ID))

	b := &Bot{
		bot:     botAPI,
		logger:  logger,
		state:   NewStateStorage(redisClient, cfg.Redis.TTL),
		storage: pgStorage,
		api:     apiClient,
		cfg:     cfg,
	}

	b.registerHandlers()
	return b, nil
}

func (b *Bot) registerHandlers() {
	b.handlers = map[string]func(context.Context, int64, string){
		StepMainMenu:      b.handleMainMenu,
		StepServiceSelect: b.handleServiceSelect,

		StepSqftRange:  b.handleSqftRange,
		StepBedrooms:   b.handleBedrooms,
		StepBathrooms:  b.handleBathrooms,
		StepHalfBaths:  b.handleHalfBaths,
		StepBasement:   b.handleBasement,
		StepHours:      b.handleHours,
		StepCleaners:   b.handleCleaners,
		StepOfficeSqft: b.handleOfficeSqft,
		StepWashrooms:  b.handleWashrooms,
		StepKitchen:    b.handleKitchen,
		StepFlooring:   b.handleFlooring,

		StepAddOns:        b.handleAddOnsText,
		StepFrequency:     b.handleFrequency,
		StepQuote:         b.handleQuote,
		StepTip:           b.handleTip,
		StepDate:          b.handleDate,
		StepManualDate:    b.handleManualDate,
		StepArrivalWindow: b.handleArrivalWindow,
		StepAddress:       b.handleAddress,
		StepPostalCode:    b.handlePostalCode,
		StepName:          b.handleName,
		StepEmail:         b.handleEmail,
		StepContactMethod: b.handleContactMethod,
		StepPhone:         b.handlePhone,
		StepNotes:         b.handleNotes,
		StepConfirm:       b.handleConfirm,

		StepApplyFirstName:    b.handleApplyFirstName,
		StepApplyLastName:     b.handleApplyLastName,
		StepApplyEmail:        b.handleApplyEmail,
		StepApplyPhone:        b.handleApplyPhone,
		StepApplyExperience:   b.handleApplyExperience,
		StepApplyLicense:      b.handleApplyLicense,
		StepApplyAvailability: b.handleApplyAvailability,
		StepApplyMessage:      b.handleApplyMessage,
		StepApplyResume:       b.handleApplyResume,
		StepApplyConfirm:      b.handleApplyConfirm,
	}
}

func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Shutting down bot")
			return nil

		case update := <-updates:
			if update.Message != nil {
				b.processMessage(ctx, update.Message)
			} else if update.CallbackQuery != nil {
				b.processCallback(ctx, update.CallbackQuery)
			}
		}
	}
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.Contact != nil {
		b.handleSharedContact(ctx, chatID, msg.Contact.PhoneNumber)
		return
	}

	b.logger.Debug("Processing message",
		zap.Int64("chat_id", chatID),
		zap.String("text", msg.Text))

	if msg.IsCommand() {
		b.handleCommand(ctx, chatID, msg.Command(), strings.Fields(msg.CommandArguments()))
		return
	}

	state, err := b.state.Get(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to get user state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	if handler, exists := b.handlers[state.Step]; exists {
		handler(ctx, chatID, strings.TrimSpace(msg.Text))
	} else {
		b.handleDefault(ctx, chatID)
	}
}

func (b *Bot) processCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID
	data := callback.Data

	b.logger.Debug("Processing callback",
		zap.Int64("chat_id", chatID),
		zap.String("data", data))

	// Acknowledge so the client stops its spinner.
	if _, err := b.bot.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logger.Warn("Failed to answer callback", zap.Error(err))
	}

	switch {
	case strings.HasPrefix(data, "addon:"):
		b.handleAddOnToggle(ctx, callback)
	case data == "addons:done":
		b.handleAddOnsDone(ctx, callback)
	case strings.HasPrefix(data, "status:"):
		b.handleStatusCallback(ctx, callback)
	}
}

// handleSharedContact accepts the "share my contact" button wherever the
// wizard is waiting for a phone number.
func (b *Bot) handleSharedContact(ctx context.Context, chatID int64, phone string) {
	state, err := b.state.Get(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to get user state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return
	}

	normalized := NormalizePhoneNumber(phone)
	switch state.Step {
	case StepContactMethod, StepPhone:
		b.handlePhone(ctx, chatID, normalized)
	case StepApplyPhone:
		b.handleApplyPhone(ctx, chatID, normalized)
	}
}

func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) {
	if _, err := b.bot.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Int64("chat_id", msg.ChatID),
			zap.String("text", msg.Text),
			zap.Error(err))
	}
}

func (b *Bot) sendError(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "❌ "+text)
	b.sendMessage(msg)
}

func (b *Bot) setStep(ctx context.Context, chatID int64, step string) {
	if err := b.state.SetStep(ctx, chatID, step); err != nil {
		b.logger.Error("Failed to set step",
			zap.Int64("chat_id", chatID),
			zap.String("step", step),
			zap.Error(err))
	}
}

func (b *Bot) isAdmin(chatID int64) bool {
	if chatID == b.cfg.Admin.ChatID && chatID != 0 {
		return true
	}
	for _, id := range b.cfg.Admin.IDs {
		if id == chatID {
			return true
		}
	}
	return false
}
