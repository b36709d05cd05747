package api

import (
	"context"

	"gestorpro/internal/models"
)

// QRCode is the pairing payload the builder-bot platform serves while a bot
// is in the READY_TO_SCAN state
type QRCode struct {
	QR string `json:"qr"`
}

// GetBots fetches the whole bot fleet with live status fields
func (g *Gateway) GetBots(ctx context.Context) ([]models.Bot, error) {
	raw, err := g.callData(ctx, "getBots", nil)
	if err != nil {
		return nil, err
	}
	return decode[[]models.Bot]("getBots", raw)
}

// AddBot registers a bot and returns the record with its assigned id;
// status and timestamps are server-owned and never sent
func (g *Gateway) AddBot(ctx context.Context, bot models.Bot) (models.Bot, error) {
	if err := bot.Validate(); err != nil {
		return models.Bot{}, err
	}
	bot.ID = ""
	bot.Status = ""
	bot.CreatedAt = ""
	bot.UpdatedAt = ""
	bot.OnlineSince = ""
	bot.LastOnlineDuration = ""
	raw, err := g.callData(ctx, "addBot", bot)
	if err != nil {
		return models.Bot{}, err
	}
	return decode[models.Bot]("addBot", raw)
}

// UpdateBot saves changes to an existing bot
func (g *Gateway) UpdateBot(ctx context.Context, bot models.Bot) (models.Bot, error) {
	if err := bot.Validate(); err != nil {
		return models.Bot{}, err
	}
	raw, err := g.callData(ctx, "updateBot", bot)
	if err != nil {
		return models.Bot{}, err
	}
	return decode[models.Bot]("updateBot", raw)
}

// DeleteBot removes a bot by record id
func (g *Gateway) DeleteBot(ctx context.Context, botID string) error {
	_, err := g.callData(ctx, "deleteBot", botID)
	return err
}

// ConnectBot asks the backend to bring a bot online. Takes the record id;
// the backend resolves the builder-bot id itself.
func (g *Gateway) ConnectBot(ctx context.Context, botID string) error {
	_, err := g.callData(ctx, "connectBot", botID)
	return err
}

// DisconnectBot asks the backend to shut a bot down
func (g *Gateway) DisconnectBot(ctx context.Context, botID string) error {
	_, err := g.callData(ctx, "disconnectBot", botID)
	return err
}

// GetBotQRCode fetches the pairing code for a bot that is ready to scan.
// Takes the builder-bot id, not the record id.
func (g *Gateway) GetBotQRCode(ctx context.Context, builderBotID string) (QRCode, error) {
	if builderBotID == "" {
		return QRCode{}, models.ErrNoBuilderBotID
	}
	raw, err := g.callData(ctx, "getBotQrCode", builderBotID)
	if err != nil {
		return QRCode{}, err
	}
	return decode[QRCode]("getBotQrCode", raw)
}

// GetBotFlows fetches the conversation flows configured for a bot on the
// hosting platform. Takes the builder-bot id, not the record id.
func (g *Gateway) GetBotFlows(ctx context.Context, builderBotID string) ([]models.Flow, error) {
	if builderBotID == "" {
		return nil, models.ErrNoBuilderBotID
	}
	raw, err := g.callData(ctx, "getBotFlows", builderBotID)
	if err != nil {
		return nil, err
	}
	return decode[[]models.Flow]("getBotFlows", raw)
}
