package api

import (
	"context"

	"gestorpro/internal/models"
)

// GetClients fetches every client record
func (g *Gateway) GetClients(ctx context.Context) ([]models.Client, error) {
	raw, err := g.callData(ctx, "getClients", nil)
	if err != nil {
		return nil, err
	}
	return decode[[]models.Client]("getClients", raw)
}

// GetClientByPhone looks up a single client; nil when no record matches
func (g *Gateway) GetClientByPhone(ctx context.Context, phone string) (*models.Client, error) {
	raw, err := g.callData(ctx, "getClientByPhone", phone)
	if err != nil {
		return nil, err
	}
	return decode[*models.Client]("getClientByPhone", raw)
}

// AddClient creates a client and returns the record with its assigned id
func (g *Gateway) AddClient(ctx context.Context, client models.Client) (models.Client, error) {
	if err := client.Validate(); err != nil {
		return models.Client{}, err
	}
	client.ID = ""
	raw, err := g.callData(ctx, "addClient", client)
	if err != nil {
		return models.Client{}, err
	}
	return decode[models.Client]("addClient", raw)
}

// UpdateClient saves changes to an existing client
func (g *Gateway) UpdateClient(ctx context.Context, client models.Client) (models.Client, error) {
	if err := client.Validate(); err != nil {
		return models.Client{}, err
	}
	raw, err := g.callData(ctx, "updateClient", client)
	if err != nil {
		return models.Client{}, err
	}
	return decode[models.Client]("updateClient", raw)
}

// DeleteClient removes a client by id
func (g *Gateway) DeleteClient(ctx context.Context, clientID string) error {
	_, err := g.callData(ctx, "deleteClient", clientID)
	return err
}
