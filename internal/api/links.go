package api

import (
	"context"

	"gestorpro/internal/models"
)

// GetLinksByProjectID fetches the links attached to one project
func (g *Gateway) GetLinksByProjectID(ctx context.Context, projectID string) ([]models.Link, error) {
	raw, err := g.callData(ctx, "getLinksByProjectId", projectID)
	if err != nil {
		return nil, err
	}
	return decode[[]models.Link]("getLinksByProjectId", raw)
}

// AddLink creates a link and returns the record with its assigned id and
// creation timestamp
func (g *Gateway) AddLink(ctx context.Context, link models.Link) (models.Link, error) {
	if err := link.Validate(); err != nil {
		return models.Link{}, err
	}
	link.ID = ""
	link.CreatedAt = ""
	raw, err := g.callData(ctx, "addLink", link)
	if err != nil {
		return models.Link{}, err
	}
	return decode[models.Link]("addLink", raw)
}

// UpdateLink saves changes to an existing link, including its pin flag
func (g *Gateway) UpdateLink(ctx context.Context, link models.Link) (models.Link, error) {
	if err := link.Validate(); err != nil {
		return models.Link{}, err
	}
	raw, err := g.callData(ctx, "updateLink", link)
	if err != nil {
		return models.Link{}, err
	}
	return decode[models.Link]("updateLink", raw)
}

// DeleteLink removes a link by id
func (g *Gateway) DeleteLink(ctx context.Context, linkID string) error {
	_, err := g.callData(ctx, "deleteLink", linkID)
	return err
}
