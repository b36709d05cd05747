package api

import (
	"context"

	"gestorpro/internal/models"
)

// GetPromptsByProjectID fetches the prompt log of one project
func (g *Gateway) GetPromptsByProjectID(ctx context.Context, projectID string) ([]models.Prompt, error) {
	raw, err := g.callData(ctx, "getPromptsByProjectId", projectID)
	if err != nil {
		return nil, err
	}
	return decode[[]models.Prompt]("getPromptsByProjectId", raw)
}

// AddPrompt logs a prompt/response pair and returns the record with its
// assigned id and creation timestamp
func (g *Gateway) AddPrompt(ctx context.Context, prompt models.Prompt) (models.Prompt, error) {
	if err := prompt.Validate(); err != nil {
		return models.Prompt{}, err
	}
	prompt.ID = ""
	prompt.CreatedAt = ""
	raw, err := g.callData(ctx, "addPrompt", prompt)
	if err != nil {
		return models.Prompt{}, err
	}
	return decode[models.Prompt]("addPrompt", raw)
}

// UpdatePrompt saves changes to a logged prompt, including its pin flag
func (g *Gateway) UpdatePrompt(ctx context.Context, prompt models.Prompt) (models.Prompt, error) {
	if err := prompt.Validate(); err != nil {
		return models.Prompt{}, err
	}
	raw, err := g.callData(ctx, "updatePrompt", prompt)
	if err != nil {
		return models.Prompt{}, err
	}
	return decode[models.Prompt]("updatePrompt", raw)
}

// DeletePrompt removes a logged prompt by id
func (g *Gateway) DeletePrompt(ctx context.Context, promptID string) error {
	_, err := g.callData(ctx, "deletePrompt", promptID)
	return err
}
