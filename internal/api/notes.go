package api

import (
	"context"

	"gestorpro/internal/models"
)

// GetNotesByProjectID fetches the notes attached to one project
func (g *Gateway) GetNotesByProjectID(ctx context.Context, projectID string) ([]models.Note, error) {
	raw, err := g.callData(ctx, "getNotesByProjectId", projectID)
	if err != nil {
		return nil, err
	}
	return decode[[]models.Note]("getNotesByProjectId", raw)
}

// AddNote creates a note and returns the record with its assigned id and
// creation timestamp
func (g *Gateway) AddNote(ctx context.Context, note models.Note) (models.Note, error) {
	if err := note.Validate(); err != nil {
		return models.Note{}, err
	}
	note.ID = ""
	note.CreatedAt = ""
	raw, err := g.callData(ctx, "addNote", note)
	if err != nil {
		return models.Note{}, err
	}
	return decode[models.Note]("addNote", raw)
}

// UpdateNote saves changes to an existing note, including its pin flag
func (g *Gateway) UpdateNote(ctx context.Context, note models.Note) (models.Note, error) {
	if err := note.Validate(); err != nil {
		return models.Note{}, err
	}
	raw, err := g.callData(ctx, "updateNote", note)
	if err != nil {
		return models.Note{}, err
	}
	return decode[models.Note]("updateNote", raw)
}

// DeleteNote removes a note by id
func (g *Gateway) DeleteNote(ctx context.Context, noteID string) error {
	_, err := g.callData(ctx, "deleteNote", noteID)
	return err
}
