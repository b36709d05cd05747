package api

import (
	"context"

	"gestorpro/internal/models"
)

// GetProjects fetches every project record; the backend joins in clientName
func (g *Gateway) GetProjects(ctx context.Context) ([]models.Project, error) {
	raw, err := g.callData(ctx, "getProjects", nil)
	if err != nil {
		return nil, err
	}
	return decode[[]models.Project]("getProjects", raw)
}

// AddProject creates a project and returns the record with its assigned id
func (g *Gateway) AddProject(ctx context.Context, project models.Project) (models.Project, error) {
	if err := project.Validate(); err != nil {
		return models.Project{}, err
	}
	// clientName is server-computed, never sent
	project.ID = ""
	project.ClientName = ""
	raw, err := g.callData(ctx, "addProject", project)
	if err != nil {
		return models.Project{}, err
	}
	return decode[models.Project]("addProject", raw)
}

// UpdateProject saves changes to an existing project
func (g *Gateway) UpdateProject(ctx context.Context, project models.Project) (models.Project, error) {
	if err := project.Validate(); err != nil {
		return models.Project{}, err
	}
	project.ClientName = ""
	raw, err := g.callData(ctx, "updateProject", project)
	if err != nil {
		return models.Project{}, err
	}
	return decode[models.Project]("updateProject", raw)
}

// DeleteProject removes a project by id
func (g *Gateway) DeleteProject(ctx context.Context, projectID string) error {
	_, err := g.callData(ctx, "deleteProject", projectID)
	return err
}
