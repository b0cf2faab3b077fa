// Package projects stores portfolio projects and their tech stack entries.
package projects

import (
	"context"

	"github.com/dmitrijs2005/folio/internal/server/models"
)

// Repository hides soft-deleted projects from every read.
type Repository interface {
	Create(ctx context.Context, project *models.Project) (*models.Project, error)
	Get(ctx context.Context, id int64) (*models.Project, error)
	List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	SoftDelete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	Recent(ctx context.Context, limit int) ([]models.Project, error)

	ReplaceTechStacks(ctx context.Context, projectID int64, names []string) ([]models.TechStack, error)
	AddTechStack(ctx context.Context, tech *models.TechStack) (*models.TechStack, error)
	GetTechStack(ctx context.Context, id int64) (*models.TechStack, error)
	DeleteTechStack(ctx context.Context, id int64) error
}
