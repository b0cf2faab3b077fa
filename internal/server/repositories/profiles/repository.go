// Package profiles stores user profiles together with their skills and
// timeline events.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/folio/internal/server/models"
)

type Repository interface {
	// Create fails with common.ErrorAlreadyExists when the user already has
	// a profile.
	Create(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)
	GetByID(ctx context.Context, id int64) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error

	ListSkills(ctx context.Context, profileID int64) ([]models.Skill, error)
	AddSkill(ctx context.Context, skill *models.Skill) (*models.Skill, error)
	GetSkill(ctx context.Context, id int64) (*models.Skill, error)
	DeleteSkill(ctx context.Context, id int64) error

	ListTimeline(ctx context.Context, profileID int64) ([]models.TimelineEvent, error)
	AddTimelineEvent(ctx context.Context, event *models.TimelineEvent) (*models.TimelineEvent, error)
	GetTimelineEvent(ctx context.Context, id int64) (*models.TimelineEvent, error)
	DeleteTimelineEvent(ctx context.Context, id int64) error
}
