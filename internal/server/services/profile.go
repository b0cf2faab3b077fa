package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/folio/internal/server/auth"
	"github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/dmitrijs2005/folio/internal/server/policy"
	"github.com/dmitrijs2005/folio/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/folio/internal/server/repositories/repomanager"
)

// ProfileService manages the single profile each user may own, plus its
// skills and timeline events.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager) *ProfileService {
	return &ProfileService{db: db, repomanager: m}
}

// Get returns the profile of userID with its children. Private profiles are
// visible to their owner only.
func (s *ProfileService) Get(ctx context.Context, viewer *auth.Principal, userID int64) (*models.Profile, error) {
	repo := s.repomanager.Profiles(s.db)
	profile, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeRead(profile, viewer); err != nil {
		return nil, err
	}
	if err := s.loadChildren(ctx, repo, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Create makes the principal's profile. A second call fails with
// common.ErrorAlreadyExists.
func (s *ProfileService) Create(ctx context.Context, p *auth.Principal, profile *models.Profile) (*models.Profile, error) {
	profile.UserID = p.UserID
	created, err := s.repomanager.Profiles(s.db).Create(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("error creating profile: %w", err)
	}
	created.Skills = []models.Skill{}
	created.Timeline = []models.TimelineEvent{}
	return created, nil
}

// Update patches the principal's own profile.
func (s *ProfileService) Update(ctx context.Context, p *auth.Principal, patch models.ProfilePatch) (*models.Profile, error) {
	repo := s.repomanager.Profiles(s.db)
	profile, err := repo.GetByUserID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeMutation(profile, p); err != nil {
		return nil, err
	}

	patch.Apply(profile)
	if err := repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	if err := s.loadChildren(ctx, repo, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) AddSkill(ctx context.Context, p *auth.Principal, skill *models.Skill) (*models.Skill, error) {
	repo := s.repomanager.Profiles(s.db)
	profile, err := repo.GetByUserID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	skill.ProfileID = profile.ID
	return repo.AddSkill(ctx, skill)
}

// DeleteSkill removes a skill whose profile belongs to p.
func (s *ProfileService) DeleteSkill(ctx context.Context, p *auth.Principal, id int64) error {
	repo := s.repomanager.Profiles(s.db)
	skill, err := repo.GetSkill(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeChild(ctx, repo, skill, p); err != nil {
		return err
	}
	return repo.DeleteSkill(ctx, id)
}

func (s *ProfileService) AddTimelineEvent(ctx context.Context, p *auth.Principal, event *models.TimelineEvent) (*models.TimelineEvent, error) {
	repo := s.repomanager.Profiles(s.db)
	profile, err := repo.GetByUserID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	event.ProfileID = profile.ID
	return repo.AddTimelineEvent(ctx, event)
}

// DeleteTimelineEvent removes an event whose profile belongs to p.
func (s *ProfileService) DeleteTimelineEvent(ctx context.Context, p *auth.Principal, id int64) error {
	repo := s.repomanager.Profiles(s.db)
	event, err := repo.GetTimelineEvent(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeChild(ctx, repo, event, p); err != nil {
		return err
	}
	return repo.DeleteTimelineEvent(ctx, id)
}

func (s *ProfileService) authorizeChild(ctx context.Context, repo profiles.Repository, child policy.Child, p *auth.Principal) error {
	parent, err := repo.GetByID(ctx, child.ParentKey())
	if err != nil {
		return err
	}
	return policy.AuthorizeChildMutation(child, parent, p)
}

func (s *ProfileService) loadChildren(ctx context.Context, repo profiles.Repository, profile *models.Profile) error {
	skills, err := repo.ListSkills(ctx, profile.ID)
	if err != nil {
		return err
	}
	timeline, err := repo.ListTimeline(ctx, profile.ID)
	if err != nil {
		return err
	}
	profile.Skills = skills
	profile.Timeline = timeline
	return nil
}
