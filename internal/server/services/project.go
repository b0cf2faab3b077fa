package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/folio/internal/dbx"
	"github.com/dmitrijs2005/folio/internal/server/auth"
	"github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/dmitrijs2005/folio/internal/server/policy"
	"github.com/dmitrijs2005/folio/internal/server/repositories/repomanager"
)

// ProjectService manages portfolio projects and their tech stack entries.
type ProjectService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProjectService(db *sql.DB, m repomanager.RepositoryManager) *ProjectService {
	return &ProjectService{db: db, repomanager: m}
}

func (s *ProjectService) List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error) {
	return s.repomanager.Projects(s.db).List(ctx, filter)
}

// Get returns a non-deleted project; projects are public.
func (s *ProjectService) Get(ctx context.Context, id int64) (*models.Project, error) {
	return s.repomanager.Projects(s.db).Get(ctx, id)
}

// Create stores project and its tech stack atomically for p.
func (s *ProjectService) Create(ctx context.Context, p *auth.Principal, project *models.Project, techStacks []string) (*models.Project, error) {
	project.OwnerID = p.UserID
	if project.Status == "" {
		project.Status = models.ProjectInProgress
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Projects(tx)
		if _, err := repo.Create(ctx, project); err != nil {
			return err
		}
		stacks, err := repo.ReplaceTechStacks(ctx, project.ID, normalizeNames(techStacks))
		if err != nil {
			return err
		}
		project.TechStacks = stacks
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error creating project: %w", err)
	}
	return project, nil
}

// Update applies patch to a project owned by p, replacing the tech stack
// when the patch carries one.
func (s *ProjectService) Update(ctx context.Context, p *auth.Principal, id int64, patch models.ProjectPatch) (*models.Project, error) {
	var project *models.Project
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Projects(tx)

		var err error
		project, err = repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := policy.AuthorizeMutation(project, p); err != nil {
			return err
		}

		patch.Apply(project)
		if err := repo.Update(ctx, project); err != nil {
			return err
		}
		if patch.TechStacks != nil {
			stacks, err := repo.ReplaceTechStacks(ctx, project.ID, normalizeNames(*patch.TechStacks))
			if err != nil {
				return err
			}
			project.TechStacks = stacks
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// Delete soft-deletes a project owned by p.
func (s *ProjectService) Delete(ctx context.Context, p *auth.Principal, id int64) error {
	repo := s.repomanager.Projects(s.db)
	project, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.AuthorizeMutation(project, p); err != nil {
		return err
	}
	return repo.SoftDelete(ctx, id)
}

// AddTechStack appends an entry to a project owned by p.
func (s *ProjectService) AddTechStack(ctx context.Context, p *auth.Principal, projectID int64, name string) (*models.TechStack, error) {
	repo := s.repomanager.Projects(s.db)
	project, err := repo.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeMutation(project, p); err != nil {
		return nil, err
	}
	return repo.AddTechStack(ctx, &models.TechStack{ProjectID: project.ID, TechName: name})
}

// DeleteTechStack removes an entry whose project belongs to p.
func (s *ProjectService) DeleteTechStack(ctx context.Context, p *auth.Principal, id int64) error {
	repo := s.repomanager.Projects(s.db)
	tech, err := repo.GetTechStack(ctx, id)
	if err != nil {
		return err
	}
	project, err := repo.Get(ctx, tech.ProjectID)
	if err != nil {
		return err
	}
	if err := policy.AuthorizeChildMutation(tech, project, p); err != nil {
		return err
	}
	return repo.DeleteTechStack(ctx, id)
}
