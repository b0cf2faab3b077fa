package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/dmitrijs2005/folio/internal/server/repositories/repomanager"
)

// RecentLimit is how many posts and projects the dashboard lists.
const RecentLimit = 5

type DashboardService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewDashboardService(db *sql.DB, m repomanager.RepositoryManager) *DashboardService {
	return &DashboardService{db: db, repomanager: m}
}

// Stats counts non-deleted content and lists the newest items.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	posts := s.repomanager.Posts(s.db)
	projects := s.repomanager.Projects(s.db)

	totalPosts, totalViews, err := posts.Stats(ctx)
	if err != nil {
		return nil, err
	}
	totalProjects, err := projects.Count(ctx)
	if err != nil {
		return nil, err
	}
	recentPosts, err := posts.RecentPublished(ctx, RecentLimit)
	if err != nil {
		return nil, err
	}
	recentProjects, err := projects.Recent(ctx, RecentLimit)
	if err != nil {
		return nil, err
	}

	return &models.DashboardStats{
		TotalPosts:     totalPosts,
		TotalProjects:  totalProjects,
		TotalViews:     totalViews,
		RecentPosts:    recentPosts,
		RecentProjects: recentProjects,
	}, nil
}
