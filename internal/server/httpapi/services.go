package httpapi

import (
	"context"

	"github.com/dmitrijs2005/folio/internal/server/auth"
	"github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/dmitrijs2005/folio/internal/server/services"
)

// The interfaces below are the parts of the service layer the handlers
// call; *services.XService satisfies each of them.

type Authenticator interface {
	Authenticate(ctx context.Context, header string) (*auth.Principal, error)
	Optional(ctx context.Context, header string) *auth.Principal
}

type UserService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	Me(ctx context.Context, p *auth.Principal) (*models.User, error)
	Logout(ctx context.Context, p *auth.Principal, refreshToken string) error
}

type PostService interface {
	Create(ctx context.Context, p *auth.Principal, post *models.Post) (*models.Post, error)
	Get(ctx context.Context, viewer *auth.Principal, id int64) (*models.Post, error)
	List(ctx context.Context, filter models.PostFilter) ([]models.Post, int64, error)
	ListAll(ctx context.Context, p *auth.Principal) ([]models.Post, error)
	ListMine(ctx context.Context, p *auth.Principal) ([]models.Post, error)
	Update(ctx context.Context, p *auth.Principal, id int64, patch models.PostPatch) (*models.Post, error)
	Delete(ctx context.Context, p *auth.Principal, id int64) error
	View(ctx context.Context, viewer *auth.Principal, id int64) (int64, bool, error)
}

type ProfileService interface {
	Get(ctx context.Context, viewer *auth.Principal, userID int64) (*models.Profile, error)
	Create(ctx context.Context, p *auth.Principal, profile *models.Profile) (*models.Profile, error)
	Update(ctx context.Context, p *auth.Principal, patch models.ProfilePatch) (*models.Profile, error)
	AddSkill(ctx context.Context, p *auth.Principal, skill *models.Skill) (*models.Skill, error)
	DeleteSkill(ctx context.Context, p *auth.Principal, id int64) error
	AddTimelineEvent(ctx context.Context, p *auth.Principal, event *models.TimelineEvent) (*models.TimelineEvent, error)
	DeleteTimelineEvent(ctx context.Context, p *auth.Principal, id int64) error
}

type ProjectService interface {
	List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error)
	Get(ctx context.Context, id int64) (*models.Project, error)
	Create(ctx context.Context, p *auth.Principal, project *models.Project, techStacks []string) (*models.Project, error)
	Update(ctx context.Context, p *auth.Principal, id int64, patch models.ProjectPatch) (*models.Project, error)
	Delete(ctx context.Context, p *auth.Principal, id int64) error
	AddTechStack(ctx context.Context, p *auth.Principal, projectID int64, name string) (*models.TechStack, error)
	DeleteTechStack(ctx context.Context, p *auth.Principal, id int64) error
}

type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

type MediaService interface {
	PresignUpload(ctx context.Context, p *auth.Principal, purpose, contentType string) (*services.UploadURL, error)
}

// Pinger reports database liveness for /healthz.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Services bundles the handlers' dependencies. Media may be nil, in which
// case the upload route is not registered.
type Services struct {
	Users     UserService
	Posts     PostService
	Profiles  ProfileService
	Projects  ProjectService
	Dashboard DashboardService
	Media     MediaService
}

var (
	_ UserService      = (*services.UserService)(nil)
	_ PostService      = (*services.PostService)(nil)
	_ ProfileService   = (*services.ProfileService)(nil)
	_ ProjectService   = (*services.ProjectService)(nil)
	_ DashboardService = (*services.DashboardService)(nil)
	_ MediaService     = (*services.MediaService)(nil)
	_ Authenticator    = (*auth.Gate)(nil)
)
