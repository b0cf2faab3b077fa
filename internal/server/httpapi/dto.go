package httpapi

import (
	"time"

	"github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/dmitrijs2005/folio/internal/server/services"
)

// auth

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type userResponse struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
	}
}

// posts

type postCreateRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Content     string   `json:"content" binding:"required"`
	Excerpt     string   `json:"excerpt" binding:"max=150"`
	Category    string   `json:"category" binding:"required,max=50"`
	CoverImage  *string  `json:"cover_image" binding:"omitempty,max=500"`
	Tags        []string `json:"tags" binding:"omitempty,max=20,dive,max=50"`
	IsPublished bool     `json:"is_published"`
}

func (r postCreateRequest) model() *models.Post {
	return &models.Post{
		Title:       r.Title,
		Content:     r.Content,
		Excerpt:     r.Excerpt,
		Category:    r.Category,
		CoverImage:  r.CoverImage,
		IsPublished: r.IsPublished,
		Tags:        r.Tags,
	}
}

type postUpdateRequest struct {
	Title       *string   `json:"title" binding:"omitempty,min=1,max=200"`
	Content     *string   `json:"content" binding:"omitempty,min=1"`
	Excerpt     *string   `json:"excerpt" binding:"omitempty,max=150"`
	Category    *string   `json:"category" binding:"omitempty,min=1,max=50"`
	CoverImage  *string   `json:"cover_image" binding:"omitempty,max=500"`
	IsPublished *bool     `json:"is_published"`
	Tags        *[]string `json:"tags" binding:"omitempty,max=20,dive,max=50"`
}

func (r postUpdateRequest) patch() models.PostPatch {
	return models.PostPatch{
		Title:       r.Title,
		Content:     r.Content,
		Excerpt:     r.Excerpt,
		Category:    r.Category,
		CoverImage:  r.CoverImage,
		IsPublished: r.IsPublished,
		Tags:        r.Tags,
	}
}

type postListQuery struct {
	Category string `form:"category"`
	Search   string `form:"search" binding:"max=100"`
	Skip     int    `form:"skip,default=0" binding:"min=0"`
	Limit    int    `form:"limit,default=10" binding:"min=1,max=100"`
}

type postResponse struct {
	ID          int64     `json:"id"`
	AuthorID    int64     `json:"author_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Excerpt     string    `json:"excerpt"`
	Category    string    `json:"category"`
	CoverImage  *string   `json:"cover_image"`
	ReadTime    int       `json:"read_time"`
	ViewCount   int64     `json:"view_count"`
	IsPublished bool      `json:"is_published"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toPostResponse(p *models.Post) postResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return postResponse{
		ID:          p.ID,
		AuthorID:    p.AuthorID,
		Title:       p.Title,
		Content:     p.Content,
		Excerpt:     p.Excerpt,
		Category:    p.Category,
		CoverImage:  p.CoverImage,
		ReadTime:    p.ReadTime,
		ViewCount:   p.ViewCount,
		IsPublished: p.IsPublished,
		Tags:        tags,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPostResponses(posts []models.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for i := range posts {
		out = append(out, toPostResponse(&posts[i]))
	}
	return out
}

type postListResponse struct {
	Total int64          `json:"total"`
	Skip  int            `json:"skip"`
	Limit int            `json:"limit"`
	Posts []postResponse `json:"posts"`
}

type viewResponse struct {
	ViewCount int64 `json:"view_count"`
	Counted   bool  `json:"counted"`
}

// profile

type profileCreateRequest struct {
	Bio       *string `json:"bio" binding:"omitempty,max=2000"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,max=500"`
	IsPublic  *bool   `json:"is_public"`
}

func (r profileCreateRequest) model() *models.Profile {
	public := true
	if r.IsPublic != nil {
		public = *r.IsPublic
	}
	return &models.Profile{Bio: r.Bio, AvatarURL: r.AvatarURL, IsPublic: public}
}

type profileUpdateRequest struct {
	Bio       *string `json:"bio" binding:"omitempty,max=2000"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,max=500"`
	IsPublic  *bool   `json:"is_public"`
}

func (r profileUpdateRequest) patch() models.ProfilePatch {
	return models.ProfilePatch{Bio: r.Bio, AvatarURL: r.AvatarURL, IsPublic: r.IsPublic}
}

type skillRequest struct {
	SkillName string  `json:"skill_name" binding:"required,max=100"`
	Category  *string `json:"category" binding:"omitempty,max=50"`
}

type timelineRequest struct {
	EventTitle       string  `json:"event_title" binding:"required,max=200"`
	EventDescription *string `json:"event_description"`
	EventDate        string  `json:"event_date" binding:"required,eventdate"`
}

type skillResponse struct {
	ID        int64   `json:"id"`
	SkillName string  `json:"skill_name"`
	Category  *string `json:"category"`
}

type timelineResponse struct {
	ID               int64   `json:"id"`
	EventTitle       string  `json:"event_title"`
	EventDescription *string `json:"event_description"`
	EventDate        string  `json:"event_date"`
}

type profileResponse struct {
	ID        int64              `json:"id"`
	UserID    int64              `json:"user_id"`
	Bio       *string            `json:"bio"`
	AvatarURL *string            `json:"avatar_url"`
	IsPublic  bool               `json:"is_public"`
	Skills    []skillResponse    `json:"skills"`
	Timeline  []timelineResponse `json:"timeline"`
}

func toSkillResponse(s *models.Skill) skillResponse {
	return skillResponse{ID: s.ID, SkillName: s.SkillName, Category: s.Category}
}

func toTimelineResponse(e *models.TimelineEvent) timelineResponse {
	return timelineResponse{
		ID:               e.ID,
		EventTitle:       e.EventTitle,
		EventDescription: e.EventDescription,
		EventDate:        e.EventDate,
	}
}

func toProfileResponse(p *models.Profile) profileResponse {
	out := profileResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Bio:       p.Bio,
		AvatarURL: p.AvatarURL,
		IsPublic:  p.IsPublic,
		Skills:    make([]skillResponse, 0, len(p.Skills)),
		Timeline:  make([]timelineResponse, 0, len(p.Timeline)),
	}
	for i := range p.Skills {
		out.Skills = append(out.Skills, toSkillResponse(&p.Skills[i]))
	}
	for i := range p.Timeline {
		out.Timeline = append(out.Timeline, toTimelineResponse(&p.Timeline[i]))
	}
	return out
}

// projects

type projectCreateRequest struct {
	Title         string   `json:"title" binding:"required,max=200"`
	Description   string   `json:"description" binding:"required"`
	DetailContent *string  `json:"detail_content"`
	Thumbnail     string   `json:"thumbnail" binding:"required,max=500"`
	Images        []string `json:"images" binding:"omitempty,dive,max=500"`
	Role          string   `json:"role" binding:"required,max=100"`
	TeamSize      *int     `json:"team_size" binding:"omitempty,min=1"`
	GithubURL     *string  `json:"github_url" binding:"omitempty,max=500"`
	LiveURL       *string  `json:"live_url" binding:"omitempty,max=500"`
	StartDate     string   `json:"start_date" binding:"required,eventdate"`
	EndDate       *string  `json:"end_date" binding:"omitempty,eventdate"`
	Status        string   `json:"status" binding:"omitempty,projectstatus"`
	Featured      bool     `json:"featured"`
	TechStacks    []string `json:"tech_stacks" binding:"omitempty,max=30,dive,max=50"`
}

func (r projectCreateRequest) model() *models.Project {
	images := r.Images
	if images == nil {
		images = []string{}
	}
	return &models.Project{
		Title:         r.Title,
		Description:   r.Description,
		DetailContent: r.DetailContent,
		Thumbnail:     r.Thumbnail,
		Images:        images,
		Role:          r.Role,
		TeamSize:      r.TeamSize,
		GithubURL:     r.GithubURL,
		LiveURL:       r.LiveURL,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		Status:        r.Status,
		Featured:      r.Featured,
	}
}

type projectUpdateRequest struct {
	Title         *string   `json:"title" binding:"omitempty,min=1,max=200"`
	Description   *string   `json:"description" binding:"omitempty,min=1"`
	DetailContent *string   `json:"detail_content"`
	Thumbnail     *string   `json:"thumbnail" binding:"omitempty,max=500"`
	Images        *[]string `json:"images" binding:"omitempty,dive,max=500"`
	Role          *string   `json:"role" binding:"omitempty,max=100"`
	TeamSize      *int      `json:"team_size" binding:"omitempty,min=1"`
	GithubURL     *string   `json:"github_url" binding:"omitempty,max=500"`
	LiveURL       *string   `json:"live_url" binding:"omitempty,max=500"`
	StartDate     *string   `json:"start_date" binding:"omitempty,eventdate"`
	EndDate       *string   `json:"end_date" binding:"omitempty,eventdate"`
	Status        *string   `json:"status" binding:"omitempty,projectstatus"`
	Featured      *bool     `json:"featured"`
	TechStacks    *[]string `json:"tech_stacks" binding:"omitempty,max=30,dive,max=50"`
}

func (r projectUpdateRequest) patch() models.ProjectPatch {
	return models.ProjectPatch{
		Title:         r.Title,
		Description:   r.Description,
		DetailContent: r.DetailContent,
		Thumbnail:     r.Thumbnail,
		Images:        r.Images,
		Role:          r.Role,
		TeamSize:      r.TeamSize,
		GithubURL:     r.GithubURL,
		LiveURL:       r.LiveURL,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		Status:        r.Status,
		Featured:      r.Featured,
		TechStacks:    r.TechStacks,
	}
}

type projectListQuery struct {
	Status   string `form:"status" binding:"omitempty,projectstatus"`
	Featured *bool  `form:"featured"`
	Skip     int    `form:"skip,default=0" binding:"min=0"`
	Limit    int    `form:"limit,default=10" binding:"min=1,max=100"`
}

type techStackRequest struct {
	TechName string `json:"tech_name" binding:"required,max=50"`
}

type techStackResponse struct {
	ID       int64  `json:"id"`
	TechName string `json:"tech_name"`
}

type projectResponse struct {
	ID            int64     `json:"id"`
	OwnerID       int64     `json:"owner_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	DetailContent *string   `json:"detail_content"`
	Thumbnail     string    `json:"thumbnail"`
	Images        []string  `json:"images"`
	Role          string    `json:"role"`
	TeamSize      *int      `json:"team_size"`
	GithubURL     *string   `json:"github_url"`
	LiveURL       *string   `json:"live_url"`
	StartDate     string    `json:"start_date"`
	EndDate       *string   `json:"end_date"`
	Status        string    `json:"status"`
	Featured      bool      `json:"featured"`
	TechStacks    []string  `json:"tech_stacks"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toProjectResponse(p *models.Project) projectResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return projectResponse{
		ID:            p.ID,
		OwnerID:       p.OwnerID,
		Title:         p.Title,
		Description:   p.Description,
		DetailContent: p.DetailContent,
		Thumbnail:     p.Thumbnail,
		Images:        images,
		Role:          p.Role,
		TeamSize:      p.TeamSize,
		GithubURL:     p.GithubURL,
		LiveURL:       p.LiveURL,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		Status:        p.Status,
		Featured:      p.Featured,
		TechStacks:    p.TechNames(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProjectResponses(projects []models.Project) []projectResponse {
	out := make([]projectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, toProjectResponse(&projects[i]))
	}
	return out
}

// dashboard

type dashboardResponse struct {
	TotalPosts     int64             `json:"total_posts"`
	TotalProjects  int64             `json:"total_projects"`
	TotalViews     int64             `json:"total_views"`
	RecentPosts    []postResponse    `json:"recent_posts"`
	RecentProjects []projectResponse `json:"recent_projects"`
}

// media

type uploadURLRequest struct {
	Purpose     string `json:"purpose" binding:"required"`
	ContentType string `json:"content_type" binding:"required,max=100"`
}

type uploadURLResponse struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"upload_url"`
	PublicURL string    `json:"public_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

func toUploadURLResponse(u *services.UploadURL) uploadURLResponse {
	return uploadURLResponse{Key: u.Key, UploadURL: u.UploadURL, PublicURL: u.PublicURL, ExpiresAt: u.ExpiresAt}
}
