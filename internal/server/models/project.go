package models

import "time"

// Project statuses.
const (
	ProjectCompleted  = "completed"
	ProjectInProgress = "in-progress"
	ProjectArchived   = "archived"
)

// Project is a portfolio item owned by a user.
type Project struct {
	ID            int64
	OwnerID       int64
	Title         string
	Description   string
	DetailContent *string
	Thumbnail     string
	Images        []string
	Role          string
	TeamSize      *int
	GithubURL     *string
	LiveURL       *string
	StartDate     string
	EndDate       *string
	Status        string
	Featured      bool
	IsDeleted     bool
	TechStacks    []TechStack
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p *Project) Owner() int64      { return p.OwnerID }
func (p *Project) Key() int64        { return p.ID }
func (p *Project) Public() bool      { return true }
func (p *Project) SoftDeleted() bool { return p.IsDeleted }

// TechNames lists the tech stack names in insertion order.
func (p *Project) TechNames() []string {
	names := make([]string, 0, len(p.TechStacks))
	for _, t := range p.TechStacks {
		names = append(names, t.TechName)
	}
	return names
}

type TechStack struct {
	ID        int64
	ProjectID int64
	TechName  string
}

func (t *TechStack) ParentKey() int64 { return t.ProjectID }

// ProjectFilter narrows the project listing.
type ProjectFilter struct {
	Status   string
	Featured *bool
	Skip     int
	Limit    int
}

// ProjectPatch carries the fields of a partial update; nil means unchanged.
type ProjectPatch struct {
	Title         *string
	Description   *string
	DetailContent *string
	Thumbnail     *string
	Images        *[]string
	Role          *string
	TeamSize      *int
	GithubURL     *string
	LiveURL       *string
	StartDate     *string
	EndDate       *string
	Status        *string
	Featured      *bool
	TechStacks    *[]string
}

func (patch ProjectPatch) Apply(p *Project) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.DetailContent != nil {
		p.DetailContent = patch.DetailContent
	}
	if patch.Thumbnail != nil {
		p.Thumbnail = *patch.Thumbnail
	}
	if patch.Images != nil {
		p.Images = *patch.Images
	}
	if patch.Role != nil {
		p.Role = *patch.Role
	}
	if patch.TeamSize != nil {
		p.TeamSize = patch.TeamSize
	}
	if patch.GithubURL != nil {
		p.GithubURL = patch.GithubURL
	}
	if patch.LiveURL != nil {
		p.LiveURL = patch.LiveURL
	}
	if patch.StartDate != nil {
		p.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		p.EndDate = patch.EndDate
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
}

// DashboardStats summarizes site content for the admin dashboard.
type DashboardStats struct {
	TotalPosts     int64
	TotalProjects  int64
	TotalViews     int64
	RecentPosts    []Post
	RecentProjects []Project
}
