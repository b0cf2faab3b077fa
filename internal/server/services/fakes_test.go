package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/dbx"
	"github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/dmitrijs2005/folio/internal/server/repositories/posts"
	"github.com/dmitrijs2005/folio/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/folio/internal/server/repositories/projects"
	"github.com/dmitrijs2005/folio/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/folio/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var errBoom = errors.New("boom")

type fakeRepoManager struct {
	users    *memUsers
	posts    *memPosts
	profiles *memProfiles
	projects *memProjects
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:    &memUsers{byID: map[int64]*models.User{}},
		posts:    &memPosts{byID: map[int64]*models.Post{}},
		profiles: &memProfiles{byID: map[int64]*models.Profile{}, skills: map[int64]*models.Skill{}, events: map[int64]*models.TimelineEvent{}},
		projects: &memProjects{byID: map[int64]*models.Project{}, techs: map[int64]*models.TechStack{}},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.users }
func (m *fakeRepoManager) Posts(dbx.DBTX) posts.Repository                 { return m.posts }
func (m *fakeRepoManager) Profiles(dbx.DBTX) profiles.Repository           { return m.profiles }
func (m *fakeRepoManager) Projects(dbx.DBTX) projects.Repository           { return m.projects }
func (m *fakeRepoManager) RevokedTokens(dbx.DBTX) revokedtokens.Repository { return nil }

// --- users ---

type memUsers struct {
	mu     sync.Mutex
	byID   map[int64]*models.User
	nextID int64
	getErr error
}

func (r *memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.byID {
		if other.Email == u.Email {
			return nil, errors.Join(common.ErrorAlreadyExists, errors.New("email"))
		}
		if other.Username == u.Username {
			return nil, errors.Join(common.ErrorAlreadyExists, errors.New("username"))
		}
	}
	r.nextID++
	cp := *u
	cp.ID = r.nextID
	cp.IsActive = true
	cp.CreatedAt = time.Now()
	r.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUsers) SetSuperuser(_ context.Context, email string, superuser bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			u.IsSuperuser = superuser
			return nil
		}
	}
	return common.ErrorNotFound
}

// --- posts ---

type memPosts struct {
	byID    map[int64]*models.Post
	nextID  int64
	tagsErr error
}

func (r *memPosts) Create(_ context.Context, p *models.Post) (*models.Post, error) {
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = time.Now().Add(time.Duration(r.nextID) * time.Second)
	p.UpdatedAt = p.CreatedAt
	cp := *p
	r.byID[p.ID] = &cp
	return p, nil
}

func (r *memPosts) ReplaceTags(_ context.Context, id int64, tags []string) error {
	if r.tagsErr != nil {
		return r.tagsErr
	}
	r.byID[id].Tags = append([]string{}, tags...)
	return nil
}

func (r *memPosts) Get(_ context.Context, id int64) (*models.Post, error) {
	p, ok := r.byID[id]
	if !ok || p.IsDeleted {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memPosts) filter(keep func(*models.Post) bool) []models.Post {
	out := []models.Post{}
	for _, p := range r.byID {
		if !p.IsDeleted && keep(p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *memPosts) List(_ context.Context, f models.PostFilter) ([]models.Post, int64, error) {
	all := r.filter(func(p *models.Post) bool {
		if !p.IsPublished || (f.Category != "" && p.Category != f.Category) {
			return false
		}
		q := strings.ToLower(f.Search)
		return q == "" || strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Content), q)
	})
	total := int64(len(all))
	lo := min(f.Skip, len(all))
	hi := min(lo+f.Limit, len(all))
	return all[lo:hi], total, nil
}

func (r *memPosts) ListAll(context.Context) ([]models.Post, error) {
	return r.filter(func(*models.Post) bool { return true }), nil
}

func (r *memPosts) ListByAuthor(_ context.Context, authorID int64) ([]models.Post, error) {
	return r.filter(func(p *models.Post) bool { return p.AuthorID == authorID }), nil
}

func (r *memPosts) Update(_ context.Context, p *models.Post) error {
	if _, ok := r.byID[p.ID]; !ok {
		return common.ErrorNotFound
	}
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *memPosts) SoftDelete(_ context.Context, id int64) error {
	p, ok := r.byID[id]
	if !ok || p.IsDeleted {
		return common.ErrorNotFound
	}
	p.IsDeleted = true
	return nil
}

func (r *memPosts) IncrementViewCount(_ context.Context, id int64) (int64, error) {
	p, ok := r.byID[id]
	if !ok || p.IsDeleted {
		return 0, common.ErrorNotFound
	}
	p.ViewCount++
	return p.ViewCount, nil
}

func (r *memPosts) Stats(context.Context) (int64, int64, error) {
	var n, views int64
	for _, p := range r.byID {
		if !p.IsDeleted {
			n++
			views += p.ViewCount
		}
	}
	return n, views, nil
}

func (r *memPosts) RecentPublished(_ context.Context, limit int) ([]models.Post, error) {
	all := r.filter(func(p *models.Post) bool { return p.IsPublished })
	return all[:min(limit, len(all))], nil
}

// --- profiles ---

type memProfiles struct {
	byID   map[int64]*models.Profile
	skills map[int64]*models.Skill
	events map[int64]*models.TimelineEvent
	nextID int64
}

func (r *memProfiles) id() int64 { r.nextID++; return r.nextID }

func (r *memProfiles) Create(_ context.Context, p *models.Profile) (*models.Profile, error) {
	for _, other := range r.byID {
		if other.UserID == p.UserID {
			return nil, common.ErrorAlreadyExists
		}
	}
	p.ID = r.id()
	cp := *p
	r.byID[p.ID] = &cp
	return p, nil
}

func (r *memProfiles) GetByUserID(_ context.Context, userID int64) (*models.Profile, error) {
	for _, p := range r.byID {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memProfiles) GetByID(_ context.Context, id int64) (*models.Profile, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memProfiles) Update(_ context.Context, p *models.Profile) error {
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *memProfiles) ListSkills(_ context.Context, profileID int64) ([]models.Skill, error) {
	out := []models.Skill{}
	for _, s := range r.skills {
		if s.ProfileID == profileID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memProfiles) AddSkill(_ context.Context, s *models.Skill) (*models.Skill, error) {
	s.ID = r.id()
	cp := *s
	r.skills[s.ID] = &cp
	return s, nil
}

func (r *memProfiles) GetSkill(_ context.Context, id int64) (*models.Skill, error) {
	s, ok := r.skills[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memProfiles) DeleteSkill(_ context.Context, id int64) error {
	if _, ok := r.skills[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.skills, id)
	return nil
}

func (r *memProfiles) ListTimeline(_ context.Context, profileID int64) ([]models.TimelineEvent, error) {
	out := []models.TimelineEvent{}
	for _, e := range r.events {
		if e.ProfileID == profileID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventDate > out[j].EventDate })
	return out, nil
}

func (r *memProfiles) AddTimelineEvent(_ context.Context, e *models.TimelineEvent) (*models.TimelineEvent, error) {
	e.ID = r.id()
	cp := *e
	r.events[e.ID] = &cp
	return e, nil
}

func (r *memProfiles) GetTimelineEvent(_ context.Context, id int64) (*models.TimelineEvent, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *memProfiles) DeleteTimelineEvent(_ context.Context, id int64) error {
	if _, ok := r.events[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.events, id)
	return nil
}

// --- projects ---

type memProjects struct {
	byID    map[int64]*models.Project
	techs   map[int64]*models.TechStack
	nextID  int64
	techErr error
}

func (r *memProjects) id() int64 { r.nextID++; return r.nextID }

func (r *memProjects) Create(_ context.Context, p *models.Project) (*models.Project, error) {
	p.ID = r.id()
	cp := *p
	r.byID[p.ID] = &cp
	return p, nil
}

func (r *memProjects) Get(_ context.Context, id int64) (*models.Project, error) {
	p, ok := r.byID[id]
	if !ok || p.IsDeleted {
		return nil, common.ErrorNotFound
	}
	cp := *p
	cp.TechStacks = r.stacks(id)
	return &cp, nil
}

func (r *memProjects) stacks(projectID int64) []models.TechStack {
	out := []models.TechStack{}
	for _, t := range r.techs {
		if t.ProjectID == projectID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memProjects) List(_ context.Context, f models.ProjectFilter) ([]models.Project, error) {
	out := []models.Project{}
	for _, p := range r.byID {
		if p.IsDeleted || (f.Status != "" && p.Status != f.Status) || (f.Featured != nil && p.Featured != *f.Featured) {
			continue
		}
		cp := *p
		cp.TechStacks = r.stacks(p.ID)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	lo := min(f.Skip, len(out))
	return out[lo:min(lo+f.Limit, len(out))], nil
}

func (r *memProjects) Update(_ context.Context, p *models.Project) error {
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *memProjects) SoftDelete(_ context.Context, id int64) error {
	p, ok := r.byID[id]
	if !ok || p.IsDeleted {
		return common.ErrorNotFound
	}
	p.IsDeleted = true
	return nil
}

func (r *memProjects) Count(context.Context) (int64, error) {
	var n int64
	for _, p := range r.byID {
		if !p.IsDeleted {
			n++
		}
	}
	return n, nil
}

func (r *memProjects) Recent(ctx context.Context, limit int) ([]models.Project, error) {
	return r.List(ctx, models.ProjectFilter{Limit: limit})
}

func (r *memProjects) ReplaceTechStacks(ctx context.Context, projectID int64, names []string) ([]models.TechStack, error) {
	if r.techErr != nil {
		return nil, r.techErr
	}
	for id, t := range r.techs {
		if t.ProjectID == projectID {
			delete(r.techs, id)
		}
	}
	out := []models.TechStack{}
	for _, n := range names {
		t, _ := r.AddTechStack(ctx, &models.TechStack{ProjectID: projectID, TechName: n})
		out = append(out, *t)
	}
	return out, nil
}

func (r *memProjects) AddTechStack(_ context.Context, t *models.TechStack) (*models.TechStack, error) {
	t.ID = r.id()
	cp := *t
	r.techs[t.ID] = &cp
	return t, nil
}

func (r *memProjects) GetTechStack(_ context.Context, id int64) (*models.TechStack, error) {
	t, ok := r.techs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memProjects) DeleteTechStack(_ context.Context, id int64) error {
	if _, ok := r.techs[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.techs, id)
	return nil
}

// --- revocation ---

type memRevocation struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	err     error
}

func newMemRevocation() *memRevocation {
	return &memRevocation{revoked: map[string]time.Time{}}
}

func (s *memRevocation) Revoke(_ context.Context, tokenID string, _ int64, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.revoked[tokenID] = until
	return nil
}

func (s *memRevocation) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.revoked[tokenID]
	return ok, nil
}
