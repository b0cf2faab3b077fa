package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/server/auth"
	"github.com/dmitrijs2005/folio/internal/server/models"
)

func TestListPosts_QueryBinding(t *testing.T) {
	var got models.PostFilter
	posts := &fakePosts{list: func(filter models.PostFilter) ([]models.Post, int64, error) {
		got = filter
		return []models.Post{{ID: 1, Title: "Hello", IsPublished: true}}, 12, nil
	}}
	s := newTestServer(t, Services{Posts: posts})

	rec := do(t, s.Handler(), http.MethodGet, "/apis/v1/posts?category=go&search=Gin&skip=10", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, models.PostFilter{Category: "go", Search: "Gin", Skip: 10, Limit: 10}, got)

	body := decode[postListResponse](t, rec)
	assert.Equal(t, int64(12), body.Total)
	assert.Equal(t, 10, body.Skip)
	assert.Equal(t, 10, body.Limit)
	require.Len(t, body.Posts, 1)
	assert.Equal(t, []string{}, body.Posts[0].Tags)
}

func TestListPosts_InvalidPaging(t *testing.T) {
	s := newTestServer(t, Services{Posts: &fakePosts{}})

	for _, q := range []string{"limit=0", "limit=101", "skip=-1", "limit=abc"} {
		rec := do(t, s.Handler(), http.MethodGet, "/apis/v1/posts?"+q, nil, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestListAllPosts_RequiresSuperuser(t *testing.T) {
	posts := &fakePosts{listAll: func(p *auth.Principal) ([]models.Post, error) {
		if p.UserID != alice.UserID {
			return nil, common.ErrorForbidden
		}
		return []models.Post{{ID: 1}, {ID: 2}}, nil
	}}
	s := newTestServer(t, Services{Posts: posts})

	rec := do(t, s.Handler(), http.MethodGet, "/apis/v1/posts/all", nil, "bob")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, s.Handler(), http.MethodGet, "/apis/v1/posts/all", nil, "alice")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]postResponse](t, rec), 2)

	rec = do(t, s.Handler(), http.MethodGet, "/apis/v1/posts/all", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListMyPosts(t *testing.T) {
	posts := &fakePosts{listMine: func(p *auth.Principal) ([]models.Post, error) {
		return []models.Post{{ID: 3, AuthorID: p.UserID, IsPublished: false}}, nil
	}}
	s := newTestServer(t, Services{Posts: posts})

	rec := do(t, s.Handler(), http.MethodGet, "/apis/v1/posts/mine", nil, "bob")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]postResponse](t, rec)
	require.Len(t, got, 1)
	assert.Equal(t, bob.UserID, got[0].AuthorID)
}

func TestCreatePost(t *testing.T) {
	var got *models.Post
	posts := &fakePosts{create: func(p *auth.Principal, post *models.Post) (*models.Post, error) {
		got = post
		post.ID = 10
		post.AuthorID = p.UserID
		post.ReadTime = models.ReadTime(post.Content)
		return post, nil
	}}
	s := newTestServer(t, Services{Posts: posts})

	body := map[string]any{
		"title":        "Hello",
		"content":      "Body",
		"excerpt":      "short",
		"category":     "go",
		"tags":         []string{"go", "web"},
		"is_published": true,
	}
	rec := do(t, s.Handler(), http.MethodPost, "/apis/v1/posts", body, "alice")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"go", "web"}, got.Tags)
	assert.True(t, got.IsPublished)
	resp := decode[postResponse](t, rec)
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, alice.UserID, resp.AuthorID)
	assert.Equal(t, 1, resp.ReadTime)

	rec = do(t, s.Handler(), http.MethodPost, "/apis/v1/posts", body, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	body["excerpt"] = string(make([]byte, 151))
	rec = do(t, s.Handler(), http.MethodPost, "/apis/v1/posts", body, "alice")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPost(t *testing.T) {
	posts := &fakePosts{get: func(viewer *auth.Principal, id int64) (*models.Post, error) {
		switch id {
		case 1:
			return &models.Post{ID: 1, IsPublished: true}, nil
		case 2:
			if viewer != nil && viewer.UserID == alice.UserID {
				return &models.Post{ID: 2, AuthorID: alice.UserID}, nil
			}
			return nil, common.ErrorForbidden
		default:
			return nil, common.ErrorNotFound
		}
	}}
	s := newTestServer(t, Services{Posts: posts})

	tests := []struct {
		path  string
		token string
		want  int
	}{
		{"/apis/v1/posts/1", "", http.StatusOK},
		{"/apis/v1/posts/2", "", http.StatusForbidden},
		{"/apis/v1/posts/2", "bob", http.StatusForbidden},
		{"/apis/v1/posts/2", "alice", http.StatusOK},
		{"/apis/v1/posts/2", "forged", http.StatusForbidden},
		{"/apis/v1/posts/9", "", http.StatusNotFound},
		{"/apis/v1/posts/abc", "", http.StatusBadRequest},
		{"/apis/v1/posts/0", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := do(t, s.Handler(), http.MethodGet, tt.path, nil, tt.token)
		assert.Equal(t, tt.want, rec.Code, "%s as %q", tt.path, tt.token)
	}
}

func TestViewPost(t *testing.T) {
	posts := &fakePosts{view: func(viewer *auth.Principal, id int64) (int64, bool, error) {
		if viewer != nil && viewer.UserID == alice.UserID {
			return 5, false, nil
		}
		return 6, true, nil
	}}
	s := newTestServer(t, Services{Posts: posts})

	rec := do(t, s.Handler(), http.MethodPost, "/apis/v1/posts/1/view", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, viewResponse{ViewCount: 6, Counted: true}, decode[viewResponse](t, rec))

	rec = do(t, s.Handler(), http.MethodPost, "/apis/v1/posts/1/view", nil, "alice")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, viewResponse{ViewCount: 5, Counted: false}, decode[viewResponse](t, rec))
}

func TestUpdatePost_PartialPatch(t *testing.T) {
	var got models.PostPatch
	posts := &fakePosts{update: func(p *auth.Principal, id int64, patch models.PostPatch) (*models.Post, error) {
		if p.UserID != alice.UserID {
			return nil, common.ErrorForbidden
		}
		got = patch
		post := &models.Post{ID: id, AuthorID: p.UserID, Title: "old"}
		patch.Apply(post)
		return post, nil
	}}
	s := newTestServer(t, Services{Posts: posts})

	rec := do(t, s.Handler(), http.MethodPut, "/apis/v1/posts/4", map[string]any{"title": "new", "tags": []string{}}, "alice")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, got.Title)
	assert.Equal(t, "new", *got.Title)
	assert.Nil(t, got.Content)
	require.NotNil(t, got.Tags)
	assert.Empty(t, *got.Tags)

	rec = do(t, s.Handler(), http.MethodPut, "/apis/v1/posts/4", map[string]any{"title": "x"}, "bob")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, s.Handler(), http.MethodPut, "/apis/v1/posts/4", map[string]any{"title": ""}, "alice")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeletePost(t *testing.T) {
	posts := &fakePosts{delete: func(p *auth.Principal, id int64) error {
		if id == 404 {
			return common.ErrorNotFound
		}
		return nil
	}}
	s := newTestServer(t, Services{Posts: posts})

	rec := do(t, s.Handler(), http.MethodDelete, "/apis/v1/posts/1", nil, "alice")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, s.Handler(), http.MethodDelete, "/apis/v1/posts/404", nil, "alice")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
