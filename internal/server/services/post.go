package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/dbx"
	"github.com/dmitrijs2005/folio/internal/server/auth"
	"github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/dmitrijs2005/folio/internal/server/policy"
	"github.com/dmitrijs2005/folio/internal/server/repositories/repomanager"
)

// PostService applies the ownership and visibility rules to blog posts.
// Writes touching posts and post_tags run in one transaction.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager) *PostService {
	return &PostService{db: db, repomanager: m}
}

// Create stores post and its tags for the principal.
func (s *PostService) Create(ctx context.Context, p *auth.Principal, post *models.Post) (*models.Post, error) {
	post.AuthorID = p.UserID
	post.ReadTime = models.ReadTime(post.Content)
	post.Tags = normalizeNames(post.Tags)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Posts(tx)
		if _, err := repo.Create(ctx, post); err != nil {
			return err
		}
		return repo.ReplaceTags(ctx, post.ID, post.Tags)
	})
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}
	return post, nil
}

// Get returns a post the viewer may read. viewer may be nil.
func (s *PostService) Get(ctx context.Context, viewer *auth.Principal, id int64) (*models.Post, error) {
	post, err := s.repomanager.Posts(s.db).Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeRead(post, viewer); err != nil {
		return nil, err
	}
	return post, nil
}

// List returns a page of published posts and the total number of matches.
func (s *PostService) List(ctx context.Context, filter models.PostFilter) ([]models.Post, int64, error) {
	return s.repomanager.Posts(s.db).List(ctx, filter)
}

// ListAll returns every non-deleted post, drafts included. Superusers only.
func (s *PostService) ListAll(ctx context.Context, p *auth.Principal) ([]models.Post, error) {
	if err := requireSuperuser(ctx, s.repomanager.Users(s.db), p); err != nil {
		return nil, err
	}
	return s.repomanager.Posts(s.db).ListAll(ctx)
}

// ListMine returns the principal's own posts, drafts included.
func (s *PostService) ListMine(ctx context.Context, p *auth.Principal) ([]models.Post, error) {
	return s.repomanager.Posts(s.db).ListByAuthor(ctx, p.UserID)
}

// Update applies patch to a post owned by p. Tags, when present in the
// patch, replace the old set in the same transaction.
func (s *PostService) Update(ctx context.Context, p *auth.Principal, id int64, patch models.PostPatch) (*models.Post, error) {
	if patch.Tags != nil {
		tags := normalizeNames(*patch.Tags)
		patch.Tags = &tags
	}

	var post *models.Post
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Posts(tx)

		var err error
		post, err = repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := policy.AuthorizeMutation(post, p); err != nil {
			return err
		}

		patch.Apply(post)
		if err := repo.Update(ctx, post); err != nil {
			return err
		}
		if patch.Tags != nil {
			return repo.ReplaceTags(ctx, post.ID, post.Tags)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Delete soft-deletes a post owned by p.
func (s *PostService) Delete(ctx context.Context, p *auth.Principal, id int64) error {
	repo := s.repomanager.Posts(s.db)
	post, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.AuthorizeMutation(post, p); err != nil {
		return err
	}
	return repo.SoftDelete(ctx, id)
}

// View records a view of a readable post. Authors viewing their own post
// get the current count back with counted=false.
func (s *PostService) View(ctx context.Context, viewer *auth.Principal, id int64) (int64, bool, error) {
	post, err := s.Get(ctx, viewer, id)
	if err != nil {
		return 0, false, err
	}
	if !policy.CountsView(post, viewer) {
		return post.ViewCount, false, nil
	}

	n, err := s.repomanager.Posts(s.db).IncrementViewCount(ctx, id)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// normalizeNames trims names and drops blanks and repeats, keeping the
// first occurrence order.
func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

type userLookup interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

func requireSuperuser(ctx context.Context, users userLookup, p *auth.Principal) error {
	if p == nil {
		return common.ErrorUnauthorized
	}
	u, err := users.GetByID(ctx, p.UserID)
	if err != nil {
		return err
	}
	if !u.IsSuperuser || !u.IsActive {
		return fmt.Errorf("%w: superuser required", common.ErrorForbidden)
	}
	return nil
}
