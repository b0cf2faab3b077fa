package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/dbx"
	"github.com/dmitrijs2005/folio/internal/server/models"
)

const postColumns = `id, author_id, title, content, excerpt, category, cover_image,
	read_time, view_count, is_published, is_deleted, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the post row only; tags are written by ReplaceTags inside
// the same transaction.
func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	query := `
		INSERT INTO posts (author_id, title, content, excerpt, category, cover_image, read_time, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, view_count, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		post.AuthorID, post.Title, post.Content, post.Excerpt, post.Category,
		nullString(post.CoverImage), post.ReadTime, post.IsPublished,
	).Scan(&post.ID, &post.ViewCount, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return post, nil
}

// ReplaceTags drops the post's tags and inserts tags in order.
func (r *PostgresRepository) ReplaceTags(ctx context.Context, postID int64, tags []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	for _, tag := range tags {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO post_tags (post_id, tag_name) VALUES ($1, $2)`, postID, tag); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1 AND is_deleted = FALSE`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	list := []models.Post{*post}
	if err := r.loadTags(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// List returns one page of published posts plus the total number of matches.
func (r *PostgresRepository) List(ctx context.Context, f models.PostFilter) ([]models.Post, int64, error) {
	where := []string{"is_deleted = FALSE", "is_published = TRUE"}
	var args []any

	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", n, n))
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	args = append(args, f.Limit, f.Skip)
	query := fmt.Sprintf(`SELECT %s FROM posts WHERE %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		postColumns, cond, len(args)-1, len(args))

	list, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]models.Post, error) {
	return r.query(ctx, `SELECT `+postColumns+` FROM posts WHERE is_deleted = FALSE ORDER BY created_at DESC, id DESC`)
}

func (r *PostgresRepository) ListByAuthor(ctx context.Context, authorID int64) ([]models.Post, error) {
	return r.query(ctx, `SELECT `+postColumns+` FROM posts WHERE author_id = $1 AND is_deleted = FALSE ORDER BY created_at DESC, id DESC`, authorID)
}

func (r *PostgresRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET title = $2, content = $3, excerpt = $4, category = $5, cover_image = $6,
		    read_time = $7, is_published = $8, updated_at = now()
		WHERE id = $1 AND is_deleted = FALSE
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		post.ID, post.Title, post.Content, post.Excerpt, post.Category,
		nullString(post.CoverImage), post.ReadTime, post.IsPublished,
	).Scan(&post.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET is_deleted = TRUE, updated_at = now() WHERE id = $1 AND is_deleted = FALSE`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

// IncrementViewCount bumps the counter in a single statement so concurrent
// views never lose an update.
func (r *PostgresRepository) IncrementViewCount(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`UPDATE posts SET view_count = view_count + 1 WHERE id = $1 AND is_deleted = FALSE RETURNING view_count`, id,
	).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) Stats(ctx context.Context) (int64, int64, error) {
	var posts, views int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(view_count), 0) FROM posts WHERE is_deleted = FALSE`,
	).Scan(&posts, &views)
	if err != nil {
		return 0, 0, fmt.Errorf("db error: %w", err)
	}
	return posts, views, nil
}

// RecentPublished returns the newest published posts without their tags.
func (r *PostgresRepository) RecentPublished(ctx context.Context, limit int) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE is_deleted = FALSE AND is_published = TRUE ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return collect(rows)
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	list, err := collect(rows)
	if err != nil {
		return nil, err
	}
	if err := r.loadTags(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadTags fills Tags for every post in list with one query.
func (r *PostgresRepository) loadTags(ctx context.Context, list []models.Post) error {
	if len(list) == 0 {
		return nil
	}

	index := make(map[int64]int, len(list))
	args := make([]any, 0, len(list))
	for i := range list {
		index[list[i].ID] = i
		list[i].Tags = []string{}
		args = append(args, list[i].ID)
	}

	query := `SELECT post_id, tag_name FROM post_tags WHERE post_id IN (` + dbx.Placeholders(len(args), 1) + `) ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID int64
		var tag string
		if err := rows.Scan(&postID, &tag); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if i, ok := index[postID]; ok {
			list[i].Tags = append(list[i].Tags, tag)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(s scanner) (*models.Post, error) {
	p := &models.Post{}
	var cover sql.NullString
	err := s.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Content, &p.Excerpt, &p.Category, &cover,
		&p.ReadTime, &p.ViewCount, &p.IsPublished, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if cover.Valid {
		p.CoverImage = &cover.String
	}
	return p, nil
}

func collect(rows *sql.Rows) ([]models.Post, error) {
	defer rows.Close()

	list := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
