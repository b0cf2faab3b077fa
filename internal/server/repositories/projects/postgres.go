package projects

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/dbx"
	"github.com/dmitrijs2005/folio/internal/server/models"
)

const projectColumns = `id, owner_id, title, description, detail_content, thumbnail, images, role,
	team_size, github_url, live_url, start_date, end_date, status, featured, is_deleted,
	created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	images, err := encodeImages(p.Images)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO projects (owner_id, title, description, detail_content, thumbnail, images, role,
			team_size, github_url, live_url, start_date, end_date, status, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`
	err = r.db.QueryRowContext(ctx, query,
		p.OwnerID, p.Title, p.Description, nullString(p.DetailContent), p.Thumbnail, images, p.Role,
		nullInt(p.TeamSize), nullString(p.GithubURL), nullString(p.LiveURL), p.StartDate,
		nullString(p.EndDate), p.Status, p.Featured,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1 AND is_deleted = FALSE`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	list := []models.Project{*p}
	if err := r.loadTechStacks(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (r *PostgresRepository) List(ctx context.Context, f models.ProjectFilter) ([]models.Project, error) {
	where := []string{"is_deleted = FALSE"}
	var args []any

	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Featured != nil {
		args = append(args, *f.Featured)
		where = append(where, fmt.Sprintf("featured = $%d", len(args)))
	}

	args = append(args, f.Limit, f.Skip)
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		projectColumns, strings.Join(where, " AND "), len(args)-1, len(args))

	list, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if err := r.loadTechStacks(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Project) error {
	images, err := encodeImages(p.Images)
	if err != nil {
		return err
	}

	query := `
		UPDATE projects
		SET title = $2, description = $3, detail_content = $4, thumbnail = $5, images = $6, role = $7,
		    team_size = $8, github_url = $9, live_url = $10, start_date = $11, end_date = $12,
		    status = $13, featured = $14, updated_at = now()
		WHERE id = $1 AND is_deleted = FALSE
		RETURNING updated_at
	`
	err = r.db.QueryRowContext(ctx, query,
		p.ID, p.Title, p.Description, nullString(p.DetailContent), p.Thumbnail, images, p.Role,
		nullInt(p.TeamSize), nullString(p.GithubURL), nullString(p.LiveURL), p.StartDate,
		nullString(p.EndDate), p.Status, p.Featured,
	).Scan(&p.UpdatedAt)
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
		`UPDATE projects SET is_deleted = TRUE, updated_at = now() WHERE id = $1 AND is_deleted = FALSE`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE is_deleted = FALSE`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// Recent returns the newest projects without their tech stacks.
func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]models.Project, error) {
	return r.query(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE is_deleted = FALSE ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
}

// ReplaceTechStacks drops the project's entries and inserts names in order.
func (r *PostgresRepository) ReplaceTechStacks(ctx context.Context, projectID int64, names []string) ([]models.TechStack, error) {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM project_tech_stacks WHERE project_id = $1`, projectID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	out := make([]models.TechStack, 0, len(names))
	for _, name := range names {
		t, err := r.AddTechStack(ctx, &models.TechStack{ProjectID: projectID, TechName: name})
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *PostgresRepository) AddTechStack(ctx context.Context, t *models.TechStack) (*models.TechStack, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO project_tech_stacks (project_id, tech_name) VALUES ($1, $2) RETURNING id`,
		t.ProjectID, t.TechName,
	).Scan(&t.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) GetTechStack(ctx context.Context, id int64) (*models.TechStack, error) {
	t := &models.TechStack{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, project_id, tech_name FROM project_tech_stacks WHERE id = $1`, id,
	).Scan(&t.ID, &t.ProjectID, &t.TechName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) DeleteTechStack(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM project_tech_stacks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]models.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
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

func (r *PostgresRepository) loadTechStacks(ctx context.Context, list []models.Project) error {
	if len(list) == 0 {
		return nil
	}

	index := make(map[int64]int, len(list))
	args := make([]any, 0, len(list))
	for i := range list {
		index[list[i].ID] = i
		list[i].TechStacks = []models.TechStack{}
		args = append(args, list[i].ID)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, tech_name FROM project_tech_stacks WHERE project_id IN (`+dbx.Placeholders(len(args), 1)+`) ORDER BY id`,
		args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.TechStack
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.TechName); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if i, ok := index[t.ProjectID]; ok {
			list[i].TechStacks = append(list[i].TechStacks, t)
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

func scanProject(s scanner) (*models.Project, error) {
	p := &models.Project{}
	var (
		detail, github, live, end sql.NullString
		teamSize                  sql.NullInt64
		images                    []byte
	)
	err := s.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Description, &detail, &p.Thumbnail, &images, &p.Role,
		&teamSize, &github, &live, &p.StartDate, &end, &p.Status, &p.Featured, &p.IsDeleted,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	p.Images = []string{}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return nil, fmt.Errorf("decode images: %w", err)
		}
	}
	p.DetailContent = stringPtr(detail)
	p.GithubURL = stringPtr(github)
	p.LiveURL = stringPtr(live)
	p.EndDate = stringPtr(end)
	if teamSize.Valid {
		n := int(teamSize.Int64)
		p.TeamSize = &n
	}
	return p, nil
}

func encodeImages(images []string) (string, error) {
	if images == nil {
		images = []string{}
	}
	b, err := json.Marshal(images)
	if err != nil {
		return "", fmt.Errorf("encode images: %w", err)
	}
	return string(b), nil
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

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
