package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/dbx"
	"github.com/dmitrijs2005/folio/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create relies on profiles_user_id_key to keep one profile per user.
func (r *PostgresRepository) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (user_id, bio, avatar_url, is_public)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, p.UserID, nullString(p.Bio), nullString(p.AvatarURL), p.IsPublic).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if _, ok := dbx.UniqueViolation(err); ok {
			return nil, fmt.Errorf("%w: profile", common.ErrorAlreadyExists)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	return r.getOne(ctx, `
		SELECT id, user_id, bio, avatar_url, is_public, created_at, updated_at
		FROM profiles WHERE user_id = $1
	`, userID)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	return r.getOne(ctx, `
		SELECT id, user_id, bio, avatar_url, is_public, created_at, updated_at
		FROM profiles WHERE id = $1
	`, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg int64) (*models.Profile, error) {
	p := &models.Profile{}
	var bio, avatar sql.NullString
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&p.ID, &p.UserID, &bio, &avatar, &p.IsPublic, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	p.Bio = stringPtr(bio)
	p.AvatarURL = stringPtr(avatar)
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Profile) error {
	query := `
		UPDATE profiles SET bio = $2, avatar_url = $3, is_public = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query, p.ID, nullString(p.Bio), nullString(p.AvatarURL), p.IsPublic).
		Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListSkills(ctx context.Context, profileID int64) ([]models.Skill, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, profile_id, skill_name, category FROM skills WHERE profile_id = $1 ORDER BY id`, profileID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := []models.Skill{}
	for rows.Next() {
		var s models.Skill
		var category sql.NullString
		if err := rows.Scan(&s.ID, &s.ProfileID, &s.SkillName, &category); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		s.Category = stringPtr(category)
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

func (r *PostgresRepository) AddSkill(ctx context.Context, s *models.Skill) (*models.Skill, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO skills (profile_id, skill_name, category) VALUES ($1, $2, $3) RETURNING id`,
		s.ProfileID, s.SkillName, nullString(s.Category),
	).Scan(&s.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) GetSkill(ctx context.Context, id int64) (*models.Skill, error) {
	s := &models.Skill{}
	var category sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, profile_id, skill_name, category FROM skills WHERE id = $1`, id,
	).Scan(&s.ID, &s.ProfileID, &s.SkillName, &category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	s.Category = stringPtr(category)
	return s, nil
}

func (r *PostgresRepository) DeleteSkill(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM skills WHERE id = $1`, id)
}

// ListTimeline returns events newest first. Partial dates sort as strings,
// so "2024" precedes "2024-01".
func (r *PostgresRepository) ListTimeline(ctx context.Context, profileID int64) ([]models.TimelineEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, profile_id, event_title, event_description, event_date
		FROM timeline_events WHERE profile_id = $1
		ORDER BY event_date DESC, id DESC
	`, profileID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := []models.TimelineEvent{}
	for rows.Next() {
		var e models.TimelineEvent
		var desc sql.NullString
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.EventTitle, &desc, &e.EventDate); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		e.EventDescription = stringPtr(desc)
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

func (r *PostgresRepository) AddTimelineEvent(ctx context.Context, e *models.TimelineEvent) (*models.TimelineEvent, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO timeline_events (profile_id, event_title, event_description, event_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, e.ProfileID, e.EventTitle, nullString(e.EventDescription), e.EventDate).Scan(&e.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) GetTimelineEvent(ctx context.Context, id int64) (*models.TimelineEvent, error) {
	e := &models.TimelineEvent{}
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT id, profile_id, event_title, event_description, event_date
		FROM timeline_events WHERE id = $1
	`, id).Scan(&e.ID, &e.ProfileID, &e.EventTitle, &desc, &e.EventDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	e.EventDescription = stringPtr(desc)
	return e, nil
}

func (r *PostgresRepository) DeleteTimelineEvent(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM timeline_events WHERE id = $1`, id)
}

func (r *PostgresRepository) deleteByID(ctx context.Context, query string, id int64) error {
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
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

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
