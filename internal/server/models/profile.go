package models

import "time"

// Profile is the public face of a user; at most one per user.
type Profile struct {
	ID        int64
	UserID    int64
	Bio       *string
	AvatarURL *string
	IsPublic  bool
	Skills    []Skill
	Timeline  []TimelineEvent
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Profile) Owner() int64      { return p.UserID }
func (p *Profile) Key() int64        { return p.ID }
func (p *Profile) Public() bool      { return p.IsPublic }
func (p *Profile) SoftDeleted() bool { return false }

// ProfilePatch carries the fields of a partial update; nil means unchanged.
type ProfilePatch struct {
	Bio       *string
	AvatarURL *string
	IsPublic  *bool
}

func (patch ProfilePatch) Apply(p *Profile) {
	if patch.Bio != nil {
		p.Bio = patch.Bio
	}
	if patch.AvatarURL != nil {
		p.AvatarURL = patch.AvatarURL
	}
	if patch.IsPublic != nil {
		p.IsPublic = *patch.IsPublic
	}
}

type Skill struct {
	ID        int64
	ProfileID int64
	SkillName string
	Category  *string
}

func (s *Skill) ParentKey() int64 { return s.ProfileID }

// TimelineEvent is a dated career milestone. EventDate is kept as entered:
// "2024", "2024-01" or "2024-01-15".
type TimelineEvent struct {
	ID               int64
	ProfileID        int64
	EventTitle       string
	EventDescription *string
	EventDate        string
}

func (e *TimelineEvent) ParentKey() int64 { return e.ProfileID }
