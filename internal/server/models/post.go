package models

import (
	"time"
	"unicode/utf8"
)

// Post is a blog entry owned by its author.
type Post struct {
	ID          int64
	AuthorID    int64
	Title       string
	Content     string
	Excerpt     string
	Category    string
	CoverImage  *string
	ReadTime    int
	ViewCount   int64
	IsPublished bool
	IsDeleted   bool
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Post) Owner() int64      { return p.AuthorID }
func (p *Post) Public() bool      { return p.IsPublished }
func (p *Post) SoftDeleted() bool { return p.IsDeleted }

// ReadTime estimates minutes to read content at 200 characters a minute,
// never less than one.
func ReadTime(content string) int {
	return max(1, utf8.RuneCountInString(content)/200)
}

// PostFilter narrows the public post listing.
type PostFilter struct {
	Category string
	Search   string
	Skip     int
	Limit    int
}

// PostPatch carries the fields of a partial update; nil means unchanged.
type PostPatch struct {
	Title       *string
	Content     *string
	Excerpt     *string
	Category    *string
	CoverImage  *string
	IsPublished *bool
	Tags        *[]string
}

// Apply copies the set fields onto p and refreshes derived values.
func (patch PostPatch) Apply(p *Post) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
		p.ReadTime = ReadTime(p.Content)
	}
	if patch.Excerpt != nil {
		p.Excerpt = *patch.Excerpt
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.CoverImage != nil {
		p.CoverImage = patch.CoverImage
	}
	if patch.IsPublished != nil {
		p.IsPublished = *patch.IsPublished
	}
	if patch.Tags != nil {
		p.Tags = *patch.Tags
	}
}
