package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadTime(t *testing.T) {
	assert.Equal(t, 1, ReadTime(""))
	assert.Equal(t, 1, ReadTime(strings.Repeat("a", 399)))
	assert.Equal(t, 2, ReadTime(strings.Repeat("a", 400)))
	assert.Equal(t, 2, ReadTime(strings.Repeat("ё", 400)), "counts characters, not bytes")
}

func TestPostPatch_Apply(t *testing.T) {
	p := &Post{Title: "old", Content: "x", ReadTime: 1, Tags: []string{"a"}}
	title := "new"
	content := strings.Repeat("b", 1000)
	tags := []string{}
	published := true

	PostPatch{Title: &title, Content: &content, Tags: &tags, IsPublished: &published}.Apply(p)

	assert.Equal(t, "new", p.Title)
	assert.Equal(t, 5, p.ReadTime)
	assert.Empty(t, p.Tags)
	assert.True(t, p.IsPublished)

	PostPatch{}.Apply(p)
	assert.Equal(t, "new", p.Title, "empty patch changes nothing")
}

func TestProjectPatch_Apply(t *testing.T) {
	p := &Project{Title: "a", Status: ProjectInProgress}
	status := ProjectCompleted
	featured := true
	images := []string{"i1"}
	ProjectPatch{Status: &status, Featured: &featured, Images: &images}.Apply(p)

	assert.Equal(t, "a", p.Title)
	assert.Equal(t, ProjectCompleted, p.Status)
	assert.True(t, p.Featured)
	assert.Equal(t, []string{"i1"}, p.Images)
}

func TestProject_TechNames(t *testing.T) {
	p := &Project{TechStacks: []TechStack{{TechName: "Go"}, {TechName: "Postgres"}}}
	assert.Equal(t, []string{"Go", "Postgres"}, p.TechNames())
	assert.Empty(t, (&Project{}).TechNames())
}
