// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"
)

// Student is one roster record. Only Name, Score and TeamName are inspected
// by the aggregator; the remaining fields are carried through untouched.
type Student struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Score          int       `json:"score"`
	TeamName       string    `json:"team_name"`
	ImageURL       string    `json:"image_url"`
	ProjectLink    string    `json:"project_link"`
	HackathonCount int       `json:"hackathon_count"`
	College        string    `json:"college"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewStudent holds the caller supplied fields of a student before an id and
// timestamps are assigned.
type NewStudent struct {
	Name           string `json:"name" validate:"required,max=200"`
	Score          int    `json:"score" validate:"min=0,max=100"`
	TeamName       string `json:"team_name" validate:"max=200"`
	ImageURL       string `json:"image_url" validate:"omitempty,url"`
	ProjectLink    string `json:"project_link" validate:"omitempty,url"`
	HackathonCount int    `json:"hackathon_count" validate:"min=0"`
	College        string `json:"college" validate:"max=200"`
}

// Normalize trims the identifying fields the way the roster stores them.
func (n NewStudent) Normalize() NewStudent {
	n.Name = strings.TrimSpace(n.Name)
	n.TeamName = strings.TrimSpace(n.TeamName)
	n.ImageURL = strings.TrimSpace(n.ImageURL)
	n.ProjectLink = strings.TrimSpace(n.ProjectLink)
	n.College = strings.TrimSpace(n.College)
	return n
}

// Student builds a stored record from the input.
func (n NewStudent) Student(id string, now time.Time) Student {
	return Student{
		ID:             id,
		Name:           n.Name,
		Score:          n.Score,
		TeamName:       n.TeamName,
		ImageURL:       n.ImageURL,
		ProjectLink:    n.ProjectLink,
		HackathonCount: n.HackathonCount,
		College:        n.College,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// StudentPatch is a partial update. Nil fields are left unchanged.
type StudentPatch struct {
	Name           *string `json:"name,omitempty"`
	Score          *int    `json:"score,omitempty"`
	TeamName       *string `json:"team_name,omitempty"`
	ImageURL       *string `json:"image_url,omitempty"`
	ProjectLink    *string `json:"project_link,omitempty"`
	HackathonCount *int    `json:"hackathon_count,omitempty"`
	College        *string `json:"college,omitempty"`
}

// Apply overlays the patch on s and returns the result as a NewStudent so it
// can go through the same validation as a fresh insert.
func (p StudentPatch) Apply(s Student) NewStudent {
	n := NewStudent{
		Name:           s.Name,
		Score:          s.Score,
		TeamName:       s.TeamName,
		ImageURL:       s.ImageURL,
		ProjectLink:    s.ProjectLink,
		HackathonCount: s.HackathonCount,
		College:        s.College,
	}
	if p.Name != nil {
		n.Name = *p.Name
	}
	if p.Score != nil {
		n.Score = *p.Score
	}
	if p.TeamName != nil {
		n.TeamName = *p.TeamName
	}
	if p.ImageURL != nil {
		n.ImageURL = *p.ImageURL
	}
	if p.ProjectLink != nil {
		n.ProjectLink = *p.ProjectLink
	}
	if p.HackathonCount != nil {
		n.HackathonCount = *p.HackathonCount
	}
	if p.College != nil {
		n.College = *p.College
	}
	return n
}

// Empty reports whether the patch changes nothing.
func (p StudentPatch) Empty() bool {
	return p.Name == nil && p.Score == nil && p.TeamName == nil && p.ImageURL == nil &&
		p.ProjectLink == nil && p.HackathonCount == nil && p.College == nil
}
