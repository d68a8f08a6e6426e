package model

import (
	"strings"
	"time"
)

// Note is a free-form markdown note. Tags keep their input order and are not
// deduplicated.
type Note struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content,omitempty"`
	Tags    []string  `json:"tags,omitempty"`
	Created time.Time `json:"created_at"`
	Updated time.Time `json:"updated_at"`
}

// NewNote creates a note with a fresh ID and both timestamps set to now.
func NewNote(title string, now time.Time) Note {
	return Note{
		ID:      NewID(now),
		Title:   title,
		Created: now,
		Updated: now,
	}
}

// Touch refreshes the Updated timestamp.
func (n *Note) Touch(now time.Time) {
	n.Updated = now
}

// MatchesSearch performs case-insensitive substring matching across
// title, content, and tags.
func (n *Note) MatchesSearch(query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(n.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Content), q) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// ParseTags splits a comma-separated tag string, trimming whitespace and
// dropping empty entries. Order is preserved; duplicates are kept.
func ParseTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}
