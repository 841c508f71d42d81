// Package entries implements journal entries: owner-scoped CRUD, the
// derived word-count and reading-time fields, tag normalization, favorite
// toggling, and persistence of generated feedback.
package entries

import (
	"time"
)

// Moods is the fixed set of mood markers an entry may carry. An entry has
// at most one mood, or none.
var Moods = []string{"😊", "😢", "😰", "😡", "🤔", "😴", "🎉", "💪", "🙏", "❤️"}

// Entry represents a single journal post. WordCount and ReadingTime are
// derived from Body at write time and never supplied by the client.
type Entry struct {
	ID          string   `json:"id"`
	UserID      string   `json:"-"`
	FolderID    *string  `json:"folder_id,omitempty"`
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	Mood        *string  `json:"mood,omitempty"`
	Tags        []string `json:"tags"`
	Favorite    bool     `json:"favorite"`
	WordCount   int      `json:"word_count"`
	ReadingTime int      `json:"reading_time"`

	// Feedback holds the two generated feedback variants, set together or
	// not at all.
	FeedbackProfessional *string    `json:"feedback_professional,omitempty"`
	FeedbackHumorous     *string    `json:"feedback_humorous,omitempty"`
	FeedbackGeneratedAt  *time.Time `json:"feedback_generated_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// --- Request DTOs (bound from HTTP requests) ---

// CreateRequest holds the data submitted to POST /api/entries.
type CreateRequest struct {
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Mood     *string  `json:"mood"`
	Tags     []string `json:"tags"`
	FolderID *string  `json:"folder_id"`
	Favorite bool     `json:"favorite"`
}

// UpdateRequest holds the data submitted to PUT /api/entries/:id. All
// fields are optional; nil means "leave untouched". An empty string in
// Mood or FolderID clears the field.
type UpdateRequest struct {
	Title    *string   `json:"title"`
	Body     *string   `json:"body"`
	Mood     *string   `json:"mood"`
	Tags     *[]string `json:"tags"`
	FolderID *string   `json:"folder_id"`
	Favorite *bool     `json:"favorite"`
}

// --- Service Input DTOs ---

// CreateInput is the validated input for creating an entry.
type CreateInput struct {
	Title    string
	Body     string
	Mood     *string
	Tags     []string
	FolderID *string
	Favorite bool
}

// UpdateInput is the validated input for a partial update. Semantics match
// UpdateRequest.
type UpdateInput struct {
	Title    *string
	Body     *string
	Mood     *string
	Tags     *[]string
	FolderID *string
	Favorite *bool
}

// ListFilter narrows List results. Zero value means no filtering.
type ListFilter struct {
	// Search is a case-insensitive substring match over title and body.
	Search string

	// Tag keeps only entries carrying this tag (case-insensitive).
	Tag string

	// FavoritesOnly keeps only favorited entries.
	FavoritesOnly bool
}
