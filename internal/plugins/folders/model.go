// Package folders implements passphrase-gated entry folders. A folder may
// be protected by a passphrase; its contents are then listable only after
// the passphrase is verified once per session.
package folders

import (
	"time"
)

// Folder represents a named grouping of entries belonging to one owner.
// EntryCount is derived at list time and not stored.
type Folder struct {
	ID             string  `json:"id"`
	UserID         string  `json:"-"`
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	Protected      bool    `json:"protected"`
	PassphraseHash *string `json:"-"` // Present iff Protected. Never exposed.
	EntryCount     int     `json:"entry_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// --- Request DTOs (bound from HTTP requests) ---

// CreateRequest holds the data submitted to POST /api/folders.
type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Protected   bool   `json:"protected"`
	Passphrase  string `json:"passphrase"`
}

// UpdateRequest holds the data submitted to PUT /api/folders/:id. Nil
// fields are left untouched. Protection and passphrase are immutable after
// creation; renaming is the only edit affordance.
type UpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// UnlockRequest holds the passphrase submitted to POST /api/folders/:id/unlock.
type UnlockRequest struct {
	Passphrase string `json:"passphrase"`
}

// --- Service Input DTOs ---

// CreateInput is the validated input for creating a folder.
type CreateInput struct {
	Name        string
	Description string
	Protected   bool
	Passphrase  string
}

// UpdateInput is the validated input for a partial folder update.
type UpdateInput struct {
	Name        *string
	Description *string
}
