package entries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/inkwell-journal/inkwell/internal/apperror"
)

// EntryRepository defines the data access contract for entry operations.
// Every query carries the owner ID so a row owned by another user reads
// as not found.
type EntryRepository interface {
	Create(ctx context.Context, entry *Entry) error
	FindByID(ctx context.Context, id, ownerID string) (*Entry, error)
	Update(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, id, ownerID string) error
	List(ctx context.Context, ownerID string) ([]Entry, error)
	ListByFolder(ctx context.Context, ownerID, folderID string) ([]Entry, error)
	SaveFeedback(ctx context.Context, id, ownerID, professional, humorous string, generatedAt time.Time) error
}

// entryRepository implements EntryRepository with hand-written MariaDB
// queries. Tags are stored as a JSON array column.
type entryRepository struct {
	db *sql.DB
}

// NewEntryRepository creates a new entry repository backed by the given DB pool.
func NewEntryRepository(db *sql.DB) EntryRepository {
	return &entryRepository{db: db}
}

const entryColumns = `id, user_id, folder_id, title, body, mood, tags, favorite,
	word_count, reading_time, feedback_professional, feedback_humorous,
	feedback_generated_at, created_at, updated_at`

// Create inserts a new entry row.
func (r *entryRepository) Create(ctx context.Context, entry *Entry) error {
	tags, err := encodeTags(entry.Tags)
	if err != nil {
		return err
	}

	query := `INSERT INTO entries
	          (id, user_id, folder_id, title, body, mood, tags, favorite,
	           word_count, reading_time, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.FolderID,
		entry.Title,
		entry.Body,
		entry.Mood,
		tags,
		entry.Favorite,
		entry.WordCount,
		entry.ReadingTime,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting entry: %w", err)
	}

	return nil
}

// FindByID retrieves an entry by ID, scoped to its owner.
// Returns apperror.NotFound if no matching row exists.
func (r *entryRepository) FindByID(ctx context.Context, id, ownerID string) (*Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = ? AND user_id = ?`

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("entry not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying entry by id: %w", err)
	}

	return entry, nil
}

// Update rewrites an entry's mutable columns. The WHERE clause carries the
// owner filter so callers can't reach rows they don't own.
func (r *entryRepository) Update(ctx context.Context, entry *Entry) error {
	tags, err := encodeTags(entry.Tags)
	if err != nil {
		return err
	}

	query := `UPDATE entries
	          SET folder_id = ?, title = ?, body = ?, mood = ?, tags = ?,
	              favorite = ?, word_count = ?, reading_time = ?, updated_at = ?
	          WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query,
		entry.FolderID,
		entry.Title,
		entry.Body,
		entry.Mood,
		tags,
		entry.Favorite,
		entry.WordCount,
		entry.ReadingTime,
		entry.UpdatedAt,
		entry.ID,
		entry.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating entry: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		// Either the row doesn't exist or it belongs to someone else;
		// the caller can't tell the difference.
		return apperror.NewNotFound("entry not found")
	}

	return nil
}

// Delete removes an entry owned by the caller.
func (r *entryRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM entries WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("entry not found")
	}

	return nil
}

// List returns all of the caller's entries, newest first.
func (r *entryRepository) List(ctx context.Context, ownerID string) ([]Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries
	          WHERE user_id = ? ORDER BY created_at DESC`

	return r.queryEntries(ctx, query, ownerID)
}

// ListByFolder returns the caller's entries filed under the given folder,
// newest first.
func (r *entryRepository) ListByFolder(ctx context.Context, ownerID, folderID string) ([]Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries
	          WHERE user_id = ? AND folder_id = ? ORDER BY created_at DESC`

	return r.queryEntries(ctx, query, ownerID, folderID)
}

// SaveFeedback stores both feedback variants and the generation timestamp
// in one statement so the pair is always set together.
func (r *entryRepository) SaveFeedback(ctx context.Context, id, ownerID, professional, humorous string, generatedAt time.Time) error {
	query := `UPDATE entries
	          SET feedback_professional = ?, feedback_humorous = ?, feedback_generated_at = ?
	          WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, professional, humorous, generatedAt, id, ownerID)
	if err != nil {
		return fmt.Errorf("saving feedback: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("entry not found")
	}

	return nil
}

// --- Scanning helpers ---

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning code.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanEntry reads one entry row including JSON tag decoding.
func scanEntry(row rowScanner) (*Entry, error) {
	entry := &Entry{}
	var tags []byte
	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.FolderID,
		&entry.Title,
		&entry.Body,
		&entry.Mood,
		&tags,
		&entry.Favorite,
		&entry.WordCount,
		&entry.ReadingTime,
		&entry.FeedbackProfessional,
		&entry.FeedbackHumorous,
		&entry.FeedbackGeneratedAt,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Tags = []string{}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &entry.Tags); err != nil {
			return nil, fmt.Errorf("decoding entry tags: %w", err)
		}
	}

	return entry, nil
}

// queryEntries runs a multi-row entry query and scans all results.
func (r *entryRepository) queryEntries(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry row: %w", err)
		}
		entries = append(entries, *entry)
	}

	return entries, rows.Err()
}

// encodeTags marshals the tag list for the JSON column. A nil slice is
// stored as an empty array so scans never see SQL NULL.
func encodeTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encoding entry tags: %w", err)
	}
	return data, nil
}
