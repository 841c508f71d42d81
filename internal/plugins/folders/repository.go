package folders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/inkwell-journal/inkwell/internal/apperror"
)

// FolderRepository defines the data access contract for folder operations.
// Every query carries the owner ID so a row owned by another user reads
// as not found.
type FolderRepository interface {
	Create(ctx context.Context, folder *Folder) error
	FindByID(ctx context.Context, id, ownerID string) (*Folder, error)
	List(ctx context.Context, ownerID string) ([]Folder, error)
	Update(ctx context.Context, folder *Folder) error
	Delete(ctx context.Context, id, ownerID string) error

	// FolderExists satisfies the entries plugin's folder-reference check.
	FolderExists(ctx context.Context, folderID, ownerID string) (bool, error)
}

// folderRepository implements FolderRepository with hand-written MariaDB queries.
type folderRepository struct {
	db *sql.DB
}

// NewFolderRepository creates a new folder repository backed by the given DB pool.
func NewFolderRepository(db *sql.DB) FolderRepository {
	return &folderRepository{db: db}
}

// Create inserts a new folder row.
func (r *folderRepository) Create(ctx context.Context, folder *Folder) error {
	query := `INSERT INTO folders
	          (id, user_id, name, description, protected, passphrase_hash, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		folder.ID,
		folder.UserID,
		folder.Name,
		folder.Description,
		folder.Protected,
		folder.PassphraseHash,
		folder.CreatedAt,
		folder.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting folder: %w", err)
	}

	return nil
}

// FindByID retrieves a folder by ID with its entry count, scoped to its owner.
// Returns apperror.NotFound if no matching row exists.
func (r *folderRepository) FindByID(ctx context.Context, id, ownerID string) (*Folder, error) {
	query := `SELECT f.id, f.user_id, f.name, f.description, f.protected, f.passphrase_hash,
	                 f.created_at, f.updated_at,
	                 (SELECT COUNT(*) FROM entries e WHERE e.folder_id = f.id) AS entry_count
	          FROM folders f WHERE f.id = ? AND f.user_id = ?`

	folder := &Folder{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&folder.ID,
		&folder.UserID,
		&folder.Name,
		&folder.Description,
		&folder.Protected,
		&folder.PassphraseHash,
		&folder.CreatedAt,
		&folder.UpdatedAt,
		&folder.EntryCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("folder not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying folder by id: %w", err)
	}

	return folder, nil
}

// List returns all of the caller's folders with their entry counts, ordered
// by name.
func (r *folderRepository) List(ctx context.Context, ownerID string) ([]Folder, error) {
	query := `SELECT f.id, f.user_id, f.name, f.description, f.protected, f.passphrase_hash,
	                 f.created_at, f.updated_at, COUNT(e.id) AS entry_count
	          FROM folders f
	          LEFT JOIN entries e ON e.folder_id = f.id
	          WHERE f.user_id = ?
	          GROUP BY f.id
	          ORDER BY f.name`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}
	defer rows.Close()

	var folders []Folder
	for rows.Next() {
		var f Folder
		if err := rows.Scan(
			&f.ID, &f.UserID, &f.Name, &f.Description, &f.Protected,
			&f.PassphraseHash, &f.CreatedAt, &f.UpdatedAt, &f.EntryCount,
		); err != nil {
			return nil, fmt.Errorf("scanning folder row: %w", err)
		}
		folders = append(folders, f)
	}

	return folders, rows.Err()
}

// Update rewrites a folder's name and description.
func (r *folderRepository) Update(ctx context.Context, folder *Folder) error {
	query := `UPDATE folders SET name = ?, description = ?, updated_at = ?
	          WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query,
		folder.Name,
		folder.Description,
		folder.UpdatedAt,
		folder.ID,
		folder.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating folder: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("folder not found")
	}

	return nil
}

// Delete removes a folder in one transaction: member entries are unfiled
// first, then the folder row is removed. Entries are never deleted here.
func (r *folderRepository) Delete(ctx context.Context, id, ownerID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting folder delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE entries SET folder_id = NULL WHERE folder_id = ? AND user_id = ?`,
		id, ownerID,
	); err != nil {
		return fmt.Errorf("unfiling folder entries: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM folders WHERE id = ? AND user_id = ?`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("deleting folder: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("folder not found")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing folder delete: %w", err)
	}

	return nil
}

// FolderExists returns true if the folder exists and is owned by ownerID.
func (r *folderRepository) FolderExists(ctx context.Context, folderID, ownerID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM folders WHERE id = ? AND user_id = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, folderID, ownerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking folder existence: %w", err)
	}

	return exists, nil
}
