package folders

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/inkwell-journal/inkwell/internal/apperror"
	"github.com/inkwell-journal/inkwell/internal/passhash"
	"github.com/inkwell-journal/inkwell/internal/plugins/entries"
	"github.com/inkwell-journal/inkwell/internal/sanitize"
)

// unlockKeyPrefix is the Redis key prefix for per-session folder unlocks.
// Keys are scoped to the session token, so an unlock never outlives the
// session that performed it and other sessions stay locked.
const unlockKeyPrefix = "folderunlock:"

// FolderService defines the business logic contract for folders.
type FolderService interface {
	Create(ctx context.Context, ownerID string, input CreateInput) (*Folder, error)
	List(ctx context.Context, ownerID string) ([]Folder, error)
	Update(ctx context.Context, id, ownerID string, input UpdateInput) (*Folder, error)
	Delete(ctx context.Context, id, ownerID string) error
	Unlock(ctx context.Context, id, ownerID, sessionToken, passphrase string) error
	ListEntries(ctx context.Context, id, ownerID, sessionToken string) ([]entries.Entry, error)
}

// folderService implements FolderService with argon2id passphrase hashing
// and Redis-backed unlock state.
type folderService struct {
	repo      FolderRepository
	entries   entries.EntryService
	redis     *redis.Client
	unlockTTL time.Duration
}

// NewFolderService creates a new folder service. unlockTTL should match the
// session TTL so unlock state dies no later than the session.
func NewFolderService(repo FolderRepository, entrySvc entries.EntryService, rdb *redis.Client, unlockTTL time.Duration) FolderService {
	return &folderService{
		repo:      repo,
		entries:   entrySvc,
		redis:     rdb,
		unlockTTL: unlockTTL,
	}
}

// Create validates and persists a new folder. A protected folder must carry
// a non-blank passphrase, which is stored only as an argon2id hash.
func (s *folderService) Create(ctx context.Context, ownerID string, input CreateInput) (*Folder, error) {
	name := sanitize.Text(input.Name)
	if name == "" {
		return nil, apperror.NewValidation("folder name is required")
	}
	if input.Protected && strings.TrimSpace(input.Passphrase) == "" {
		return nil, apperror.NewValidation("a passphrase is required for a protected folder")
	}

	var passphraseHash *string
	if input.Protected {
		hash, err := passhash.Hash(input.Passphrase)
		if err != nil {
			return nil, apperror.NewInternal(fmt.Errorf("hashing passphrase: %w", err))
		}
		passphraseHash = &hash
	}

	now := time.Now().UTC()
	folder := &Folder{
		ID:             uuid.NewString(),
		UserID:         ownerID,
		Name:           name,
		Description:    sanitize.Text(input.Description),
		Protected:      input.Protected,
		PassphraseHash: passphraseHash,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, folder); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating folder: %w", err))
	}

	slog.Info("folder created",
		slog.String("folder_id", folder.ID),
		slog.String("user_id", ownerID),
		slog.Bool("protected", folder.Protected),
	)

	return folder, nil
}

// List returns the caller's folders with entry counts.
func (s *folderService) List(ctx context.Context, ownerID string) ([]Folder, error) {
	folders, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing folders: %w", err))
	}
	return folders, nil
}

// Update renames or re-describes a folder.
func (s *folderService) Update(ctx context.Context, id, ownerID string, input UpdateInput) (*Folder, error) {
	folder, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := sanitize.Text(*input.Name)
		if name == "" {
			return nil, apperror.NewValidation("folder name is required")
		}
		folder.Name = name
	}
	if input.Description != nil {
		folder.Description = sanitize.Text(*input.Description)
	}
	folder.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, folder); err != nil {
		return nil, err
	}

	return folder, nil
}

// Delete removes a folder. Its entries survive and become unfiled; the
// repository performs both steps in one transaction.
func (s *folderService) Delete(ctx context.Context, id, ownerID string) error {
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}

	slog.Info("folder deleted",
		slog.String("folder_id", id),
		slog.String("user_id", ownerID),
	)

	return nil
}

// Unlock verifies the supplied passphrase against the stored hash and, on
// success, records the unlock for the calling session. A wrong passphrase
// records nothing; there is no lockout or backoff.
func (s *folderService) Unlock(ctx context.Context, id, ownerID, sessionToken, passphrase string) error {
	folder, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return err
	}

	// Unprotected folders are always open; unlocking one is a no-op.
	if !folder.Protected {
		return nil
	}

	if folder.PassphraseHash == nil || !passhash.Verify(passphrase, *folder.PassphraseHash) {
		return apperror.NewForbidden("incorrect passphrase")
	}

	key := unlockKey(sessionToken, id)
	if err := s.redis.Set(ctx, key, "1", s.unlockTTL).Err(); err != nil {
		return apperror.NewInternal(fmt.Errorf("recording folder unlock: %w", err))
	}

	slog.Info("folder unlocked",
		slog.String("folder_id", id),
		slog.String("user_id", ownerID),
	)

	return nil
}

// ListEntries returns the entries filed under a folder. A protected folder
// must have been unlocked earlier in the same session.
func (s *folderService) ListEntries(ctx context.Context, id, ownerID, sessionToken string) ([]entries.Entry, error) {
	folder, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if folder.Protected {
		unlocked, err := s.isUnlocked(ctx, sessionToken, id)
		if err != nil {
			return nil, apperror.NewInternal(fmt.Errorf("checking folder unlock: %w", err))
		}
		if !unlocked {
			return nil, apperror.NewForbidden("folder is locked")
		}
	}

	return s.entries.ListByFolder(ctx, ownerID, id)
}

// isUnlocked reports whether this session has unlocked the folder.
func (s *folderService) isUnlocked(ctx context.Context, sessionToken, folderID string) (bool, error) {
	n, err := s.redis.Exists(ctx, unlockKey(sessionToken, folderID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// unlockKey builds the Redis key for a session's unlock of a folder.
func unlockKey(sessionToken, folderID string) string {
	return unlockKeyPrefix + sessionToken + ":" + folderID
}
