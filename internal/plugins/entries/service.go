package entries

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-journal/inkwell/internal/apperror"
	"github.com/inkwell-journal/inkwell/internal/sanitize"
)

// wordsPerMinute is the reading speed assumed for the reading-time estimate.
const wordsPerMinute = 200

// FolderChecker reports whether a folder exists and is owned by the given
// user. Implemented by the folders repository; declared here so this
// package doesn't depend on it.
type FolderChecker interface {
	FolderExists(ctx context.Context, folderID, ownerID string) (bool, error)
}

// EntryService defines the business logic contract for entries. Handlers
// and the feedback service call these methods.
type EntryService interface {
	Create(ctx context.Context, ownerID string, input CreateInput) (*Entry, error)
	Get(ctx context.Context, id, ownerID string) (*Entry, error)
	Update(ctx context.Context, id, ownerID string, input UpdateInput) (*Entry, error)
	Delete(ctx context.Context, id, ownerID string) error
	List(ctx context.Context, ownerID string, filter ListFilter) ([]Entry, error)
	ListByFolder(ctx context.Context, ownerID, folderID string) ([]Entry, error)
	ToggleFavorite(ctx context.Context, id, ownerID string) (*Entry, error)
	SaveFeedback(ctx context.Context, id, ownerID, professional, humorous string, generatedAt time.Time) error
}

// entryService implements EntryService.
type entryService struct {
	repo    EntryRepository
	folders FolderChecker
}

// NewEntryService creates a new entry service with the given dependencies.
func NewEntryService(repo EntryRepository, folders FolderChecker) EntryService {
	return &entryService{repo: repo, folders: folders}
}

// Create validates the input, derives word count and reading time from the
// body, and persists the entry.
func (s *entryService) Create(ctx context.Context, ownerID string, input CreateInput) (*Entry, error) {
	mood, err := normalizeMood(input.Mood)
	if err != nil {
		return nil, err
	}

	folderID, err := s.checkFolderRef(ctx, input.FolderID, ownerID)
	if err != nil {
		return nil, err
	}

	body := sanitize.Text(input.Body)
	now := time.Now().UTC()
	entry := &Entry{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		FolderID:    folderID,
		Title:       normalizeTitle(input.Title),
		Body:        body,
		Mood:        mood,
		Tags:        NormalizeTags(input.Tags),
		Favorite:    input.Favorite,
		WordCount:   WordCount(body),
		ReadingTime: ReadingTime(WordCount(body)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating entry: %w", err))
	}

	slog.Info("entry created",
		slog.String("entry_id", entry.ID),
		slog.String("user_id", ownerID),
		slog.Int("word_count", entry.WordCount),
	)

	return entry, nil
}

// Get retrieves a single entry owned by the caller.
func (s *entryService) Get(ctx context.Context, id, ownerID string) (*Entry, error) {
	return s.repo.FindByID(ctx, id, ownerID)
}

// Update applies a partial update. Word count and reading time are
// recomputed only when the body changes; a body-less update leaves them
// untouched.
func (s *entryService) Update(ctx context.Context, id, ownerID string, input UpdateInput) (*Entry, error) {
	entry, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		entry.Title = normalizeTitle(*input.Title)
	}
	if input.Body != nil {
		entry.Body = sanitize.Text(*input.Body)
		entry.WordCount = WordCount(entry.Body)
		entry.ReadingTime = ReadingTime(entry.WordCount)
	}
	if input.Mood != nil {
		mood, err := normalizeMood(input.Mood)
		if err != nil {
			return nil, err
		}
		entry.Mood = mood
	}
	if input.Tags != nil {
		entry.Tags = NormalizeTags(*input.Tags)
	}
	if input.FolderID != nil {
		folderID, err := s.checkFolderRef(ctx, input.FolderID, ownerID)
		if err != nil {
			return nil, err
		}
		entry.FolderID = folderID
	}
	if input.Favorite != nil {
		entry.Favorite = *input.Favorite
	}
	entry.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// Delete removes an entry owned by the caller.
func (s *entryService) Delete(ctx context.Context, id, ownerID string) error {
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}

	slog.Info("entry deleted",
		slog.String("entry_id", id),
		slog.String("user_id", ownerID),
	)

	return nil
}

// List returns the caller's entries with the given filter applied. Filters
// run in memory over the full list; the data volumes here are a single
// person's journal.
func (s *entryService) List(ctx context.Context, ownerID string, filter ListFilter) ([]Entry, error) {
	entries, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing entries: %w", err))
	}
	return applyFilter(entries, filter), nil
}

// ListByFolder returns the caller's entries filed under a folder. Access
// control for protected folders is the folders plugin's concern.
func (s *entryService) ListByFolder(ctx context.Context, ownerID, folderID string) ([]Entry, error) {
	entries, err := s.repo.ListByFolder(ctx, ownerID, folderID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing folder entries: %w", err))
	}
	return entries, nil
}

// ToggleFavorite reads the current favorite flag and writes it inverted.
// Two concurrent toggles from different sessions can race; last write wins,
// which is acceptable for a single-owner journal.
func (s *entryService) ToggleFavorite(ctx context.Context, id, ownerID string) (*Entry, error) {
	entry, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	entry.Favorite = !entry.Favorite
	entry.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// SaveFeedback persists both feedback variants for an entry.
func (s *entryService) SaveFeedback(ctx context.Context, id, ownerID, professional, humorous string, generatedAt time.Time) error {
	return s.repo.SaveFeedback(ctx, id, ownerID,
		sanitize.Text(professional), sanitize.Text(humorous), generatedAt)
}

// checkFolderRef validates a folder reference against the caller's folders.
// An empty string clears the reference (returns nil).
func (s *entryService) checkFolderRef(ctx context.Context, folderID *string, ownerID string) (*string, error) {
	if folderID == nil || *folderID == "" {
		return nil, nil
	}
	exists, err := s.folders.FolderExists(ctx, *folderID, ownerID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("checking folder: %w", err))
	}
	if !exists {
		return nil, apperror.NewValidation("folder does not exist")
	}
	return folderID, nil
}

// --- Derivations ---

// WordCount counts the maximal non-whitespace runs in body.
func WordCount(body string) int {
	return len(strings.Fields(body))
}

// ReadingTime estimates reading minutes at 200 words per minute, with a
// floor of one minute even for an empty body.
func ReadingTime(wordCount int) int {
	minutes := int(math.Ceil(float64(wordCount) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// NormalizeTags lowercases and trims each tag, drops blanks, and removes
// duplicates while preserving first-seen order.
func NormalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(sanitize.Text(tag)))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		normalized = append(normalized, t)
	}
	return normalized
}

// normalizeTitle strips markup and falls back to "Untitled" when blank.
func normalizeTitle(title string) string {
	t := sanitize.Text(title)
	if t == "" {
		return "Untitled"
	}
	return t
}

// normalizeMood validates the mood against the fixed set. An empty string
// clears the mood.
func normalizeMood(mood *string) (*string, error) {
	if mood == nil || *mood == "" {
		return nil, nil
	}
	for _, m := range Moods {
		if *mood == m {
			return mood, nil
		}
	}
	return nil, apperror.NewValidation("mood is not one of the supported markers")
}

// applyFilter narrows entries per the list filter.
func applyFilter(entries []Entry, filter ListFilter) []Entry {
	if filter.Search == "" && filter.Tag == "" && !filter.FavoritesOnly {
		return entries
	}

	search := strings.ToLower(filter.Search)
	tag := strings.ToLower(filter.Tag)

	filtered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if filter.FavoritesOnly && !e.Favorite {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Title), search) &&
			!strings.Contains(strings.ToLower(e.Body), search) {
			continue
		}
		if tag != "" && !hasTag(e.Tags, tag) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

// hasTag reports whether the (already lowercased) tag list contains tag.
func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
