package feedback

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/inkwell-journal/inkwell/internal/apperror"
	"github.com/inkwell-journal/inkwell/internal/plugins/entries"
)

// --- Mock Entry Service ---

// mockEntryService implements entries.EntryService; only Get and
// SaveFeedback are exercised here.
type mockEntryService struct {
	getFn          func(ctx context.Context, id, ownerID string) (*entries.Entry, error)
	saveFeedbackFn func(ctx context.Context, id, ownerID, professional, humorous string, generatedAt time.Time) error
}

func (m *mockEntryService) Create(ctx context.Context, ownerID string, input entries.CreateInput) (*entries.Entry, error) {
	return nil, errors.New("not implemented")
}

func (m *mockEntryService) Get(ctx context.Context, id, ownerID string) (*entries.Entry, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id, ownerID)
	}
	return nil, apperror.NewNotFound("entry not found")
}

func (m *mockEntryService) Update(ctx context.Context, id, ownerID string, input entries.UpdateInput) (*entries.Entry, error) {
	return nil, errors.New("not implemented")
}

func (m *mockEntryService) Delete(ctx context.Context, id, ownerID string) error {
	return errors.New("not implemented")
}

func (m *mockEntryService) List(ctx context.Context, ownerID string, filter entries.ListFilter) ([]entries.Entry, error) {
	return nil, errors.New("not implemented")
}

func (m *mockEntryService) ListByFolder(ctx context.Context, ownerID, folderID string) ([]entries.Entry, error) {
	return nil, errors.New("not implemented")
}

func (m *mockEntryService) ToggleFavorite(ctx context.Context, id, ownerID string) (*entries.Entry, error) {
	return nil, errors.New("not implemented")
}

func (m *mockEntryService) SaveFeedback(ctx context.Context, id, ownerID, professional, humorous string, generatedAt time.Time) error {
	if m.saveFeedbackFn != nil {
		return m.saveFeedbackFn(ctx, id, ownerID, professional, humorous, generatedAt)
	}
	return nil
}

// --- Mock Generator ---

// mockGenerator implements Generator, returning canned text per persona.
type mockGenerator struct {
	completeFn func(ctx context.Context, systemPrompt, userMessage string) (string, error)
	calls      int
}

func (m *mockGenerator) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	m.calls++
	if m.completeFn != nil {
		return m.completeFn(ctx, systemPrompt, userMessage)
	}
	return "generated feedback", nil
}

// --- Test Helpers ---

// longBody is comfortably past the minimum length gate.
var longBody = strings.Repeat("today I wrote about my day. ", 5)

func entryWithBody(body string) *entries.Entry {
	return &entries.Entry{ID: "e1", Body: body}
}

// assertAppError checks that err is an *apperror.AppError with the expected code.
func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// --- Tests ---

func TestGenerate_Success(t *testing.T) {
	var savedProfessional, savedHumorous string
	entrySvc := &mockEntryService{
		getFn: func(ctx context.Context, id, ownerID string) (*entries.Entry, error) {
			return entryWithBody(longBody), nil
		},
		saveFeedbackFn: func(ctx context.Context, id, ownerID, professional, humorous string, generatedAt time.Time) error {
			savedProfessional, savedHumorous = professional, humorous
			return nil
		},
	}
	gen := &mockGenerator{
		completeFn: func(ctx context.Context, systemPrompt, userMessage string) (string, error) {
			if strings.Contains(systemPrompt, "counselor") {
				return "counselor take", nil
			}
			return "friend take", nil
		},
	}

	svc := NewFeedbackService(entrySvc, gen)
	pair, err := svc.Generate(context.Background(), "e1", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pair.Professional != "counselor take" || pair.Humorous != "friend take" {
		t.Errorf("unexpected pair: %+v", pair)
	}
	if savedProfessional != "counselor take" || savedHumorous != "friend take" {
		t.Errorf("expected both variants persisted, got %q / %q", savedProfessional, savedHumorous)
	}
	if gen.calls != 2 {
		t.Errorf("expected 2 generator calls, got %d", gen.calls)
	}
	if pair.GeneratedAt.IsZero() {
		t.Error("expected generation timestamp to be set")
	}
}

func TestGenerate_BodyTooShort(t *testing.T) {
	entrySvc := &mockEntryService{
		getFn: func(ctx context.Context, id, ownerID string) (*entries.Entry, error) {
			return entryWithBody("too short"), nil
		},
	}
	gen := &mockGenerator{}

	svc := NewFeedbackService(entrySvc, gen)
	_, err := svc.Generate(context.Background(), "e1", "user-1")
	assertAppError(t, err, 422)
	if gen.calls != 0 {
		t.Errorf("expected no generator calls for a short body, got %d", gen.calls)
	}
}

func TestGenerate_TrimmedLengthCounts(t *testing.T) {
	// 49 characters padded with whitespace must still fail the gate.
	body := "   " + strings.Repeat("x", 49) + "   "
	entrySvc := &mockEntryService{
		getFn: func(ctx context.Context, id, ownerID string) (*entries.Entry, error) {
			return entryWithBody(body), nil
		},
	}

	svc := NewFeedbackService(entrySvc, &mockGenerator{})
	_, err := svc.Generate(context.Background(), "e1", "user-1")
	assertAppError(t, err, 422)
}

func TestGenerate_FirstCallFailsPersistsNothing(t *testing.T) {
	saved := false
	entrySvc := &mockEntryService{
		getFn: func(ctx context.Context, id, ownerID string) (*entries.Entry, error) {
			return entryWithBody(longBody), nil
		},
		saveFeedbackFn: func(ctx context.Context, id, ownerID, professional, humorous string, generatedAt time.Time) error {
			saved = true
			return nil
		},
	}
	gen := &mockGenerator{
		completeFn: func(ctx context.Context, systemPrompt, userMessage string) (string, error) {
			return "", errors.New("upstream down")
		},
	}

	svc := NewFeedbackService(entrySvc, gen)
	_, err := svc.Generate(context.Background(), "e1", "user-1")
	assertAppError(t, err, 502)
	if saved {
		t.Error("nothing must be persisted when generation fails")
	}
	if gen.calls != 1 {
		t.Errorf("expected generation to stop after the first failure, got %d calls", gen.calls)
	}
}

func TestGenerate_SecondCallFailsPersistsNothing(t *testing.T) {
	saved := false
	entrySvc := &mockEntryService{
		getFn: func(ctx context.Context, id, ownerID string) (*entries.Entry, error) {
			return entryWithBody(longBody), nil
		},
		saveFeedbackFn: func(ctx context.Context, id, ownerID, professional, humorous string, generatedAt time.Time) error {
			saved = true
			return nil
		},
	}
	gen := &mockGenerator{}
	gen.completeFn = func(ctx context.Context, systemPrompt, userMessage string) (string, error) {
		if gen.calls == 2 {
			return "", errors.New("upstream down")
		}
		return "ok", nil
	}

	svc := NewFeedbackService(entrySvc, gen)
	_, err := svc.Generate(context.Background(), "e1", "user-1")
	assertAppError(t, err, 502)
	if saved {
		t.Error("a partial success must persist nothing")
	}
}

func TestGenerate_NoGeneratorConfigured(t *testing.T) {
	svc := NewFeedbackService(&mockEntryService{}, nil)
	_, err := svc.Generate(context.Background(), "e1", "user-1")
	assertAppError(t, err, 502)
}

func TestGenerate_EntryNotOwned(t *testing.T) {
	svc := NewFeedbackService(&mockEntryService{}, &mockGenerator{})
	_, err := svc.Generate(context.Background(), "e1", "intruder")
	assertAppError(t, err, 404)
}
