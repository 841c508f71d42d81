// Package feedback generates the two AI feedback variants for an entry:
// a professional-counselor take and a sarcastic-friend take. Generation is
// all-or-nothing; a failure of either variant persists neither.
package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/inkwell-journal/inkwell/internal/apperror"
	"github.com/inkwell-journal/inkwell/internal/plugins/entries"
)

// minBodyLength is the minimum trimmed entry body length eligible for
// feedback. Shorter entries don't give the personas enough to work with.
const minBodyLength = 50

const (
	professionalPersona = "You are a professional counselor. Provide thoughtful, empathetic feedback on journal entries. Focus on emotional insights, coping strategies, and positive reinforcement. Keep it supportive and constructive."
	humorousPersona     = "You are a sarcastic but ultimately caring friend. Provide witty, slightly irreverent feedback on journal entries. Use humor, light teasing, and casual language. Be funny but not mean-spirited."
)

// Generator produces text from a system prompt and a user message.
// Implemented by the aiclient package.
type Generator interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// Pair holds the two generated feedback variants.
type Pair struct {
	Professional string    `json:"professional"`
	Humorous     string    `json:"humorous"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// FeedbackService defines the business logic contract for feedback generation.
type FeedbackService interface {
	Generate(ctx context.Context, entryID, ownerID string) (*Pair, error)
}

// feedbackService implements FeedbackService on top of the entries façade
// and an external text generator.
type feedbackService struct {
	entries   entries.EntryService
	generator Generator
}

// NewFeedbackService creates a new feedback service. generator may be nil
// when no AI endpoint is configured; Generate then fails cleanly.
func NewFeedbackService(entrySvc entries.EntryService, generator Generator) FeedbackService {
	return &feedbackService{entries: entrySvc, generator: generator}
}

// Generate produces both feedback variants for the given entry and persists
// them together with a generation timestamp. The calls run sequentially;
// if either fails, nothing is stored and the caller sees a single upstream
// failure it can manually re-trigger.
func (s *feedbackService) Generate(ctx context.Context, entryID, ownerID string) (*Pair, error) {
	if s.generator == nil {
		return nil, apperror.NewUpstream("feedback generation is not configured", nil)
	}

	entry, err := s.entries.Get(ctx, entryID, ownerID)
	if err != nil {
		return nil, err
	}

	body := strings.TrimSpace(entry.Body)
	if len(body) < minBodyLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("entry body must be at least %d characters for feedback", minBodyLength))
	}

	professional, err := s.generator.Complete(ctx, professionalPersona, body)
	if err != nil {
		return nil, apperror.NewUpstream("feedback generation failed", err)
	}

	humorous, err := s.generator.Complete(ctx, humorousPersona, body)
	if err != nil {
		return nil, apperror.NewUpstream("feedback generation failed", err)
	}

	generatedAt := time.Now().UTC()
	if err := s.entries.SaveFeedback(ctx, entryID, ownerID, professional, humorous, generatedAt); err != nil {
		return nil, err
	}

	slog.Info("feedback generated",
		slog.String("entry_id", entryID),
		slog.String("user_id", ownerID),
	)

	return &Pair{
		Professional: professional,
		Humorous:     humorous,
		GeneratedAt:  generatedAt,
	}, nil
}
