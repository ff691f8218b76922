package ai

import (
	"context"
	"fmt"
	"strings"

	"prompt-refiner/internal/models"
)

// Chat roles as sent by the frontend.
const (
	RoleUser  = "user"
	RoleModel = "model"
	// roleAssistant is accepted as an alias of RoleModel.
	roleAssistant = "assistant"
)

// Part is one text fragment of a chat turn.
type Part struct {
	Text string
}

// Turn - одна реплика в истории чата.
type Turn struct {
	Role  string
	Parts []Part
}

// Text joins all parts of the turn with newlines.
func (t Turn) Text() string {
	texts := make([]string, 0, len(t.Parts))
	for _, p := range t.Parts {
		texts = append(texts, p.Text)
	}
	return strings.Join(texts, "\n")
}

// IsModel reports whether the turn was produced by the model.
func (t Turn) IsModel() bool {
	r := strings.ToLower(t.Role)
	return r == RoleModel || r == roleAssistant
}

// Result is a successful provider answer. Text is trimmed; an empty Text means
// the provider answered without usable content.
type Result struct {
	Text string
}

func newResult(raw string) Result {
	return Result{Text: strings.TrimSpace(raw)}
}

// Empty reports whether the provider returned no usable text.
func (r Result) Empty() bool {
	return r.Text == ""
}

// TextOr returns the text, or fallback when the result is empty.
func (r Result) TextOr(fallback string) string {
	if r.Empty() {
		return fallback
	}
	return r.Text
}

// Generator is the adapter over an external text generation service.
// A non-nil error is always a *GenerationError. Implementations never retry.
type Generator interface {
	// Complete sends a single prompt.
	Complete(ctx context.Context, prompt string) (Result, error)
	// Chat sends the whole ordered history and returns the next model turn.
	Chat(ctx context.Context, history []Turn) (Result, error)
}

// GenerationError - ошибка транспорта или провайдера генерации.
// Совпадает с models.ErrGenerationFailed через errors.Is.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", models.ErrGenerationFailed, e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() []error {
	return []error{models.ErrGenerationFailed, e.Err}
}

func newGenerationError(provider string, err error) error {
	return &GenerationError{Provider: provider, Err: err}
}
