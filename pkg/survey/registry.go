package survey

import (
	stderrors "errors"
	"fmt"
	"slices"
	"sync"

	"github.com/matzehuels/orgchart/pkg/errors"
)

// Widget describes how a host should draw a question.
type Widget struct {
	QuestionID string            `json:"question_id"`
	Kind       Kind              `json:"kind"`
	Control    string            `json:"control"`
	Label      string            `json:"label"`
	Help       string            `json:"help,omitempty"`
	Required   bool              `json:"required,omitempty"`
	Options    []Option          `json:"options,omitempty"`
	Attrs      map[string]string `json:"attrs,omitempty"`
}

// Option is one selectable value of a choice widget.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Renderer is the strategy registered for one question kind.
type Renderer interface {
	// Widget describes the control for q.
	Widget(q Question) Widget
	// Validate checks a submitted answer. A nil answer means unanswered.
	Validate(q Question, answer any) error
}

// Registry maps question kinds to renderers. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	renderers map[Kind]Renderer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[Kind]Renderer)}
}

// DefaultRegistry returns a registry with a renderer for every kind in AllKinds.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(KindText, textRenderer{control: "input", inputType: "text"})
	r.Register(KindTextarea, textRenderer{control: "textarea"})
	r.Register(KindSingleChoice, choiceRenderer{multiple: false})
	r.Register(KindMultipleChoice, choiceRenderer{multiple: true})
	r.Register(KindRating, ratingRenderer{})
	r.Register(KindYesNo, yesNoRenderer{})
	r.Register(KindDate, dateRenderer{})
	r.Register(KindNumber, numberRenderer{})
	return r
}

// Register sets the renderer for k, replacing any previous one.
func (r *Registry) Register(k Kind, renderer Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[k] = renderer
}

// Lookup returns the renderer for k.
func (r *Registry) Lookup(k Kind) (Renderer, error) {
	r.mu.RLock()
	renderer, ok := r.renderers[k]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownQuestion, "unknown question kind: %q", k)
	}
	return renderer, nil
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]Kind, 0, len(r.renderers))
	for k := range r.renderers {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Render returns the widget for q.
func (r *Registry) Render(q Question) (Widget, error) {
	renderer, err := r.Lookup(q.Kind)
	if err != nil {
		return Widget{}, err
	}
	if err := checkShape(q); err != nil {
		return Widget{}, err
	}
	return renderer.Widget(q), nil
}

// Validate checks one answer against q.
func (r *Registry) Validate(q Question, answer any) error {
	renderer, err := r.Lookup(q.Kind)
	if err != nil {
		return err
	}
	if isBlank(answer) {
		if q.Required {
			return errors.New(errors.ErrCodeInvalidAnswer, "%s: answer required", q.ID)
		}
		return nil
	}
	return renderer.Validate(q, answer)
}

// RenderAll renders every question of qn in order.
func (r *Registry) RenderAll(qn Questionnaire) ([]Widget, error) {
	widgets := make([]Widget, 0, len(qn.Questions))
	for _, q := range qn.Questions {
		w, err := r.Render(q)
		if err != nil {
			return nil, fmt.Errorf("question %s: %w", q.ID, err)
		}
		widgets = append(widgets, w)
	}
	return widgets, nil
}

// ValidateAll checks answers keyed by question ID and reports every failure.
// Answers for unknown question IDs are rejected.
func (r *Registry) ValidateAll(qn Questionnaire, answers map[string]any) error {
	var errs []error
	known := make(map[string]bool, len(qn.Questions))
	for _, q := range qn.Questions {
		known[q.ID] = true
		if err := r.Validate(q, answers[q.ID]); err != nil {
			errs = append(errs, err)
		}
	}
	ids := make([]string, 0, len(answers))
	for id := range answers {
		if !known[id] {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	for _, id := range ids {
		errs = append(errs, errors.New(errors.ErrCodeInvalidAnswer, "answer for unknown question %s", id))
	}
	return stderrors.Join(errs...)
}

// checkShape rejects questions whose configuration cannot be rendered.
func checkShape(q Question) error {
	switch q.Kind {
	case KindSingleChoice, KindMultipleChoice:
		if len(q.Options) == 0 {
			return errors.New(errors.ErrCodeInvalidQuestion, "%s: choice question without options", q.ID)
		}
	case KindNumber:
		if q.Min != nil && q.Max != nil && *q.Min > *q.Max {
			return errors.New(errors.ErrCodeInvalidQuestion, "%s: min %v above max %v", q.ID, *q.Min, *q.Max)
		}
	case KindRating:
		if q.Scale < 0 {
			return errors.New(errors.ErrCodeInvalidQuestion, "%s: negative rating scale", q.ID)
		}
	}
	return nil
}

func isBlank(answer any) bool {
	switch v := answer.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return false
}
