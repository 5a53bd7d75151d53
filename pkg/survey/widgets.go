package survey

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/orgchart/pkg/errors"
)

// DateLayout is the accepted answer format of date questions.
const DateLayout = time.DateOnly

func baseWidget(q Question, control string) Widget {
	return Widget{
		QuestionID: q.ID,
		Kind:       q.Kind,
		Control:    control,
		Label:      q.Label,
		Help:       q.Help,
		Required:   q.Required,
	}
}

func invalid(q Question, format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidAnswer, "%s: "+format, append([]any{q.ID}, args...)...)
}

// ===== Free text =====

type textRenderer struct {
	control   string
	inputType string
}

func (r textRenderer) Widget(q Question) Widget {
	w := baseWidget(q, r.control)
	w.Attrs = map[string]string{}
	if r.inputType != "" {
		w.Attrs["type"] = r.inputType
	}
	if q.Placeholder != "" {
		w.Attrs["placeholder"] = q.Placeholder
	}
	return w
}

func (textRenderer) Validate(q Question, answer any) error {
	s, ok := answer.(string)
	if !ok {
		return invalid(q, "expected text, got %T", answer)
	}
	if q.Required && strings.TrimSpace(s) == "" {
		return invalid(q, "answer required")
	}
	return nil
}

// ===== Choices =====

type choiceRenderer struct {
	multiple bool
}

func (r choiceRenderer) Widget(q Question) Widget {
	control := "radio"
	if r.multiple {
		control = "checkbox"
	}
	w := baseWidget(q, control)
	w.Options = make([]Option, len(q.Options))
	for i, o := range q.Options {
		w.Options[i] = Option{Value: o, Label: o}
	}
	return w
}

func (r choiceRenderer) Validate(q Question, answer any) error {
	var picked []string
	switch v := answer.(type) {
	case string:
		picked = []string{v}
	case []string:
		picked = v
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return invalid(q, "expected option values, got %T", item)
			}
			picked = append(picked, s)
		}
	default:
		return invalid(q, "expected option value, got %T", answer)
	}

	if !r.multiple && len(picked) != 1 {
		return invalid(q, "expected exactly one option, got %d", len(picked))
	}
	seen := make(map[string]bool, len(picked))
	for _, p := range picked {
		if !slices.Contains(q.Options, p) {
			return invalid(q, "unknown option %q", p)
		}
		if seen[p] {
			return invalid(q, "option %q selected twice", p)
		}
		seen[p] = true
	}
	return nil
}

// ===== Rating =====

type ratingRenderer struct{}

func (ratingRenderer) Widget(q Question) Widget {
	w := baseWidget(q, "stars")
	w.Attrs = map[string]string{"min": "1", "max": strconv.Itoa(q.RatingScale())}
	return w
}

func (ratingRenderer) Validate(q Question, answer any) error {
	n, ok := toNumber(answer)
	if !ok || n != math.Trunc(n) {
		return invalid(q, "expected whole number, got %v", answer)
	}
	if n < 1 || n > float64(q.RatingScale()) {
		return invalid(q, "rating %v outside 1..%d", n, q.RatingScale())
	}
	return nil
}

// ===== Yes / no =====

type yesNoRenderer struct{}

func (yesNoRenderer) Widget(q Question) Widget {
	w := baseWidget(q, "toggle")
	w.Options = []Option{{Value: "yes", Label: "Yes"}, {Value: "no", Label: "No"}}
	return w
}

func (yesNoRenderer) Validate(q Question, answer any) error {
	switch v := answer.(type) {
	case bool:
		return nil
	case string:
		if s := strings.ToLower(v); s == "yes" || s == "no" {
			return nil
		}
	}
	return invalid(q, "expected yes or no, got %v", answer)
}

// ===== Date =====

type dateRenderer struct{}

func (dateRenderer) Widget(q Question) Widget {
	w := baseWidget(q, "input")
	w.Attrs = map[string]string{"type": "date"}
	return w
}

func (dateRenderer) Validate(q Question, answer any) error {
	s, ok := answer.(string)
	if !ok {
		return invalid(q, "expected date string, got %T", answer)
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return invalid(q, "expected date as YYYY-MM-DD, got %q", s)
	}
	return nil
}

// ===== Number =====

type numberRenderer struct{}

func (numberRenderer) Widget(q Question) Widget {
	w := baseWidget(q, "input")
	w.Attrs = map[string]string{"type": "number"}
	if q.Min != nil {
		w.Attrs["min"] = strconv.FormatFloat(*q.Min, 'f', -1, 64)
	}
	if q.Max != nil {
		w.Attrs["max"] = strconv.FormatFloat(*q.Max, 'f', -1, 64)
	}
	return w
}

func (numberRenderer) Validate(q Question, answer any) error {
	n, ok := toNumber(answer)
	if !ok {
		return invalid(q, "expected number, got %v", answer)
	}
	if q.Min != nil && n < *q.Min {
		return invalid(q, "%v below minimum %v", n, *q.Min)
	}
	if q.Max != nil && n > *q.Max {
		return invalid(q, "%v above maximum %v", n, *q.Max)
	}
	return nil
}

func toNumber(answer any) (float64, bool) {
	switch v := answer.(type) {
	case float64:
		return v, !math.IsNaN(v) && !math.IsInf(v, 0)
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return n, err == nil && !math.IsNaN(n) && !math.IsInf(n, 0)
	}
	return 0, false
}
