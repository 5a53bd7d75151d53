package survey

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/orgchart/pkg/errors"
)

// Kind tags a question with the widget used to answer it.
type Kind string

const (
	KindText           Kind = "text"
	KindTextarea       Kind = "textarea"
	KindSingleChoice   Kind = "single_choice"
	KindMultipleChoice Kind = "multiple_choice"
	KindRating         Kind = "rating"
	KindYesNo          Kind = "yes_no"
	KindDate           Kind = "date"
	KindNumber         Kind = "number"
)

// AllKinds lists every kind in declaration order.
var AllKinds = []Kind{
	KindText, KindTextarea, KindSingleChoice, KindMultipleChoice,
	KindRating, KindYesNo, KindDate, KindNumber,
}

// DefaultRatingScale is the number of steps of a rating question without Scale.
const DefaultRatingScale = 5

// Question is one entry of a questionnaire.
type Question struct {
	ID          string   `json:"id" yaml:"id"`
	Kind        Kind     `json:"kind" yaml:"kind"`
	Label       string   `json:"label" yaml:"label"`
	Help        string   `json:"help,omitempty" yaml:"help,omitempty"`
	Required    bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Options     []string `json:"options,omitempty" yaml:"options,omitempty"`
	Scale       int      `json:"scale,omitempty" yaml:"scale,omitempty"`
	Min         *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Placeholder string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// RatingScale returns Scale or DefaultRatingScale when unset.
func (q Question) RatingScale() int {
	if q.Scale > 0 {
		return q.Scale
	}
	return DefaultRatingScale
}

// Questionnaire is an ordered list of questions.
type Questionnaire struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Questions   []Question `json:"questions" yaml:"questions"`
}

// Normalize assigns a random ID to the questionnaire and to every question
// that lacks one, and trims labels.
func (qn *Questionnaire) Normalize() {
	if qn.ID == "" {
		qn.ID = uuid.NewString()
	}
	for i := range qn.Questions {
		q := &qn.Questions[i]
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		q.Label = strings.TrimSpace(q.Label)
		q.Kind = Kind(strings.ToLower(strings.TrimSpace(string(q.Kind))))
	}
}

// Check verifies that question IDs are unique and every question is
// renderable by reg.
func (qn Questionnaire) Check(reg *Registry) error {
	seen := make(map[string]bool, len(qn.Questions))
	for i, q := range qn.Questions {
		if q.ID == "" {
			return errors.New(errors.ErrCodeInvalidQuestion, "question %d has no id", i)
		}
		if seen[q.ID] {
			return errors.New(errors.ErrCodeInvalidQuestion, "duplicate question id: %s", q.ID)
		}
		seen[q.ID] = true
		if _, err := reg.Render(q); err != nil {
			return fmt.Errorf("question %s: %w", q.ID, err)
		}
	}
	return nil
}

// Load reads a questionnaire from a JSON or YAML file and normalizes it.
func Load(path string) (Questionnaire, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Questionnaire{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "questionnaire not found: %s", path)
		}
		return Questionnaire{}, fmt.Errorf("read questionnaire: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes a questionnaire. YAML is a superset of JSON, so both decode
// through the YAML parser; ext is only used in error messages.
func Parse(data []byte, ext string) (Questionnaire, error) {
	var qn Questionnaire
	if err := yaml.Unmarshal(data, &qn); err != nil {
		return Questionnaire{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse questionnaire%s", formatHint(ext))
	}
	qn.Normalize()
	return qn, nil
}

func formatHint(ext string) string {
	if ext == "" {
		return ""
	}
	return " (" + strings.TrimPrefix(ext, ".") + ")"
}
