package survey

import (
	stderrors "errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/orgchart/pkg/errors"
)

func ptr(f float64) *float64 { return &f }

func TestDefaultRegistryCoversAllKinds(t *testing.T) {
	reg := DefaultRegistry()
	for _, k := range AllKinds {
		if _, err := reg.Lookup(k); err != nil {
			t.Errorf("Lookup(%s): %v", k, err)
		}
	}
	if got := reg.Kinds(); len(got) != len(AllKinds) {
		t.Errorf("Kinds() = %v, want %d kinds", got, len(AllKinds))
	}
	if !slices.IsSorted(reg.Kinds()) {
		t.Error("Kinds() not sorted")
	}
}

func TestRegistryUnknownKind(t *testing.T) {
	reg := DefaultRegistry()
	_, err := reg.Render(Question{ID: "q", Kind: "slider"})
	if !errors.Is(err, errors.ErrCodeUnknownQuestion) {
		t.Errorf("Render(slider) error = %v, want %s", err, errors.ErrCodeUnknownQuestion)
	}
	if err := reg.Validate(Question{ID: "q", Kind: "slider"}, "x"); !errors.Is(err, errors.ErrCodeUnknownQuestion) {
		t.Errorf("Validate(slider) error = %v", err)
	}
}

type stubRenderer struct{}

func (stubRenderer) Widget(q Question) Widget            { return Widget{QuestionID: q.ID, Control: "stub"} }
func (stubRenderer) Validate(Question, any) error     { return nil }

func TestRegistryRegisterOverrides(t *testing.T) {
	reg := DefaultRegistry()
	reg.Register(KindText, stubRenderer{})

	w, err := reg.Render(Question{ID: "q", Kind: KindText})
	if err != nil {
		t.Fatal(err)
	}
	if w.Control != "stub" {
		t.Errorf("Control = %q, want stub", w.Control)
	}
}

func TestRender(t *testing.T) {
	reg := DefaultRegistry()

	tests := []struct {
		name string
		q    Question
		want Widget
	}{
		{
			name: "Text",
			q:    Question{ID: "q1", Kind: KindText, Label: "Name", Placeholder: "Jean"},
			want: Widget{QuestionID: "q1", Kind: KindText, Control: "input", Label: "Name",
				Attrs: map[string]string{"type": "text", "placeholder": "Jean"}},
		},
		{
			name: "Textarea",
			q:    Question{ID: "q2", Kind: KindTextarea, Label: "Comments"},
			want: Widget{QuestionID: "q2", Kind: KindTextarea, Control: "textarea", Label: "Comments",
				Attrs: map[string]string{}},
		},
		{
			name: "SingleChoice",
			q:    Question{ID: "q3", Kind: KindSingleChoice, Label: "Team", Options: []string{"HR", "IT"}, Required: true},
			want: Widget{QuestionID: "q3", Kind: KindSingleChoice, Control: "radio", Label: "Team", Required: true,
				Options: []Option{{"HR", "HR"}, {"IT", "IT"}}},
		},
		{
			name: "MultipleChoice",
			q:    Question{ID: "q4", Kind: KindMultipleChoice, Options: []string{"a"}},
			want: Widget{QuestionID: "q4", Kind: KindMultipleChoice, Control: "checkbox",
				Options: []Option{{"a", "a"}}},
		},
		{
			name: "RatingDefaultScale",
			q:    Question{ID: "q5", Kind: KindRating},
			want: Widget{QuestionID: "q5", Kind: KindRating, Control: "stars",
				Attrs: map[string]string{"min": "1", "max": "5"}},
		},
		{
			name: "YesNo",
			q:    Question{ID: "q6", Kind: KindYesNo},
			want: Widget{QuestionID: "q6", Kind: KindYesNo, Control: "toggle",
				Options: []Option{{"yes", "Yes"}, {"no", "No"}}},
		},
		{
			name: "Date",
			q:    Question{ID: "q7", Kind: KindDate},
			want: Widget{QuestionID: "q7", Kind: KindDate, Control: "input",
				Attrs: map[string]string{"type": "date"}},
		},
		{
			name: "NumberBounds",
			q:    Question{ID: "q8", Kind: KindNumber, Min: ptr(0), Max: ptr(2.5)},
			want: Widget{QuestionID: "q8", Kind: KindNumber, Control: "input",
				Attrs: map[string]string{"type": "number", "min": "0", "max": "2.5"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Render(tt.q)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Render mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderRejectsBadShape(t *testing.T) {
	reg := DefaultRegistry()
	bad := []Question{
		{ID: "c", Kind: KindSingleChoice},
		{ID: "n", Kind: KindNumber, Min: ptr(5), Max: ptr(1)},
		{ID: "r", Kind: KindRating, Scale: -1},
	}
	for _, q := range bad {
		if _, err := reg.Render(q); !errors.Is(err, errors.ErrCodeInvalidQuestion) {
			t.Errorf("Render(%s) error = %v, want %s", q.ID, err, errors.ErrCodeInvalidQuestion)
		}
	}
}

func TestValidate(t *testing.T) {
	reg := DefaultRegistry()
	choice := Question{ID: "c", Kind: KindSingleChoice, Options: []string{"HR", "IT"}}
	multi := Question{ID: "m", Kind: KindMultipleChoice, Options: []string{"a", "b", "c"}}
	rating := Question{ID: "r", Kind: KindRating, Scale: 10}
	number := Question{ID: "n", Kind: KindNumber, Min: ptr(0), Max: ptr(100)}

	tests := []struct {
		name    string
		q       Question
		answer  any
		wantErr bool
	}{
		{"TextOK", Question{ID: "t", Kind: KindText}, "hello", false},
		{"TextWrongType", Question{ID: "t", Kind: KindText}, 3.0, true},
		{"TextRequiredBlank", Question{ID: "t", Kind: KindText, Required: true}, "   ", true},
		{"OptionalUnanswered", Question{ID: "t", Kind: KindText}, nil, false},
		{"RequiredUnanswered", Question{ID: "t", Kind: KindDate, Required: true}, nil, true},
		{"ChoiceOK", choice, "IT", false},
		{"ChoiceUnknown", choice, "Sales", true},
		{"ChoiceMany", choice, []any{"HR", "IT"}, true},
		{"MultiOK", multi, []any{"a", "c"}, false},
		{"MultiStrings", multi, []string{"b"}, false},
		{"MultiDuplicate", multi, []string{"a", "a"}, true},
		{"MultiNonString", multi, []any{"a", 1.0}, true},
		{"RatingOK", rating, 10.0, false},
		{"RatingString", rating, "7", false},
		{"RatingFraction", rating, 2.5, true},
		{"RatingTooHigh", rating, 11.0, true},
		{"RatingZero", rating, 0.0, true},
		{"YesNoBool", Question{ID: "y", Kind: KindYesNo}, true, false},
		{"YesNoString", Question{ID: "y", Kind: KindYesNo}, "No", false},
		{"YesNoOther", Question{ID: "y", Kind: KindYesNo}, "maybe", true},
		{"DateOK", Question{ID: "d", Kind: KindDate}, "2024-02-29", false},
		{"DateBad", Question{ID: "d", Kind: KindDate}, "29/02/2024", true},
		{"NumberOK", number, 42.0, false},
		{"NumberInt", number, 7, false},
		{"NumberBelow", number, -1.0, true},
		{"NumberAbove", number, "101", true},
		{"NumberGarbage", number, "lots", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.Validate(tt.q, tt.answer)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%v) error = %v, wantErr %v", tt.answer, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidAnswer) {
				t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidAnswer)
			}
		})
	}
}

func TestValidateMessageKeepsQuestionID(t *testing.T) {
	q := Question{ID: "growth-%d", Kind: KindNumber, Min: ptr(0)}
	err := DefaultRegistry().Validate(q, -5.0)
	if err == nil {
		t.Fatal("expected an error below the minimum")
	}
	if got, want := errors.UserMessage(err), "growth-%d: -5 below minimum 0"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestValidateAll(t *testing.T) {
	reg := DefaultRegistry()
	qn := Questionnaire{Questions: []Question{
		{ID: "name", Kind: KindText, Required: true},
		{ID: "score", Kind: KindRating},
	}}

	if err := reg.ValidateAll(qn, map[string]any{"name": "Jean", "score": 4.0}); err != nil {
		t.Errorf("ValidateAll(valid) = %v", err)
	}

	err := reg.ValidateAll(qn, map[string]any{"score": 9.0, "extra": "x"})
	if err == nil {
		t.Fatal("ValidateAll(invalid) = nil")
	}
	var joined interface{ Unwrap() []error }
	if !stderrors.As(err, &joined) || len(joined.Unwrap()) != 3 {
		t.Errorf("ValidateAll errors = %v, want 3 joined errors", err)
	}
}

func TestRenderAll(t *testing.T) {
	reg := DefaultRegistry()
	qn := Questionnaire{Questions: []Question{
		{ID: "a", Kind: KindText},
		{ID: "b", Kind: KindYesNo},
	}}
	widgets, err := reg.RenderAll(qn)
	if err != nil {
		t.Fatal(err)
	}
	if len(widgets) != 2 || widgets[0].QuestionID != "a" || widgets[1].QuestionID != "b" {
		t.Errorf("RenderAll = %+v", widgets)
	}

	qn.Questions = append(qn.Questions, Question{ID: "c", Kind: "bogus"})
	if _, err := reg.RenderAll(qn); !errors.Is(err, errors.ErrCodeUnknownQuestion) {
		t.Errorf("RenderAll(bogus) error = %v", err)
	}
}
