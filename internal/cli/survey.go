package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/orgchart/pkg/survey"
)

func (c *CLI) surveyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "survey",
		Short: "Render and validate questionnaires",
		Long: `Render and validate questionnaires.

Every question kind is served by a renderer registered for it. 'render'
prints the widget description a host draws for each question, 'validate'
checks a set of answers keyed by question ID.`,
	}

	cmd.AddCommand(c.surveyKindsCommand())
	cmd.AddCommand(c.surveyRenderCommand())
	cmd.AddCommand(c.surveyValidateCommand())

	return cmd
}

func (c *CLI) surveyKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the registered question kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, k := range survey.DefaultRegistry().Kinds() {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
}

func (c *CLI) surveyRenderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "render QUESTIONNAIRE",
		Short: "Print the widgets for a questionnaire as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			qn, err := loadQuestionnaire(args[0])
			if err != nil {
				return err
			}
			widgets, err := survey.DefaultRegistry().RenderAll(qn)
			if err != nil {
				return err
			}
			c.Logger.Debug("rendered questionnaire", "id", qn.ID, "questions", len(widgets))
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(widgets)
		},
	}
}

func (c *CLI) surveyValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate QUESTIONNAIRE ANSWERS",
		Short: "Check answers (JSON or YAML, keyed by question ID)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qn, err := loadQuestionnaire(args[0])
			if err != nil {
				return err
			}
			answers, err := readAnswers(args[1])
			if err != nil {
				return err
			}
			if err := survey.DefaultRegistry().ValidateAll(qn, answers); err != nil {
				problems := splitErrors(err)
				ui := c.ui()
				for _, p := range problems {
					ui.fail("%s", p)
				}
				return fmt.Errorf("%d invalid answer(s)", len(problems))
			}
			printer{w: cmd.OutOrStdout()}.success("All %d answers are valid", len(answers))
			return nil
		},
	}
}

func loadQuestionnaire(path string) (survey.Questionnaire, error) {
	qn, err := survey.Load(path)
	if err != nil {
		return survey.Questionnaire{}, err
	}
	if err := qn.Check(survey.DefaultRegistry()); err != nil {
		return survey.Questionnaire{}, fmt.Errorf("%s: %w", path, err)
	}
	return qn, nil
}

// readAnswers decodes an answers file. JSON is valid YAML, so one decoder
// serves both.
func readAnswers(path string) (map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open answers: %w", err)
	}
	defer f.Close()

	answers := map[string]any{}
	if err := yaml.NewDecoder(f).Decode(&answers); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse answers %s: %w", path, err)
	}
	return answers, nil
}

// splitErrors flattens an errors.Join result.
func splitErrors(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
