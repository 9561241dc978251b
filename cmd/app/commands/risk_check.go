package commands

import (
	"context"
	"fmt"
	"io"

	assessmentDomain "github.com/farmrakshaa/farm-guardian/internal/assessment/domain"
	assessmentUseCase "github.com/farmrakshaa/farm-guardian/internal/assessment/usecase"
)

type riskCheckOutput struct {
	RawScore        int      `json:"rawScore"`
	Modifier        int      `json:"modifier"`
	Score           int      `json:"score"`
	MaxScore        int      `json:"maxScore"`
	Percentage      int      `json:"percentage"`
	Level           string   `json:"riskLevel"`
	Recommendations []string `json:"recommendations"`
	AssessmentID    string   `json:"assessmentId,omitempty"`
}

// RunRiskCheck scores the risk checker answers and prints the level with its
// recommendations in the chosen language. The result is kept in the local history when
// input.Save is set.
func RunRiskCheck(
	ctx context.Context,
	useCase assessmentUseCase.UseCase,
	w io.Writer,
	input assessmentUseCase.RiskInput,
	lang string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	language, err := parseLanguage(lang)
	if err != nil {
		return err
	}

	report, err := useCase.CheckRisk(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to score risk check: %w", err)
	}

	result := report.Result
	out := riskCheckOutput{
		RawScore:   result.RawScore,
		Modifier:   result.Modifier,
		Score:      result.Score,
		MaxScore:   result.MaxScore,
		Percentage: result.Rounded(),
		Level:      string(result.Level),
	}
	for _, rec := range result.Recommendations {
		out.Recommendations = append(out.Recommendations, rec.In(language))
	}
	if report.Assessment != nil {
		out.AssessmentID = report.Assessment.ID.String()
	}

	if format == FormatJSON {
		return writeJSON(w, out)
	}

	_, _ = fmt.Fprintf(w, "Risk score: %d/%d (answers %d, regional modifier +%d)\n",
		out.Score, out.MaxScore, out.RawScore, out.Modifier)
	_, _ = fmt.Fprintf(w, "Risk level: %s (%d%%)\n", out.Level, out.Percentage)
	_, _ = fmt.Fprintln(w, "Recommendations:")
	for _, rec := range out.Recommendations {
		_, _ = fmt.Fprintf(w, "  - %s\n", rec)
	}
	if out.AssessmentID != "" {
		_, _ = fmt.Fprintf(w, "Saved assessment %s\n", out.AssessmentID)
	}
	return nil
}

// RunListRiskQuestions prints every question id with its scored options.
func RunListRiskQuestions(w io.Writer, lang string) error {
	language, err := parseLanguage(lang)
	if err != nil {
		return err
	}

	for _, q := range assessmentDomain.RiskQuestionDefs() {
		_, _ = fmt.Fprintf(w, "%s: %s\n", q.ID, q.Prompt.In(language))
		for _, opt := range q.Options {
			_, _ = fmt.Fprintf(w, "  %d = %s\n", opt.Score, opt.Label.In(language))
		}
	}

	_, _ = fmt.Fprint(w, "Regions:")
	for _, r := range assessmentDomain.Regions() {
		_, _ = fmt.Fprintf(w, " %s", r)
	}
	_, _ = fmt.Fprintln(w)
	return nil
}
