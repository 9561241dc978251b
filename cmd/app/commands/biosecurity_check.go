package commands

import (
	"context"
	"fmt"
	"io"

	assessmentDomain "github.com/farmrakshaa/farm-guardian/internal/assessment/domain"
	assessmentUseCase "github.com/farmrakshaa/farm-guardian/internal/assessment/usecase"
)

type practiceOutput struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Score   int    `json:"score"`
	Rating  string `json:"rating"`
	Message string `json:"message"`
}

type categoryOutput struct {
	ID         string           `json:"id"`
	Label      string           `json:"label"`
	Score      int              `json:"score"`
	MaxScore   int              `json:"maxScore"`
	Percentage int              `json:"percentage"`
	Tier       string           `json:"tier"`
	Practices  []practiceOutput `json:"practices"`
}

type biosecurityCheckOutput struct {
	Categories   []categoryOutput `json:"categories"`
	Score        int              `json:"score"`
	MaxScore     int              `json:"maxScore"`
	Percentage   int              `json:"percentage"`
	Tier         string           `json:"tier"`
	Band         string           `json:"band"`
	AssessmentID string           `json:"assessmentId,omitempty"`
}

// RunBiosecurityCheck scores the biosecurity sliders and prints the per-category tiers,
// a rating for every practice and the overall tier and dashboard band.
func RunBiosecurityCheck(
	ctx context.Context,
	useCase assessmentUseCase.UseCase,
	w io.Writer,
	input assessmentUseCase.BiosecurityInput,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	report, err := useCase.CheckBiosecurity(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to score biosecurity check: %w", err)
	}

	result := report.Result
	out := biosecurityCheckOutput{
		Score:      result.Score,
		MaxScore:   result.MaxScore,
		Percentage: result.Percentage,
		Tier:       string(result.Tier),
		Band:       string(result.Band),
	}
	if report.Assessment != nil {
		out.AssessmentID = report.Assessment.ID.String()
	}

	defs := assessmentDomain.BiosecurityCategories()
	for i, c := range result.Categories {
		cat := categoryOutput{
			ID:         string(c.Category),
			Label:      c.Label,
			Score:      c.Score,
			MaxScore:   c.MaxScore,
			Percentage: c.Percentage,
			Tier:       string(c.Tier),
		}
		for _, p := range defs[i].Practices {
			score := result.Answers[p.ID]
			rating := assessmentDomain.RatePractice(score)
			cat.Practices = append(cat.Practices, practiceOutput{
				ID:      string(p.ID),
				Label:   p.Label,
				Score:   score,
				Rating:  string(rating.Tier),
				Message: rating.Message,
			})
		}
		out.Categories = append(out.Categories, cat)
	}

	if format == FormatJSON {
		return writeJSON(w, out)
	}

	for _, c := range out.Categories {
		_, _ = fmt.Fprintf(w, "%s: %d/%d (%d%%) %s\n", c.Label, c.Score, c.MaxScore, c.Percentage, c.Tier)
		for _, p := range c.Practices {
			_, _ = fmt.Fprintf(w, "  %s: %d/%d %s\n", p.Label, p.Score,
				assessmentDomain.BiosecurityMaxPerQuestion, p.Rating)
		}
	}
	_, _ = fmt.Fprintf(w, "Overall: %d/%d (%d%%) %s, dashboard status: %s\n",
		out.Score, out.MaxScore, out.Percentage, out.Tier, out.Band)
	if out.AssessmentID != "" {
		_, _ = fmt.Fprintf(w, "Saved assessment %s\n", out.AssessmentID)
	}
	return nil
}
