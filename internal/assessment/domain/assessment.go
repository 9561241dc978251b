package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/farmrakshaa/farm-guardian/internal/errors"
)

// DefaultFarmName labels assessments saved without a farm name.
const DefaultFarmName = "My Farm"

// Kind distinguishes stored assessments.
type Kind string

const (
	KindRisk        Kind = "risk"
	KindBiosecurity Kind = "biosecurity"
)

// ErrAssessmentNotFound indicates the requested assessment does not exist.
var ErrAssessmentNotFound = errors.Wrap(errors.ErrNotFound, "assessment not found")

// Assessment is a saved checker result. Level holds the RiskLevel for risk assessments
// and the Tier for biosecurity assessments.
type Assessment struct {
	ID         uuid.UUID      `json:"id"`
	Kind       Kind           `json:"kind"`
	FarmName   string         `json:"farmName"`
	Answers    map[string]int `json:"answers"`
	Score      int            `json:"score"`
	Percentage int            `json:"percentage"`
	Level      string         `json:"riskLevel"`
	Date       time.Time      `json:"date"`
}

// NewRiskAssessment builds a record for a risk checker result.
func NewRiskAssessment(r RiskResult, farmName string, now time.Time) (*Assessment, error) {
	answers := make(map[string]int, len(r.Answers))
	for q, v := range r.Answers {
		answers[string(q)] = v
	}
	return newAssessment(KindRisk, farmName, answers, r.Score, r.Rounded(), string(r.Level), now)
}

// NewBiosecurityAssessment builds a record for a biosecurity checklist result.
func NewBiosecurityAssessment(r BiosecurityResult, farmName string, now time.Time) (*Assessment, error) {
	answers := make(map[string]int, len(r.Answers))
	for q, v := range r.Answers {
		answers[string(q)] = v
	}
	return newAssessment(KindBiosecurity, farmName, answers, r.Score, r.Percentage, string(r.Tier), now)
}

func newAssessment(
	kind Kind,
	farmName string,
	answers map[string]int,
	score, pct int,
	level string,
	now time.Time,
) (*Assessment, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate assessment id")
	}
	if farmName == "" {
		farmName = DefaultFarmName
	}
	return &Assessment{
		ID:         id,
		Kind:       kind,
		FarmName:   farmName,
		Answers:    answers,
		Score:      score,
		Percentage: pct,
		Level:      level,
		Date:       now.UTC(),
	}, nil
}
