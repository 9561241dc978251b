package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/farmrakshaa/farm-guardian/internal/assessment/domain"
	customValidation "github.com/farmrakshaa/farm-guardian/internal/validation"
)

// RiskInput holds the answers to the risk checker. Region and System default to
// Punjab and poultry.
type RiskInput struct {
	Answers  map[string]int `json:"answers"`
	Region   string         `json:"region"`
	System   string         `json:"system"`
	FarmName string         `json:"farmName"`
	Save     bool           `json:"save"`
}

// Validate checks the production system. Unknown regions are allowed and carry no modifier.
func (i *RiskInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.System, validation.In(
			string(domain.SystemPoultry),
			string(domain.SystemPigs),
			string(domain.SystemMixed),
		)),
		validation.Field(&i.FarmName, validation.RuneLength(0, 100)),
	)
	return customValidation.WrapValidationError(err)
}

// BiosecurityInput holds slider values keyed by practice id.
type BiosecurityInput struct {
	Answers  map[string]int `json:"answers"`
	FarmName string         `json:"farmName"`
	Save     bool           `json:"save"`
}

// RiskReport is a scored risk checker run. Assessment is nil unless it was saved.
type RiskReport struct {
	Result     domain.RiskResult
	Assessment *domain.Assessment
}

// BiosecurityReport is a scored biosecurity checklist run. Assessment is nil unless it was saved.
type BiosecurityReport struct {
	Result     domain.BiosecurityResult
	Assessment *domain.Assessment
}

type assessmentUseCase struct {
	repo AssessmentRepository
	now  func() time.Time
}

// NewAssessmentUseCase creates a UseCase backed by repo.
func NewAssessmentUseCase(repo AssessmentRepository) UseCase {
	return &assessmentUseCase{repo: repo, now: time.Now}
}

func (a *assessmentUseCase) CheckRisk(ctx context.Context, input RiskInput) (*RiskReport, error) {
	if input.Region == "" {
		input.Region = string(domain.RegionPunjab)
	}
	if input.System == "" {
		input.System = string(domain.SystemPoultry)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	answers, err := domain.RiskQuestionSet.Parse(input.Answers)
	if err != nil {
		return nil, err
	}

	report := &RiskReport{
		Result: domain.ScoreRisk(answers, domain.Region(input.Region), domain.ProductionSystem(input.System)),
	}
	if !input.Save {
		return report, nil
	}

	assessment, err := domain.NewRiskAssessment(report.Result, input.FarmName, a.now())
	if err != nil {
		return nil, err
	}
	if err := a.repo.Save(ctx, assessment); err != nil {
		return nil, err
	}
	report.Assessment = assessment
	return report, nil
}

func (a *assessmentUseCase) CheckBiosecurity(ctx context.Context, input BiosecurityInput) (*BiosecurityReport, error) {
	answers, err := domain.BiosecurityQuestionSet.Parse(input.Answers)
	if err != nil {
		return nil, err
	}

	report := &BiosecurityReport{Result: domain.ScoreBiosecurity(answers)}
	if !input.Save {
		return report, nil
	}

	assessment, err := domain.NewBiosecurityAssessment(report.Result, input.FarmName, a.now())
	if err != nil {
		return nil, err
	}
	if err := a.repo.Save(ctx, assessment); err != nil {
		return nil, err
	}
	report.Assessment = assessment
	return report, nil
}

func (a *assessmentUseCase) List(ctx context.Context) ([]*domain.Assessment, error) {
	return a.repo.List(ctx)
}

func (a *assessmentUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Assessment, error) {
	return a.repo.Get(ctx, id)
}

func (a *assessmentUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return a.repo.Delete(ctx, id)
}
