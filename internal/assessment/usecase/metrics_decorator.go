package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/farmrakshaa/farm-guardian/internal/assessment/domain"
	"github.com/farmrakshaa/farm-guardian/internal/metrics"
)

type assessmentUseCaseWithMetrics struct {
	next        UseCase
	metrics     metrics.BusinessMetrics
	assessments metrics.AssessmentMetrics
}

// NewAssessmentUseCaseWithMetrics wraps a UseCase with operation metrics. Successful
// checks are also counted by kind and outcome.
func NewAssessmentUseCaseWithMetrics(
	useCase UseCase,
	bm metrics.BusinessMetrics,
	am metrics.AssessmentMetrics,
) UseCase {
	return &assessmentUseCaseWithMetrics{next: useCase, metrics: bm, assessments: am}
}

func (a *assessmentUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}
	a.metrics.RecordOperation(ctx, "assessment", operation, status)
	a.metrics.RecordDuration(ctx, "assessment", operation, time.Since(start), status)
}

func (a *assessmentUseCaseWithMetrics) CheckRisk(ctx context.Context, input RiskInput) (*RiskReport, error) {
	start := time.Now()
	report, err := a.next.CheckRisk(ctx, input)
	a.record(ctx, "risk_check", start, err)
	if err == nil {
		a.assessments.RecordAssessment(ctx, string(domain.KindRisk), string(report.Result.Level))
	}
	return report, err
}

func (a *assessmentUseCaseWithMetrics) CheckBiosecurity(
	ctx context.Context,
	input BiosecurityInput,
) (*BiosecurityReport, error) {
	start := time.Now()
	report, err := a.next.CheckBiosecurity(ctx, input)
	a.record(ctx, "biosecurity_check", start, err)
	if err == nil {
		a.assessments.RecordAssessment(ctx, string(domain.KindBiosecurity), string(report.Result.Tier))
	}
	return report, err
}

func (a *assessmentUseCaseWithMetrics) List(ctx context.Context) ([]*domain.Assessment, error) {
	start := time.Now()
	list, err := a.next.List(ctx)
	a.record(ctx, "assessment_list", start, err)
	return list, err
}

func (a *assessmentUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*domain.Assessment, error) {
	start := time.Now()
	assessment, err := a.next.Get(ctx, id)
	a.record(ctx, "assessment_get", start, err)
	return assessment, err
}

func (a *assessmentUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := a.next.Delete(ctx, id)
	a.record(ctx, "assessment_delete", start, err)
	return err
}

type complianceUseCaseWithMetrics struct {
	next    ComplianceUseCase
	metrics metrics.BusinessMetrics
}

// NewComplianceUseCaseWithMetrics wraps a ComplianceUseCase with operation metrics.
func NewComplianceUseCaseWithMetrics(useCase ComplianceUseCase, bm metrics.BusinessMetrics) ComplianceUseCase {
	return &complianceUseCaseWithMetrics{next: useCase, metrics: bm}
}

func (c *complianceUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}
	c.metrics.RecordOperation(ctx, "compliance", operation, status)
	c.metrics.RecordDuration(ctx, "compliance", operation, time.Since(start), status)
}

func (c *complianceUseCaseWithMetrics) Checklists(ctx context.Context) ([]domain.Checklist, error) {
	start := time.Now()
	checklists, err := c.next.Checklists(ctx)
	c.record(ctx, "checklist_list", start, err)
	return checklists, err
}

func (c *complianceUseCaseWithMetrics) Complete(
	ctx context.Context,
	checklistID, itemID string,
) (*domain.Checklist, error) {
	start := time.Now()
	checklist, err := c.next.Complete(ctx, checklistID, itemID)
	c.record(ctx, "checklist_complete", start, err)
	return checklist, err
}
