package app

import (
	"database/sql"
	"fmt"

	assessmentRepository "github.com/farmrakshaa/farm-guardian/internal/assessment/repository"
	assessmentUseCase "github.com/farmrakshaa/farm-guardian/internal/assessment/usecase"
)

// AssessmentDB returns the SQLite file at ASSESSMENT_DB_PATH, creating its schema.
func (c *Container) AssessmentDB() (*sql.DB, error) {
	var err error
	c.assessmentDBInit.Do(func() {
		c.assessmentDB, err = assessmentRepository.OpenSQLite(c.ctx, c.config.AssessmentDBPath)
		if err != nil {
			c.storeError("assessmentDB", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.storedError("assessmentDB"); storedErr != nil {
		return nil, storedErr
	}
	return c.assessmentDB, nil
}

// AssessmentRepository returns the SQLite-backed assessment history.
func (c *Container) AssessmentRepository() (assessmentUseCase.AssessmentRepository, error) {
	var err error
	c.assessmentRepoInit.Do(func() {
		var db *sql.DB
		db, err = c.AssessmentDB()
		if err != nil {
			err = fmt.Errorf("failed to get assessment database: %w", err)
			c.storeError("assessmentRepo", err)
			return
		}
		c.assessmentRepo = assessmentRepository.NewSQLiteAssessmentRepository(db)
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.storedError("assessmentRepo"); storedErr != nil {
		return nil, storedErr
	}
	return c.assessmentRepo, nil
}

// AssessmentUseCase returns the scorer and history use case with metrics.
func (c *Container) AssessmentUseCase() (assessmentUseCase.UseCase, error) {
	var err error
	c.assessmentUseCaseInit.Do(func() {
		c.assessmentUseCase, err = c.initAssessmentUseCase()
		if err != nil {
			c.storeError("assessmentUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.storedError("assessmentUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.assessmentUseCase, nil
}

func (c *Container) initAssessmentUseCase() (assessmentUseCase.UseCase, error) {
	repo, err := c.AssessmentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment repository for assessment use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for assessment use case: %w", err)
	}

	assessmentMetrics, err := c.AssessmentMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment metrics for assessment use case: %w", err)
	}

	useCase := assessmentUseCase.NewAssessmentUseCase(repo)
	return assessmentUseCase.NewAssessmentUseCaseWithMetrics(useCase, businessMetrics, assessmentMetrics), nil
}

// ChecklistRepository returns the compliance checklists stored in the assessment database.
func (c *Container) ChecklistRepository() (assessmentUseCase.ChecklistRepository, error) {
	var err error
	c.checklistRepoInit.Do(func() {
		var db *sql.DB
		db, err = c.AssessmentDB()
		if err != nil {
			err = fmt.Errorf("failed to get assessment database: %w", err)
			c.storeError("checklistRepo", err)
			return
		}
		c.checklistRepo = assessmentRepository.NewSQLiteChecklistRepository(db)
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.storedError("checklistRepo"); storedErr != nil {
		return nil, storedErr
	}
	return c.checklistRepo, nil
}

// ComplianceUseCase returns the checklist tracking use case with metrics.
func (c *Container) ComplianceUseCase() (assessmentUseCase.ComplianceUseCase, error) {
	var err error
	c.complianceUseCaseInit.Do(func() {
		c.complianceUseCase, err = c.initComplianceUseCase()
		if err != nil {
			c.storeError("complianceUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.storedError("complianceUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.complianceUseCase, nil
}

func (c *Container) initComplianceUseCase() (assessmentUseCase.ComplianceUseCase, error) {
	repo, err := c.ChecklistRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get checklist repository for compliance use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for compliance use case: %w", err)
	}

	useCase := assessmentUseCase.NewComplianceUseCase(repo)
	return assessmentUseCase.NewComplianceUseCaseWithMetrics(useCase, businessMetrics), nil
}
