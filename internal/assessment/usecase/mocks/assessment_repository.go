// Package mocks provides testify mocks for the assessment use case dependencies.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/farmrakshaa/farm-guardian/internal/assessment/domain"
)

// MockAssessmentRepository is a mock implementation of usecase.AssessmentRepository.
type MockAssessmentRepository struct {
	mock.Mock
}

func (m *MockAssessmentRepository) Save(ctx context.Context, assessment *domain.Assessment) error {
	args := m.Called(ctx, assessment)
	return args.Error(0)
}

func (m *MockAssessmentRepository) List(ctx context.Context) ([]*domain.Assessment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Assessment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockChecklistRepository is a mock implementation of usecase.ChecklistRepository.
type MockChecklistRepository struct {
	mock.Mock
}

func (m *MockChecklistRepository) List(ctx context.Context) ([]domain.Checklist, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Checklist), args.Error(1)
}

func (m *MockChecklistRepository) Get(ctx context.Context, id string) (*domain.Checklist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Checklist), args.Error(1)
}

func (m *MockChecklistRepository) Save(ctx context.Context, checklist domain.Checklist) error {
	args := m.Called(ctx, checklist)
	return args.Error(0)
}
