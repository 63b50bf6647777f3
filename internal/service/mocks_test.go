package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/enrichx/directory-service/internal/domain/models"
)

type MockIdentityStore struct {
	mock.Mock
}

func (m *MockIdentityStore) List(ctx context.Context) ([]models.IdentityRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.IdentityRecord), args.Error(1)
}

func (m *MockIdentityStore) GetByID(ctx context.Context, id string) (*models.IdentityRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IdentityRecord), args.Error(1)
}

func (m *MockIdentityStore) UpdateMetadata(ctx context.Context, id string, patch models.Metadata) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockIdentityStore) SetBanned(ctx context.Context, id string, until *time.Time) error {
	args := m.Called(ctx, id, until)
	return args.Error(0)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) List(ctx context.Context) ([]models.ProfileRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProfileRecord), args.Error(1)
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id string) (*models.ProfileRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProfileRecord), args.Error(1)
}

func (m *MockProfileRepository) Upsert(ctx context.Context, id string, patch models.ProfilePatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}
