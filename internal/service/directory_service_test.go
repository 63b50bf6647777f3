package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/enrichx/directory-service/internal/domain/errors"
	"github.com/enrichx/directory-service/internal/domain/models"
)

func newDirectoryService(identities *MockIdentityStore, profiles *MockProfileRepository) *DirectoryService {
	resolver := NewResolver("admin@enrichx.com", "EnrichX Admin")
	return NewDirectoryService(identities, profiles, resolver, zap.NewNop())
}

func TestListUsersJoinsProfilesByID(t *testing.T) {
	identities := new(MockIdentityStore)
	profiles := new(MockProfileRepository)

	t0 := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	identities.On("List", mock.Anything).Return([]models.IdentityRecord{
		{ID: "1", Email: "a@x.com", CreatedAt: t0},
		{ID: "2", Email: "admin@enrichx.com", CreatedAt: t0.Add(time.Hour)},
	}, nil)
	profiles.On("List", mock.Anything).Return([]models.ProfileRecord{
		{ID: "1", Name: "Ann", SubscriptionTier: models.TierPro, Role: models.RoleSubscriber,
			CreditsRemaining: 100, CreditsMonthlyLimit: 2000, SubscriptionStatus: models.SubscriptionActive},
	}, nil)

	svc := newDirectoryService(identities, profiles)
	result, err := svc.ListUsers(context.Background(), models.ListUsersParams{Page: 1, PageSize: 10, SortBy: "created_at", SortOrder: SortAsc})

	require.NoError(t, err)
	require.Equal(t, 2, result.Total)

	assert.Equal(t, "Ann", result.Users[0].Name)
	assert.Equal(t, models.TierPro, result.Users[0].SubscriptionTier)

	// No profile row: resolved entirely from defaults plus the admin override.
	assert.Equal(t, models.RoleAdmin, result.Users[1].Role)
	assert.Equal(t, models.TierEnterprise, result.Users[1].SubscriptionTier)
}

func TestListUsersIdentityStoreFailure(t *testing.T) {
	identities := new(MockIdentityStore)
	profiles := new(MockProfileRepository)

	identities.On("List", mock.Anything).Return(nil, domainErrors.ErrIdentityStore)
	profiles.On("List", mock.Anything).Return([]models.ProfileRecord{}, nil).Maybe()

	svc := newDirectoryService(identities, profiles)
	_, err := svc.ListUsers(context.Background(), models.ListUsersParams{Page: 1, PageSize: 10})

	assert.ErrorIs(t, err, domainErrors.ErrIdentityStore)
}

func TestGetUserMissingProfileIsNotAnError(t *testing.T) {
	identities := new(MockIdentityStore)
	profiles := new(MockProfileRepository)

	identities.On("GetByID", mock.Anything, "u9").Return(&models.IdentityRecord{ID: "u9", Email: "solo@x.com"}, nil)
	profiles.On("GetByID", mock.Anything, "u9").Return(nil, domainErrors.ErrProfileNotFound)

	svc := newDirectoryService(identities, profiles)
	entry, err := svc.GetUser(context.Background(), "u9")

	require.NoError(t, err)
	assert.Equal(t, "solo", entry.Name)
	assert.Equal(t, models.RoleSubscriber, entry.Role)
}

func TestGetUserUnknownIdentity(t *testing.T) {
	identities := new(MockIdentityStore)
	profiles := new(MockProfileRepository)

	identities.On("GetByID", mock.Anything, "nope").Return(nil, domainErrors.ErrUserNotFound)
	profiles.On("GetByID", mock.Anything, "nope").Return(nil, domainErrors.ErrProfileNotFound).Maybe()

	svc := newDirectoryService(identities, profiles)
	_, err := svc.GetUser(context.Background(), "nope")

	assert.ErrorIs(t, err, domainErrors.ErrUserNotFound)
}
