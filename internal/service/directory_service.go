package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domainErrors "github.com/enrichx/directory-service/internal/domain/errors"
	"github.com/enrichx/directory-service/internal/domain/models"
	"github.com/enrichx/directory-service/internal/domain/repository"
)

// DirectoryService serves the merged user directory: search, sort and
// pagination over the join of identity accounts and profile rows. Entries
// are recomputed from fresh snapshots on every call.
type DirectoryService struct {
	identities repository.IdentityStore
	profiles   repository.ProfileRepository
	resolver   *Resolver
	logger     *zap.Logger
}

// NewDirectoryService creates a new DirectoryService.
func NewDirectoryService(
	identities repository.IdentityStore,
	profiles repository.ProfileRepository,
	resolver *Resolver,
	logger *zap.Logger,
) *DirectoryService {
	return &DirectoryService{
		identities: identities,
		profiles:   profiles,
		resolver:   resolver,
		logger:     logger.Named("directory_service"),
	}
}

// ListUsers returns one page of the filtered, sorted directory.
func (s *DirectoryService) ListUsers(ctx context.Context, params models.ListUsersParams) (*models.ListUsersResult, error) {
	var (
		identities []models.IdentityRecord
		profiles   []models.ProfileRecord
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		identities, err = s.identities.List(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		profiles, err = s.profiles.List(ctx)
		if err != nil {
			return fmt.Errorf("%w: %v", domainErrors.ErrProfileStore, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to snapshot stores for listing", zap.Error(err))
		return nil, err
	}

	profileByID := make(map[string]*models.ProfileRecord, len(profiles))
	for i := range profiles {
		profileByID[profiles[i].ID] = &profiles[i]
	}

	entries := make([]models.DirectoryEntry, 0, len(identities))
	for i := range identities {
		entries = append(entries, s.resolver.Resolve(identities[i], profileByID[identities[i].ID]))
	}

	result := QueryEntries(entries, params)
	return &result, nil
}

// GetUser returns the merged entry for one identity id. The two lookups run
// concurrently; a missing profile is not an error, a missing identity is.
func (s *DirectoryService) GetUser(ctx context.Context, id string) (*models.DirectoryEntry, error) {
	var (
		identity *models.IdentityRecord
		profile  *models.ProfileRecord
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		identity, err = s.identities.GetByID(ctx, id)
		return err
	})
	g.Go(func() error {
		p, err := s.profiles.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domainErrors.ErrProfileNotFound) {
				return nil
			}
			return fmt.Errorf("%w: %v", domainErrors.ErrProfileStore, err)
		}
		profile = p
		return nil
	})
	if err := g.Wait(); err != nil {
		if !errors.Is(err, domainErrors.ErrUserNotFound) {
			s.logger.Error("Failed to fetch user", zap.Error(err), zap.String("user_id", id))
		}
		return nil, err
	}

	entry := s.resolver.Resolve(*identity, profile)
	return &entry, nil
}
