package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domainErrors "github.com/enrichx/directory-service/internal/domain/errors"
	"github.com/enrichx/directory-service/internal/domain/models"
	"github.com/enrichx/directory-service/internal/domain/repository"
)

// Aggregate computes the dashboard counters from a full snapshot of both
// stores. Pure function of its inputs plus the supplied clock instant.
//
// Active/banned classify every identity against now; tier counts and credit
// usage come from profile rows only. Credit usage is not clamped: a profile
// with more remaining credits than its limit contributes a negative term.
func Aggregate(identities []models.IdentityRecord, profiles []models.ProfileRecord, now time.Time) models.UserStats {
	stats := models.UserStats{TotalUsers: len(identities)}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := range identities {
		if identities[i].Banned(now) {
			stats.BannedUsers++
		} else {
			stats.ActiveUsers++
		}
		if !identities[i].CreatedAt.Before(monthStart) {
			stats.NewUsersThisMonth++
		}
	}

	for i := range profiles {
		switch profiles[i].SubscriptionTier {
		case models.TierFree:
			stats.FreeUsers++
		case models.TierStarter:
			stats.StarterUsers++
		case models.TierPro:
			stats.ProUsers++
		case models.TierEnterprise:
			stats.EnterpriseUsers++
		}
		stats.TotalCreditsUsed += profiles[i].CreditsMonthlyLimit - profiles[i].CreditsRemaining
	}

	return stats
}

// StatsService serves the aggregate user statistics.
type StatsService struct {
	identities repository.IdentityStore
	profiles   repository.ProfileRepository
	logger     *zap.Logger
}

// NewStatsService creates a new StatsService.
func NewStatsService(identities repository.IdentityStore, profiles repository.ProfileRepository, logger *zap.Logger) *StatsService {
	return &StatsService{
		identities: identities,
		profiles:   profiles,
		logger:     logger.Named("stats_service"),
	}
}

// GetStats snapshots both stores and aggregates them. The two reads run
// concurrently; nothing is cached between calls.
func (s *StatsService) GetStats(ctx context.Context) (*models.UserStats, error) {
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
		s.logger.Error("Failed to snapshot stores for stats", zap.Error(err))
		return nil, err
	}

	stats := Aggregate(identities, profiles, time.Now())
	return &stats, nil
}
