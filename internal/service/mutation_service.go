package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/enrichx/directory-service/internal/domain/errors"
	"github.com/enrichx/directory-service/internal/domain/models"
	"github.com/enrichx/directory-service/internal/domain/repository"
	"github.com/enrichx/directory-service/internal/utils/metrics"
)

// MutationService applies admin writes across the two stores.
//
// There is no distributed transaction: an update writes the identity
// metadata bag and the profile row as two independent operations. When
// exactly one of them fails the caller gets a PartialWriteError naming the
// failed half, and the successful half is not rolled back.
type MutationService struct {
	identities repository.IdentityStore
	profiles   repository.ProfileRepository
	logger     *zap.Logger
}

// NewMutationService creates a new MutationService.
func NewMutationService(identities repository.IdentityStore, profiles repository.ProfileRepository, logger *zap.Logger) *MutationService {
	return &MutationService{
		identities: identities,
		profiles:   profiles,
		logger:     logger.Named("mutation_service"),
	}
}

// UpdateUser applies the patch to both the identity metadata and the
// profile row. Both writes are attempted even if the first fails, except
// when the identity does not exist at all, which makes the profile write
// meaningless. Re-applying the same patch yields the same end state.
func (s *MutationService) UpdateUser(ctx context.Context, id string, patch models.ProfilePatch) error {
	if patch.IsEmpty() {
		return domainErrors.ErrInvalidArgument
	}

	identityErr := s.identities.UpdateMetadata(ctx, id, patch.MetadataPatch())
	if errors.Is(identityErr, domainErrors.ErrUserNotFound) {
		return identityErr
	}

	profileErr := s.profiles.Upsert(ctx, id, patch)

	switch {
	case identityErr == nil && profileErr == nil:
		s.logger.Info("User updated", zap.String("user_id", id))
		return nil
	case identityErr != nil && profileErr != nil:
		s.logger.Error("User update failed in both stores",
			zap.String("user_id", id),
			zap.NamedError("identity_error", identityErr),
			zap.NamedError("profile_error", profileErr),
		)
		return errors.Join(identityErr, profileErr)
	case identityErr != nil:
		s.logger.Error("User update half-applied: profile written, identity metadata failed",
			zap.String("user_id", id), zap.Error(identityErr))
		metrics.PartialWritesTotal.WithLabelValues("identity").Inc()
		return &domainErrors.PartialWriteError{FailedStore: "identity", Err: identityErr}
	default:
		s.logger.Error("User update half-applied: identity metadata written, profile failed",
			zap.String("user_id", id), zap.Error(profileErr))
		metrics.PartialWritesTotal.WithLabelValues("profile").Inc()
		return &domainErrors.PartialWriteError{FailedStore: "profile", Err: profileErr}
	}
}

// SetBan sets or clears the suspension timestamp on the identity record.
// The profile row is not touched. A nil until lifts the ban; a past
// timestamp stays stored but classifies as not banned everywhere.
func (s *MutationService) SetBan(ctx context.Context, id string, until *time.Time) error {
	if err := s.identities.SetBanned(ctx, id, until); err != nil {
		if !errors.Is(err, domainErrors.ErrUserNotFound) {
			s.logger.Error("Failed to update ban state", zap.Error(err), zap.String("user_id", id))
		}
		return err
	}

	if until == nil {
		s.logger.Info("User unbanned", zap.String("user_id", id))
	} else {
		s.logger.Info("User banned", zap.String("user_id", id), zap.Time("banned_until", *until))
	}
	return nil
}
