package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	domainErrors "github.com/enrichx/directory-service/internal/domain/errors"
	"github.com/enrichx/directory-service/internal/domain/models"
	"github.com/enrichx/directory-service/internal/domain/repository"
)

// AccessService is the gate in front of every admin operation. It verifies
// the caller's bearer token against the identity provider's signing secret,
// loads the caller's own records, and admits only resolved admins.
type AccessService struct {
	identities repository.IdentityStore
	profiles   repository.ProfileRepository
	resolver   *Resolver
	jwtSecret  []byte
	logger     *zap.Logger
}

// NewAccessService creates a new AccessService.
func NewAccessService(
	identities repository.IdentityStore,
	profiles repository.ProfileRepository,
	resolver *Resolver,
	jwtSecret string,
	logger *zap.Logger,
) *AccessService {
	return &AccessService{
		identities: identities,
		profiles:   profiles,
		resolver:   resolver,
		jwtSecret:  []byte(jwtSecret),
		logger:     logger.Named("access_service"),
	}
}

// Authorize resolves the caller behind the bearer token and returns their
// directory entry when they are an admin. Invalid, expired or unknown
// tokens yield ErrUnauthenticated; authenticated non-admins yield
// ErrForbidden.
func (s *AccessService) Authorize(ctx context.Context, token string) (*models.DirectoryEntry, error) {
	callerID, err := s.verifyToken(token)
	if err != nil {
		s.logger.Warn("Token verification failed", zap.Error(err))
		return nil, domainErrors.ErrUnauthenticated
	}

	identity, err := s.identities.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			// Token signed for an account that no longer exists.
			return nil, domainErrors.ErrUnauthenticated
		}
		return nil, err
	}

	profile, err := s.profiles.GetByID(ctx, callerID)
	if err != nil {
		if !errors.Is(err, domainErrors.ErrProfileNotFound) {
			return nil, fmt.Errorf("%w: %v", domainErrors.ErrProfileStore, err)
		}
		profile = nil
	}

	entry := s.resolver.Resolve(*identity, profile)
	if entry.Role != models.RoleAdmin {
		s.logger.Warn("Non-admin attempted admin operation",
			zap.String("user_id", entry.ID),
			zap.String("role", string(entry.Role)),
		)
		return nil, domainErrors.ErrForbidden
	}

	return &entry, nil
}

// verifyToken checks the HS256 signature and expiry and returns the subject
// identity id.
func (s *AccessService) verifyToken(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return claims.Subject, nil
}
