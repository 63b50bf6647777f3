package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/enrichx/directory-service/internal/domain/errors"
	"github.com/enrichx/directory-service/internal/domain/models"
	"github.com/enrichx/directory-service/internal/domain/repository"
)

// pgxProfileRepository implements repository.ProfileRepository using pgx.
type pgxProfileRepository struct {
	db *pgxpool.Pool
}

// NewPgxProfileRepository creates a new profile repository backed by the
// given connection pool.
func NewPgxProfileRepository(db *pgxpool.Pool) repository.ProfileRepository {
	return &pgxProfileRepository{db: db}
}

const profileColumns = `
	id, name, company_name, role, subscription_tier,
	credits_remaining, credits_monthly_limit, subscription_status, updated_at`

func scanProfile(row pgx.Row) (*models.ProfileRecord, error) {
	p := &models.ProfileRecord{}
	err := row.Scan(
		&p.ID, &p.Name, &p.CompanyName, &p.Role, &p.SubscriptionTier,
		&p.CreditsRemaining, &p.CreditsMonthlyLimit, &p.SubscriptionStatus, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns every profile row.
func (r *pgxProfileRepository) List(ctx context.Context) ([]models.ProfileRecord, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.ProfileRecord
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}
	return profiles, nil
}

// GetByID retrieves one profile by identity id.
func (r *pgxProfileRepository) GetByID(ctx context.Context, id string) (*models.ProfileRecord, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	p, err := scanProfile(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile by ID: %w", err)
	}
	return p, nil
}

// Upsert applies the patch to the profile row, inserting it with column
// defaults for the untouched fields when no row exists yet. Re-applying the
// same patch is a no-op beyond updated_at, which keeps updates idempotent.
func (r *pgxProfileRepository) Upsert(ctx context.Context, id string, patch models.ProfilePatch) error {
	query := `
		INSERT INTO profiles (
			id, name, company_name, role, subscription_tier,
			credits_remaining, credits_monthly_limit, subscription_status, updated_at
		) VALUES (
			$1,
			COALESCE($2, ''),
			COALESCE($3, ''),
			COALESCE($4, 'subscriber'),
			COALESCE($5, 'free'),
			COALESCE($6, 50),
			COALESCE($7, 50),
			COALESCE($8, 'active'),
			now()
		)
		ON CONFLICT (id) DO UPDATE SET
			name                  = COALESCE($2, profiles.name),
			company_name          = COALESCE($3, profiles.company_name),
			role                  = COALESCE($4, profiles.role),
			subscription_tier     = COALESCE($5, profiles.subscription_tier),
			credits_remaining     = COALESCE($6, profiles.credits_remaining),
			credits_monthly_limit = COALESCE($7, profiles.credits_monthly_limit),
			subscription_status   = COALESCE($8, profiles.subscription_status),
			updated_at            = now()`

	_, err := r.db.Exec(ctx, query,
		id, patch.Name, patch.CompanyName, patch.Role, patch.SubscriptionTier,
		patch.CreditsRemaining, patch.CreditsMonthlyLimit, patch.SubscriptionStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}
