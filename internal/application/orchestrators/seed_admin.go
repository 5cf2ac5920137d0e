package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"lideranca/internal/adapters/storage/account"
	domain "lideranca/internal/domain/account"
)

// SeedAdminInput carries the bootstrap credentials.
type SeedAdminInput struct {
	Email    string
	Password string
}

// SeedAdminDeps holds the dependencies for admin seeding.
type SeedAdminDeps struct {
	Accounts account.Store
}

// ExecuteSeedAdmin creates the first leadership account if no account
// exists yet. Safe to run on every startup.
// PRE: input.Email and input.Password are set
// POST: At least one account exists
func ExecuteSeedAdmin(ctx context.Context, deps SeedAdminDeps, input SeedAdminInput) error {
	count, err := deps.Accounts.Count(ctx)
	if err != nil {
		return fmt.Errorf("count accounts: %w", err)
	}
	if count > 0 {
		return nil
	}

	acct := domain.Account{
		ID:    uuid.New().String(),
		Email: input.Email,
	}
	if err := acct.Validate(); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := deps.Accounts.Save(ctx, acct); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	slog.Info("auth_event", "event", "admin_seeded", "email", input.Email)
	return nil
}
