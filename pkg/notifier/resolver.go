package notifier

import (
	"context"

	"github.com/maintops/maintops/pkg/models"
	"github.com/maintops/maintops/pkg/persistence"
)

// RecipientResolver resolves broadcast targets. Injected into the core so
// admin broadcasts are testable against a fixed recipient set.
type RecipientResolver interface {
	Admins(ctx context.Context) ([]string, error)
}

// UserResolver resolves recipients from the user repository.
type UserResolver struct {
	users persistence.UserRepository
}

// NewUserResolver creates a resolver over the user repository.
func NewUserResolver(users persistence.UserRepository) *UserResolver {
	return &UserResolver{users: users}
}

// Admins returns the email of every user holding the admin role.
func (r *UserResolver) Admins(ctx context.Context) ([]string, error) {
	admins, err := r.users.ListByRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	emails := make([]string, 0, len(admins))
	for _, admin := range admins {
		emails = append(emails, admin.Email)
	}

	return emails, nil
}
