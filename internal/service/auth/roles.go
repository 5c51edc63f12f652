package auth

import (
	"strings"

	"pollbase/internal/domain"
)

// RoleResolver maps an acting identity to its coarse role. The default
// implementation is an email allow-list; a deployment backed by real role
// storage can swap in its own resolver.
type RoleResolver interface {
	Resolve(identity *domain.Identity) domain.Role
}

// AllowlistResolver grants the admin role to identities whose email is on
// a fixed, out-of-band configured list.
type AllowlistResolver struct {
	admins map[string]bool
}

// NewAllowlistResolver builds a resolver from a list of admin emails.
// Emails are compared case-insensitively.
func NewAllowlistResolver(emails []string) *AllowlistResolver {
	admins := make(map[string]bool, len(emails))
	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			admins[email] = true
		}
	}
	return &AllowlistResolver{admins: admins}
}

// Resolve returns the role for an identity. Unauthenticated callers are
// always regular.
func (r *AllowlistResolver) Resolve(identity *domain.Identity) domain.Role {
	if identity == nil {
		return domain.RoleRegular
	}
	if r.admins[strings.ToLower(identity.Email)] {
		return domain.RoleAdmin
	}
	return domain.RoleRegular
}
