package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// KnownRoles is the full role enumeration, in display order.
var KnownRoles = []string{RoleUser, RoleAdmin}

var ErrUnknownRole = errors.New("unknown role")

// NormalizeRoles checks every role against KnownRoles and drops duplicates,
// keeping first-seen order. Surrounding whitespace is ignored.
func NormalizeRoles(roles []string) ([]string, error) {
	out := make([]string, 0, len(roles))
	seen := make(map[string]struct{}, len(roles))

	for _, r := range roles {
		r = strings.TrimSpace(r)
		if !slices.Contains(KnownRoles, r) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRole, r)
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out, nil
}

// JoinRoles encodes roles for storage.
func JoinRoles(roles []string) string { return strings.Join(roles, " ") }

// SplitRoles decodes roles from storage.
func SplitRoles(s string) []string { return strings.Fields(s) }
