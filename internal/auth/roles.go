package auth

import (
	"fmt"
	"strings"
)

// Role is one entry of the closed role vocabulary.
type Role string

const (
	RoleAdmin     Role = "ROLE_ADMIN"
	RoleProfessor Role = "ROLE_PROFESSOR"
	RoleStudent   Role = "ROLE_STUDENT"
)

// roleVocabulary is the closed set of accepted roles. The legacy spellings
// ROLE_PROFESOR and ROLE_ESTUDIANTE are rewritten by a migration and are not
// accepted here.
var roleVocabulary = map[Role]struct{}{
	RoleAdmin:     {},
	RoleProfessor: {},
	RoleStudent:   {},
}

// CanonicalizeRole trims surrounding whitespace, uppercases, and validates a
// single role string against the vocabulary.
func CanonicalizeRole(raw string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := roleVocabulary[role]; !ok {
		return "", fmt.Errorf("unknown role %q", raw)
	}
	return role, nil
}

// CanonicalizeRoles canonicalizes each entry, preserving first-seen order and
// dropping duplicates. Canonicalization is idempotent: applying it to its own
// output yields the same list.
func CanonicalizeRoles(raw []string) ([]Role, error) {
	seen := make(map[Role]struct{}, len(raw))
	roles := make([]Role, 0, len(raw))
	for _, r := range raw {
		role, err := CanonicalizeRole(r)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[role]; dup {
			continue
		}
		seen[role] = struct{}{}
		roles = append(roles, role)
	}
	return roles, nil
}

// RoleStrings converts a role list back to plain strings for serialization.
func RoleStrings(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// HasAny reports whether any of the required roles is held.
func HasAny(held []Role, required []Role) bool {
	for _, r := range required {
		for _, h := range held {
			if h == r {
				return true
			}
		}
	}
	return false
}

// HasAll reports whether every required role is held.
func HasAll(held []Role, required []Role) bool {
	for _, r := range required {
		found := false
		for _, h := range held {
			if h == r {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
