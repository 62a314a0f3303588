package auth

import (
	"net/http"
	"strings"
)

// PolicyKind classifies the access rule attached to a route.
type PolicyKind int

const (
	// PolicyPublic allows the request regardless of authentication.
	PolicyPublic PolicyKind = iota
	// PolicyAuthenticated requires any authenticated principal.
	PolicyAuthenticated
	// PolicyRequireAny requires at least one of the listed roles.
	PolicyRequireAny
	// PolicyRequireAll requires every listed role.
	PolicyRequireAll
)

// Policy is one evaluated access rule.
type Policy struct {
	Kind  PolicyKind
	Roles []Role
}

// PolicyEntry binds a method and path pattern to a policy. Patterns without a
// placeholder match the exact path; patterns containing "{" match every path
// under the prefix before the placeholder.
type PolicyEntry struct {
	Method  string
	Pattern string
	Policy  Policy
}

// PolicyTable is the immutable route-policy table. Lookup picks the matching
// entry with the longest pattern; routes with no entry default to
// PolicyAuthenticated.
type PolicyTable struct {
	entries []PolicyEntry
}

func public() Policy {
	return Policy{Kind: PolicyPublic}
}

func requireAny(roles ...Role) Policy {
	return Policy{Kind: PolicyRequireAny, Roles: roles}
}

// NewPolicyTable builds a table from explicit entries.
func NewPolicyTable(entries []PolicyEntry) *PolicyTable {
	copied := make([]PolicyEntry, len(entries))
	copy(copied, entries)
	return &PolicyTable{entries: copied}
}

// DefaultPolicyTable is the campus route policy, frozen at startup.
//
// Course browsing is public; professor management is admin-only; student
// management is shared between admins and professors, with students allowed
// to read individual records; everything else requires authentication.
func DefaultPolicyTable() *PolicyTable {
	return NewPolicyTable([]PolicyEntry{
		{http.MethodPost, "/authenticate/estudiante", public()},
		{http.MethodPost, "/authenticate/profesor", public()},

		{http.MethodGet, "/health", public()},

		{http.MethodGet, "/api/cursos", public()},
		{http.MethodGet, "/api/cursos/buscarNombre", public()},
		{http.MethodGet, "/api/cursos/buscarCode", public()},

		{http.MethodPost, "/api/profesor", requireAny(RoleAdmin)},
		{http.MethodGet, "/api/profesor", requireAny(RoleAdmin)},
		{http.MethodGet, "/api/profesor/buscar", requireAny(RoleAdmin)},
		{http.MethodGet, "/api/profesor/{id}", requireAny(RoleAdmin, RoleProfessor)},
		{http.MethodPut, "/api/profesor/{id}", requireAny(RoleAdmin)},
		{http.MethodDelete, "/api/profesor/{id}", requireAny(RoleAdmin)},

		{http.MethodPost, "/api/estudiante", requireAny(RoleAdmin, RoleProfessor)},
		{http.MethodGet, "/api/estudiante", requireAny(RoleAdmin, RoleProfessor)},
		{http.MethodGet, "/api/estudiante/buscar", requireAny(RoleAdmin, RoleProfessor)},
		{http.MethodGet, "/api/estudiante/{id}", requireAny(RoleAdmin, RoleProfessor, RoleStudent)},
		{http.MethodPut, "/api/estudiante/{id}", requireAny(RoleAdmin, RoleProfessor)},
		{http.MethodDelete, "/api/estudiante/{id}", requireAny(RoleAdmin)},
	})
}

// Resolve returns the policy for a request. Trailing slashes are stripped
// before matching so slash variants of a route cannot dodge its entry; the
// router serves them with the same handlers. No matching entry yields
// PolicyAuthenticated.
func (t *PolicyTable) Resolve(method, path string) Policy {
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}

	best := Policy{Kind: PolicyAuthenticated}
	bestLen := -1
	for _, e := range t.entries {
		if e.Method != method {
			continue
		}
		if !matchPattern(e.Pattern, path) {
			continue
		}
		if len(e.Pattern) > bestLen {
			best = e.Policy
			bestLen = len(e.Pattern)
		}
	}
	return best
}

func matchPattern(pattern, path string) bool {
	if i := strings.Index(pattern, "{"); i >= 0 {
		prefix := pattern[:i]
		return strings.HasPrefix(path, prefix) && len(path) > len(prefix)
	}
	return path == pattern
}

// RolesSatisfiedBy reports whether an authenticated principal's role set
// satisfies the policy. Principal presence is the gate's concern; this only
// answers the role question.
func (p Policy) RolesSatisfiedBy(principal Principal) bool {
	switch p.Kind {
	case PolicyRequireAny:
		return HasAny(principal.Roles, p.Roles)
	case PolicyRequireAll:
		return HasAll(principal.Roles, p.Roles)
	default:
		return true
	}
}
