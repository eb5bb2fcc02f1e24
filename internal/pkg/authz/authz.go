package authz

import (
	"strings"

	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/env"
)

// Policy answers "is this authenticated identity a platform operator".
// It is constructed once at startup from the ADMIN_EMAILS allow-list and
// injected where needed; nothing queries the environment at request time.
type Policy struct {
	operators map[string]struct{}
}

// NewPolicy builds a policy from a comma-separated allow-list of emails.
func NewPolicy(allowList string) *Policy {
	ops := make(map[string]struct{})
	for _, raw := range strings.Split(allowList, ",") {
		email := strings.ToLower(strings.TrimSpace(raw))
		if email == "" {
			continue
		}
		ops[email] = struct{}{}
	}
	return &Policy{operators: ops}
}

// NewPolicyFromEnv builds the operator policy from ADMIN_EMAILS.
func NewPolicyFromEnv() *Policy {
	return NewPolicy(env.GetEnv("ADMIN_EMAILS", ""))
}

// IsOperator reports whether the given email is in the operator set.
// Matching is case-insensitive.
func (p *Policy) IsOperator(email string) bool {
	if p == nil {
		return false
	}
	_, ok := p.operators[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// Size returns the number of configured operators.
func (p *Policy) Size() int {
	if p == nil {
		return 0
	}
	return len(p.operators)
}
