package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOperator(t *testing.T) {
	policy := NewPolicy("owner@gallery.example, Admin@Gallery.Example ,,")

	require.Equal(t, 2, policy.Size())

	tests := []struct {
		email string
		want  bool
	}{
		{email: "owner@gallery.example", want: true},
		{email: "OWNER@GALLERY.EXAMPLE", want: true},
		{email: " admin@gallery.example ", want: true},
		{email: "visitor@gallery.example", want: false},
		{email: "", want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, policy.IsOperator(tt.email), "IsOperator(%q)", tt.email)
	}
}

func TestEmptyAllowList(t *testing.T) {
	policy := NewPolicy("")

	assert.Equal(t, 0, policy.Size())
	assert.False(t, policy.IsOperator("anyone@gallery.example"), "empty allow-list must not grant access")
}

func TestNilPolicyDeniesAll(t *testing.T) {
	var policy *Policy
	assert.False(t, policy.IsOperator("anyone@gallery.example"))
}
