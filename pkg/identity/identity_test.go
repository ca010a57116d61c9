package identity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polytechlib/lending/pkg/identity"
)

func TestRoleValid(t *testing.T) {
	t.Parallel()

	assert.True(t, identity.RoleMember.Valid())
	assert.True(t, identity.RoleLibrarian.Valid())
	assert.False(t, identity.Role("admin").Valid())
	assert.False(t, identity.Role("").Valid())
}

func TestIdentityValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		id   identity.Identity
		want bool
	}{
		{"member", identity.Identity{ID: 7, Role: identity.RoleMember}, true},
		{"librarian", identity.Identity{ID: 1, Role: identity.RoleLibrarian}, true},
		{"zero id", identity.Identity{ID: 0, Role: identity.RoleMember}, false},
		{"negative id", identity.Identity{ID: -3, Role: identity.RoleLibrarian}, false},
		{"unknown role", identity.Identity{ID: 7, Role: "guest"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.id.Valid())
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	caller := identity.Identity{ID: 9, Role: identity.RoleLibrarian}
	ctx := identity.WithIdentity(context.Background(), caller)

	got, ok := identity.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, caller, got)

	assert.Equal(t, caller, identity.MustFromContext(ctx))
}

func TestFromContext_Missing(t *testing.T) {
	t.Parallel()

	_, ok := identity.FromContext(context.Background())
	assert.False(t, ok)

	assert.Panics(t, func() {
		identity.MustFromContext(context.Background())
	})
}

func TestLogExtractor(t *testing.T) {
	t.Parallel()

	ex := identity.LogExtractor()

	_, ok := ex(context.Background())
	assert.False(t, ok)

	ctx := identity.WithIdentity(context.Background(), identity.Identity{ID: 5, Role: identity.RoleMember})
	attr, ok := ex(ctx)
	require.True(t, ok)
	assert.Equal(t, "caller", attr.Key)
}
