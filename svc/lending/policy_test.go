package lending_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polytechlib/lending/pkg/identity"
	"github.com/polytechlib/lending/svc/lending"
)

var (
	member    = identity.Identity{ID: 7, Role: identity.RoleMember}
	librarian = identity.Identity{ID: 2, Role: identity.RoleLibrarian}
	intruder  = identity.Identity{ID: 3, Role: identity.Role("superuser")}
)

func TestResolveBorrower(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		caller    identity.Identity
		requested int64
		want      int64
		wantErr   error
	}{
		{"member defaults to self", member, 0, 7, nil},
		{"member names self explicitly", member, 7, 7, nil},
		{"member names someone else", member, 9, 0, lending.ErrForbidden},
		{"librarian defaults to self", librarian, 0, 2, nil},
		{"librarian names any borrower", librarian, 9, 9, nil},
		{"unknown role", intruder, 3, 0, lending.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := lending.ResolveBorrower(tt.caller, tt.requested)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanReturnLoan(t *testing.T) {
	t.Parallel()

	assert.NoError(t, lending.CanReturnLoan(librarian))
	assert.ErrorIs(t, lending.CanReturnLoan(member), lending.ErrForbidden)
	assert.ErrorIs(t, lending.CanReturnLoan(intruder), lending.ErrForbidden)
}

func TestCanDeleteLoan(t *testing.T) {
	t.Parallel()

	assert.NoError(t, lending.CanDeleteLoan(librarian))
	assert.ErrorIs(t, lending.CanDeleteLoan(member), lending.ErrForbidden)
	assert.ErrorIs(t, lending.CanDeleteLoan(intruder), lending.ErrForbidden)
}

func TestCanViewLoan(t *testing.T) {
	t.Parallel()

	assert.NoError(t, lending.CanViewLoan(member, 7))
	assert.ErrorIs(t, lending.CanViewLoan(member, 9), lending.ErrForbidden)
	assert.NoError(t, lending.CanViewLoan(librarian, 9))
	assert.ErrorIs(t, lending.CanViewLoan(intruder, 3), lending.ErrForbidden)
}

func TestScopeFilter(t *testing.T) {
	t.Parallel()

	t.Run("member pinned to own loans", func(t *testing.T) {
		t.Parallel()

		scoped, err := lending.ScopeFilter(member, lending.Filter{BorrowerID: 9, Status: lending.StatusOpen})
		require.NoError(t, err)
		assert.Equal(t, int64(7), scoped.BorrowerID)
		assert.Equal(t, lending.StatusOpen, scoped.Status)
	})

	t.Run("librarian filter untouched", func(t *testing.T) {
		t.Parallel()

		scoped, err := lending.ScopeFilter(librarian, lending.Filter{BorrowerID: 9})
		require.NoError(t, err)
		assert.Equal(t, int64(9), scoped.BorrowerID)
	})

	t.Run("unknown role forbidden", func(t *testing.T) {
		t.Parallel()

		_, err := lending.ScopeFilter(intruder, lending.Filter{})
		assert.ErrorIs(t, err, lending.ErrForbidden)
	})
}
