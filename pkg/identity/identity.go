package identity

// Role is the caller's authorization role. The set is closed: code that
// switches over Role handles every constant plus the invalid default.
type Role string

const (
	// RoleMember can borrow books for themselves and see their own loans.
	RoleMember Role = "member"
	// RoleLibrarian manages loans on behalf of any borrower.
	RoleLibrarian Role = "librarian"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleLibrarian:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// Identity is the authenticated principal asserted by the boundary layer.
type Identity struct {
	ID   int64
	Role Role
}

// IsLibrarian reports whether the caller holds the librarian role.
func (i Identity) IsLibrarian() bool {
	return i.Role == RoleLibrarian
}

// Valid reports whether the identity carries a positive id and a known role.
func (i Identity) Valid() bool {
	return i.ID > 0 && i.Role.Valid()
}
