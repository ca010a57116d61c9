package lending

import "github.com/polytechlib/lending/pkg/identity"

// The access policy gate. Every command is authorized here before the engine
// runs; a rejected command never starts a unit of work. Each check switches
// exhaustively over the closed role set — an identity carrying an unknown
// role is forbidden everything.

// ResolveBorrower applies the creation rule and returns the effective
// borrower id. Members borrow only for themselves: a zero requested id
// defaults to the caller, and any other id that is not the caller's own is
// forbidden. Librarians may name any borrower, defaulting to themselves.
func ResolveBorrower(caller identity.Identity, requested int64) (int64, error) {
	switch caller.Role {
	case identity.RoleMember:
		if requested != 0 && requested != caller.ID {
			return 0, ErrForbidden
		}
		return caller.ID, nil
	case identity.RoleLibrarian:
		if requested == 0 {
			return caller.ID, nil
		}
		return requested, nil
	default:
		return 0, ErrForbidden
	}
}

// CanReturnLoan authorizes the return command. Librarian-only.
func CanReturnLoan(caller identity.Identity) error {
	switch caller.Role {
	case identity.RoleLibrarian:
		return nil
	default:
		return ErrForbidden
	}
}

// CanDeleteLoan authorizes the administrative delete override. Librarian-only.
func CanDeleteLoan(caller identity.Identity) error {
	switch caller.Role {
	case identity.RoleLibrarian:
		return nil
	default:
		return ErrForbidden
	}
}

// CanViewLoan authorizes fetching a specific loan. Members see only their own
// loans; librarians see all.
func CanViewLoan(caller identity.Identity, borrowerID int64) error {
	switch caller.Role {
	case identity.RoleMember:
		if borrowerID != caller.ID {
			return ErrForbidden
		}
		return nil
	case identity.RoleLibrarian:
		return nil
	default:
		return ErrForbidden
	}
}

// ScopeFilter narrows a listing filter to what the caller may see. Members
// are pinned to their own loans regardless of the requested filter.
func ScopeFilter(caller identity.Identity, filter Filter) (Filter, error) {
	switch caller.Role {
	case identity.RoleMember:
		filter.BorrowerID = caller.ID
		return filter, nil
	case identity.RoleLibrarian:
		return filter, nil
	default:
		return Filter{}, ErrForbidden
	}
}
