// Package identity models the authenticated caller consumed by the lending
// core: a numeric user id plus a role from the closed set {member, librarian}.
//
// The boundary layer (out of scope here) authenticates a request, builds an
// Identity, and attaches it to the request context:
//
//	ctx = identity.WithIdentity(ctx, identity.Identity{ID: 7, Role: identity.RoleMember})
//
// Downstream code retrieves it with FromContext or MustFromContext. Keeping
// the role a typed value with a closed set lets authorization code switch
// over it exhaustively instead of string-matching a loosely-typed claims bag.
package identity
