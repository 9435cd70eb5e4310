package model

// Principal is the authenticated identity attached to a request after
// the auth middleware verifies a bearer token. It lives for a single
// request only and carries no store-backed state.
type Principal struct {
	UserID int64
}
