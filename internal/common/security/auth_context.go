package security

// AuthContext is the resolved (not enforced) authentication state of a
// request. Resolution never rejects; each operation decides for itself
// whether IsAuth is required.
type AuthContext struct {
	IsAuth bool
	UserID string
	Email  string
}
