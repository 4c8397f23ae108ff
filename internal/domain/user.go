package domain

// User describes the authenticated customer as reported by the upstream API.
// Session-scoped; possession of a valid token is the sole auth signal.
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}
