package models

// User is the admin profile returned by the backend on login.
type User struct {
	ID    string `json:"_id,omitempty"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
}

// Session is what the gate puts in the request context.
type Session struct {
	Token string
	Email string
	Role  string
}
