package models

// User represents the authenticated account behind a session
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Admin bool   `json:"isAdmin"`
}
