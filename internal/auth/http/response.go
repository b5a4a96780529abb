package http

import "github.com/traintrack-app/traintrack/internal/auth/domain"

// userView is the public projection of a user. The password hash never
// leaves the service.
type userView struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	IsActive bool   `json:"isActive"`
}

func newUserView(u domain.User, name string) userView {
	return userView{
		ID:       u.ID,
		Email:    u.Email,
		Name:     name,
		IsActive: u.IsActive,
	}
}

// authResponse is the success body for register, login and refresh.
type authResponse struct {
	Success bool     `json:"success"`
	User    userView `json:"user"`
	Token   string   `json:"token"`
}

// messageResponse is the success body for logout, verify-email and
// password change.
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
