package dto

import "github.com/Insper-Code/site-code/internal/domain"

// CreateUserRequest represents an admin creating an account
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role" binding:"required"`
}

// Validate checks fields beyond what binding tags cover
func (r *CreateUserRequest) Validate() error {
	if r.Name == "" || r.Email == "" || r.Password == "" {
		return domain.ErrMissingFields
	}
	if len(r.Password) < 6 {
		return domain.ErrWeakPassword
	}
	if !domain.Role(r.Role).IsValid() {
		return domain.ErrInvalidRole
	}
	return nil
}

// UpdateUserRequest represents an admin updating an account. A blank
// password leaves the stored hash untouched.
type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"required"`
}

// Validate checks fields beyond what binding tags cover
func (r *UpdateUserRequest) Validate() error {
	if r.Name == "" || r.Email == "" {
		return domain.ErrMissingFields
	}
	if r.Password != "" && len(r.Password) < 6 {
		return domain.ErrWeakPassword
	}
	if !domain.Role(r.Role).IsValid() {
		return domain.ErrInvalidRole
	}
	return nil
}
