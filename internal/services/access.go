package services

import "github.com/harentsoaR/smile-care-api/internal/models"

// CanViewBookings allows self-service only: the token's email must equal
// the requested email exactly.
func CanViewBookings(identityEmail, requestedEmail string) bool {
	return identityEmail == requestedEmail
}

// IsAdmin is true only for a registered user whose role is admin.
func IsAdmin(user *models.User) bool {
	return user != nil && user.Role == models.RoleAdmin
}
