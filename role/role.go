package role

import "strings"

const (
	User  = "user"
	Admin = "admin"
)

// Normalize lowercases the role and falls back to User for anything
// that is not a known role.
func Normalize(r string) string {
	r = strings.ToLower(strings.TrimSpace(r))
	if IsValid(r) {
		return r
	}
	return User
}

func IsValid(r string) bool {
	switch r {
	case User, Admin:
		return true
	}
	return false
}
