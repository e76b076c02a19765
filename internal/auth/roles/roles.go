// Package roles defines the role model shared by all route allow-lists.
// There is no hierarchy between roles: every route declares the exact set it
// accepts, and SUPER_ADMIN appears explicitly where it applies.
package roles

const (
	SuperAdmin  = "SUPER_ADMIN"
	SchoolAdmin = "SCHOOL_ADMIN"
	Teacher     = "TEACHER"
)

// Valid reports whether role is one of the known roles.
func Valid(role string) bool {
	switch role {
	case SuperAdmin, SchoolAdmin, Teacher:
		return true
	default:
		return false
	}
}
