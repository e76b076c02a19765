package roles

import "testing"

func TestValid(t *testing.T) {
	for _, role := range []string{SuperAdmin, SchoolAdmin, Teacher} {
		if !Valid(role) {
			t.Fatalf("expected %q to be valid", role)
		}
	}
	for _, role := range []string{"", "ADMIN", "super_admin", "STUDENT"} {
		if Valid(role) {
			t.Fatalf("expected %q to be invalid", role)
		}
	}
}
