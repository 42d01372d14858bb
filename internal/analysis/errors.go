package analysis

import "fmt"

// UnknownRoleError reports a selected role that is not in the catalog
type UnknownRoleError struct {
	Role string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("unknown job role %q", e.Role)
}
