package method

import (
	"fmt"
	"strings"
)

// UnknownError reports a name outside the catalog together with every valid
// name, so callers can render a self-correcting message.
type UnknownError struct {
	Name  string
	Valid []string
}

func (e *UnknownError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("method name is empty; available methods: %s",
			strings.Join(e.Valid, ", "))
	}
	return fmt.Sprintf("unknown method %q; available methods: %s",
		e.Name, strings.Join(e.Valid, ", "))
}
