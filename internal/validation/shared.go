package validation

import (
	"fmt"
	"strings"
)

type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}

// checkDate validates a required YYYY-MM-DD field into the error map.
func checkDate(errors map[string]string, field, value string) {
	if strings.TrimSpace(value) == "" {
		errors[field] = fmt.Sprintf("%s is required", field)
		return
	}
	if !validDate(value) {
		errors[field] = fmt.Sprintf("%s must be in YYYY-MM-DD format", field)
	}
}
