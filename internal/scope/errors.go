package scope

import (
	"fmt"
	"strings"
)

// Issue is a single validation failure.
type Issue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (i Issue) String() string {
	return i.Field + ": " + i.Reason
}

// ValidationError reports every problem found in a week context at once.
type ValidationError struct {
	Source string  `json:"source,omitempty"`
	Issues []Issue `json:"issues"`
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid week context")
	if e.Source != "" {
		fmt.Fprintf(&b, " %s", e.Source)
	}
	fmt.Fprintf(&b, " (%d issue", len(e.Issues))
	if len(e.Issues) != 1 {
		b.WriteString("s")
	}
	b.WriteString(")")
	for _, is := range e.Issues {
		b.WriteString("; ")
		b.WriteString(is.String())
	}
	return b.String()
}

func (e *ValidationError) add(field, reason string) {
	e.Issues = append(e.Issues, Issue{Field: field, Reason: reason})
}
