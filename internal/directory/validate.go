package directory

import (
	"fmt"
	"strings"
)

// ValidationError lists every problem found in a tree.
type ValidationError struct {
	problems []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("directory: %d problem(s): %s", len(e.problems), strings.Join(e.problems, "; "))
}

// Problems returns a copy of the problem list.
func (e *ValidationError) Problems() []string {
	out := make([]string, len(e.problems))
	copy(out, e.problems)
	return out
}

// Validate checks route uniqueness, titles and platform identifiers.
func Validate(t *Tree) error {
	if t == nil {
		return &ValidationError{problems: []string{"tree is nil"}}
	}
	var problems []string
	for _, dup := range t.duplicates {
		problems = append(problems, "duplicate route "+dup)
	}
	_ = t.Walk(func(n *PageNode) error {
		if n.Title == "" {
			problems = append(problems, fmt.Sprintf("%s: missing title", n.Route))
		}
		for _, p := range n.Platforms {
			if !p.Valid() {
				problems = append(problems, fmt.Sprintf("%s: unknown platform %q", n.Route, p))
			}
		}
		return nil
	})
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{problems: problems}
}
