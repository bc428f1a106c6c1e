// Package model defines the data structures for project scaffolding.
package model

import (
	"fmt"
	"strings"
)

// Path represents a file system path.
type Path string

// DefaultProjectName is used when no name is supplied on the command line.
const DefaultProjectName = "nuxt-app"

// Project identifies the tree a scaffolding run operates on. It is created
// once from validated input and never mutated during the run.
type Project struct {
	Name string
	Root Path
}

// NewProject validates name and builds an immutable Project rooted at root.
// The name must be usable as a directory name and as the package.json name
// field: letters, digits, '-', '_' and '.', not starting with '.' or '-'.
func NewProject(name string, root Path) (Project, error) {
	if err := ValidateProjectName(name); err != nil {
		return Project{}, err
	}

	if root == "" {
		return Project{}, fmt.Errorf("project root must not be empty")
	}

	return Project{Name: name, Root: root}, nil
}

// ValidateProjectName reports whether name is a safe project identifier.
func ValidateProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("project name must not be empty")
	}

	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "-") {
		return fmt.Errorf("project name %q must not start with %q", name, name[:1])
	}

	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return fmt.Errorf("project name %q contains invalid character %q", name, r)
		}
	}

	return nil
}
