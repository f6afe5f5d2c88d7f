package tool

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrToolAlreadyRegistered = errors.New("tool already registered")
	ErrDuplicateBackendPath  = errors.New("backend path already registered")
	ErrInvalidDefinition     = errors.New("invalid tool definition")
	ErrToolNotFound          = errors.New("tool not found")
)

// Definition is the immutable contract of one tool: how its input is checked,
// where it is forwarded, and how the backend answer is summarised as text.
type Definition struct {
	Name        string
	Title       string
	Description string
	BackendPath string
	Schema      InputSchema
	Text        TextRule
}

// Registry holds the fixed tool catalog. It is populated once at startup and
// only read afterwards, so lookups need no locking.
type Registry struct {
	defs  map[string]Definition
	paths map[string]string
	order []string
}

func NewRegistry() *Registry {
	return &Registry{
		defs:  make(map[string]Definition),
		paths: make(map[string]string),
	}
}

// Register adds def to the catalog. Any error is a startup error.
func (r *Registry) Register(def Definition) error {
	if err := validateDefinition(def); err != nil {
		return err
	}
	if _, exists := r.defs[def.Name]; exists {
		return fmt.Errorf("%w: %q", ErrToolAlreadyRegistered, def.Name)
	}
	if owner, exists := r.paths[def.BackendPath]; exists {
		return fmt.Errorf("%w: %q is used by %q", ErrDuplicateBackendPath, def.BackendPath, owner)
	}
	r.defs[def.Name] = def
	r.paths[def.BackendPath] = def.Name
	r.order = append(r.order, def.Name)
	return nil
}

// MustRegister registers every definition and panics on the first failure.
func (r *Registry) MustRegister(defs ...Definition) {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
}

func (r *Registry) Lookup(name string) (Definition, error) {
	def, ok := r.defs[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrToolNotFound, name)
	}
	return def, nil
}

// Definitions returns the catalog in registration order.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.defs[name])
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.order)
}

func validateDefinition(def Definition) error {
	if strings.TrimSpace(def.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDefinition)
	}
	if !strings.HasPrefix(def.BackendPath, "/") {
		return fmt.Errorf("%w: %q: backend path must start with /", ErrInvalidDefinition, def.Name)
	}
	if def.Schema == nil {
		return fmt.Errorf("%w: %q: input schema is required", ErrInvalidDefinition, def.Name)
	}
	if def.Text == nil {
		return fmt.Errorf("%w: %q: text rule is required", ErrInvalidDefinition, def.Name)
	}
	return nil
}
