package collection

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kailas-cloud/vecprovision/internal/domain/collection/property"
	"github.com/kailas-cloud/vecprovision/internal/domain/vectorizer"
)

var nameRegex = regexp.MustCompile(`^[A-Za-z][_0-9A-Za-z]*$`)

// Kind distinguishes the two provisioned collections.
type Kind string

const (
	// KindSearch holds knowledge base entries.
	KindSearch Kind = "search"
	// KindStore holds stored memories.
	KindStore Kind = "store"
	// KindUnknown marks collections hydrated from the database.
	KindUnknown Kind = ""
)

// IsValid checks if the kind is one the provisioner creates.
func (k Kind) IsValid() bool {
	return k == KindSearch || k == KindStore
}

// Collection is a vectorized collection definition (immutable value object).
type Collection struct {
	name        string
	kind        Kind
	description string
	vectorizer  vectorizer.Vectorizer
	properties  []property.Property
}

// ValidateName checks a collection name against the database class naming rules.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("collection name is required")
	}
	if len(name) > 255 {
		return fmt.Errorf("collection name too long (max 255)")
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("collection name %q must start with a letter and contain only letters, digits and underscores", name)
	}
	return nil
}

func validateProperties(props []property.Property) error {
	if len(props) == 0 {
		return fmt.Errorf("at least one property is required")
	}
	seen := make(map[string]bool, len(props))
	for _, p := range props {
		key := strings.ToLower(p.Name())
		if seen[key] {
			return fmt.Errorf("duplicate property name: %s", p.Name())
		}
		seen[key] = true
	}
	return nil
}

// New validates and creates a Collection.
func New(
	name string, kind Kind, description string,
	vec vectorizer.Vectorizer, props []property.Property,
) (Collection, error) {
	if err := ValidateName(name); err != nil {
		return Collection{}, err
	}
	if !kind.IsValid() {
		return Collection{}, fmt.Errorf("invalid collection kind: %q", kind)
	}
	if !vec.Provider().IsValid() {
		return Collection{}, fmt.Errorf("collection %s: vectorizer is required", name)
	}
	if err := validateProperties(props); err != nil {
		return Collection{}, fmt.Errorf("collection %s: %w", name, err)
	}

	return Collection{
		name:        name,
		kind:        kind,
		description: description,
		vectorizer:  vec,
		properties:  props,
	}, nil
}

// Reconstruct creates a Collection without validation (storage hydration).
func Reconstruct(
	name, description string, vec vectorizer.Vectorizer, props []property.Property,
) Collection {
	return Collection{
		name:        name,
		kind:        KindUnknown,
		description: description,
		vectorizer:  vec,
		properties:  props,
	}
}

// Name returns the collection name.
func (c Collection) Name() string { return c.name }

// Kind returns whether this is the search or the store collection.
func (c Collection) Kind() Kind { return c.kind }

// Description returns the collection description.
func (c Collection) Description() string { return c.description }

// Vectorizer returns the vectorizer setting.
func (c Collection) Vectorizer() vectorizer.Vectorizer { return c.vectorizer }

// Properties returns the property definitions.
func (c Collection) Properties() []property.Property { return c.properties }

// PropertyByName looks up a property by name.
func (c Collection) PropertyByName(name string) (property.Property, bool) {
	for _, p := range c.properties {
		if p.Name() == name {
			return p, true
		}
	}
	return property.Property{}, false
}

// SameName reports whether two collection names address the same database class.
// The database capitalises the first letter of class names.
func SameName(a, b string) bool {
	return strings.EqualFold(a, b)
}
