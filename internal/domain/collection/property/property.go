package property

import (
	"fmt"
	"regexp"
)

// DataType is the storage type of a property.
type DataType string

// Text is the only data type the provisioner creates.
const Text DataType = "text"

var nameRegex = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*$`)

// Property is an immutable value object describing a collection property.
type Property struct {
	name        string
	dataType    DataType
	description string
}

// New validates and creates a Property.
// Name: ^[_A-Za-z][_0-9A-Za-z]*$, max 230 chars. Type must be text.
func New(name string, dt DataType, description string) (Property, error) {
	if name == "" {
		return Property{}, fmt.Errorf("property name is required")
	}
	if len(name) > 230 {
		return Property{}, fmt.Errorf("property name %q too long (max 230)", name)
	}
	if !nameRegex.MatchString(name) {
		return Property{}, fmt.Errorf("property name %q must start with a letter or underscore and contain only letters, digits and underscores", name)
	}
	if dt != Text {
		return Property{}, fmt.Errorf("unsupported data type %q for %q", dt, name)
	}
	return Property{name: name, dataType: dt, description: description}, nil
}

// Reconstruct creates a Property without validation (storage hydration).
func Reconstruct(name string, dt DataType, description string) Property {
	return Property{name: name, dataType: dt, description: description}
}

// Name returns the property name.
func (p Property) Name() string { return p.name }

// DataType returns the property data type.
func (p Property) DataType() DataType { return p.dataType }

// Description returns the human-readable description.
func (p Property) Description() string { return p.description }
