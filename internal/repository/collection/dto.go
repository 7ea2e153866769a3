package collection

import (
	"github.com/kailas-cloud/vecprovision/internal/db"
	domcol "github.com/kailas-cloud/vecprovision/internal/domain/collection"
	"github.com/kailas-cloud/vecprovision/internal/domain/collection/property"
	"github.com/kailas-cloud/vecprovision/internal/domain/vectorizer"
)

// classFromCollection converts a domain Collection to a class definition.
func classFromCollection(col domcol.Collection) *db.ClassDefinition {
	props := make([]db.PropertyDefinition, len(col.Properties()))
	for i, p := range col.Properties() {
		props[i] = db.PropertyDefinition{
			Name:        p.Name(),
			DataType:    string(p.DataType()),
			Description: p.Description(),
		}
	}
	return &db.ClassDefinition{
		Name:         col.Name(),
		Description:  col.Description(),
		Vectorizer:   col.Vectorizer().Module(),
		ModuleConfig: col.Vectorizer().ModuleConfig(),
		Properties:   props,
	}
}

// collectionFromClass hydrates a domain Collection from a stored class definition.
// Unknown vectorizer modules hydrate to a zero provider.
func collectionFromClass(def *db.ClassDefinition) domcol.Collection {
	provider, _ := vectorizer.ProviderFromModule(def.Vectorizer)
	vec := vectorizer.Reconstruct(provider, moduleModel(def.ModuleConfig, def.Vectorizer))

	props := make([]property.Property, len(def.Properties))
	for i, p := range def.Properties {
		props[i] = property.Reconstruct(p.Name, property.DataType(p.DataType), p.Description)
	}
	return domcol.Reconstruct(def.Name, def.Description, vec, props)
}

func moduleModel(cfg map[string]any, module string) string {
	mod, ok := cfg[module].(map[string]any)
	if !ok {
		return ""
	}
	model, _ := mod["model"].(string)
	return model
}
