package provision

import (
	"fmt"

	"github.com/kailas-cloud/vecprovision/internal/domain"
	domcol "github.com/kailas-cloud/vecprovision/internal/domain/collection"
	"github.com/kailas-cloud/vecprovision/internal/domain/collection/property"
	"github.com/kailas-cloud/vecprovision/internal/domain/vectorizer"
)

// ContentProperty is the single text property of every provisioned collection.
const ContentProperty = "content"

type template struct {
	kind                domcol.Kind
	description         string
	propertyDescription string
}

var templates = map[domcol.Kind]template{
	domcol.KindSearch: {
		kind:                domcol.KindSearch,
		description:         "Knowledge base entries for semantic search",
		propertyDescription: "The content of the knowledge base entry",
	},
	domcol.KindStore: {
		kind:                domcol.KindStore,
		description:         "Stored memories",
		propertyDescription: "The content of the stored memory",
	},
}

// Plan builds the search and store collection definitions, in that order.
// Both share the vectorizer and differ only in name and descriptions.
func Plan(searchName, storeName string, vec vectorizer.Vectorizer) ([]domcol.Collection, error) {
	if domcol.SameName(searchName, storeName) {
		return nil, fmt.Errorf("%w: search and store collections must have different names, both are %q",
			domain.ErrInvalidConfig, searchName)
	}

	search, err := build(searchName, templates[domcol.KindSearch], vec)
	if err != nil {
		return nil, err
	}
	store, err := build(storeName, templates[domcol.KindStore], vec)
	if err != nil {
		return nil, err
	}
	return []domcol.Collection{search, store}, nil
}

func build(name string, tpl template, vec vectorizer.Vectorizer) (domcol.Collection, error) {
	content, err := property.New(ContentProperty, property.Text, tpl.propertyDescription)
	if err != nil {
		return domcol.Collection{}, fmt.Errorf("%w: %w", domain.ErrInvalidSchema, err)
	}
	col, err := domcol.New(name, tpl.kind, tpl.description, vec, []property.Property{content})
	if err != nil {
		return domcol.Collection{}, fmt.Errorf("%s collection: %w: %w", tpl.kind, domain.ErrInvalidConfig, err)
	}
	return col, nil
}
