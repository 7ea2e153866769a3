package weaviate

import (
	"context"
	"errors"

	"github.com/weaviate/weaviate/entities/models"

	"github.com/kailas-cloud/vecprovision/internal/db"
)

// ClassExists reports whether a class with the given name exists.
// Only a not-found answer means absent; any other failure is returned.
func (s *Store) ClassExists(ctx context.Context, name string) (bool, error) {
	cls, err := s.client.Schema().ClassGetter().WithClassName(name).Do(ctx)
	if err != nil {
		mapped := mapError(err)
		if errors.Is(mapped, db.ErrClassNotFound) {
			return false, nil
		}
		return false, &db.Error{Op: db.OpClassExists, Class: name, Err: mapped}
	}
	return cls != nil, nil
}

// GetClass fetches a class definition. Returns db.ErrClassNotFound if absent.
func (s *Store) GetClass(ctx context.Context, name string) (*db.ClassDefinition, error) {
	cls, err := s.client.Schema().ClassGetter().WithClassName(name).Do(ctx)
	if err != nil {
		return nil, &db.Error{Op: db.OpGetClass, Class: name, Err: mapError(err)}
	}
	if cls == nil {
		return nil, &db.Error{Op: db.OpGetClass, Class: name, Err: db.ErrClassNotFound}
	}
	return fromModel(cls), nil
}

// CreateClass creates a class. Returns db.ErrClassExists if the name is taken.
func (s *Store) CreateClass(ctx context.Context, def *db.ClassDefinition) error {
	if def == nil {
		return &db.Error{Op: db.OpCreateClass, Err: errors.New("nil class definition")}
	}
	err := s.client.Schema().ClassCreator().WithClass(toModel(def)).Do(ctx)
	if err != nil {
		return &db.Error{Op: db.OpCreateClass, Class: def.Name, Err: mapError(err)}
	}
	return nil
}

// DeleteClass drops a class together with all of its objects.
func (s *Store) DeleteClass(ctx context.Context, name string) error {
	if err := s.client.Schema().ClassDeleter().WithClassName(name).Do(ctx); err != nil {
		return &db.Error{Op: db.OpDeleteClass, Class: name, Err: mapError(err)}
	}
	return nil
}

func toModel(def *db.ClassDefinition) *models.Class {
	props := make([]*models.Property, 0, len(def.Properties))
	for _, p := range def.Properties {
		props = append(props, &models.Property{
			Name:        p.Name,
			DataType:    []string{p.DataType},
			Description: p.Description,
		})
	}
	cls := &models.Class{
		Class:       def.Name,
		Description: def.Description,
		Vectorizer:  def.Vectorizer,
		Properties:  props,
	}
	if len(def.ModuleConfig) > 0 {
		cls.ModuleConfig = def.ModuleConfig
	}
	return cls
}

func fromModel(cls *models.Class) *db.ClassDefinition {
	def := &db.ClassDefinition{
		Name:        cls.Class,
		Description: cls.Description,
		Vectorizer:  cls.Vectorizer,
	}
	if mc, ok := cls.ModuleConfig.(map[string]any); ok {
		def.ModuleConfig = mc
	}
	for _, p := range cls.Properties {
		if p == nil {
			continue
		}
		dt := ""
		if len(p.DataType) > 0 {
			dt = p.DataType[0]
		}
		def.Properties = append(def.Properties, db.PropertyDefinition{
			Name:        p.Name,
			DataType:    dt,
			Description: p.Description,
		})
	}
	return def
}
