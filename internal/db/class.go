package db

// ClassDefinition is a storage-neutral collection schema.
type ClassDefinition struct {
	Name         string
	Description  string
	Vectorizer   string         // module name, e.g. text2vec-openai
	ModuleConfig map[string]any // per-module settings, may be nil
	Properties   []PropertyDefinition
}

// PropertyDefinition describes a single class property.
type PropertyDefinition struct {
	Name        string
	DataType    string
	Description string
}
