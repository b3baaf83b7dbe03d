package schema

// LibraryPluginTable represents the 'library.plugin' table
type LibraryPluginTable struct {
	Table string
	ID    string
	Name  string
}

// LibraryPlugin is the schema definition for library.plugin
var LibraryPlugin = LibraryPluginTable{
	Table: "library.plugin",
	ID:    "id",
	Name:  "name",
}

func (t LibraryPluginTable) Columns() []string {
	return []string{t.ID, t.Name}
}
