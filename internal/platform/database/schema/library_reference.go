package schema

// LibraryReferenceTable represents the 'library.reference' table
type LibraryReferenceTable struct {
	Table string
	ID    string
	Kind  string
	Name  string
	Slug  string
}

// LibraryReference is the schema definition for library.reference
var LibraryReference = LibraryReferenceTable{
	Table: "library.reference",
	ID:    "id",
	Kind:  "kind",
	Name:  "name",
	Slug:  "slug",
}

func (t LibraryReferenceTable) Columns() []string {
	return []string{t.ID, t.Kind, t.Name, t.Slug}
}
