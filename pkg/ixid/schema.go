package ixid

// Field names one positional tracking field.
type Field string

// Known fields. The string form is the name used in JSON and templates.
const (
	App      Field = "app"
	Page     Field = "page"
	Label    Field = "label"
	Property Field = "property"
	UserID   Field = "userId"
)

// Schema is a versioned, ordered list of fields. Position in Fields is
// position on the wire.
type Schema struct {
	Version int
	Fields  []Field
}

var (
	// SchemaV1 is the first, 4-field layout.
	SchemaV1 = Schema{Version: 1, Fields: []Field{App, Page, Label, Property}}

	// SchemaV2 appends userId.
	SchemaV2 = Schema{Version: 2, Fields: []Field{App, Page, Label, Property, UserID}}

	// DefaultSchema is used when no WithSchema option is given.
	DefaultSchema = SchemaV2
)

// SchemaByVersion returns the schema registered under version.
func SchemaByVersion(version int) (Schema, bool) {
	switch version {
	case SchemaV1.Version:
		return SchemaV1, true
	case SchemaV2.Version:
		return SchemaV2, true
	}
	return Schema{}, false
}
