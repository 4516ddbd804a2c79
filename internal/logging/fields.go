package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError = "error"
	FieldPath  = "path"
	FieldInput = "input"

	// Identity fields.
	FieldID         = "id"
	FieldHint       = "hint"
	FieldKind       = "kind"
	FieldMode       = "mode"
	FieldPersisted  = "persisted"
	FieldRecomputed = "recomputed"

	// Document fields.
	FieldNodes    = "nodes"
	FieldBlocks   = "blocks"
	FieldMappings = "mappings"
	FieldFlavor   = "flavor"
	FieldDrift    = "drift"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
