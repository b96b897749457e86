package spatialcore

// Properties is a tagged identifier stored in a Core's properties table:
// either a Feature (a bare id) or an Unknown (an id plus its source
// type name, for identifiers whose provenance a builder couldn't
// classify any further).
type Properties struct {
	id       string
	typeName string
	unknown  bool
}

// NewFeatureProperties builds a Feature-kind Properties entry.
func NewFeatureProperties(id string) Properties {
	return Properties{id: id, typeName: "Feature"}
}

// NewUnknownProperties builds an Unknown-kind Properties entry.
func NewUnknownProperties(id, typeName string) Properties {
	return Properties{id: id, typeName: typeName, unknown: true}
}

// ID returns the identifier string, shared by both variants.
func (p Properties) ID() string { return p.id }

// TypeName returns "Feature" for a Feature entry, or the stored type
// name for an Unknown entry.
func (p Properties) TypeName() string { return p.typeName }

// Equal compares by (id, type_name), not id alone: the table's own
// invariant says ids are globally unique, which would make a type_name
// comparison redundant, but this preserves the source implementation's
// actual equality (two variants sharing an id with different type names
// compare unequal rather than being merged). See DESIGN.md.
func (p Properties) Equal(other Properties) bool {
	return p.id == other.id && p.typeName == other.typeName
}
