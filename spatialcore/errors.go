package spatialcore

import "fmt"

// ErrOutOfRange reports a value outside an axis's declared graduation.
type ErrOutOfRange struct {
	Value, Min, Max float64
}

func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("spatialcore: value %v out of range [%v, %v]", e.Value, e.Min, e.Max)
}

// ErrDimensionMismatch reports an operation attempted across positions,
// shapes, or coordinate systems of differing dimensionality.
type ErrDimensionMismatch struct {
	Want, Got int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("spatialcore: dimension mismatch: want %d, got %d", e.Want, e.Got)
}

// ErrNotFound reports a catalog lookup that matched nothing.
type ErrNotFound struct {
	Kind, Name string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("spatialcore: no %s registered under %q", e.Kind, e.Name)
}

// ErrAmbiguous reports a catalog lookup that matched more than one entry.
type ErrAmbiguous struct {
	Kind, Name string
	Count      int
}

func (e *ErrAmbiguous) Error() string {
	return fmt.Sprintf("spatialcore: multiple %s registered under %q: %d", e.Kind, e.Name, e.Count)
}

// ErrInconsistentCatalog reports a catalog registration that conflicts
// with the catalog's contents: a reference-space name registered twice
// with differing definitions, the reserved Universe name, or a core name
// registered twice.
type ErrInconsistentCatalog struct {
	Name string
}

func (e *ErrInconsistentCatalog) Error() string {
	return fmt.Sprintf("spatialcore: inconsistent catalog: conflicting registration for %q", e.Name)
}

// ErrInvalidViewport reports a viewport shape that isn't a BoundingBox,
// where a BoundingBox viewport is required.
type ErrInvalidViewport struct {
	Detail string
}

func (e *ErrInvalidViewport) Error() string {
	return fmt.Sprintf("spatialcore: invalid viewport: %s", e.Detail)
}

// ErrOutOfViewport reports a point query whose target falls outside the
// configured viewport.
type ErrOutOfViewport struct{}

func (e *ErrOutOfViewport) Error() string {
	return "spatialcore: position excluded by viewport"
}

// ErrEmptyIntersection reports a box/sphere query whose MBB does not
// intersect the configured viewport.
type ErrEmptyIntersection struct{}

func (e *ErrEmptyIntersection) Error() string {
	return "spatialcore: viewport does not intersect query shape"
}

// ErrDeserialize reports a persisted snapshot that is corrupt or was
// built by an incompatible encoder.
type ErrDeserialize struct {
	Cause error
}

func (e *ErrDeserialize) Error() string {
	return fmt.Sprintf("spatialcore: snapshot deserialize error: %v", e.Cause)
}

func (e *ErrDeserialize) Unwrap() error { return e.Cause }
