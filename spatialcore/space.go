package spatialcore

import "sync"

// UniverseName is the reserved Space name resolved to the Universe
// singleton without consulting any catalog.
const UniverseName = "Universe"

// Space is a named CoordinateSystem. Names are unique within a Database.
type Space struct {
	name   string
	system CoordinateSystem
}

// NewSpace names a coordinate system.
func NewSpace(name string, system CoordinateSystem) Space {
	return Space{name: name, system: system}
}

var (
	universeOnce  sync.Once
	universeSpace *Space
)

// UniverseSpace returns the shared Universe singleton.
func UniverseSpace() *Space {
	universeOnce.Do(func() {
		s := NewSpace(UniverseName, UniverseCoordinateSystem())
		universeSpace = &s
	})
	return universeSpace
}

// ChangeBase converts p, expressed as encoded coordinates in from, to
// encoded coordinates in to, pivoting through the Universe frame:
// to.Rebase(from.AbsolutePosition(p)).
func ChangeBase(p Position, from, to *Space) (Position, error) {
	absolute, err := from.AbsolutePosition(p)
	if err != nil {
		return Position{}, err
	}
	return to.Rebase(absolute)
}

// Name returns the space's unique name.
func (s *Space) Name() string { return s.name }

// System returns the space's coordinate system.
func (s *Space) System() CoordinateSystem { return s.system }

// Origin returns the space's origin, in the Universe frame.
func (s *Space) Origin() Position { return s.system.Origin() }

// Axes returns the space's axes (error for the Universe space).
func (s *Space) Axes() ([]Axis, error) { return s.system.Axes() }

// BoundingBox returns the space's decoded bounding box.
func (s *Space) BoundingBox() (Position, Position) { return s.system.BoundingBox() }

// Volume returns the space's decoded bounding-box volume.
func (s *Space) Volume() float64 { return s.system.Volume() }

// Rebase converts a Universe-frame decoded position into this space's
// encoded coordinates.
func (s *Space) Rebase(p Position) (Position, error) { return s.system.Rebase(p) }

// AbsolutePosition converts a position encoded in this space back into
// Universe decoded coordinates.
func (s *Space) AbsolutePosition(p Position) (Position, error) {
	return s.system.AbsolutePosition(p)
}

// Decode maps an encoded position in this space back to decoded float64
// values.
func (s *Space) Decode(p Position) ([]float64, error) { return s.system.Decode(p) }

// Encode maps a decoded position, expressed in this space, to this
// space's encoded coordinates.
func (s *Space) Encode(position []float64) (Position, error) { return s.system.Encode(position) }
