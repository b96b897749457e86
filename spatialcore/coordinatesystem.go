package spatialcore

import "math"

// DimensionK is the fixed dimensionality of the Universe frame; see
// SPEC_FULL.md §3.
const DimensionK = 3

// CoordinateSystem is either the singleton Universe frame (decoded,
// dimension DimensionK, origin at the zero vector) or an AffineSystem
// with a Universe-frame origin and an ordered list of axes.
type CoordinateSystem struct {
	isUniverse bool
	origin     Position
	axes       []Axis
}

// UniverseCoordinateSystem returns the Universe coordinate system.
func UniverseCoordinateSystem() CoordinateSystem {
	return CoordinateSystem{isUniverse: true}
}

// NewAffineSystem builds an affine coordinate system with the given
// Universe-frame origin and axes.
func NewAffineSystem(origin []float64, axes []Axis) CoordinateSystem {
	return CoordinateSystem{
		origin: PositionFromFloat64s(origin),
		axes:   axes,
	}
}

// IsUniverse reports whether cs is the Universe frame.
func (cs CoordinateSystem) IsUniverse() bool { return cs.isUniverse }

// Dimensions returns cs's dimensionality.
func (cs CoordinateSystem) Dimensions() int {
	if cs.isUniverse {
		return DimensionK
	}
	return len(cs.axes)
}

// Origin returns cs's origin in the Universe frame.
func (cs CoordinateSystem) Origin() Position {
	if cs.isUniverse {
		zero := make([]float64, DimensionK)
		return PositionFromFloat64s(zero)
	}
	return cs.origin
}

// Axes returns cs's axes. Fails if cs is the Universe frame, which has no
// axis list of its own.
func (cs CoordinateSystem) Axes() ([]Axis, error) {
	if cs.isUniverse {
		return nil, errUniverseHasNoAxes
	}
	return cs.axes, nil
}

var errUniverseHasNoAxes = &ErrDimensionMismatch{Want: DimensionK, Got: 0}

// BoundingBox returns cs's decoded bounding box: for an AffineSystem, the
// per-axis graduation range; for Universe, the full float64 range per
// dimension.
func (cs CoordinateSystem) BoundingBox() (Position, Position) {
	dims := cs.Dimensions()
	low := make([]float64, dims)
	high := make([]float64, dims)

	if cs.isUniverse {
		for i := range low {
			low[i] = -math.MaxFloat64
			high[i] = math.MaxFloat64
		}
	} else {
		for i, a := range cs.axes {
			low[i] = a.graduation.Minimum
			high[i] = a.graduation.Maximum
		}
	}

	return PositionFromFloat64s(low), PositionFromFloat64s(high)
}

// Volume returns the product of cs's bounding-box side lengths, assuming
// an orthogonal basis (non-orthogonal bases are an explicit non-goal).
func (cs CoordinateSystem) Volume() float64 {
	low, high := cs.BoundingBox()
	volume := 1.0
	for i := 0; i < low.Dimensions(); i++ {
		volume *= high.At(i).Float64() - low.At(i).Float64()
	}
	return volume
}

// Rebase converts a Universe-frame decoded position into cs's own
// encoded coordinates.
func (cs CoordinateSystem) Rebase(p Position) (Position, error) {
	if cs.isUniverse {
		return AddPosition(cs.Origin(), p)
	}

	translated, err := SubPosition(p, cs.origin)
	if err != nil {
		return Position{}, err
	}

	rebased := make([]Coordinate, len(cs.axes))
	for i, a := range cs.axes {
		c, err := a.ProjectIn(translated)
		if err != nil {
			return Position{}, err
		}
		rebased[i] = c
	}
	return NewPosition(rebased), nil
}

// AbsolutePosition converts a position encoded in cs back into Universe
// decoded coordinates.
func (cs CoordinateSystem) AbsolutePosition(p Position) (Position, error) {
	if cs.isUniverse {
		return AddPosition(cs.Origin(), p)
	}

	if p.Dimensions() != len(cs.axes) {
		return Position{}, &ErrDimensionMismatch{Want: len(cs.axes), Got: p.Dimensions()}
	}

	rebased := cs.origin
	for i, a := range cs.axes {
		delta, err := a.ProjectOut(p.At(i))
		if err != nil {
			return Position{}, err
		}
		rebased, err = AddPosition(rebased, delta)
		if err != nil {
			return Position{}, err
		}
	}
	return rebased, nil
}

// Encode maps a decoded position, expressed in cs, to cs's encoded
// coordinates, applying each axis's Encode independently.
func (cs CoordinateSystem) Encode(position []float64) (Position, error) {
	if len(position) != cs.Dimensions() {
		return Position{}, &ErrDimensionMismatch{Want: cs.Dimensions(), Got: len(position)}
	}

	if cs.isUniverse {
		return PositionFromFloat64s(position), nil
	}

	encoded := make([]Coordinate, len(cs.axes))
	for i, a := range cs.axes {
		c, err := a.Encode(position[i])
		if err != nil {
			return Position{}, err
		}
		encoded[i] = c
	}
	return NewPosition(encoded), nil
}

// Decode maps an encoded position in cs back to decoded float64 values.
func (cs CoordinateSystem) Decode(p Position) ([]float64, error) {
	if p.Dimensions() != cs.Dimensions() {
		return nil, &ErrDimensionMismatch{Want: cs.Dimensions(), Got: p.Dimensions()}
	}

	if cs.isUniverse {
		return p.ToFloat64s(), nil
	}

	decoded := make([]float64, len(cs.axes))
	for i, a := range cs.axes {
		d, err := a.Decode(p.At(i))
		if err != nil {
			return nil, err
		}
		decoded[i] = d
	}
	return decoded, nil
}
