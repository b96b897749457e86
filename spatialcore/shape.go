package spatialcore

import "math"

// ShapeKind tags which geometric primitive a Shape holds.
type ShapeKind uint8

const (
	shapePoint ShapeKind = iota
	shapeBoundingBox
	shapeHyperSphere
)

// pointVolume is the volume reported for a Point shape: float64 machine
// epsilon (2^-52), a tiny positive value standing in for zero so that volume
// comparisons (e.g. resolution-level selection) never divide by zero.
const pointVolume = 2.220446049250313e-16 // float64 machine epsilon

// Shape is one of Point, BoundingBox, or HyperSphere. Its positions carry
// either encoded or decoded coordinates depending on context; callers
// must track which.
type Shape struct {
	kind ShapeKind

	point Position // shapePoint

	lo, hi Position // shapeBoundingBox

	center Position   // shapeHyperSphere
	radius Coordinate // shapeHyperSphere
}

// NewPointShape builds a Point shape.
func NewPointShape(p Position) Shape {
	return Shape{kind: shapePoint, point: p}
}

// NewBoundingBoxShape builds a BoundingBox shape. Fails if lo is not ≤ hi
// elementwise.
func NewBoundingBoxShape(lo, hi Position) (Shape, error) {
	ok, err := LessOrEqual(lo, hi)
	if err != nil {
		return Shape{}, err
	}
	if !ok {
		return Shape{}, ErrNoPartialOrder
	}
	return Shape{kind: shapeBoundingBox, lo: lo, hi: hi}, nil
}

// NewHyperSphereShape builds a HyperSphere shape.
func NewHyperSphereShape(center Position, radius Coordinate) Shape {
	return Shape{kind: shapeHyperSphere, center: center, radius: radius}
}

// Kind constants exposed for callers that need to switch on shape kind.
const (
	KindPoint       = shapePoint
	KindBoundingBox = shapeBoundingBox
	KindHyperSphere = shapeHyperSphere
)

// Kind returns which geometric primitive s holds.
func (s Shape) Kind() ShapeKind { return s.kind }

// Point returns s's position, valid only when s.Kind() == KindPoint.
func (s Shape) Point() Position { return s.point }

// Bounds returns s's stored (lo, hi), valid only when s.Kind() ==
// KindBoundingBox.
func (s Shape) Bounds() (Position, Position) { return s.lo, s.hi }

// Sphere returns s's stored (center, radius), valid only when s.Kind()
// == KindHyperSphere.
func (s Shape) Sphere() (Position, Coordinate) { return s.center, s.radius }

// Rebase transports s from one reference space to another. For
// HyperSphere, the radius is treated as a one-dimensional length and
// transported via an auxiliary round trip through Universe; this is
// exact only under uniform per-axis scaling (see DESIGN.md).
func (s Shape) Rebase(from, to *Space) (Shape, error) {
	switch s.kind {
	case shapePoint:
		p, err := ChangeBase(s.point, from, to)
		if err != nil {
			return Shape{}, err
		}
		return NewPointShape(p), nil

	case shapeHyperSphere:
		dims := s.center.Dimensions()
		rVec := make([]Coordinate, dims)
		for i := range rVec {
			rVec[i] = s.radius
		}
		absolute, err := from.AbsolutePosition(NewPosition(rVec))
		if err != nil {
			return Shape{}, err
		}
		rebasedVec, err := to.Rebase(absolute)
		if err != nil {
			return Shape{}, err
		}
		center, err := ChangeBase(s.center, from, to)
		if err != nil {
			return Shape{}, err
		}
		return NewHyperSphereShape(center, rebasedVec.At(0)), nil

	case shapeBoundingBox:
		lo, err := ChangeBase(s.lo, from, to)
		if err != nil {
			return Shape{}, err
		}
		hi, err := ChangeBase(s.hi, from, to)
		if err != nil {
			return Shape{}, err
		}
		return Shape{kind: shapeBoundingBox, lo: lo, hi: hi}, nil

	default:
		panic("spatialcore: unreachable shape kind")
	}
}

// Decode decodes every position of s, expressed as encoded coordinates in
// space, to decoded values.
func (s Shape) Decode(space *Space) (Shape, error) {
	switch s.kind {
	case shapePoint:
		d, err := space.Decode(s.point)
		if err != nil {
			return Shape{}, err
		}
		return NewPointShape(PositionFromFloat64s(d)), nil

	case shapeHyperSphere:
		d, err := space.Decode(s.center)
		if err != nil {
			return Shape{}, err
		}
		return NewHyperSphereShape(PositionFromFloat64s(d), s.radius), nil

	case shapeBoundingBox:
		dlo, err := space.Decode(s.lo)
		if err != nil {
			return Shape{}, err
		}
		dhi, err := space.Decode(s.hi)
		if err != nil {
			return Shape{}, err
		}
		return Shape{kind: shapeBoundingBox, lo: PositionFromFloat64s(dlo), hi: PositionFromFloat64s(dhi)}, nil

	default:
		panic("spatialcore: unreachable shape kind")
	}
}

// Encode encodes every position of s, expressed as decoded values in
// space, to space's encoded coordinates.
func (s Shape) Encode(space *Space) (Shape, error) {
	switch s.kind {
	case shapePoint:
		e, err := space.Encode(s.point.ToFloat64s())
		if err != nil {
			return Shape{}, err
		}
		return NewPointShape(e), nil

	case shapeHyperSphere:
		e, err := space.Encode(s.center.ToFloat64s())
		if err != nil {
			return Shape{}, err
		}
		return NewHyperSphereShape(e, s.radius), nil

	case shapeBoundingBox:
		elo, err := space.Encode(s.lo.ToFloat64s())
		if err != nil {
			return Shape{}, err
		}
		ehi, err := space.Encode(s.hi.ToFloat64s())
		if err != nil {
			return Shape{}, err
		}
		return Shape{kind: shapeBoundingBox, lo: elo, hi: ehi}, nil

	default:
		panic("spatialcore: unreachable shape kind")
	}
}

// GetMBB returns s's minimum axis-aligned bounding box.
func (s Shape) GetMBB() (Position, Position) {
	switch s.kind {
	case shapePoint:
		return s.point, s.point
	case shapeHyperSphere:
		dims := s.center.Dimensions()
		rVec := make([]Coordinate, dims)
		for i := range rVec {
			rVec[i] = s.radius
		}
		r := NewPosition(rVec)
		lo, _ := SubPosition(s.center, r)
		hi, _ := AddPosition(s.center, r)
		return lo, hi
	case shapeBoundingBox:
		return s.lo, s.hi
	default:
		panic("spatialcore: unreachable shape kind")
	}
}

// Contains reports whether s overlaps position p.
func (s Shape) Contains(p Position) (bool, error) {
	switch s.kind {
	case shapePoint:
		return EqualPosition(s.point, p), nil
	case shapeHyperSphere:
		diff, err := SubPosition(p, s.center)
		if err != nil {
			return false, err
		}
		return diff.Norm() <= s.radius.Float64(), nil
	case shapeBoundingBox:
		okLo, err := LessOrEqual(s.lo, p)
		if err != nil {
			return false, err
		}
		okHi, err := LessOrEqual(p, s.hi)
		if err != nil {
			return false, err
		}
		return okLo && okHi, nil
	default:
		panic("spatialcore: unreachable shape kind")
	}
}

// shapeGen enumerates the integer lattice points in [lower, higher) by
// odometer traversal: the last axis increments fastest, carrying into
// earlier axes on overflow. Ported from the Perl prototype this algorithm
// traces back to (see original_source for the reference listing).
func shapeGen(lower, higher Position) []Position {
	dims := lower.Dimensions()
	lowerTicks := make([]uint64, dims)
	for i := 0; i < dims; i++ {
		lowerTicks[i] = lower.At(i).Uint64()
	}

	current := make([]uint64, dims)
	copy(current, lowerTicks)

	var results []Position
	results = append(results, PositionFromUint64s(append([]uint64(nil), current...)))

	next := func() bool {
		for i := dims - 1; i >= 0; i-- {
			current[i]++
			if current[i] >= higher.At(i).Uint64() {
				current[i] = lowerTicks[i]
				// carry into the next axis to the left
			} else {
				return true
			}
		}
		return false
	}

	for next() {
		results = append(results, PositionFromUint64s(append([]uint64(nil), current...)))
	}

	return results
}

// Rasterise enumerates the integer lattice points approximating s: the
// MBB's lattice for BoundingBox, the same lattice filtered by radius for
// HyperSphere, and the single point itself for Point.
func (s Shape) Rasterise() ([]Position, error) {
	switch s.kind {
	case shapePoint:
		return []Position{s.point}, nil

	case shapeHyperSphere:
		lo, hi := s.GetMBB()
		radius := s.radius.Float64()
		points := shapeGen(lo, hi)
		out := points[:0]
		for _, p := range points {
			diff, err := SubPosition(p, s.center)
			if err != nil {
				return nil, err
			}
			if diff.Norm() <= radius {
				out = append(out, p)
			}
		}
		return out, nil

	case shapeBoundingBox:
		return shapeGen(s.lo, s.hi), nil

	default:
		panic("spatialcore: unreachable shape kind")
	}
}

// RasteriseFrom rasterises s and converts every resulting lattice point
// to an absolute Universe position via space.
func (s Shape) RasteriseFrom(space *Space) ([]Position, error) {
	points, err := s.Rasterise()
	if err != nil {
		return nil, err
	}
	out := make([]Position, 0, len(points))
	for _, p := range points {
		abs, err := space.AbsolutePosition(p)
		if err != nil {
			continue // should be impossible for a well-formed space; skip defensively
		}
		out = append(out, abs)
	}
	return out, nil
}

// Volume returns s's volume: float64 machine epsilon for a Point, the product of side lengths for a BoundingBox, and the
// k-sphere formula for a HyperSphere.
func (s Shape) Volume() float64 {
	switch s.kind {
	case shapePoint:
		return pointVolume

	case shapeBoundingBox:
		volume := 1.0
		for i := 0; i < s.lo.Dimensions(); i++ {
			l := s.lo.At(i).Float64()
			h := s.hi.At(i).Float64()
			length := h - l
			if length < 0 {
				length = l - h
			}
			volume *= length
		}
		return volume

	case shapeHyperSphere:
		k := s.center.Dimensions()
		radius := s.radius.Float64()

		pi := math.Pi
		factor := 2.0 * pi

		a := 2.0
		i := 1
		if k%2 == 0 {
			a = pi
			i = 2
		}

		for i < k {
			i += 2
			a *= factor
			a /= float64(i)
		}

		return a * math.Pow(radius, float64(i))

	default:
		panic("spatialcore: unreachable shape kind")
	}
}
