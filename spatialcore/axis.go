package spatialcore

import "fmt"

// NumberSet names the set of numbers a Graduation's encoded ticks are
// drawn from.
type NumberSet int

const (
	NumberSetN NumberSet = iota
	NumberSetZ
	NumberSetQ
	NumberSetR
)

// String renders the NumberSet. NumberSetZ deliberately renders as "R",
// preserving a round-trip quirk present in the original serializer this
// module is ported from; see DESIGN.md for why it is kept rather than
// fixed.
func (s NumberSet) String() string {
	switch s {
	case NumberSetN:
		return "N"
	case NumberSetZ:
		return "R"
	case NumberSetQ:
		return "Q"
	case NumberSetR:
		return "R"
	default:
		return "R"
	}
}

// ParseNumberSet parses the canonical single-letter NumberSet spelling.
// Note it is not the inverse of String for NumberSetZ, whose String()
// renders "R"; ParseNumberSet("R") always yields NumberSetR.
func ParseNumberSet(s string) (NumberSet, error) {
	switch s {
	case "N":
		return NumberSetN, nil
	case "Z":
		return NumberSetZ, nil
	case "Q":
		return NumberSetQ, nil
	case "R":
		return NumberSetR, nil
	default:
		return 0, fmt.Errorf("spatialcore: invalid number set %q, expected N, Z, Q, or R", s)
	}
}

// unitFactors maps the SI length-unit prefixes an Axis may declare to
// their metres-per-unit scaling factor.
var unitFactors = map[string]float64{
	"m":  1,
	"dm": 1e-1,
	"cm": 1e-2,
	"mm": 1e-3,
	"µm": 1e-6,
	"um": 1e-6,
	"nm": 1e-9,
	"pm": 1e-12,
}

// UnitFactor returns the metres-per-unit scaling factor for a measurement
// unit name recognised by Axis.
func UnitFactor(unit string) (float64, error) {
	f, ok := unitFactors[unit]
	if !ok {
		return 0, fmt.Errorf("spatialcore: unknown measurement unit %q", unit)
	}
	return f, nil
}

// Graduation describes how an Axis's continuous range is discretized:
// Steps equal-width ticks spanning [Minimum, Maximum], each Epsilon wide.
type Graduation struct {
	Set     NumberSet
	Minimum float64
	Maximum float64
	Steps   uint64
	Epsilon float64
}

// NewGraduation validates and builds a Graduation, deriving Epsilon.
func NewGraduation(set NumberSet, minimum, maximum float64, steps uint64) (Graduation, error) {
	if steps == 0 {
		return Graduation{}, fmt.Errorf("spatialcore: graduation steps must be > 0")
	}
	if !(minimum < maximum) {
		return Graduation{}, fmt.Errorf("spatialcore: graduation minimum %v must be < maximum %v", minimum, maximum)
	}
	return Graduation{
		Set:     set,
		Minimum: minimum,
		Maximum: maximum,
		Steps:   steps,
		Epsilon: (maximum - minimum) / float64(steps),
	}, nil
}

// Axis defines one dimension of an affine coordinate system: a unit
// direction in the Universe frame, a measurement unit, and a graduation.
type Axis struct {
	measurementUnit string
	unitFactor      float64
	graduation      Graduation
	unitVector      Position
}

// NewAxis builds an Axis. unitVector is normalized to unit length.
func NewAxis(unit string, unitVector []float64, set NumberSet, minimum, maximum float64, steps uint64) (Axis, error) {
	factor, err := UnitFactor(unit)
	if err != nil {
		return Axis{}, err
	}

	graduation, err := NewGraduation(set, minimum, maximum, steps)
	if err != nil {
		return Axis{}, err
	}

	uv := PositionFromFloat64s(unitVector).Unit()

	return Axis{
		measurementUnit: unit,
		unitFactor:      factor,
		graduation:      graduation,
		unitVector:      uv,
	}, nil
}

// MeasurementUnit returns the axis's declared SI length-unit prefix.
func (a Axis) MeasurementUnit() string { return a.measurementUnit }

// UnitVector returns the axis's unit direction in the Universe frame.
func (a Axis) UnitVector() Position { return a.unitVector }

// Graduation returns the axis's graduation.
func (a Axis) Graduation() Graduation { return a.graduation }

// Encode maps a decoded value on this axis to its encoded Coordinate.
// Fails with *ErrOutOfRange if v is outside [min, max].
func (a Axis) Encode(v float64) (Coordinate, error) {
	g := a.graduation
	if v < g.Minimum || v > g.Maximum {
		return Coordinate{}, &ErrOutOfRange{Value: v, Min: g.Minimum, Max: g.Maximum}
	}
	tick := uint64((v - g.Minimum) / g.Epsilon)
	return CoordinateFromUint64(tick), nil
}

// Decode maps an encoded Coordinate on this axis back to its decoded
// value. Fails with *ErrOutOfRange if the decoded value falls outside
// [min, max] (this can happen for an encoded value beyond Steps).
func (a Axis) Decode(c Coordinate) (float64, error) {
	g := a.graduation
	d := c.Float64()*g.Epsilon + g.Minimum
	if d < g.Minimum || d > g.Maximum {
		return 0, &ErrOutOfRange{Value: d, Min: g.Minimum, Max: g.Maximum}
	}
	return d, nil
}

// ProjectIn projects a Universe-relative position onto this axis and
// encodes it. The projected scalar is silently clipped to [min, max]
// before encoding: projection from ambient space routinely produces
// marginally out-of-range values, and failing the whole rebase over that
// would be more disruptive than clamping it.
func (a Axis) ProjectIn(p Position) (Coordinate, error) {
	dot, err := DotProduct(p, a.unitVector)
	if err != nil {
		return Coordinate{}, err
	}
	d := dot / a.unitFactor

	g := a.graduation
	if d > g.Maximum {
		d = g.Maximum
	} else if d < g.Minimum {
		d = g.Minimum
	}

	return a.Encode(d)
}

// ProjectOut converts an encoded Coordinate on this axis back into a
// Universe-frame displacement along the axis's unit vector.
func (a Axis) ProjectOut(c Coordinate) (Position, error) {
	d, err := a.Decode(c)
	if err != nil {
		return Position{}, err
	}
	return a.unitVector.MulScalar(d * a.unitFactor), nil
}
