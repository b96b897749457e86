package spatialcore

// SpaceSetObject is a build-time intermediate: an encoded position in a
// reference space, tagged with the offset of its Properties entry in the
// owning Core's table (stored as a Coordinate so that it round-trips
// through the same dedup/SFC machinery as real encoded positions).
type SpaceSetObject struct {
	spaceID  string
	position Position
	value    Coordinate
}

// NewSpaceSetObject builds a SpaceSetObject. position is expected to
// already be encoded in the named reference space.
func NewSpaceSetObject(spaceID string, position Position, value Coordinate) SpaceSetObject {
	return SpaceSetObject{spaceID: spaceID, position: position, value: value}
}

// SpaceID returns the name of the reference space this object's position
// is encoded in.
func (o SpaceSetObject) SpaceID() string { return o.spaceID }

// Position returns the object's encoded position.
func (o SpaceSetObject) Position() Position { return o.position }

// Value returns the object's properties-table offset.
func (o SpaceSetObject) Value() Coordinate { return o.value }

// WithValue returns a copy of o with its value replaced.
func (o SpaceSetObject) WithValue(value Coordinate) SpaceSetObject {
	o.value = value
	return o
}

// WithPosition returns a copy of o with its position replaced.
func (o SpaceSetObject) WithPosition(position Position) SpaceSetObject {
	o.position = position
	return o
}
