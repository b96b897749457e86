package spatialcore

import "github.com/tidemark-gis/spatialcore/internal/sfcindex"

// SpatialIndex wraps one black-box SFC index (internal/sfcindex) together
// with the build-time threshold volume and per-axis scale that earned it
// a slot in a SpaceDB's resolution pyramid.
type SpatialIndex struct {
	thresholdVolume float64
	scale           []uint32
	index           *sfcindex.Index
}

// NewSpatialIndex builds a SpatialIndex over objects, all of which must
// already be encoded in the same reference space and dimensionality.
func NewSpatialIndex(thresholdVolume float64, scale []uint32, objects []SpaceSetObject) (*SpatialIndex, error) {
	dims := DimensionK
	if len(objects) > 0 {
		dims = objects[0].Position().Dimensions()
	}

	records := make([]sfcindex.Record, len(objects))
	for i, o := range objects {
		records[i] = sfcindex.Record{
			Key: sfcindex.Key(o.Position().ToUint64s()),
			Fields: sfcindex.Fields{
				SpaceID:     o.SpaceID(),
				ValueOffset: o.Value().Uint64(),
			},
		}
	}

	idx, err := sfcindex.New(dims, records)
	if err != nil {
		return nil, err
	}

	return &SpatialIndex{thresholdVolume: thresholdVolume, scale: scale, index: idx}, nil
}

// Threshold returns the volume threshold this level was assigned.
func (si *SpatialIndex) Threshold() float64 { return si.thresholdVolume }

// Scale returns this level's per-axis precision-reduction shift.
func (si *SpatialIndex) Scale() []uint32 { return si.scale }

// Len returns the number of objects indexed at this level.
func (si *SpatialIndex) Len() int { return si.index.Len() }

func recordToObject(r sfcindex.Record) SpaceSetObject {
	return NewSpaceSetObject(r.Fields.SpaceID, PositionFromUint64s(r.Key), CoordinateFromUint64(r.Fields.ValueOffset))
}

// Find returns every object stored exactly at key.
func (si *SpatialIndex) Find(key Position) []SpaceSetObject {
	records := si.index.Find(sfcindex.Key(key.ToUint64s()))
	out := make([]SpaceSetObject, len(records))
	for i, r := range records {
		out[i] = recordToObject(r)
	}
	return out
}

func (si *SpatialIndex) findRange(lo, hi Position) []SpaceSetObject {
	records := si.index.FindRange(sfcindex.Key(lo.ToUint64s()), sfcindex.Key(hi.ToUint64s()))
	out := make([]SpaceSetObject, len(records))
	for i, r := range records {
		out[i] = recordToObject(r)
	}
	return out
}

// FindByValue returns every object carrying the given (space, value
// offset) pair.
func (si *SpatialIndex) FindByValue(spaceID string, valueOffset uint64) []SpaceSetObject {
	records := si.index.FindByValue(sfcindex.Fields{SpaceID: spaceID, ValueOffset: valueOffset})
	out := make([]SpaceSetObject, len(records))
	for i, r := range records {
		out[i] = recordToObject(r)
	}
	return out
}

// FindByShape dispatches an encoded-coordinate shape query, optionally
// clipped by an encoded-coordinate viewport:
//
//   - Point: if viewport excludes the point, fails with
//     *ErrOutOfViewport; else exact match.
//   - BoundingBox: if viewport is set it must be a BoundingBox; the two
//     boxes are intersected and *ErrEmptyIntersection* is returned if the
//     intersection's upper corner lies at or below its lower corner on
//     every axis (and the corners differ); otherwise a range query over
//     the intersection, which yields no results when the boxes are
//     disjoint on only some axes.
//   - HyperSphere: as BoundingBox over the sphere's MBB, with an
//     additional post-filter by radius.
func (si *SpatialIndex) FindByShape(shape Shape, viewport *Shape) ([]SpaceSetObject, error) {
	switch shape.Kind() {
	case KindPoint:
		p := shape.Point()
		if viewport != nil {
			ok, err := viewport.Contains(p)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, &ErrOutOfViewport{}
			}
		}
		return si.Find(p), nil

	case KindBoundingBox:
		bl, bh := shape.Bounds()
		lo, hi := bl, bh
		if viewport != nil {
			if viewport.Kind() != KindBoundingBox {
				return nil, &ErrInvalidViewport{Detail: "viewport must be a bounding box"}
			}
			vl, vh := viewport.Bounds()
			var err error
			lo, err = MaxPosition(bl, vl)
			if err != nil {
				return nil, err
			}
			hi, err = MinPosition(bh, vh)
			if err != nil {
				return nil, err
			}
			less, err := LessOrEqual(hi, lo)
			if err != nil {
				return nil, err
			}
			if less && !EqualPosition(hi, lo) {
				return nil, &ErrEmptyIntersection{}
			}
		}
		return si.findRange(lo, hi), nil

	case KindHyperSphere:
		center, radius := shape.Sphere()
		bl, bh := shape.GetMBB()
		lo, hi := bl, bh
		if viewport != nil {
			if viewport.Kind() != KindBoundingBox {
				return nil, &ErrInvalidViewport{Detail: "viewport must be a bounding box"}
			}
			vl, vh := viewport.Bounds()
			var err error
			lo, err = MaxPosition(bl, vl)
			if err != nil {
				return nil, err
			}
			hi, err = MinPosition(bh, vh)
			if err != nil {
				return nil, err
			}
			less, err := LessOrEqual(hi, lo)
			if err != nil {
				return nil, err
			}
			if less && !EqualPosition(hi, lo) {
				return nil, &ErrEmptyIntersection{}
			}
		}

		candidates := si.findRange(lo, hi)
		out := candidates[:0]
		for _, c := range candidates {
			diff, err := SubPosition(c.Position(), center)
			if err != nil {
				return nil, err
			}
			if diff.Norm() <= radius.Float64() {
				out = append(out, c)
			}
		}
		return out, nil

	default:
		panic("spatialcore: unreachable shape kind")
	}
}
