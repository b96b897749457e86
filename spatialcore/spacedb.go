package spatialcore

import "sort"

// maxAutomaticShift bounds the automatic-construction loop: 64-bit
// encoded coordinates cannot usefully be right-shifted much past this.
const maxAutomaticShift = 31

// defaultMaxElements is the automatic-construction stopping ceiling used
// when the caller passes a maxElements of zero or less.
const defaultMaxElements = 2000

// Scale is a per-axis precision-reduction shift, one entry per
// dimension.
type Scale []uint32

func (s Scale) sum() uint64 {
	var total uint64
	for _, v := range s {
		total += uint64(v)
	}
	return total
}

func (s Scale) max() uint32 {
	var m uint32
	for _, v := range s {
		if v > m {
			m = v
		}
	}
	return m
}

// geElementwise reports whether every element of s is ≥ the
// corresponding element of other.
func (s Scale) geElementwise(other Scale) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] < other[i] {
			return false
		}
	}
	return true
}

// SpaceDB is the resolution pyramid for one (core, space) pair: an
// ordered list of SpatialIndex levels, sorted ascending by threshold
// volume (index 0 is highest resolution, the last index lowest).
type SpaceDB struct {
	referenceSpace string
	// values maps a level's compacted local value offset back to the
	// owning Core's properties-table offset: within one SpaceDB, only a
	// subset of the Core's identifiers appears, so positions are stored
	// against this shorter local table instead of the full one.
	values      []uint64
	resolutions []*SpatialIndex
}

// Name returns the reference space this pyramid indexes.
func (db *SpaceDB) Name() string { return db.referenceSpace }

// IsEmpty reports whether this pyramid indexes zero objects.
func (db *SpaceDB) IsEmpty() bool { return len(db.values) == 0 }

// HighestResolution returns the index of the finest-grained level.
func (db *SpaceDB) HighestResolution() int { return 0 }

// LowestResolution returns the index of the coarsest-grained level.
func (db *SpaceDB) LowestResolution() int { return len(db.resolutions) - 1 }

func compactValues(objects []SpaceSetObject) ([]uint64, []SpaceSetObject) {
	seen := make(map[uint64]struct{})
	for _, o := range objects {
		seen[o.Value().Uint64()] = struct{}{}
	}
	values := make([]uint64, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	localOf := make(map[uint64]uint64, len(values))
	for i, v := range values {
		localOf[v] = uint64(i)
	}

	remapped := make([]SpaceSetObject, len(objects))
	for i, o := range objects {
		remapped[i] = o.WithValue(CoordinateFromUint64(localOf[o.Value().Uint64()]))
	}

	return values, remapped
}

// dedupeByHash keeps one representative object per (position, value)
// collision, as positions lose precision going down the pyramid.
func dedupeByHash(objects []SpaceSetObject) []SpaceSetObject {
	type key struct {
		pos uint64
		val uint64
	}
	seen := make(map[key]struct{}, len(objects))
	out := objects[:0]
	for _, o := range objects {
		k := key{pos: o.Position().Hash(), val: o.Value().Uint64()}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, o)
	}
	return out
}

type pyramidLevel struct {
	shift   uint32
	objects []SpaceSetObject
}

// NewSpaceDBExplicit builds a SpaceDB using an explicit set of per-axis
// scales: one level per distinct scale, sorted ascending, each built by
// reducing precision by the incremental shift since the previous level
// and deduplicating.
func NewSpaceDBExplicit(space *Space, objects []SpaceSetObject, scales []Scale) (*SpaceDB, error) {
	values, remapped := compactValues(objects)

	uniqueScales := dedupeScales(scales)
	sort.Slice(uniqueScales, func(i, j int) bool { return uniqueScales[i].sum() < uniqueScales[j].sum() })

	var levels []pyramidLevel
	previousShift := uint32(0)
	current := remapped

	for i, s := range uniqueScales {
		shift := s.max()
		if i == 0 {
			current = reducePrecisionAll(current, shift)
		} else {
			current = reducePrecisionAll(current, shift-previousShift)
		}
		current = dedupeByHash(current)
		levels = append(levels, pyramidLevel{shift: shift, objects: current})
		previousShift = shift
	}

	return buildFromLevels(space, values, levels)
}

// NewSpaceDBAuto builds a SpaceDB automatically: a full-resolution level
// at shift 0, then progressively coarser levels, materialising one only
// when its cardinality drops to at most half of the previous materialised
// level's, stopping once cardinality falls to at most
// max(maxElements, propertiesCount) or the shift reaches 31.
func NewSpaceDBAuto(space *Space, objects []SpaceSetObject, maxElements, propertiesCount int) (*SpaceDB, error) {
	values, remapped := compactValues(objects)

	if maxElements <= 0 {
		maxElements = defaultMaxElements
	}
	stopAt := maxElements
	if propertiesCount > stopAt {
		stopAt = propertiesCount
	}

	full := dedupeByHash(append([]SpaceSetObject(nil), remapped...))
	levels := []pyramidLevel{{shift: 0, objects: full}}
	previousCardinality := len(full)

	for shift := uint32(1); shift <= maxAutomaticShift && previousCardinality > stopAt; shift++ {
		reduced := reducePrecisionAll(remapped, shift)
		reduced = dedupeByHash(reduced)

		if len(reduced) <= previousCardinality/2 {
			levels = append(levels, pyramidLevel{shift: shift, objects: reduced})
			previousCardinality = len(reduced)
		}
	}

	return buildFromLevels(space, values, levels)
}

func reducePrecisionAll(objects []SpaceSetObject, shift uint32) []SpaceSetObject {
	out := make([]SpaceSetObject, len(objects))
	for i, o := range objects {
		out[i] = o.WithPosition(o.Position().ReducePrecision(uint(shift)))
	}
	return out
}

func dedupeScales(scales []Scale) []Scale {
	seen := make(map[uint64]struct{}, len(scales))
	out := make([]Scale, 0, len(scales))
	for _, s := range scales {
		k := s.sum()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

func buildFromLevels(space *Space, values []uint64, levels []pyramidLevel) (*SpaceDB, error) {
	if len(levels) == 0 {
		idx, err := NewSpatialIndex(0, Scale{0, 0, 0}, nil)
		if err != nil {
			return nil, err
		}
		return &SpaceDB{referenceSpace: space.Name(), values: values, resolutions: []*SpatialIndex{idx}}, nil
	}

	var maxShift uint32
	for _, l := range levels {
		if l.shift > maxShift {
			maxShift = l.shift
		}
	}

	volume := space.Volume()
	dims := space.System().Dimensions()

	resolutions := make([]*SpatialIndex, len(levels))
	for i, l := range levels {
		threshold := volume / pow2(maxShift-l.shift)
		scale := make(Scale, dims)
		for k := range scale {
			scale[k] = l.shift
		}
		idx, err := NewSpatialIndex(threshold, scale, l.objects)
		if err != nil {
			return nil, err
		}
		resolutions[i] = idx
	}

	sort.Slice(resolutions, func(i, j int) bool { return resolutions[i].Threshold() < resolutions[j].Threshold() })

	return &SpaceDB{referenceSpace: space.Name(), values: values, resolutions: resolutions}, nil
}

func pow2(shift uint32) float64 {
	result := 1.0
	for i := uint32(0); i < shift; i++ {
		result *= 2
	}
	return result
}

// QueryParams selects which resolution level a SpaceDB query uses, and
// optionally clips results by a viewport already expressed (and encoded)
// in the SpaceDB's own reference space.
type QueryParams struct {
	ThresholdVolume *float64
	Resolution      Scale
	Viewport        *Shape
}

// SelectResolution implements §4.4's resolution selection rule: an
// explicit Resolution picks the first level whose scale is elementwise
// ≥ the request; a ThresholdVolume picks the first level whose threshold
// is ≥ the request; absent both, the lowest-resolution level is used.
// Falling through without a match (for an explicit Resolution) warns and
// falls back to the lowest-resolution level too.
func (db *SpaceDB) SelectResolution(params QueryParams) int {
	if params.Resolution != nil {
		for i, r := range db.resolutions {
			if Scale(r.Scale()).geElementwise(params.Resolution) {
				return i
			}
		}
		logger.Warnw("no resolution level satisfies requested scale, falling back to lowest resolution",
			"space", db.referenceSpace, "requested_scale", params.Resolution)
		return db.LowestResolution()
	}

	if params.ThresholdVolume != nil {
		for i, r := range db.resolutions {
			if r.Threshold() >= *params.ThresholdVolume {
				return i
			}
		}
		return db.LowestResolution()
	}

	return db.LowestResolution()
}

func (db *SpaceDB) decode(objects []SpaceSetObject) []SpaceSetObject {
	out := make([]SpaceSetObject, len(objects))
	for i, o := range objects {
		out[i] = o.WithValue(CoordinateFromUint64(db.values[o.Value().Uint64()]))
	}
	return out
}

func (db *SpaceDB) filterByViewport(objects []SpaceSetObject, viewport *Shape) ([]SpaceSetObject, error) {
	if viewport == nil {
		return objects, nil
	}
	out := objects[:0]
	for _, o := range objects {
		ok, err := viewport.Contains(o.Position())
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, o)
		}
	}
	return out, nil
}

// GetByID returns every object carrying the Core-level properties offset
// id, at the level selected by params.
func (db *SpaceDB) GetByID(id uint64, params QueryParams) ([]SpaceSetObject, error) {
	offset := sort.Search(len(db.values), func(i int) bool { return db.values[i] >= id })
	if offset == len(db.values) || db.values[offset] != id {
		return nil, nil
	}

	level := db.resolutions[db.SelectResolution(params)]
	results := level.FindByValue(db.referenceSpace, uint64(offset))

	filtered, err := db.filterByViewport(results, params.Viewport)
	if err != nil {
		return nil, err
	}

	out := make([]SpaceSetObject, len(filtered))
	for i, o := range filtered {
		out[i] = o.WithValue(CoordinateFromUint64(id))
	}
	return out, nil
}

// GetByPositions returns every object found at any of positions, at the
// level selected by params.
func (db *SpaceDB) GetByPositions(positions []Position, params QueryParams) ([]SpaceSetObject, error) {
	level := db.resolutions[db.SelectResolution(params)]

	var results []SpaceSetObject
	for _, p := range positions {
		results = append(results, level.Find(p)...)
	}

	return db.decode(results), nil
}

// GetByShape dispatches a shape query to the level selected by params,
// clipped by shape's own viewport argument.
func (db *SpaceDB) GetByShape(shape Shape, viewport *Shape, params QueryParams) ([]SpaceSetObject, error) {
	level := db.resolutions[db.SelectResolution(params)]

	results, err := level.FindByShape(shape, viewport)
	if err != nil {
		return nil, err
	}

	return db.decode(results), nil
}
