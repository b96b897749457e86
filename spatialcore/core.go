package spatialcore

import "sort"

// SpaceObject is one query result: a position (already decoded, and
// rebased into the configured output space if any) tagged with the
// Properties entry it resolved to.
type SpaceObject struct {
	SpaceID  string
	Position Position
	Value    Properties
}

// CoreBuildOptions controls how Core builds each reference space's
// SpaceDB pyramid.
type CoreBuildOptions struct {
	// MaxElements bounds automatic pyramid construction (see
	// NewSpaceDBAuto). Zero uses the package default.
	MaxElements int
	// ExplicitScales, keyed by reference-space name, switches that
	// space's pyramid to explicit-scale construction instead of
	// automatic.
	ExplicitScales map[string][]Scale
}

// Core is one dataset: an identifiers table and one resolution pyramid
// per reference space the dataset uses.
type Core struct {
	title      string
	version    string
	properties []Properties
	spaceDBs   []*SpaceDB
}

// NewCore builds a Core. objects carry decoded (not yet encoded)
// positions, each tagged with the name of the reference space it was
// captured in and the offset of its Properties entry in properties.
// properties must already be sorted by ID to support the binary search
// GetByID and GetByLabel rely on.
func NewCore(title, version string, spaces []*Space, properties []Properties, objects []SpaceSetObject, opts CoreBuildOptions) (*Core, error) {
	spaceDBs := make([]*SpaceDB, 0, len(spaces))

	for _, space := range spaces {
		var filtered []SpaceSetObject
		for _, o := range objects {
			if o.SpaceID() != space.Name() {
				continue
			}
			encoded, err := space.Encode(o.Position().ToFloat64s())
			if err != nil {
				return nil, err
			}
			filtered = append(filtered, NewSpaceSetObject(space.Name(), encoded, o.Value()))
		}

		var (
			db  *SpaceDB
			err error
		)
		if scales, ok := opts.ExplicitScales[space.Name()]; ok && len(scales) > 0 {
			db, err = NewSpaceDBExplicit(space, filtered, scales)
		} else {
			db, err = NewSpaceDBAuto(space, filtered, opts.MaxElements, len(properties))
		}
		if err != nil {
			return nil, err
		}
		spaceDBs = append(spaceDBs, db)
	}

	return &Core{title: title, version: version, properties: properties, spaceDBs: spaceDBs}, nil
}

// Name returns the core's title.
func (c *Core) Name() string { return c.title }

// Version returns the core's declared version string.
func (c *Core) Version() string { return c.version }

// Keys returns the core's properties table.
func (c *Core) Keys() []Properties { return c.properties }

// IsEmpty reports whether spaceID's pyramid (if any) holds no objects.
// A space the core never indexed also counts as empty.
func (c *Core) IsEmpty(spaceID string) bool {
	for _, db := range c.spaceDBs {
		if db.Name() == spaceID {
			return db.IsEmpty()
		}
	}
	return true
}

func (c *Core) propertiesOffset(id string) (int, bool) {
	i := sort.Search(len(c.properties), func(i int) bool { return c.properties[i].ID() >= id })
	if i < len(c.properties) && c.properties[i].ID() == id {
		return i, true
	}
	return 0, false
}

func (c *Core) toSpaceObjects(spaceID string, objects []SpaceSetObject) []SpaceObject {
	out := make([]SpaceObject, len(objects))
	for i, o := range objects {
		out[i] = SpaceObject{
			SpaceID:  spaceID,
			Position: o.Position(),
			Value:    c.properties[o.Value().Uint64()],
		}
	}
	return out
}

// CoreQueryParameters configures every Core query: the catalog to
// resolve space names against, an optional output space to rebase
// results into, and the usual resolution-selection knobs.
type CoreQueryParameters struct {
	Database        *Database
	OutputSpace     *string
	ThresholdVolume *float64
	Resolution      Scale
	// Viewport, if set, is given in decoded Universe coordinates and
	// must be a BoundingBox.
	Viewport *Shape
}

func (params *CoreQueryParameters) queryParams() QueryParams {
	return QueryParams{ThresholdVolume: params.ThresholdVolume, Resolution: params.Resolution}
}

func decodePositions(list []SpaceObject, space *Space, db *Database, outputSpace *string) error {
	if outputSpace != nil {
		unified, err := db.Space(*outputSpace)
		if err != nil {
			return err
		}
		for i := range list {
			rebased, err := ChangeBase(list[i].Position, space, unified)
			if err != nil {
				return err
			}
			decoded, err := unified.Decode(rebased)
			if err != nil {
				return err
			}
			list[i].Position = PositionFromFloat64s(decoded)
			list[i].SpaceID = *outputSpace
		}
		return nil
	}

	for i := range list {
		decoded, err := space.Decode(list[i].Position)
		if err != nil {
			return err
		}
		list[i].Position = PositionFromFloat64s(decoded)
	}
	return nil
}

// viewportInSpace transports a decoded-Universe viewport into target's
// encoded coordinates; returns (nil, nil) if no viewport is configured.
func viewportInSpace(viewport *Shape, target *Space) (*Shape, error) {
	if viewport == nil {
		return nil, nil
	}
	encoded, err := viewport.Encode(UniverseSpace())
	if err != nil {
		return nil, err
	}
	rebased, err := encoded.Rebase(UniverseSpace(), target)
	if err != nil {
		return nil, err
	}
	return &rebased, nil
}

// GetByPositions returns every object located at any of positions
// (expressed as decoded values in the from space), across every
// reference space this core indexes.
func (c *Core) GetByPositions(params *CoreQueryParameters, positions []Position, from string) ([]SpaceObject, error) {
	fromSpace, err := params.Database.Space(from)
	if err != nil {
		return nil, err
	}

	var results []SpaceObject
	for _, db := range c.spaceDBs {
		toSpace, err := params.Database.Space(db.Name())
		if err != nil {
			return nil, err
		}

		encoded := make([]Position, 0, len(positions))
		for _, p := range positions {
			encodedFrom, err := fromSpace.Encode(p.ToFloat64s())
			if err != nil {
				return nil, err
			}
			encodedTo, err := ChangeBase(encodedFrom, fromSpace, toSpace)
			if err != nil {
				return nil, err
			}
			encoded = append(encoded, encodedTo)
		}

		qp := params.queryParams()
		found, err := db.GetByPositions(encoded, qp)
		if err != nil {
			return nil, err
		}

		objects := c.toSpaceObjects(db.Name(), found)
		if err := decodePositions(objects, toSpace, params.Database, params.OutputSpace); err != nil {
			return nil, err
		}
		results = append(results, objects...)
	}

	return results, nil
}

// GetByShape returns every object inside shape (decoded values, in the
// named reference space), across every reference space this core
// indexes.
func (c *Core) GetByShape(params *CoreQueryParameters, shape Shape, spaceID string) ([]SpaceObject, error) {
	shapeSpace, err := params.Database.Space(spaceID)
	if err != nil {
		return nil, err
	}

	var results []SpaceObject
	for _, db := range c.spaceDBs {
		toSpace, err := params.Database.Space(db.Name())
		if err != nil {
			return nil, err
		}

		encodedShape, err := shape.Encode(shapeSpace)
		if err != nil {
			return nil, err
		}
		currentShape, err := encodedShape.Rebase(shapeSpace, toSpace)
		if err != nil {
			return nil, err
		}

		viewport, err := viewportInSpace(params.Viewport, toSpace)
		if err != nil {
			// The viewport excludes this space entirely; contribute no
			// results for it rather than failing the whole query.
			continue
		}

		found, err := db.GetByShape(currentShape, viewport, params.queryParams())
		if err != nil {
			return nil, err
		}

		objects := c.toSpaceObjects(db.Name(), found)
		if err := decodePositions(objects, toSpace, params.Database, params.OutputSpace); err != nil {
			return nil, err
		}
		results = append(results, objects...)
	}

	return results, nil
}

// GetByID returns every position tagged with identifier id, across every
// reference space this core indexes. SpaceDBs contribute positions only;
// the Properties value echoed back is the queried identifier itself.
func (c *Core) GetByID(params *CoreQueryParameters, id string) ([]SpaceObject, error) {
	offset, ok := c.propertiesOffset(id)
	if !ok {
		return nil, nil
	}

	var results []SpaceObject
	for _, db := range c.spaceDBs {
		toSpace, err := params.Database.Space(db.Name())
		if err != nil {
			return nil, err
		}

		qp := params.queryParams()
		qp.Viewport, err = viewportInSpace(params.Viewport, toSpace)
		if err != nil {
			continue
		}

		found, err := db.GetByID(uint64(offset), qp)
		if err != nil {
			return nil, err
		}

		objects := make([]SpaceObject, len(found))
		for i, o := range found {
			objects[i] = SpaceObject{SpaceID: db.Name(), Position: o.Position(), Value: c.properties[offset]}
		}
		if err := decodePositions(objects, toSpace, params.Database, params.OutputSpace); err != nil {
			return nil, err
		}
		results = append(results, objects...)
	}

	return results, nil
}

// GetByLabel uses id's own positions as a query volume and returns other
// identifiers co-located with them: id's own positions are dropped from
// the result.
func (c *Core) GetByLabel(params *CoreQueryParameters, id string) ([]SpaceObject, error) {
	offset, ok := c.propertiesOffset(id)
	if !ok {
		return nil, nil
	}

	var universePositions []Position
	for _, db := range c.spaceDBs {
		toSpace, err := params.Database.Space(db.Name())
		if err != nil {
			return nil, err
		}

		found, err := db.GetByID(uint64(offset), params.queryParams())
		if err != nil {
			return nil, err
		}

		for _, o := range found {
			absolute, err := toSpace.AbsolutePosition(o.Position())
			if err != nil {
				return nil, err
			}
			if params.Viewport != nil {
				ok, err := params.Viewport.Contains(absolute)
				if err != nil {
					return nil, err
				}
				if !ok {
					continue
				}
			}
			universePositions = append(universePositions, absolute)
		}
	}

	var results []SpaceObject
	for _, db := range c.spaceDBs {
		toSpace, err := params.Database.Space(db.Name())
		if err != nil {
			return nil, err
		}

		encoded := make([]Position, len(universePositions))
		for i, p := range universePositions {
			e, err := toSpace.Rebase(p)
			if err != nil {
				return nil, err
			}
			encoded[i] = e
		}

		found, err := db.GetByPositions(encoded, params.queryParams())
		if err != nil {
			return nil, err
		}

		kept := found[:0]
		for _, o := range found {
			if o.Value().Uint64() == uint64(offset) {
				continue
			}
			kept = append(kept, o)
		}

		objects := c.toSpaceObjects(db.Name(), kept)
		if err := decodePositions(objects, toSpace, params.Database, params.OutputSpace); err != nil {
			return nil, err
		}
		results = append(results, objects...)
	}

	return results, nil
}
