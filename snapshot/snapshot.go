// Package snapshot persists a spatialcore Database to a compact binary
// form and reloads it, rebuilding each dataset's resolution pyramid from
// its raw build inputs rather than serializing the pyramid itself.
package snapshot

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/tidemark-gis/spatialcore/spatialcore"
)

// axisSnapshot is the wire form of a spatialcore.Axis.
type axisSnapshot struct {
	Unit       string    `cbor:"unit"`
	UnitVector []float64 `cbor:"unit_vector"`
	Set        string    `cbor:"set"`
	Minimum    float64   `cbor:"minimum"`
	Maximum    float64   `cbor:"maximum"`
	Steps      uint64    `cbor:"steps"`
}

// spaceSnapshot is the wire form of a named spatialcore.Space.
type spaceSnapshot struct {
	Name   string         `cbor:"name"`
	Origin []float64      `cbor:"origin"`
	Axes   []axisSnapshot `cbor:"axes"`
}

// propertySnapshot is the wire form of a spatialcore.Properties entry.
type propertySnapshot struct {
	ID       string `cbor:"id"`
	TypeName string `cbor:"type_name"`
	Unknown  bool   `cbor:"unknown"`
}

// objectSnapshot is one build-time point: a decoded position in its own
// reference space, tagged with its owning core's properties-table offset.
type objectSnapshot struct {
	SpaceID  string    `cbor:"space_id"`
	Position []float64 `cbor:"position"`
	Value    uint64    `cbor:"value"`
}

// coreSnapshot is the wire form of a dataset: its identifiers table, raw
// build points, and pyramid construction knobs.
type coreSnapshot struct {
	Name           string                `cbor:"name"`
	Title          string                `cbor:"title"`
	Version        string                `cbor:"version"`
	Properties     []propertySnapshot    `cbor:"properties"`
	Objects        []objectSnapshot      `cbor:"objects"`
	MaxElements    int                   `cbor:"max_elements"`
	ExplicitScales map[string][][]uint32 `cbor:"explicit_scales,omitempty"`
}

// document is the complete wire form of a Database.
type document struct {
	Spaces []spaceSnapshot `cbor:"spaces"`
	Cores  []coreSnapshot  `cbor:"cores"`
}

// Builder accumulates the raw definition of a Database — reference
// spaces, and per-dataset identifiers plus build points — for either
// immediate assembly (Build) or binary persistence (Save).
type Builder struct {
	spaces []spaceSnapshot
	cores  []coreSnapshot
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// AddSpace registers a reference space definition.
func (b *Builder) AddSpace(name string, origin []float64, axes []spatialcore.Axis) {
	wire := make([]axisSnapshot, len(axes))
	for i, a := range axes {
		wire[i] = axisSnapshot{
			Unit:       a.MeasurementUnit(),
			UnitVector: a.UnitVector().ToFloat64s(),
			Set:        a.Graduation().Set.String(),
			Minimum:    a.Graduation().Minimum,
			Maximum:    a.Graduation().Maximum,
			Steps:      a.Graduation().Steps,
		}
	}
	b.spaces = append(b.spaces, spaceSnapshot{Name: name, Origin: origin, Axes: wire})
}

// CoreObject is one raw build point handed to AddCore: a decoded position
// captured in the named reference space, tagged with the properties-table
// offset of the identifier it belongs to.
type CoreObject struct {
	SpaceID  string
	Position []float64
	Value    uint64
}

// AddCore registers a dataset's identifiers table, raw build points, and
// pyramid construction knobs (maxElements for automatic construction;
// explicitScales, keyed by reference-space name, to use explicit-scale
// construction for that space instead).
func (b *Builder) AddCore(name, title, version string, properties []spatialcore.Properties, objects []CoreObject, maxElements int, explicitScales map[string][]spatialcore.Scale) {
	wireProps := make([]propertySnapshot, len(properties))
	for i, p := range properties {
		wireProps[i] = propertySnapshot{ID: p.ID(), TypeName: p.TypeName(), Unknown: p.TypeName() != "Feature"}
	}

	wireObjects := make([]objectSnapshot, len(objects))
	for i, o := range objects {
		wireObjects[i] = objectSnapshot{SpaceID: o.SpaceID, Position: o.Position, Value: o.Value}
	}

	var wireScales map[string][][]uint32
	if len(explicitScales) > 0 {
		wireScales = make(map[string][][]uint32, len(explicitScales))
		for space, scales := range explicitScales {
			rows := make([][]uint32, len(scales))
			for i, s := range scales {
				rows[i] = []uint32(s)
			}
			wireScales[space] = rows
		}
	}

	b.cores = append(b.cores, coreSnapshot{
		Name:           name,
		Title:          title,
		Version:        version,
		Properties:     wireProps,
		Objects:        wireObjects,
		MaxElements:    maxElements,
		ExplicitScales: wireScales,
	})
}

// Save encodes the accumulated definition to CBOR.
func (b *Builder) Save() ([]byte, error) {
	doc := document{Spaces: b.spaces, Cores: b.cores}
	data, err := cbor.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("spatialcore/snapshot: encode: %w", err)
	}
	return data, nil
}

// Build assembles a *spatialcore.Database directly from the accumulated
// definition, without a round trip through CBOR.
func (b *Builder) Build() (*spatialcore.Database, error) {
	return (&document{Spaces: b.spaces, Cores: b.cores}).build()
}

// Load decodes data and rebuilds the Database it describes, reconstructing
// each dataset's resolution pyramid from its persisted build points.
func Load(data []byte) (*spatialcore.Database, error) {
	var doc document
	if err := cbor.Unmarshal(data, &doc); err != nil {
		return nil, &spatialcore.ErrDeserialize{Cause: err}
	}
	db, err := doc.build()
	if err != nil {
		return nil, &spatialcore.ErrDeserialize{Cause: err}
	}
	return db, nil
}

func (doc *document) build() (*spatialcore.Database, error) {
	db := spatialcore.NewDatabase()

	spaceByName := make(map[string]spatialcore.Space, len(doc.Spaces))
	for _, s := range doc.Spaces {
		axes := make([]spatialcore.Axis, len(s.Axes))
		for i, a := range s.Axes {
			set, err := spatialcore.ParseNumberSet(a.Set)
			if err != nil {
				return nil, err
			}
			axis, err := spatialcore.NewAxis(a.Unit, a.UnitVector, set, a.Minimum, a.Maximum, a.Steps)
			if err != nil {
				return nil, err
			}
			axes[i] = axis
		}
		system := spatialcore.NewAffineSystem(s.Origin, axes)
		space := spatialcore.NewSpace(s.Name, system)
		spaceByName[s.Name] = space
		if err := db.AddSpace(space); err != nil {
			return nil, err
		}
	}

	for _, c := range doc.Cores {
		properties := make([]spatialcore.Properties, len(c.Properties))
		for i, p := range c.Properties {
			if p.Unknown {
				properties[i] = spatialcore.NewUnknownProperties(p.ID, p.TypeName)
			} else {
				properties[i] = spatialcore.NewFeatureProperties(p.ID)
			}
		}

		objects := make([]spatialcore.SpaceSetObject, len(c.Objects))
		usedSpaces := make(map[string]struct{})
		for i, o := range c.Objects {
			objects[i] = spatialcore.NewSpaceSetObject(
				o.SpaceID,
				spatialcore.PositionFromFloat64s(o.Position),
				spatialcore.CoordinateFromUint64(o.Value),
			)
			usedSpaces[o.SpaceID] = struct{}{}
		}

		coreSpaces := make([]*spatialcore.Space, 0, len(usedSpaces))
		for name := range usedSpaces {
			space, ok := spaceByName[name]
			if !ok {
				return nil, &spatialcore.ErrNotFound{Kind: "space", Name: name}
			}
			space := space
			coreSpaces = append(coreSpaces, &space)
		}

		opts := spatialcore.CoreBuildOptions{MaxElements: c.MaxElements}
		if len(c.ExplicitScales) > 0 {
			opts.ExplicitScales = make(map[string][]spatialcore.Scale, len(c.ExplicitScales))
			for space, rows := range c.ExplicitScales {
				scales := make([]spatialcore.Scale, len(rows))
				for i, row := range rows {
					scales[i] = spatialcore.Scale(row)
				}
				opts.ExplicitScales[space] = scales
			}
		}

		core, err := spatialcore.NewCore(c.Title, c.Version, coreSpaces, properties, objects, opts)
		if err != nil {
			return nil, err
		}
		if err := db.AddCore(c.Name, core); err != nil {
			return nil, err
		}
	}

	return db, nil
}
