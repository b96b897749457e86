package spatialcore

import "github.com/google/uuid"

// Database is a catalog of named reference Spaces and named Cores, the
// top-level object a snapshot loads and a query targets.
type Database struct {
	id     uuid.UUID
	spaces map[string]*Space
	cores  map[string]*Core
}

// NewDatabase builds an empty catalog tagged with a fresh instance ID.
func NewDatabase() *Database {
	return &Database{id: uuid.New(), spaces: make(map[string]*Space), cores: make(map[string]*Core)}
}

// ID returns the instance identifier assigned when this Database was
// built; distinct loads of the same snapshot get distinct IDs.
func (db *Database) ID() uuid.UUID { return db.id }

// AddSpace registers a reference space. Re-registering the reserved
// Universe name, or a name already bound to a differently-defined
// space, fails with *ErrInconsistentCatalog. Re-registering a name
// under an identical definition is a no-op, since multi-dataset
// snapshots commonly share a reference space across cores.
func (db *Database) AddSpace(space Space) error {
	if space.Name() == UniverseName {
		return &ErrInconsistentCatalog{Name: UniverseName}
	}
	if existing, ok := db.spaces[space.Name()]; ok {
		if !systemsEqual(existing.System(), space.System()) {
			logger.Warnw("catalog merge: conflicting definitions for reference space",
				"space", space.Name())
			return &ErrInconsistentCatalog{Name: space.Name()}
		}
		logger.Infow("catalog merge: reference space already registered, definitions match",
			"space", space.Name())
		return nil
	}
	db.spaces[space.Name()] = &space
	return nil
}

// AddCore registers a dataset under name. Re-registering an existing
// name fails with *ErrInconsistentCatalog.
func (db *Database) AddCore(name string, core *Core) error {
	if _, ok := db.cores[name]; ok {
		logger.Warnw("catalog merge: duplicate core name", "core", name)
		return &ErrInconsistentCatalog{Name: name}
	}
	db.cores[name] = core
	return nil
}

// systemsEqual reports whether a and b describe the same reference space:
// same origin, and pairwise-identical axes (unit, graduation, direction).
// Dimensionality alone isn't enough — two spaces can agree on axis count
// while disagreeing on what those axes mean.
func systemsEqual(a, b CoordinateSystem) bool {
	if a.IsUniverse() || b.IsUniverse() {
		return a.IsUniverse() == b.IsUniverse()
	}
	if !EqualPosition(a.Origin(), b.Origin()) {
		return false
	}

	axesA, errA := a.Axes()
	axesB, errB := b.Axes()
	if errA != nil || errB != nil || len(axesA) != len(axesB) {
		return false
	}

	for i := range axesA {
		if axesA[i].MeasurementUnit() != axesB[i].MeasurementUnit() {
			return false
		}
		if axesA[i].Graduation() != axesB[i].Graduation() {
			return false
		}
		if !EqualPosition(axesA[i].UnitVector(), axesB[i].UnitVector()) {
			return false
		}
	}
	return true
}

// Space resolves name to a reference space. The reserved Universe name
// always resolves to the Universe singleton, bypassing the catalog.
func (db *Database) Space(name string) (*Space, error) {
	if name == UniverseName {
		return UniverseSpace(), nil
	}
	space, ok := db.spaces[name]
	if !ok {
		return nil, &ErrNotFound{Kind: "space", Name: name}
	}
	return space, nil
}

// Core resolves name to a dataset.
func (db *Database) Core(name string) (*Core, error) {
	core, ok := db.cores[name]
	if !ok {
		return nil, &ErrNotFound{Kind: "core", Name: name}
	}
	return core, nil
}

// SpaceKeys returns the names of every catalogued reference space
// (Universe excluded, since it's always implicitly present).
func (db *Database) SpaceKeys() []string {
	keys := make([]string, 0, len(db.spaces))
	for k := range db.spaces {
		keys = append(keys, k)
	}
	return keys
}

// CoreKeys returns the names of every catalogued dataset.
func (db *Database) CoreKeys() []string {
	keys := make([]string, 0, len(db.cores))
	for k := range db.cores {
		keys = append(keys, k)
	}
	return keys
}
