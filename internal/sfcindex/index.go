// Package sfcindex provides the black-box spatial index primitive that
// spatialcore.SpatialIndex builds on: exact-match lookup, inclusive range
// queries, and reverse lookup by value. The caller encodes positions into
// per-axis uint64 keys; this package never looks inside a key beyond its
// coordinates.
package sfcindex

import (
	"fmt"
	"sort"

	"github.com/dhconnelly/rtreego"
)

// Key is an encoded position: one uint64 tick value per axis.
type Key []uint64

func (k Key) equal(other Key) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if k[i] != other[i] {
			return false
		}
	}
	return true
}

func (k Key) point() rtreego.Point {
	p := make(rtreego.Point, len(k))
	for i, v := range k {
		p[i] = float64(v)
	}
	return p
}

// Fields is the reverse-lookup payload attached to every key: the space it
// was encoded in, and the offset of its value in the owning Core's
// properties table.
type Fields struct {
	SpaceID     string
	ValueOffset uint64
}

// Record pairs an encoded key with the fields stored at that key.
type Record struct {
	Key    Key
	Fields Fields
}

// Index is a black-box spatial index over Records: exact match, inclusive
// range, and reverse lookup by Fields. Range queries are served by an
// R-tree; exact-match and reverse lookups by a plain hash map, since
// rtreego has no notion of non-geometric equality.
type Index struct {
	dims    int
	records []Record
	exact   map[string][]Record
	byValue map[Fields][]Record
	tree    *rtreego.Rtree
}

type recordSpatial struct {
	rec Record
}

func (r recordSpatial) Bounds() rtreego.Rect {
	rect, _ := rtreego.NewRect(r.rec.Key.point(), onesOfLen(len(r.rec.Key)))
	return rect
}

func onesOfLen(n int) []float64 {
	lengths := make([]float64, n)
	for i := range lengths {
		lengths[i] = 1e-6
	}
	return lengths
}

func keyHash(k Key) string {
	b := make([]byte, 0, len(k)*8)
	for _, v := range k {
		b = append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24), byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
	}
	return string(b)
}

// New builds an Index over records, all of which must share the given
// dimensionality.
func New(dims int, records []Record) (*Index, error) {
	for i, r := range records {
		if len(r.Key) != dims {
			return nil, fmt.Errorf("sfcindex: record %d has %d dimensions, want %d", i, len(r.Key), dims)
		}
	}

	tree := rtreego.NewTree(dims, 8, 32)
	exact := make(map[string][]Record, len(records))
	byValue := make(map[Fields][]Record, len(records))

	for _, r := range records {
		tree.Insert(recordSpatial{rec: r})
		h := keyHash(r.Key)
		exact[h] = append(exact[h], r)
		byValue[r.Fields] = append(byValue[r.Fields], r)
	}

	return &Index{dims: dims, records: records, exact: exact, byValue: byValue, tree: tree}, nil
}

// Dimensions returns the dimensionality every key in this index shares.
func (idx *Index) Dimensions() int { return idx.dims }

// Len returns the number of records in the index.
func (idx *Index) Len() int { return len(idx.records) }

// Find returns every record whose key equals key exactly.
func (idx *Index) Find(key Key) []Record {
	candidates := idx.exact[keyHash(key)]
	out := make([]Record, 0, len(candidates))
	for _, r := range candidates {
		if r.Key.equal(key) {
			out = append(out, r)
		}
	}
	return out
}

// FindRange returns every record whose key falls within [lo, hi] inclusive,
// per axis.
func (idx *Index) FindRange(lo, hi Key) []Record {
	if len(lo) != idx.dims || len(hi) != idx.dims {
		return nil
	}

	point := make(rtreego.Point, idx.dims)
	lengths := make([]float64, idx.dims)
	for i := range lo {
		point[i] = float64(lo[i])
		lengths[i] = float64(hi[i]) - float64(lo[i])
		if lengths[i] < 0 {
			lengths[i] = 0
		}
	}
	// rtreego rectangles must have strictly positive side lengths.
	for i := range lengths {
		lengths[i] += 1e-6
	}

	rect, err := rtreego.NewRect(point, lengths)
	if err != nil {
		return nil
	}

	spatials := idx.tree.SearchIntersect(rect)
	out := make([]Record, 0, len(spatials))
	for _, s := range spatials {
		rec := s.(recordSpatial).rec
		if withinInclusive(rec.Key, lo, hi) {
			out = append(out, rec)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		for k := 0; k < idx.dims; k++ {
			if out[i].Key[k] != out[j].Key[k] {
				return out[i].Key[k] < out[j].Key[k]
			}
		}
		return false
	})

	return out
}

func withinInclusive(key, lo, hi Key) bool {
	for i := range key {
		if key[i] < lo[i] || key[i] > hi[i] {
			return false
		}
	}
	return true
}

// FindByValue returns every record carrying the given Fields.
func (idx *Index) FindByValue(f Fields) []Record {
	return idx.byValue[f]
}

// All returns every record in build order, for diagnostics and tests.
func (idx *Index) All() []Record {
	return idx.records
}
