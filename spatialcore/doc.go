// Package spatialcore implements a volumetric spatial index over
// multi-dataset point clouds: arbitrary affine reference spaces built on
// SI-graduated axes, adaptive-precision coordinates and positions,
// geometric shapes (point, bounding box, hypersphere), and a
// multi-resolution index pyramid (SpaceDB) queried through a Core query
// engine and a Database catalog.
package spatialcore
