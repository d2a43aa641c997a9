// Package model provides the data structures shared by the decoding
// pipeline.
//
// This package defines the user-facing types that represent recovered
// document content. Detection and clustering operations ultimately produce
// these types, making them the primary API for consuming results.
//
// # Document Structure
//
// The [Document] type represents a fully decoded document:
//
//	doc := model.NewDocument()
//	doc.AddPage(page)
//
// Each [Page] contains the [Line] values detected on it, in the order the
// clusterer finalized them. Each Line holds its [Symbol] values sorted left
// to right.
//
// # Geometry
//
// Geometric primitives support position calculations in bitmap coordinates
// (origin top-left, y increasing downward):
//
//   - [BBox] - bounding box with union and containment calculations
//   - [Point] - 2D point with distance calculation
package model
