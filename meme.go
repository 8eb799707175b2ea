// Package meme implements the text-layer editor of the meme generator: a layer model, text metrics, a compositor drawing
// stroked and filled text over a base image, hit-testing, a pointer gesture state machine and PNG export.
//
// All coordinates are in image space, i.e. the pixel grid of the base image, with the origin in the top-left corner and
// the Y axis pointing down. Hosts convert their display coordinates using a Viewport.
package meme

import "fmt"

// Point is a coordinate in image space.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Rect is an axis-aligned rectangle given by its top-left (X0,Y0) and bottom-right (X1,Y1) corners.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// W returns the width.
func (r Rect) W() float64 {
	return r.X1 - r.X0
}

// H returns the height.
func (r Rect) H() float64 {
	return r.Y1 - r.Y0
}

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{(r.X0 + r.X1) / 2.0, (r.Y0 + r.Y1) / 2.0}
}

// Contains returns true if p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return r.X0 <= p.X && p.X <= r.X1 && r.Y0 <= p.Y && p.Y <= r.Y1
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", r.X0, r.Y0, r.X1, r.Y1)
}
