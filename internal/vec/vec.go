// Package vec is the 2D vector type used by the physics core. Arithmetic is
// done by mathgl's mgl64.Vec2; Vec2 keeps named X and Y fields so body state
// reads as positions and velocities rather than array slots.
package vec

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Vec2 struct {
	X, Y float64
}

func New(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// FromMgl converts from mathgl's array form.
func FromMgl(m mgl64.Vec2) Vec2 { return Vec2{X: m[0], Y: m[1]} }

// Mgl converts to mathgl's array form.
func (v Vec2) Mgl() mgl64.Vec2 { return mgl64.Vec2{v.X, v.Y} }

func (v Vec2) Add(o Vec2) Vec2 { return FromMgl(v.Mgl().Add(o.Mgl())) }

func (v Vec2) Sub(o Vec2) Vec2 { return FromMgl(v.Mgl().Sub(o.Mgl())) }

func (v Vec2) Mul(s float64) Vec2 { return FromMgl(v.Mgl().Mul(s)) }

func (v Vec2) Dot(o Vec2) float64 { return v.Mgl().Dot(o.Mgl()) }

func (v Vec2) Len() float64 { return v.Mgl().Len() }

// Unit returns v scaled to length 1. ok is false for the zero vector,
// whose direction is undefined; mgl64's Normalize would divide by zero.
func (v Vec2) Unit() (u Vec2, ok bool) {
	if v.Len() == 0 {
		return Vec2{}, false
	}
	return FromMgl(v.Mgl().Normalize()), true
}

// Perp returns v rotated a quarter turn counter-clockwise.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
