package main

import (
	"github.com/jakecoffman/cp"

	"github.com/Bonehead-Labs/actorkit/core"
)

// chipBody adapts a chipmunk rigid body to the behavior core's actor
// interface. Movement intent comes from the keyboard and is rebuilt
// every frame
type chipBody struct {
	body *cp.Body
	move core.Vec2
}

func (b *chipBody) Position() core.Vec2 {
	p := b.body.Position()
	return core.Vec2{X: p.X, Y: p.Y}
}

func (b *chipBody) ApplyVelocity(v core.Vec2) {
	b.body.SetVelocityVector(cp.Vector{X: v.X, Y: v.Y})
}

func (b *chipBody) MoveInput() core.Vec2 { return b.move }

// newArena builds a walled space with a single dynamic body at center
func newArena(width, height float64) (*cp.Space, *chipBody) {
	space := cp.NewSpace()
	space.Iterations = 10

	walls := []struct{ a, b cp.Vector }{
		{cp.Vector{X: 0, Y: 0}, cp.Vector{X: width, Y: 0}},
		{cp.Vector{X: 0, Y: height}, cp.Vector{X: width, Y: height}},
		{cp.Vector{X: 0, Y: 0}, cp.Vector{X: 0, Y: height}},
		{cp.Vector{X: width, Y: 0}, cp.Vector{X: width, Y: height}},
	}
	for _, w := range walls {
		seg := cp.NewSegment(space.StaticBody, w.a, w.b, 0.5)
		seg.SetElasticity(0.4)
		space.AddShape(seg)
	}

	body := space.AddBody(cp.NewBody(1, cp.MomentForBox(1, 1, 1)))
	body.SetPosition(cp.Vector{X: width / 2, Y: height / 2})
	shape := space.AddShape(cp.NewBox(body, 1, 1, 0))
	shape.SetElasticity(0.4)
	shape.SetFriction(0.2)

	return space, &chipBody{body: body}
}
