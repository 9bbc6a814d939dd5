// Package session drives the lathe and paint engines from per-frame pointer
// input. A host polls its devices once per frame, fills an Input and calls
// Tick on whichever session is active.
package session

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Ray is a pointer ray in mesh-local space.
type Ray struct {
	Origin v3.Vec
	Dir    v3.Vec
}

// Input is the pointer state for one frame.
type Input struct {
	// Ray is the pointer ray through the pottery, used by the Sculptor.
	Ray Ray
	// Pointer is the position relative to the canvas rect center in UI
	// pixels, +Y down, used by the Easel.
	Pointer v2.Vec
	// Delta is the pointer movement since the previous frame.
	Delta v2.Vec

	Left  bool // primary button held
	Right bool // secondary button held
	Undo  bool // undo shortcut pressed this frame
}
