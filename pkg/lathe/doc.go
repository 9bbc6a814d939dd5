// Package lathe generates revolved (lathe) pot meshes and sculpts them.
//
// A Mesh is built once from a Profile and afterwards only its vertex
// positions change: Deform pushes and pulls vertices around the vertical
// axis with a cosine falloff, keeping the foot and the rim cap pinned.
// Topology, UVs and the rest snapshot are fixed until the next Generate.
//
// The package is headless. A host converts pointer input into a Stroke in
// mesh-local space and uploads Mesh.Buffers to its renderer.
package lathe
