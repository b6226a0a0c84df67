// Package quark is a small software 3D engine: a scene graph of meshes and
// lights, GPU-style resources with explicit release, a perspective camera with
// orbit controls, and a fixed-pipeline rasterizer that draws into a Target.
//
// Pipeline (fixed):
//
//	Scene graph → World transforms → Projection → Clipping → Rasterization → Target.
//
// Resources (geometries, textures) hold memory that is not reclaimed until
// Dispose is called on them. Dispose walks a scene graph and releases
// everything it owns.
package quark
