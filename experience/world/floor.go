package world

import (
	"math"

	"stage/quark"
)

// Floor is a textured ground plane.
type Floor struct {
	Mesh     *quark.Mesh
	Material *quark.StandardMaterial
}

func newFloor(scene *quark.Scene, color, normal *quark.Texture) *Floor {
	mat := quark.NewStandardMaterial(quark.RGB(255, 255, 255))
	mat.Map = color
	mat.NormalMap = normal

	mesh := quark.NewMesh("floor", quark.NewPlaneGeometry(10, 10), mat)
	mesh.Rotation.X = -math.Pi / 2
	scene.Add(mesh)
	return &Floor{Mesh: mesh, Material: mat}
}
