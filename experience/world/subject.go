package world

import (
	"stage/experience/debug"
	"stage/quark"
)

// Subject is the animated centerpiece of the scene.
type Subject struct {
	Mesh     *quark.Mesh
	Material *quark.StandardMaterial

	speed     *debug.Float // radians per second
	wireframe *debug.Toggle
}

func newSubject(scene *quark.Scene, color *quark.Texture, dbg *debug.Debug) *Subject {
	mat := quark.NewStandardMaterial(quark.RGB(255, 255, 255))
	mat.Map = color

	mesh := quark.NewMesh("subject", quark.NewTorusGeometry(1, 0.38, 16, 32), mat)
	mesh.Position = quark.V3(0, 1.4, 0)
	scene.Add(mesh)

	f := dbg.Folder("subject")
	return &Subject{
		Mesh:      mesh,
		Material:  mat,
		speed:     f.AddFloat("speed", 0.6, 0, 5, 0.1),
		wireframe: f.AddToggle("wireframe", false),
	}
}

func (s *Subject) update(dt float32) {
	s.Material.Wireframe = s.wireframe.Get()
	s.Mesh.Rotation.Y += float32(s.speed.Get()) * dt
	s.Mesh.Rotation.X += float32(s.speed.Get()) * dt * 0.5
}
