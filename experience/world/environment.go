package world

import (
	"stage/experience/debug"
	"stage/quark"
)

// Environment lights the scene with a soft ambient term and a sun.
type Environment struct {
	Ambient *quark.AmbientLight
	Sun     *quark.DirectionalLight

	intensity  *debug.Float
	sunX, sunY *debug.Float
	sunZ       *debug.Float
}

func newEnvironment(scene *quark.Scene, dbg *debug.Debug) *Environment {
	e := &Environment{
		Ambient: quark.NewAmbientLight(quark.RGB(255, 255, 255), 0.25),
		Sun:     quark.NewDirectionalLight(quark.RGB(255, 255, 255), 1),
	}
	e.Sun.Name = "sun"
	e.Sun.Position = quark.V3(3.5, 2, -1.25)

	f := dbg.Folder("environment")
	e.intensity = f.AddFloat("sunLightIntensity", float64(e.Sun.Intensity), 0, 4, 0.1)
	e.sunX = f.AddFloat("sunLightX", float64(e.Sun.Position.X), -5, 5, 0.25)
	e.sunY = f.AddFloat("sunLightY", float64(e.Sun.Position.Y), -5, 5, 0.25)
	e.sunZ = f.AddFloat("sunLightZ", float64(e.Sun.Position.Z), -5, 5, 0.25)

	scene.Add(e.Ambient, e.Sun)
	return e
}

func (e *Environment) update() {
	e.Sun.Intensity = float32(e.intensity.Get())
	e.Sun.Position = quark.V3(float32(e.sunX.Get()), float32(e.sunY.Get()), float32(e.sunZ.Get()))
}
