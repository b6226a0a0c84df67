// Package world builds the scene content once resources are ready and
// animates it every tick.
package world

import (
	"go.uber.org/zap"

	"stage/experience/clock"
	"stage/experience/debug"
	"stage/experience/resources"
	"stage/internal/event"
	"stage/internal/logging"
	"stage/quark"
)

// World owns the environment, floor and subject of the scene.
type World struct {
	log       *zap.Logger
	scene     *quark.Scene
	resources *resources.Resources
	time      *clock.Time
	debug     *debug.Debug

	readyTok event.Token

	Environment *Environment
	Floor       *Floor
	Subject     *Subject
}

// New subscribes to the ready stream of res. If res is already ready the
// content is built before New returns.
func New(scene *quark.Scene, res *resources.Resources, t *clock.Time, dbg *debug.Debug, log *zap.Logger) *World {
	w := &World{
		log:       logging.OrNop(log).Named("world"),
		scene:     scene,
		resources: res,
		time:      t,
		debug:     dbg,
	}
	w.readyTok = res.OnReady(w.build)
	return w
}

// Ready reports whether the content has been built.
func (w *World) Ready() bool { return w.Subject != nil }

func (w *World) build() {
	if w.Ready() {
		return
	}
	w.resources.Off(w.readyTok)
	w.Floor = newFloor(w.scene, w.texture("floorColorTexture"), w.texture("floorNormalTexture"))
	w.Subject = newSubject(w.scene, w.texture("subjectColorTexture"), w.debug)
	w.Environment = newEnvironment(w.scene, w.debug)
	w.log.Info("world built", zap.Int("nodes", len(w.scene.Children())))
}

func (w *World) texture(name string) *quark.Texture {
	t, ok := w.resources.Texture(name)
	if !ok {
		w.log.Warn("texture missing", zap.String("name", name))
		return nil
	}
	return t
}

// Update applies reloaded textures, reads debug parameters and advances the
// animation by the last tick delta.
func (w *World) Update() {
	w.resources.Sync()
	if ui := w.debug.UI(); ui != nil && w.time.Delta > 0 {
		ui.SetFPS(1 / w.time.Delta.Seconds())
	}
	if !w.Ready() {
		return
	}
	w.Environment.update()
	w.Subject.update(float32(w.time.Delta.Seconds()))
}
