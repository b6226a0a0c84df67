package app

import (
	"fmt"

	"go.uber.org/zap"
)

// recoverFrame turns a panic raised while running a frame into an error so
// the runner can stop and close the experience cleanly.
func (a *App) recoverFrame(err *error) {
	r := recover()
	if r == nil {
		return
	}
	a.log.Error("frame panicked", zap.Any("panic", r), zap.Stack("stack"))
	*err = fmt.Errorf("app: frame panicked: %v", r)
}
