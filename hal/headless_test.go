package hal

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"stage/quark"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeApp struct {
	canvas   *Canvas
	updates  int
	layouts  [][3]float64
	closed   int
	failAt   int
	closeErr error
}

func (a *fakeApp) Update(time.Time) error {
	a.updates++
	if a.failAt > 0 && a.updates == a.failAt {
		return errors.New("update failed")
	}
	a.canvas.Clear(quark.RGB(uint8(a.updates), 0, 0))
	return a.canvas.Present()
}

func (a *fakeApp) Layout(w, h int, scale float64) {
	a.layouts = append(a.layouts, [3]float64{float64(w), float64(h), scale})
}

func (a *fakeApp) Close() error {
	a.closed++
	return a.closeErr
}

func newFake(a *fakeApp) NewApp {
	return func(c *Canvas) (App, error) {
		a.canvas = c
		return a, nil
	}
}

func TestRunHeadlessStopsAfterTicks(t *testing.T) {
	a := &fakeApp{}
	err := RunHeadless(context.Background(), HeadlessConfig{Width: 8, Height: 4, Hz: 1000, Ticks: 3}, newFake(a))
	require.NoError(t, err)
	assert.Equal(t, 3, a.updates)
	assert.Equal(t, 1, a.closed)
	assert.Equal(t, [][3]float64{{8, 4, 1}}, a.layouts)
}

func TestRunHeadlessWritesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	a := &fakeApp{}
	err := RunHeadless(context.Background(), HeadlessConfig{Width: 8, Height: 4, Hz: 1000, Ticks: 2, Snapshot: path}, newFake(a))
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	r, _, _, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(2), r>>8)
}

func TestRunHeadlessCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	a := &fakeApp{}
	err := RunHeadless(ctx, HeadlessConfig{Hz: 1000}, newFake(a))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, a.closed)
}

func TestRunHeadlessUpdateError(t *testing.T) {
	a := &fakeApp{failAt: 2, closeErr: errors.New("close failed")}
	err := RunHeadless(context.Background(), HeadlessConfig{Hz: 1000}, newFake(a))
	assert.ErrorContains(t, err, "update failed")
	assert.ErrorContains(t, err, "close failed")
	assert.Equal(t, 2, a.updates)
}

func TestRunHeadlessNewAppError(t *testing.T) {
	boom := errors.New("boom")
	err := RunHeadless(context.Background(), HeadlessConfig{}, func(*Canvas) (App, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}
