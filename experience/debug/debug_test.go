package debug

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestInactive(t *testing.T) {
	d, err := New(Options{}, nil)
	require.NoError(t, err)
	assert.False(t, d.Active())
	assert.Nil(t, d.UI())

	f := d.Folder("environment")
	p := f.AddFloat("intensity", 1, 0, 10, 0.5)
	assert.Equal(t, 1.0, p.Get())
}

func TestActiveWithoutTerminal(t *testing.T) {
	d, err := New(Options{Active: true}, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.True(t, d.Active())
	require.NotNil(t, d.UI())

	d.Folder("environment").AddToggle("shadows", true)
	require.Len(t, d.UI().Folders(), 1)

	d.UI().Destroy()
	d.UI().Destroy()
	assert.True(t, d.UI().Destroyed())
	assert.ErrorIs(t, d.UI().Start(nil, io.Discard), ErrPanelStarted)
}

func TestStartAndDestroy(t *testing.T) {
	p := NewPanel(zaptest.NewLogger(t))
	p.AddFolder("environment").AddFloat("intensity", 4, 0, 10, 0.1)
	require.NoError(t, p.Start(nil, io.Discard))
	assert.ErrorIs(t, p.Start(nil, io.Discard), ErrPanelStarted)
	p.Destroy()
	assert.True(t, p.Destroyed())
}

func TestFloatClamps(t *testing.T) {
	var f Folder
	p := f.AddFloat("x", 20, 0, 10, 3)
	assert.Equal(t, 10.0, p.Get())
	p.Inc()
	assert.Equal(t, 10.0, p.Get())
	p.Dec()
	p.Dec()
	p.Dec()
	p.Dec()
	assert.Equal(t, 0.0, p.Get())
	assert.Equal(t, "0.000", p.String())
}

func press(m tea.Model, k tea.KeyType) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: k})
	return m
}

func pressRune(m tea.Model, r rune) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func TestModelNavigation(t *testing.T) {
	p := NewPanel(zaptest.NewLogger(t))
	env := p.AddFolder("environment")
	intensity := env.AddFloat("intensity", 1, 0, 10, 0.5)
	shadows := env.AddToggle("shadows", false)
	speed := p.AddFolder("subject").AddFloat("speed", 1, 0, 5, 1)

	var m tea.Model = newModel(p)
	m = press(m, tea.KeyRight)
	assert.Equal(t, 1.5, intensity.Get())

	m = press(m, tea.KeyDown)
	m = press(m, tea.KeyRight)
	assert.True(t, shadows.Get())

	m = press(m, tea.KeyDown)
	m = press(m, tea.KeyDown)
	m = press(m, tea.KeyLeft)
	assert.Equal(t, 0.0, speed.Get())

	m = press(m, tea.KeyUp)
	m = press(m, tea.KeyUp)
	m, _ = pressRune(m, 'l')
	assert.Equal(t, 2.0, intensity.Get())

	p.SetFPS(59.6)
	view := m.View()
	assert.Contains(t, view, "60 fps")
	assert.Contains(t, view, "environment")
	assert.Contains(t, view, "speed")

	_, cmd := pressRune(m, 'q')
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModelEmpty(t *testing.T) {
	m := newModel(NewPanel(zaptest.NewLogger(t)))
	next := press(m, tea.KeyRight)
	assert.Contains(t, next.View(), "no parameters")
}
