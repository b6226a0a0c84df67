package debug

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

const (
	refreshInterval = 250 * time.Millisecond
	stopTimeout     = 2 * time.Second
)

// ErrPanelStarted is returned when Start is called twice.
var ErrPanelStarted = errors.New("debug: panel already started")

// Panel is a terminal UI listing folders of tweakable parameters.
type Panel struct {
	log *zap.Logger

	mu      sync.Mutex
	folders []*Folder
	program *tea.Program
	done    chan struct{}
	stopped bool

	fps atomic.Uint64
}

func NewPanel(log *zap.Logger) *Panel {
	return &Panel{log: log}
}

// AddFolder appends a folder.
func (p *Panel) AddFolder(name string) *Folder {
	f := &Folder{Name: name}
	p.mu.Lock()
	p.folders = append(p.folders, f)
	p.mu.Unlock()
	return f
}

// Folders returns a copy of the folders.
func (p *Panel) Folders() []*Folder {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Folder, len(p.folders))
	copy(out, p.folders)
	return out
}

// SetFPS records the frame rate shown in the header.
func (p *Panel) SetFPS(fps float64) { p.fps.Store(math.Float64bits(fps)) }

func (p *Panel) FPS() float64 { return math.Float64frombits(p.fps.Load()) }

// Start runs the panel program on its own goroutine.
func (p *Panel) Start(in io.Reader, out io.Writer) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.program != nil || p.stopped {
		return ErrPanelStarted
	}
	opts := []tea.ProgramOption{tea.WithOutput(out), tea.WithoutSignalHandler()}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	} else {
		opts = append(opts, tea.WithInput(nil))
	}
	p.program = tea.NewProgram(newModel(p), opts...)
	p.done = make(chan struct{})
	go func(prog *tea.Program, done chan struct{}) {
		defer close(done)
		if _, err := prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			p.log.Warn("panel exited", zap.Error(err))
		}
	}(p.program, p.done)
	p.log.Debug("panel started")
	return nil
}

// Destroy stops the panel program and waits for it to exit. Calling it again
// does nothing.
func (p *Panel) Destroy() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	prog, done := p.program, p.done
	p.mu.Unlock()

	if prog == nil {
		return
	}
	prog.Quit()
	select {
	case <-done:
	case <-time.After(stopTimeout):
		p.log.Warn("panel did not stop in time, killing it")
		prog.Kill()
		<-done
	}
	p.log.Debug("panel destroyed")
}

// Destroyed reports whether Destroy was called.
func (p *Panel) Destroyed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

type keyMap struct {
	Up, Down, Inc, Dec, Close key.Binding
}

func (k keyMap) ShortHelp() []key.Binding { return []key.Binding{k.Up, k.Down, k.Dec, k.Inc, k.Close} }

func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var keys = keyMap{
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Inc:   key.NewBinding(key.WithKeys("right", "l", "+"), key.WithHelp("→/l", "increase")),
	Dec:   key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←/h", "decrease")),
	Close: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "close panel")),
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	folderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2a3850"))
)

type refreshMsg time.Time

// model is the bubbletea model of the panel.
type model struct {
	panel  *Panel
	cursor int
	help   help.Model
}

func newModel(p *Panel) model { return model{panel: p, help: help.New()} }

func (m model) Init() tea.Cmd { return refresh() }

func refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

func (m model) params() []Param {
	var out []Param
	for _, f := range m.panel.Folders() {
		out = append(out, f.Params()...)
	}
	return out
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		return m, refresh()
	case tea.KeyMsg:
		ps := m.params()
		switch {
		case key.Matches(msg, keys.Close):
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(ps)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Inc):
			if m.cursor < len(ps) {
				ps[m.cursor].Inc()
			}
		case key.Matches(msg, keys.Dec):
			if m.cursor < len(ps) {
				ps[m.cursor].Dec()
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("debug  %.0f fps", m.panel.FPS())))
	b.WriteString("\n")
	i := 0
	for _, f := range m.panel.Folders() {
		b.WriteString(folderStyle.Render(f.Name))
		b.WriteString("\n")
		for _, p := range f.Params() {
			line := fmt.Sprintf("  %-24s %s", p.Label(), p.String())
			if i == m.cursor {
				line = cursorStyle.Render("> " + strings.TrimPrefix(line, "  "))
			}
			b.WriteString(line)
			b.WriteString("\n")
			i++
		}
	}
	if i == 0 {
		b.WriteString(mutedStyle.Render("no parameters"))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(keys))
	return b.String()
}
