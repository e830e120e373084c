// Package viewer provides the Bubble Tea integration for playing back
// stored trajectories in the terminal.
package viewer

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jimgammell/pong-datagen/internal/frame"
	"github.com/jimgammell/pong-datagen/internal/sim"
)

// TickMsg is sent to advance playback by one frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the
// playback frame rate.
func tickCmd(fps int) tea.Cmd {
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Model is the Bubble Tea model for trajectory playback.
type Model struct {
	title   string
	frames  []frame.Frame
	fps     int
	index   int
	playing bool

	styles map[sim.RGB]lipgloss.Style
}

// NewModel creates a playback model for the given frame sequence.
func NewModel(title string, frames []frame.Frame, fps int) Model {
	if fps < 1 {
		fps = 60
	}
	return Model{
		title:   title,
		frames:  frames,
		fps:     fps,
		playing: true,
		styles:  make(map[sim.RGB]lipgloss.Style),
	}
}

// Init starts the playback tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ", "p":
			m.playing = !m.playing
		case "r":
			m.index = 0
			m.playing = true
		case "left", "h":
			m.playing = false
			if m.index > 0 {
				m.index--
			}
		case "right", "l":
			m.playing = false
			if m.index < len(m.frames)-1 {
				m.index++
			}
		}
		return m, nil

	case TickMsg:
		if m.playing && m.index < len(m.frames)-1 {
			m.index++
		}
		return m, tickCmd(m.fps)
	}

	return m, nil
}

// View renders the current frame as colored half-block rows. Each pixel
// becomes two terminal cells so frames stay roughly square on screen.
func (m Model) View() string {
	if len(m.frames) == 0 {
		return "no frames\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  timestep %d/%d", m.title, m.index, len(m.frames)-1)
	if !m.playing {
		sb.WriteString("  [paused]")
	}
	sb.WriteString("\n\n")

	f := &m.frames[m.index]
	for x := 0; x < frame.Size; x++ {
		for y := 0; y < frame.Size; y++ {
			sb.WriteString(m.style(f.At(x, y)).Render("██"))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nspace pause · ←/→ step · r restart · q quit\n")
	return sb.String()
}

// Index returns the current playback position.
func (m Model) Index() int {
	return m.index
}

// Playing reports whether playback is advancing.
func (m Model) Playing() bool {
	return m.playing
}

func (m Model) style(c sim.RGB) lipgloss.Style {
	if s, ok := m.styles[c]; ok {
		return s
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)))
	m.styles[c] = s
	return s
}

// Run plays back the frame sequence, blocking until the user quits.
func Run(title string, frames []frame.Frame, fps int) error {
	p := tea.NewProgram(NewModel(title, frames, fps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}
