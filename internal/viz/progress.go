package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/torus/internal/sim"
)

// FrameMsg reports one frame handed to the wrapped sink.
type FrameMsg struct {
	Index        int
	Generation   int
	StateNonZero int
	Frame        sim.Frame
}

// DoneMsg ends the progress view.
type DoneMsg struct {
	Result *sim.Result
	Err    error
}

// ProgressSink forwards frames to the next sink and reports each one.
type ProgressSink struct {
	next sim.FrameSink
	send func(tea.Msg)
}

func NewProgressSink(next sim.FrameSink, send func(tea.Msg)) *ProgressSink {
	return &ProgressSink{next: next, send: send}
}

func (p *ProgressSink) WriteFrame(ctx context.Context, f sim.Frame) error {
	if err := p.next.WriteFrame(ctx, f); err != nil {
		return err
	}
	nonZero := 0
	for _, c := range f.Cells {
		if c != 0 {
			nonZero++
		}
	}
	p.send(FrameMsg{Index: f.Index, Generation: f.Generation, StateNonZero: nonZero, Frame: f})
	return nil
}

var (
	progressHeader = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	progressHelp   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// ProgressModel follows a render from the frames it receives.
type ProgressModel struct {
	title    string
	total    int
	done     int
	last     FrameMsg
	coverage []float64
	started  time.Time
	finished bool
	result   *sim.Result
	err      error
	cancel   context.CancelFunc
	preview  bool
}

// NewProgressModel expects total frames. cancel, when set, is called if the
// user quits before the render finishes.
func NewProgressModel(title string, total int, cancel context.CancelFunc) ProgressModel {
	return ProgressModel{
		title:    title,
		total:    total,
		coverage: make([]float64, 0, total),
		started:  time.Now(),
		cancel:   cancel,
	}
}

func (m ProgressModel) Result() *sim.Result { return m.result }
func (m ProgressModel) Err() error          { return m.err }

func (m ProgressModel) Init() tea.Cmd { return nil }

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if !m.finished && m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		case "p":
			m.preview = !m.preview
		}
	case FrameMsg:
		m.done++
		m.last = msg
		if n := len(msg.Frame.Cells); n > 0 {
			m.coverage = append(m.coverage, float64(msg.StateNonZero)/float64(n))
		}
	case DoneMsg:
		m.finished = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m ProgressModel) View() string {
	var s strings.Builder
	s.WriteString(progressHeader.Render(strings.ToUpper(m.title)) + "\n")

	pct := 0.0
	if m.total > 0 {
		pct = float64(m.done) / float64(m.total)
	}
	s.WriteString(ProgressBar(pct, 40) + fmt.Sprintf(" %d/%d\n\n", m.done, m.total))

	s.WriteString(MetricLabel.Render("Frame") + MetricValue.Render(fmt.Sprintf("%d", m.last.Index)) + "\n")
	s.WriteString(MetricLabel.Render("Generation") + MetricValue.Render(fmt.Sprintf("%d", m.last.Generation)) + "\n")
	s.WriteString(MetricLabel.Render("Non-zero") + MetricValue.Render(fmt.Sprintf("%d", m.last.StateNonZero)) + "\n")
	s.WriteString(MetricLabel.Render("Elapsed") + MetricValue.Render(time.Since(m.started).Round(time.Millisecond).String()) + "\n")
	if len(m.coverage) > 1 {
		s.WriteString(MetricLabel.Render("Coverage") + Sparkline(m.coverage, 40) + "\n")
	}

	if m.preview && len(m.last.Frame.Cells) > 0 {
		s.WriteString("\n" + RenderGrid(m.last.Frame, 64))
	}

	switch {
	case m.err != nil:
		s.WriteString("\n" + StatusFailed.Render("FAILED: "+m.err.Error()) + "\n")
	case m.finished:
		s.WriteString("\n" + StatusRunning.Render("DONE") + "\n")
	default:
		s.WriteString(progressHelp.Render("P:Preview Q:Quit"))
	}
	return Panel.Render(s.String())
}
