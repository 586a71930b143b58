package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"treespan/internal/treebank"
)

// maxRows: больше строк не рисуем, корпус может содержать тысячи файлов.
const maxRows = 8

// fileState is the position of one file in the load pipeline.
type fileState uint8

const (
	stateQueued fileState = iota
	stateReading
	stateCache
	stateParsing
	stateDone
	stateCached
	stateFailed
)

var states = [...]struct {
	label  string
	weight float64 // доля файла в общем прогрессе
	color  lipgloss.Color
}{
	stateQueued:  {"queued", 0, "7"},
	stateReading: {"reading", 0.1, "6"},
	stateCache:   {"cache", 0.2, "6"},
	stateParsing: {"parsing", 0.5, "6"},
	stateDone:    {"done", 1, "2"},
	stateCached:  {"cached", 1, "2"},
	stateFailed:  {"error", 1, "1"},
}

func (s fileState) String() string { return states[s].label }

func (s fileState) finished() bool { return s >= stateDone }

func (s fileState) active() bool { return s > stateQueued && s < stateDone }

// stateOf maps a loader event to a file state.
func stateOf(ev treebank.Event) (fileState, bool) {
	switch ev.Status {
	case treebank.StatusQueued:
		return stateQueued, true
	case treebank.StatusDone:
		if ev.Cached {
			return stateCached, true
		}
		return stateDone, true
	case treebank.StatusError:
		return stateFailed, true
	case treebank.StatusWorking:
		switch ev.Stage {
		case treebank.StageRead:
			return stateReading, true
		case treebank.StageCache:
			return stateCache, true
		case treebank.StageParse:
			return stateParsing, true
		}
	}
	return 0, false
}

type fileRow struct {
	path  string
	state fileState
	trees int
	order int // порядковый номер завершения, 0 - ещё не завершён
}

type progressModel struct {
	title   string
	events  <-chan treebank.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int

	trees    int
	finished int
	cached   int
	failed   int

	width int
	done  bool
}

type eventMsg treebank.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders treebank loading
// progress: totals, the files being worked on and the latest finished ones.
func NewProgressModel(title string, files []string, events <-chan treebank.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    make([]fileRow, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, file := range files {
		m.rows[i] = fileRow{path: file}
		m.byPath[file] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(treebank.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		updated, cmd := m.bar.Update(msg)
		m.bar = updated.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// next ждёт следующее событие загрузчика; закрытый канал завершает модель.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) apply(ev treebank.Event) tea.Cmd {
	idx, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	state, ok := stateOf(ev)
	if !ok {
		return nil
	}
	row := &m.rows[idx]
	if row.state.finished() {
		return nil
	}
	row.state = state
	if state.finished() {
		m.finished++
		row.order = m.finished
		row.trees = ev.Trees
		m.trees += ev.Trees
		switch state {
		case stateCached:
			m.cached++
		case stateFailed:
			m.failed++
		}
	}
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var total float64
	for _, r := range m.rows {
		total += states[r.state].weight
	}
	return total / float64(len(m.rows))
}

// visible returns the rows worth drawing: all of them for a small corpus,
// otherwise the active files followed by the most recently finished.
func (m *progressModel) visible() []fileRow {
	if len(m.rows) <= maxRows {
		return m.rows
	}
	var active, finished []fileRow
	for _, r := range m.rows {
		switch {
		case r.state.active():
			active = append(active, r)
		case r.state.finished():
			finished = append(finished, r)
		}
	}
	slices.SortFunc(finished, func(a, b fileRow) int { return b.order - a.order })
	out := append(active, finished...)
	return out[:min(len(out), maxRows)]
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	header := fmt.Sprintf("%s: %d/%d files, %d trees", m.title, m.finished, len(m.rows), m.trees)
	if m.cached > 0 || m.failed > 0 {
		header += fmt.Sprintf(" (%d cached, %d failed)", m.cached, m.failed)
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")).Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-24, 20)
	rows := m.visible()
	for _, r := range rows {
		st := lipgloss.NewStyle().Foreground(states[r.state].color)
		fmt.Fprintf(&b, "  %s %s", st.Render(fmt.Sprintf("%8s", r.state)), truncate(r.path, nameWidth))
		if r.trees > 0 {
			fmt.Fprintf(&b, " (%d)", r.trees)
		}
		b.WriteByte('\n')
	}
	if hidden := len(m.rows) - len(rows); hidden > 0 {
		fmt.Fprintf(&b, "  +%d more files\n", hidden)
	}

	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	// ширина хвоста "..." уже входит в width
	return runewidth.Truncate(value, width, "...")
}
