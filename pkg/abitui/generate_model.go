package abitui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MacroPower/abischema/pkg/generate"
)

var stageVerbs = map[string]string{
	generate.StageFetch:     "fetching",
	generate.StageLoad:      "loading",
	generate.StageTransform: "transforming",
	generate.StageCompile:   "compiling",
	generate.StageWrite:     "writing",
}

// GenerateModel displays the progress of a [generate.Generator] run.
type GenerateModel struct {
	err      error
	caser    cases.Caser
	input    string
	stage    string
	detail   string
	output   string
	spinner  spinner.Model
	width    int
	height   int
	warnings int
	mu       sync.RWMutex
	working  bool
	done     bool
}

// NewGenerateModel creates a [GenerateModel] for the given input argument.
func NewGenerateModel(input string) *GenerateModel {
	s := spinner.New()
	s.Style = spinnerStyle

	return &GenerateModel{
		spinner: s,
		caser:   cases.Title(language.English),
		input:   input,
		mu:      sync.RWMutex{},
	}
}

func (m *GenerateModel) Init() tea.Cmd {
	m.working = true

	return m.spinner.Tick
}

//nolint:ireturn // Third-party.
func (m *GenerateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		if keyExits(msg) {
			return m, tea.Quit
		}

	case teaMsgWriteLog:
		return m, writeLog(msg, m.width)

	case generate.EventStageStarted:
		m.mu.Lock()
		m.stage, m.detail = msg.Stage, msg.Detail
		m.mu.Unlock()

	case generate.EventStageDone:
		icon := checkMark
		if msg.Err != nil {
			icon = errorMark
		}

		return m, tea.Printf("%s %s", icon, m.caser.String(msg.Stage))

	case generate.EventWarning:
		m.warnings++

		return m, tea.Printf("%s %s", warnMark, msg.Warning)

	case generate.EventDone:
		m.working = false

		// Allow previously sent messages to be drawn.
		preQuitCmd := tea.Tick(time.Millisecond*100, func(_ time.Time) tea.Msg {
			m.mu.Lock()
			defer m.mu.Unlock()

			m.err = msg.Err
			m.done = true

			if msg.Report != nil {
				m.output = msg.Report.OutputPath
			}

			return nil
		})

		return m, tea.Sequence(preQuitCmd, teaQuit())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m *GenerateModel) View() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return getErrorMessage(m.err, m.width)
	}

	if m.done {
		msg := fmt.Sprintf("Done! Wrote %s.", m.output)
		if m.warnings > 0 {
			msg += warnStyle.Render(fmt.Sprintf(" (%d warnings)", m.warnings))
		}

		return doneStyle.Render(msg + "\n")
	}

	if m.working {
		spin := m.spinner.View() + " "
		cellsAvail := max(0, m.width-lipgloss.Width(spin))

		info := lipgloss.NewStyle().MaxWidth(cellsAvail).Render(m.label())

		cellsRemaining := max(0, m.width-lipgloss.Width(spin+info))
		gap := strings.Repeat(" ", cellsRemaining) + "\n"

		return spin + info + gap
	}

	return ""
}

// Err returns the error the run finished with, if any.
func (m *GenerateModel) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.err
}

func (m *GenerateModel) label() string {
	verb, ok := stageVerbs[m.stage]
	if !ok {
		verb = "starting"
	}

	detail := m.detail
	if detail == "" {
		detail = m.input
	}

	return m.caser.String(verb) + " " + currentNameStyle.Render(detail)
}
