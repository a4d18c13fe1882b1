package abitui

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MacroPower/abischema/pkg/generate"
	"github.com/MacroPower/abischema/pkg/log"
)

// Runner runs the generation pipeline and broadcasts its events.
type Runner interface {
	Run(ctx context.Context, arg, out string) (*generate.Report, error)
	Subscribe(f func(any))
}

// GenerateTUI runs a [Runner] behind a [GenerateModel].
type GenerateTUI struct {
	gen  Runner
	p    *tea.Program
	w    io.Writer
	opts []tea.ProgramOption
}

// NewGenerateTUI creates a new [GenerateTUI] drawing to w. The default
// logger is replaced with one that prints through the TUI.
func NewGenerateTUI(w io.Writer, logLevel string, gen Runner, opts ...tea.ProgramOption) (*GenerateTUI, error) {
	c := &GenerateTUI{
		gen:  gen,
		w:    w,
		opts: opts,
	}

	c.gen.Subscribe(c.broadcastEvent)

	h, err := log.CreateHandlerWithStrings(c, logLevel, string(log.FormatText))
	if err != nil {
		return nil, fmt.Errorf("failed to create log handler: %w", err)
	}

	slog.SetDefault(slog.New(h))

	return c, nil
}

func (c *GenerateTUI) broadcastEvent(evt any) {
	if c.p != nil {
		c.p.Send(evt)
	}
}

func (c *GenerateTUI) Write(p []byte) (int, error) {
	c.broadcastEvent(teaMsgWriteLog(string(p)))

	return len(p), nil
}

type runResult struct {
	err    error
	report *generate.Report
}

// Run runs the pipeline while displaying progress. Quitting the TUI cancels
// the run.
func (c *GenerateTUI) Run(ctx context.Context, arg, out string) (*generate.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := append([]tea.ProgramOption{tea.WithOutput(c.w), tea.WithContext(ctx)}, c.opts...)
	c.p = tea.NewProgram(NewGenerateModel(arg), opts...)

	done := make(chan runResult, 1)
	go func() {
		report, err := c.gen.Run(ctx, arg, out)
		done <- runResult{report: report, err: err}
	}()

	_, tuiErr := c.p.Run()

	cancel()

	res := <-done
	if res.err != nil {
		return res.report, res.err
	}

	if tuiErr != nil {
		return res.report, fmt.Errorf("failed to launch tui: %w", tuiErr)
	}

	return res.report, nil
}
