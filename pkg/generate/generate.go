package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"

	"github.com/MacroPower/abischema/pkg/abi"
	"github.com/MacroPower/abischema/pkg/abierrors"
	"github.com/MacroPower/abischema/pkg/abifetch"
	"github.com/MacroPower/abischema/pkg/jsonschema"
	"github.com/MacroPower/abischema/pkg/tracing"
	"github.com/MacroPower/abischema/pkg/typegen"
)

var errNoFetcher = errors.New("no fetcher configured")

// Report summarizes a pipeline run.
type Report struct {
	Input      Input
	ABIPath    string
	OutputPath string
	// FetchOutput is the diagnostic output of the fetcher.
	FetchOutput string
	Warnings    []jsonschema.Warning
	Functions   int
}

// Generator runs the pipeline. Create instances with [NewGenerator].
type Generator struct {
	Fetcher  abifetch.Fetcher
	Compiler typegen.Compiler
	Tracer   tracing.Tracer
	// DownloadDir is where fetched ABIs are saved.
	DownloadDir string
	// RootName names the root type of the compiled output.
	RootName string
	subs     []func(any)
	// MaxDepth limits type schema nesting; see [jsonschema.Translator].
	MaxDepth int
	// Strict turns translation warnings into errors.
	Strict bool
}

// GeneratorOpts configures a [Generator].
type GeneratorOpts func(*Generator)

func WithDownloadDir(dir string) GeneratorOpts {
	return func(g *Generator) {
		g.DownloadDir = dir
	}
}

func WithRootName(name string) GeneratorOpts {
	return func(g *Generator) {
		g.RootName = name
	}
}

func WithMaxDepth(depth int) GeneratorOpts {
	return func(g *Generator) {
		g.MaxDepth = depth
	}
}

func WithStrict(strict bool) GeneratorOpts {
	return func(g *Generator) {
		g.Strict = strict
	}
}

func WithTracer(tracer tracing.Tracer) GeneratorOpts {
	return func(g *Generator) {
		g.Tracer = tracer
	}
}

// NewGenerator creates a new [Generator]. The compiler may be nil when only
// [Generator.Schema] is used.
func NewGenerator(fetcher abifetch.Fetcher, compiler typegen.Compiler, opts ...GeneratorOpts) *Generator {
	g := &Generator{
		Fetcher:     fetcher,
		Compiler:    compiler,
		Tracer:      tracing.NewLoggingTracer(nil),
		DownloadDir: ".",
		RootName:    jsonschema.DefaultRootName,
		MaxDepth:    jsonschema.DefaultMaxDepth,
		subs:        []func(any){},
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Subscribe registers f to receive pipeline events.
func (g *Generator) Subscribe(f func(any)) {
	g.subs = append(g.subs, f)
}

func (g *Generator) broadcastEvent(evt any) {
	for _, sub := range g.subs {
		sub(evt)
	}
}

//nolint:ireturn
func (g *Generator) startSpan(stage string) tracing.Span {
	if g.Tracer == nil {
		return tracing.NopTracer{}.StartSpan(stage)
	}

	return g.Tracer.StartSpan(stage)
}

// Run generates type declarations for arg and writes them to out. An empty
// out writes to [DefaultOutputPath] for the compiler's extension.
func (g *Generator) Run(ctx context.Context, arg, out string) (*Report, error) {
	report, err := g.run(ctx, arg, out)
	g.broadcastEvent(EventDone{Err: err, Report: report})

	return report, err
}

func (g *Generator) run(ctx context.Context, arg, out string) (*Report, error) {
	if g.Compiler == nil {
		return nil, fmt.Errorf("%w: no compiler configured", abierrors.ErrInvalidArguments)
	}

	doc, report, err := g.schema(ctx, arg)
	if err != nil {
		return report, err
	}

	if out == "" {
		out = DefaultOutputPath(g.Compiler.Extension())
	}

	var data []byte

	err = g.stage(StageCompile, g.Compiler.Extension(), func(span tracing.Span) error {
		var err error

		data, err = g.Compiler.Compile(ctx, doc, g.RootName)
		span.SetBaggageItem("bytes", len(data))

		return err
	})
	if err != nil {
		return report, err
	}

	err = g.stage(StageWrite, out, func(span tracing.Span) error {
		span.SetBaggageItem("path", out)

		return WriteFile(out, data)
	})
	if err != nil {
		return report, err
	}

	report.OutputPath = out

	slog.Info("wrote type declarations", "path", out, "functions", report.Functions)

	return report, nil
}

// Schema runs the pipeline up to and including the unresolved reference
// check and returns the JSON Schema document.
func (g *Generator) Schema(ctx context.Context, arg string) (*jsonschema.Document, *Report, error) {
	return g.schema(ctx, arg)
}

func (g *Generator) schema(ctx context.Context, arg string) (*jsonschema.Document, *Report, error) {
	input, err := ResolveInput(arg)
	if err != nil {
		return nil, nil, err
	}

	report := &Report{Input: input, ABIPath: input.Path}

	if !input.IsFile() {
		err := g.stage(StageFetch, input.ContractID, func(span tracing.Span) error {
			span.SetBaggageItem("contract", input.ContractID)

			if g.Fetcher == nil {
				return fmt.Errorf("%w: %w", abierrors.ErrFetchABI, errNoFetcher)
			}

			res, err := g.Fetcher.Fetch(ctx, input.ContractID, g.DownloadDir)
			if err != nil {
				return err
			}

			report.ABIPath = res.Path
			report.FetchOutput = res.Output

			return nil
		})
		if err != nil {
			return nil, report, err
		}
	}

	var abiDoc *abi.Document

	err = g.stage(StageLoad, report.ABIPath, func(span tracing.Span) error {
		span.SetBaggageItem("path", report.ABIPath)

		var err error

		abiDoc, err = abi.Load(report.ABIPath)

		return err
	})
	if err != nil {
		return nil, report, err
	}

	var doc *jsonschema.Document

	err = g.stage(StageTransform, "", func(span tracing.Span) error {
		var warnings []jsonschema.Warning

		t := jsonschema.NewTransformer(jsonschema.NewTranslator(g.MaxDepth))
		doc, warnings = t.Transform(abiDoc)

		refWarnings, err := jsonschema.UnresolvedRefs(doc)
		if err != nil {
			return err
		}

		report.Warnings = append(warnings, refWarnings...)
		report.Functions = doc.Properties.Len()

		span.SetBaggageItem("functions", report.Functions)
		span.SetBaggageItem("warnings", len(report.Warnings))

		for _, w := range report.Warnings {
			slog.Warn("degraded schema", "path", w.Path, "kind", w.Kind.String(), "detail", w.Detail)
			g.broadcastEvent(EventWarning{Warning: w.String()})
		}

		if g.Strict && len(report.Warnings) > 0 {
			var merr error
			for _, w := range report.Warnings {
				merr = multierror.Append(merr, w)
			}

			return fmt.Errorf("%w: %w", abierrors.ErrStrict, merr)
		}

		return nil
	})
	if err != nil {
		return nil, report, err
	}

	return doc, report, nil
}

func (g *Generator) stage(name, detail string, f func(span tracing.Span) error) error {
	g.broadcastEvent(EventStageStarted{Stage: name, Detail: detail})

	span := g.startSpan(name)
	err := f(span)
	if err != nil {
		span.SetBaggageItem("error", err.Error())
	}
	span.Finish()

	g.broadcastEvent(EventStageDone{Stage: name, Err: err})

	return err
}
