package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/iancoleman/strcase"
	"github.com/spf13/cobra"

	"github.com/MacroPower/abischema/pkg/abierrors"
	"github.com/MacroPower/abischema/pkg/abifetch"
	"github.com/MacroPower/abischema/pkg/abitui"
	"github.com/MacroPower/abischema/pkg/generate"
	"github.com/MacroPower/abischema/pkg/log"
	"github.com/MacroPower/abischema/pkg/typegen"
)

var (
	ErrGenerateFailed = errors.New("generate failed")

	errMissingInput = fmt.Errorf("%w: please provide a contract name or path to an ABI file as an argument",
		abierrors.ErrInvalidArguments)
)

func inputArg(_ *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return errMissingInput
	case 1:
		return nil
	}

	return fmt.Errorf("%w: expected one argument, received %d", abierrors.ErrInvalidArguments, len(args))
}

// TypeName normalizes a root type name to UpperCamelCase.
func TypeName(name string) string {
	return strcase.ToCamel(name)
}

func newGenerator(cfg *Config, compiler typegen.Compiler) (*generate.Generator, error) {
	fetcher, err := abifetch.NewFetcher(cfg.Source, cfg.FetcherOptions())
	if err != nil {
		return nil, err
	}

	return generate.NewGenerator(fetcher, compiler,
		generate.WithDownloadDir(cfg.DownloadDir),
		generate.WithRootName(TypeName(cfg.TypeName)),
		generate.WithMaxDepth(cfg.MaxDepth),
		generate.WithStrict(cfg.Strict),
	), nil
}

// isABIInputError reports whether err means the ABI document itself could
// not be read or parsed.
func isABIInputError(err error) bool {
	return errors.Is(err, abierrors.ErrReadABI) || errors.Is(err, abierrors.ErrParseABI)
}

func runGenerate(cc *cobra.Command, args *RootArgs, input string) error {
	cfg, err := loadConfig(cc, args)
	if err != nil {
		return err
	}

	target, err := typegen.ParseTarget(cfg.Target)
	if err != nil {
		return err
	}

	compiler, err := typegen.GetCompiler(target, cfg.CompilerOptions())
	if err != nil {
		return err
	}

	g, err := newGenerator(cfg, compiler)
	if err != nil {
		return err
	}

	useTUI := !cfg.Quiet && abitui.IsTerminal(cc.OutOrStdout())
	if useTUI {
		tui, err := abitui.NewGenerateTUI(cc.OutOrStdout(), args.GetLogLevel(), g)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrGenerateFailed, err)
		}

		_, err = tui.Run(cc.Context(), input, cfg.Output)

		// Route logs back to stderr once the TUI has exited.
		if h, herr := log.CreateHandlerWithStrings(cc.ErrOrStderr(), args.GetLogLevel(), args.GetLogFormat()); herr == nil {
			slog.SetDefault(slog.New(h))
		}

		if err != nil {
			return handleGenerateError(cc, err)
		}

		return nil
	}

	report, err := g.Run(cc.Context(), input, cfg.Output)
	if err != nil {
		return handleGenerateError(cc, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(cc.OutOrStdout(), "Types generated successfully: %s\n", report.OutputPath)
	}

	return nil
}

// handleGenerateError reports ABI read and parse failures without failing
// the command. All other errors are returned.
func handleGenerateError(cc *cobra.Command, err error) error {
	if isABIInputError(err) {
		slog.Error("failed to load abi", "err", err)
		cc.PrintErrf("Failed to generate types: %v\n", err)

		return nil
	}

	return fmt.Errorf("%w: %w", ErrGenerateFailed, err)
}
