package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MacroPower/abischema/pkg/abitui"
	"github.com/MacroPower/abischema/pkg/log"
)

const rootExample = `  # Download the ABI of a mainnet contract and generate TypeScript types
  abischema wrap.near

  # Use a local ABI file
  abischema ./ft.abi.json

  # Generate KCL schemas from a testnet contract via JSON-RPC
  abischema --source rpc --network testnet --target kcl -o ./types.k ft.testnet
`

var ErrLogHandlerFailed = errors.New("log handler failed")

// NewRootCmd returns the root command. Run with a single argument, it
// generates type declarations.
func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	args := NewRootArgs()

	cmd := &cobra.Command{
		Use:           name + " <contract-id | ./path.abi.json>",
		Short:         shortDesc,
		Long:          longDesc,
		Example:       rootExample,
		Args:          inputArg,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       GetVersionString(),
		RunE: func(cc *cobra.Command, posArgs []string) error {
			return runGenerate(cc, args, posArgs[0])
		},
	}

	cmd.PersistentFlags().StringVar(args.logLevel, "log_level", "warn", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(args.logFormat, "log_format", "text", "Set the log format (text, logfmt, json)")
	cmd.PersistentFlags().StringVar(args.configFile, "config", "", "Path to a YAML configuration file")
	cmd.PersistentFlags().BoolVar(args.noColor, "no_color", false, "Disable colored output")

	must(cmd.MarkPersistentFlagFilename("config", "yaml", "yml"))

	addGenerateFlags(cmd)

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		h, err := log.CreateHandlerWithStrings(
			cc.ErrOrStderr(),
			args.GetLogLevel(),
			args.GetLogFormat(),
		)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLogHandlerFailed, err)
		}

		slog.SetDefault(slog.New(h))

		if args.GetNoColor() {
			abitui.DisableColor()
		}

		slog.Debug("ready to go")

		return nil
	}

	cmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		slog.Debug("shutting down")

		return nil
	}

	cmd.AddCommand(NewSchemaCmd(args))
	cmd.AddCommand(NewInspectCmd(args))
	cmd.AddCommand(NewConfigSchemaCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
