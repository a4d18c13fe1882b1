package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MacroPower/abischema/pkg/generate"
	"github.com/MacroPower/abischema/pkg/typegen"
)

const schemaExample = `  # Print the JSON Schema of a contract's call arguments
  abischema schema wrap.near

  # Print it as YAML, with a custom root title
  abischema schema --format yaml --type_name FtArgs ./ft.abi.json
`

// NewSchemaCmd returns the schema command.
func NewSchemaCmd(args *RootArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schema <contract-id | ./path.abi.json>",
		Short:   "Print the JSON Schema of a contract ABI",
		Example: schemaExample,
		Args:    inputArg,
		RunE: func(cc *cobra.Command, posArgs []string) error {
			cfg, err := loadConfig(cc, args)
			if err != nil {
				return err
			}

			format, err := typegen.ParseSchemaFormat(cfg.Format)
			if err != nil {
				return err
			}

			g, err := newGenerator(cfg, nil)
			if err != nil {
				return err
			}

			doc, _, err := g.Schema(cc.Context(), posArgs[0])
			if err != nil {
				return handleGenerateError(cc, err)
			}

			if cfg.TypeName != "" {
				doc = doc.WithTitle(TypeName(cfg.TypeName))
			}

			out, err := typegen.EncodeSchema(doc, format)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrGenerateFailed, err)
			}

			if cfg.Output != "" {
				if err := generate.WriteFile(cfg.Output, out); err != nil {
					return fmt.Errorf("%w: %w", ErrGenerateFailed, err)
				}

				return nil
			}

			_, err = cc.OutOrStdout().Write(out)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrGenerateFailed, err)
			}

			return nil
		},
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	addFetchFlags(flags)
	flags.String("format", "json", "Output format (json, yaml)")
	flags.StringP("output", "o", "", "Write the schema to a file instead of stdout")
	flags.String("type_name", "", "Set the schema title")

	must(cmd.MarkFlagFilename("output"))

	return cmd
}
