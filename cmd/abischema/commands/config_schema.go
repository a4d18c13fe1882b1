package commands

import (
	"encoding/json"
	"fmt"

	invopop "github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
)

// ConfigSchema returns the JSON Schema of the configuration file.
func ConfigSchema() ([]byte, error) {
	r := &invopop.Reflector{
		ExpandedStruct:             true,
		DoNotReference:             true,
		AllowAdditionalProperties:  false,
		RequiredFromJSONSchemaTags: true,
	}

	s := r.Reflect(&Config{})
	s.Title = "abischema configuration"

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal config schema: %w", err)
	}

	return append(b, '\n'), nil
}

// NewConfigSchemaCmd returns the config-schema command.
func NewConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config-schema",
		Short: "Print the JSON Schema of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			b, err := ConfigSchema()
			if err != nil {
				return err
			}

			_, err = cc.OutOrStdout().Write(b)
			if err != nil {
				return fmt.Errorf("write config schema: %w", err)
			}

			return nil
		},
		SilenceUsage: true,
	}
}
