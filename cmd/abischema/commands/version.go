package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MacroPower/abischema/pkg/version"
)

func GetVersionString() string {
	return version.String()
}

// NewVersionCmd returns the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version of the abischema CLI",
		Run: func(cc *cobra.Command, _ []string) {
			fmt.Fprintln(cc.OutOrStdout(), GetVersionString())
		},
	}
}
