package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/MacroPower/abischema/pkg/abi"
	"github.com/MacroPower/abischema/pkg/abifetch"
	"github.com/MacroPower/abischema/pkg/generate"
)

var (
	inspectTitleStyle = lipgloss.NewStyle().Bold(true)
	inspectNameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("211"))
	inspectViewStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	inspectCallStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	inspectDimStyle   = lipgloss.NewStyle().Faint(true)
)

// NewInspectCmd returns the inspect command.
func NewInspectCmd(args *RootArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <contract-id | ./path.abi.json>",
		Short: "List the functions and parameters of a contract ABI",
		Args:  inputArg,
		RunE: func(cc *cobra.Command, posArgs []string) error {
			cfg, err := loadConfig(cc, args)
			if err != nil {
				return err
			}

			input, err := generate.ResolveInput(posArgs[0])
			if err != nil {
				return err
			}

			path := input.Path
			if !input.IsFile() {
				fetcher, err := abifetch.NewFetcher(cfg.Source, cfg.FetcherOptions())
				if err != nil {
					return err
				}

				res, err := fetcher.Fetch(cc.Context(), input.ContractID, cfg.DownloadDir)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrGenerateFailed, err)
				}

				path = res.Path
			}

			doc, err := abi.Load(path)
			if err != nil {
				return handleGenerateError(cc, err)
			}

			if err := printInspect(cc.OutOrStdout(), doc); err != nil {
				return fmt.Errorf("%w: %w", ErrGenerateFailed, err)
			}

			return nil
		},
		SilenceUsage: true,
	}

	addFetchFlags(cmd.Flags())

	return cmd
}

func printInspect(w io.Writer, doc *abi.Document) error {
	b := &strings.Builder{}

	title := doc.Metadata.Name
	if title == "" {
		title = "contract"
	}

	if doc.Metadata.Version != "" {
		title += " " + doc.Metadata.Version
	}

	fmt.Fprintf(b, "%s %s\n", inspectTitleStyle.Render(title),
		inspectDimStyle.Render(fmt.Sprintf("(%d functions)", len(doc.Functions))))

	for _, fn := range doc.Functions {
		kind := inspectCallStyle.Render(abi.KindCall)
		if fn.IsView() {
			kind = inspectViewStyle.Render(abi.KindView)
		}

		fmt.Fprintf(b, "\n%s %s", inspectNameStyle.Render(fn.Name), kind)

		if len(fn.Modifiers) > 0 {
			fmt.Fprintf(b, " %s", inspectDimStyle.Render("["+strings.Join(fn.Modifiers, ", ")+"]"))
		}

		b.WriteString("\n")

		for _, p := range fn.Arguments() {
			marker := ""
			if !p.Required() {
				marker = "?"
			}

			fmt.Fprintf(b, "  %s%s: %s\n", p.Name, marker, typeString(p.TypeSchema))
		}
	}

	_, err := io.WriteString(w, b.String())

	return err //nolint:wrapcheck
}

// typeString renders a type schema compactly, e.g. `AccountId`, `string[]`
// or `{receiver_id, amount}`.
func typeString(s *abi.TypeSchema) string {
	switch s.Kind() {
	case abi.KindReference:
		return s.Ref[strings.LastIndex(s.Ref, "/")+1:]

	case abi.KindArray:
		if s.Items == nil {
			return "array"
		}

		return typeString(s.Items) + "[]"

	case abi.KindObject:
		if s.Properties == nil {
			return "object"
		}

		names := make([]string, 0, s.Properties.Len())
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			names = append(names, pair.Key)
		}

		return "{" + strings.Join(names, ", ") + "}"

	case abi.KindPrimitive, abi.KindUnrecognized:
	}

	return s.TypeLabel()
}
