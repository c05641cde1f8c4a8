// Package cmd holds cobra subcommands shared by the todo-mcp binaries.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/d-kuro/todo-mcp/pkg/version"
)

// NewVersionCmd creates a new version command
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version information of todo-mcp including git commit, build date, and Go version.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			return writeVersion(cmd.OutOrStdout(), version.GetVersion(), jsonFlag)
		},
	}

	cmd.Flags().BoolP("json", "j", false, "Output version information as JSON")
	return cmd
}

func writeVersion(w io.Writer, v version.Info, asJSON bool) error {
	if !asJSON {
		_, err := fmt.Fprintln(w, v.String())
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("error encoding version info: %w", err)
	}
	return nil
}
