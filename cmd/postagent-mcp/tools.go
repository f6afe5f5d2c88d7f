package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/spf13/cobra"

	"github.com/arno-dev/postagent-mcp/internal/domain/posts"
)

type toolListing struct {
	Name        string             `json:"name"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	BackendPath string             `json:"backendPath"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tools the gateway advertises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return printTools(cmd, asJSON)
		},
	}
	cmd.Flags().Bool("json", false, "Print definitions and input schemas as JSON")
	return cmd
}

func printTools(cmd *cobra.Command, asJSON bool) error {
	defs := posts.NewRegistry().Definitions()

	if asJSON {
		listing := make([]toolListing, 0, len(defs))
		for _, def := range defs {
			listing = append(listing, toolListing{
				Name:        def.Name,
				Title:       def.Title,
				Description: def.Description,
				BackendPath: def.BackendPath,
				InputSchema: def.Schema.JSONSchema(),
			})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(listing); err != nil {
			return exitError(exitFailure, "write tools: %v", err)
		}
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPATH\tREQUIRED\tTITLE") //nolint:errcheck
	for _, def := range defs {
		required := "-"
		if s := def.Schema.JSONSchema(); s != nil && len(s.Required) > 0 {
			required = strings.Join(s.Required, ",")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", def.Name, def.BackendPath, required, def.Title) //nolint:errcheck
	}
	if err := tw.Flush(); err != nil {
		return exitError(exitFailure, "write tools: %v", err)
	}
	return nil
}
