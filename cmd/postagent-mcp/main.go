// postagent-mcp serves the LinkedIn post agent tools over MCP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arno-dev/postagent-mcp/internal/version"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(errOut, "Error:", err) //nolint:errcheck
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		return exitUsage
	}
	return exitOK
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   version.Name,
		Short: "MCP gateway for the LinkedIn post agent",
		Long: "postagent-mcp exposes the LinkedIn post agent backend as MCP tools over streamable HTTP.\n" +
			"Run without a subcommand to start the server.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.SetVersionTemplate(version.String() + "\n")

	pf := root.PersistentFlags()
	pf.String(flagConfig, "", "Path to a YAML config file (default: $POSTAGENT_CONFIG)")
	pf.String(flagBackendURL, "", "Post agent backend base URL (default: $BACKEND_BASE_URL or http://localhost:8080)")
	pf.Duration(flagBackendTimeout, 0, "Per-call backend timeout, 0s for none (default: $BACKEND_TIMEOUT or 120s)")
	pf.String(flagLogLevel, "", "Log level: debug, info, warn, error")
	pf.String(flagLogFormat, "", "Log format: text or json")

	addListenFlags(root)

	root.AddCommand(newServeCmd())
	root.AddCommand(newToolsCmd())
	root.AddCommand(newCallCmd())
	return root
}
