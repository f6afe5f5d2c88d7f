package main

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arno-dev/postagent-mcp/internal/domain/posts"
	"github.com/arno-dev/postagent-mcp/internal/domain/tool"
	"github.com/arno-dev/postagent-mcp/internal/infra/backend"
	"github.com/arno-dev/postagent-mcp/internal/infra/logging"
)

func newCallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Invoke one tool against the backend and print the result",
		Long: "call dispatches a single tool invocation without an MCP client.\n" +
			"Input is read from --input, --input-file, or stdin when neither is set.",
		Example: `  postagent-mcp call posts_ideas --input '{"body":{"topic":"CI"}}'
  echo '{"text":"Hello"}' | postagent-mcp call posts_package`,
		Args: cobra.ExactArgs(1),
		RunE: runCall,
	}
	cmd.Flags().String("input", "", "Tool arguments as JSON")
	cmd.Flags().String("input-file", "", "Read tool arguments from a JSON file")
	return cmd
}

func runCall(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	input, err := readCallInput(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return exitError(exitUsage, "%v", err)
	}
	d := tool.NewDispatcher(posts.NewRegistry(),
		backend.NewClient(cfg.BackendBaseURL, cfg.BackendTimeout),
		tool.WithLogger(logger),
	)

	res, err := d.Dispatch(cmd.Context(), tool.Invocation{ToolName: args[0], Input: input})
	switch {
	case errors.Is(err, tool.ErrToolNotFound), errors.Is(err, tool.ErrValidation):
		return exitError(exitUsage, "%v", err)
	case err != nil:
		return exitError(exitFailure, "%v", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return exitError(exitFailure, "write result: %v", err)
	}
	return nil
}

func readCallInput(cmd *cobra.Command) (json.RawMessage, error) {
	inline, _ := cmd.Flags().GetString("input")
	path, _ := cmd.Flags().GetString("input-file")

	var raw []byte
	switch {
	case inline != "" && path != "":
		return nil, exitError(exitUsage, "--input and --input-file are mutually exclusive")
	case inline != "":
		raw = []byte(inline)
	case path != "":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, exitError(exitUsage, "read input file: %v", err)
		}
		raw = b
	default:
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, exitError(exitUsage, "read stdin: %v", err)
		}
		raw = b
	}

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil, nil
	}
	if !json.Valid([]byte(trimmed)) {
		return nil, exitError(exitUsage, "input is not valid JSON")
	}
	return json.RawMessage(trimmed), nil
}
