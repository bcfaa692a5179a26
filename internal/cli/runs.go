package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillhw/omir/internal/store"
)

// RunsOptions holds flags for the runs command group.
type RunsOptions struct {
	*RootOptions
	ConfigPath string
	StorePath  string
}

// NewRunsCommand creates the runs command group.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect the emission run ledger",
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&opts.StorePath, "store", "", "run-ledger database path")

	cmd.AddCommand(newRunsListCommand(opts))
	cmd.AddCommand(newRunsShowCommand(opts))

	return cmd
}

func newRunsListCommand(opts *RunsOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List recorded emission runs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunsList(opts, cmd)
		},
	}
}

func newRunsShowCommand(opts *RunsOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <run-id>",
		Short:         "Show one recorded run with artifact and symbols",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunsShow(opts, args[0], cmd)
		},
	}
}

func (opts *RunsOptions) openStore(formatter *OutputFormatter) (*store.Store, error) {
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, fail(formatter, "CONFIG_ERROR", err.Error())
	}
	path := cfg.Store
	if opts.StorePath != "" {
		path = opts.StorePath
	}
	if path == "" {
		return nil, fail(formatter, "NO_STORE", "no run-ledger path given (--store or config)")
	}
	s, err := store.Open(path)
	if err != nil {
		return nil, fail(formatter, "STORE_ERROR", err.Error())
	}
	return s, nil
}

func runRunsList(opts *RunsOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s, err := opts.openStore(formatter)
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.ListRuns(context.Background())
	if err != nil {
		return fail(formatter, "STORE_ERROR", err.Error())
	}

	if err := formatter.Success(runs); err != nil {
		return err
	}
	if formatter.Format == "text" {
		if len(runs) == 0 {
			fmt.Fprintln(formatter.Writer, "No recorded runs")
			return nil
		}
		for _, r := range runs {
			status := "ok"
			if !r.Succeeded {
				status = "failed"
			}
			fmt.Fprintf(formatter.Writer, "%s  %s  %-6s  %s  %s\n",
				r.ID, r.CreatedAt, status, r.Circuit, r.OutputPath)
		}
	}
	return nil
}

func runRunsShow(opts *RunsOptions, runID string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s, err := opts.openStore(formatter)
	if err != nil {
		return err
	}
	defer s.Close()

	run, err := s.GetRun(context.Background(), runID)
	if errors.Is(err, store.ErrNotFound) {
		return fail(formatter, "NOT_FOUND", fmt.Sprintf("run %s not found", runID))
	}
	if err != nil {
		return fail(formatter, "STORE_ERROR", err.Error())
	}

	if err := formatter.Success(run); err != nil {
		return err
	}
	if formatter.Format == "text" {
		status := "ok"
		if !run.Succeeded {
			status = "failed"
		}
		fmt.Fprintf(formatter.Writer, "Run %s (%s)\n", run.ID, status)
		fmt.Fprintf(formatter.Writer, "  circuit: %s\n", run.Circuit)
		fmt.Fprintf(formatter.Writer, "  created: %s\n", run.CreatedAt)
		if run.OutputPath != "" {
			fmt.Fprintf(formatter.Writer, "  output:  %s\n", run.OutputPath)
		}
		if run.ArtifactHash != "" {
			fmt.Fprintf(formatter.Writer, "  hash:    %s\n", run.ArtifactHash)
		}
		for i, sym := range run.Symbols {
			fmt.Fprintf(formatter.Writer, "  {{%d}} = %s\n", i, sym)
		}
		for _, d := range run.Diagnostics {
			fmt.Fprintf(formatter.Writer, "  error: %s\n", d)
		}
		if run.ArtifactJSON != nil {
			fmt.Fprintf(formatter.Writer, "%s\n", run.ArtifactJSON)
		}
	}
	return nil
}
