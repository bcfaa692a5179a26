package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quillhw/omir/internal/emit"
	"github.com/quillhw/omir/internal/ir"
	"github.com/quillhw/omir/internal/loader"
	"github.com/quillhw/omir/internal/store"
)

// EmitOptions holds flags for the emit command.
type EmitOptions struct {
	*RootOptions
	Output     string // output filename override (pass parameter)
	ConfigPath string
	StorePath  string
}

// EmitResult is the data payload of a successful emit.
type EmitResult struct {
	RunID        string   `json:"run_id,omitempty"`
	OutputPath   string   `json:"output_path,omitempty"`
	ArtifactHash string   `json:"artifact_hash,omitempty"`
	Symbols      []string `json:"symbols"`
	Emitted      bool     `json:"emitted"`
	Diagnostics  []string `json:"diagnostics,omitempty"`
}

// NewEmitCommand creates the emit command.
func NewEmitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EmitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "emit <design-bundle>",
		Short: "Render a design's OMIR annotations to a JSON artifact",
		Long: `Render a design's object model (OMIR) annotations to a JSON artifact.

The design bundle is a CUE or JSON file describing the circuit, its
annotations, and its non-local anchors. The output path comes from the
--output flag, the config file, or the design's OMIRFileAnnotation, in
that order of precedence. Without any of them the command is a no-op.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmit(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path (overrides config and annotations)")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "YAML config file")
	cmd.Flags().StringVar(&opts.StorePath, "store", "", "run-ledger database path")

	return cmd
}

func runEmit(opts *EmitOptions, bundlePath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return fail(formatter, "CONFIG_ERROR", err.Error())
	}
	output := cfg.Output
	if opts.Output != "" {
		output = opts.Output
	}
	storePath := cfg.Store
	if opts.StorePath != "" {
		storePath = opts.StorePath
	}

	_, circuit, err := loader.LoadFile(bundlePath)
	if err != nil {
		return fail(formatter, "LOAD_ERROR", err.Error())
	}
	formatter.VerboseLog("Loaded circuit %s from %s", circuit.Name, bundlePath)

	artifact, diags, err := emit.Run(circuit, emit.Options{OutputFilename: output})
	diagMessages := diagStrings(diags)
	recordRun(formatter, storePath, circuit, artifact, diagMessages, err == nil)
	if err != nil {
		printDiagnostics(formatter, diags)
		return fail(formatter, "EMIT_ERROR", err.Error())
	}

	if artifact == nil {
		// Deliberate no-op: nothing named an output file.
		if err := formatter.Success(&EmitResult{Emitted: false}); err != nil {
			return err
		}
		if formatter.Format == "text" {
			fmt.Fprintln(formatter.Writer, "Nothing to emit: no output file specified by flag, config, or annotation")
		}
		return nil
	}

	if err := writeArtifact(artifact); err != nil {
		return fail(formatter, "WRITE_ERROR", err.Error())
	}

	result := &EmitResult{
		OutputPath:   artifact.OutputPath,
		ArtifactHash: ir.ArtifactID(artifact.JSON),
		Symbols:      symbolStrings(artifact.Symbols),
		Emitted:      true,
	}
	if err := formatter.Success(result); err != nil {
		return err
	}
	if formatter.Format == "text" {
		fmt.Fprintf(formatter.Writer, "✓ Wrote %s (%d symbol(s))\n", artifact.OutputPath, len(artifact.Symbols))
	}
	return nil
}

// writeArtifact writes the artifact text to its destination path.
func writeArtifact(artifact *emit.Artifact) error {
	if dir := filepath.Dir(artifact.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(artifact.OutputPath, artifact.JSON, 0644); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}
	return nil
}

// recordRun appends the run to the ledger when one is configured. Ledger
// problems are reported but never fail the emission itself.
func recordRun(formatter *OutputFormatter, storePath string, circuit *ir.Op, artifact *emit.Artifact, diags []string, succeeded bool) {
	if storePath == "" {
		return
	}
	s, err := store.Open(storePath)
	if err != nil {
		fmt.Fprintf(formatter.ErrWriter, "warning: run ledger unavailable: %v\n", err)
		return
	}
	defer s.Close()

	rec := store.RunRecord{
		Circuit:     circuit.Name,
		Diagnostics: diags,
		Succeeded:   succeeded,
	}
	if artifact != nil {
		rec.OutputPath = artifact.OutputPath
		rec.ArtifactJSON = artifact.JSON
		rec.ExcludeFromFileList = artifact.ExcludeFromFileList
		rec.Symbols = symbolStrings(artifact.Symbols)
	}
	runID, err := s.RecordRun(context.Background(), rec)
	if err != nil {
		fmt.Fprintf(formatter.ErrWriter, "warning: recording run: %v\n", err)
		return
	}
	formatter.VerboseLog("Recorded run %s", runID)
}

func symbolStrings(symbols []ir.SymbolRefAttr) []string {
	out := make([]string, len(symbols))
	for i, s := range symbols {
		out[i] = string(s)
	}
	return out
}

func diagStrings(diags []emit.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.String()
	}
	return out
}

func printDiagnostics(formatter *OutputFormatter, diags []emit.Diagnostic) {
	if formatter.Format != "text" {
		return
	}
	for _, d := range diags {
		fmt.Fprintf(formatter.Writer, "error: %s\n", d)
	}
}

func fail(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return fmt.Errorf("%s: %s", code, message)
}
