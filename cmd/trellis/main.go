package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jward/trellis"
	"github.com/jward/trellis/internal/config"
)

var flagFormat string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "trellis",
	Short:         "Template-aware type analysis for decorated TypeScript components",
	Long:          "Trellis analyzes decorator-based component frameworks embedded in TypeScript sources: it resolves modules, components, directives, and pipes, locates inline and external templates, and reports declaration diagnostics.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFormat(flagFormat)
	},
	// No Run; prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format: json|text")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(sourceCmd)
}

// buildAnalyzer loads the workspace under dir and wires an Analyzer over it.
func buildAnalyzer(dir string) (*trellis.Analyzer, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}

	project, err := config.Find(abs)
	if err != nil {
		return nil, fmt.Errorf("resolve project: %w", err)
	}

	ws := trellis.NewWorkspace()
	if err := ws.LoadDirectory(abs, func(rel string) bool {
		return project.Match(rel)
	}); err != nil {
		return nil, fmt.Errorf("load workspace: %w", err)
	}

	return trellis.New(ws, abs, trellis.WithProject(project))
}

func resolveTargetDir(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return dir, nil
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Resolve framework declarations and report diagnostics",
	Long:  "Parses the workspace, analyzes every framework module, and prints one entry per decorated class with its resolved metadata and collected diagnostics.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	dir, err := resolveTargetDir(args)
	if err != nil {
		return err
	}
	a, err := buildAnalyzer(dir)
	if err != nil {
		return err
	}

	// Force the module walk first so declaration diagnostics include
	// module-level failures.
	am := a.AnalyzedModules()

	var out analyzeOutput
	out.Modules = len(am.Modules)
	for _, file := range a.SourceFiles() {
		for _, d := range a.DeclarationsIn(file) {
			out.Declarations = append(out.Declarations, newCLIDeclaration(d))
		}
	}
	return writeOutput(cmd.OutOrStdout(), flagFormat, out, formatAnalyzeText)
}

var templatesCmd = &cobra.Command{
	Use:   "templates [path]",
	Short: "List template content across the workspace",
	Long:  "Lists every inline template with its span and owning component, plus the files referenced as external templates.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTemplates,
}

func runTemplates(cmd *cobra.Command, args []string) error {
	dir, err := resolveTargetDir(args)
	if err != nil {
		return err
	}
	a, err := buildAnalyzer(dir)
	if err != nil {
		return err
	}

	var out templatesOutput
	out.External = a.TemplateReferences()
	for _, file := range a.SourceFiles() {
		for _, src := range a.TemplateSourcesFor(file) {
			out.Inline = append(out.Inline, newCLITemplate(file, src))
		}
	}
	return writeOutput(cmd.OutOrStdout(), flagFormat, out, formatTemplatesText)
}

var (
	flagFile   string
	flagOffset int
)

var sourceCmd = &cobra.Command{
	Use:   "source --file F --offset N",
	Short: "Show the template source at a position",
	Long:  "Resolves the template content containing a byte offset in a file, printing its span, text, and owning declaration. Prints nothing when the position is not inside a template.",
	RunE:  runSource,
}

func init() {
	sourceCmd.Flags().StringVar(&flagFile, "file", "", "source file path (required)")
	sourceCmd.Flags().IntVar(&flagOffset, "offset", 0, "byte offset within the file")
	_ = sourceCmd.MarkFlagRequired("file")
}

func runSource(cmd *cobra.Command, args []string) error {
	abs, err := filepath.Abs(flagFile)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", flagFile, err)
	}
	a, err := buildAnalyzer(filepath.Dir(abs))
	if err != nil {
		return err
	}

	src := a.TemplateSourceAt(abs, flagOffset)
	if src == nil {
		// Absence is the normal outcome, not an error.
		return nil
	}
	out := newCLITemplate(abs, src)
	return writeOutput(cmd.OutOrStdout(), flagFormat, out, formatTemplateText)
}
