package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jward/trellis"
)

// validateFormat checks the --format flag value.
func validateFormat(format string) error {
	switch format {
	case "json", "text":
		return nil
	}
	return fmt.Errorf("invalid format %q: must be json or text", format)
}

// writeOutput renders v as JSON or through the given text formatter.
func writeOutput[T any](w io.Writer, format string, v T, text func(io.Writer, T)) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w, v)
	return nil
}

// CLIDeclaration is the output shape for one resolved declaration.
type CLIDeclaration struct {
	File     string              `json:"file"`
	Name     string              `json:"name"`
	Kind     string              `json:"kind"`
	Selector string              `json:"selector,omitempty"`
	PipeName string              `json:"pipeName,omitempty"`
	Span     trellis.Span        `json:"span"`
	Errors   []trellis.Diagnostic `json:"errors,omitempty"`
}

func newCLIDeclaration(d *trellis.Declaration) CLIDeclaration {
	out := CLIDeclaration{
		File:   d.Type.FilePath,
		Name:   d.Type.Name,
		Span:   d.Span,
		Errors: d.Errors,
	}
	if d.Metadata != nil {
		out.Kind = d.Metadata.Kind.String()
		out.Selector = d.Metadata.Selector
		out.PipeName = d.Metadata.PipeName
	}
	return out
}

type analyzeOutput struct {
	Modules      int              `json:"modules"`
	Declarations []CLIDeclaration `json:"declarations"`
}

func formatAnalyzeText(w io.Writer, out analyzeOutput) {
	fmt.Fprintf(w, "Modules: %d\n\n", out.Modules)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tSELECTOR\tFILE\tERRORS")
	for _, d := range out.Declarations {
		selector := d.Selector
		if d.PipeName != "" {
			selector = d.PipeName
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", d.Name, d.Kind, selector, d.File, len(d.Errors))
	}
	tw.Flush()
}

// CLITemplate is the output shape for one template source.
type CLITemplate struct {
	File        string       `json:"file"`
	Span        trellis.Span `json:"span"`
	Declaration string       `json:"declaration"`
	Text        string       `json:"text"`
}

func newCLITemplate(file string, src *trellis.TemplateSource) CLITemplate {
	return CLITemplate{
		File:        file,
		Span:        src.Span,
		Declaration: src.Declaration.String(),
		Text:        src.Text,
	}
}

type templatesOutput struct {
	Inline   []CLITemplate `json:"inline"`
	External []string      `json:"external"`
}

func formatTemplatesText(w io.Writer, out templatesOutput) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tSPAN\tDECLARATION")
	for _, t := range out.Inline {
		fmt.Fprintf(tw, "%s\t%d-%d\t%s\n", t.File, t.Span.Start, t.Span.End, t.Declaration)
	}
	tw.Flush()
	if len(out.External) > 0 {
		fmt.Fprintln(w, "\nExternal templates:")
		for _, path := range out.External {
			fmt.Fprintf(w, "  %s\n", path)
		}
	}
}

func formatTemplateText(w io.Writer, t CLITemplate) {
	fmt.Fprintf(w, "%s:%d-%d (%s)\n%s\n", t.File, t.Span.Start, t.Span.End, t.Declaration, t.Text)
}
