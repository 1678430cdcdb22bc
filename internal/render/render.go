// Package render turns detection results into user-facing output.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/z0mbix/whence/internal/detector"
)

// Format names an output style.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatShort    Format = "short"
	FormatTemplate Format = "template"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "short":
		return FormatShort, nil
	case "template":
		return FormatTemplate, nil
	}
	return "", fmt.Errorf("unsupported format: %s (supported: text, json, yaml, short, template)", s)
}

// Renderer writes detection results in a fixed format.
type Renderer struct {
	format   Format
	template string // Go template source, FormatTemplate only
}

// New creates a renderer. tmpl is only consulted for FormatTemplate.
func New(format Format, tmpl string) *Renderer {
	return &Renderer{format: format, template: tmpl}
}

// Render writes all results to w.
func (r *Renderer) Render(w io.Writer, results []*detector.Result) error {
	switch r.format {
	case FormatJSON:
		return renderJSON(w, results)
	case FormatYAML:
		return renderYAML(w, results)
	case FormatShort:
		for _, res := range results {
			fmt.Fprintln(w, res.ManagerID)
		}
		return nil
	case FormatTemplate:
		return r.renderTemplate(w, results)
	default:
		for i, res := range results {
			if i > 0 {
				fmt.Fprintln(w)
			}
			renderText(w, res)
		}
		return nil
	}
}

func renderJSON(w io.Writer, results []*detector.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(results) == 1 {
		return enc.Encode(results[0])
	}
	return enc.Encode(results)
}

func renderYAML(w io.Writer, results []*detector.Result) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	var err error
	if len(results) == 1 {
		err = enc.Encode(results[0])
	} else {
		err = enc.Encode(results)
	}
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

func (r *Renderer) renderTemplate(w io.Writer, results []*detector.Result) error {
	tmpl, err := template.New("result").Funcs(sprig.FuncMap()).Parse(r.template)
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}
	for _, res := range results {
		if err := tmpl.Execute(w, res); err != nil {
			return fmt.Errorf("executing template: %w", err)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func renderText(w io.Writer, res *detector.Result) {
	fmt.Fprintf(w, "%s was installed by: %s %s\n",
		color.New(color.Bold).Sprint(res.Command),
		color.New(color.FgCyan, color.Bold).Sprint(res.ManagerName),
		statusLabel(res.Status),
	)

	dim := color.New(color.Faint)
	if res.Package != "" {
		fmt.Fprintf(w, "  %s: %s\n", dim.Sprint("Package"), res.Package)
	}
	if res.Version != "" {
		fmt.Fprintf(w, "  %s: %s\n", dim.Sprint("Version"), res.Version)
	}
	fmt.Fprintf(w, "  %s: %s\n", dim.Sprint("Location"), res.Location)

	if len(res.SymlinkChain) > 1 {
		fmt.Fprintf(w, "  %s:\n", dim.Sprint("Symlink chain"))
		for _, hop := range res.SymlinkChain {
			fmt.Fprintf(w, "    %s\n", hop)
		}
	}
	if len(res.Attempts) > 0 {
		fmt.Fprintf(w, "  %s:\n", dim.Sprint("Attempts"))
		for _, a := range res.Attempts {
			outcome := "no match"
			if a.Matched {
				outcome = "match"
			}
			fmt.Fprintf(w, "    %s against %s: %s\n", a.Signature, a.Path, outcome)
		}
	}
	if res.VerifyError != "" {
		fmt.Fprintf(w, "  %s: %s\n", dim.Sprint("Verification"), res.VerifyError)
	}
}

func statusLabel(s detector.Status) string {
	switch s {
	case detector.StatusVerified:
		return color.GreenString("(verified)")
	case detector.StatusPattern:
		return color.YellowString("(pattern match)")
	default:
		return color.RedString("(unknown)")
	}
}
