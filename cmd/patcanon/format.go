package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-set/v3"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/patcanon/internal/can"
	"github.com/funvibe/patcanon/internal/config"
	"github.com/funvibe/patcanon/internal/pipeline"
	"github.com/funvibe/patcanon/internal/prettyprinter"
	"github.com/funvibe/patcanon/internal/report"
	"github.com/funvibe/patcanon/internal/symbols"
)

var validFormats = []string{config.FormatText, config.FormatYAML}

// validateFormat checks that the --format flag value is recognized.
func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}

type unitView struct {
	Module string     `yaml:"module"`
	File   string     `yaml:"file"`
	RunID  int64      `yaml:"run,omitempty"`
	Cases  []caseView `yaml:"cases"`
}

type caseView struct {
	Name        string              `yaml:"name"`
	Context     string              `yaml:"context"`
	Header      bool                `yaml:"header,omitempty"`
	Skipped     bool                `yaml:"skipped,omitempty"`
	Pattern     string              `yaml:"pattern,omitempty"`
	Bindings    []bindingView       `yaml:"bindings,omitempty"`
	References  map[string][]string `yaml:"references,omitempty"`
	Diagnostics []string            `yaml:"diagnostics,omitempty"`
}

type bindingView struct {
	Symbol string `yaml:"symbol"`
	Region string `yaml:"region"`
}

func buildUnitView(ctx *pipeline.PipelineContext) unitView {
	view := unitView{Module: ctx.Unit.Module, File: ctx.Unit.File, RunID: ctx.RunID}
	pp := prettyprinter.ForEnv(ctx.Env)
	for _, r := range ctx.Results {
		cv := caseView{Name: r.Name, Context: r.Context.Key(), Header: r.Header, Skipped: r.Skipped()}
		if !r.Skipped() {
			cv.Pattern = pp.Pattern(r.Pattern.Value)
			for _, b := range r.Bindings {
				cv.Bindings = append(cv.Bindings, bindingView{Symbol: pp.Symbol(b.Symbol), Region: b.Region.String()})
			}
			cv.References = referencesView(pp, r.Output.References)
		}
		for _, d := range r.Diagnostics {
			cv.Diagnostics = append(cv.Diagnostics, d.Error())
		}
		view.Cases = append(view.Cases, cv)
	}
	return view
}

func referencesView(pp *prettyprinter.PatternPrinter, refs can.References) map[string][]string {
	out := make(map[string][]string)
	add := func(key string, s *set.Set[symbols.Symbol]) {
		if s.Size() == 0 {
			return
		}
		for _, sym := range can.Sorted(s) {
			out[key] = append(out[key], pp.Symbol(sym))
		}
	}
	add("value_lookups", refs.ValueLookups)
	add("referenced_type_defs", refs.ReferencedTypeDefs)
	add("type_lookups", refs.TypeLookups)
	add("calls", refs.Calls)
	if len(out) == 0 {
		return nil
	}
	return out
}

func writeYAML(w io.Writer, ctx *pipeline.PipelineContext) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(buildUnitView(ctx)); err != nil {
		return err
	}
	return enc.Close()
}

func writeText(w io.Writer, r *report.Renderer, ctx *pipeline.PipelineContext) error {
	view := buildUnitView(ctx)
	fmt.Fprintf(w, "module %s (%s)\n", view.Module, view.File)
	total := 0
	for i, cv := range view.Cases {
		res := ctx.Results[i]
		fmt.Fprintf(w, "\n%s [%s]\n", cv.Name, res.Context)
		if cv.Skipped {
			fmt.Fprintln(w, "  skipped")
			continue
		}
		fmt.Fprintf(w, "  %s\n", cv.Pattern)
		if len(cv.Bindings) > 0 {
			parts := make([]string, len(cv.Bindings))
			for j, b := range cv.Bindings {
				parts[j] = b.Symbol + b.Region
			}
			fmt.Fprintf(w, "  binds: %s\n", strings.Join(parts, ", "))
		}
		for _, d := range res.Diagnostics {
			fmt.Fprint(w, "  ")
			if err := r.Diagnostic(d); err != nil {
				return err
			}
		}
		total += len(res.Diagnostics)
	}
	fmt.Fprintln(w)
	return r.Summary(total)
}

type storedView struct {
	Run         int64    `yaml:"run"`
	Module      string   `yaml:"module"`
	File        string   `yaml:"file"`
	Diagnostics []string `yaml:"diagnostics"`
}

func writeStoredYAML(w io.Writer, run *report.Run, ds []*report.Diagnostic) error {
	view := storedView{Run: run.ID, Module: run.Module, File: run.File}
	for _, d := range ds {
		view.Diagnostics = append(view.Diagnostics, fmt.Sprintf("%s[%s] %s %s@%d-%d: %s", d.Severity, d.Code, d.Case, d.File, d.Start, d.End, d.Message))
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		return err
	}
	return enc.Close()
}
