package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/patcanon/internal/pipeline"
	"github.com/funvibe/patcanon/internal/report"
)

const unitSrc = `
module: Cli
bound:
  - name: total
    region: [0, 5]
patterns:
  - name: ok
    context: when_branch
    pattern: {kind: apply, tag: Ok, args: [v]}
  - name: shadow
    context: function_arg
    pattern: {kind: ident, name: total, region: [10, 15]}
`

func runUnit(t *testing.T) *pipeline.PipelineContext {
	t.Helper()
	ctx := pipeline.NewContext("cli.yaml", nil)
	ctx.Source = []byte(unitSrc)
	ctx = pipeline.Default().Run(ctx)
	require.Empty(t, ctx.Errors)
	return ctx
}

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, validateFormat("text"))
	assert.NoError(t, validateFormat("yaml"))
	assert.ErrorContains(t, validateFormat("json"), "text or yaml")
}

func TestWriteText(t *testing.T) {
	ctx := runUnit(t)
	var buf bytes.Buffer
	require.NoError(t, writeText(&buf, report.NewPlainRenderer(&buf), ctx))

	out := buf.String()
	assert.Contains(t, out, "module Cli (cli.yaml)")
	assert.Contains(t, out, "ok [when branches]\n  Ok v#1\n  binds: v#1@")
	assert.Contains(t, out, "shadow [function arguments]\n  <shadowed total@10-15 as total#2>")
	assert.Contains(t, out, "error[C001]: total shadows an existing binding")
	assert.Contains(t, out, "1 problem\n")
}

func TestWriteYAML(t *testing.T) {
	ctx := runUnit(t)
	var buf bytes.Buffer
	require.NoError(t, writeYAML(&buf, ctx))

	var view unitView
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &view))
	assert.Equal(t, "Cli", view.Module)
	require.Len(t, view.Cases, 2)

	assert.Equal(t, "when_branch", view.Cases[0].Context)
	assert.Equal(t, "Ok v#1", view.Cases[0].Pattern)
	require.Len(t, view.Cases[0].Bindings, 1)
	assert.Equal(t, "v#1", view.Cases[0].Bindings[0].Symbol)
	assert.Empty(t, view.Cases[0].Diagnostics)

	require.Len(t, view.Cases[1].Diagnostics, 1)
	assert.Contains(t, view.Cases[1].Diagnostics[0], "error[C001] at cli.yaml@10-15")
}
