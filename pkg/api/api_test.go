package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrip(t *testing.T) {
	result := Strip("const x: number = 1;")
	require.Empty(t, result.Errors)
	assert.Equal(t, "const x = 1;\n", result.Code)
	assert.Equal(t, len("const x: number = 1;"), result.OriginalSize)
	assert.Equal(t, len(result.Code), result.OutputSize)
}

func TestStripRemovesTypeOnlyImport(t *testing.T) {
	result := Strip("import { T } from \"m\";\nlet x: T;")
	require.Empty(t, result.Errors)
	assert.Equal(t, "let x;\n", result.Code)
	assert.Equal(t, 1, result.RemovedImports)
}

func TestStripCountsWork(t *testing.T) {
	result := Strip("enum E { A }\nclass C {\n    constructor(public x: number) {}\n}")
	require.Empty(t, result.Errors)
	assert.Equal(t, 1, result.CompiledEnums)
	assert.Equal(t, 1, result.LoweredParamProps)
}

func TestStripWithJSX(t *testing.T) {
	result := StripWithOptions("const el = <div>{x}</div>;", StripOptions{JSX: true})
	require.Empty(t, result.Errors)
	assert.Equal(t, "const el = <div>{x}</div>;\n", result.Code)
}

func TestStripWithPragma(t *testing.T) {
	result := StripWithOptions("import h from \"lib\";\nconst el = <div />;",
		StripOptions{JSX: true, JSXPragma: "h"})
	require.Empty(t, result.Errors)
	assert.Equal(t, "import h from \"lib\";\nconst el = <div />;\n", result.Code)
}

func TestStripUnsupported(t *testing.T) {
	result := Strip("export = foo;")
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "export =")
	assert.Empty(t, result.Code)
}
