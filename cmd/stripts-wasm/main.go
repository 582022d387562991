//go:build js && wasm

// Command stripts-wasm is the WebAssembly build of the type stripper.
// It exposes the strip function to JavaScript via syscall/js.
package main

import (
	"encoding/json"
	"syscall/js"

	"codeberg.org/saruga/stripts/pkg/api"
)

var version = "0.1.0"

// jsOptions mirrors the JavaScript options object.
type jsOptions struct {
	JSX       *bool   `json:"jsx"`
	JSXPragma *string `json:"jsxPragma"`
}

func main() {
	// Export functions to JavaScript
	js.Global().Set("__stripts", js.ValueOf(map[string]interface{}{
		"strip":   js.FuncOf(stripJS),
		"version": version,
	}))

	// Keep the Go runtime alive
	select {}
}

// stripJS is the JavaScript-callable strip function.
// Signature: __stripts.strip(source: string, options?: object) => object
func stripJS(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("strip requires at least 1 argument (source)")
	}

	source := args[0].String()

	opts := api.StripOptions{}
	if len(args) > 1 && !args[1].IsUndefined() && !args[1].IsNull() {
		jsOpts := parseOptions(args[1])
		if jsOpts.JSX != nil {
			opts.JSX = *jsOpts.JSX
		}
		if jsOpts.JSXPragma != nil {
			opts.JSXPragma = *jsOpts.JSXPragma
		}
	}

	result := api.StripWithOptions(source, opts)

	// Convert errors to JS array
	errors := make([]interface{}, len(result.Errors))
	for i, e := range result.Errors {
		errors[i] = e
	}

	// Return result object
	return map[string]interface{}{
		"code":              result.Code,
		"errors":            errors,
		"originalSize":      result.OriginalSize,
		"outputSize":        result.OutputSize,
		"removedImports":    result.RemovedImports,
		"loweredParamProps": result.LoweredParamProps,
		"compiledEnums":     result.CompiledEnums,
	}
}

// parseOptions extracts options from a JS object.
func parseOptions(jsVal js.Value) jsOptions {
	var opts jsOptions

	// Try JSON serialization first (handles complex objects better)
	jsonStr := js.Global().Get("JSON").Call("stringify", jsVal).String()
	if err := json.Unmarshal([]byte(jsonStr), &opts); err == nil {
		return opts
	}

	// Fallback to direct property access
	if v := jsVal.Get("jsx"); !v.IsUndefined() {
		b := v.Bool()
		opts.JSX = &b
	}
	if v := jsVal.Get("jsxPragma"); !v.IsUndefined() {
		s := v.String()
		opts.JSXPragma = &s
	}

	return opts
}

// makeError creates a result object with an error.
func makeError(msg string) interface{} {
	return map[string]interface{}{
		"code":              "",
		"errors":            []interface{}{msg},
		"originalSize":      0,
		"outputSize":        0,
		"removedImports":    0,
		"loweredParamProps": 0,
		"compiledEnums":     0,
	}
}
