// Package api provides the public API for the TypeScript type stripper.
//
// This package is intended for programmatic use of the transform.
// For CLI usage, see cmd/stripts.
package api

import (
	"codeberg.org/saruga/stripts/internal/stripper"
)

// StripOptions controls the transform.
type StripOptions struct {
	// JSX enables JSX parsing. Without it, < in expression position is
	// parsed as an old-style type assertion.
	JSX bool

	// JSXPragma is the identifier JSX syntax implicitly references as a
	// value; the default is "React". A @jsx comment annotation in the
	// file overrides it.
	JSXPragma string
}

// StripResult contains the transform output.
type StripResult struct {
	// Code is the produced JavaScript source.
	Code string

	// Errors contains any fatal diagnostics, formatted. If non-empty,
	// Code is empty.
	Errors []string

	// OriginalSize is the size of the input in bytes.
	OriginalSize int

	// OutputSize is the size of the output in bytes.
	OutputSize int

	// RemovedImports counts import statements removed in full.
	RemovedImports int

	// LoweredParamProps counts constructor parameter properties
	// rewritten into field assignments.
	LoweredParamProps int

	// CompiledEnums counts enum declarations compiled to runtime code.
	CompiledEnums int
}

// Strip erases TypeScript type syntax from source with default options.
func Strip(source string) StripResult {
	return StripWithOptions(source, StripOptions{})
}

// StripWithOptions erases TypeScript type syntax with custom options.
func StripWithOptions(source string, opts StripOptions) StripResult {
	s := stripper.New(stripper.Options{
		JSX:       opts.JSX,
		JSXPragma: opts.JSXPragma,
	})

	result, err := s.Strip(source)
	if err != nil {
		return StripResult{
			Errors:       []string{err.Error()},
			OriginalSize: len(source),
		}
	}

	return StripResult{
		Code:              result.Code,
		OriginalSize:      result.Stats.OriginalSize,
		OutputSize:        result.Stats.OutputSize,
		RemovedImports:    result.Stats.RemovedImports,
		LoweredParamProps: result.Stats.LoweredParamProps,
		CompiledEnums:     result.Stats.CompiledEnums,
	}
}
