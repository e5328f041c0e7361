// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model for the scandoc pipeline:
// input descriptors, effect configuration, per-input results, and the
// failure taxonomy. See docs/ARCHITECTURE § Data Model.
package types

import (
	"fmt"
	"path/filepath"
	"strings"
)

// InputKind distinguishes the two shapes of work unit.
type InputKind string

const (
	// KindPDF is a single PDF converted into one output document.
	KindPDF InputKind = "pdf"

	// KindImageSet is an ordered group of image files merged into one
	// output document.
	KindImageSet InputKind = "image-set"
)

// InputDescriptor identifies one logical unit of work: a single PDF, or a
// set of images merged into one output. Descriptors are immutable once
// resolved by the discovery layer.
type InputDescriptor struct {
	Kind  InputKind `json:"kind" yaml:"kind"`
	Paths []string  `json:"paths" yaml:"paths"`
}

// PDFInput builds a descriptor for a single PDF file.
func PDFInput(path string) InputDescriptor {
	return InputDescriptor{Kind: KindPDF, Paths: []string{path}}
}

// ImageSetInput builds a descriptor merging images into one output, in the
// given order. The order is the contract: the pipeline never reorders.
func ImageSetInput(paths []string) InputDescriptor {
	return InputDescriptor{Kind: KindImageSet, Paths: paths}
}

// Primary returns the path that names the descriptor: the PDF itself, or
// the first image of a set.
func (d InputDescriptor) Primary() string {
	if len(d.Paths) == 0 {
		return ""
	}
	return d.Paths[0]
}

// OutputPath derives the deterministic output location:
// <stem>_output.pdf beside the primary source file.
func (d InputDescriptor) OutputPath() string {
	p := d.Primary()
	if p == "" {
		return ""
	}
	stem := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	return filepath.Join(filepath.Dir(p), stem+"_output.pdf")
}

func (d InputDescriptor) String() string {
	if d.Kind == KindImageSet && len(d.Paths) > 1 {
		return fmt.Sprintf("%s (+%d images)", d.Primary(), len(d.Paths)-1)
	}
	return d.Primary()
}

// Result is the per-input outcome collected into a batch report. Exactly
// one of OutputPath (success) or Err (failure) is meaningful.
type Result struct {
	Input      InputDescriptor
	OutputPath string
	Pages      int
	Err        error
}

// OK reports whether the input produced an output document.
func (r Result) OK() bool {
	return r.Err == nil
}

// Kind returns the classified failure kind, FailureNone on success.
func (r Result) Kind() FailureKind {
	return Classify(r.Err)
}
