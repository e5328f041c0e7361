// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name string
		desc InputDescriptor
		want string
	}{
		{
			name: "pdf beside source",
			desc: PDFInput(filepath.Join("docs", "invoice.pdf")),
			want: filepath.Join("docs", "invoice_output.pdf"),
		},
		{
			name: "image set named after first image",
			desc: ImageSetInput([]string{
				filepath.Join("pics", "page1.png"),
				filepath.Join("pics", "page2.jpg"),
			}),
			want: filepath.Join("pics", "page1_output.pdf"),
		},
		{
			name: "stem with dots",
			desc: PDFInput("report.v2.pdf"),
			want: "report.v2_output.pdf",
		},
		{
			name: "empty descriptor",
			desc: InputDescriptor{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.desc.OutputPath(); got != tt.want {
				t.Errorf("OutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescriptorString(t *testing.T) {
	set := ImageSetInput([]string{"a.png", "b.png", "c.png"})
	if got, want := set.String(), "a.png (+2 images)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	pdf := PDFInput("doc.pdf")
	if got := pdf.String(); got != "doc.pdf" {
		t.Errorf("String() = %q, want %q", got, "doc.pdf")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want FailureKind
	}{
		{nil, FailureNone},
		{fmt.Errorf("ctx: %w", ErrUnreadableSource), FailureUnreadableSource},
		{fmt.Errorf("ctx: %w", ErrPasswordProtected), FailurePasswordProtected},
		{fmt.Errorf("page 2: %w", ErrInvalidPage), FailureInvalidPage},
		{fmt.Errorf("ctx: %w", ErrEncoding), FailureEncoding},
		{fmt.Errorf("ctx: %w", ErrWrite), FailureWrite},
		{errors.New("something else"), FailureInternal},
	}

	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestResultKind(t *testing.T) {
	ok := Result{OutputPath: "out.pdf", Pages: 3}
	if !ok.OK() || ok.Kind() != FailureNone {
		t.Errorf("success result misclassified: %+v", ok)
	}

	bad := Result{Err: fmt.Errorf("opening x: %w", ErrPasswordProtected)}
	if bad.OK() || bad.Kind() != FailurePasswordProtected {
		t.Errorf("failure result misclassified: %+v", bad)
	}
}
