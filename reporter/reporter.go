// Copyright 2020-2023 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package reporter contains the diagnostic model shared by the parser
// and validator passes. Diagnostics are plain values: once created they
// are never mutated, and neither pass ever aborts on one.
package reporter

import (
	"fmt"

	"github.com/takumi3488/protobuf-edition-lsp/ast"
)

// Severity of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is a single reported problem: a severity, the span it
// applies to, a human-readable message, and a stable code identifying
// the rule that produced it. Related carries the spans of other
// declarations involved, e.g. the first definition in a duplicate
// report.
type Diagnostic struct {
	Severity Severity
	Span     ast.SourceSpan
	Message  string
	Code     string
	Related  []ast.SourceSpan
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s [%s]", d.Span, d.Severity, d.Message, d.Code)
}

// Handler accumulates diagnostics during a single pass. It is not safe
// for concurrent use; each parse or validate call owns its own handler.
type Handler struct {
	diags []Diagnostic
}

func NewHandler() *Handler {
	return &Handler{}
}

// HandleDiagnostic records a fully formed diagnostic.
func (h *Handler) HandleDiagnostic(d Diagnostic) {
	h.diags = append(h.diags, d)
}

// Errorf records an error diagnostic at the given span.
func (h *Handler) Errorf(span ast.SourceSpan, code, format string, args ...any) {
	h.diags = append(h.diags, Diagnostic{
		Severity: SeverityError,
		Span:     span,
		Message:  fmt.Sprintf(format, args...),
		Code:     code,
	})
}

// Warningf records a warning diagnostic at the given span.
func (h *Handler) Warningf(span ast.SourceSpan, code, format string, args ...any) {
	h.diags = append(h.diags, Diagnostic{
		Severity: SeverityWarning,
		Span:     span,
		Message:  fmt.Sprintf(format, args...),
		Code:     code,
	})
}

// RelatedErrorf records an error diagnostic that cites other spans, such
// as the previous definition in a duplicate report.
func (h *Handler) RelatedErrorf(span ast.SourceSpan, related []ast.SourceSpan, code, format string, args ...any) {
	h.diags = append(h.diags, Diagnostic{
		Severity: SeverityError,
		Span:     span,
		Message:  fmt.Sprintf(format, args...),
		Code:     code,
		Related:  related,
	})
}

// Diagnostics returns everything recorded so far, in emission order.
func (h *Handler) Diagnostics() []Diagnostic {
	return h.diags
}
