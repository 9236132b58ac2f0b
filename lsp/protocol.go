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

package lsp

import (
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/takumi3488/protobuf-edition-lsp/ast"
	"github.com/takumi3488/protobuf-edition-lsp/reporter"
)

const diagnosticSource = "protobuf-edition-lsp"

// ToProtocolRange converts a source span to an LSP range. Both sides
// use zero-based line/column pairs, so the mapping is direct.
func ToProtocolRange(span ast.SourceSpan) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: uint32(span.Start.Line), Character: uint32(span.Start.Col)},
		End:   protocol.Position{Line: uint32(span.End.Line), Character: uint32(span.End.Col)},
	}
}

// ToProtocolDiagnostics converts the merged diagnostic sequence into
// the wire representation published to the client. Related spans
// become relatedInformation entries pointing back into the same file.
func ToProtocolDiagnostics(docURI uri.URI, diags []reporter.Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		severity := protocol.DiagnosticSeverityError
		if d.Severity == reporter.SeverityWarning {
			severity = protocol.DiagnosticSeverityWarning
		}
		pd := protocol.Diagnostic{
			Range:    ToProtocolRange(d.Span),
			Severity: severity,
			Code:     d.Code,
			Source:   diagnosticSource,
			Message:  d.Message,
		}
		for _, rel := range d.Related {
			pd.RelatedInformation = append(pd.RelatedInformation, protocol.DiagnosticRelatedInformation{
				Location: protocol.Location{URI: docURI, Range: ToProtocolRange(rel)},
				Message:  "first occurrence",
			})
		}
		out = append(out, pd)
	}
	return out
}

// ToProtocolCompletions converts completion candidates to wire form.
func ToProtocolCompletions(items []CompletionItem) []protocol.CompletionItem {
	out := make([]protocol.CompletionItem, 0, len(items))
	for _, item := range items {
		kind := protocol.CompletionItemKindKeyword
		switch item.Kind {
		case CompletionType:
			kind = protocol.CompletionItemKindClass
		case CompletionField:
			kind = protocol.CompletionItemKindField
		}
		out = append(out, protocol.CompletionItem{
			Label:  item.Label,
			Kind:   kind,
			Detail: item.Detail,
		})
	}
	return out
}

// ToProtocolHover converts a hover result to wire form, or nil when
// there is nothing to show.
func ToProtocolHover(h *Hover) *protocol.Hover {
	if h == nil {
		return nil
	}
	r := ToProtocolRange(h.Span)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: h.Contents,
		},
		Range: &r,
	}
}
