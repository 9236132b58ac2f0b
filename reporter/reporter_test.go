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

package reporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takumi3488/protobuf-edition-lsp/ast"
)

func TestHandler(t *testing.T) {
	t.Parallel()
	span := ast.NewSourceSpan(
		ast.SourcePos{Line: 2, Col: 4, Offset: 30},
		ast.SourcePos{Line: 2, Col: 9, Offset: 35},
	)

	h := NewHandler()
	h.Errorf(span, "some-code", "found %d problems", 3)
	h.Warningf(span, "other-code", "questionable")
	h.RelatedErrorf(span, []ast.SourceSpan{span}, "dup-code", "duplicate")

	diags := h.Diagnostics()
	require.Len(t, diags, 3)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.Equal(t, "found 3 problems", diags[0].Message)
	assert.Equal(t, SeverityWarning, diags[1].Severity)
	require.Len(t, diags[2].Related, 1)

	assert.Equal(t, "3:5-3:10: error: found 3 problems [some-code]", diags[0].String())
}
