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

package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func span(start, end int) SourceSpan {
	return NewSourceSpan(
		SourcePos{Line: 0, Col: start, Offset: start},
		SourcePos{Line: 0, Col: end, Offset: end},
	)
}

func TestSourcePosString(t *testing.T) {
	t.Parallel()
	// positions are zero-based internally, one-based when rendered
	assert.Equal(t, "1:1", SourcePos{}.String())
	assert.Equal(t, "3:8", SourcePos{Line: 2, Col: 7, Offset: 30}.String())
}

func TestSpanContains(t *testing.T) {
	t.Parallel()
	s := span(5, 10)
	assert.False(t, s.Contains(SourcePos{Offset: 4}))
	assert.True(t, s.Contains(SourcePos{Offset: 5}))
	assert.True(t, s.Contains(SourcePos{Offset: 7}))
	// the end position is included, so a cursor sitting just past the
	// last rune still hits the span
	assert.True(t, s.Contains(SourcePos{Offset: 10}))
	assert.False(t, s.Contains(SourcePos{Offset: 11}))
}

func TestSpanJoin(t *testing.T) {
	t.Parallel()
	assert.Equal(t, span(2, 9), span(4, 9).Join(span(2, 5)))
	assert.Equal(t, span(1, 8), span(1, 3).Join(span(6, 8)))
	// joining with itself is the identity
	assert.Equal(t, span(3, 4), span(3, 4).Join(span(3, 4)))
}

func TestSpanCompare(t *testing.T) {
	t.Parallel()
	assert.Equal(t, -1, span(1, 5).Compare(span(2, 3)))
	assert.Equal(t, 1, span(4, 5).Compare(span(2, 9)))
	assert.Equal(t, 0, span(2, 5).Compare(span(2, 5)))
	// ties on start break by end
	assert.Equal(t, -1, span(2, 4).Compare(span(2, 6)))
}
