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

package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takumi3488/protobuf-edition-lsp/parser"
	"github.com/takumi3488/protobuf-edition-lsp/reporter"
)

func validateSource(t *testing.T, source string) []reporter.Diagnostic {
	t.Helper()
	file, _, parseDiags := parser.ParseSource([]byte(source))
	require.Empty(t, parseDiags, "test source must parse cleanly")
	return Validate(file)
}

func codes(diags []reporter.Diagnostic) []string {
	var out []string
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func TestDuplicateFieldNumber(t *testing.T) {
	t.Parallel()
	diags := validateSource(t, `message M { string a = 1; int32 b = 1; }`)
	require.Len(t, diags, 1)
	assert.Equal(t, "duplicate-field-number", diags[0].Code)
	// the diagnostic cites both spans: primary on the second use,
	// related on the first
	require.Len(t, diags[0].Related, 1)
	assert.True(t, diags[0].Related[0].Start.Before(diags[0].Span.Start))
}

func TestDuplicateFieldNumberAcrossOneof(t *testing.T) {
	t.Parallel()
	diags := validateSource(t, `message M {
	int32 a = 1;
	oneof choice {
		string b = 1;
	}
}`)
	require.Len(t, diags, 1)
	assert.Equal(t, "duplicate-field-number", diags[0].Code)
}

func TestFieldNumberRange(t *testing.T) {
	t.Parallel()
	diags := validateSource(t, `message M {
	int32 a = 0;
	int32 b = -5;
	int32 c = 536870912;
	int32 d = 536870911;
	int32 e = 1;
}`)
	assert.Equal(t, []string{
		"invalid-field-number",
		"invalid-field-number",
		"invalid-field-number",
	}, codes(diags))
}

func TestImplementationReservedRange(t *testing.T) {
	t.Parallel()
	diags := validateSource(t, `message M { reserved 19000 to 19999; int32 x = 19500; }`)
	require.Len(t, diags, 1)
	assert.Equal(t, "reserved-field-number", diags[0].Code)
}

func TestReservedNumberConflict(t *testing.T) {
	t.Parallel()
	diags := validateSource(t, `message M {
	reserved 5 to 10;
	int32 ok = 4;
	int32 bad = 7;
}`)
	require.Len(t, diags, 1)
	assert.Equal(t, "reserved-number-conflict", diags[0].Code)
}

func TestReservedMax(t *testing.T) {
	t.Parallel()
	diags := validateSource(t, `message M {
	reserved 100 to max;
	int32 bad = 536870911;
}`)
	require.Len(t, diags, 1)
	assert.Equal(t, "reserved-number-conflict", diags[0].Code)
}

func TestReservedNameConflict(t *testing.T) {
	t.Parallel()
	diags := validateSource(t, `message M {
	reserved "old_name";
	int32 old_name = 1;
}`)
	require.Len(t, diags, 1)
	assert.Equal(t, "reserved-name-conflict", diags[0].Code)
}

func TestDuplicateNames(t *testing.T) {
	t.Parallel()
	diags := validateSource(t, `message M { int32 a = 1; string a = 2; }`)
	require.Len(t, diags, 1)
	assert.Equal(t, "duplicate-name", diags[0].Code)
	require.Len(t, diags[0].Related, 1)

	diags = validateSource(t, `message Foo {} enum Foo { FOO_ZERO = 0; }`)
	require.Len(t, diags, 1)
	assert.Equal(t, "duplicate-name", diags[0].Code)
}

func TestEnumAlias(t *testing.T) {
	t.Parallel()
	diags := validateSource(t, `enum E { option allow_alias = true; A = 0; B = 0; }`)
	assert.Empty(t, diags)

	diags = validateSource(t, `enum E { A = 0; B = 0; }`)
	require.Len(t, diags, 1)
	assert.Equal(t, "duplicate-enum-number", diags[0].Code)
	// the diagnostic lands on the second occurrence
	require.Len(t, diags[0].Related, 1)
	assert.True(t, diags[0].Related[0].Start.Before(diags[0].Span.Start))
}

func TestEnumFirstValueZero(t *testing.T) {
	t.Parallel()
	diags := validateSource(t, `syntax = "proto3";
enum E { A = 1; }`)
	require.Len(t, diags, 1)
	assert.Equal(t, "enum-zero-value", diags[0].Code)

	// editions enums may start anywhere
	diags = validateSource(t, `edition = "2023";
enum E { A = 1; }`)
	assert.Empty(t, diags)
}

func TestLabelLegality(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "proto2 allows all labels",
			source: `syntax = "proto2"; message M { required int32 a = 1; optional int32 b = 2; repeated int32 c = 3; }`,
			want:   nil,
		},
		{
			name:   "proto3 rejects required",
			source: `syntax = "proto3"; message M { required int32 a = 1; }`,
			want:   []string{"invalid-label"},
		},
		{
			name:   "proto3 rejects optional",
			source: `syntax = "proto3"; message M { optional int32 a = 1; }`,
			want:   []string{"invalid-label"},
		},
		{
			name:   "editions reject required and optional",
			source: `edition = "2023"; message M { required int32 a = 1; optional int32 b = 2; }`,
			want:   []string{"invalid-label", "invalid-label"},
		},
		{
			name:   "repeated is always legal",
			source: `edition = "2023"; message M { repeated int32 a = 1; }`,
			want:   nil,
		},
		{
			name:   "oneof fields take no label",
			source: `syntax = "proto2"; message M { oneof o { optional int32 a = 1; } }`,
			want:   []string{"invalid-label"},
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, codes(validateSource(t, tc.source)))
		})
	}
}

func TestMapKeyTypes(t *testing.T) {
	t.Parallel()
	diags := validateSource(t, `message M {
	map<string, M> ok1 = 1;
	map<int64, string> ok2 = 2;
	map<bool, string> ok3 = 3;
	map<float, string> bad1 = 4;
	map<bytes, string> bad2 = 5;
	map<SomeMessage, string> bad3 = 6;
}`)
	assert.Equal(t, []string{
		"invalid-map-key",
		"invalid-map-key",
		"invalid-map-key",
	}, codes(diags))
}

func TestMapFieldLabel(t *testing.T) {
	t.Parallel()
	diags := validateSource(t, `syntax = "proto2"; message M { repeated map<int32, string> m = 1; }`)
	require.Len(t, diags, 1)
	assert.Equal(t, "invalid-label", diags[0].Code)
}

func TestSyntaxDeclarations(t *testing.T) {
	t.Parallel()
	diags := validateSource(t, `syntax = "proto4";`)
	require.Len(t, diags, 1)
	assert.Equal(t, "invalid-syntax", diags[0].Code)

	diags = validateSource(t, `edition = "2024";`)
	require.Len(t, diags, 1)
	assert.Equal(t, "unsupported-edition", diags[0].Code)

	diags = validateSource(t, `edition = "2023";`)
	assert.Empty(t, diags)
}

func TestDuplicateMethodName(t *testing.T) {
	t.Parallel()
	diags := validateSource(t, `service S {
	rpc Get(A) returns (B);
	rpc Get(C) returns (D);
}`)
	require.Len(t, diags, 1)
	assert.Equal(t, "duplicate-method-name", diags[0].Code)
}

func TestNestedScopesAreIndependent(t *testing.T) {
	t.Parallel()
	// the same field number and name may recur in different messages
	diags := validateSource(t, `message A {
	int32 x = 1;
	message B {
		int32 x = 1;
	}
}`)
	assert.Empty(t, diags)
}

func TestValidateIdempotent(t *testing.T) {
	t.Parallel()
	file, _, _ := parser.ParseSource([]byte(`message M { int32 a = 1; int32 b = 1; required string c = 2; }`))
	first := Validate(file)
	second := Validate(file)
	assert.Equal(t, first, second)
}

func TestValidateToleratesBrokenParse(t *testing.T) {
	t.Parallel()
	// the validator runs over a best-effort AST without panicking
	inputs := []string{
		"message Foo {",
		"message { int32 = ; }",
		"enum E {",
		"service S { rpc }",
		"message M { map< , > x = 1; }",
	}
	for _, input := range inputs {
		file, _, _ := parser.ParseSource([]byte(input))
		assert.NotPanics(t, func() { Validate(file) }, "input %q", input)
	}
}
