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
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/uri"
)

func TestDocumentStoreLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewDocumentStore()
	docURI := uri.File("/tmp/test.proto")

	a, err := store.Open(ctx, docURI, `syntax = "proto3";`, 1)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Empty(t, a.Diagnostics())

	text, ok := store.Text(docURI)
	require.True(t, ok)
	assert.Equal(t, `syntax = "proto3";`, text)

	a, err = store.Update(ctx, docURI, `syntax = "proto4";`, 2)
	require.NoError(t, err)
	require.Len(t, a.Diagnostics(), 1)

	got, ok := store.Analysis(docURI)
	require.True(t, ok)
	assert.Same(t, a, got)

	store.Close(docURI)
	_, ok = store.Text(docURI)
	assert.False(t, ok)
}

func TestDocumentStoreIgnoresStaleVersions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewDocumentStore()
	docURI := uri.File("/tmp/stale.proto")

	_, err := store.Open(ctx, docURI, "message A {}", 5)
	require.NoError(t, err)

	// an out-of-order notification with an older version must not roll
	// the document back
	_, err = store.Update(ctx, docURI, "message Old {}", 3)
	require.NoError(t, err)

	text, ok := store.Text(docURI)
	require.True(t, ok)
	assert.Equal(t, "message A {}", text)
}

func TestDocumentStoreConcurrentUpdates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewDocumentStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			docURI := uri.File(fmt.Sprintf("/tmp/doc%d.proto", i))
			for version := int32(1); version <= 10; version++ {
				text := fmt.Sprintf("message M%d { int32 x = %d; }", i, version)
				_, err := store.Update(ctx, docURI, text, version)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Len(t, store.URIs(), 16)
	for i := 0; i < 16; i++ {
		a, ok := store.Analysis(uri.File(fmt.Sprintf("/tmp/doc%d.proto", i)))
		require.True(t, ok)
		assert.Empty(t, a.Diagnostics())
	}
}

func TestDocumentStoreCanceledContext(t *testing.T) {
	t.Parallel()
	store := NewDocumentStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Open(ctx, uri.File("/tmp/c.proto"), "message A {}", 1)
	assert.Error(t, err)
}
