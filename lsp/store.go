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
	"runtime"
	"sync"

	"go.lsp.dev/uri"
	"golang.org/x/sync/semaphore"
)

// DocumentStore is the one stateful component: it holds the latest
// text of every open document and the analysis computed from it. The
// pipeline itself owns no state, so the store is the only place that
// needs a mutual-exclusion discipline. Each analysis runs over an
// immutable snapshot of the text taken at trigger time; a concurrent
// edit produces a newer analysis rather than corrupting a running one.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[uri.URI]*document

	// bounds the number of concurrently running analysis pipelines when
	// the client opens many files at once
	sem *semaphore.Weighted
}

type document struct {
	text     string
	version  int32
	analysis *Analysis
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs: make(map[uri.URI]*document),
		sem:  semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}
}

// Open registers a document and runs the first analysis over it.
func (s *DocumentStore) Open(ctx context.Context, docURI uri.URI, text string, version int32) (*Analysis, error) {
	return s.update(ctx, docURI, text, version)
}

// Update replaces a document's text with a full new snapshot (the
// store uses full-document sync, not incremental edits) and re-runs
// analysis. A version older than the stored one is ignored and the
// existing analysis returned, so out-of-order notifications cannot
// roll a document backwards.
func (s *DocumentStore) Update(ctx context.Context, docURI uri.URI, text string, version int32) (*Analysis, error) {
	s.mu.RLock()
	doc, ok := s.docs[docURI]
	if ok && doc.version > version {
		stale := doc.analysis
		s.mu.RUnlock()
		return stale, nil
	}
	s.mu.RUnlock()
	return s.update(ctx, docURI, text, version)
}

func (s *DocumentStore) update(ctx context.Context, docURI uri.URI, text string, version int32) (*Analysis, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("analyzing %s: %w", docURI, err)
	}
	analysis := Analyze([]byte(text))
	s.sem.Release(1)

	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.docs[docURI]; ok && doc.version > version {
		// a newer snapshot landed while this one was being analyzed
		return doc.analysis, nil
	}
	s.docs[docURI] = &document{text: text, version: version, analysis: analysis}
	return analysis, nil
}

// Close forgets a document entirely.
func (s *DocumentStore) Close(docURI uri.URI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, docURI)
}

// Text returns the current text snapshot for a document.
func (s *DocumentStore) Text(docURI uri.URI) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[docURI]
	if !ok {
		return "", false
	}
	return doc.text, true
}

// Analysis returns the analysis of the document's current snapshot.
func (s *DocumentStore) Analysis(docURI uri.URI) (*Analysis, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[docURI]
	if !ok {
		return nil, false
	}
	return doc.analysis, true
}

// URIs returns the open documents, in no particular order.
func (s *DocumentStore) URIs() []uri.URI {
	s.mu.RLock()
	defer s.mu.RUnlock()
	uris := make([]uri.URI, 0, len(s.docs))
	for u := range s.docs {
		uris = append(uris, u)
	}
	return uris
}
