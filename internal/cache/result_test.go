// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetOrComputeMemoizes(t *testing.T) {
	rc := NewResultCache(16, 0)

	calls := 0
	compute := func() (any, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := rc.GetOrCompute("k", compute)
		if err != nil {
			t.Fatalf("GetOrCompute() error = %v", err)
		}
		if v.(int) != 42 {
			t.Fatalf("GetOrCompute() = %v, want 42", v)
		}
	}
	if calls != 1 {
		t.Errorf("compute ran %d times, want 1", calls)
	}
}

func TestGetOrComputeConcurrentSingleExecution(t *testing.T) {
	rc := NewResultCache(16, 0)

	var calls atomic.Int64
	release := make(chan struct{})
	compute := func() (any, error) {
		calls.Add(1)
		<-release
		return "value", nil
	}

	const workers = 16
	var wg sync.WaitGroup
	results := make([]any, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = rc.GetOrCompute("shared", compute)
		}(i)
	}

	// Let all workers reach the cache before the computation finishes.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("compute ran %d times for concurrent callers, want 1", got)
	}
	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d error = %v", i, errs[i])
		}
		if results[i].(string) != "value" {
			t.Errorf("worker %d result = %v, want value", i, results[i])
		}
	}
}

func TestGetOrComputeErrorNotCached(t *testing.T) {
	rc := NewResultCache(16, 0)

	failErr := errors.New("transient failure")
	calls := 0
	_, err := rc.GetOrCompute("k", func() (any, error) {
		calls++
		return nil, failErr
	})
	if !errors.Is(err, failErr) {
		t.Fatalf("GetOrCompute() error = %v, want %v", err, failErr)
	}

	v, err := rc.GetOrCompute("k", func() (any, error) {
		calls++
		return 7, nil
	})
	if err != nil {
		t.Fatalf("GetOrCompute() retry error = %v", err)
	}
	if v.(int) != 7 {
		t.Errorf("GetOrCompute() retry = %v, want 7", v)
	}
	if calls != 2 {
		t.Errorf("compute ran %d times, want 2 (errors must not be cached)", calls)
	}
}

func TestResultCacheClear(t *testing.T) {
	rc := NewResultCache(16, 0)

	calls := 0
	compute := func() (any, error) {
		calls++
		return calls, nil
	}

	if _, err := rc.GetOrCompute("k", compute); err != nil {
		t.Fatalf("GetOrCompute() error = %v", err)
	}
	rc.Clear()
	if rc.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", rc.Len())
	}
	if _, err := rc.GetOrCompute("k", compute); err != nil {
		t.Fatalf("GetOrCompute() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("compute ran %d times, want 2 after Clear", calls)
	}
}

func TestResultCacheBounded(t *testing.T) {
	rc := NewResultCache(2, 0)

	for _, key := range []string{"a", "b", "c"} {
		k := key
		if _, err := rc.GetOrCompute(k, func() (any, error) { return k, nil }); err != nil {
			t.Fatalf("GetOrCompute(%q) error = %v", k, err)
		}
	}
	if rc.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (capacity bound)", rc.Len())
	}
	if _, ok := rc.Get("a"); ok {
		t.Error("oldest entry survived capacity eviction")
	}
	if _, ok := rc.Get("c"); !ok {
		t.Error("newest entry missing after eviction")
	}
}

func TestFingerprint(t *testing.T) {
	type params struct {
		Factors int
		Seed    int64
	}

	a := Fingerprint("collab", "catalogv1", params{Factors: 20, Seed: 42}, 5)
	b := Fingerprint("collab", "catalogv1", params{Factors: 20, Seed: 42}, 5)
	if a != b {
		t.Errorf("identical parts produced different fingerprints: %q vs %q", a, b)
	}

	tests := []struct {
		name  string
		other string
	}{
		{name: "different scope", other: Fingerprint("content", "catalogv1", params{Factors: 20, Seed: 42}, 5)},
		{name: "different catalog", other: Fingerprint("collab", "catalogv2", params{Factors: 20, Seed: 42}, 5)},
		{name: "different params", other: Fingerprint("collab", "catalogv1", params{Factors: 12, Seed: 42}, 5)},
		{name: "different request", other: Fingerprint("collab", "catalogv1", params{Factors: 20, Seed: 42}, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.other == a {
				t.Error("fingerprint collision for differing inputs")
			}
		})
	}
}
