// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

var errTest = errors.New("test error")

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/movies/popular", "200"))

	RecordAPIRequest("GET", "/api/v1/movies/popular", 200, 5*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/movies/popular", "200"))
	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

func TestRecordEngineQuery(t *testing.T) {
	before := testutil.ToFloat64(EngineQueriesTotal.WithLabelValues("hybrid", "ok"))

	RecordEngineQuery("hybrid", "ok", time.Millisecond)

	after := testutil.ToFloat64(EngineQueriesTotal.WithLabelValues("hybrid", "ok"))
	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

func TestRecordModelBuildOutcome(t *testing.T) {
	okBefore := testutil.ToFloat64(ModelBuildsTotal.WithLabelValues("ok"))
	errBefore := testutil.ToFloat64(ModelBuildsTotal.WithLabelValues("error"))

	RecordModelBuild("factorization", time.Second, nil)
	RecordModelBuild("factorization", time.Second, errTest)

	if got := testutil.ToFloat64(ModelBuildsTotal.WithLabelValues("ok")); got != okBefore+1 {
		t.Errorf("ok counter = %v, want %v", got, okBefore+1)
	}
	if got := testutil.ToFloat64(ModelBuildsTotal.WithLabelValues("error")); got != errBefore+1 {
		t.Errorf("error counter = %v, want %v", got, errBefore+1)
	}
}

func TestSetDatasetGauges(t *testing.T) {
	SetDatasetGauges(9742, 610, 100836)

	if got := testutil.ToFloat64(CatalogMovies); got != 9742 {
		t.Errorf("CatalogMovies = %v, want 9742", got)
	}
	if got := testutil.ToFloat64(MatrixUsers); got != 610 {
		t.Errorf("MatrixUsers = %v, want 610", got)
	}
	if got := testutil.ToFloat64(MatrixRatings); got != 100836 {
		t.Errorf("MatrixRatings = %v, want 100836", got)
	}
}
