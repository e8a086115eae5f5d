package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/omahatools/bucketd/internal/adapters/http/api"
	"github.com/omahatools/bucketd/internal/adapters/repository"
	"github.com/omahatools/bucketd/internal/domain/buckets"
	"github.com/omahatools/bucketd/internal/domain/card"
	"github.com/omahatools/bucketd/internal/domain/model"
	"github.com/omahatools/bucketd/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing
type mockClassifier struct {
	vector      buckets.Vector
	classifyErr error
	calls       int
}

func (m *mockClassifier) Classify(ctx context.Context, hole, board string) (buckets.Vector, error) {
	m.calls++
	if m.classifyErr != nil {
		return buckets.Vector{}, m.classifyErr
	}
	return m.vector, nil
}

type mockQueue struct {
	enqueueSuccess bool
	enqueued       []model.Hand
}

func (m *mockQueue) Enqueue(ctx context.Context, h model.Hand) bool {
	if m.enqueueSuccess {
		m.enqueued = append(m.enqueued, h)
		return true
	}
	return false
}

type mockTally struct {
	topN    []types.Entry
	rank    types.Entry
	rankErr error
	topNErr error
}

func (m *mockTally) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	if m.topNErr != nil {
		return nil, m.topNErr
	}
	if n > len(m.topN) {
		return m.topN, nil
	}
	return m.topN[:n], nil
}

func (m *mockTally) Rank(ctx context.Context, bucket string) (types.Entry, error) {
	if m.rankErr != nil {
		return types.Entry{}, m.rankErr
	}
	return m.rank, nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

// mockDependencies bundles the mocks behind the api.Dependencies interface.
type mockDependencies struct {
	classifier *mockClassifier
	queue      *mockQueue
	tally      *mockTally
}

func (m *mockDependencies) Classify(ctx context.Context, hole, board string) (buckets.Vector, error) {
	return m.classifier.Classify(ctx, hole, board)
}

func (m *mockDependencies) Enqueue(ctx context.Context, h model.Hand) bool {
	return m.queue.Enqueue(ctx, h)
}

func (m *mockDependencies) TopN(ctx context.Context, n int) ([]api.Entry, error) {
	return m.tally.TopN(ctx, n)
}

func (m *mockDependencies) Rank(ctx context.Context, bucket string) (api.Entry, error) {
	return m.tally.Rank(ctx, bucket)
}

func vectorWith(bs ...buckets.Bucket) buckets.Vector {
	var v buckets.Vector
	for _, b := range bs {
		v[b] = 1
	}
	return v
}

func newTestMux(deps *mockDependencies, stats map[string]interface{}) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: stats}, 100)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func defaultDeps() *mockDependencies {
	return &mockDependencies{
		classifier: &mockClassifier{vector: vectorWith(buckets.TopPair, buckets.FlushDraw)},
		queue:      &mockQueue{enqueueSuccess: true},
		tally:      &mockTally{},
	}
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := defaultDeps()
		mux := newTestMux(deps, map[string]interface{}{"started": true})

		Convey("Then the health endpoint should be accessible", func() {
			req := httptest.NewRequest("GET", "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And the stats endpoint should return the provider payload", func() {
			req := httptest.NewRequest("GET", "/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			var got map[string]interface{}
			So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
			So(got["started"], ShouldEqual, true)
		})
	})
}

func TestClassifyEndpoint(t *testing.T) {
	Convey("Given a classify endpoint", t, func() {
		deps := defaultDeps()
		mux := newTestMux(deps, nil)

		Convey("When posting a valid hand", func() {
			body := `{"hole":"Ad2c7h9s","board":"9c5d3h"}`
			req := httptest.NewRequest("POST", "/classify", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should return the feature vector", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					Hole    string   `json:"hole"`
					Board   string   `json:"board"`
					Version string   `json:"version"`
					Buckets []string `json:"buckets"`
					Vector  []int    `json:"vector"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Hole, ShouldEqual, "Ad2c7h9s")
				So(resp.Version, ShouldEqual, buckets.Version)
				So(len(resp.Vector), ShouldEqual, buckets.NumBuckets)
				So(resp.Buckets, ShouldContain, "top_pair")
				So(resp.Buckets, ShouldContain, "flush_draw")
				So(len(resp.Buckets), ShouldEqual, 2)
				So(resp.Vector[int(buckets.TopPair)], ShouldEqual, 1)
			})
		})

		Convey("When posting malformed JSON", func() {
			req := httptest.NewRequest("POST", "/classify", strings.NewReader("{not json"))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the hole field is missing", func() {
			req := httptest.NewRequest("POST", "/classify", strings.NewReader(`{"board":"9c5d3h"}`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the classifier rejects the cards", func() {
			deps.classifier.classifyErr = fmt.Errorf("hole %q: %w", "XZ", card.ErrParse)
			body := `{"hole":"XZXZXZXZ","board":"9c5d3h"}`
			req := httptest.NewRequest("POST", "/classify", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should map the parse failure to 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				var resp struct {
					Code string `json:"code"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Code, ShouldEqual, "invalid_hand")
			})
		})

		Convey("When the classifier fails internally", func() {
			deps.classifier.classifyErr = fmt.Errorf("boom")
			body := `{"hole":"Ad2c7h9s","board":"9c5d3h"}`
			req := httptest.NewRequest("POST", "/classify", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})

		Convey("When the method is GET", func() {
			req := httptest.NewRequest("GET", "/classify", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestHandsEndpoint(t *testing.T) {
	Convey("Given a hands endpoint", t, func() {
		deps := defaultDeps()
		mux := newTestMux(deps, nil)

		Convey("When posting a valid hand", func() {
			body := `{"row_id":"row-1","hole":"Ad2c7h9s","board":"9c5d3h"}`
			req := httptest.NewRequest("POST", "/hands", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should be accepted and enqueued", func() {
				So(w.Code, ShouldEqual, http.StatusAccepted)
				So(len(deps.queue.enqueued), ShouldEqual, 1)
				So(deps.queue.enqueued[0].RowID, ShouldEqual, "row-1")
				So(deps.queue.enqueued[0].Hole, ShouldEqual, "Ad2c7h9s")
			})
		})

		Convey("When posting without a row id", func() {
			body := `{"hole":"Ad2c7h9sTc","board":"9c5d3h2s"}`
			req := httptest.NewRequest("POST", "/hands", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then a row id should be generated", func() {
				So(w.Code, ShouldEqual, http.StatusAccepted)
				var resp struct {
					Status string `json:"status"`
					RowID  string `json:"row_id"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Status, ShouldEqual, "accepted")
				So(resp.RowID, ShouldNotBeEmpty)
			})
		})

		Convey("When the hole has the wrong number of cards", func() {
			body := `{"hole":"Ad2c","board":"9c5d3h"}`
			req := httptest.NewRequest("POST", "/hands", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(len(deps.queue.enqueued), ShouldEqual, 0)
		})

		Convey("When the board is too long", func() {
			body := `{"hole":"Ad2c7h9s","board":"9c5d3h2s4cKd"}`
			req := httptest.NewRequest("POST", "/hands", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the queue is full", func() {
			deps.queue.enqueueSuccess = false
			body := `{"hole":"Ad2c7h9s","board":"9c5d3h"}`
			req := httptest.NewRequest("POST", "/hands", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should signal backpressure", func() {
				So(w.Code, ShouldEqual, http.StatusTooManyRequests)
				var resp struct {
					Code string `json:"code"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Code, ShouldEqual, "backpressure")
			})
		})
	})
}

func TestBucketsEndpoint(t *testing.T) {
	Convey("Given a buckets endpoint", t, func() {
		mux := newTestMux(defaultDeps(), nil)

		Convey("When fetching the bucket contract", func() {
			req := httptest.NewRequest("GET", "/buckets", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should list every bucket in vector order", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					Version string   `json:"version"`
					Count   int      `json:"count"`
					Buckets []string `json:"buckets"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Version, ShouldEqual, buckets.Version)
				So(resp.Count, ShouldEqual, buckets.NumBuckets)
				So(len(resp.Buckets), ShouldEqual, buckets.NumBuckets)
				So(resp.Buckets[0], ShouldEqual, "flush_royal")
			})
		})

		Convey("When using POST", func() {
			req := httptest.NewRequest("POST", "/buckets", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestTallyEndpoint(t *testing.T) {
	Convey("Given a tally endpoint", t, func() {
		deps := defaultDeps()
		deps.tally.topN = []types.Entry{
			{Rank: 1, Bucket: "no_draw", Count: 42, Share: 0.42},
			{Rank: 2, Bucket: "top_pair", Count: 21, Share: 0.21},
		}
		mux := newTestMux(deps, nil)

		Convey("When fetching with a valid limit", func() {
			req := httptest.NewRequest("GET", "/tally?limit=2", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should return the entries", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var entries []types.Entry
				So(json.Unmarshal(w.Body.Bytes(), &entries), ShouldBeNil)
				So(len(entries), ShouldEqual, 2)
				So(entries[0].Bucket, ShouldEqual, "no_draw")
				So(entries[0].Count, ShouldEqual, uint64(42))
			})
		})

		Convey("When the limit is missing", func() {
			req := httptest.NewRequest("GET", "/tally", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the limit is zero", func() {
			req := httptest.NewRequest("GET", "/tally?limit=0", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the limit exceeds the configured maximum", func() {
			req := httptest.NewRequest("GET", "/tally?limit=1000", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should be rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				var resp struct {
					Code string `json:"code"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Code, ShouldEqual, "limit_exceeded")
			})
		})

		Convey("When the store fails", func() {
			deps.tally.topNErr = fmt.Errorf("store down")
			req := httptest.NewRequest("GET", "/tally?limit=2", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}

func TestTallyBucketEndpoint(t *testing.T) {
	Convey("Given a single-bucket tally endpoint", t, func() {
		deps := defaultDeps()
		deps.tally.rank = types.Entry{Rank: 3, Bucket: "flush_draw", Count: 7, Share: 0.07}
		mux := newTestMux(deps, nil)

		Convey("When fetching a known bucket", func() {
			req := httptest.NewRequest("GET", "/tally/flush_draw", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should return the entry", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var entry types.Entry
				So(json.Unmarshal(w.Body.Bytes(), &entry), ShouldBeNil)
				So(entry.Bucket, ShouldEqual, "flush_draw")
				So(entry.Rank, ShouldEqual, 3)
			})
		})

		Convey("When fetching an unknown bucket", func() {
			deps.tally.rankErr = fmt.Errorf("lookup %q: %w", "nope", repository.ErrNotFound)
			req := httptest.NewRequest("GET", "/tally/nope", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the path has extra segments", func() {
			req := httptest.NewRequest("GET", "/tally/flush_draw/extra", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the store fails", func() {
			deps.tally.rankErr = fmt.Errorf("store down")
			req := httptest.NewRequest("GET", "/tally/flush_draw", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}
