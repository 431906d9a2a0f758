package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	api "github.com/okian/festa/internal/adapters/http/api"
	repository "github.com/okian/festa/internal/adapters/repository"
	dedupe "github.com/okian/festa/internal/domain/dedupe"
	model "github.com/okian/festa/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDeps implements api.Dependencies for handler tests.
type mockDeps struct {
	dedupe.Deduper
	enqueueOK bool
	enqueued  []model.Event
	appended  []model.Event
	entries   map[string]api.Entry
	top       []api.Entry
	topErr    error
}

func newMockDeps() *mockDeps {
	return &mockDeps{
		Deduper:   dedupe.NewInMemoryDeduper(),
		enqueueOK: true,
		entries:   make(map[string]api.Entry),
	}
}

func (m *mockDeps) Enqueue(_ context.Context, _ string, e model.Event) bool {
	if !m.enqueueOK {
		return false
	}
	m.enqueued = append(m.enqueued, e)
	return true
}

func (m *mockDeps) AppendAttended(_ context.Context, e model.Event) {
	m.appended = append(m.appended, e)
}

func (m *mockDeps) TopN(_ context.Context, n int) ([]api.Entry, error) {
	if m.topErr != nil {
		return nil, m.topErr
	}
	if n > len(m.top) {
		n = len(m.top)
	}
	return m.top[:n], nil
}

func (m *mockDeps) Rank(_ context.Context, name string) (api.Entry, error) {
	entry, ok := m.entries[name]
	if !ok {
		return api.Entry{}, fmt.Errorf("%w: %s", repository.ErrNotFound, name)
	}
	return entry, nil
}

type mockStats struct{}

func (mockStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"queue_size": 0}
}

func newTestMux(deps *mockDeps) *http.ServeMux {
	mux := http.NewServeMux()
	server := api.NewServer(deps, mockStats{}, 100)
	server.Register(context.Background(), mux)
	return mux
}

func eventBody(name string) []byte {
	body, _ := json.Marshal(map[string]any{
		"name":           name,
		"category":       "music",
		"price":          30,
		"distance":       5,
		"popularity":     70,
		"description":    "live jazz downtown",
		"duration_hours": 2,
		"start":          time.Now().Format(time.RFC3339),
	})
	return body
}

func TestPostEvent(t *testing.T) {
	Convey("Given the events endpoint", t, func() {
		deps := newMockDeps()
		mux := newTestMux(deps)

		Convey("When submitting a valid event", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(eventBody("jazz-night")))
			mux.ServeHTTP(rec, req)

			Convey("Then it is accepted with a submission ID", func() {
				So(rec.Code, ShouldEqual, http.StatusAccepted)
				var ack map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &ack), ShouldBeNil)
				So(ack["status"], ShouldEqual, "accepted")
				So(ack["submission_id"], ShouldNotBeEmpty)
				So(deps.enqueued, ShouldHaveLength, 1)
			})
		})

		Convey("When submitting the same event twice", func() {
			first := httptest.NewRecorder()
			mux.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(eventBody("jazz-night"))))
			second := httptest.NewRecorder()
			mux.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(eventBody("jazz-night"))))

			Convey("Then the second submission is a duplicate ack", func() {
				So(first.Code, ShouldEqual, http.StatusAccepted)
				So(second.Code, ShouldEqual, http.StatusOK)
				var ack map[string]any
				So(json.Unmarshal(second.Body.Bytes(), &ack), ShouldBeNil)
				So(ack["duplicate"], ShouldEqual, true)
				So(deps.enqueued, ShouldHaveLength, 1)
			})
		})

		Convey("When the request body is not JSON", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader([]byte("not-json")))
			mux.ServeHTTP(rec, req)

			Convey("Then it is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When required fields are missing", func() {
			body, _ := json.Marshal(map[string]any{"category": "music"})
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))
			mux.ServeHTTP(rec, req)

			Convey("Then it is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When numeric fields are out of range", func() {
			body, _ := json.Marshal(map[string]any{
				"name":           "bad-event",
				"category":       "music",
				"price":          -5,
				"duration_hours": 2,
				"start":          time.Now().Format(time.RFC3339),
			})
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))
			mux.ServeHTTP(rec, req)

			Convey("Then the domain boundary rejects it", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the queue reports backpressure", func() {
			deps.enqueueOK = false
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(eventBody("busy-event")))
			mux.ServeHTTP(rec, req)

			Convey("Then the client gets 429 and the ID is rolled back", func() {
				So(rec.Code, ShouldEqual, http.StatusTooManyRequests)
				So(deps.Size(), ShouldEqual, 0)
			})
		})

		Convey("When using the wrong method", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/events", nil)
			mux.ServeHTTP(rec, req)

			Convey("Then the route is not found", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestGetRecommendations(t *testing.T) {
	Convey("Given the recommendations endpoint", t, func() {
		deps := newMockDeps()
		deps.top = []api.Entry{
			{Rank: 1, Name: "a", Label: "high", Percent: 90, Aggregate: 0.9},
			{Rank: 2, Name: "b", Label: "medium", Percent: 60, Aggregate: 0.6},
		}
		mux := newTestMux(deps)

		Convey("When listing with a valid limit", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/recommendations?limit=2", nil)
			mux.ServeHTTP(rec, req)

			Convey("Then the entries are returned in order", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var entries []api.Entry
				So(json.Unmarshal(rec.Body.Bytes(), &entries), ShouldBeNil)
				So(entries, ShouldHaveLength, 2)
				So(entries[0].Name, ShouldEqual, "a")
			})
		})

		Convey("When the limit is missing or invalid", func() {
			for _, target := range []string{"/recommendations", "/recommendations?limit=0", "/recommendations?limit=abc"} {
				rec := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodGet, target, nil)
				mux.ServeHTTP(rec, req)
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			}
		})

		Convey("When the limit exceeds the maximum", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/recommendations?limit=101", nil)
			mux.ServeHTTP(rec, req)

			Convey("Then it is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestGetVerdict(t *testing.T) {
	Convey("Given the verdict endpoint", t, func() {
		deps := newMockDeps()
		deps.entries["jazz-night"] = api.Entry{Rank: 1, Name: "jazz-night", Label: "high", Percent: 83.3}
		mux := newTestMux(deps)

		Convey("When asking for a scored event", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/verdict/jazz-night", nil)
			mux.ServeHTTP(rec, req)

			Convey("Then the verdict is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var entry api.Entry
				So(json.Unmarshal(rec.Body.Bytes(), &entry), ShouldBeNil)
				So(entry.Label, ShouldEqual, "high")
			})
		})

		Convey("When asking for an unknown event", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/verdict/ghost", nil)
			mux.ServeHTTP(rec, req)

			Convey("Then 404 is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the path has no event name", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/verdict/", nil)
			mux.ServeHTTP(rec, req)

			Convey("Then it is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestPostAttended(t *testing.T) {
	Convey("Given the profile events endpoint", t, func() {
		deps := newMockDeps()
		mux := newTestMux(deps)

		Convey("When recording an attended event", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/profile/events", bytes.NewReader(eventBody("attended-gig")))
			mux.ServeHTTP(rec, req)

			Convey("Then the profile is updated synchronously", func() {
				So(rec.Code, ShouldEqual, http.StatusCreated)
				So(deps.appended, ShouldHaveLength, 1)
				So(deps.appended[0].Name, ShouldEqual, "attended-gig")
			})
		})

		Convey("When the attended event is invalid", func() {
			body, _ := json.Marshal(map[string]any{"name": "x"})
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/profile/events", bytes.NewReader(body))
			mux.ServeHTTP(rec, req)

			Convey("Then it is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(deps.appended, ShouldBeEmpty)
			})
		})
	})
}

func TestGetStats(t *testing.T) {
	Convey("Given the stats endpoint", t, func() {
		deps := newMockDeps()
		mux := newTestMux(deps)

		Convey("When fetching stats", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			mux.ServeHTTP(rec, req)

			Convey("Then a JSON document is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var stats map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &stats), ShouldBeNil)
				So(stats, ShouldContainKey, "queue_size")
			})
		})
	})
}
