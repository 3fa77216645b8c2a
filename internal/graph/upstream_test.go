package graph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/require"

	"github.com/justestif/go-catstronauts-gateway/internal/trackapi"
)

// fakeUpstream is an in-memory stand-in for the Catstronauts REST API.
type fakeUpstream struct {
	mu       sync.Mutex
	tracks   []trackapi.Track
	authors  map[string]trackapi.Author
	modules  map[string][]trackapi.Module
	requests map[string]int

	// canned answers keyed by "METHOD /path", served before routing
	canned map[string]cannedResponse
}

type cannedResponse struct {
	status int
	body   string
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{
		authors:  make(map[string]trackapi.Author),
		modules:  make(map[string][]trackapi.Module),
		requests: make(map[string]int),
		canned:   make(map[string]cannedResponse),
	}
}

// answer makes the fake reply to method and path with a fixed response.
func (f *fakeUpstream) answer(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.canned[method+" "+path] = cannedResponse{status: status, body: body}
}

func (f *fakeUpstream) totalRequests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.requests {
		n += c
	}
	return n
}

func (f *fakeUpstream) requestCount(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[method+" "+path]
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := r.Method + " " + r.URL.Path
	f.requests[key]++
	if c, ok := f.canned[key]; ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(c.status)
		w.Write([]byte(c.body))
		return
	}
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	switch {
	case r.Method == http.MethodGet && len(parts) == 1 && parts[0] == "tracks":
		writeJSON(w, f.tracks)
	case r.Method == http.MethodGet && len(parts) == 2 && parts[0] == "track":
		if t := f.findTrack(parts[1]); t != nil {
			writeJSON(w, t)
			return
		}
		http.Error(w, "Track not found", http.StatusNotFound)
	case r.Method == http.MethodGet && len(parts) == 3 && parts[0] == "track" && parts[2] == "modules":
		writeJSON(w, f.modules[parts[1]])
	case r.Method == http.MethodGet && len(parts) == 2 && parts[0] == "author":
		if a, ok := f.authors[parts[1]]; ok {
			writeJSON(w, a)
			return
		}
		http.Error(w, "Author not found", http.StatusNotFound)
	case r.Method == http.MethodPatch && len(parts) == 3 && parts[0] == "track" && parts[2] == "numberOfViews":
		t := f.findTrack(parts[1])
		if t == nil {
			http.Error(w, "Track not found", http.StatusNotFound)
			return
		}
		views := int32(1)
		if t.NumberOfViews != nil {
			views = *t.NumberOfViews + 1
		}
		t.NumberOfViews = &views
		writeJSON(w, t)
	default:
		http.Error(w, "unexpected request", http.StatusBadRequest)
	}
}

func (f *fakeUpstream) findTrack(id string) *trackapi.Track {
	for i := range f.tracks {
		if f.tracks[i].ID == id {
			return &f.tracks[i]
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func ptr[T any](v T) *T { return &v }

// seededUpstream returns a fake with two tracks sharing one author.
func seededUpstream() *fakeUpstream {
	f := newFakeUpstream()
	f.tracks = []trackapi.Track{
		{ID: "c_0", Title: "Splendid Cat-stronomy", AuthorID: "cat-1", Length: ptr(int32(2377)), NumberOfViews: ptr(int32(0))},
		{ID: "c_1", Title: "Kitty space suit", AuthorID: "cat-2", Thumbnail: ptr("https://example.com/suit.jpg")},
		{ID: "c_2", Title: "Asteroid mice", AuthorID: "cat-1"},
	}
	f.authors["cat-1"] = trackapi.Author{ID: "cat-1", Name: "Henri, le Chat Noir", Photo: ptr("https://example.com/henri.jpg")}
	f.authors["cat-2"] = trackapi.Author{ID: "cat-2", Name: "Grumpy Cat"}
	f.modules["c_0"] = []trackapi.Module{
		{ID: "l_2", Title: "Orbits", Length: ptr(int32(300))},
		{ID: "l_0", Title: "Telescopes"},
		{ID: "l_1", Title: "Meteors", VideoURL: ptr("https://example.com/v.mp4")},
	}
	return f
}

// gatewayFixture wires a schema to a fake upstream through the real REST client.
type gatewayFixture struct {
	t        *testing.T
	upstream *fakeUpstream
	schema   *graphql.Schema
	baseURL  string
	client   *http.Client
}

func newGatewayFixture(t *testing.T, upstream *fakeUpstream) *gatewayFixture {
	t.Helper()

	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	schema, err := NewSchema(Options{})
	require.NoError(t, err)

	return &gatewayFixture{
		t:        t,
		upstream: upstream,
		schema:   schema,
		baseURL:  server.URL + "/",
		client:   server.Client(),
	}
}

// exec runs a GraphQL operation with fresh request-scoped data sources,
// the way the HTTP layer does.
func (g *gatewayFixture) exec(query string, vars map[string]interface{}) *graphql.Response {
	g.t.Helper()

	api := trackapi.NewClient(&trackapi.Config{BaseURL: g.baseURL}, trackapi.WithHTTPClient(g.client))
	ctx := WithDataSources(context.Background(), &DataSources{TrackAPI: api, OperationID: "test-op"})
	return g.schema.Exec(ctx, query, "", vars)
}

// decode unmarshals the response data into out.
func (g *gatewayFixture) decode(resp *graphql.Response, out any) {
	g.t.Helper()
	require.NoError(g.t, json.Unmarshal(resp.Data, out))
}
