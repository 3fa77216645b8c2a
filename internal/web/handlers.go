package web

import (
	"io/fs"
	"net/http"

	"github.com/google/uuid"

	"github.com/justestif/go-catstronauts-gateway/internal/graph"
	"github.com/justestif/go-catstronauts-gateway/internal/trackapi"
)

const playgroundFile = "graphiql.html"

// Handlers contains HTTP handlers for the gateway.
type Handlers struct {
	trackAPI   *trackapi.Config
	httpClient trackapi.HTTPDoer
	staticFS   fs.FS
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(trackAPI *trackapi.Config, httpClient trackapi.HTTPDoer, staticFS fs.FS) *Handlers {
	return &Handlers{
		trackAPI:   trackAPI,
		httpClient: httpClient,
		staticFS:   staticFS,
	}
}

// DataSources builds the upstream clients for one GraphQL operation and
// attaches them to the request context.
func (h *Handlers) DataSources(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		opID := uuid.NewString()

		client := trackapi.NewClient(h.trackAPI,
			trackapi.WithHTTPClient(h.httpClient),
			trackapi.WithOperationID(opID),
		)

		ctx := graph.WithDataSources(r.Context(), &graph.DataSources{
			TrackAPI:    client,
			OperationID: opID,
		})

		w.Header().Set(trackapi.OperationIDHeader, opID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Playground serves the GraphiQL page (GET /).
func (h *Handlers) Playground(w http.ResponseWriter, r *http.Request) {
	page, err := fs.ReadFile(h.staticFS, playgroundFile)
	if err != nil {
		http.Error(w, "Playground not available", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// Health reports that the server is up (GET /healthz).
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
