package graph

import (
	"context"
	"errors"

	"github.com/justestif/go-catstronauts-gateway/internal/trackapi"
)

// ErrNoDataSources is returned when a resolver runs without request-scoped data sources.
var ErrNoDataSources = errors.New("no data sources in context")

// TrackAPI abstracts the track REST client for resolvers and tests.
type TrackAPI interface {
	GetTracksForHome(ctx context.Context) ([]trackapi.Track, error)
	GetTrack(ctx context.Context, trackID string) (*trackapi.Track, error)
	GetAuthor(ctx context.Context, authorID string) (*trackapi.Author, error)
	GetTrackModules(ctx context.Context, trackID string) ([]trackapi.Module, error)
	IncrementTrackViews(ctx context.Context, trackID string) (*trackapi.Track, error)
}

// DataSources holds the upstream clients for a single GraphQL operation.
type DataSources struct {
	TrackAPI    TrackAPI
	OperationID string
}

type dataSourcesKey struct{}

// WithDataSources returns a copy of ctx carrying ds.
func WithDataSources(ctx context.Context, ds *DataSources) context.Context {
	return context.WithValue(ctx, dataSourcesKey{}, ds)
}

// DataSourcesFrom returns the data sources attached by WithDataSources.
func DataSourcesFrom(ctx context.Context) (*DataSources, error) {
	ds, ok := ctx.Value(dataSourcesKey{}).(*DataSources)
	if !ok || ds == nil || ds.TrackAPI == nil {
		return nil, ErrNoDataSources
	}
	return ds, nil
}

// Ensure the REST client satisfies TrackAPI.
var _ TrackAPI = (*trackapi.Client)(nil)
