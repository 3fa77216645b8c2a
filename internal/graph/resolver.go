package graph

import (
	"context"
	"errors"
	"log"
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/justestif/go-catstronauts-gateway/internal/trackapi"
)

// IncrementSuccessMessage is reported when a track's views were incremented.
const IncrementSuccessMessage = "Track views incremented"

// Resolver is the root resolver for queries and mutations. It holds no
// state; every call reads its data sources from the request context.
type Resolver struct{}

// TracksForHome resolves Query.tracksForHome.
func (r *Resolver) TracksForHome(ctx context.Context) ([]*trackResolver, error) {
	ds, err := DataSourcesFrom(ctx)
	if err != nil {
		return nil, newFieldError(err)
	}

	tracks, err := ds.TrackAPI.GetTracksForHome(ctx)
	if err != nil {
		return nil, newFieldError(err)
	}

	resolvers := make([]*trackResolver, len(tracks))
	for i := range tracks {
		resolvers[i] = &trackResolver{ds: ds, track: &tracks[i]}
	}
	return resolvers, nil
}

// Track resolves Query.track.
func (r *Resolver) Track(ctx context.Context, args struct{ ID graphql.ID }) (*trackResolver, error) {
	ds, err := DataSourcesFrom(ctx)
	if err != nil {
		return nil, newFieldError(err)
	}

	track, err := ds.TrackAPI.GetTrack(ctx, string(args.ID))
	if err != nil {
		return nil, newFieldError(err)
	}
	return &trackResolver{ds: ds, track: track}, nil
}

// IncrementTrackViews resolves Mutation.incrementTrackViews. It never
// returns an error: failures are reported in the result envelope.
func (r *Resolver) IncrementTrackViews(ctx context.Context, args struct{ ID graphql.ID }) *incrementTrackViewsResult {
	ds, err := DataSourcesFrom(ctx)
	if err != nil {
		return failedIncrement(http.StatusInternalServerError, err.Error())
	}

	track, err := ds.TrackAPI.IncrementTrackViews(ctx, string(args.ID))
	if err != nil {
		log.Printf("incrementTrackViews %s (operation %s): %v", args.ID, ds.OperationID, err)

		var upErr *trackapi.UpstreamError
		if errors.As(err, &upErr) {
			return failedIncrement(upErr.StatusCode, upErr.Body)
		}
		if errors.Is(err, trackapi.ErrInvalidID) {
			return failedIncrement(http.StatusBadRequest, err.Error())
		}
		return failedIncrement(http.StatusInternalServerError, err.Error())
	}

	return &incrementTrackViewsResult{
		code:    http.StatusOK,
		success: true,
		message: IncrementSuccessMessage,
		track:   &trackResolver{ds: ds, track: track},
	}
}

func failedIncrement(code int, message string) *incrementTrackViewsResult {
	return &incrementTrackViewsResult{
		code:    int32(code),
		success: false,
		message: message,
	}
}

// incrementTrackViewsResult resolves IncrementTrackViewsResult.
type incrementTrackViewsResult struct {
	code    int32
	success bool
	message string
	track   *trackResolver
}

func (r *incrementTrackViewsResult) Code() int32 { return r.code }

func (r *incrementTrackViewsResult) Success() bool { return r.success }

func (r *incrementTrackViewsResult) Message() string { return r.message }

func (r *incrementTrackViewsResult) Track() *trackResolver { return r.track }
