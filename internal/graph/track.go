package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/justestif/go-catstronauts-gateway/internal/trackapi"
)

// trackResolver resolves Track. The author and modules fields are fetched
// lazily, one REST call each, only when selected.
type trackResolver struct {
	ds    *DataSources
	track *trackapi.Track
}

func (r *trackResolver) ID() graphql.ID { return graphql.ID(r.track.ID) }

func (r *trackResolver) Title() string { return r.track.Title }

func (r *trackResolver) Thumbnail() *string { return r.track.Thumbnail }

func (r *trackResolver) Length() *int32 { return r.track.Length }

func (r *trackResolver) ModulesCount() *int32 { return r.track.ModulesCount }

func (r *trackResolver) Description() *string { return r.track.Description }

func (r *trackResolver) NumberOfViews() *int32 { return r.track.NumberOfViews }

// Author resolves Track.author from the parent's authorId.
func (r *trackResolver) Author(ctx context.Context) (*authorResolver, error) {
	author, err := r.ds.TrackAPI.GetAuthor(ctx, r.track.AuthorID)
	if err != nil {
		return nil, newFieldError(err)
	}
	return &authorResolver{author: author}, nil
}

// Modules resolves Track.modules from the parent's id.
func (r *trackResolver) Modules(ctx context.Context) ([]*moduleResolver, error) {
	modules, err := r.ds.TrackAPI.GetTrackModules(ctx, r.track.ID)
	if err != nil {
		return nil, newFieldError(err)
	}

	resolvers := make([]*moduleResolver, len(modules))
	for i := range modules {
		resolvers[i] = &moduleResolver{module: &modules[i]}
	}
	return resolvers, nil
}

type authorResolver struct {
	author *trackapi.Author
}

func (r *authorResolver) ID() graphql.ID { return graphql.ID(r.author.ID) }

func (r *authorResolver) Name() string { return r.author.Name }

func (r *authorResolver) Photo() *string { return r.author.Photo }

type moduleResolver struct {
	module *trackapi.Module
}

func (r *moduleResolver) ID() graphql.ID { return graphql.ID(r.module.ID) }

func (r *moduleResolver) Title() string { return r.module.Title }

func (r *moduleResolver) Length() *int32 { return r.module.Length }

func (r *moduleResolver) Content() *string { return r.module.Content }

func (r *moduleResolver) VideoURL() *string { return r.module.VideoURL }
