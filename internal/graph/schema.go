// Package graph implements the Catstronauts GraphQL schema on top of the
// track REST API.
package graph

import (
	"context"
	_ "embed"
	"log"
	"runtime"

	graphql "github.com/graph-gophers/graphql-go"
)

// Schema is the GraphQL schema document served by the gateway.
//
//go:embed schema.graphql
var Schema string

// Default execution limits.
const (
	DefaultMaxParallelism = 10
	DefaultMaxDepth       = 20 // GraphiQL's introspection query nests deeply
)

// Options configures schema execution.
type Options struct {
	MaxParallelism int
	MaxDepth       int
}

// NewSchema parses Schema against the root Resolver.
func NewSchema(opts Options) (*graphql.Schema, error) {
	if opts.MaxParallelism <= 0 {
		opts.MaxParallelism = DefaultMaxParallelism
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}

	return graphql.ParseSchema(Schema, &Resolver{},
		graphql.MaxParallelism(opts.MaxParallelism),
		graphql.MaxDepth(opts.MaxDepth),
		graphql.Logger(panicLogger{}),
	)
}

// panicLogger logs panics recovered while resolving a field.
type panicLogger struct{}

func (panicLogger) LogPanic(ctx context.Context, value interface{}) {
	const size = 64 << 10
	buf := make([]byte, size)
	buf = buf[:runtime.Stack(buf, false)]

	opID := "-"
	if ds, err := DataSourcesFrom(ctx); err == nil && ds.OperationID != "" {
		opID = ds.OperationID
	}
	log.Printf("graphql: panic in operation %s: %v\n%s", opID, value, buf)
}
