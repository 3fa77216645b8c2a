// Command catstronauts-server runs the Catstronauts GraphQL gateway.
package main

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/justestif/go-catstronauts-gateway/internal/graph"
	"github.com/justestif/go-catstronauts-gateway/internal/logging"
	"github.com/justestif/go-catstronauts-gateway/internal/trackapi"
	"github.com/justestif/go-catstronauts-gateway/internal/web"
	webfs "github.com/justestif/go-catstronauts-gateway/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env file is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading .env: %w", err)
	}

	logCfg, err := logging.LoadConfig()
	if err != nil {
		return err
	}
	closer := logging.Setup(logCfg)
	defer closer.Close()

	trackCfg, err := trackapi.LoadConfig()
	if err != nil {
		return err
	}

	schemaOpts, err := loadSchemaOptions()
	if err != nil {
		return err
	}

	static, err := fs.Sub(webfs.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("creating static filesystem: %w", err)
	}

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = web.DefaultAddr
	}

	server, err := web.NewServer(web.ServerConfig{
		Addr:           addr,
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
		TrackAPI:       trackCfg,
		Schema:         schemaOpts,
		StaticFS:       static,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	log.Printf("Proxying track API at %s", trackCfg.BaseURL)
	return server.Run()
}

// loadSchemaOptions reads GRAPHQL_MAX_PARALLELISM and GRAPHQL_MAX_DEPTH.
// Unset values fall back to the graph package defaults.
func loadSchemaOptions() (graph.Options, error) {
	var opts graph.Options
	for key, dst := range map[string]*int{
		"GRAPHQL_MAX_PARALLELISM": &opts.MaxParallelism,
		"GRAPHQL_MAX_DEPTH":       &opts.MaxDepth,
	} {
		raw := os.Getenv(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return graph.Options{}, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
		}
		*dst = n
	}
	return opts, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
