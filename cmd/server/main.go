package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/easbar/fast-paths/pkg/api"
	"github.com/easbar/fast-paths/pkg/engine"
	"github.com/easbar/fast-paths/pkg/graph"
)

func main() {
	graphPath := flag.String("graph", "graph.bin", "Path to preprocessed graph binary")
	port := flag.Int("port", 8080, "HTTP port")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	queryTimeout := flag.Duration("query-timeout", 2*time.Second, "Max time allowed for a single route query")
	flag.Parse()

	start := time.Now()

	// Load the contracted graph.
	log.Printf("Loading graph from %s...", *graphPath)
	fg, err := graph.ReadBinary(*graphPath)
	if err != nil {
		log.Fatalf("Failed to load graph: %v", err)
	}
	log.Printf("Loaded: %d nodes, %d fwd edges, %d bwd edges", fg.NumNodes(), fg.NumOutEdges(), fg.NumInEdges())

	// Load the original edges + coordinates needed to snap query points.
	sideDataPath := *graphPath + ".side"
	log.Printf("Loading side data from %s...", sideDataPath)
	edges, coords, err := engine.ReadSideData(sideDataPath)
	if err != nil {
		log.Fatalf("Failed to load side data: %v", err)
	}

	// Build routing engine and its spatial snap index.
	log.Println("Building spatial index...")
	eng := engine.NewEngine(fg, edges, coords)

	// Reclaim memory from init-time temporaries. Without this, Go's heap
	// retains peak RSS from index construction (GC doubles heap each cycle:
	// 120→240→480→960→1920 MB). This returns unused pages to the OS.
	runtime.GC()
	debug.FreeOSMemory()

	loadTime := time.Since(start)
	log.Printf("Ready in %s", loadTime.Round(time.Millisecond))

	// Setup HTTP server.
	addr := fmt.Sprintf(":%d", *port)
	cfg := api.DefaultConfig(addr)
	cfg.CORSOrigin = *corsOrigin
	cfg.QueryTimeout = *queryTimeout

	stats := api.StatsResponse{
		NumNodes:     uint32(fg.NumNodes()),
		NumFwdEdges:  fg.NumOutEdges(),
		NumBwdEdges:  fg.NumInEdges(),
		NumShortcuts: fg.NumShortcuts(),
	}

	handlers := api.NewHandlers(eng, stats)
	srv := api.NewServer(cfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
