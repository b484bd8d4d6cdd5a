package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/paulmach/orb"

	"github.com/easbar/fast-paths/pkg/ch"
	"github.com/easbar/fast-paths/pkg/engine"
	"github.com/easbar/fast-paths/pkg/graph"
	"github.com/easbar/fast-paths/pkg/osmimport"
	"github.com/easbar/fast-paths/pkg/routing"
)

// runQueryBenchmark fires numQueries random source/target pairs at fg using a
// seeded RNG (reproducible across runs), and returns the sum of all found
// path weights (the checksum), how many pairs had no path at all, and the
// time the queries took. Ported from original_source/src/bin/main.rs's
// run_queries.
func runQueryBenchmark(fg *graph.FastGraph, numQueries int, seed int64) (checksum uint64, numNotFound int, elapsed time.Duration) {
	rng := rand.New(rand.NewSource(seed))
	pc := routing.CreateCalculator(fg)
	numNodes := fg.NumNodes()

	start := time.Now()
	for i := 0; i < numQueries; i++ {
		s := routing.NodeId(rng.Intn(numNodes))
		t := routing.NodeId(rng.Intn(numNodes))
		path := pc.CalcPath(fg, s, t)
		if path.IsFound() {
			checksum += uint64(path.Weight)
		} else {
			numNotFound++
		}
	}
	return checksum, numNotFound, time.Since(start)
}

// remapCoords reorders coords (indexed by the original NodeId space) to the
// compact id space oldToNew assigns, so the output lines up 1:1 with the
// filtered InputGraph's own node ids.
func remapCoords(coords []orb.Point, oldToNew map[ch.NodeId]ch.NodeId) []orb.Point {
	out := make([]orb.Point, len(oldToNew))
	for oldID, newID := range oldToNew {
		out[newID] = coords[oldID]
	}
	return out
}

func main() {
	input := flag.String("input", "", "Path to .osm.pbf file")
	output := flag.String("output", "graph.bin", "Output binary graph file path")
	bbox := flag.String("bbox", "", "Bounding box filter: minLat,minLng,maxLat,maxLng (e.g. 1.15,103.6,1.48,104.1)")
	singapore := flag.Bool("singapore", false, "Shortcut for --bbox 1.15,103.6,1.48,104.1 (Singapore bounding box)")
	kl := flag.Bool("kl", false, "Shortcut for --bbox 2.75,101.2,3.5,102.0 (Selangor + Kuala Lumpur bounding box)")
	benchQueries := flag.Int("bench-queries", 100000, "Number of random queries to run against the built graph as a throughput benchmark (0 to skip)")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: preprocess --input <file.osm.pbf> [--output graph.bin] [--singapore | --kl | --bbox minLat,minLng,maxLat,maxLng]")
		os.Exit(1)
	}

	var opts osmimport.ParseOptions
	if *kl {
		opts.BBox = osmimport.BBox{MinLat: 2.75, MaxLat: 3.5, MinLng: 101.2, MaxLng: 102.0}
		log.Println("Using Selangor + KL bounding box filter: lat [2.75, 3.50], lng [101.20, 102.00]")
	} else if *singapore {
		opts.BBox = osmimport.BBox{MinLat: 1.15, MaxLat: 1.48, MinLng: 103.6, MaxLng: 104.1}
		log.Println("Using Singapore bounding box filter: lat [1.15, 1.48], lng [103.6, 104.1]")
	} else if *bbox != "" {
		var minLat, minLng, maxLat, maxLng float64
		_, err := fmt.Sscanf(*bbox, "%f,%f,%f,%f", &minLat, &minLng, &maxLat, &maxLng)
		if err != nil {
			log.Fatalf("Invalid bbox format (expected minLat,minLng,maxLat,maxLng): %v", err)
		}
		opts.BBox = osmimport.BBox{MinLat: minLat, MaxLat: maxLat, MinLng: minLng, MaxLng: maxLng}
		log.Printf("Using bounding box filter: lat [%.4f, %.4f], lng [%.4f, %.4f]", minLat, maxLat, minLng, maxLng)
	}

	start := time.Now()

	// Step 1: Parse OSM data.
	log.Println("Opening OSM file...")
	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("Failed to open input file: %v", err)
	}
	defer f.Close()

	log.Println("Parsing OSM data...")
	result, err := osmimport.Parse(context.Background(), f, opts)
	if err != nil {
		log.Fatalf("Failed to parse OSM data: %v", err)
	}
	log.Printf("Parsed %d nodes, %d edges", result.Graph.NumNodes(), result.Graph.NumEdges())

	// Step 2: Extract largest connected component.
	log.Println("Extracting largest connected component...")
	componentNodes := ch.LargestComponent(result.Graph)
	log.Printf("Largest component: %d nodes (%.1f%%)", len(componentNodes),
		float64(len(componentNodes))/float64(result.Graph.NumNodes())*100)

	filtered, oldToNew := ch.FilterToInputGraph(result.Graph, componentNodes)
	filtered.Freeze()
	filteredCoords := remapCoords(result.Coords, oldToNew)
	log.Printf("Filtered graph: %d nodes, %d edges", filtered.NumNodes(), filtered.NumEdges())

	// Step 3: Contract CH.
	log.Println("Running Contraction Hierarchies...")
	fg := ch.Build(filtered)
	log.Printf("CH complete: %d fwd edges, %d bwd edges, %d shortcuts", fg.NumOutEdges(), fg.NumInEdges(), fg.NumShortcuts())

	// Step 4: Benchmark query throughput against a fixed seed so the
	// checksum is reproducible across runs of the same input and is useful
	// as a quick correctness smoke test (a changed checksum after an
	// unrelated-looking change usually means something broke).
	if *benchQueries > 0 {
		log.Printf("Running %d random queries...", *benchQueries)
		checksum, numNotFound, elapsed := runQueryBenchmark(fg, *benchQueries, 123)
		log.Printf("Query benchmark: %s total, %.1f µs/query avg, checksum=%d, not found=%d",
			elapsed.Round(time.Millisecond), float64(elapsed.Microseconds())/float64(*benchQueries), checksum, numNotFound)
	}

	// Step 5: Serialize the contracted graph and the side data the server
	// needs to snap query points (original edges + coordinates).
	log.Printf("Writing binary to %s...", *output)
	if err := graph.WriteBinary(*output, fg); err != nil {
		log.Fatalf("Failed to write binary: %v", err)
	}
	sideDataPath := *output + ".side"
	if err := engine.WriteSideData(sideDataPath, filtered.Edges(), filteredCoords); err != nil {
		log.Fatalf("Failed to write side data: %v", err)
	}

	info, _ := os.Stat(*output)
	elapsed := time.Since(start)
	log.Printf("Done in %s. Output: %s (%.1f MB), side data: %s", elapsed.Round(time.Second), *output,
		float64(info.Size())/(1024*1024), sideDataPath)
}
