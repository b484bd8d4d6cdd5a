package engine

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/paulmach/orb"

	"github.com/easbar/fast-paths/pkg/ch"
)

// WriteSideData persists the original (uncontracted) edge list and node
// coordinates a server process needs to rebuild a snap.Index at startup,
// alongside the contracted graph.FastGraph written by graph.WriteBinary.
func WriteSideData(path string, edges []ch.Edge, coords []orb.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create side data file: %w", err)
	}
	defer f.Close()
	bw := bufio.NewWriter(f)

	if err := binary.Write(bw, binary.LittleEndian, uint32(len(edges))); err != nil {
		return err
	}
	for _, e := range edges {
		if err := binary.Write(bw, binary.LittleEndian, e.From); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, e.To); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, e.Weight); err != nil {
			return err
		}
	}

	if err := binary.Write(bw, binary.LittleEndian, uint32(len(coords))); err != nil {
		return err
	}
	for _, p := range coords {
		if err := binary.Write(bw, binary.LittleEndian, p.Lon()); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, p.Lat()); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// ReadSideData reads a file written by WriteSideData.
func ReadSideData(path string) (edges []ch.Edge, coords []orb.Point, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open side data file: %w", err)
	}
	defer f.Close()
	br := bufio.NewReader(f)

	var numEdges uint32
	if err := binary.Read(br, binary.LittleEndian, &numEdges); err != nil {
		return nil, nil, err
	}
	edges = make([]ch.Edge, numEdges)
	for i := range edges {
		if err := binary.Read(br, binary.LittleEndian, &edges[i].From); err != nil {
			return nil, nil, err
		}
		if err := binary.Read(br, binary.LittleEndian, &edges[i].To); err != nil {
			return nil, nil, err
		}
		if err := binary.Read(br, binary.LittleEndian, &edges[i].Weight); err != nil {
			return nil, nil, err
		}
	}

	var numCoords uint32
	if err := binary.Read(br, binary.LittleEndian, &numCoords); err != nil {
		return nil, nil, err
	}
	coords = make([]orb.Point, numCoords)
	for i := range coords {
		var lon, lat float64
		if err := binary.Read(br, binary.LittleEndian, &lon); err != nil {
			return nil, nil, err
		}
		if err := binary.Read(br, binary.LittleEndian, &lat); err != nil {
			return nil, nil, err
		}
		coords[i] = orb.Point{lon, lat}
	}

	if _, err := br.Peek(1); err != io.EOF {
		return nil, nil, fmt.Errorf("side data file has trailing data")
	}

	return edges, coords, nil
}
