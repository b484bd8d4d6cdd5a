// Package textgraph reads and writes ch.InputGraph in two plain-text formats
// used for offline benchmarking and interop with other shortest-path
// tooling: a simple arc-list format and DIMACS shortest-path challenge
// format.
package textgraph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/easbar/fast-paths/pkg/ch"
)

// ReadArcList reads the arc-list format, one directed edge per line:
//
//	a <from> <to> <weight>
//
// Any line not starting with 'a' is ignored (DIMACS-style 'c' comments and
// 'p' problem lines are both tolerated this way). Returns a frozen graph.
func ReadArcList(r io.Reader) (*ch.InputGraph, error) {
	g := ch.NewInputGraph()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "a") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("textgraph: line %d: expected 'a <from> <to> <weight>', got %q", lineNo, line)
		}
		from, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("textgraph: line %d: bad from id: %w", lineNo, err)
		}
		to, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("textgraph: line %d: bad to id: %w", lineNo, err)
		}
		weight, err := strconv.ParseUint(fields[3], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("textgraph: line %d: bad weight: %w", lineNo, err)
		}
		g.AddEdge(ch.NodeId(from), ch.NodeId(to), ch.Weight(weight))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("textgraph: %w", err)
	}
	g.Freeze()
	return g, nil
}

// WriteArcList writes g (which must be frozen) in the arc-list format read
// by ReadArcList.
func WriteArcList(w io.Writer, g *ch.InputGraph) error {
	bw := bufio.NewWriter(w)
	for _, e := range g.Edges() {
		if _, err := fmt.Fprintf(bw, "a %d %d %d\n", e.From, e.To, e.Weight); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadDIMACS reads the DIMACS shortest-path challenge format:
//
//	c  comment lines, ignored
//	p sp <numNodes> <numEdges>
//	a <from> <to> <weight>
//
// Node ids in DIMACS files are 1-based; ReadDIMACS converts them to the
// 0-based ids ch.InputGraph expects. The problem line's declared counts are
// not enforced against the actual arc lines that follow, since some DIMACS
// generators undercount stray duplicate arcs that InputGraph.Freeze later
// collapses anyway.
func ReadDIMACS(r io.Reader) (*ch.InputGraph, error) {
	g := ch.NewInputGraph()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	sawProblemLine := false
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "c"):
			continue
		case strings.HasPrefix(line, "p"):
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[1] != "sp" {
				return nil, fmt.Errorf("textgraph: line %d: expected 'p sp <n> <m>', got %q", lineNo, line)
			}
			sawProblemLine = true
		case strings.HasPrefix(line, "a"):
			if !sawProblemLine {
				return nil, fmt.Errorf("textgraph: line %d: arc line before problem line", lineNo)
			}
			fields := strings.Fields(line)
			if len(fields) != 4 {
				return nil, fmt.Errorf("textgraph: line %d: expected 'a <from> <to> <weight>', got %q", lineNo, line)
			}
			from, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("textgraph: line %d: bad from id: %w", lineNo, err)
			}
			to, err := strconv.ParseUint(fields[2], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("textgraph: line %d: bad to id: %w", lineNo, err)
			}
			weight, err := strconv.ParseUint(fields[3], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("textgraph: line %d: bad weight: %w", lineNo, err)
			}
			if from == 0 || to == 0 {
				return nil, fmt.Errorf("textgraph: line %d: DIMACS node ids are 1-based, got %d/%d", lineNo, from, to)
			}
			g.AddEdge(ch.NodeId(from-1), ch.NodeId(to-1), ch.Weight(weight))
		default:
			return nil, fmt.Errorf("textgraph: line %d: unrecognized line %q", lineNo, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("textgraph: %w", err)
	}
	g.Freeze()
	return g, nil
}

// WriteDIMACS writes g (which must be frozen) in DIMACS shortest-path
// challenge format, converting its 0-based node ids to DIMACS's 1-based
// convention.
func WriteDIMACS(w io.Writer, g *ch.InputGraph) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "p sp %d %d\n", g.NumNodes(), g.NumEdges()); err != nil {
		return err
	}
	for _, e := range g.Edges() {
		if _, err := fmt.Fprintf(bw, "a %d %d %d\n", e.From+1, e.To+1, e.Weight); err != nil {
			return err
		}
	}
	return bw.Flush()
}
