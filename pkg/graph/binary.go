package graph

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"unsafe"
)

const (
	binaryMagic   = "FPATH64\x00"
	binaryVersion = uint32(1)
)

// fileHeader is the native (64-bit-host) on-disk header.
type fileHeader struct {
	Magic       [8]byte
	Version     uint32
	NumNodes    uint32
	NumFwdEdges uint32
	NumBwdEdges uint32
}

// WriteBinary serializes fg to path: a magic/version header, the rank and
// edge arrays, and a trailing CRC32 checksum over everything preceding it.
// The file is written to a temporary path and atomically renamed into place
// so that a crash mid-write never leaves a corrupt file at path.
func WriteBinary(path string, fg *FastGraph) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath)
	}()

	cw := &crc32Writer{w: f, hash: crc32.NewIEEE()}

	hdr := fileHeader{
		Version:     binaryVersion,
		NumNodes:    uint32(fg.NumNodes()),
		NumFwdEdges: uint32(fg.NumOutEdges()),
		NumBwdEdges: uint32(fg.NumInEdges()),
	}
	copy(hdr.Magic[:], binaryMagic)
	if err := binary.Write(cw, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := writeUint32Slice(cw, fg.Ranks); err != nil {
		return fmt.Errorf("write Ranks: %w", err)
	}
	if err := writeUint32Slice(cw, fg.FirstEdgeIdsFwd); err != nil {
		return fmt.Errorf("write FirstEdgeIdsFwd: %w", err)
	}
	if err := binary.Write(cw, binary.LittleEndian, fg.EdgesFwd); err != nil {
		return fmt.Errorf("write EdgesFwd: %w", err)
	}
	if err := writeUint32Slice(cw, fg.FirstEdgeIdsBwd); err != nil {
		return fmt.Errorf("write FirstEdgeIdsBwd: %w", err)
	}
	if err := binary.Write(cw, binary.LittleEndian, fg.EdgesBwd); err != nil {
		return fmt.Errorf("write EdgesBwd: %w", err)
	}

	if err := binary.Write(f, binary.LittleEndian, cw.hash.Sum32()); err != nil {
		return fmt.Errorf("write checksum: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// ReadBinary deserializes a FastGraph previously written by WriteBinary,
// validating the magic, version and trailing CRC32.
func ReadBinary(path string) (*FastGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	cr := &crc32Reader{r: f, hash: crc32.NewIEEE()}

	var hdr fileHeader
	if err := binary.Read(cr, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if string(hdr.Magic[:]) != binaryMagic {
		return nil, fmt.Errorf("invalid magic bytes: %q", hdr.Magic)
	}
	if hdr.Version != binaryVersion {
		return nil, fmt.Errorf("unsupported version: %d", hdr.Version)
	}

	fg := NewFastGraph(int(hdr.NumNodes))
	if fg.Ranks, err = readUint32Slice(cr, int(hdr.NumNodes)); err != nil {
		return nil, fmt.Errorf("read Ranks: %w", err)
	}
	if fg.FirstEdgeIdsFwd, err = readUint32Slice(cr, int(hdr.NumNodes)+1); err != nil {
		return nil, fmt.Errorf("read FirstEdgeIdsFwd: %w", err)
	}
	fg.EdgesFwd = make([]FastGraphEdge, hdr.NumFwdEdges)
	if err := binary.Read(cr, binary.LittleEndian, fg.EdgesFwd); err != nil {
		return nil, fmt.Errorf("read EdgesFwd: %w", err)
	}
	if fg.FirstEdgeIdsBwd, err = readUint32Slice(cr, int(hdr.NumNodes)+1); err != nil {
		return nil, fmt.Errorf("read FirstEdgeIdsBwd: %w", err)
	}
	fg.EdgesBwd = make([]FastGraphEdge, hdr.NumBwdEdges)
	if err := binary.Read(cr, binary.LittleEndian, fg.EdgesBwd); err != nil {
		return nil, fmt.Errorf("read EdgesBwd: %w", err)
	}

	expected := cr.hash.Sum32()
	var stored uint32
	if err := binary.Read(f, binary.LittleEndian, &stored); err != nil {
		return nil, fmt.Errorf("read checksum: %w", err)
	}
	if stored != expected {
		return nil, fmt.Errorf("checksum mismatch: stored=%08x computed=%08x", stored, expected)
	}

	return fg, nil
}

// Zero-copy I/O helpers for the flat uint32 arrays (Ranks, FirstEdgeIds*).
// NodeId/EdgeId are uint32-backed type aliases (pkg/chcore), so reslicing
// their backing array as bytes is safe and avoids a per-element copy.

func writeUint32Slice(w io.Writer, s []NodeId) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	_, err := w.Write(b)
	return err
}

func readUint32Slice(r io.Reader, n int) ([]NodeId, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]NodeId, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*4)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

// CRC32-accumulating wrappers around the underlying file handle.

type crc32Writer struct {
	w    io.Writer
	hash hashSum32
}

type hashSum32 interface {
	Write([]byte) (int, error)
	Sum32() uint32
}

func (cw *crc32Writer) Write(p []byte) (int, error) {
	cw.hash.Write(p)
	return cw.w.Write(p)
}

type crc32Reader struct {
	r    io.Reader
	hash hashSum32
}

func (cr *crc32Reader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.hash.Write(p[:n])
	}
	return n, err
}
