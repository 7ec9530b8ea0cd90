package verbdata

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteChunk writes verbs as a gzip chunk with deterministic framing: the
// embedded name is the file name minus .gz and the modification time
// stays zero, so identical inputs produce identical bytes. Returns the
// compressed file size.
func WriteChunk(path string, verbs []Record) (int64, error) {
	if verbs == nil {
		verbs = []Record{} // an empty tier still encodes as a list
	}
	raw, err := marshalCompact(Chunk{Verbs: verbs})
	if err != nil {
		return 0, fmt.Errorf("encoding chunk: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("writing chunk: %w", err)
	}
	gz := gzip.NewWriter(file)
	gz.Name = strings.TrimSuffix(filepath.Base(path), ".gz")
	if _, err := gz.Write(raw); err != nil {
		file.Close()
		return 0, fmt.Errorf("writing chunk: %w", err)
	}
	if err := gz.Close(); err != nil {
		file.Close()
		return 0, fmt.Errorf("writing chunk: %w", err)
	}
	if err := file.Close(); err != nil {
		return 0, fmt.Errorf("writing chunk: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("sizing chunk: %w", err)
	}
	return info.Size(), nil
}

// ReadChunk loads one chunk file.
func ReadChunk(path string) (*Chunk, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chunk: %w", err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("opening chunk: %w", err)
	}
	defer gz.Close()

	var chunk Chunk
	if err := json.NewDecoder(gz).Decode(&chunk); err != nil {
		return nil, fmt.Errorf("decoding chunk %s: %w", filepath.Base(path), err)
	}
	return &chunk, nil
}

// WriteManifest writes the manifest as compact JSON.
func WriteManifest(path string, m *Manifest) error {
	raw, err := marshalCompact(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// ReadManifest loads a manifest file.
func ReadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	return &m, nil
}

// marshalCompact encodes without HTML escaping so accented and quoted
// French text stays readable in the files.
func marshalCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
