// Package worldio reads and writes worlds as JSON, MessagePack and GeoJSON footprints.
package worldio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"motion-world/world"
)

// EncodeJSON writes the world record as indented JSON
func EncodeJSON(wr io.Writer, w *world.World) error {
	enc := json.NewEncoder(wr)
	enc.SetIndent("", "    ")
	if err := enc.Encode(w.Record()); err != nil {
		return fmt.Errorf("failed to marshal world: %w", err)
	}
	return nil
}

// DecodeJSON reads a world record and validates it
func DecodeJSON(r io.Reader) (*world.World, error) {
	var rec world.Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal world: %w", err)
	}
	return world.FromRecord(rec)
}

// SaveJSON serializes and saves the world to a JSON file
func SaveJSON(w *world.World, filename string) error {
	log.Printf("💾 Saving world to %s...\n", filename)

	var buf bytes.Buffer
	if err := EncodeJSON(&buf, w); err != nil {
		return err
	}

	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	log.Printf("   ✅ World saved (%d blocks, %d bytes)\n", w.NumBlocks(), buf.Len())
	return nil
}

// LoadJSON deserializes and loads the world from a JSON file
func LoadJSON(filename string) (*world.World, error) {
	log.Printf("📂 Loading world from %s...\n", filename)

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()

	w, err := DecodeJSON(f)
	if err != nil {
		return nil, err
	}

	log.Printf("   ✅ World loaded: %d blocks\n", w.NumBlocks())
	return w, nil
}
