package worldio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"motion-world/world"
)

var ErrUnknownFormat = errors.New("unknown world file format")

// Format is a world file encoding
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
	FormatGeoJSON Format = "geojson"
)

// FormatFor picks the encoding from a file extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".msgpack", ".mpk":
		return FormatMsgpack, nil
	case ".geojson":
		return FormatGeoJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Encode writes w in the given format
func Encode(wr io.Writer, f Format, w *world.World) error {
	switch f {
	case FormatJSON:
		return EncodeJSON(wr, w)
	case FormatMsgpack:
		return EncodeMsgpack(wr, w)
	case FormatGeoJSON:
		return EncodeGeoJSON(wr, w)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Decode reads a world in the given format
func Decode(r io.Reader, f Format) (*world.World, error) {
	switch f {
	case FormatJSON:
		return DecodeJSON(r)
	case FormatMsgpack:
		return DecodeMsgpack(r)
	case FormatGeoJSON:
		return DecodeGeoJSON(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Save writes w to path, choosing the encoding from the extension
func Save(path string, w *world.World) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	if f == FormatJSON {
		return SaveJSON(w, path)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, f, w); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Load reads a world from path, choosing the encoding from the extension
func Load(path string) (*world.World, error) {
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	if f == FormatJSON {
		return LoadJSON(path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()
	return Decode(file, f)
}
