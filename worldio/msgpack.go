package worldio

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"motion-world/world"
)

// EncodeMsgpack writes the world record as MessagePack
func EncodeMsgpack(wr io.Writer, w *world.World) error {
	if err := msgpack.NewEncoder(wr).Encode(w.Record()); err != nil {
		return fmt.Errorf("failed to encode world: %w", err)
	}
	return nil
}

// DecodeMsgpack reads a MessagePack world record and validates it
func DecodeMsgpack(r io.Reader) (*world.World, error) {
	var rec world.Record
	if err := msgpack.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode world: %w", err)
	}
	return world.FromRecord(rec)
}
