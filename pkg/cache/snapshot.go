package cache

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/goliatone/go-modelgen/pkg/model"
)

// Snapshots reuse the descriptor's json tags so the encoded form matches the
// field names the rest of the module uses.
const snapshotTag = "json"

func encodeModel(desc model.ModelDescriptor) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag(snapshotTag)
	if err := enc.Encode(desc); err != nil {
		return nil, fmt.Errorf("cache: encode model %s: %w", desc.Name, err)
	}
	return buf.Bytes(), nil
}

// decodeModel always yields a new descriptor. Loose decoding keeps integer
// defaults as int64 and float defaults as float64; string lists come back as
// []any.
func decodeModel(data []byte) (model.ModelDescriptor, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag(snapshotTag)
	dec.UseLooseInterfaceDecoding(true)

	var desc model.ModelDescriptor
	if err := dec.Decode(&desc); err != nil {
		return model.ModelDescriptor{}, fmt.Errorf("cache: decode model: %w", err)
	}
	return desc, nil
}
