package store

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// encodeEmbedding packs a []float32 into the little-endian byte blob
// sqlite-vec's vec0 tables expect.
func encodeEmbedding(vec []float32) []byte {
	buf := new(bytes.Buffer)
	buf.Grow(len(vec) * 4)

	_ = binary.Write(buf, binary.LittleEndian, vec)

	return buf.Bytes()
}

// decodeEmbedding unpacks a sqlite-vec blob back into a []float32.
func decodeEmbedding(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("embedding blob length %d not a multiple of 4", len(blob))
	}

	out := make([]float32, len(blob)/4)
	if err := binary.Read(bytes.NewReader(blob), binary.LittleEndian, out); err != nil {
		return nil, fmt.Errorf("decode embedding blob: %w", err)
	}

	return out, nil
}
