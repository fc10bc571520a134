package png

import (
	"github.com/snksoft/crc"
)

// RawChunk is one length-prefixed, CRC-verified chunk record: a 4-byte
// ASCII type name and a payload that borrows the decoder's input buffer.
type RawChunk struct {
	Type    string
	Payload []byte
}

// ancillary reports whether c is an ancillary (non-critical) chunk type,
// per the PNG spec's bit-5-of-first-byte convention: ancillary chunk
// type names start with a lowercase letter.
func (c RawChunk) ancillary() bool {
	return c.Type[0] >= 'a' && c.Type[0] <= 'z'
}

// frameChunks splits data (positioned immediately after the 8-byte PNG
// signature) into an ordered sequence of RawChunks, verifying each
// chunk's CRC-32 as it goes. It stops exactly when data is consumed.
func frameChunks(data []byte) ([]RawChunk, error) {
	var chunks []RawChunk
	for len(data) > 0 {
		length, ok := readUint32BE(data)
		if !ok {
			return nil, newErrf(Truncated, "chunk length field runs past end of input")
		}
		data = data[4:]

		if len(data) < 4 {
			return nil, newErrf(Truncated, "chunk type field runs past end of input")
		}
		typ := string(data[:4])
		data = data[4:]

		if uint64(len(data)) < uint64(length)+4 {
			return nil, newErrf(Truncated, "chunk %q payload/crc runs past end of input", typ)
		}
		payload := data[:length]
		rest := data[length:]

		crcField, _ := readUint32BE(rest)
		data = rest[4:]

		want := crcOverTypeAndPayload(typ, payload)
		if want != crcField {
			return nil, newErrf(CorruptChunk, "chunk %q CRC mismatch: got %08x, want %08x", typ, crcField, want)
		}

		chunks = append(chunks, RawChunk{Type: typ, Payload: payload})
	}
	return chunks, nil
}

// crcOverTypeAndPayload computes the PNG CRC-32 (IEEE polynomial) over a
// chunk's type name concatenated with its payload.
func crcOverTypeAndPayload(typ string, payload []byte) uint32 {
	buf := make([]byte, 0, len(typ)+len(payload))
	buf = append(buf, typ...)
	buf = append(buf, payload...)
	return uint32(crc.CalculateCRC(crc.CRC32, buf))
}
