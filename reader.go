package png

import (
	"bytes"
	"encoding/binary"
)

// byteOrder is the wire order of every multi-byte integer field in a PNG
// file: chunk lengths, CRCs, IHDR/pHYs/gAMA/tIME fields, tRNS samples.
var byteOrder = binary.BigEndian

func readUint32BE(b []byte) (uint32, bool) {
	if len(b) < 4 {
		return 0, false
	}
	return byteOrder.Uint32(b), true
}

func readUint16BE(b []byte) (uint16, bool) {
	if len(b) < 2 {
		return 0, false
	}
	return byteOrder.Uint16(b), true
}

// splitNUL splits payload on the first NUL byte, returning the keyword and
// the remainder. ok is false if no NUL byte is present.
func splitNUL(payload []byte) (keyword, rest []byte, ok bool) {
	i := bytes.IndexByte(payload, 0)
	if i < 0 {
		return nil, nil, false
	}
	return payload[:i], payload[i+1:], true
}
