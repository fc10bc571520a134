package png

import (
	"bytes"

	"github.com/klauspost/compress/zlib"
	"github.com/snksoft/crc"
)

// writeChunk appends one length-prefixed, CRC-verified chunk to buf,
// using the same CRC-32 computation the decoder itself verifies with.
func writeChunk(buf *bytes.Buffer, typ string, payload []byte) {
	var lenBuf [4]byte
	byteOrder.PutUint32(lenBuf[:], uint32(len(payload)))
	buf.Write(lenBuf[:])
	buf.WriteString(typ)
	buf.Write(payload)

	body := append([]byte(typ), payload...)
	var crcBuf [4]byte
	byteOrder.PutUint32(crcBuf[:], uint32(crc.CalculateCRC(crc.CRC32, body)))
	buf.Write(crcBuf[:])
}

// fixtureChunk is one (type, payload) pair fed to buildPNG.
type fixtureChunk struct {
	typ     string
	payload []byte
}

// buildPNG assembles the 8-byte signature plus a sequence of chunks into
// a complete in-memory PNG file.
func buildPNG(chunks ...fixtureChunk) []byte {
	var buf bytes.Buffer
	buf.Write(pngSignature[:])
	for _, c := range chunks {
		writeChunk(&buf, c.typ, c.payload)
	}
	return buf.Bytes()
}

func u32be(v uint32) []byte {
	b := make([]byte, 4)
	byteOrder.PutUint32(b, v)
	return b
}

func u16be(v uint16) []byte {
	b := make([]byte, 2)
	byteOrder.PutUint16(b, v)
	return b
}

func ihdrPayload(width, height uint32, depth, colorType, interlace uint8) []byte {
	p := make([]byte, 13)
	copy(p[0:4], u32be(width))
	copy(p[4:8], u32be(height))
	p[8] = depth
	p[9] = colorType
	p[10] = 0
	p[11] = 0
	p[12] = interlace
	return p
}

// deflateBytes zlib-compresses b with the same library the decoder
// inflates with, so round-trip tests exercise the real dependency.
func deflateBytes(b []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(b)
	w.Close()
	return buf.Bytes()
}
