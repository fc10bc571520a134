package png

import (
	"bytes"

	"github.com/pkg/errors"
)

var pngSignature = [8]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

var knownCritical = map[string]bool{
	"IHDR": true, "PLTE": true, "IDAT": true, "IEND": true,
}

var knownAncillary = map[string]bool{
	"tRNS": true, "bKGD": true, "gAMA": true, "pHYs": true, "tIME": true,
	"tEXt": true, "zTXt": true, "iTXt": true,
}

// Decode parses the raw bytes of a single PNG image into a DecodedImage,
// per spec.md §4.7. Decoding is synchronous, single-threaded, and runs
// to completion on the in-memory buffer; no partial result is ever
// returned on error.
func Decode(data []byte) (*DecodedImage, error) {
	if len(data) < 8 || !bytes.Equal(data[:8], pngSignature[:]) {
		return nil, newErrf(BadMagic, "missing or invalid PNG signature")
	}

	chunks, err := frameChunks(data[8:])
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, newErrf(BadChunkOrder, "no chunks present")
	}

	if err := checkUnknownCritical(chunks); err != nil {
		return nil, err
	}

	if chunks[0].Type != "IHDR" {
		return nil, newErrf(BadChunkOrder, "first chunk must be IHDR, got %q", chunks[0].Type)
	}
	last := chunks[len(chunks)-1]
	if last.Type != "IEND" {
		return nil, newErrf(BadChunkOrder, "last chunk must be IEND, got %q", last.Type)
	}
	if len(last.Payload) != 0 {
		return nil, newErrf(BadChunkOrder, "IEND payload must be empty")
	}

	if err := checkUniqueness(chunks); err != nil {
		return nil, err
	}

	firstIDAT, lastIDAT, err := checkIDATContiguous(chunks)
	if err != nil {
		return nil, err
	}

	plteIdx := indexOf(chunks, "PLTE")
	trnsIdx := indexOf(chunks, "tRNS")
	if plteIdx >= 0 && plteIdx > firstIDAT {
		return nil, newErrf(BadChunkOrder, "PLTE must precede the first IDAT chunk")
	}
	if trnsIdx >= 0 && trnsIdx > firstIDAT {
		return nil, newErrf(BadChunkOrder, "tRNS must precede the first IDAT chunk")
	}

	var palette []RGBA
	havePalette := plteIdx >= 0
	ihdrRaw := chunks[0].Payload
	paletteColorType := len(ihdrRaw) == ihdrPayloadLen && ihdrRaw[9] == 3
	if havePalette {
		var trnsPayload []byte
		if trnsIdx >= 0 && paletteColorType {
			trnsPayload = chunks[trnsIdx].Payload
		}
		palette, err = parsePalette(chunks[plteIdx].Payload, trnsPayload)
		if err != nil {
			return nil, err
		}
	}

	ihdrIdx := indexOf(chunks, "IHDR")
	header, err := parseIHDR(chunks[ihdrIdx].Payload, palette, havePalette)
	if err != nil {
		return nil, err
	}

	// tRNS for grayscale/rgb images (not consumed into the palette above).
	if trnsIdx >= 0 && !paletteColorType {
		if err := applyTRNS(&header, chunks[trnsIdx].Payload); err != nil {
			return nil, err
		}
	}

	compressed := make([]byte, 0)
	for i := firstIDAT; i <= lastIDAT; i++ {
		compressed = append(compressed, chunks[i].Payload...)
	}
	stream, err := inflateZlib(compressed)
	if err != nil {
		return nil, errors.WithMessage(err, "IDAT stream")
	}

	pixels := make([][]RGBA, header.Height)
	for y := range pixels {
		pixels[y] = make([]RGBA, header.Width)
	}
	if err := assembleImage(header, stream, pixels); err != nil {
		return nil, err
	}

	var ancillary []AncillaryRecord
	for i, c := range chunks {
		if i == ihdrIdx || (i >= firstIDAT && i <= lastIDAT) || i == plteIdx || i == trnsIdx || c.Type == "IEND" {
			continue
		}
		rec, err := parseAncillary(c, header)
		if err != nil {
			return nil, err
		}
		ancillary = append(ancillary, rec)
	}

	return &DecodedImage{Header: header, Ancillary: ancillary, Pixels: pixels}, nil
}

func checkUnknownCritical(chunks []RawChunk) error {
	for _, c := range chunks {
		if c.ancillary() {
			continue
		}
		if !knownCritical[c.Type] {
			return newErrf(UnknownCritical, "unrecognized critical chunk %q", c.Type)
		}
	}
	return nil
}

func checkUniqueness(chunks []RawChunk) error {
	counts := map[string]int{}
	for _, c := range chunks {
		counts[c.Type]++
	}
	for _, t := range []string{"PLTE", "tRNS", "bKGD", "gAMA", "pHYs", "tIME", "IHDR"} {
		if counts[t] > 1 {
			return newErrf(BadChunkOrder, "more than one %s chunk", t)
		}
	}
	if counts["IDAT"] == 0 {
		return newErrf(BadChunkOrder, "no IDAT chunk present")
	}
	return nil
}

func checkIDATContiguous(chunks []RawChunk) (first, last int, err error) {
	first = -1
	for i, c := range chunks {
		if c.Type != "IDAT" {
			continue
		}
		if first < 0 {
			first = i
			last = i
			continue
		}
		if i != last+1 {
			return 0, 0, newErrf(BadChunkOrder, "IDAT chunks are not contiguous")
		}
		last = i
	}
	if first < 0 {
		return 0, 0, newErrf(BadChunkOrder, "no IDAT chunk present")
	}
	return first, last, nil
}

func indexOf(chunks []RawChunk, typ string) int {
	for i, c := range chunks {
		if c.Type == typ {
			return i
		}
	}
	return -1
}
