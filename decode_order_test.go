package png

import "testing"

// minimalGrayscaleChunks returns the IHDR/IDAT/IEND chunks for a valid
// 1x1 grayscale image, so ordering/uniqueness tests can splice in the
// chunk under test without duplicating fixture setup.
func minimalGrayscaleChunks() (ihdr, idat fixtureChunk) {
	return fixtureChunk{"IHDR", ihdrPayload(1, 1, 8, 0, 0)},
		fixtureChunk{"IDAT", deflateBytes([]byte{0x00, 0x80})}
}

func TestDecodeUnrecognizedCriticalChunk(t *testing.T) {
	ihdr, idat := minimalGrayscaleChunks()
	data := buildPNG(
		ihdr,
		fixtureChunk{"FooB", []byte("x")},
		idat,
		fixtureChunk{"IEND", nil},
	)
	_, err := Decode(data)
	assertKind(t, err, UnknownCritical)
}

func TestDecodeDuplicatePLTE(t *testing.T) {
	ihdr := fixtureChunk{"IHDR", ihdrPayload(1, 1, 8, 3, 0)}
	plte := fixtureChunk{"PLTE", []byte{1, 2, 3, 4, 5, 6}}
	idat := fixtureChunk{"IDAT", deflateBytes([]byte{0x00, 0x00})}
	data := buildPNG(ihdr, plte, plte, idat, fixtureChunk{"IEND", nil})

	_, err := Decode(data)
	assertKind(t, err, BadChunkOrder)
}

func TestDecodeDuplicateAncillaryChunks(t *testing.T) {
	for _, typ := range []string{"tRNS", "bKGD", "gAMA", "pHYs", "tIME"} {
		t.Run(typ, func(t *testing.T) {
			ihdr := fixtureChunk{"IHDR", ihdrPayload(1, 1, 8, 0, 0)}
			idat := fixtureChunk{"IDAT", deflateBytes([]byte{0x00, 0x80})}
			var payload []byte
			switch typ {
			case "tRNS":
				payload = u16be(1)
			case "bKGD":
				payload = u16be(1)
			case "gAMA":
				payload = u32be(1)
			case "pHYs":
				payload = append(append(u32be(1), u32be(1)...), 0)
			case "tIME":
				payload = append(u16be(2024), 1, 1, 0, 0, 0)
			}
			dup := fixtureChunk{typ, payload}
			data := buildPNG(ihdr, dup, dup, idat, fixtureChunk{"IEND", nil})

			_, err := Decode(data)
			assertKind(t, err, BadChunkOrder)
		})
	}
}

func TestDecodeMissingIDAT(t *testing.T) {
	ihdr, _ := minimalGrayscaleChunks()
	data := buildPNG(ihdr, fixtureChunk{"IEND", nil})
	_, err := Decode(data)
	assertKind(t, err, BadChunkOrder)
}

func TestDecodeNonContiguousIDAT(t *testing.T) {
	ihdr, idat := minimalGrayscaleChunks()
	data := buildPNG(
		ihdr,
		idat,
		fixtureChunk{"tEXt", []byte("a\x00b")},
		idat,
		fixtureChunk{"IEND", nil},
	)
	_, err := Decode(data)
	assertKind(t, err, BadChunkOrder)
}

func TestDecodePLTEAfterFirstIDAT(t *testing.T) {
	ihdr := fixtureChunk{"IHDR", ihdrPayload(1, 1, 8, 3, 0)}
	plte := fixtureChunk{"PLTE", []byte{1, 2, 3, 4, 5, 6}}
	idat := fixtureChunk{"IDAT", deflateBytes([]byte{0x00, 0x00})}
	data := buildPNG(ihdr, idat, plte, fixtureChunk{"IEND", nil})

	_, err := Decode(data)
	assertKind(t, err, BadChunkOrder)
}

func TestDecodeTRNSAfterFirstIDAT(t *testing.T) {
	ihdr := fixtureChunk{"IHDR", ihdrPayload(1, 1, 8, 0, 0)}
	idat := fixtureChunk{"IDAT", deflateBytes([]byte{0x00, 0x80})}
	trns := fixtureChunk{"tRNS", u16be(1)}
	data := buildPNG(ihdr, idat, trns, fixtureChunk{"IEND", nil})

	_, err := Decode(data)
	assertKind(t, err, BadChunkOrder)
}

func TestDecodeFirstChunkMustBeIHDR(t *testing.T) {
	ihdr, idat := minimalGrayscaleChunks()
	data := buildPNG(
		fixtureChunk{"tEXt", []byte("a\x00b")},
		ihdr,
		idat,
		fixtureChunk{"IEND", nil},
	)
	_, err := Decode(data)
	assertKind(t, err, BadChunkOrder)
}

func TestDecodeLastChunkMustBeIEND(t *testing.T) {
	ihdr, idat := minimalGrayscaleChunks()
	data := buildPNG(ihdr, idat)
	_, err := Decode(data)
	assertKind(t, err, BadChunkOrder)
}

func TestDecodeIENDMustBeEmpty(t *testing.T) {
	ihdr, idat := minimalGrayscaleChunks()
	data := buildPNG(ihdr, idat, fixtureChunk{"IEND", []byte{0}})
	_, err := Decode(data)
	assertKind(t, err, BadChunkOrder)
}

func TestDecodeBadCompressedIDATStream(t *testing.T) {
	ihdr, _ := minimalGrayscaleChunks()
	data := buildPNG(ihdr, fixtureChunk{"IDAT", []byte{0x78, 0x9c, 0x01, 0x02, 0x03}}, fixtureChunk{"IEND", nil})
	_, err := Decode(data)
	assertKind(t, err, BadCompressedData)
}
