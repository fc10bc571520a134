package png

// Header is the parsed, validated IHDR plus the resolved color model
// (spec.md §3). Compression is always zlib (0) and Filter is always the
// adaptive-five scheme (0); both are validated but not stored since they
// carry no other legal value.
type Header struct {
	Width     uint32
	Height    uint32
	BitDepth  uint8
	Color     ColorModel
	Interlace InterlaceMethod
}

// InterlaceMethod is IHDR's transmission-order field.
type InterlaceMethod uint8

const (
	InterlaceNone InterlaceMethod = 0
	InterlaceAdam7 InterlaceMethod = 1
)

const ihdrPayloadLen = 13

// parseIHDR parses the IHDR payload and resolves the color model against
// an optional palette (required when colorTypeByte == 3), per spec.md
// §4.3.
func parseIHDR(payload []byte, palette []RGBA, havePalette bool) (Header, error) {
	if len(payload) != ihdrPayloadLen {
		return Header{}, newErrf(BadHeader, "IHDR payload must be %d bytes, got %d", ihdrPayloadLen, len(payload))
	}

	width, _ := readUint32BE(payload[0:4])
	height, _ := readUint32BE(payload[4:8])
	bitDepth := payload[8]
	colorTypeByte := payload[9]
	compression := payload[10]
	filter := payload[11]
	interlace := payload[12]

	if width == 0 || height == 0 {
		return Header{}, newErrf(BadHeader, "width and height must be nonzero (got %d x %d)", width, height)
	}
	if compression != 0 {
		return Header{}, newErrf(BadHeader, "unknown compression method %d", compression)
	}
	if filter != 0 {
		return Header{}, newErrf(BadHeader, "unknown filter method %d", filter)
	}
	if interlace != 0 && interlace != 1 {
		return Header{}, newErrf(BadHeader, "unknown interlace method %d", interlace)
	}

	var model ColorModel
	switch colorTypeByte {
	case 0:
		model = GrayscaleModel{}
	case 2:
		model = RgbModel{}
	case 3:
		if !havePalette {
			return Header{}, newErrf(BadHeader, "color type 3 (palette) requires a PLTE chunk")
		}
		model = PaletteModel{Entries: palette}
	case 4:
		model = GrayscaleAlphaModel{}
	case 6:
		model = RgbaModel{}
	default:
		return Header{}, newErrf(BadHeader, "unknown color type %d", colorTypeByte)
	}

	if !model.validBitDepth(bitDepth) {
		return Header{}, newErrf(BadHeader, "bit depth %d is not valid for color type %d", bitDepth, colorTypeByte)
	}

	return Header{
		Width:     width,
		Height:    height,
		BitDepth:  bitDepth,
		Color:     model,
		Interlace: InterlaceMethod(interlace),
	}, nil
}

// applyTRNS overlays a tRNS chunk onto header's color model, per spec.md
// §4.3. Only meaningful for Grayscale and Rgb; palette tRNS is folded
// into the palette entries directly by parsePalette and never reaches
// here (tRNS for color type 3 is consumed before IHDR's color model is
// built, since the palette entries themselves carry the alpha).
func applyTRNS(h *Header, trns []byte) error {
	switch m := h.Color.(type) {
	case GrayscaleModel:
		v, ok := readUint16BE(trns)
		if !ok || len(trns) != 2 {
			return newAncillaryErr("tRNS", errBadLen("grayscale tRNS must be 2 bytes"))
		}
		g := normalizeTRNSSample(v, h.BitDepth)
		m.Transparent = &g
		h.Color = m
	case RgbModel:
		if len(trns) != 6 {
			return newAncillaryErr("tRNS", errBadLen("rgb tRNS must be 6 bytes"))
		}
		var rgb [3]uint8
		for i := 0; i < 3; i++ {
			v, _ := readUint16BE(trns[i*2 : i*2+2])
			rgb[i] = normalizeTRNSSample(v, h.BitDepth)
		}
		m.Transparent = &rgb
		h.Color = m
	case PaletteModel:
		return newErrf(BadChunkOrder, "tRNS for palette images must be applied before palette construction")
	default:
		return newErrf(BadChunkOrder, "tRNS is not permitted for this color type")
	}
	return nil
}

// normalizeTRNSSample normalizes a tRNS sample field to the 8-bit scale,
// per spec.md §4.3: for bit depth <= 8 the raw sample sits in the low
// bits of the 16-bit big-endian field; for depth 16 take the high byte.
func normalizeTRNSSample(raw uint16, depth uint8) uint8 {
	if depth == 16 {
		return uint8(raw >> 8)
	}
	return normalizeSample(raw, depth)
}

type simpleError string

func (e simpleError) Error() string { return string(e) }

func errBadLen(msg string) error { return simpleError(msg) }
