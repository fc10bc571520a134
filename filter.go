package png

// filterType is the per-scanline reconstruction filter, spec.md §4.4.
type filterType byte

const (
	filterNone filterType = iota
	filterSub
	filterUp
	filterAverage
	filterPaeth
)

// reconstructScanline reverses the filter applied to filtered (which
// includes the leading filter-type byte) into decoded, which must
// already be sized to len(filtered)-1. prev is the previous scanline's
// decoded bytes (nil/zero-length for the first scanline of an image or
// of an Adam7 pass, treated as all zeros per spec.md §4.4).
func reconstructScanline(filtered []byte, prev []byte, bpp int, decoded []byte) error {
	if len(filtered) == 0 {
		return newErrf(BadFilter, "empty scanline")
	}
	ft := filterType(filtered[0])
	f := filtered[1:]

	prevAt := func(i int) byte {
		if i < len(prev) {
			return prev[i]
		}
		return 0
	}

	switch ft {
	case filterNone:
		copy(decoded, f)
	case filterSub:
		for i := range f {
			var a byte
			if i >= bpp {
				a = decoded[i-bpp]
			}
			decoded[i] = f[i] + a
		}
	case filterUp:
		for i := range f {
			decoded[i] = f[i] + prevAt(i)
		}
	case filterAverage:
		for i := range f {
			var a int
			if i >= bpp {
				a = int(decoded[i-bpp])
			}
			b := int(prevAt(i))
			decoded[i] = f[i] + byte((a+b)/2)
		}
	case filterPaeth:
		for i := range f {
			var a, c byte
			if i >= bpp {
				a = decoded[i-bpp]
				c = prevAt(i - bpp)
			}
			b := prevAt(i)
			decoded[i] = f[i] + paethPredictor(a, b, c)
		}
	default:
		return newErrf(BadFilter, "unknown filter type %d", ft)
	}
	return nil
}

// paethPredictor is PNG's three-way predictor (spec.md §4.4). Ties
// resolve to a before b before c.
func paethPredictor(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := absInt(p - int(a))
	pb := absInt(p - int(b))
	pc := absInt(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// bytesPerPixel computes bpp for filter reversal, spec.md §4.4/§9: the
// exact integer max(1, ceil(bitDepth*samplesPerPixel/8)), never a float.
func bytesPerPixel(bitDepth uint8, samplesPerPixel int) int {
	bits := int(bitDepth) * samplesPerPixel
	bpp := (bits + 7) / 8
	if bpp < 1 {
		return 1
	}
	return bpp
}

// scanlineByteLen is 1 (filter byte) + ceil(width*bitDepth*samplesPerPixel/8).
func scanlineByteLen(width int, bitDepth uint8, samplesPerPixel int) int {
	bits := width * int(bitDepth) * samplesPerPixel
	return 1 + (bits+7)/8
}
