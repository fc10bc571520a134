package png

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

const (
	chunkTEXt = "tEXt"
	chunkZTXt = "zTXt"
	chunkITXt = "iTXt"
	chunkBKGD = "bKGD"
	chunkGAMA = "gAMA"
	chunkPHYs = "pHYs"
	chunkTIME = "tIME"
)

// parseAncillary dispatches a non-core RawChunk to its known parser, or
// returns it verbatim as KindUnknown when its type is not one of the
// chunks spec.md §3 names.
func parseAncillary(c RawChunk, h Header) (AncillaryRecord, error) {
	switch c.Type {
	case chunkTEXt:
		return parseTEXt(c.Payload)
	case chunkZTXt:
		return parseZTXt(c.Payload)
	case chunkITXt:
		return parseITXt(c.Payload)
	case chunkBKGD:
		return parseBKGD(c.Payload, h)
	case chunkGAMA:
		return parseGAMA(c.Payload)
	case chunkPHYs:
		return parsePHYs(c.Payload)
	case chunkTIME:
		return parseTIME(c.Payload)
	default:
		return AncillaryRecord{Kind: KindUnknown, Unknown: c}, nil
	}
}

func latin1ToString(b []byte) (string, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func inflateZlib(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, newErr(BadCompressedData, err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, newErr(BadCompressedData, err)
	}
	return out, nil
}

func parseTEXt(payload []byte) (AncillaryRecord, error) {
	parts := bytes.Split(payload, []byte{0})
	if len(parts) != 2 {
		return AncillaryRecord{}, newAncillaryErr(chunkTEXt, errBadLen("tEXt must contain exactly one NUL separator"))
	}
	keyword, err := latin1ToString(parts[0])
	if err != nil {
		return AncillaryRecord{}, newAncillaryErr(chunkTEXt, err)
	}
	text, err := latin1ToString(parts[1])
	if err != nil {
		return AncillaryRecord{}, newAncillaryErr(chunkTEXt, err)
	}
	return AncillaryRecord{Kind: KindText, Keyword: keyword, Text: text}, nil
}

func parseZTXt(payload []byte) (AncillaryRecord, error) {
	keywordRaw, rest, ok := splitNUL(payload)
	if !ok {
		return AncillaryRecord{}, newAncillaryErr(chunkZTXt, errBadLen("zTXt missing NUL after keyword"))
	}
	if len(rest) < 1 {
		return AncillaryRecord{}, newAncillaryErr(chunkZTXt, errBadLen("zTXt missing compression method"))
	}
	method := rest[0]
	if method != 0 {
		return AncillaryRecord{}, newAncillaryErr(chunkZTXt, errBadLen("zTXt compression method must be 0"))
	}
	compressed := rest[1:]

	inflated, err := inflateZlib(compressed)
	if err != nil {
		return AncillaryRecord{}, errors.WithMessage(err, "zTXt")
	}

	keyword, err := latin1ToString(keywordRaw)
	if err != nil {
		return AncillaryRecord{}, newAncillaryErr(chunkZTXt, err)
	}
	text, err := latin1ToString(inflated)
	if err != nil {
		return AncillaryRecord{}, newAncillaryErr(chunkZTXt, err)
	}
	return AncillaryRecord{Kind: KindCompressedText, Keyword: keyword, Text: text}, nil
}

func parseITXt(payload []byte) (AncillaryRecord, error) {
	keyword, rest, ok := splitNUL(payload)
	if !ok {
		return AncillaryRecord{}, newAncillaryErr(chunkITXt, errBadLen("iTXt missing NUL after keyword"))
	}
	if len(rest) < 2 {
		return AncillaryRecord{}, newAncillaryErr(chunkITXt, errBadLen("iTXt missing compression fields"))
	}
	compressionFlag := rest[0]
	compressionMethod := rest[1]
	rest = rest[2:]

	language, rest, ok := splitNUL(rest)
	if !ok {
		return AncillaryRecord{}, newAncillaryErr(chunkITXt, errBadLen("iTXt missing NUL after language tag"))
	}
	translated, rest, ok := splitNUL(rest)
	if !ok {
		return AncillaryRecord{}, newAncillaryErr(chunkITXt, errBadLen("iTXt missing NUL after translated keyword"))
	}

	var text []byte
	switch compressionFlag {
	case 0:
		text = rest
	case 1:
		if compressionMethod != 0 {
			return AncillaryRecord{}, newAncillaryErr(chunkITXt, errBadLen("iTXt compression method must be 0"))
		}
		inflated, err := inflateZlib(rest)
		if err != nil {
			return AncillaryRecord{}, errors.WithMessage(err, "iTXt")
		}
		text = inflated
	default:
		return AncillaryRecord{}, newAncillaryErr(chunkITXt, errBadLen("iTXt compression flag must be 0 or 1"))
	}

	return AncillaryRecord{
		Kind:              KindInternationalText,
		Keyword:           string(keyword),
		LanguageTag:       string(language),
		TranslatedKeyword: string(translated),
		Text:              string(text),
	}, nil
}

func parseGAMA(payload []byte) (AncillaryRecord, error) {
	v, ok := readUint32BE(payload)
	if !ok || len(payload) != 4 {
		return AncillaryRecord{}, newAncillaryErr(chunkGAMA, errBadLen("gAMA must be 4 bytes"))
	}
	return AncillaryRecord{Kind: KindGamma, Gamma: float32(v) / 100000}, nil
}

func parsePHYs(payload []byte) (AncillaryRecord, error) {
	if len(payload) != 9 {
		return AncillaryRecord{}, newAncillaryErr(chunkPHYs, errBadLen("pHYs must be 9 bytes"))
	}
	x, _ := readUint32BE(payload[0:4])
	y, _ := readUint32BE(payload[4:8])
	unit := payload[8]
	if unit != 0 && unit != 1 {
		return AncillaryRecord{}, newAncillaryErr(chunkPHYs, errBadLen("pHYs unit specifier must be 0 or 1"))
	}
	return AncillaryRecord{Kind: KindPhysicalUnits, PixelsPerUnitX: x, PixelsPerUnitY: y, Unit: PhysicalUnit(unit)}, nil
}

func parseTIME(payload []byte) (AncillaryRecord, error) {
	if len(payload) != 7 {
		return AncillaryRecord{}, newAncillaryErr(chunkTIME, errBadLen("tIME must be 7 bytes"))
	}
	year, _ := readUint16BE(payload[0:2])
	month, day := payload[2], payload[3]
	hour, minute, second := payload[4], payload[5], payload[6]

	if month < 1 || month > 12 {
		return AncillaryRecord{}, newAncillaryErr(chunkTIME, errBadLen("tIME month out of range"))
	}
	if day < 1 || day > 31 {
		return AncillaryRecord{}, newAncillaryErr(chunkTIME, errBadLen("tIME day out of range"))
	}
	if hour > 23 {
		return AncillaryRecord{}, newAncillaryErr(chunkTIME, errBadLen("tIME hour out of range"))
	}
	if minute > 59 {
		return AncillaryRecord{}, newAncillaryErr(chunkTIME, errBadLen("tIME minute out of range"))
	}
	if second > 60 {
		return AncillaryRecord{}, newAncillaryErr(chunkTIME, errBadLen("tIME second out of range"))
	}

	return AncillaryRecord{
		Kind: KindTime, Year: year, Month: month, Day: day,
		Hour: hour, Minute: minute, Second: second,
	}, nil
}

func parseBKGD(payload []byte, h Header) (AncillaryRecord, error) {
	switch m := h.Color.(type) {
	case PaletteModel:
		if len(payload) != 1 {
			return AncillaryRecord{}, newAncillaryErr(chunkBKGD, errBadLen("palette bKGD must be 1 byte"))
		}
		idx := int(payload[0])
		if idx >= len(m.Entries) {
			return AncillaryRecord{}, newAncillaryErr(chunkBKGD, errBadLen("bKGD palette index out of range"))
		}
		e := m.Entries[idx]
		return AncillaryRecord{Kind: KindBackground, BackgroundR: e.R, BackgroundG: e.G, BackgroundB: e.B}, nil
	case GrayscaleModel, GrayscaleAlphaModel:
		if len(payload) != 2 {
			return AncillaryRecord{}, newAncillaryErr(chunkBKGD, errBadLen("grayscale bKGD must be 2 bytes"))
		}
		v, _ := readUint16BE(payload)
		g := normalizeTRNSSample(v, h.BitDepth)
		return AncillaryRecord{Kind: KindBackground, BackgroundR: g, BackgroundG: g, BackgroundB: g}, nil
	case RgbModel, RgbaModel:
		if len(payload) != 6 {
			return AncillaryRecord{}, newAncillaryErr(chunkBKGD, errBadLen("truecolor bKGD must be 6 bytes"))
		}
		var rgb [3]uint8
		for i := 0; i < 3; i++ {
			v, _ := readUint16BE(payload[i*2 : i*2+2])
			rgb[i] = normalizeTRNSSample(v, h.BitDepth)
		}
		return AncillaryRecord{Kind: KindBackground, BackgroundR: rgb[0], BackgroundG: rgb[1], BackgroundB: rgb[2]}, nil
	default:
		return AncillaryRecord{}, newAncillaryErr(chunkBKGD, errBadLen("unrecognized color model for bKGD"))
	}
}
