package png

// parsePalette builds the ordered palette entries from a PLTE payload,
// optionally overlaid with a tRNS payload, per spec.md §4.2. trns may be
// nil when no tRNS chunk is present.
func parsePalette(plte []byte, trns []byte) ([]RGBA, error) {
	if len(plte) == 0 || len(plte)%3 != 0 {
		return nil, newErrf(BadPalette, "PLTE length %d is not a positive multiple of 3", len(plte))
	}
	n := len(plte) / 3
	if n > 256 {
		return nil, newErrf(BadPalette, "PLTE has %d entries, exceeding 256", n)
	}

	entries := make([]RGBA, n)
	for i := 0; i < n; i++ {
		entries[i] = RGBA{R: plte[i*3], G: plte[i*3+1], B: plte[i*3+2], A: 255}
	}

	if trns != nil {
		if len(trns) > n {
			return nil, newErrf(BadPalette, "tRNS has %d entries, exceeding %d palette entries", len(trns), n)
		}
		for i, a := range trns {
			entries[i].A = a
		}
	}

	return entries, nil
}
