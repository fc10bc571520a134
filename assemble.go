package png

// assembleImage fills pixels (already sized height x width, zero-valued)
// from the inflated image stream, per spec.md §4.6. Non-interlaced
// images are scanned row by row; Adam7 images run the fixed seven-pass
// schedule.
func assembleImage(h Header, stream []byte, pixels [][]RGBA) error {
	width := int(h.Width)
	height := int(h.Height)
	spp := h.Color.samplesPerPixel()

	if h.Interlace == InterlaceNone {
		return assemblePlain(h, stream, pixels, width, height, spp)
	}
	return assembleAdam7(h, stream, pixels, width, height, spp)
}

func assemblePlain(h Header, stream []byte, pixels [][]RGBA, width, height, spp int) error {
	bpp := bytesPerPixel(h.BitDepth, spp)
	lineLen := scanlineByteLen(width, h.BitDepth, spp)

	var prev []byte
	cur := make([]byte, lineLen-1)
	for y := 0; y < height; y++ {
		if len(stream) < lineLen {
			return newErrf(Truncated, "inflated stream too short for row %d", y)
		}
		line := stream[:lineLen]
		stream = stream[lineLen:]

		if err := reconstructScanline(line, prev, bpp, cur); err != nil {
			return err
		}

		br := newBitReader(cur)
		row := pixels[y]
		for x := 0; x < width; x++ {
			px, err := h.Color.readPixel(h.BitDepth, br)
			if err != nil {
				return err
			}
			row[x] = px
		}

		prev, cur = cur, prev
		if cur == nil {
			cur = make([]byte, lineLen-1)
		}
	}
	return nil
}

func assembleAdam7(h Header, stream []byte, pixels [][]RGBA, width, height, spp int) error {
	for _, pass := range adam7Passes {
		passWidth, passHeight := pass.dims(width, height)
		if passWidth == 0 || passHeight == 0 {
			continue
		}

		lineLen := scanlineByteLen(passWidth, h.BitDepth, spp)
		bpp := bytesPerPixel(h.BitDepth, spp)

		var prev []byte
		cur := make([]byte, lineLen-1)
		for r := 0; r < passHeight; r++ {
			if len(stream) < lineLen {
				return newErrf(Truncated, "inflated stream too short for adam7 pass row %d", r)
			}
			line := stream[:lineLen]
			stream = stream[lineLen:]

			if err := reconstructScanline(line, prev, bpp, cur); err != nil {
				return err
			}

			br := newBitReader(cur)
			for k := 0; k < passWidth; k++ {
				px, err := h.Color.readPixel(h.BitDepth, br)
				if err != nil {
					return err
				}
				y := pass.startY + r*pass.stepY
				x := pass.startX + k*pass.stepX
				pixels[y][x] = px
			}

			prev, cur = cur, prev
			if cur == nil {
				cur = make([]byte, lineLen-1)
			}
		}
	}
	return nil
}
