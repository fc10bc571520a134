// Command pngdump loads a PNG file and prints its header and ancillary
// metadata. It is a thin consumer of the decoder package: file loading
// and argument parsing live here, exactly as spec.md's §1 "external
// collaborators" list describes, not inside the decoder itself.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	png "github.com/XC-Zero/pngdecode"
)

func main() {
	path := flag.String("png", "", "path to a PNG file")
	flag.Parse()

	if *path == "" {
		log.Fatal("usage: pngdump -png path/to/file.png")
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("reading %s: %v", *path, err)
	}

	img, err := png.Decode(data)
	if err != nil {
		log.Fatalf("decoding %s: %v", *path, err)
	}

	fmt.Printf("%s: %dx%d, bit depth %d\n", *path, img.Header.Width, img.Header.Height, img.Header.BitDepth)
	for _, rec := range img.Ancillary {
		printRecord(rec)
	}
}

func printRecord(rec png.AncillaryRecord) {
	switch rec.Kind {
	case png.KindText:
		fmt.Printf("  tEXt %s: %s\n", rec.Keyword, rec.Text)
	case png.KindCompressedText:
		fmt.Printf("  zTXt %s: %s\n", rec.Keyword, rec.Text)
	case png.KindInternationalText:
		fmt.Printf("  iTXt %s [%s]: %s\n", rec.Keyword, rec.LanguageTag, rec.Text)
	case png.KindGamma:
		fmt.Printf("  gAMA: %g\n", rec.Gamma)
	case png.KindTime:
		fmt.Printf("  tIME: %04d-%02d-%02d %02d:%02d:%02d\n", rec.Year, rec.Month, rec.Day, rec.Hour, rec.Minute, rec.Second)
	case png.KindPhysicalUnits:
		fmt.Printf("  pHYs: %d x %d (unit=%d)\n", rec.PixelsPerUnitX, rec.PixelsPerUnitY, rec.Unit)
	case png.KindBackground:
		fmt.Printf("  bKGD: (%d,%d,%d)\n", rec.BackgroundR, rec.BackgroundG, rec.BackgroundB)
	case png.KindUnknown:
		fmt.Printf("  unknown chunk %s (%d bytes)\n", rec.Unknown.Type, len(rec.Unknown.Payload))
	}
}
