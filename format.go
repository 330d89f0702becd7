package img2term

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FormatTag identifies the encoded format of an image file. The set is
// closed; the sniffer never produces a tag outside it.
type FormatTag int

const (
	FormatPNG FormatTag = iota
	FormatJPEG
	FormatGIF
	FormatWebP
	FormatPNM
	FormatTIFF
	FormatTGA
	FormatBMP
	FormatICO
	FormatHDR
)

// String returns the conventional name of the format.
func (f FormatTag) String() string {
	switch f {
	case FormatPNG:
		return "PNG"
	case FormatJPEG:
		return "JPEG"
	case FormatGIF:
		return "GIF"
	case FormatWebP:
		return "WebP"
	case FormatPNM:
		return "PNM"
	case FormatTIFF:
		return "TIFF"
	case FormatTGA:
		return "TGA"
	case FormatBMP:
		return "BMP"
	case FormatICO:
		return "ICO"
	case FormatHDR:
		return "HDR"
	}
	return "unknown"
}

// formatExtensions maps lower-cased file extensions (without the dot) to
// their FormatTag. An extension hit is authoritative: it is returned even
// if the file contents disagree.
var formatExtensions = map[string]FormatTag{
	"png":  FormatPNG,
	"jpg":  FormatJPEG,
	"jpeg": FormatJPEG,
	"jpe":  FormatJPEG,
	"jif":  FormatJPEG,
	"jfif": FormatJPEG,
	"jfi":  FormatJPEG,
	"gif":  FormatGIF,
	"webp": FormatWebP,
	"ppm":  FormatPNM,
	"tiff": FormatTIFF,
	"tif":  FormatTIFF,
	"tga":  FormatTGA,
	"bmp":  FormatBMP,
	"dib":  FormatBMP,
	"ico":  FormatICO,
	"hdr":  FormatHDR,
}

// formatMagic holds the magic byte prefixes checked, in order, when the
// extension identifies nothing. First match wins.
var formatMagic = []struct {
	prefix []byte
	format FormatTag
}{
	{[]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, FormatPNG},
	{[]byte{0xFF, 0xD8, 0xFF, 0xE0}, FormatJPEG},
	{[]byte{0x47, 0x49, 0x46, 0x38}, FormatGIF},
	{[]byte{0x42, 0x4D}, FormatBMP},
	{[]byte{0x00, 0x00, 0x01, 0x00}, FormatICO},
}

// GuessFormat determines the encoded format of the image at path. The
// name is the display form used in error messages; the path is the
// normalized location on disk.
//
// The extension is consulted first and, when recognized, decides the
// format without touching the file. Otherwise the first 32 bytes are
// compared against known magic prefixes. A file that cannot be opened
// for the magic check fails with OpenFailed; a file matching neither
// table fails with FormatGuessFailed.
func GuessFormat(name, path string) (FormatTag, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	// A bare dotfile like ".png" is a hidden name, not an extension.
	if base := strings.ToLower(filepath.Base(path)); base != "."+ext {
		if format, ok := formatExtensions[ext]; ok {
			return format, nil
		}
	}
	return sniffMagic(name, path)
}

// sniffMagic reads up to 32 bytes from path and matches them against the
// magic prefix table.
func sniffMagic(name, path string) (FormatTag, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, &Error{Kind: OpenFailed, Name: name}
	}
	defer f.Close()

	header := make([]byte, 32)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return 0, &Error{Kind: OpenFailed, Name: name}
	}
	header = header[:n]

	for _, m := range formatMagic {
		if bytes.HasPrefix(header, m.prefix) {
			return m.format, nil
		}
	}
	return 0, &Error{Kind: FormatGuessFailed, Name: name}
}
