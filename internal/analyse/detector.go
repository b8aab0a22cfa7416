// BYZRA ⸻ internal/analyse/detector.go
// image type detection

package analyse

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type FileType struct {
	Extension string // "jpg", "heic", etc
	MimeType  string // "image/jpeg", etc
	// goexif can decode the embedded EXIF block without exiftool
	Native bool
}

func DetectFile(path string) (FileType, error) {
	// 1st magic numbers
	ft, err := detectByMagicNumbers(path)
	if err == nil && ft.Extension != "" {
		return ft, nil
	}

	// fallback to extension
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ft := detectByExtension(ext); ft.Extension != "" {
		return ft, nil
	}

	return FileType{}, fmt.Errorf("not a supported image: %s", path)
}

// examines file headers to determine type
func detectByMagicNumbers(path string) (FileType, error) {
	file, err := os.Open(path)
	if err != nil {
		return FileType{}, err
	}
	defer file.Close()

	buffer := make([]byte, 12)
	n, err := io.ReadFull(file, buffer)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return FileType{}, err
	}
	return sniff(buffer[:n]), nil
}

func sniff(buffer []byte) FileType {
	switch {
	// JPEG: FF D8 FF
	case bytes.HasPrefix(buffer, []byte{0xFF, 0xD8, 0xFF}):
		return FileType{Extension: "jpg", MimeType: "image/jpeg", Native: true}

	// PNG: 89 50 4E 47 0D 0A 1A 0A
	case bytes.HasPrefix(buffer, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}):
		return FileType{Extension: "png", MimeType: "image/png"}

	// GIF8
	case bytes.HasPrefix(buffer, []byte("GIF8")):
		return FileType{Extension: "gif", MimeType: "image/gif"}

	// TIFF: II* or MM*
	case bytes.HasPrefix(buffer, []byte{0x49, 0x49, 0x2A, 0x00}),
		bytes.HasPrefix(buffer, []byte{0x4D, 0x4D, 0x00, 0x2A}):
		return FileType{Extension: "tiff", MimeType: "image/tiff", Native: true}

	// RIFF....WEBP
	case len(buffer) >= 12 && bytes.HasPrefix(buffer, []byte("RIFF")) && bytes.Equal(buffer[8:12], []byte("WEBP")):
		return FileType{Extension: "webp", MimeType: "image/webp"}

	// ISO BMFF: ftyp at offset 4, brand decides
	case len(buffer) >= 12 && bytes.Equal(buffer[4:8], []byte("ftyp")):
		switch string(buffer[8:12]) {
		case "heic", "heix", "mif1", "msf1", "hevc":
			return FileType{Extension: "heic", MimeType: "image/heic"}
		case "avif":
			return FileType{Extension: "avif", MimeType: "image/avif"}
		}
	}

	return FileType{}
}

// maps file extensions to types (fallback method)
func detectByExtension(ext string) FileType {
	switch ext {
	case "jpg", "jpeg":
		return FileType{Extension: ext, MimeType: "image/jpeg", Native: true}
	case "png":
		return FileType{Extension: ext, MimeType: "image/png"}
	case "gif":
		return FileType{Extension: ext, MimeType: "image/gif"}
	case "tif", "tiff":
		return FileType{Extension: ext, MimeType: "image/tiff", Native: true}
	case "webp":
		return FileType{Extension: ext, MimeType: "image/webp"}
	case "heic", "heif":
		return FileType{Extension: ext, MimeType: "image/heic"}
	case "dng":
		return FileType{Extension: ext, MimeType: "image/x-adobe-dng", Native: true}
	case "cr2", "cr3", "nef", "arw", "orf", "rw2", "raf":
		return FileType{Extension: ext, MimeType: "image/x-raw"}
	}

	return FileType{} // unknown
}
