package jww

import (
	"bytes"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// metadataPrefix and bitmapPrefix are the two ASCII prefixes JWW smuggles
// inside CDataMoji content to carry out-of-band settings and bitmap
// references instead of ordinary text (§4.5 of the format).
const (
	metadataPrefix = "^@"
	bitmapPrefix   = "^@BM"
)

// recognizedMetadataKeys is the closed set of "^@key=value" keys the text
// decoder understands. Any other "^@..." content is treated as ordinary text.
var recognizedMetadataKeys = map[string]func(*MetadataSettings, string){
	"printer_paper_size":  func(m *MetadataSettings, v string) { m.PrinterPaperSize = v },
	"draw_bmp_touka":      func(m *MetadataSettings, v string) { m.DrawBmpTouka = v },
	"view_direct2d":       func(m *MetadataSettings, v string) { m.ViewDirect2D = v },
	"printer_bmp_zentai":  func(m *MetadataSettings, v string) { m.PrinterBmpZentai = v },
	"printer_orientation": func(m *MetadataSettings, v string) { m.PrinterOrientation = v },
	"printer_d2d_bmp":     func(m *MetadataSettings, v string) { m.PrinterD2DBmp = v },
}

// ReadSJIS reads exactly n bytes and decodes them from Shift-JIS to UTF-8.
// Trailing NUL bytes are trimmed before decoding. Invalid Shift-JIS
// sequences never fail the read: golang.org/x/text's decoder substitutes
// U+FFFD, so bad text content can never abort decoding of structural data.
func (r *Reader) ReadSJIS(n int) (string, error) {
	raw, err := r.Bytes(n)
	if err != nil {
		return "", err
	}
	trimmed := bytes.TrimRight(raw, "\x00")
	if len(trimmed) == 0 {
		return "", nil
	}
	decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), trimmed)
	if err != nil {
		// x/text's ShiftJIS decoder is itself lossy (U+FFFD on bad runs) and
		// essentially never returns an error for arbitrary bytes; this
		// fallback exists only for the theoretical case where it does.
		return string(trimmed), nil
	}
	return string(decoded), nil
}

// ReadSJISLenPrefixed8 reads a one-byte length prefix followed by that many
// Shift-JIS bytes, decoded to UTF-8.
func (r *Reader) ReadSJISLenPrefixed8() (string, error) {
	n, err := r.U8()
	if err != nil {
		return "", err
	}
	return r.ReadSJIS(int(n))
}

// ReadSJISLenPrefixed16 reads a two-byte little-endian length prefix
// followed by that many Shift-JIS bytes, decoded to UTF-8.
func (r *Reader) ReadSJISLenPrefixed16() (string, error) {
	n, err := r.U16()
	if err != nil {
		return "", err
	}
	return r.ReadSJIS(int(n))
}

// mojiKind classifies a decoded CDataMoji content string per §4.5.
type mojiKind int

const (
	mojiText mojiKind = iota
	mojiBitmapRef
	mojiMetadata
)

// classifyMoji recognizes the ^@ / ^@BM prefixes JWW uses to smuggle
// metadata and bitmap references inside text entities. Recognition is by
// literal substring match at the start of the string, exactly as spec.md
// §4.2 describes.
func classifyMoji(content string) (kind mojiKind, setter func(*MetadataSettings, string), key, rest string) {
	if len(content) >= len(bitmapPrefix) && content[:len(bitmapPrefix)] == bitmapPrefix {
		return mojiBitmapRef, nil, "", content[len(bitmapPrefix):]
	}
	if len(content) >= len(metadataPrefix) && content[:len(metadataPrefix)] == metadataPrefix {
		body := content[len(metadataPrefix):]
		k, v, ok := splitKeyValue(body)
		if ok {
			if set, known := recognizedMetadataKeys[k]; known {
				return mojiMetadata, set, k, v
			}
		}
	}
	return mojiText, nil, "", content
}

// splitKeyValue splits "key=value" on the first '='.
func splitKeyValue(s string) (key, value string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '=' {
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}
