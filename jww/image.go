package jww

import "bytes"

var magicPrefixes = []struct {
	prefix []byte
	format ImageFormat
}{
	{[]byte{0xFF, 0xD8, 0xFF}, ImageFormatJpeg},
	{[]byte{0x89, 0x50, 0x4E, 0x47}, ImageFormatPng},
	{[]byte{0x42, 0x4D}, ImageFormatBmp},
	{[]byte{0x47, 0x49, 0x46, 0x38}, ImageFormatGif},
}

// detectImageFormat inspects data's first bytes against the closed set of
// magic prefixes named in spec.md §4.5. Detection is byte-exact and never
// attempts to validate the format's deeper structure.
func detectImageFormat(data []byte) ImageFormat {
	for _, m := range magicPrefixes {
		if bytes.HasPrefix(data, m.prefix) {
			return m.format
		}
	}
	return ImageFormatUnknown
}

// decodeEmbeddedImages reads the Ver.7.00+ trailer: a sequence of
// index/file_size/data triples running to end of input. A declared
// file_size that runs past the remaining buffer is InvalidImageTrailer
// rather than UnexpectedEnd, since it is a declared-length violation, not a
// short primitive read.
func decodeEmbeddedImages(r *Reader) ([]EmbeddedImage, error) {
	var images []EmbeddedImage
	for r.Len() > 0 {
		offset := r.Pos()
		index, err := r.I32()
		if err != nil {
			// Trailing pad shorter than one full record: not a file we can
			// keep parsing images from, but not an error either.
			break
		}
		fileSize, err := r.I32()
		if err != nil {
			break
		}
		if fileSize < 0 || int64(fileSize) > int64(r.Len()) {
			return images, errInvalidImageTrailer(offset, "file_size runs past end of input")
		}
		raw, err := r.Bytes(int(fileSize))
		if err != nil {
			return images, errInvalidImageTrailer(offset, "file_size runs past end of input")
		}
		data := make([]byte, len(raw))
		copy(data, raw)

		images = append(images, EmbeddedImage{
			Index:    index,
			FileSize: fileSize,
			Data:     data,
			Format:   detectImageFormat(data),
		})
	}
	return images, nil
}
