// Package jww decodes Jw_cad (JWW) drawing files into a typed Document.
//
// JWW is JW-CAD's native binary drawing format: little-endian, Shift-JIS
// encoded, and undocumented outside the application's own reverse-engineered
// struct layout. Parse reads an entire file already in memory — the package
// does no I/O of its own — and walks a short pipeline: header, 16 layer
// groups of 16 layers each, a tagged entity stream (with block definitions
// folded in as they are encountered), a block-insertion linking pass, and
// finally, on Ver.7.00+ files, a trailer of embedded raster images.
//
// Basic usage:
//
//	data, _ := os.ReadFile("drawing.jww")
//	doc, err := jww.Parse(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, entity := range doc.Entities {
//	    fmt.Println(entity.Type())
//	}
//
// Decoding is one-way: the package never writes JWW and never attempts to
// repair corrupt input. Downstream consumers (DXF emission, viewers) use
// the Document this package returns, or ToJSONString's JSON encoding of it.
package jww
