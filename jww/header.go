package jww

// signature is the fixed 8-byte magic every JWW file begins with.
const signature = "JwwData."

// headerPaddingSize returns the size, in bytes, of the reserved region
// between the dimension (sunpou) settings and the layer table. The source
// format never documents this size; original_source/ could not be retrieved
// for this pack (see DESIGN.md), so the sizes below are an Open-Question
// decision rather than a corpus-verified fact: padding grows with the file
// format version the same way the rest of the header does (new fields
// appended at the end, gated by version).
func headerPaddingSize(version uint32) int {
	switch {
	case version < 351:
		return 0
	case version < 700:
		return 4
	default:
		return 8
	}
}

// decodeHeader reads the fixed-layout file header: signature, version,
// memo, paper size, write-layer-group, print settings, dimension (sunpou)
// settings, and version-gated reserved padding. MetadataSettings is left at
// its zero value; it is only ever populated by the entity decoder's
// CDataMoji side channel (§4.5).
func decodeHeader(r *Reader, doc *Document) error {
	sigOffset := r.Pos()
	sig, err := r.Bytes(len(signature))
	if err != nil {
		return err
	}
	if string(sig) != signature {
		return errInvalidHeader(sigOffset, "bad signature")
	}

	version, err := r.U32()
	if err != nil {
		return err
	}
	doc.Version = version

	memo, err := r.ReadSJISLenPrefixed8()
	if err != nil {
		return err
	}
	doc.Memo = memo

	paperSize, err := r.U32()
	if err != nil {
		return err
	}
	doc.PaperSize = paperSize

	writeLayerGroup, err := r.U32()
	if err != nil {
		return err
	}
	if writeLayerGroup > 15 {
		return errInvalidHeader(r.Pos()-4, "write_layer_group out of range")
	}
	doc.WriteLayerGroup = writeLayerGroup

	ps := &doc.PrintSettings
	if ps.OriginX, err = r.F64(); err != nil {
		return err
	}
	if ps.OriginY, err = r.F64(); err != nil {
		return err
	}
	if ps.Scale, err = r.F64(); err != nil {
		return err
	}
	if ps.RotationSetting, err = r.I32(); err != nil {
		return err
	}

	ss := &doc.SunpouSettings
	if ss.Sunpou1, err = r.F64(); err != nil {
		return err
	}
	if ss.Sunpou2, err = r.F64(); err != nil {
		return err
	}
	if ss.Sunpou3, err = r.F64(); err != nil {
		return err
	}
	if ss.Sunpou4, err = r.F64(); err != nil {
		return err
	}
	if ss.Sunpou5, err = r.F64(); err != nil {
		return err
	}
	if ss.Dummy, err = r.I32(); err != nil {
		return err
	}
	if ss.MaxLineWidth, err = r.F64(); err != nil {
		return err
	}

	if pad := headerPaddingSize(version); pad > 0 {
		if err := r.Skip(pad); err != nil {
			return err
		}
	}

	return nil
}
