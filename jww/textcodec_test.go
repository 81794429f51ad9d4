package jww

import "testing"

func TestReadSJISAsciiRoundTrip(t *testing.T) {
	b := newFileBuilder()
	b.raw([]byte("hello"))
	r := NewReader(b.bytes())

	s, err := r.ReadSJIS(5)
	if err != nil {
		t.Fatalf("ReadSJIS: %v", err)
	}
	if s != "hello" {
		t.Fatalf("ReadSJIS = %q, want hello", s)
	}
}

func TestReadSJISTrimsTrailingNUL(t *testing.T) {
	raw := append([]byte("abc"), 0x00, 0x00, 0x00)
	r := NewReader(raw)
	s, err := r.ReadSJIS(len(raw))
	if err != nil {
		t.Fatalf("ReadSJIS: %v", err)
	}
	if s != "abc" {
		t.Fatalf("ReadSJIS = %q, want abc", s)
	}
}

func TestReadSJISHalfWidthKana(t *testing.T) {
	// Half-width katakana ｱ is single-byte 0xB1 in Shift-JIS.
	r := NewReader([]byte{0xB1})
	s, err := r.ReadSJIS(1)
	if err != nil {
		t.Fatalf("ReadSJIS: %v", err)
	}
	if s != "\uFF71" {
		t.Fatalf("ReadSJIS = %q (% x), want half-width katakana a (U+FF71)", s, []byte(s))
	}
}

func TestReadSJISDoubleByteKanji(t *testing.T) {
	// 日 (kanji "sun/day") is 0x93 0xFA in Shift-JIS.
	r := NewReader([]byte{0x93, 0xFA})
	s, err := r.ReadSJIS(2)
	if err != nil {
		t.Fatalf("ReadSJIS: %v", err)
	}
	if s != "日" {
		t.Fatalf("ReadSJIS = %q, want 日", s)
	}
}

func TestReadSJISEmptyIsEmptyString(t *testing.T) {
	r := NewReader(nil)
	s, err := r.ReadSJIS(0)
	if err != nil {
		t.Fatalf("ReadSJIS(0): %v", err)
	}
	if s != "" {
		t.Fatalf("ReadSJIS(0) = %q, want empty", s)
	}
}

func TestReadSJISLenPrefixed8(t *testing.T) {
	b := newFileBuilder()
	b.cstring("layer-1")
	r := NewReader(b.bytes())
	s, err := r.ReadSJISLenPrefixed8()
	if err != nil {
		t.Fatalf("ReadSJISLenPrefixed8: %v", err)
	}
	if s != "layer-1" {
		t.Fatalf("ReadSJISLenPrefixed8 = %q, want layer-1", s)
	}
}

func TestReadSJISLenPrefixed16(t *testing.T) {
	b := newFileBuilder()
	b.tag("CDataSen")
	r := NewReader(b.bytes())
	s, err := r.ReadSJISLenPrefixed16()
	if err != nil {
		t.Fatalf("ReadSJISLenPrefixed16: %v", err)
	}
	if s != "CDataSen" {
		t.Fatalf("ReadSJISLenPrefixed16 = %q, want CDataSen", s)
	}
}

func TestClassifyMojiOrdinaryText(t *testing.T) {
	kind, _, _, rest := classifyMoji("hello world")
	if kind != mojiText {
		t.Fatalf("kind = %v, want mojiText", kind)
	}
	if rest != "hello world" {
		t.Fatalf("rest = %q, want unchanged content", rest)
	}
}

func TestClassifyMojiBitmapRef(t *testing.T) {
	kind, _, _, rest := classifyMoji("^@BMC:\\img\\a.bmp|1|2|3|4|5")
	if kind != mojiBitmapRef {
		t.Fatalf("kind = %v, want mojiBitmapRef", kind)
	}
	if rest != "C:\\img\\a.bmp|1|2|3|4|5" {
		t.Fatalf("rest = %q, want stripped prefix", rest)
	}
}

func TestClassifyMojiBareBitmapRefDefaultsFieldsToZero(t *testing.T) {
	kind, _, _, rest := classifyMoji("^@BM")
	if kind != mojiBitmapRef {
		t.Fatalf("kind = %v, want mojiBitmapRef", kind)
	}
	if bitmapField(rest, 0) != "" {
		t.Fatalf("bitmapField(0) = %q, want empty", bitmapField(rest, 0))
	}
	if bitmapFieldFloat(rest, 1) != 0 {
		t.Fatalf("bitmapFieldFloat(1) = %v, want 0", bitmapFieldFloat(rest, 1))
	}
}

func TestClassifyMojiRecognizedMetadataKey(t *testing.T) {
	kind, setter, key, rest := classifyMoji("^@printer_paper_size=A4")
	if kind != mojiMetadata {
		t.Fatalf("kind = %v, want mojiMetadata", kind)
	}
	if key != "printer_paper_size" {
		t.Fatalf("key = %q, want printer_paper_size", key)
	}
	if rest != "A4" {
		t.Fatalf("rest = %q, want A4", rest)
	}
	var m MetadataSettings
	setter(&m, rest)
	if m.PrinterPaperSize != "A4" {
		t.Fatalf("PrinterPaperSize = %q, want A4", m.PrinterPaperSize)
	}
}

func TestClassifyMojiUnrecognizedKeyIsOrdinaryText(t *testing.T) {
	kind, _, _, rest := classifyMoji("^@some_unknown_key=value")
	if kind != mojiText {
		t.Fatalf("kind = %v, want mojiText for an unrecognized ^@ key", kind)
	}
	if rest != "^@some_unknown_key=value" {
		t.Fatalf("rest = %q, want content unchanged", rest)
	}
}

func TestSplitKeyValue(t *testing.T) {
	k, v, ok := splitKeyValue("a=b=c")
	if !ok || k != "a" || v != "b=c" {
		t.Fatalf("splitKeyValue = %q, %q, %v; want a, b=c, true", k, v, ok)
	}
	_, _, ok = splitKeyValue("no-equals-sign")
	if ok {
		t.Fatalf("splitKeyValue(no '=') ok = true, want false")
	}
}
