package jww

import (
	"bytes"
	"encoding/binary"
	"math"
)

// fileBuilder assembles synthetic JWW byte buffers for tests. It mirrors
// the on-disk layout decodeHeader/decodeLayerGroups/decodeEntityRun expect,
// one primitive write call at a time, the same way the decoder reads it.
type fileBuilder struct {
	buf bytes.Buffer
}

func newFileBuilder() *fileBuilder { return &fileBuilder{} }

func (b *fileBuilder) bytes() []byte { return b.buf.Bytes() }

func (b *fileBuilder) raw(p []byte) *fileBuilder {
	b.buf.Write(p)
	return b
}

func (b *fileBuilder) u8(v byte) *fileBuilder {
	b.buf.WriteByte(v)
	return b
}

func (b *fileBuilder) u16(v uint16) *fileBuilder {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	b.buf.Write(tmp[:])
	return b
}

func (b *fileBuilder) u32(v uint32) *fileBuilder {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.buf.Write(tmp[:])
	return b
}

func (b *fileBuilder) i32(v int32) *fileBuilder { return b.u32(uint32(v)) }

func (b *fileBuilder) f64(v float64) *fileBuilder {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(v))
	b.buf.Write(tmp[:])
	return b
}

// cstring writes a one-byte length prefix followed by s's ASCII bytes,
// which are valid single-byte Shift-JIS and so round-trip unchanged.
func (b *fileBuilder) cstring(s string) *fileBuilder {
	b.u8(byte(len(s)))
	b.buf.WriteString(s)
	return b
}

// tag writes a class-name record header: a two-byte length prefix
// followed by the tag's ASCII bytes, per readEntityTag.
func (b *fileBuilder) tag(name string) *fileBuilder {
	b.u16(uint16(len(name)))
	b.buf.WriteString(name)
	return b
}

// endEntities writes the reserved zero-length tag that terminates an
// entity run.
func (b *fileBuilder) endEntities() *fileBuilder { return b.u16(0) }

// header writes a complete header block for the given version: signature,
// version, memo, paper size, write-layer-group, print settings, sunpou
// settings, and version-gated padding.
func (b *fileBuilder) header(version uint32, memo string, paperSize, writeLayerGroup uint32) *fileBuilder {
	b.raw([]byte(signature))
	b.u32(version)
	b.cstring(memo)
	b.u32(paperSize)
	b.u32(writeLayerGroup)
	b.f64(0).f64(0).f64(1.0).i32(0) // print settings
	b.f64(0).f64(0).f64(0).f64(0).f64(0).i32(0).f64(0) // sunpou settings
	if pad := headerPaddingSize(version); pad > 0 {
		b.raw(make([]byte, pad))
	}
	return b
}

// layerGroups writes 16 default layer groups, each with 16 default layers.
func (b *fileBuilder) layerGroups() *fileBuilder {
	for g := 0; g < 16; g++ {
		b.u32(2)    // state
		b.u32(0)    // write_layer
		b.f64(100)  // scale
		b.u32(0)    // protect
		for l := 0; l < 16; l++ {
			b.u32(2) // state
			b.u32(0) // protect
			b.cstring("")
		}
		b.cstring("")
	}
	return b
}

// entityBase writes a common EntityBase block for the given version.
func (b *fileBuilder) entityBase(version uint32, layer, layerGroup uint16) *fileBuilder {
	b.u32(0)  // group
	b.u8(0)   // pen_style
	b.u16(1)  // pen_color
	if version >= 351 {
		b.u16(1) // pen_width
	}
	b.u16(layer)
	b.u16(layerGroup)
	b.u16(0) // flag
	return b
}

func minimalHeaderOnly(version uint32) []byte {
	b := newFileBuilder()
	b.header(version, "memo", 1, 0)
	b.layerGroups()
	b.endEntities()
	return b.bytes()
}
