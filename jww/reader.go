package jww

import (
	"encoding/binary"
	"math"
)

// Reader is a cursor over a borrowed byte slice. It never reads past the
// end of the slice and every primitive read reports the offset at which a
// short read was detected. Reader is a value, not hidden module state: every
// decode function threads it explicitly, so every read site is independently
// testable.
type Reader struct {
	data []byte
	pos  int
}

// NewReader wraps data for bounded, offset-tracked reading. data is borrowed,
// never mutated, and never copied; Bytes and PeekBytes return sub-slices
// that alias it.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Pos returns the current cursor offset.
func (r *Reader) Pos() int64 { return int64(r.pos) }

// Len returns the number of bytes remaining after the cursor.
func (r *Reader) Len() int { return len(r.data) - r.pos }

func (r *Reader) require(n int) error {
	if n < 0 || r.pos+n > len(r.data) {
		return errUnexpectedEnd(int64(r.pos), n, r.Len())
	}
	return nil
}

// U8 reads one unsigned byte and advances the cursor.
func (r *Reader) U8() (byte, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// U16 reads a little-endian 16-bit unsigned integer and advances the cursor.
func (r *Reader) U16() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos : r.pos+2])
	r.pos += 2
	return v, nil
}

// I32 reads a little-endian two's-complement 32-bit signed integer and
// advances the cursor.
func (r *Reader) I32() (int32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}
	v := int32(binary.LittleEndian.Uint32(r.data[r.pos : r.pos+4]))
	r.pos += 4
	return v, nil
}

// U32 reads a little-endian unsigned 32-bit integer and advances the cursor.
// Several JWW DWORD fields are semantically unsigned counts or flags rather
// than signed magnitudes; U32 is the unsigned twin of I32 for those sites.
func (r *Reader) U32() (uint32, error) {
	v, err := r.I32()
	return uint32(v), err
}

// F64 reads a little-endian IEEE-754 double and advances the cursor.
func (r *Reader) F64() (float64, error) {
	if err := r.require(8); err != nil {
		return 0, err
	}
	bits := binary.LittleEndian.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8
	return math.Float64frombits(bits), nil
}

// Bytes returns a sub-slice of the next n bytes and advances the cursor.
// The returned slice aliases the reader's backing array; callers that need
// an independent copy must clone it.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Skip advances the cursor by n bytes without returning them.
func (r *Reader) Skip(n int) error {
	if err := r.require(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

// PeekU8 reads one byte without advancing the cursor.
func (r *Reader) PeekU8() (byte, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	return r.data[r.pos], nil
}

// PeekU16 reads a little-endian 16-bit unsigned integer without advancing
// the cursor.
func (r *Reader) PeekU16() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(r.data[r.pos : r.pos+2]), nil
}

// PeekBytes returns the next n bytes without advancing the cursor.
func (r *Reader) PeekBytes(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}
	return r.data[r.pos : r.pos+n], nil
}
