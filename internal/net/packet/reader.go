package packet

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Reader reads little-endian fields from one record payload. Reads past the
// end return zero values; fixed payload sizes make that a framing bug, which
// Short reports.
type Reader struct {
	data  []byte
	off   int
	short bool
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

func (r *Reader) ReadU32() uint32 {
	if r.off+4 > len(r.data) {
		r.short = true
		return 0
	}
	v := binary.LittleEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v
}

func (r *Reader) ReadI32() int32 {
	return int32(r.ReadU32())
}

// ReadF32 reads IEEE-754 bits, so values survive the trip bit-for-bit.
func (r *Reader) ReadF32() float32 {
	return math.Float32frombits(r.ReadU32())
}

func (r *Reader) ReadVec3() mgl32.Vec3 {
	return mgl32.Vec3{r.ReadF32(), r.ReadF32(), r.ReadF32()}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// Short reports whether any read ran past the payload.
func (r *Reader) Short() bool {
	return r.short
}
