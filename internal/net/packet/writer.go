package packet

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Writer builds one or more records. All multi-byte writes are
// little-endian; records are not padded.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 64)}
}

// NewWriterWithType starts a record with its update_type header.
func NewWriterWithType(t UpdateType) *Writer {
	w := &Writer{buf: make([]byte, 0, HeaderSize+payloadSizes[t])}
	w.WriteU32(uint32(t))
	return w
}

func (w *Writer) WriteU32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *Writer) WriteI32(v int32) {
	w.WriteU32(uint32(v))
}

func (w *Writer) WriteF32(v float32) {
	w.WriteU32(math.Float32bits(v))
}

func (w *Writer) WriteVec3(v mgl32.Vec3) {
	w.WriteF32(v[0])
	w.WriteF32(v[1])
	w.WriteF32(v[2])
}

// WriteBytes writes raw bytes.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the current length.
func (w *Writer) Len() int {
	return len(w.buf)
}
