package packet

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var ErrBufferOverflow = errors.New("reassembly buffer overflow")

// Record is one decoded header + payload. Payload aliases the decoder's
// buffer and is only valid until the next Feed.
type Record struct {
	Type    UpdateType
	Payload []byte
}

// Decoder reassembles records from an arbitrary chunking of the byte
// stream. Bytes of a record split across reads stay buffered until the rest
// arrives. One decoder per session.
type Decoder struct {
	buf []byte
	off int
	max int
	err error
}

// DefaultMaxBuffered caps a decoder built with a non-positive limit.
const DefaultMaxBuffered = 64 * 1024

// NewDecoder returns a decoder that refuses to buffer more than max bytes.
func NewDecoder(max int) *Decoder {
	if max <= 0 {
		max = DefaultMaxBuffered
	}
	return &Decoder{buf: make([]byte, 0, 1024), max: max}
}

// Feed appends a received chunk.
func (d *Decoder) Feed(chunk []byte) error {
	if d.err != nil {
		return d.err
	}
	if d.off > 0 {
		n := copy(d.buf, d.buf[d.off:])
		d.buf = d.buf[:n]
		d.off = 0
	}
	if len(d.buf)+len(chunk) > d.max {
		d.err = fmt.Errorf("%w: %d buffered + %d received > %d", ErrBufferOverflow, len(d.buf), len(chunk), d.max)
		return d.err
	}
	d.buf = append(d.buf, chunk...)
	return nil
}

// Next returns the next complete record. ok is false when more bytes are
// needed. An unknown update type poisons the decoder: the stream cannot be
// resynchronised without a length prefix.
func (d *Decoder) Next() (rec Record, ok bool, err error) {
	if d.err != nil {
		return Record{}, false, d.err
	}
	avail := d.buf[d.off:]
	if len(avail) < HeaderSize {
		return Record{}, false, nil
	}
	t := UpdateType(binary.LittleEndian.Uint32(avail))
	size, known := PayloadSize(t)
	if !known {
		d.err = fmt.Errorf("%w: %d", ErrUnknownUpdateType, uint32(t))
		return Record{}, false, d.err
	}
	if len(avail) < HeaderSize+size {
		return Record{}, false, nil
	}
	rec = Record{Type: t, Payload: avail[HeaderSize : HeaderSize+size]}
	d.off += HeaderSize + size
	return rec, true, nil
}

// Buffered returns the number of bytes waiting for the rest of a record.
func (d *Decoder) Buffered() int {
	return len(d.buf) - d.off
}
