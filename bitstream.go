package jamdeck

import (
	"errors"
	"fmt"
	"io"
)

var ErrUnalignedBitstream = errors.New("bitstream does not end on a byte boundary")

// BitWriter appends values to a byte slice, most significant bit first. The
// cursor runs across value and byte boundaries without realigning.
type BitWriter struct {
	data    []byte
	pending byte
	// Mask of the next bit to set within pending. 0x80 means a fresh byte.
	bitpos byte
}

func NewBitWriter(capacity int) *BitWriter {
	return &BitWriter{
		data:   make([]byte, 0, capacity),
		bitpos: 0x80,
	}
}

// WriteBits emits the low width bits of value. Higher bits are ignored.
func (w *BitWriter) WriteBits(value uint64, width uint) {
	for mask := uint64(1) << width; mask > 1; {
		mask >>= 1
		if value&mask != 0 {
			w.pending |= w.bitpos
		}
		w.bitpos >>= 1
		if w.bitpos == 0 {
			w.data = append(w.data, w.pending)
			w.pending = 0
			w.bitpos = 0x80
		}
	}
}

// Number of bits written so far.
func (w *BitWriter) Len() int {
	n := len(w.data) * 8
	for mask := byte(0x80); mask > w.bitpos; mask >>= 1 {
		n++
	}
	return n
}

func (w *BitWriter) Aligned() bool {
	return w.bitpos == 0x80
}

// Finish returns the written bytes. If the cursor is not on a byte boundary
// the partial byte is flushed zero padded and ErrUnalignedBitstream is
// returned alongside the data.
func (w *BitWriter) Finish() ([]byte, error) {
	if w.Aligned() {
		return w.data, nil
	}
	bitsWritten := w.Len()
	data := append(w.data, w.pending)
	w.data = data
	w.pending = 0
	w.bitpos = 0x80
	return data, fmt.Errorf("%w: %d bits written", ErrUnalignedBitstream, bitsWritten)
}

// Pack serializes the pairs into bytes. See BitWriter.Finish for the
// meaning of a non-nil error.
func Pack(pairs []RankPair) ([]byte, error) {
	total := uint(0)
	for _, pair := range pairs {
		total += pair.Width
	}

	w := NewBitWriter(int(total+7) / 8)
	for _, pair := range pairs {
		w.WriteBits(pair.Value, pair.Width)
	}
	return w.Finish()
}

// BitReader reads MSB first values out of a byte slice.
type BitReader struct {
	data         []byte
	bytePosition int
	bitPosition  int
}

func NewBitReader(data []byte) *BitReader {
	return &BitReader{data: data}
}

func (r *BitReader) ReadBit() (uint8, error) {
	if r.bytePosition >= len(r.data) {
		return 0, io.ErrUnexpectedEOF
	}
	bit := (r.data[r.bytePosition] >> (7 - r.bitPosition)) & 0x01
	r.bitPosition++
	if r.bitPosition > 7 {
		r.bitPosition = 0
		r.bytePosition++
	}
	return bit, nil
}

func (r *BitReader) ReadBits(width uint) (uint64, error) {
	var value uint64
	for i := uint(0); i < width; i++ {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		value = value<<1 | uint64(bit)
	}
	return value, nil
}

// Number of bits consumed so far.
func (r *BitReader) Tell() int {
	return r.bytePosition*8 + r.bitPosition
}
