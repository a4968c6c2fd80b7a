// Package membuf provides a sparse in-memory buffer addressed by offset.
package membuf

import (
	"io"
	"sort"

	"github.com/pkg/errors"
)

type offsetBuffer struct {
	offset int64
	buf    []byte
}

func (b *offsetBuffer) end() int64 {
	return b.offset + int64(len(b.buf))
}

// Buffer collects writes at arbitrary offsets. Gaps read back as zeroes.
type Buffer struct {
	buffers []*offsetBuffer
}

func NewMemBuffer() *Buffer {
	return &Buffer{}
}

func (m *Buffer) findWriteBuffer(off int64) *offsetBuffer {
	for _, buf := range m.buffers {
		if buf.end() == off {
			return buf
		}
	}

	return nil
}

// WriteAt appends to the segment ending at off, or starts a new one.
// Overwriting bytes that were already written is an error.
func (m *Buffer) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.Errorf("negative offset %d", off)
	}
	for _, buf := range m.buffers {
		if off < buf.end() && buf.offset < off+int64(len(p)) {
			return 0, errors.Errorf("write of %d bytes at %d overlaps data at [%d, %d)", len(p), off, buf.offset, buf.end())
		}
	}

	writeBuf := m.findWriteBuffer(off)
	if writeBuf == nil {
		writeBuf = &offsetBuffer{
			offset: off,
		}
		m.buffers = append(m.buffers, writeBuf)
		sort.Slice(m.buffers, func(i, j int) bool {
			return m.buffers[i].offset < m.buffers[j].offset
		})
	}

	writeBuf.buf = append(writeBuf.buf, p...)
	return len(p), nil
}

// ReadAt fills p from offset off. Reading past Len returns io.EOF.
func (m *Buffer) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.Errorf("negative offset %d", off)
	}

	size := m.Len()
	if off >= size {
		return 0, io.EOF
	}
	n := len(p)
	if int64(n) > size-off {
		n = int(size - off)
	}

	clear(p[:n])
	for _, buf := range m.buffers {
		left := max(off, buf.offset)
		right := min(off+int64(n), buf.end())
		if left < right {
			copy(p[left-off:right-off], buf.buf[left-buf.offset:right-buf.offset])
		}
	}

	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Len is one past the highest offset written.
func (m *Buffer) Len() int64 {
	var last int64
	for _, buf := range m.buffers {
		if buf.end() > last {
			last = buf.end()
		}
	}
	return last
}

// Segments is the number of contiguous runs written so far.
func (m *Buffer) Segments() int {
	return len(m.buffers)
}

// Bytes flattens the buffer into a new slice of Len bytes.
func (m *Buffer) Bytes() []byte {
	out := make([]byte, m.Len())
	if len(out) > 0 {
		_, _ = m.ReadAt(out, 0)
	}
	return out
}

func (m *Buffer) Reader() io.Reader {
	return io.NewSectionReader(m, 0, m.Len())
}

var _ io.WriterAt = (*Buffer)(nil)
var _ io.ReaderAt = (*Buffer)(nil)
