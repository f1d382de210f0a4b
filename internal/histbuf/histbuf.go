// Package histbuf implements the decompressor's circular history buffer: a
// fixed-capacity byte ring that is random-indexable over its live contents,
// including positions about to be overwritten by appends issued later in
// the same reconstruction pass.
package histbuf

import "errors"

// ErrOversize is returned when an appended item is larger than the buffer's capacity.
var ErrOversize = errors.New("histbuf: item larger than buffer capacity")

// ErrOutOfRange is returned when an index or slice falls outside the live window.
var ErrOutOfRange = errors.New("histbuf: index out of range")

// ErrUnsupportedStep is returned for a slice request with a step other than 1.
var ErrUnsupportedStep = errors.New("histbuf: slice step must be 1")

// Buffer is a fixed-capacity circular byte buffer holding the most recently
// produced output bytes of a decompression pass.
type Buffer struct {
	data     []byte
	capacity int
	numItems int
	oldest   int
	newest   int
}

// New allocates a Buffer with the given capacity.
func New(capacity int) *Buffer {
	return &Buffer{
		data:     make([]byte, capacity),
		capacity: capacity,
	}
}

// Len reports the number of live bytes currently held.
func (b *Buffer) Len() int { return b.numItems }

// Cap reports the buffer's fixed capacity.
func (b *Buffer) Cap() int { return b.capacity }

func (b *Buffer) wrap(index, count int) int {
	return ((index+count)%b.capacity + b.capacity) % b.capacity
}

// Append writes item into the ring, overwriting the oldest bytes in place
// once the buffer is full.
func (b *Buffer) Append(item []byte) error {
	if len(item) > b.capacity {
		return ErrOversize
	}
	itemLen := len(item)

	spaceAtEnd := b.capacity - b.newest
	firstLen := itemLen
	if firstLen > spaceAtEnd {
		firstLen = spaceAtEnd
	}
	if firstLen > 0 {
		copy(b.data[b.newest:b.newest+firstLen], item[:firstLen])
	}
	secondLen := itemLen - firstLen
	if secondLen > 0 {
		copy(b.data[:secondLen], item[firstLen:])
	}

	b.newest = b.wrap(b.newest, itemLen)
	b.numItems += itemLen
	if b.numItems > b.capacity {
		b.oldest = b.newest
		b.numItems = b.capacity
	}
	return nil
}

// AppendByte is a single-byte convenience wrapper around Append, used by the
// reconstructor's per-byte copy loop so each read sees the effect of every
// prior write.
func (b *Buffer) AppendByte(item byte) error {
	var one [1]byte
	one[0] = item
	return b.Append(one[:])
}

// Pop removes and returns up to count oldest live bytes. count <= 0 means
// "pop everything currently live".
func (b *Buffer) Pop(count int) []byte {
	if count <= 0 || count > b.numItems {
		count = b.numItems
	}
	spaceAtEnd := b.capacity - b.oldest
	firstLen := count
	if firstLen > spaceAtEnd {
		firstLen = spaceAtEnd
	}
	out := make([]byte, count)
	copy(out, b.data[b.oldest:b.oldest+firstLen])
	copy(out[firstLen:], b.data[:count-firstLen])

	b.oldest = b.wrap(b.oldest, count)
	b.numItems -= count
	return out
}

func (b *Buffer) normaliseIndex(index int) (int, error) {
	if index >= 0 {
		if index >= b.numItems {
			return 0, ErrOutOfRange
		}
		return b.wrap(b.oldest, index), nil
	}
	if -index > b.numItems {
		return 0, ErrOutOfRange
	}
	return b.wrap(b.newest, index), nil
}

// At returns the live byte at index. index 0 is the oldest live byte;
// negative indices count back from the newest (-1 is newest).
func (b *Buffer) At(index int) (byte, error) {
	i, err := b.normaliseIndex(index)
	if err != nil {
		return 0, err
	}
	return b.data[i], nil
}

// Slice materializes a contiguous copy of the live window [start, end) with
// step 1. Inverted ranges (start > end) fail with ErrOutOfRange rather than
// being silently clamped.
func (b *Buffer) Slice(start, end, step int) ([]byte, error) {
	if step != 1 {
		return nil, ErrUnsupportedStep
	}
	if start < 0 || end < 0 || start > b.numItems || end > b.numItems {
		return nil, ErrOutOfRange
	}
	if start > end {
		return nil, ErrOutOfRange
	}
	count := end - start
	startIdx := b.wrap(b.oldest, start)

	spaceAtEnd := b.capacity - startIdx
	firstLen := count
	if firstLen > spaceAtEnd {
		firstLen = spaceAtEnd
	}
	out := make([]byte, count)
	copy(out, b.data[startIdx:startIdx+firstLen])
	copy(out[firstLen:], b.data[:count-firstLen])
	return out, nil
}
