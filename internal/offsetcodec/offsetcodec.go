// Package offsetcodec implements the back-reference distance codecs: a
// split codec (short/long prefix field, with a "dense" variant that biases
// long offsets to avoid wasted codepoints) and a flat fixed-width codec.
// Both are bijective on their valid input range and share an EndMarker
// sentinel value distinct from any real offset.
package offsetcodec

import (
	"errors"

	"github.com/hbarrett/lzs/internal/bitqueue"
)

// ErrOffsetTooLarge is returned when Encode is called with an offset
// exceeding the codec's MaxOffset.
var ErrOffsetTooLarge = errors.New("offsetcodec: offset exceeds MaxOffset")

// EndMarker is the sentinel offset value; it is not itself a valid wire
// offset, but is passed to Encode/Decode as the reserved value -1.
const EndMarker = -1

// Codec is the capability interface every offset codec variant satisfies.
type Codec interface {
	// Encode returns the bit field for offset, or for EndMarker.
	Encode(offset int) (bitqueue.Queue, error)
	// Decode pops an offset field from q, returning EndMarker for the
	// reserved sentinel value.
	Decode(q *bitqueue.Queue) (int, error)
	// MaxOffset is the largest back-reference distance this codec can express.
	MaxOffset() int
}

// Split is the two-field offset codec: a 1-bit tag selects a short
// (ShortBits-wide) or long (LongBits-wide) fixed field. Offset 0 under the
// short tag is reserved for EndMarker.
type Split struct {
	ShortBits uint
	LongBits  uint
	// Dense biases long offsets by maxShort, extending MaxOffset to
	// (2^LongBits - 1) + maxShort instead of wasting the codepoints
	// [0, maxShort] a plain long field would otherwise duplicate.
	Dense bool

	maxShort int
	maxLong  int
}

// NewSplit builds the base split codec: MaxOffset = 2^LongBits - 1.
// shortBits must be in [1,15] and longBits in [shortBits+1,15]; NewSplit
// panics otherwise, per the recognized configuration options.
func NewSplit(shortBits, longBits uint) *Split {
	return newSplit(shortBits, longBits, false)
}

// NewSplitDense builds the dense split codec: MaxOffset = (2^LongBits - 1) + maxShort.
// Same shortBits/longBits constraints as NewSplit.
func NewSplitDense(shortBits, longBits uint) *Split {
	return newSplit(shortBits, longBits, true)
}

func newSplit(shortBits, longBits uint, dense bool) *Split {
	if shortBits < 1 || shortBits > 15 {
		panic("offsetcodec: shortBits must be in [1,15]")
	}
	if longBits < shortBits+1 || longBits > 15 {
		panic("offsetcodec: longBits must be in [shortBits+1,15]")
	}
	maxShort := (1 << shortBits) - 1
	maxLong := (1 << longBits) - 1
	if dense {
		maxLong += maxShort
	}
	return &Split{
		ShortBits: shortBits,
		LongBits:  longBits,
		Dense:     dense,
		maxShort:  maxShort,
		maxLong:   maxLong,
	}
}

// MaxOffset implements Codec.
func (s *Split) MaxOffset() int { return s.maxLong }

// Encode implements Codec.
func (s *Split) Encode(offset int) (bitqueue.Queue, error) {
	wire := offset
	if offset == EndMarker {
		wire = 0
	}
	if wire <= s.maxShort {
		q := bitqueue.MustNew(1, 1)
		if err := q.Append(bitqueue.MustNew(uint32(wire), s.ShortBits)); err != nil {
			return bitqueue.Queue{}, err
		}
		return q, nil
	}
	if wire <= s.maxLong {
		q := bitqueue.MustNew(0, 1)
		longValue := wire
		if s.Dense {
			longValue -= s.maxShort
		}
		if err := q.Append(bitqueue.MustNew(uint32(longValue), s.LongBits)); err != nil {
			return bitqueue.Queue{}, err
		}
		return q, nil
	}
	return bitqueue.Queue{}, ErrOffsetTooLarge
}

// Decode implements Codec.
func (s *Split) Decode(q *bitqueue.Queue) (int, error) {
	tag, err := q.Pop(1)
	if err != nil {
		return 0, err
	}
	if tag == 1 {
		v, err := q.Pop(s.ShortBits)
		if err != nil {
			return 0, err
		}
		if v == 0 {
			return EndMarker, nil
		}
		return int(v), nil
	}
	v, err := q.Pop(s.LongBits)
	if err != nil {
		return 0, err
	}
	if s.Dense {
		return int(v) + s.maxShort, nil
	}
	return int(v), nil
}

// Flat is a fixed-width offset codec with no tag bit. Offset 0 is reserved
// for EndMarker.
type Flat struct {
	NumBits uint

	maxOffset int
}

// NewFlat builds a flat codec with MaxOffset = 2^numBits - 1. numBits must
// be in [1,16]; NewFlat panics otherwise, per the recognized configuration
// options.
func NewFlat(numBits uint) *Flat {
	if numBits < 1 || numBits > 16 {
		panic("offsetcodec: numBits must be in [1,16]")
	}
	return &Flat{NumBits: numBits, maxOffset: (1 << numBits) - 1}
}

// MaxOffset implements Codec.
func (f *Flat) MaxOffset() int { return f.maxOffset }

// Encode implements Codec.
func (f *Flat) Encode(offset int) (bitqueue.Queue, error) {
	wire := offset
	if offset == EndMarker {
		wire = 0
	}
	if wire > f.maxOffset {
		return bitqueue.Queue{}, ErrOffsetTooLarge
	}
	return bitqueue.New(uint32(wire), f.NumBits)
}

// Decode implements Codec.
func (f *Flat) Decode(q *bitqueue.Queue) (int, error) {
	v, err := q.Pop(f.NumBits)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return EndMarker, nil
	}
	return int(v), nil
}
