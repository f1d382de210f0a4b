// Package lengthcodec implements the match-length codecs: eight static
// prefix codebooks covering the intervals MIN_INITIAL_LEN..MAX_INITIAL_LEN,
// plus the shared 4-bit continuation field used to extend a saturated
// match arbitrarily far.
package lengthcodec

import (
	"errors"

	"github.com/hbarrett/lzs/internal/bitqueue"
)

// ErrUnrecognizedLength is returned when Encode is asked for a length
// outside [MinInitialLen, MaxInitialLen].
var ErrUnrecognizedLength = errors.New("lengthcodec: length outside codebook range")

// ErrMalformedCode is returned when Decode's 4-bit lookahead does not match
// any table entry — it cannot happen for a well-formed codebook, but is
// surfaced rather than panicking if a caller builds a Codebook by hand.
var ErrMalformedCode = errors.New("lengthcodec: no matching prefix code")

// code is one entry of a codebook: a fixed bit pattern, right-justified in
// Width bits, naming Length.
type code struct {
	Length uint32
	Value  uint32
	Width  uint
}

// tableEntry is one of the 16 precomputed 4-bit-lookahead decode results.
type tableEntry struct {
	Length   uint32
	Consumed uint
}

// Codebook is an immutable static prefix code over [MinInitialLen,
// MaxInitialLen]. If MaxContinuedLen is nil, the codebook does not support
// continuation — a single coded match may not be extended.
type Codebook struct {
	MinInitialLen   int
	MaxInitialLen   int
	MaxContinuedLen *int

	codes []code
	table [16]tableEntry
}

// ContinuationBits is the fixed width of a Continuation field.
const ContinuationBits = 4

func newCodebook(minLen, maxLen int, maxContinued *int, codes []code) *Codebook {
	cb := &Codebook{
		MinInitialLen:   minLen,
		MaxInitialLen:   maxLen,
		MaxContinuedLen: maxContinued,
		codes:           codes,
	}
	for pattern := 0; pattern < 16; pattern++ {
		for _, c := range codes {
			shift := 4 - c.Width
			if uint32(pattern)>>shift == c.Value {
				cb.table[pattern] = tableEntry{Length: c.Length, Consumed: c.Width}
				break
			}
		}
	}
	return cb
}

// Encode returns the bit field (1-4 bits) for length.
func (cb *Codebook) Encode(length int) (bitqueue.Queue, error) {
	for _, c := range cb.codes {
		if int(c.Length) == length {
			return bitqueue.New(c.Value, c.Width)
		}
	}
	return bitqueue.Queue{}, ErrUnrecognizedLength
}

// Decode peeks 4 bits from q, resolves the unique prefix code they begin
// with, and removes exactly that code's width.
func (cb *Codebook) Decode(q *bitqueue.Queue) (int, error) {
	peek, err := q.Get(4)
	if err != nil {
		return 0, err
	}
	entry := cb.table[peek]
	if entry.Consumed == 0 {
		return 0, ErrMalformedCode
	}
	if _, err := q.Pop(entry.Consumed); err != nil {
		return 0, err
	}
	return int(entry.Length), nil
}

// EncodeContinuation returns the flat 4-bit field for a continuation length.
func EncodeContinuation(length int) (bitqueue.Queue, error) {
	if length < 0 || length > 15 {
		return bitqueue.Queue{}, ErrUnrecognizedLength
	}
	return bitqueue.New(uint32(length), ContinuationBits)
}

// DecodeContinuation pops a flat 4-bit continuation length field from q.
func DecodeContinuation(q *bitqueue.Queue) (int, error) {
	v, err := q.Pop(ContinuationBits)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

func intPtr(v int) *int { return &v }

// Codebook1 is the standard LZS length coding: lengths 2..8, codes
// 00,01,10,1100,1101,1110,1111.
func Codebook1() *Codebook {
	return newCodebook(2, 8, intPtr(15), []code{
		{2, 0b00, 2},
		{3, 0b01, 2},
		{4, 0b10, 2},
		{5, 0b1100, 4},
		{6, 0b1101, 4},
		{7, 0b1110, 4},
		{8, 0b1111, 4},
	})
}

// Codebook2 covers lengths 2..7.
func Codebook2() *Codebook {
	return newCodebook(2, 7, intPtr(15), []code{
		{2, 0b0, 1},
		{3, 0b10, 2},
		{4, 0b1100, 4},
		{5, 0b1101, 4},
		{6, 0b1110, 4},
		{7, 0b1111, 4},
	})
}

// Codebook3 covers lengths 2..6.
func Codebook3() *Codebook {
	return newCodebook(2, 6, intPtr(15), []code{
		{2, 0b0, 1},
		{3, 0b10, 2},
		{4, 0b110, 3},
		{5, 0b1110, 4},
		{6, 0b1111, 4},
	})
}

// Codebook4 covers lengths 2..9.
func Codebook4() *Codebook {
	return newCodebook(2, 9, intPtr(15), []code{
		{2, 0b00, 2},
		{3, 0b01, 2},
		{4, 0b100, 3},
		{5, 0b101, 3},
		{6, 0b1100, 4},
		{7, 0b1101, 4},
		{8, 0b1110, 4},
		{9, 0b1111, 4},
	})
}

// Codebook5 covers lengths 2..7, with 2-bit codes for each of lengths 2, 3 and 4.
func Codebook5() *Codebook {
	return newCodebook(2, 7, intPtr(15), []code{
		{2, 0b00, 2},
		{3, 0b01, 2},
		{4, 0b10, 2},
		{5, 0b110, 3},
		{6, 0b1110, 4},
		{7, 0b1111, 4},
	})
}

// Codebook6 covers lengths 2..10.
func Codebook6() *Codebook {
	return newCodebook(2, 10, intPtr(15), []code{
		{2, 0b000, 3},
		{3, 0b001, 3},
		{4, 0b010, 3},
		{5, 0b011, 3},
		{6, 0b100, 3},
		{7, 0b101, 3},
		{8, 0b110, 3},
		{9, 0b1110, 4},
		{10, 0b1111, 4},
	})
}

// Codebook7 covers lengths 2..16 with a flat 4-bit field (length-2).
func Codebook7() *Codebook {
	codes := make([]code, 0, 15)
	for l := 2; l <= 16; l++ {
		codes = append(codes, code{Length: uint32(l), Value: uint32(l - 2), Width: 4})
	}
	return newCodebook(2, 16, intPtr(15), codes)
}

// Codebook8 covers lengths 3..16 with a flat 4-bit field (length-3) and
// does not support continuation.
func Codebook8() *Codebook {
	codes := make([]code, 0, 14)
	for l := 3; l <= 16; l++ {
		codes = append(codes, code{Length: uint32(l), Value: uint32(l - 3), Width: 4})
	}
	return newCodebook(3, 16, nil, codes)
}
