package engine

import (
	"errors"

	"github.com/hbarrett/lzs/internal/bitqueue"
	"github.com/hbarrett/lzs/internal/lengthcodec"
	"github.com/hbarrett/lzs/internal/offsetcodec"
	"github.com/hbarrett/lzs/internal/token"
)

// ErrMalformedStream is returned by Decode/DecodeSeq when the input bytes
// do not represent a valid token stream for the active codec pair — a
// truncated field, an out-of-range length/offset code, or any other state
// the codecs can't make sense of. Unlike encoding errors, this is never a
// programmer error: it reflects untrusted input.
var ErrMalformedStream = errors.New("engine: malformed bitstream")

// bitReader incrementally loads bytes from in into a bounded bit queue,
// keeping enough bits buffered to decode the longest single token (23 bits
// covers every defined codec combination) without having to hold the whole
// input in the queue at once.
type bitReader struct {
	in  []byte
	pos int
	q   bitqueue.Queue
}

func newBitReader(in []byte) *bitReader {
	return &bitReader{in: in}
}

// fill tops the queue up to at least minBits, short of running out of input.
func (r *bitReader) fill(minBits uint) {
	for r.q.Width < minBits && r.pos < len(r.in) {
		_ = r.q.Append(bitqueue.MustNew(uint32(r.in[r.pos]), 8))
		r.pos++
	}
}

// DecodeSeq returns a finite, single-pass iterator over the token stream
// encoded in data. Each call returns the next token, or ok=false once the
// stream is exhausted (either via a proper end marker or because no
// further whole tag can be parsed from what remains).
func DecodeSeq(data []byte, c *Codec) func() (token.Token, bool, error) {
	r := newBitReader(data)
	// continuing holds the active run's MaxContinuedLen while a
	// Continuation field is still expected next, 0 otherwise. None of the
	// defined length codebooks use 0 as MaxContinuedLen, so 0 is safe as
	// the "not in a continuation run" sentinel.
	continuing := 0

	return func() (token.Token, bool, error) {
		r.fill(24)
		if continuing > 0 {
			clen, err := lengthcodec.DecodeContinuation(&r.q)
			if err != nil {
				return token.Token{}, false, ErrMalformedStream
			}
			if clen != continuing {
				continuing = 0
			}
			return token.NewContinuation(clen), true, nil
		}

		if r.q.Width == 0 {
			return token.Token{}, false, nil
		}

		tag, err := r.q.Pop(1)
		if err != nil {
			return token.Token{}, false, ErrMalformedStream
		}

		if tag == 0 {
			r.fill(24)
			b, err := r.q.Pop(8)
			if err != nil {
				return token.Token{}, false, ErrMalformedStream
			}
			return token.NewLiteral(byte(b)), true, nil
		}

		off, err := c.Offset.Decode(&r.q)
		if err != nil {
			return token.Token{}, false, ErrMalformedStream
		}
		if off == offsetcodec.EndMarker {
			rem := r.q.Width % 8
			if rem > 0 {
				if _, err := r.q.Pop(rem); err != nil {
					return token.Token{}, false, ErrMalformedStream
				}
			}
			return token.Token{}, false, nil
		}

		length, err := c.Length.Decode(&r.q)
		if err != nil {
			return token.Token{}, false, ErrMalformedStream
		}
		if length == c.maxInitialLen && c.Length.MaxContinuedLen != nil {
			continuing = *c.Length.MaxContinuedLen
		}
		return token.NewMatch(-off, length), true, nil
	}
}

// Decode parses the entire packed bitstream in data into a token slice.
func Decode(data []byte, c *Codec) ([]token.Token, error) {
	next := DecodeSeq(data, c)
	var out []token.Token
	for {
		tok, ok, err := next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, tok)
	}
	return out, nil
}
