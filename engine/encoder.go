package engine

import (
	"github.com/hbarrett/lzs/internal/bitqueue"
	"github.com/hbarrett/lzs/internal/lengthcodec"
	"github.com/hbarrett/lzs/internal/offsetcodec"
	"github.com/hbarrett/lzs/internal/token"
)

// Encode serializes a token stream into the packed bitstream: each token is
// tagged and bit-packed via the codec pair, followed by an end marker and
// zero padding out to a whole number of bytes.
func Encode(tokens []token.Token, c *Codec) ([]byte, error) {
	var q bitqueue.Queue
	var out []byte

	drain := func() {
		for q.Width >= 8 {
			b, _ := q.Pop(8)
			out = append(out, byte(b))
		}
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case token.Literal:
			if err := q.Append(bitqueue.MustNew(0, 1)); err != nil {
				return nil, err
			}
			if err := q.Append(bitqueue.MustNew(uint32(tok.Byte), 8)); err != nil {
				return nil, err
			}
		case token.Match:
			if err := q.Append(bitqueue.MustNew(1, 1)); err != nil {
				return nil, err
			}
			off, err := c.Offset.Encode(-tok.Offset)
			if err != nil {
				return nil, err
			}
			if err := q.Append(off); err != nil {
				return nil, err
			}
			lenField, err := c.Length.Encode(tok.Length)
			if err != nil {
				return nil, err
			}
			if err := q.Append(lenField); err != nil {
				return nil, err
			}
		case token.Continuation:
			field, err := lengthcodec.EncodeContinuation(tok.Length)
			if err != nil {
				return nil, err
			}
			if err := q.Append(field); err != nil {
				return nil, err
			}
		}
		drain()
	}

	// End marker: tag bit 1 followed by the offset codec's EndMarker encoding.
	if err := q.Append(bitqueue.MustNew(1, 1)); err != nil {
		return nil, err
	}
	endField, err := c.Offset.Encode(offsetcodec.EndMarker)
	if err != nil {
		return nil, err
	}
	if err := q.Append(endField); err != nil {
		return nil, err
	}

	neededPad := 7 - ((q.Width + 7) % 8)
	if neededPad > 0 {
		if err := q.Append(bitqueue.MustNew(0, neededPad)); err != nil {
			return nil, err
		}
	}
	drain()

	return out, nil
}
