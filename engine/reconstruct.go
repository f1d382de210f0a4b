package engine

import (
	"github.com/hbarrett/lzs/internal/histbuf"
	"github.com/hbarrett/lzs/internal/token"
)

// Decompress replays a token stream against a sliding history buffer sized
// from the codec pair and returns the reconstructed bytes.
func Decompress(tokens []token.Token, c *Codec) ([]byte, error) {
	next := DecompressSeq(tokens, c)
	var out []byte
	for {
		b, ok, err := next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, b)
	}
	return out, nil
}

// DecompressSeq returns a finite, single-pass iterator producing exactly
// the bytes Decompress would, one at a time, in final order — the
// generator-style decompressor the streaming contract requires.
func DecompressSeq(tokens []token.Token, c *Codec) func() (byte, bool, error) {
	buf := histbuf.New(c.DictSize())

	idx := 0
	var pending []byte // bytes of the in-flight Match/Continuation not yet yielded
	cursor := 0 // current negative read cursor into buf, shared across a Match + its Continuations

	fail := false

	return func() (byte, bool, error) {
		for {
			if len(pending) > 0 {
				b := pending[0]
				pending = pending[1:]
				return b, true, nil
			}
			if fail {
				return 0, false, ErrMalformedStream
			}
			if idx >= len(tokens) {
				return 0, false, nil
			}

			tok := tokens[idx]
			idx++

			switch tok.Kind {
			case token.Literal:
				if err := buf.AppendByte(tok.Byte); err != nil {
					return 0, false, ErrMalformedStream
				}
				return tok.Byte, true, nil

			case token.Match:
				cursor = tok.Offset
				if err := copyFromCursor(buf, cursor, tok.Length, &pending); err != nil {
					fail = true
					continue
				}

			case token.Continuation:
				// cursor is deliberately not reset: a continuation copies
				// from wherever the preceding match's cursor advanced to.
				if err := copyFromCursor(buf, cursor, tok.Length, &pending); err != nil {
					fail = true
					continue
				}
			}
		}
	}
}

// copyFromCursor reads length bytes one at a time from buf starting at the
// (negative) cursor index, appending each to buf as it goes so that
// self-overlapping references (e.g. cursor == -1) correctly replay as
// run-length extension: the buffer is re-read after every append.
func copyFromCursor(buf *histbuf.Buffer, cursor, length int, pending *[]byte) error {
	out := make([]byte, 0, length)
	for i := 0; i < length; i++ {
		b, err := buf.At(cursor)
		if err != nil {
			return ErrMalformedStream
		}
		if err := buf.AppendByte(b); err != nil {
			return ErrMalformedStream
		}
		out = append(out, b)
	}
	*pending = append(*pending, out...)
	return nil
}
