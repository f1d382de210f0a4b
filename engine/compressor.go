package engine

import "github.com/hbarrett/lzs/internal/token"

// Compress runs the greedy LZ77-style match finder over in and returns the
// token stream: Literal where no usable back-reference exists, Match
// (followed by zero or more Continuation tokens) where one does.
func Compress(in []byte, c *Codec) []token.Token {
	dict := newMatchDict(c.minInitialLen, c.maxDictSearch, c.maxOffset)
	var out []token.Token

	pos := 0
	for pos < len(in) {
		matchOffset, k, found := dict.find(in, pos)
		if !found {
			out = append(out, token.NewLiteral(in[pos]))
			dict.add(in, pos)
			pos++
			continue
		}

		length := extendMatch(in, pos, matchOffset, k, c.maxInitialLen)
		out = append(out, token.NewMatch(matchOffset-pos, length))
		for i := 0; i < length; i++ {
			dict.add(in, pos+i)
		}
		pos += length
		matchOffset += length

		if length == c.maxInitialLen && c.Length.MaxContinuedLen != nil {
			maxContinued := *c.Length.MaxContinuedLen
			for {
				clen := extendMatch(in, pos, matchOffset, 0, maxContinued)
				out = append(out, token.NewContinuation(clen))
				for i := 0; i < clen; i++ {
					dict.add(in, pos+i)
				}
				pos += clen
				matchOffset += clen
				if clen != maxContinued {
					break
				}
			}
		}
	}
	return out
}

// extendMatch finds the longest length in [floor, ceiling] for which
// in[pos:pos+l] equals in[source:source+l], searching from ceiling down so
// the greedy compressor always prefers the longest representable match.
// floor must already be a verified match length (the search always
// terminates there if nothing longer holds).
func extendMatch(in []byte, pos, source, floor, ceiling int) int {
	maxLen := ceiling
	if pos+maxLen > len(in) {
		maxLen = len(in) - pos
	}
	for l := maxLen; l >= floor; l-- {
		if bytesEqualAt(in, pos, source, l) {
			return l
		}
	}
	return floor
}

func bytesEqualAt(in []byte, pos, source, length int) bool {
	for i := 0; i < length; i++ {
		if in[pos+i] != in[source+i] {
			return false
		}
	}
	return true
}
