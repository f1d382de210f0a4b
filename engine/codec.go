// Package engine implements the core LZ77-family match finder, token
// stream producer, bitstream emitter/parser, and sliding-window
// reconstructor described by the codec pair supplied at construction.
package engine

import (
	"github.com/hbarrett/lzs/internal/lengthcodec"
	"github.com/hbarrett/lzs/internal/offsetcodec"
)

// maxDictSearchLen is the hard ceiling on fragment length the match
// dictionary indexes, independent of how long a codec's length field can
// encode a single match.
const maxDictSearchLen = 15

// Codec bundles an offset codec and a length codec into the pair a
// Compressor/Decompressor is built from. Immutable after construction.
type Codec struct {
	Offset offsetcodec.Codec
	Length *lengthcodec.Codebook

	dictSize      int
	maxOffset     int
	maxDictSearch int
	minInitialLen int
	maxInitialLen int
}

// New bundles offset and length codecs into a Codec.
func New(offset offsetcodec.Codec, length *lengthcodec.Codebook) *Codec {
	maxSearch := maxDictSearchLen
	if length.MaxInitialLen < maxSearch {
		maxSearch = length.MaxInitialLen
	}
	return &Codec{
		Offset:        offset,
		Length:        length,
		dictSize:      offset.MaxOffset() + 1,
		maxOffset:     offset.MaxOffset(),
		maxDictSearch: maxSearch,
		minInitialLen: length.MinInitialLen,
		maxInitialLen: length.MaxInitialLen,
	}
}

// Default returns the reference implementation's default codec pair:
// split(7,11) offsets and length codebook 1.
func Default() *Codec {
	return New(offsetcodec.NewSplit(7, 11), lengthcodec.Codebook1())
}

// DictSize is the sliding-window capacity (MaxOffset + 1).
func (c *Codec) DictSize() int { return c.dictSize }
