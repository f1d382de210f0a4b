// Package lzs provides a sliding-window lossless byte-stream compressor
// and decompressor in the LZ77 family, parameterized by a pluggable
// offset codec and length codec. It targets embedded-class environments:
// a small, deterministic memory footprint and byte-oriented streaming,
// with no reliance on dynamic allocation beyond the bounded sliding window
// the active codec pair implies.
package lzs

import (
	"io"

	"github.com/hbarrett/lzs/engine"
	"github.com/hbarrett/lzs/internal/lengthcodec"
	"github.com/hbarrett/lzs/internal/offsetcodec"
	"github.com/hbarrett/lzs/internal/token"
)

// Version identifies this module's wire-format generation. Not part of the
// stream itself — the format carries no magic bytes or version field; the
// codec pair used to encode must be known out of band by the decoder.
const Version = "1.0.0"

// TokenKind mirrors the internal token.Kind so callers working with a
// Token slice don't need to import the internal package.
type TokenKind = token.Kind

// Token kinds.
const (
	Literal      = token.Literal
	Match        = token.Match
	Continuation = token.Continuation
)

// Token is one unit of the compressed token stream.
type Token = token.Token

// Codec bundles an offset codec and a length codec — the pair a
// Compress/Decompress call is parameterized by.
type Codec = engine.Codec

// DefaultCodec returns the reference configuration: the split(7,11)
// offset codec and length codebook 1.
func DefaultCodec() *Codec {
	return engine.Default()
}

// NewSplitOffsetCodec builds the two-field offset codec: a 1-bit tag
// selects a ShortBits-wide or LongBits-wide fixed field.
// shortBits must be in [1,15], longBits in [shortBits+1,15].
func NewSplitOffsetCodec(shortBits, longBits uint) offsetcodec.Codec {
	return offsetcodec.NewSplit(shortBits, longBits)
}

// NewDenseSplitOffsetCodec is NewSplitOffsetCodec's variant that biases
// long offsets by the short field's range, extending MaxOffset without
// adding codepoints.
func NewDenseSplitOffsetCodec(shortBits, longBits uint) offsetcodec.Codec {
	return offsetcodec.NewSplitDense(shortBits, longBits)
}

// NewFlatOffsetCodec builds a fixed-width offset codec with no tag bit.
// numBits must be in [1,16].
func NewFlatOffsetCodec(numBits uint) offsetcodec.Codec {
	return offsetcodec.NewFlat(numBits)
}

// LengthCodebook selects one of the eight static length prefix codes.
type LengthCodebook int

// Recognized length codebooks; MAX_INITIAL_LEN and MIN_INITIAL_LEN per
// codebook are documented on the functions in internal/lengthcodec.
const (
	Codebook1 LengthCodebook = 1 + iota
	Codebook2
	Codebook3
	Codebook4
	Codebook5
	Codebook6
	Codebook7
	Codebook8
)

var codebookCtors = map[LengthCodebook]func() *lengthcodec.Codebook{
	Codebook1: lengthcodec.Codebook1,
	Codebook2: lengthcodec.Codebook2,
	Codebook3: lengthcodec.Codebook3,
	Codebook4: lengthcodec.Codebook4,
	Codebook5: lengthcodec.Codebook5,
	Codebook6: lengthcodec.Codebook6,
	Codebook7: lengthcodec.Codebook7,
	Codebook8: lengthcodec.Codebook8,
}

// NewLengthCodec builds one of the eight fixed codebooks. It panics if
// book is not a recognized codebook constant — that is a wiring mistake,
// not a runtime condition.
func NewLengthCodec(book LengthCodebook) *lengthcodec.Codebook {
	ctor, ok := codebookCtors[book]
	if !ok {
		panic("lzs: unrecognized length codebook")
	}
	return ctor()
}

// NewCodec bundles an offset codec and length codec into a Codec.
func NewCodec(offset offsetcodec.Codec, length *lengthcodec.Codebook) *Codec {
	return engine.New(offset, length)
}

// Compress runs the greedy match finder over in and returns the resulting
// token stream, using c (or the default codec pair if c is nil).
func Compress(in []byte, c *Codec) []Token {
	return engine.Compress(in, withDefault(c))
}

// Encode serializes a token stream into the packed bitstream.
func Encode(tokens []Token, c *Codec) ([]byte, error) {
	return engine.Encode(tokens, withDefault(c))
}

// Decode parses a packed bitstream back into a token stream.
func Decode(data []byte, c *Codec) ([]Token, error) {
	return engine.Decode(data, withDefault(c))
}

// Decompress replays a token stream against a sliding history buffer and
// returns the reconstructed bytes.
func Decompress(tokens []Token, c *Codec) ([]byte, error) {
	return engine.Decompress(tokens, withDefault(c))
}

// GenDecode returns a finite, single-pass iterator over the tokens encoded
// in data: each call returns the next token, or ok=false once exhausted.
func GenDecode(data []byte, c *Codec) func() (Token, bool, error) {
	return engine.DecodeSeq(data, withDefault(c))
}

// GenDecompress returns a finite, single-pass iterator producing the
// reconstructed bytes of tokens one at a time, in exact output order.
func GenDecompress(tokens []Token, c *Codec) func() (byte, bool, error) {
	return engine.DecompressSeq(tokens, withDefault(c))
}

// CompressToBytes is the common-case convenience wrapper: compress,
// encode, and return the packed bitstream in one call.
func CompressToBytes(in []byte, c *Codec) ([]byte, error) {
	return Encode(Compress(in, c), c)
}

// DecompressBytes is CompressToBytes's inverse: parse and reconstruct a
// packed bitstream in one call.
func DecompressBytes(data []byte, c *Codec) ([]byte, error) {
	tokens, err := Decode(data, withDefault(c))
	if err != nil {
		return nil, err
	}
	return Decompress(tokens, withDefault(c))
}

// ErrWriterClosed is returned when writing to, or closing, an
// already-closed Writer.
var ErrWriterClosed = engine.ErrWriterClosed

// Reader is an io.Reader that decompresses an entire LZS stream read from
// the underlying reader.
type Reader struct{ r *engine.Reader }

// NewReader builds a Reader decompressing from r with codec c (or the
// default codec pair if c is nil).
func NewReader(r io.Reader, c *Codec) *Reader {
	return &Reader{r: engine.NewReader(r, withDefault(c))}
}

// Read implements io.Reader.
func (rd *Reader) Read(p []byte) (int, error) { return rd.r.Read(p) }

// Writer is an io.WriteCloser that compresses everything written to it and
// flushes the encoded bitstream to the underlying writer on Close.
type Writer struct{ w *engine.Writer }

// NewWriter builds a Writer compressing to w with codec c (or the default
// codec pair if c is nil).
func NewWriter(w io.Writer, c *Codec) *Writer {
	return &Writer{w: engine.NewWriter(w, withDefault(c))}
}

// Write implements io.Writer.
func (wr *Writer) Write(p []byte) (int, error) { return wr.w.Write(p) }

// Close implements io.Closer.
func (wr *Writer) Close() error { return wr.w.Close() }

func withDefault(c *Codec) *Codec {
	if c == nil {
		return DefaultCodec()
	}
	return c
}
