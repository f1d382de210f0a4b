package engine

import (
	"bytes"
	"testing"

	"github.com/hbarrett/lzs/internal/lengthcodec"
	"github.com/hbarrett/lzs/internal/offsetcodec"
	"github.com/hbarrett/lzs/internal/token"
)

func roundTrip(t *testing.T, in []byte, c *Codec) []byte {
	t.Helper()
	tokens := Compress(in, c)
	encoded, err := Encode(tokens, c)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(encoded, c)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	out, err := Decompress(decoded, c)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	return out
}

// TestS1EmptyInput covers scenario S1: empty input encodes to an end
// marker only and decompresses back to empty.
func TestS1EmptyInput(t *testing.T) {
	c := Default()
	out := roundTrip(t, nil, c)
	if len(out) != 0 {
		t.Fatalf("out = %q, want empty", out)
	}
}

// TestS2SingleByte covers scenario S2.
func TestS2SingleByte(t *testing.T) {
	c := Default()
	in := []byte("a")
	tokens := Compress(in, c)
	if len(tokens) != 1 || tokens[0].Kind != token.Literal || tokens[0].Byte != 'a' {
		t.Fatalf("tokens = %+v, want single Literal('a')", tokens)
	}
	out := roundTrip(t, in, c)
	if !bytes.Equal(out, in) {
		t.Fatalf("out = %q, want %q", out, in)
	}
}

// TestS3RepeatedByte covers scenario S3: after the first literal, the
// remaining 7 'a' bytes are coded as a single Match since MAX_INITIAL_LEN=8
// is never reached by only 7 remaining repeats.
func TestS3RepeatedByte(t *testing.T) {
	c := Default()
	in := bytes.Repeat([]byte("a"), 8)
	tokens := Compress(in, c)
	if len(tokens) != 2 {
		t.Fatalf("tokens = %+v, want 2", tokens)
	}
	if tokens[0].Kind != token.Literal || tokens[0].Byte != 'a' {
		t.Fatalf("tokens[0] = %+v, want Literal('a')", tokens[0])
	}
	if tokens[1].Kind != token.Match || tokens[1].Offset != -1 || tokens[1].Length != 7 {
		t.Fatalf("tokens[1] = %+v, want Match(-1, 7)", tokens[1])
	}
	out := roundTrip(t, in, c)
	if !bytes.Equal(out, in) {
		t.Fatalf("out = %q, want %q", out, in)
	}
}

// TestS4SamIAm covers scenario S4: the repeated phrase compresses smaller
// than the input and round-trips exactly.
func TestS4SamIAm(t *testing.T) {
	c := Default()
	in := []byte("That Sam-I-am, that Sam-I-am, I do not like that Sam-I-am.")
	tokens := Compress(in, c)
	encoded, err := Encode(tokens, c)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(encoded) >= len(in) {
		t.Fatalf("encoded length %d not smaller than input length %d", len(encoded), len(in))
	}
	out := roundTrip(t, in, c)
	if !bytes.Equal(out, in) {
		t.Fatalf("out = %q, want %q", out, in)
	}
}

// TestS5LongRunNeedsContinuation covers scenario S5: a 20-byte repeat (20 >
// MAX_INITIAL_LEN=8) must be coded as a match plus at least one
// continuation field.
func TestS5LongRunNeedsContinuation(t *testing.T) {
	c := Default()
	prefix := []byte("0123456789")
	in := append(append([]byte{}, prefix...), bytes.Repeat([]byte("0"), 20)...)

	tokens := Compress(in, c)
	sawContinuation := false
	for _, tok := range tokens {
		if tok.Kind == token.Continuation {
			sawContinuation = true
		}
	}
	if !sawContinuation {
		t.Fatalf("tokens = %+v, want at least one Continuation", tokens)
	}
	out := roundTrip(t, in, c)
	if !bytes.Equal(out, in) {
		t.Fatalf("out mismatch: got %d bytes, want %d", len(out), len(in))
	}
}

// TestS6WindowBound covers scenario S6: every Match offset stays within
// MAX_OFFSET and every source position precedes the producer's cursor.
func TestS6WindowBound(t *testing.T) {
	c := Default()
	in := make([]byte, 4096)
	seed := uint32(12345)
	for i := range in {
		seed = seed*1664525 + 1013904223
		in[i] = byte(seed >> 24)
		if i%37 == 0 {
			in[i] = 'x' // inject local repetition
		}
	}

	tokens := Compress(in, c)
	pos := 0
	for _, tok := range tokens {
		switch tok.Kind {
		case token.Literal:
			pos++
		case token.Match:
			if -tok.Offset > c.Offset.MaxOffset() {
				t.Fatalf("Match offset %d exceeds MaxOffset %d", -tok.Offset, c.Offset.MaxOffset())
			}
			sourcePos := pos + tok.Offset
			if sourcePos < 0 || sourcePos >= pos {
				t.Fatalf("Match source position %d not strictly before cursor %d", sourcePos, pos)
			}
			pos += tok.Length
		case token.Continuation:
			pos += tok.Length
		}
	}

	out := roundTrip(t, in, c)
	if !bytes.Equal(out, in) {
		t.Fatalf("round trip mismatch over %d bytes", len(in))
	}
}

// TestS7SelfOverlapRLE covers the self-overlap-correctness property:
// decompress([Match(-1, l)]) after one literal byte b yields b repeated l+1 times.
func TestS7SelfOverlapRLE(t *testing.T) {
	c := Default()
	tokens := []token.Token{
		token.NewLiteral('b'),
		token.NewMatch(-1, 5),
	}
	out, err := Decompress(tokens, c)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	want := bytes.Repeat([]byte("b"), 6)
	if !bytes.Equal(out, want) {
		t.Fatalf("out = %q, want %q", out, want)
	}
}

func TestEndMarkerEncodesAsMatchOfEndMarker(t *testing.T) {
	c := Default()
	encoded, err := Encode(nil, c)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(encoded) != 2 {
		t.Fatalf("encoded = %v, want 2 bytes (9 content bits padded to 16)", encoded)
	}
	// tag=1, short-offset tag=1, 7 zero bits, then zero padding.
	if encoded[0] != 0b11000000 || encoded[1] != 0 {
		t.Fatalf("encoded = %08b %08b, want 11000000 00000000", encoded[0], encoded[1])
	}
}

func TestDecodeSeqIsFiniteSinglePass(t *testing.T) {
	c := Default()
	in := []byte("abababababab")
	tokens := Compress(in, c)
	encoded, err := Encode(tokens, c)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	next := DecodeSeq(encoded, c)
	var got []token.Token
	for {
		tok, ok, err := next()
		if err != nil {
			t.Fatalf("DecodeSeq: %v", err)
		}
		if !ok {
			break
		}
		got = append(got, tok)
	}
	if len(got) != len(tokens) {
		t.Fatalf("DecodeSeq produced %d tokens, want %d", len(got), len(tokens))
	}
}

func TestDecompressSeqMatchesDecompress(t *testing.T) {
	c := Default()
	in := []byte("mississippi mississippi mississippi")
	tokens := Compress(in, c)

	next := DecompressSeq(tokens, c)
	var gotBytes []byte
	for {
		b, ok, err := next()
		if err != nil {
			t.Fatalf("DecompressSeq: %v", err)
		}
		if !ok {
			break
		}
		gotBytes = append(gotBytes, b)
	}
	if !bytes.Equal(gotBytes, in) {
		t.Fatalf("DecompressSeq = %q, want %q", gotBytes, in)
	}
}

func TestOffsetTooLargeIsFatalDuringEncode(t *testing.T) {
	c := New(offsetcodec.NewFlat(4), Default().Length)
	tokens := []token.Token{token.NewMatch(-100, 4)}
	if _, err := Encode(tokens, c); err != offsetcodec.ErrOffsetTooLarge {
		t.Fatalf("Encode error = %v, want ErrOffsetTooLarge", err)
	}
}

func TestDecodeOfEmptyInputYieldsNoTokens(t *testing.T) {
	c := Default()
	tokens, err := Decode(nil, c)
	if err != nil {
		t.Fatalf("Decode(nil) = %v, want nil (zero tokens)", err)
	}
	if len(tokens) != 0 {
		t.Fatalf("Decode(nil) = %+v, want no tokens", tokens)
	}
}

// TestMalformedStreamOnTruncatedMatchField covers spec §7: a match tag
// followed by a long-offset selector with too few trailing bits must fail
// with ErrMalformedStream, not a panic or a silently wrong offset.
func TestMalformedStreamOnTruncatedMatchField(t *testing.T) {
	c := Default()
	// tag=1 (match), offset tag=0 (long field, needs 11 more bits), but
	// only 6 bits remain in this single byte and no further bytes follow.
	_, err := Decode([]byte{0b10000000}, c)
	if err != ErrMalformedStream {
		t.Fatalf("Decode error = %v, want ErrMalformedStream", err)
	}
}

// TestMalformedStreamOnOutOfWindowCursor covers spec §7: a Match token
// whose cursor falls outside the (empty) history buffer must fail with
// ErrMalformedStream during reconstruction.
func TestMalformedStreamOnOutOfWindowCursor(t *testing.T) {
	c := Default()
	tokens := []token.Token{token.NewMatch(-1, 1)}
	if _, err := Decompress(tokens, c); err != ErrMalformedStream {
		t.Fatalf("Decompress error = %v, want ErrMalformedStream", err)
	}
}

// TestMatchDictEvictsStaleOffsetAtMaxOffsetBoundary covers spec §8
// property 5: a fragment's only prior occurrence at exactly distance
// MaxOffset+1 must not be returned by find — it has to have been evicted
// by the time the window has slid that far, or the encoder would be asked
// to encode an offset one past what the codec can express.
func TestMatchDictEvictsStaleOffsetAtMaxOffsetBoundary(t *testing.T) {
	const maxOffset = 2047
	dict := newMatchDict(2, 8, maxOffset)

	in := make([]byte, maxOffset+64)
	in[0], in[1] = 'A', 'B'
	in[maxOffset+1], in[maxOffset+2] = 'A', 'B'

	for pos := 0; pos <= maxOffset; pos++ {
		dict.add(in, pos)
	}

	if _, _, found := dict.find(in, maxOffset+1); found {
		t.Fatalf("find at distance %d returned a stale match; offset 0 should have been evicted", maxOffset+1)
	}
}

// TestCompressNeverEmitsOffsetBeyondMaxOffset exercises the same boundary
// end to end through Compress/Encode: a fragment repeating at exactly
// MaxOffset+1 must fall back to a Literal, not a Match the active offset
// codec can't encode (spec §8 property 5).
func TestCompressNeverEmitsOffsetBeyondMaxOffset(t *testing.T) {
	c := New(offsetcodec.NewFlat(4), lengthcodec.Codebook1()) // MaxOffset = 15
	maxOffset := c.Offset.MaxOffset()

	// second "AB" lands exactly maxOffset+1 bytes after the first.
	fillerLen := maxOffset - 1
	in := make([]byte, 0, 2+fillerLen+2)
	in = append(in, 'A', 'B')
	for i := 0; i < fillerLen; i++ {
		in = append(in, byte(i+1)) // strictly distinct filler, no incidental repeats
	}
	in = append(in, 'A', 'B')

	tokens := Compress(in, c)
	for _, tok := range tokens {
		if tok.Kind == token.Match && -tok.Offset > maxOffset {
			t.Fatalf("Match offset %d exceeds MaxOffset %d", -tok.Offset, maxOffset)
		}
	}

	encoded, err := Encode(tokens, c)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(encoded, c)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	out, err := Decompress(decoded, c)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(out), len(in))
	}
}
