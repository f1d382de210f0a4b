// Package token defines the tagged token stream that sits between the
// compressor's match finder and the bitstream emitter, and between the
// bitstream parser and the sliding-window reconstructor.
package token

// Kind distinguishes the three token variants.
type Kind int

const (
	// Literal carries one uncoded source byte.
	Literal Kind = iota
	// Match is a back-reference: Offset is strictly negative, Length is in
	// [codec.MinInitialLen, codec.MaxInitialLen].
	Match
	// Continuation extends the immediately preceding Match or Continuation
	// whose length saturated the codec's MaxInitialLen/MaxContinuedLen.
	Continuation
)

// Token is a single emitted/parsed unit of the compressed stream.
type Token struct {
	Kind   Kind
	Byte   byte // valid when Kind == Literal
	Offset int  // valid when Kind == Match; always < 0
	Length int  // valid when Kind == Match or Kind == Continuation
}

// NewLiteral builds a Literal token.
func NewLiteral(b byte) Token {
	return Token{Kind: Literal, Byte: b}
}

// NewMatch builds a Match token. offset must be negative.
func NewMatch(offset, length int) Token {
	return Token{Kind: Match, Offset: offset, Length: length}
}

// NewContinuation builds a Continuation token.
func NewContinuation(length int) Token {
	return Token{Kind: Continuation, Length: length}
}
