package lengthcodec

import (
	"testing"

	"github.com/hbarrett/lzs/internal/bitqueue"
)

func allCodebooks() map[string]*Codebook {
	return map[string]*Codebook{
		"1": Codebook1(),
		"2": Codebook2(),
		"3": Codebook3(),
		"4": Codebook4(),
		"5": Codebook5(),
		"6": Codebook6(),
		"7": Codebook7(),
		"8": Codebook8(),
	}
}

// TestCodebookBijectivity checks that every length in range round-trips,
// and that every 4-bit extension of
// an encoded value decodes to the same length with the same consumed width.
func TestCodebookBijectivity(t *testing.T) {
	for name, cb := range allCodebooks() {
		cb := cb
		t.Run(name, func(t *testing.T) {
			for l := cb.MinInitialLen; l <= cb.MaxInitialLen; l++ {
				enc, err := cb.Encode(l)
				if err != nil {
					t.Fatalf("Encode(%d): %v", l, err)
				}
				// Every 4-bit extension of the encoded value must decode the same way.
				for ext := uint32(0); ext < (1 << (4 - enc.Width)); ext++ {
					padded := bitqueue.MustNew(enc.Value, enc.Width)
					if enc.Width < 4 {
						_ = padded.Append(bitqueue.MustNew(ext, 4-enc.Width))
					}
					q := padded
					got, err := cb.Decode(&q)
					if err != nil {
						t.Fatalf("Decode after Encode(%d) ext=%d: %v", l, ext, err)
					}
					if got != l {
						t.Fatalf("Decode = %d, want %d (ext=%d)", got, l, ext)
					}
					if q.Width != padded.Width-enc.Width {
						t.Fatalf("consumed width mismatch for length %d", l)
					}
				}
			}
		})
	}
}

func TestEncodeRejectsOutOfRange(t *testing.T) {
	cb := Codebook1()
	if _, err := cb.Encode(cb.MaxInitialLen + 1); err != ErrUnrecognizedLength {
		t.Fatalf("Encode error = %v, want ErrUnrecognizedLength", err)
	}
}

func TestContinuationRoundTrip(t *testing.T) {
	for l := 0; l <= 15; l++ {
		q, err := EncodeContinuation(l)
		if err != nil {
			t.Fatalf("EncodeContinuation(%d): %v", l, err)
		}
		got, err := DecodeContinuation(&q)
		if err != nil {
			t.Fatalf("DecodeContinuation: %v", err)
		}
		if got != l {
			t.Fatalf("round trip = %d, want %d", got, l)
		}
	}
}

func TestCodebook8HasNoContinuation(t *testing.T) {
	cb := Codebook8()
	if cb.MaxContinuedLen != nil {
		t.Fatalf("Codebook8 MaxContinuedLen = %v, want nil", *cb.MaxContinuedLen)
	}
}
