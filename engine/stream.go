package engine

import (
	"bytes"
	"errors"
	"io"
	"sync"
)

// ErrWriterClosed is returned when writing to, or closing, an already-closed Writer.
var ErrWriterClosed = errors.New("engine: writer is closed")

// Writer is an io.WriteCloser that accumulates written bytes and, on
// Close, compresses and encodes the whole stream to the underlying
// io.Writer. Unlike a block-framed format, this wire format has no
// container (per spec, no magic bytes, no length prefix, no multi-block
// framing), so there is no way to flush a useful prefix before the input
// is fully known — buffering until Close is the correct behavior here,
// not a shortcut.
type Writer struct {
	w      io.Writer
	codec  *Codec
	buf    bytes.Buffer
	mu     sync.Mutex
	closed bool
}

// NewWriter builds a Writer that compresses to w using c.
func NewWriter(w io.Writer, c *Codec) *Writer {
	return &Writer{w: w, codec: c}
}

// Write buffers p for compression at Close.
func (wr *Writer) Write(p []byte) (int, error) {
	wr.mu.Lock()
	defer wr.mu.Unlock()
	if wr.closed {
		return 0, ErrWriterClosed
	}
	return wr.buf.Write(p)
}

// Close compresses everything written so far and flushes it to the
// underlying writer. Close may only be called once.
func (wr *Writer) Close() error {
	wr.mu.Lock()
	defer wr.mu.Unlock()
	if wr.closed {
		return ErrWriterClosed
	}
	wr.closed = true

	tokens := Compress(wr.buf.Bytes(), wr.codec)
	encoded, err := Encode(tokens, wr.codec)
	if err != nil {
		return err
	}
	_, err = wr.w.Write(encoded)
	return err
}

// Reader is an io.Reader that decodes and decompresses an entire LZS
// stream from the underlying io.Reader on first Read.
type Reader struct {
	r     io.Reader
	codec *Codec

	mu       sync.Mutex
	out      []byte
	outPos   int
	prepared bool
	prepErr  error
}

// NewReader builds a Reader that decompresses from r using c.
func NewReader(r io.Reader, c *Codec) *Reader {
	return &Reader{r: r, codec: c}
}

func (rd *Reader) prepare() {
	if rd.prepared {
		return
	}
	rd.prepared = true

	raw, err := io.ReadAll(rd.r)
	if err != nil {
		rd.prepErr = err
		return
	}
	tokens, err := Decode(raw, rd.codec)
	if err != nil {
		rd.prepErr = err
		return
	}
	out, err := Decompress(tokens, rd.codec)
	if err != nil {
		rd.prepErr = err
		return
	}
	rd.out = out
}

// Read implements io.Reader.
func (rd *Reader) Read(p []byte) (int, error) {
	rd.mu.Lock()
	defer rd.mu.Unlock()

	rd.prepare()
	if rd.prepErr != nil {
		return 0, rd.prepErr
	}
	if rd.outPos >= len(rd.out) {
		return 0, io.EOF
	}
	n := copy(p, rd.out[rd.outPos:])
	rd.outPos += n
	return n, nil
}
