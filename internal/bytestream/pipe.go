// Package bytestream implements the in-memory byte stream handed to
// consumers of a relay. Unlike io.Pipe it buffers without bound, so the
// producer is paced by its own upstream read loop and never by downstream
// demand.
package bytestream

import (
	"bytes"
	"errors"
	"io"
	"sync"
)

// ErrConsumerClosed is returned from Write after the consumer closed the
// read side of the pipe.
var ErrConsumerClosed = errors.New("bytestream: consumer closed the stream")

// Pipe is a single-producer single-consumer byte stream. The producer
// writes with Write and terminates the stream with CloseWrite or
// CloseWithError; the consumer reads with Read and may abandon the stream
// with Close.
type Pipe struct {
	mu        sync.Mutex
	cond      *sync.Cond
	buf       bytes.Buffer
	werr      error // terminal status set by the producer, io.EOF on clean close
	cancelled bool  // set when the consumer closes the read side
}

func New() *Pipe {
	p := &Pipe{}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Closed returns a pipe that is already at end-of-input. Reads return
// io.EOF immediately.
func Closed() *Pipe {
	p := New()
	p.CloseWrite()
	return p
}

// Read blocks until data is available or the stream terminates. Once the
// buffer is drained it returns the producer's terminal status, or
// io.ErrClosedPipe if the consumer itself closed the stream.
func (p *Pipe) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for {
		if p.cancelled {
			return 0, io.ErrClosedPipe
		}
		if p.buf.Len() > 0 {
			return p.buf.Read(b)
		}
		if p.werr != nil {
			return 0, p.werr
		}
		p.cond.Wait()
	}
}

// Write appends data to the stream. It never blocks on the consumer.
func (p *Pipe) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancelled {
		return 0, ErrConsumerClosed
	}
	if p.werr != nil {
		return 0, io.ErrClosedPipe
	}

	n, _ := p.buf.Write(b) // bytes.Buffer.Write never fails
	p.cond.Broadcast()
	return n, nil
}

// CloseWrite marks a clean end of the stream. Pending buffered data stays
// readable; subsequent reads return io.EOF.
func (p *Pipe) CloseWrite() {
	p.closeWith(io.EOF)
}

// CloseWithError terminates the stream with err. A nil err behaves like
// CloseWrite. The first terminal status wins.
func (p *Pipe) CloseWithError(err error) {
	if err == nil {
		err = io.EOF
	}
	p.closeWith(err)
}

func (p *Pipe) closeWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.werr == nil {
		p.werr = err
	}
	p.cond.Broadcast()
}

// Close abandons the stream from the consumer side. Buffered data is
// dropped and future writes fail with ErrConsumerClosed.
func (p *Pipe) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cancelled = true
	p.buf.Reset()
	p.cond.Broadcast()
	return nil
}

// Cancelled reports whether the consumer closed the read side.
func (p *Pipe) Cancelled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancelled
}
