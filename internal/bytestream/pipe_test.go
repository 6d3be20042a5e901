package bytestream

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipe_WriteNeverBlocks(t *testing.T) {
	p := New()

	// nobody is reading, every write must still return
	for range 1000 {
		n, err := p.Write([]byte("0123456789abcdef"))
		require.NoError(t, err)
		require.Equal(t, 16, n)
	}
	p.CloseWrite()

	data, err := io.ReadAll(p)
	require.NoError(t, err)
	assert.Len(t, data, 16000)
}

func TestPipe_ReadBlocksUntilWrite(t *testing.T) {
	p := New()

	got := make(chan string, 1)
	go func() {
		data, _ := io.ReadAll(p)
		got <- string(data)
	}()

	_, err := p.Write([]byte("hello"))
	require.NoError(t, err)
	p.CloseWrite()

	select {
	case data := <-got:
		assert.Equal(t, "hello", data)
	case <-time.After(2 * time.Second):
		t.Fatal("read did not complete")
	}
}

func TestPipe_CloseWithErrorAfterDrain(t *testing.T) {
	p := New()
	_, err := p.Write([]byte("partial"))
	require.NoError(t, err)
	p.CloseWithError(io.ErrUnexpectedEOF)

	data := make([]byte, 32)
	n, err := p.Read(data)
	require.NoError(t, err)
	assert.Equal(t, "partial", string(data[:n]))

	_, err = p.Read(data)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestPipe_CloseWithNilError(t *testing.T) {
	p := New()
	p.CloseWithError(nil)

	_, err := p.Read(make([]byte, 1))
	assert.ErrorIs(t, err, io.EOF)
}

func TestPipe_FirstTerminalStatusWins(t *testing.T) {
	p := New()
	p.CloseWrite()
	p.CloseWithError(io.ErrUnexpectedEOF)

	_, err := p.Read(make([]byte, 1))
	assert.ErrorIs(t, err, io.EOF)
}

func TestClosed_ImmediateEOF(t *testing.T) {
	p := Closed()

	data, err := io.ReadAll(p)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestPipe_ConsumerClose(t *testing.T) {
	p := New()
	_, err := p.Write([]byte("discarded"))
	require.NoError(t, err)

	require.NoError(t, p.Close())
	assert.True(t, p.Cancelled())

	_, err = p.Write([]byte("more"))
	assert.ErrorIs(t, err, ErrConsumerClosed)

	_, err = p.Read(make([]byte, 4))
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestPipe_LargePayloadRoundTrip(t *testing.T) {
	p := New()
	payload := strings.Repeat("streaming bytes ", 4096)

	go func() {
		for i := 0; i < len(payload); i += 1024 {
			end := min(i+1024, len(payload))
			if _, err := p.Write([]byte(payload[i:end])); err != nil {
				p.CloseWithError(err)
				return
			}
		}
		p.CloseWrite()
	}()

	data, err := io.ReadAll(p)
	require.NoError(t, err)
	assert.Equal(t, payload, string(data))
}
