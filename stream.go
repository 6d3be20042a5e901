package sluice

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/casualjim/sluice/internal/bytestream"
	"github.com/casualjim/sluice/messages"
	"github.com/casualjim/sluice/pkg/slogx"
	"github.com/casualjim/sluice/pkg/uuidx"
	"github.com/casualjim/sluice/provider"
	"github.com/fogfish/opts"
	"github.com/go-openapi/strfmt"
)

const (
	readChunkSize    = 4096
	defaultDelimiter = "\n\n"
)

// Stream opens one stream instance against the given plugin and returns the
// outbound byte stream of extracted text. Lifecycle milestones are reported
// through hooks; the function itself never returns an error. When request
// preparation fails the returned stream is already closed and empty, and
// the failure is reported through OnError.
//
// The outbound stream buffers without bound: the engine is paced by its
// upstream read loop, not by downstream demand. Closing the returned stream
// abandons the instance; the engine then releases the upstream body and
// stops invoking hooks.
func Stream(ctx context.Context, plugin provider.Plugin, prompt string, hooks Hooks, options ...opts.Option[provider.CompletionParams]) io.ReadCloser {
	params := provider.CompletionParams{
		RunID:  uuidx.New(),
		Prompt: prompt,
	}
	if err := opts.Apply(&params, options); err != nil {
		hooks.fail(err, assistantMessage(params, ""))
		return bytestream.Closed()
	}

	body, err := plugin.PrepareRequest(ctx, params)
	if err != nil {
		slog.ErrorContext(ctx, "request preparation failed",
			slogx.Error(err), slogx.Stringer("run_id", params.RunID))
		hooks.fail(err, assistantMessage(params, ""))
		return bytestream.Closed()
	}

	if params.Instructions != "" {
		hooks.system(roleMessage(params, messages.System, params.Instructions))
	}
	hooks.user(roleMessage(params, messages.User, params.Prompt))

	delim := plugin.Delimiter()
	if delim == "" {
		delim = defaultDelimiter
	}

	s := &session{
		plugin: plugin,
		params: params,
		hooks:  hooks,
		body:   body,
		delim:  []byte(delim),
		out:    bytestream.New(),
	}
	go s.run(ctx)
	return s.out
}

// session holds the mutable state of one stream instance. It is owned by a
// single goroutine and never shared across instances.
type session struct {
	plugin provider.Plugin
	params provider.CompletionParams
	hooks  Hooks
	body   io.ReadCloser
	out    *bytestream.Pipe
	delim  []byte

	// buf holds unconsumed trailing bytes that are not yet known to form a
	// complete frame. Keeping it as raw bytes means a delimiter or a
	// multi-byte character split across chunk boundaries simply waits here
	// for the next read.
	buf  []byte
	full strings.Builder
}

// frameResult tells the read loop what to do after a frame was handled.
type frameResult uint8

const (
	frameContinue frameResult = iota
	frameDone
	frameAbort
)

func (s *session) run(ctx context.Context) {
	defer func() { _ = s.body.Close() }()

	chunk := make([]byte, readChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			s.fail(ctx, err)
			return
		}
		if s.out.Cancelled() {
			s.trace(ctx, "consumer closed outbound stream, releasing upstream")
			return
		}

		n, err := s.body.Read(chunk)
		if n > 0 {
			s.buf = append(s.buf, chunk[:n]...)
			if res := s.drain(ctx); res != frameContinue {
				return
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			s.fail(ctx, err)
			return
		}
	}

	// end of input without a DONE sentinel: the residue is one last frame
	if rest := strings.TrimSpace(string(s.buf)); rest != "" {
		s.buf = nil
		if res := s.processFrame(ctx, rest); res != frameContinue {
			return
		}
	}

	s.hooks.done(assistantMessage(s.params, s.full.String()))
	s.out.CloseWrite()
}

// drain extracts every complete frame from buf and processes it in arrival
// order. The trailing fragment stays in buf: it may still be completed, or
// even contain the first half of a delimiter.
func (s *session) drain(ctx context.Context) frameResult {
	parts := bytes.Split(s.buf, s.delim)
	if len(parts) == 1 {
		return frameContinue
	}
	s.buf = append([]byte(nil), parts[len(parts)-1]...)

	for _, raw := range parts[:len(parts)-1] {
		frame := strings.TrimSpace(string(raw))
		if frame == "" {
			continue
		}
		if res := s.processFrame(ctx, frame); res != frameContinue {
			return res
		}
	}
	return frameContinue
}

func (s *session) processFrame(ctx context.Context, frame string) frameResult {
	s.trace(ctx, "processing frame", slog.String("frame", frame))

	if perr := sniffPayloadError(frame); perr != nil {
		s.fail(ctx, perr)
		return frameAbort
	}

	var event strings.Builder
	for _, line := range strings.Split(frame, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}

		parsed := s.plugin.ParseEvent(line)
		switch parsed.Kind {
		case provider.ParseDone:
			// the sentinel wins: text parsed from earlier lines of this
			// frame is discarded
			s.hooks.done(assistantMessage(s.params, s.full.String()))
			s.out.CloseWrite()
			return frameDone
		case provider.ParseText:
			event.WriteString(parsed.Text)
		}
	}

	if event.Len() == 0 {
		return frameContinue
	}

	text := event.String()
	s.full.WriteString(text)
	if _, err := s.out.Write([]byte(text)); err != nil {
		s.trace(ctx, "outbound stream gone, releasing upstream", slogx.Error(err))
		return frameAbort
	}
	s.hooks.partial(assistantMessage(s.params, text))
	return frameContinue
}

func (s *session) fail(ctx context.Context, err error) {
	s.trace(ctx, "stream failed", slogx.Error(err))
	s.out.CloseWithError(err)
	s.hooks.fail(err, assistantMessage(s.params, s.full.String()))
}

func (s *session) trace(ctx context.Context, msg string, attrs ...slog.Attr) {
	if !s.params.Debug.Enabled(provider.DebugSSE) {
		return
	}
	attrs = append(attrs, slogx.Stringer("run_id", s.params.RunID))
	slog.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

func roleMessage(params provider.CompletionParams, role messages.Role, content string) messages.Message {
	return messages.Message{
		Role:      role,
		Content:   content,
		Sender:    params.Sender,
		RunID:     params.RunID,
		Timestamp: strfmt.DateTime(time.Now()),
	}
}

func assistantMessage(params provider.CompletionParams, content string) messages.Message {
	return messages.Message{
		Role:      messages.Assistant,
		Content:   content,
		RunID:     params.RunID,
		Timestamp: strfmt.DateTime(time.Now()),
	}
}
