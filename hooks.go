package sluice

import "github.com/casualjim/sluice/messages"

// Hooks bundles the optional lifecycle callbacks for one stream instance.
// Every field may be nil; a nil callback is a no-op, never an error. The
// engine invokes hooks synchronously from its read loop, so they should
// return quickly.
type Hooks struct {
	// OnSystemMessage fires once, before any bytes are read, when the
	// request carries a system prompt.
	OnSystemMessage func(messages.Message)

	// OnUserMessage fires once, before any bytes are read.
	OnUserMessage func(messages.Message)

	// OnPartial fires for each extracted text increment. The message
	// content is the increment only, not the running aggregate.
	OnPartial func(messages.Message)

	// OnDone fires once on completion with the full aggregate.
	OnDone func(messages.Message)

	// OnError fires once on failure with the aggregate accumulated so far.
	OnError func(error, messages.Message)
}

func (h Hooks) system(m messages.Message) {
	if h.OnSystemMessage != nil {
		h.OnSystemMessage(m)
	}
}

func (h Hooks) user(m messages.Message) {
	if h.OnUserMessage != nil {
		h.OnUserMessage(m)
	}
}

func (h Hooks) partial(m messages.Message) {
	if h.OnPartial != nil {
		h.OnPartial(m)
	}
}

func (h Hooks) done(m messages.Message) {
	if h.OnDone != nil {
		h.OnDone(m)
	}
}

func (h Hooks) fail(err error, m messages.Message) {
	if h.OnError != nil {
		h.OnError(err, m)
	}
}
