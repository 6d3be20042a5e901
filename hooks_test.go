package sluice

import (
	"errors"
	"testing"

	"github.com/casualjim/sluice/messages"
	"github.com/stretchr/testify/assert"
)

func TestHooks_NilCallbacksAreNoOps(t *testing.T) {
	var h Hooks
	msg := messages.Message{Role: messages.Assistant, Content: "x"}

	assert.NotPanics(t, func() {
		h.system(msg)
		h.user(msg)
		h.partial(msg)
		h.done(msg)
		h.fail(errors.New("boom"), msg)
	})
}

func TestHooks_DispatchesToCallbacks(t *testing.T) {
	var got []string
	h := Hooks{
		OnSystemMessage: func(m messages.Message) { got = append(got, "system:"+m.Content) },
		OnUserMessage:   func(m messages.Message) { got = append(got, "user:"+m.Content) },
		OnPartial:       func(m messages.Message) { got = append(got, "partial:"+m.Content) },
		OnDone:          func(m messages.Message) { got = append(got, "done:"+m.Content) },
		OnError: func(err error, m messages.Message) {
			got = append(got, "error:"+err.Error()+":"+m.Content)
		},
	}

	h.system(messages.Message{Content: "s"})
	h.user(messages.Message{Content: "u"})
	h.partial(messages.Message{Content: "p"})
	h.done(messages.Message{Content: "d"})
	h.fail(errors.New("e"), messages.Message{Content: "agg"})

	assert.Equal(t, []string{"system:s", "user:u", "partial:p", "done:d", "error:e:agg"}, got)
}
