/*
Package sluice relays incremental text-generation streams. It takes the raw
event stream a provider emits over a live HTTP response (Server-Sent-Events
style or newline-delimited JSON), reassembles it across chunk boundaries,
and republishes it as a clean stream of text tokens plus lifecycle hook
invocations.

The engine is provider-agnostic: everything wire-format specific hides
behind the provider.Plugin contract, so adding a vendor means implementing
three capabilities (a framing delimiter, request preparation, and per-line
parsing) and nothing else.

# Basic usage

	plugin, err := openai.New()
	if err != nil {
		// Handle error
	}

	out := sluice.Stream(ctx, plugin, "Tell me a joke", sluice.Hooks{
		OnPartial: func(m messages.Message) { fmt.Print(m.Content) },
		OnDone:    func(m messages.Message) { fmt.Println() },
		OnError:   func(err error, m messages.Message) { log.Println(err) },
	}, sluice.WithModel("gpt-4o-mini"))
	defer out.Close()

The returned stream carries the same extracted text as the OnPartial hooks,
re-encoded as UTF-8 bytes. Consumers that only care about hooks can ignore
it; consumers that only care about bytes can pass zero hooks.

# Lifecycle

A stream instance moves through Preparing, Streaming, and exactly one of
Completed or Errored. Callers observe either a run of OnPartial calls
followed by one OnDone, or one OnError; the engine itself never returns an
error and never panics on malformed provider data.
*/
package sluice
