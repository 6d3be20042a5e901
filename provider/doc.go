// Package provider defines the contract between the stream relay engine and
// provider-specific adapters (OpenAI-compatible servers, Ollama, etc.). The
// engine depends on adapters only through the Plugin interface; everything
// wire-format specific lives behind it.
//
// Design decisions:
//   - Framing before parsing: a plugin exposes a single event delimiter, so
//     the engine can split the raw byte stream into frames without knowing
//     the provider's payload shape
//   - Parse never fails: ParseEvent maps a line to text, the completion
//     sentinel, or nothing; malformed input is silently "nothing" so a bad
//     line can never abort a stream
//   - Preparation owns the transport: PrepareRequest performs the network
//     call and hands back the raw response body, keeping retries, auth and
//     TLS out of the engine
//   - Debug selection is data, not control flow: DebugConfig only gates
//     trace logging and never changes what the engine does
package provider
