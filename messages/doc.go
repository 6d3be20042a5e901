// Package messages defines the lifecycle message value handed to stream
// hooks. A message is immutable once constructed: the engine builds a fresh
// one for every hook invocation and never reuses or mutates it.
//
// Messages carry:
//   - Role: who the content belongs to (system, user, assistant)
//   - Content: the text (a single increment for partials, the full
//     aggregate for completions)
//   - Sender: optional origin label supplied by the caller
//   - RunID: the stream instance this message belongs to
//   - Timestamp: when the message was constructed
package messages
