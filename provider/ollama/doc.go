// Package ollama implements the provider plugin for a local Ollama server.
// Unlike SSE providers, Ollama streams newline-delimited JSON: one event per
// line, completion signaled by a "done":true field instead of a sentinel
// line.
package ollama
