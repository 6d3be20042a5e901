// Package openai implements the provider plugin for OpenAI-compatible
// chat-completions endpoints (OpenAI itself, vLLM, DeepSeek, and other
// servers speaking the same SSE wire format). Events arrive as blank-line
// separated frames of "data:" lines; the stream ends with the "[DONE]"
// sentinel.
package openai
