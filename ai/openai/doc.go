// Package openai implements ai.Completer against OpenAI and
// OpenAI-compatible chat APIs (Ollama's /v1 endpoint, LocalAI, vLLM).
package openai
