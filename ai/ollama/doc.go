// Package ollama implements ai.Completer against a native Ollama server.
package ollama
