// Package ai defines the language-model provider abstraction used by
// query routing. The Completer interface is the single seam between
// domain agents and a concrete backend; swapping backends is a
// configuration change, not a code change.
//
// Concrete clients live in the openai and ollama subpackages, and the
// mock subpackage provides a test double. NewCompleter wires the
// configured backend behind per-call timeouts and bounded retry.
package ai
