// Package processor contains the translation pipeline. It reads the
// input text, resolves the language pair, renders the instruction
// prompt and hands it to the configured inference engine. This package
// serves as the main coordinator between all other components.
package processor
