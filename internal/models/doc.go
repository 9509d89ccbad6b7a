// Package models lists the models served by the configured
// OpenAI-compatible inference server, backing the --list-models flag.
package models
