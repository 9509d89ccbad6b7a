// Package lang normalizes user-supplied language tokens and resolves
// them into a validated English/Japanese translation pair. When neither
// side is given it falls back to an injected language detector.
package lang
