// Package internal holds values shared by all NEKO-translate binaries.
package internal

// Version is the release version reported by --version.
const Version = "0.2.0"
