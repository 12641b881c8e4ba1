// Package textutil provides small text helpers shared across the pipeline:
// filename sanitization, camel-case summaries for generated filenames, and
// normalization of escaped newlines in CSV fields.
package textutil
