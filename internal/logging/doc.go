// Package logging configures log/slog for the CLI and the workflow runner.
// It provides a console handler that prints one line per record with
// key=value attributes, a JSON handler for machine-readable output, typed
// attribute constructors, and helpers that derive standard fields
// (component, item_id, stage, correlation_id) from a context.
package logging
