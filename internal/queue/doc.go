// Package queue persists render jobs in SQLite. Each item is one video to
// produce (a narrated story or a hook+CTA reel) and carries its content
// fields, its stage artifacts, and its lifecycle status. The store is safe
// for concurrent use and retries on SQLITE_BUSY.
package queue
