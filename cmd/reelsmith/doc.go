// Command reelsmith is the batch CLI: it enqueues stories and hooks from
// the CSV content tables, runs the render pipeline, and inspects the queue.
package main
