// Package workflow runs the batch pipeline: it claims queue items, advances
// them through the plan, voice, render, and organize stages, and records
// per-item failures without stopping the batch.
package workflow
