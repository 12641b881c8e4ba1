// Package services holds cross-cutting helpers shared by workflow stages:
// the sentinel error taxonomy used to classify stage failures, and context
// annotations that thread item/stage/correlation identity into structured
// logs without every component carrying extra parameters.
package services
