// Package segment splits raw story text into ordered caption segments.
//
// Three strategies exist, selected by a fixed precedence: paragraph breaks
// when the text has them and paragraph mode is on, one sentence per segment
// when sentence mode is on, and a greedy character-budget fallback. Oversized
// units from the higher strategies are re-split by the lower ones, so every
// emitted segment fits the budget except a single word longer than the budget
// itself, which is emitted whole.
package segment
