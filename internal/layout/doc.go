// Package layout places measured text blocks inside the frame's safe area,
// the sub-rectangle left after platform UI margins. Placement maps a
// position factor (0 = top of the band, 1 = bottom) to the block's top edge
// and clamps so the block never crosses the band. A single-pass font-shrink
// heuristic handles title+body cards that overflow the band vertically.
package layout
