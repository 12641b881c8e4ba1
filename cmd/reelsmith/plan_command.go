package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reelsmith/internal/content"
	"reelsmith/internal/fontmetrics"
	"reelsmith/internal/storyboard"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <story-id>",
		Short: "Dry-run the storyboard for one story",
		Long: "Builds the segmented, timed, positioned storyboard for a story from " +
			"stories.csv and prints it without touching the queue or rendering anything.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			records, err := content.LoadStories(cfg.Paths.StoriesCSV)
			if err != nil {
				return err
			}
			var record *content.StoryRecord
			for i := range records {
				if records[i].ID == args[0] {
					record = &records[i]
					break
				}
			}
			if record == nil {
				return fmt.Errorf("story %q not found in %s", args[0], cfg.Paths.StoriesCSV)
			}

			titleFont, err := fontmetrics.Load(cfg.Captions.TitleFontFile, cfg.Captions.LineSpacing)
			if err != nil {
				return err
			}
			bodyFont, err := fontmetrics.Load(cfg.Captions.BodyFontFile, cfg.Captions.LineSpacing)
			if err != nil {
				return err
			}

			board, err := storyboard.NewBuilder(cfg, titleFont, bodyFont).BuildStory(*record)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Story %s: %d cues, %.1fs total\n", record.ID, len(board.Cues), board.Total)

			rows := make([][]string, 0, len(board.Cues)+1)
			if board.Title != nil {
				rows = append(rows, cueRow("title", *board.Title))
			}
			for _, cue := range board.Cues {
				rows = append(rows, cueRow(fmt.Sprintf("%d", cue.Index), cue))
			}
			fmt.Fprintln(out, renderTable(
				[]string{"CUE", "START", "SECONDS", "POSITION", "FONT", "TEXT"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
}

func cueRow(label string, cue storyboard.Cue) []string {
	return []string{
		label,
		fmt.Sprintf("%.2f", cue.Start),
		fmt.Sprintf("%.2f", cue.Duration),
		fmt.Sprintf("(%.0f, %.0f)", cue.X, cue.Y),
		fmt.Sprintf("%.0f", cue.FontSize),
		truncate(cue.Text, 60),
	}
}

func truncate(text string, max int) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) <= max {
		return text
	}
	return text[:max-3] + "..."
}
