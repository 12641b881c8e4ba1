package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reelsmith/internal/assets"
	"reelsmith/internal/content"
	"reelsmith/internal/queue"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var storiesOnly, reelsOnly bool
	var limit int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Enqueue new stories and hooks from the content tables",
		Long: "Reads stories.csv and hooks.csv and enqueues a render job for every row " +
			"not already queued. Hooks that were already turned into reels are skipped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()

			if !reelsOnly {
				added, skipped, err := addStories(cmd, store, cfg.Paths.StoriesCSV, limit)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Stories: %d queued, %d skipped\n", added, skipped)
			}
			if !storiesOnly {
				tracker := assets.NewTracker(cfg.Paths.TrackingDir)
				added, skipped, err := addReels(cmd, store, tracker, cfg.Paths.HooksCSV, limit)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Reels: %d queued, %d skipped\n", added, skipped)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&storiesOnly, "stories", false, "Only enqueue stories")
	cmd.Flags().BoolVar(&reelsOnly, "reels", false, "Only enqueue reels")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of new items to enqueue per table (0 = no limit)")
	cmd.MarkFlagsMutuallyExclusive("stories", "reels")
	return cmd
}

func addStories(cmd *cobra.Command, store *queue.Store, path string, limit int) (int, int, error) {
	records, err := content.LoadStories(path)
	if err != nil {
		return 0, 0, fmt.Errorf("load stories: %w", err)
	}

	added, skipped := 0, 0
	for _, record := range records {
		if limit > 0 && added >= limit {
			break
		}
		existing, err := store.FindByContent(cmd.Context(), queue.KindStory, record.ID)
		if err != nil {
			return added, skipped, err
		}
		if existing != nil {
			skipped++
			continue
		}

		item := &queue.Item{
			Kind:            queue.KindStory,
			ContentID:       record.ID,
			Title:           record.Title,
			Body:            record.Text,
			BackgroundTheme: record.BackgroundTheme,
			MusicMood:       record.MusicMood,
		}
		if record.ShowTitle.Valid {
			value := record.ShowTitle.Value
			item.ShowTitle = &value
		}
		if _, err := store.NewItem(cmd.Context(), item); err != nil {
			return added, skipped, fmt.Errorf("enqueue story %s: %w", record.ID, err)
		}
		added++
	}
	return added, skipped, nil
}

func addReels(cmd *cobra.Command, store *queue.Store, tracker *assets.Tracker, path string, limit int) (int, int, error) {
	records, err := content.LoadHooks(path)
	if err != nil {
		return 0, 0, fmt.Errorf("load hooks: %w", err)
	}

	added, skipped := 0, 0
	for _, record := range records {
		if limit > 0 && added >= limit {
			break
		}
		used, err := tracker.HookUsed(record.ID)
		if err != nil {
			return added, skipped, err
		}
		if used {
			skipped++
			continue
		}
		existing, err := store.FindByContent(cmd.Context(), queue.KindReel, record.ID)
		if err != nil {
			return added, skipped, err
		}
		if existing != nil {
			skipped++
			continue
		}

		item := &queue.Item{
			Kind:          queue.KindReel,
			ContentID:     record.ID,
			Body:          record.Text,
			NarrationText: record.TTS,
		}
		if _, err := store.NewItem(cmd.Context(), item); err != nil {
			return added, skipped, fmt.Errorf("enqueue reel %s: %w", record.ID, err)
		}
		added++
	}
	return added, skipped, nil
}
