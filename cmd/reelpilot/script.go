package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reelpilot-org/reelpilot/pkg/scriptwriter"
	"github.com/reelpilot-org/reelpilot/pkg/types"
)

func newScriptCmd(a *app) *cobra.Command {
	var (
		videoID string
		prompt  string
	)

	cmd := &cobra.Command{
		Use:   "script",
		Short: "Generate a voiceover script for a planned video",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			video, err := st.GetVideo(ctx, videoID)
			if err != nil {
				return fmt.Errorf("load video %s: %w", videoID, err)
			}
			if video.Plan == nil {
				return fmt.Errorf("video %s has no plan yet, run plan first", videoID)
			}

			client, err := a.newLLMClient(ctx)
			if err != nil {
				return err
			}

			w := scriptwriter.New(client, a.log)
			script, err := w.GenerateScript(ctx, scriptwriter.ScriptRequest{
				RecordingSteps:   video.Plan.RecordingSteps,
				VideoTitle:       video.Plan.Title,
				VideoDescription: video.Plan.Description,
				Prompt:           prompt,
			})
			if err != nil {
				return err
			}

			video.Script = script
			video.Stage = types.StageScript
			if err := st.SaveVideo(ctx, video); err != nil {
				return err
			}

			fmt.Printf("Script saved to video %s (%d ms total):\n\n%s\n\n", video.ID, script.TotalDurationMS, script.Script)
			for _, ta := range script.TimestampedActions {
				fmt.Printf("  [%6d - %6d ms] %s\n", ta.StartTimeMS, ta.EndTimeMS, ta.Action.Describe())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&videoID, "video", "", "Video ID to narrate")
	cmd.Flags().StringVar(&prompt, "prompt", "", "Extra direction for the narration tone")
	_ = cmd.MarkFlagRequired("video")

	return cmd
}
