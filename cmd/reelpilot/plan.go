package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/reelpilot-org/reelpilot/pkg/device"
	"github.com/reelpilot-org/reelpilot/pkg/planner"
	"github.com/reelpilot-org/reelpilot/pkg/types"
)

func newPlanCmd(a *app) *cobra.Command {
	var (
		videoID   string
		title     string
		deviceID  string
		bridgeURL string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Drive the agent against a device and produce a recording plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			var video *types.Video
			switch {
			case videoID != "":
				video, err = st.GetVideo(ctx, videoID)
				if err != nil {
					return fmt.Errorf("load video %s: %w", videoID, err)
				}
			case title != "":
				video = types.NewVideo(types.VideoIdea{Title: title})
				if err := st.SaveVideo(ctx, video); err != nil {
					return err
				}
			default:
				return fmt.Errorf("either --video or --title is required")
			}

			client, err := a.newLLMClient(ctx)
			if err != nil {
				return err
			}

			port := device.NewBridge(bridgeURL, 60*time.Second)
			p := planner.New(client, planner.Options{
				MaxIterations: a.cfg.Planner.MaxIterations,
			}, a.log)

			plan, err := p.GeneratePlan(ctx, planner.PlanRequest{
				DeviceID: deviceID,
				Idea:     video.Idea,
			}, port)
			if err != nil {
				return err
			}

			video.Plan = plan
			video.Stage = types.StagePlan
			if err := st.SaveVideo(ctx, video); err != nil {
				return err
			}

			fmt.Printf("Plan saved to video %s: %q, %d recording steps, ~%ds\n",
				video.ID, plan.Title, len(plan.RecordingSteps), plan.EstimatedDurationSeconds)
			for i, step := range plan.RecordingSteps {
				fmt.Printf("  %2d. %s\n", i+1, step.Describe())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&videoID, "video", "", "Existing video ID to plan")
	cmd.Flags().StringVar(&title, "title", "", "Create a new video with this title")
	cmd.Flags().StringVar(&deviceID, "device", "", "Device or simulator ID to exercise")
	cmd.Flags().StringVar(&bridgeURL, "bridge-url", "http://localhost:7900", "Device bridge base URL")
	_ = cmd.MarkFlagRequired("device")

	return cmd
}
