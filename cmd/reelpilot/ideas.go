package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reelpilot-org/reelpilot/pkg/ideas"
	"github.com/reelpilot-org/reelpilot/pkg/types"
)

func newIdeasCmd(a *app) *cobra.Command {
	var (
		root  string
		depth int
		count int
		save  bool
	)

	cmd := &cobra.Command{
		Use:   "ideas",
		Short: "Scan an app codebase and propose tutorial video ideas",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := a.newLLMClient(ctx)
			if err != nil {
				return err
			}

			g := ideas.NewGenerator(client, a.log)
			proposed, err := g.Generate(ctx, ideas.GenerateRequest{
				Root:     root,
				MaxDepth: depth,
				Count:    count,
			})
			if err != nil {
				return err
			}

			for i, idea := range proposed {
				fmt.Printf("%d. %s\n   %s\n", i+1, idea.Title, idea.Description)
				for _, step := range idea.RecordingSteps {
					fmt.Printf("   - %s\n", step)
				}
			}

			if !save {
				return nil
			}

			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			for _, idea := range proposed {
				video := types.NewVideo(idea)
				if err := st.SaveVideo(ctx, video); err != nil {
					return err
				}
				fmt.Printf("Saved %q as %s\n", idea.Title, video.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "Codebase root to scan")
	cmd.Flags().IntVar(&depth, "depth", ideas.DefaultMaxDepth, "Maximum directory depth to scan")
	cmd.Flags().IntVar(&count, "count", 5, "Maximum number of ideas")
	cmd.Flags().BoolVar(&save, "save", false, "Save each idea as a new video record")

	return cmd
}
