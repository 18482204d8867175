package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newVideosCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "videos",
		Short: "Manage the on-disk video library",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all videos, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			videos, err := st.ListVideos(ctx)
			if err != nil {
				return err
			}
			if len(videos) == 0 {
				fmt.Println("No videos yet.")
				return nil
			}
			for _, v := range videos {
				fmt.Printf("%s  [%-6s]  %s\n", v.ID, v.Stage, v.Idea.Title)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Print one video record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			video, err := st.GetVideo(ctx, args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(video)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a video record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.DeleteVideo(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted", args[0])
			return nil
		},
	})

	return cmd
}
