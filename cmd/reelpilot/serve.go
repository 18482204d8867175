package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/reelpilot-org/reelpilot/pkg/api"
	"github.com/reelpilot-org/reelpilot/pkg/device"
	"github.com/reelpilot-org/reelpilot/pkg/planner"
	"github.com/reelpilot-org/reelpilot/pkg/scriptwriter"
)

func newServeCmd(a *app) *cobra.Command {
	var bridgeURL string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			client, err := a.newLLMClient(ctx)
			if err != nil {
				return err
			}

			var port device.Port
			if bridgeURL != "" {
				port = device.NewBridge(bridgeURL, 60*time.Second)
			}

			p := planner.New(client, planner.Options{
				MaxIterations: a.cfg.Planner.MaxIterations,
			}, a.log)
			w := scriptwriter.New(client, a.log)

			srv := api.NewServer(a.cfg.HTTP, st, p, w, port, a.log)
			return srv.Run()
		},
	}

	cmd.Flags().StringVar(&bridgeURL, "bridge-url", "", "Device bridge base URL (optional; plan generation is disabled without it)")

	return cmd
}
