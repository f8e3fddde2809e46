package commands

import (
	"fmt"
	"os"
	"strconv"

	"gamecatalog/lib/catalog"
	"gamecatalog/lib/telemetry"
	"gamecatalog/lib/util/serviceutil"
	"gamecatalog/services/crawler"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var inspectFlags sourceFlags

func init() {
	inspectFlags.register(inspectCmd)
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <appid>",
	Short: "Fetches a single item from every source and prints its normalized row.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		appid, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || appid <= 0 {
			serviceutil.Fatal("appid must be a positive integer", fmt.Errorf("got %q", args[0]))
		}
		cfg, err := loadConfig(cmd, func(cfg *crawler.Config) {
			inspectFlags.apply(cmd, cfg)
		})
		if err != nil {
			serviceutil.Fatal("invalid configuration", err)
		}
		sources, err := crawler.NewSources(cfg, telemetry.SlogAPI{})
		if err != nil {
			serviceutil.Fatal("failed to create sources", err)
		}

		details := sources.Details.AppDetails(ctx, appid)
		record, ok := catalog.Normalize(catalog.Input{
			AppID:      appid,
			Details:    details,
			Reviews:    sources.Reviews.Reviews(ctx, appid),
			PlayersNow: sources.Players.PlayerCount(ctx, appid),
		})
		if !ok {
			kind, _ := details.String("type")
			if kind == "" {
				kind = "unknown"
			}
			fmt.Printf("%d is not a game (type: %s)\n", appid, kind)
			os.Exit(2)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Field", "Value"})
		for i, value := range record.Row() {
			t.AppendRow(table.Row{catalog.Columns[i], value})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
