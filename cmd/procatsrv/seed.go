package main

import (
	"context"

	"github.com/procat-rse/procatsrv/internal/config"
	"github.com/procat-rse/procatsrv/internal/db"
	"github.com/procat-rse/procatsrv/internal/seed"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the standard analysis codes",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	if err := db.Init(ctx, config.Config().DB.DSN); err != nil {
		return err
	}
	ctx = db.ConnCtx(ctx)
	defer db.DB(ctx).Close(ctx)
	return seed.CreateAnalysisCodes(ctx)
}
