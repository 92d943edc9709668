package main

import (
	"context"
	"fmt"
	"os"

	"github.com/procat-rse/procatsrv/internal/config"
	"github.com/procat-rse/procatsrv/internal/db"
	"github.com/procat-rse/procatsrv/internal/importer"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Bulk import projects and funding from a YAML or JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	doc, err := importer.Parse(data)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := db.Init(ctx, config.Config().DB.DSN); err != nil {
		return err
	}
	ctx = db.ConnCtx(ctx)
	defer db.DB(ctx).Close(ctx)

	result, err := importer.Import(ctx, doc)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d projects, %d funding records\n", result.Projects, result.Funding)
	return nil
}
