package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kiselovlex/keye-interactive-grid/internal/app"
	"github.com/kiselovlex/keye-interactive-grid/internal/config"
	"github.com/kiselovlex/keye-interactive-grid/internal/export"
	"github.com/kiselovlex/keye-interactive-grid/internal/logger"
)

var (
	dbPath string
	debug  bool
)

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if dbPath != "" {
		cfg.Grid.Database = dbPath
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "keyegrid [dataset-id]",
		Short: "Interactive terminal grid for sectioned financial datasets",
		Args:  cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			return app.New(cfg, id).Run()
		},
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "", "path to the SQLite database")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	root.AddCommand(newExportCmd())
	return root
}

func newExportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export <dataset-id>",
		Short: "Export a dataset to an XLSX workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			st, err := app.OpenStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := context.Background()
			ds, err := st.FetchDataset(ctx, args[0])
			if err != nil {
				return fmt.Errorf("dataset %q: %w", args[0], err)
			}
			meta, err := st.FetchAllCellMetadata(ctx)
			if err != nil {
				return err
			}
			if err := export.New(meta).Write(ds, output); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "exported", args[0], "to", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "dataset.xlsx", "output file path")
	return cmd
}

func main() {
	defer logger.Close()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "keyegrid:", err)
		os.Exit(1)
	}
}
