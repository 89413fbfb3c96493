package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"go-column-rules/config"
	"go-column-rules/internal/dataset"
	"go-column-rules/internal/grouper"
	"go-column-rules/internal/submit"
	"go-column-rules/internal/view"
	"go-column-rules/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.NewLogger(cfg.ServiceName+"-cli", cfg.LogLevel())
	defer func() { _ = logger.Cleanup(log) }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(cfg, log).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config, log logger.LoggerI) *cobra.Command {
	var server string

	root := &cobra.Command{
		Use:          "rules",
		Short:        "Build and send per-column filtering rules",
		Version:      cfg.Version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&server, "server", cfg.ServerURL, "Rules server base URL")

	client := func() *submit.Client {
		return submit.NewClient(server, submit.WithLogger(log))
	}

	root.AddCommand(
		newGroupCmd(),
		newSubmitCmd(client, log),
		newFetchCmd(cfg, log),
		newUploadCmd(client, log),
	)
	return root
}

func newGroupCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "group [key=value ...]",
		Short: "Print the grouped payload for a set of form fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := collectFields(file, args)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(grouper.Group(fields))
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with a list of name/value fields")
	return cmd
}

func newSubmitCmd(client func() *submit.Client, log logger.LoggerI) *cobra.Command {
	var (
		file        string
		interactive bool
	)
	cmd := &cobra.Command{
		Use:   "submit [key=value ...]",
		Short: "Group form fields and post them to the server once",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client()

			var v view.View
			if interactive {
				layout, err := c.Columns(cmd.Context())
				if err != nil {
					return err
				}
				v = view.NewTerminal(layout.Fields, nil, view.SurveyPrompter(), cmd.OutOrStdout())
			} else {
				fields, err := collectFields(file, args)
				if err != nil {
					return err
				}
				v = view.NewRecorder(fields, nil)
			}

			view.NewController(v, c, nil, nil, log).SubmitRules(cmd.Context())
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with a list of name/value fields")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Prompt for every field of the uploaded dataset")
	return cmd
}

func newFetchCmd(cfg config.Config, log logger.LoggerI) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Download a dataset to " + config.DatasetFileName,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var v view.View
			if len(args) == 1 {
				rec := view.NewRecorder(nil, nil)
				rec.Inputs[view.InputDatasetURL] = args[0]
				v = rec
			} else {
				v = view.NewTerminal(nil, nil, view.SurveyPrompter(), cmd.OutOrStdout())
			}

			ctrl := view.NewController(v, nil, nil, dataset.NewFetcher(dir, nil, log), log)
			path := ctrl.FetchDataset(cmd.Context())
			if path == "" {
				return fmt.Errorf("dataset was not downloaded")
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", cfg.DownloadDir, "Directory the dataset is saved in")
	return cmd
}

func newUploadCmd(client func() *submit.Client, log logger.LoggerI) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a dataset file to the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec := view.NewRecorder(nil, args)
			ctrl := view.NewController(rec, nil, client(), nil, log)
			ctrl.FileChanged()
			fmt.Fprintln(cmd.OutOrStdout(), rec.Text(view.RegionFileName))
			ctrl.UploadSubmit(cmd.Context())
			return nil
		},
	}
}
