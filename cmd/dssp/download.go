package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download <session-id>",
	Short: "Collect the signed document of an asynchronous session",
	Long: `Collect the signed document of a session started with 'dssp upload'.
The stored session is removed on success; a session downloads exactly
once.`,
	Args:          cobra.ExactArgs(1),
	RunE:          runDownload,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var downloadOut string

func init() {
	downloadCmd.Flags().StringVar(&downloadOut, "out", "", "Output file for the signed document")
	_ = downloadCmd.MarkFlagRequired("out")
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cfg.Service.Timeout)
	defer cancel()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	record, err := store.GetSession(ctx, args[0])
	if err != nil {
		return err
	}

	doc, err := client.DownloadSignedDocumentContext(ctx, record.Session)
	if err != nil {
		return err
	}

	if err := store.DeleteSession(ctx, args[0]); err != nil {
		return err
	}
	if err := writeDocument(downloadOut, doc); err != nil {
		return err
	}

	fmt.Printf("Signed document written to %s\n", downloadOut)
	return nil
}
