package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/egelke/dssp-client/internal/storage"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <document>",
	Short: "Start an asynchronous signing session",
	Long: `Upload a document for asynchronous signing. The service holds the
document while the signer completes the browser leg; the session state
is stored under the given id so 'dssp download' can collect the signed
document later, possibly from another process.

Examples:
  dssp upload contract.pdf --session contract-42
  dssp download contract-42 --out contract-signed.pdf`,
	Args:          cobra.ExactArgs(1),
	RunE:          runUpload,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var uploadSessionID string

func init() {
	uploadCmd.Flags().StringVar(&uploadSessionID, "session", "",
		"Session id to store the pending session under (default: random)")
}

func runUpload(cmd *cobra.Command, args []string) error {
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
	doc, err := readDocument(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cfg.Service.Timeout)
	defer cancel()

	session, err := client.UploadDocumentContext(ctx, doc)
	if err != nil {
		return err
	}

	id := uploadSessionID
	if id == "" {
		id = uuid.New().String()
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	if err := store.PutSession(ctx, storage.NewSessionRecord(id, session)); err != nil {
		return err
	}

	fmt.Printf("Session stored:  %s\n", id)
	fmt.Printf("Response id:     %s\n", session.ServerID)
	if !session.ExpiresOn.IsZero() {
		fmt.Printf("Expires on:      %s\n", session.ExpiresOn)
	}
	fmt.Println("Direct the signer to the service's browser post page, then run 'dssp download'.")
	return nil
}
