package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sealCmd = &cobra.Command{
	Use:   "seal <document>",
	Short: "Apply an organizational eSeal",
	Long: `Seal a document in a single synchronous call. The service selects
the sealing key from the configured application identity, so no signer
interaction is needed.`,
	Args:          cobra.ExactArgs(1),
	RunE:          runSeal,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var sealOut string

func init() {
	sealCmd.Flags().StringVar(&sealOut, "out", "", "Output file for the sealed document")
	_ = sealCmd.MarkFlagRequired("out")
}

func runSeal(cmd *cobra.Command, args []string) error {
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

	sealed, err := client.SealContext(ctx, doc)
	if err != nil {
		return err
	}
	if err := writeDocument(sealOut, sealed); err != nil {
		return err
	}

	fmt.Printf("Sealed document written to %s\n", sealOut)
	return nil
}
