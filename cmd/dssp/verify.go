package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/egelke/dssp-client/pkg/report"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <document>",
	Short: "Verify the signatures of a document",
	Long: `Verify a signed document and print the signer report: who signed,
when, in which role and at which location, plus the timestamp renewal
deadline.`,
	Args:          cobra.ExactArgs(1),
	RunE:          runVerify,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func runVerify(cmd *cobra.Command, args []string) error {
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

	info, err := client.VerifyContext(ctx, doc)
	if err != nil {
		return err
	}
	if info == nil {
		fmt.Println("No signature found.")
		return nil
	}

	printReport(info)
	return nil
}

func printReport(info *report.SecurityInfo) {
	fmt.Printf("Signatures: %d\n", len(info.Signatures))
	for i, sig := range info.Signatures {
		fmt.Printf("\nSignature %d\n", i+1)
		fmt.Printf("  Signer:       %s\n", sig.SubjectName)
		fmt.Printf("  Subject:      %s\n", sig.Subject)
		fmt.Printf("  Signing time: %s\n", sig.SigningTime)
		if sig.Role != nil {
			fmt.Printf("  Role:         %s\n", *sig.Role)
		}
		if sig.Location != nil {
			fmt.Printf("  Location:     %s\n", *sig.Location)
		}
	}
	if info.TimeStampValidity.Equal(report.Unbounded) {
		fmt.Println("\nTimestamps need no renewal.")
	} else {
		fmt.Printf("\nTimestamps must be renewed before %s\n", info.TimeStampValidity)
	}
}
