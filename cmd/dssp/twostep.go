package main

import (
	"crypto"
	"crypto/rand"
	"fmt"

	"github.com/spf13/cobra"
)

var twostepCmd = &cobra.Command{
	Use:   "twostep <document>",
	Short: "Sign a document with the configured local key",
	Long: `Sign a document in the two-step flow: the document is uploaded once,
the service returns its digest, the digest is signed locally with the
signer keystore's private key and the signature value is exchanged for
the signed document. The private key never leaves this machine and the
document never travels twice.

Requires the signer section in the configuration:

  signer:
    keystore:
      path: signer.p12
      password: ${SIGNER_PASSWORD}`,
	Args:          cobra.ExactArgs(1),
	RunE:          runTwostep,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var twostepOut string

func init() {
	twostepCmd.Flags().StringVar(&twostepOut, "out", "", "Output file for the signed document")
	_ = twostepCmd.MarkFlagRequired("out")
}

func runTwostep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	chain, err := cfg.SignerChain()
	if err != nil {
		return err
	}
	if chain == nil {
		return fmt.Errorf("no signer keystore configured")
	}

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

	session, err := client.UploadDocumentTwoStepContext(ctx, doc, chain)
	if err != nil {
		return err
	}

	hash, err := hashFor(session.DigestAlgorithm)
	if err != nil {
		return err
	}
	signatureValue, err := chain.PrivateKey.Sign(rand.Reader, session.DigestValue, hash)
	if err != nil {
		return fmt.Errorf("signing document digest: %w", err)
	}

	signed, err := client.DownloadSignedDocumentTwoStepContext(ctx, session, signatureValue)
	if err != nil {
		return err
	}
	if err := writeDocument(twostepOut, signed); err != nil {
		return err
	}

	fmt.Printf("Signed document written to %s\n", twostepOut)
	return nil
}

// hashFor maps a digest algorithm URI to the hash the signer must
// declare. An empty URI defaults to SHA-256.
func hashFor(uri string) (crypto.Hash, error) {
	switch uri {
	case "", "http://www.w3.org/2001/04/xmlenc#sha256":
		return crypto.SHA256, nil
	case "http://www.w3.org/2001/04/xmldsig-more#sha384":
		return crypto.SHA384, nil
	case "http://www.w3.org/2001/04/xmlenc#sha512":
		return crypto.SHA512, nil
	case "http://www.w3.org/2000/09/xmldsig#sha1":
		return crypto.SHA1, nil
	default:
		return 0, fmt.Errorf("unsupported digest algorithm %q", uri)
	}
}
