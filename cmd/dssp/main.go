// Command dssp drives signing and verification flows against a Digital
// Signature Service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/egelke/dssp-client/internal/config"
)

// Build-time variables (injected by GoReleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags
var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dssp",
	Short: "DSS-P client for document signing, sealing and verification",
	Long: `dssp is a command-line client for the Digital Signature Service
Protocol (DSS-P). It talks to an e-Contract compatible DSS over SOAP
and supports four flows:

  upload/download  Asynchronous signing with a browser leg in between
  seal             Synchronous organizational eSeal
  twostep          Local signing with a PKCS#12 key, document stays remote
  verify           Signature verification with a detailed report

Examples:
  # Seal a document with the configured application identity
  dssp seal invoice.pdf --out invoice-sealed.pdf

  # Start an asynchronous signing session
  dssp upload contract.pdf --session contract-42

  # Collect the signed document once the signer finished the browser leg
  dssp download contract-42 --out contract-signed.pdf

  # Sign locally with the configured PKCS#12 signer
  dssp twostep contract.pdf --out contract-signed.pdf

  # Verify and print the signer report
  dssp verify contract-signed.pdf`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to the YAML configuration file (or set DSSP_CONFIG env var)")

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(sealCmd)
	rootCmd.AddCommand(twostepCmd)
	rootCmd.AddCommand(verifyCmd)
}

// loadConfig resolves the configuration path from the flag or the
// environment and loads it.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("DSSP_CONFIG")
	}
	if path == "" {
		path = "dssp.yaml"
	}
	return config.Load(path)
}
