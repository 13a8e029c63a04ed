package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/egelke/dssp-client/internal/config"
	"github.com/egelke/dssp-client/internal/storage"
	"github.com/egelke/dssp-client/internal/storage/memory"
	"github.com/egelke/dssp-client/internal/storage/mongodb"
	"github.com/egelke/dssp-client/pkg/dssp"
)

// newLogger builds the zap logger from the logging section.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Logging.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = level
	return zapCfg.Build()
}

// newClient assembles the DSS-P client from the configuration.
func newClient(cfg *config.Config, logger *zap.Logger) (*dssp.Client, error) {
	creds, err := cfg.Credentials()
	if err != nil {
		return nil, err
	}
	rootCAs, err := cfg.RootCAs()
	if err != nil {
		return nil, err
	}
	chainBuilder, err := cfg.ChainBuilder()
	if err != nil {
		return nil, err
	}

	opts := []dssp.Option{
		dssp.WithTimeout(cfg.Service.Timeout),
		dssp.WithLogger(logger),
	}
	if creds != nil {
		opts = append(opts, dssp.WithCredentials(creds))
	}
	if cfg.Service.SignatureType != "" {
		opts = append(opts, dssp.WithSignatureType(cfg.Service.SignatureType))
	}
	if rootCAs != nil {
		opts = append(opts, dssp.WithRootCAs(rootCAs))
	}
	if chainBuilder != nil {
		opts = append(opts, dssp.WithChainBuilder(chainBuilder))
	}

	return dssp.NewClient(cfg.Service.Address, opts...)
}

// openStore opens the configured session store backend.
func openStore(ctx context.Context, cfg *config.Config) (storage.SessionStore, error) {
	switch cfg.Storage.Type {
	case "mongodb":
		return mongodb.NewStore(ctx, &mongodb.Config{
			URI:        cfg.Storage.MongoDB.URI,
			Database:   cfg.Storage.MongoDB.Database,
			Collection: cfg.Storage.MongoDB.Collection,
		})
	default:
		return memory.NewStore(), nil
	}
}

// readDocument loads a document file, deriving the MIME type from its
// extension.
func readDocument(path string) (*dssp.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return &dssp.Document{
		MimeType: mimeTypeOf(path),
		Content:  content,
	}, nil
}

func mimeTypeOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".xml":
		return "text/xml"
	case ".odt":
		return "application/vnd.oasis.opendocument.text"
	default:
		return "application/octet-stream"
	}
}

// writeDocument stores the signed document at the output path.
func writeDocument(path string, doc *dssp.Document) error {
	if err := os.WriteFile(path, doc.Content, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// commandContext bounds a command run.
func commandContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout == 0 {
		timeout = time.Minute
	}
	return context.WithTimeout(context.Background(), timeout)
}
