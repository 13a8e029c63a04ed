// Package config handles configuration loading for the dssp command.
//
// Configuration is loaded from a YAML file with support for environment
// variable expansion (${VAR} or $VAR syntax). This allows sensitive
// values like service passwords and keystore passphrases to be injected
// at runtime.
//
// # Configuration Sections
//
//   - service: DSS endpoint settings (address, signature type, timeout)
//   - auth: application credentials (username/password or PKCS#12 keystore)
//   - signer: local signing identity for the two-step flow
//   - storage: pending session persistence (memory or MongoDB)
//   - logging: structured log settings
//
// # Example Configuration
//
//	service:
//	  address: https://www.e-contract.be/dss-ws/dss
//	  signatureType: urn:be:e-contract:dssp:signature:pades-baseline
//	  timeout: 30s
//
//	auth:
//	  username: ${DSS_USERNAME}
//	  password: ${DSS_PASSWORD}
//
//	storage:
//	  type: mongodb
//	  mongodb:
//	    uri: ${MONGODB_URI}
//	    database: dssp
//
// See [Load] for loading configuration from a file.
package config

import (
	"crypto"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	pkcs12 "software.sslmate.com/src/go-pkcs12"

	"github.com/egelke/dssp-client/pkg/security"
)

// Config is the root configuration structure
type Config struct {
	Service ServiceConfig `yaml:"service"`
	Auth    AuthConfig    `yaml:"auth"`
	Signer  SignerConfig  `yaml:"signer"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServiceConfig holds DSS endpoint settings
type ServiceConfig struct {
	Address string `yaml:"address"`

	// SignatureType overrides the service default signature format
	SignatureType string `yaml:"signatureType"`

	Timeout time.Duration `yaml:"timeout"`

	// RootCAFile is a PEM bundle of trust anchors for the service's TLS
	// certificate. Empty means the system trust store.
	RootCAFile string `yaml:"rootCAFile"`
}

// AuthConfig holds the application credentials. At most one of the
// password pair and the keystore may be configured.
type AuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// Keystore is a PKCS#12 file carrying the client certificate and
	// its private key for mutual TLS authentication.
	Keystore KeystoreConfig `yaml:"keystore"`
}

// KeystoreConfig holds PKCS#12 keystore settings
type KeystoreConfig struct {
	Path     string `yaml:"path"`
	Password string `yaml:"password"`
}

// SignerConfig holds the local signing identity for the two-step flow
type SignerConfig struct {
	Keystore KeystoreConfig `yaml:"keystore"`

	// IntermediateCAFile is a PEM bundle used to complete a bare leaf
	// certificate into a full chain.
	IntermediateCAFile string `yaml:"intermediateCAFile"`
	RootCAFile         string `yaml:"rootCAFile"`
}

// StorageConfig holds pending session persistence settings
type StorageConfig struct {
	// Type selects the backend: "memory" or "mongodb"
	Type    string        `yaml:"type"`
	MongoDB MongoDBConfig `yaml:"mongodb"`
}

// MongoDBConfig holds MongoDB connection settings
type MongoDBConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// LoggingConfig holds structured log settings
type LoggingConfig struct {
	// Level is a zap level string: debug, info, warn, error
	Level string `yaml:"level"`

	// Development switches to the human-readable console encoder
	Development bool `yaml:"development"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Service.Timeout == 0 {
		c.Service.Timeout = 30 * time.Second
	}
	if c.Storage.Type == "" {
		c.Storage.Type = "memory"
	}
	if c.Storage.MongoDB.Database == "" {
		c.Storage.MongoDB.Database = "dssp"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *Config) validate() error {
	if c.Service.Address == "" {
		return fmt.Errorf("service.address is required")
	}

	hasPassword := c.Auth.Username != "" || c.Auth.Password != ""
	hasKeystore := c.Auth.Keystore.Path != ""
	if hasPassword && hasKeystore {
		return fmt.Errorf("auth.username/password and auth.keystore are mutually exclusive")
	}
	if hasPassword && (c.Auth.Username == "" || c.Auth.Password == "") {
		return fmt.Errorf("auth.username and auth.password must be configured together")
	}

	switch c.Storage.Type {
	case "memory", "mongodb":
		// Valid backends
	default:
		return fmt.Errorf("storage.type must be 'memory' or 'mongodb', got '%s'", c.Storage.Type)
	}
	if c.Storage.Type == "mongodb" && c.Storage.MongoDB.URI == "" {
		return fmt.Errorf("storage.mongodb.uri is required when type is 'mongodb'")
	}

	return nil
}

// Credentials materializes the configured application credentials,
// loading the PKCS#12 keystore when one is configured.
func (c *Config) Credentials() (*security.Credentials, error) {
	if c.Auth.Keystore.Path != "" {
		cert, err := loadKeystore(&c.Auth.Keystore)
		if err != nil {
			return nil, fmt.Errorf("loading auth keystore: %w", err)
		}
		return &security.Credentials{Certificate: cert}, nil
	}
	if c.Auth.Username != "" {
		return &security.Credentials{
			Username: c.Auth.Username,
			Password: c.Auth.Password,
		}, nil
	}
	return nil, nil
}

// SignerChain materializes the two-step signing identity from the
// signer keystore. Returns nil when no signer is configured.
func (c *Config) SignerChain() (*security.SignerChain, error) {
	if c.Signer.Keystore.Path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(c.Signer.Keystore.Path)
	if err != nil {
		return nil, fmt.Errorf("reading signer keystore: %w", err)
	}
	key, leaf, chain, err := pkcs12.DecodeChain(data, c.Signer.Keystore.Password)
	if err != nil {
		return nil, fmt.Errorf("decoding signer keystore: %w", err)
	}
	signer, ok := key.(crypto.Signer)
	if !ok {
		return nil, fmt.Errorf("signer keystore key type %T cannot sign", key)
	}

	return &security.SignerChain{
		Certificates: append([]*x509.Certificate{leaf}, chain...),
		PrivateKey:   signer,
	}, nil
}

// ChainBuilder builds the trust-store capability used to complete a
// bare signer leaf into a full chain. Returns nil when no pools are
// configured, falling back to the system trust store.
func (c *Config) ChainBuilder() (security.ChainBuilder, error) {
	if c.Signer.RootCAFile == "" && c.Signer.IntermediateCAFile == "" {
		return nil, nil
	}
	roots, err := loadPool(c.Signer.RootCAFile)
	if err != nil {
		return nil, err
	}
	intermediates, err := loadPool(c.Signer.IntermediateCAFile)
	if err != nil {
		return nil, err
	}
	return &security.TrustStoreChainBuilder{
		Roots:         roots,
		Intermediates: intermediates,
	}, nil
}

// RootCAs loads the configured TLS trust anchors. Returns nil for the
// system trust store.
func (c *Config) RootCAs() (*x509.CertPool, error) {
	if c.Service.RootCAFile == "" {
		return nil, nil
	}
	return loadPool(c.Service.RootCAFile)
}

// loadPool reads a PEM bundle into a certificate pool. An empty path
// yields a nil pool.
func loadPool(path string) (*x509.CertPool, error) {
	if path == "" {
		return nil, nil
	}
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading CA file: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("CA file %s contains no certificates", path)
	}
	return pool, nil
}

// loadKeystore decodes a PKCS#12 file into a TLS client certificate.
func loadKeystore(ks *KeystoreConfig) (*tls.Certificate, error) {
	data, err := os.ReadFile(ks.Path)
	if err != nil {
		return nil, fmt.Errorf("reading keystore %s: %w", ks.Path, err)
	}
	key, leaf, chain, err := pkcs12.DecodeChain(data, ks.Password)
	if err != nil {
		return nil, fmt.Errorf("decoding keystore %s: %w", ks.Path, err)
	}

	cert := &tls.Certificate{
		PrivateKey:  key,
		Leaf:        leaf,
		Certificate: [][]byte{leaf.Raw},
	}
	for _, ca := range chain {
		cert.Certificate = append(cert.Certificate, ca.Raw)
	}
	return cert, nil
}
