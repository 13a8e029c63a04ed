package security

import (
	"crypto/tls"
	"errors"
)

var (
	// ErrCredentialModeConflict is returned when both username/password
	// and certificate credentials are configured.
	ErrCredentialModeConflict = errors.New("username/password and certificate credentials are mutually exclusive")
	// ErrIncompleteUsernameToken is returned when only one half of the
	// username/password pair is configured.
	ErrIncompleteUsernameToken = errors.New("username and password must be configured together")
)

// StoreLocation identifies an OS certificate store location.
type StoreLocation string

const (
	StoreLocationCurrentUser  StoreLocation = "CurrentUser"
	StoreLocationLocalMachine StoreLocation = "LocalMachine"
)

// FindType identifies how a certificate is looked up in a store.
type FindType string

const (
	FindBySubjectName  FindType = "subjectName"
	FindByThumbprint   FindType = "thumbprint"
	FindBySerialNumber FindType = "serialNumber"
)

// CertificateLookup describes a client certificate by its position in an
// OS certificate store instead of carrying it inline.
type CertificateLookup struct {
	Location  StoreLocation
	Store     string
	FindType  FindType
	FindValue string
}

// CertificateStore is the capability interface for resolving a
// CertificateLookup against an OS or application certificate store.
type CertificateStore interface {
	Find(lookup *CertificateLookup) (*tls.Certificate, error)
}

// Credentials is the canonical application credential structure. Exactly
// one mode is active: none (anonymous), username/password, inline client
// certificate, or certificate by store lookup.
type Credentials struct {
	Username string
	Password string

	// Certificate is an inline client certificate with its private key.
	Certificate *tls.Certificate

	// CertificateLookup locates the client certificate in a store.
	CertificateLookup *CertificateLookup
}

// Validate checks the mutual-exclusion invariant between the credential
// modes.
func (c *Credentials) Validate() error {
	if c == nil {
		return nil
	}
	hasPassword := c.Username != "" || c.Password != ""
	hasCert := c.Certificate != nil || c.CertificateLookup != nil

	if hasPassword && hasCert {
		return ErrCredentialModeConflict
	}
	if hasPassword && (c.Username == "" || c.Password == "") {
		return ErrIncompleteUsernameToken
	}
	return nil
}

// Anonymous reports whether no credential is configured at all.
func (c *Credentials) Anonymous() bool {
	return c == nil ||
		(c.Username == "" && c.Password == "" && c.Certificate == nil && c.CertificateLookup == nil)
}
