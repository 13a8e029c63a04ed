// Package report maps DSS-P verification reports to normalized signer
// security information.
package report

import (
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/egelke/dssp-client/pkg/message"
)

// Unbounded is the timestamp-validity sentinel used when the service
// reports no renewal deadline.
var Unbounded = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

// SecurityInfo is the normalized outcome of a verification: the overall
// timestamp-validity bound and one SignatureInfo per signature, in
// report order.
type SecurityInfo struct {
	TimeStampValidity time.Time
	Signatures        []SignatureInfo
}

// SignatureInfo describes one signature found on the document.
type SignatureInfo struct {
	// SigningTime is the time the signer claimed.
	SigningTime time.Time

	// Signer is the signer certificate decoded from the report.
	Signer *x509.Certificate

	// Subject is the signer subject in protocol (DSS) notation.
	Subject string

	// SubjectName is the signer subject re-rendered from the same
	// certificate with short attribute aliases.
	SubjectName string

	// Role is the joined claimed-roles list, nil when absent.
	Role *string

	// Location is the signature production place, nil when absent.
	Location *string
}

// Map normalizes a verification report. Every individual report must
// itself carry a Success result: a report claiming overall success while
// containing a failed entry is an invariant violation and fails hard.
func Map(vr *message.VerificationReport, renewal *message.TimeStampRenewal) (*SecurityInfo, error) {
	info := &SecurityInfo{
		TimeStampValidity: Unbounded,
		Signatures:        make([]SignatureInfo, 0, len(vr.IndividualReport)),
	}

	if renewal != nil && renewal.Before != "" {
		deadline, err := time.Parse(time.RFC3339, renewal.Before)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp renewal deadline %q: %w", renewal.Before, err)
		}
		info.TimeStampValidity = deadline
	}

	for i, ir := range vr.IndividualReport {
		if ir.Result == nil || ir.Result.ResultMajor != message.ResultMajorSuccess {
			major := "(absent)"
			if ir.Result != nil {
				major = ir.Result.ResultMajor
			}
			return nil, fmt.Errorf("individual report %d did not succeed: %s", i, major)
		}

		sig, err := mapIndividual(&ir)
		if err != nil {
			return nil, fmt.Errorf("individual report %d: %w", i, err)
		}
		info.Signatures = append(info.Signatures, *sig)
	}

	return info, nil
}

func mapIndividual(ir *message.IndividualReport) (*SignatureInfo, error) {
	if ir.Details == nil || ir.Details.DetailedSignatureReport == nil {
		return nil, fmt.Errorf("missing detailed signature report")
	}
	detail := ir.Details.DetailedSignatureReport

	props := signedProperties(detail)
	if props == nil || props.SigningTime == "" {
		return nil, fmt.Errorf("missing signing time")
	}
	signingTime, err := parseSigningTime(props.SigningTime)
	if err != nil {
		return nil, err
	}

	validity := firstCertificateValidity(detail)
	if validity == nil || validity.CertificateValue == "" {
		return nil, fmt.Errorf("missing signer certificate")
	}
	der, err := base64.StdEncoding.DecodeString(validity.CertificateValue)
	if err != nil {
		return nil, fmt.Errorf("invalid signer certificate encoding: %w", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("invalid signer certificate: %w", err)
	}

	subject := validity.Subject
	if subject == "" {
		subject = FormatSubject(cert.Subject, NotationDSS)
	}

	sig := &SignatureInfo{
		SigningTime: signingTime,
		Signer:      cert,
		Subject:     subject,
		SubjectName: FormatSubject(cert.Subject, NotationShort),
	}

	if props.SignerRole != nil && props.SignerRole.ClaimedRoles != nil && len(props.SignerRole.ClaimedRoles.ClaimedRole) > 0 {
		role := strings.Join(props.SignerRole.ClaimedRoles.ClaimedRole, ", ")
		sig.Role = &role
	}
	if props.Location != "" {
		location := props.Location
		sig.Location = &location
	}

	return sig, nil
}

func signedProperties(detail *message.DetailedSignatureReport) *message.SignedSignatureProperties {
	if detail.Properties == nil {
		return nil
	}
	return detail.Properties.SignedSignatureProperties
}

func firstCertificateValidity(detail *message.DetailedSignatureReport) *message.CertificateValidity {
	if detail.CertificatePathValidity == nil || detail.CertificatePathValidity.PathValidityDetail == nil {
		return nil
	}
	entries := detail.CertificatePathValidity.PathValidityDetail.CertificateValidity
	if len(entries) == 0 {
		return nil
	}
	return &entries[0]
}

// parseSigningTime parses the report's culture-invariant timestamp. A
// value with a zone designator keeps it; a zoneless value carries the
// signer's wall clock and is taken as local time.
func parseSigningTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02T15:04:05", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid signing time %q: %w", value, err)
	}
	return t, nil
}
