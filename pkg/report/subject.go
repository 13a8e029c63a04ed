package report

import (
	"crypto/x509/pkix"
	"fmt"
	"strings"
)

// Notation selects the attribute alias set used to render a subject DN.
type Notation int

const (
	// NotationDSS renders long attribute names (SERIALNUMBER, GIVENNAME,
	// SURNAME), the way the protocol spells subjects.
	NotationDSS Notation = iota
	// NotationShort renders the certificate-library aliases
	// (SERIALNUMBER, G, SN).
	NotationShort
)

type oidName struct {
	long  string
	short string
}

// Attribute type OIDs under 2.5.4 plus the PKCS#9 email attribute.
var attributeNames = map[string]oidName{
	"2.5.4.3":              {"CN", "CN"},
	"2.5.4.4":              {"SURNAME", "SN"},
	"2.5.4.5":              {"SERIALNUMBER", "SERIALNUMBER"},
	"2.5.4.6":              {"C", "C"},
	"2.5.4.7":              {"L", "L"},
	"2.5.4.8":              {"ST", "ST"},
	"2.5.4.10":             {"O", "O"},
	"2.5.4.11":             {"OU", "OU"},
	"2.5.4.42":             {"GIVENNAME", "G"},
	"1.2.840.113549.1.9.1": {"E", "E"},
}

// FormatSubject renders a distinguished name in the requested notation,
// most specific attribute first, comma separated.
func FormatSubject(name pkix.Name, notation Notation) string {
	attrs := name.Names
	parts := make([]string, 0, len(attrs))

	for i := len(attrs) - 1; i >= 0; i-- {
		attr := attrs[i]
		value, ok := attr.Value.(string)
		if !ok {
			value = fmt.Sprint(attr.Value)
		}
		parts = append(parts, attributeName(attr.Type.String(), notation)+"="+value)
	}

	return strings.Join(parts, ", ")
}

func attributeName(oid string, notation Notation) string {
	names, ok := attributeNames[oid]
	if !ok {
		return "OID." + oid
	}
	if notation == NotationShort {
		return names.short
	}
	return names.long
}
