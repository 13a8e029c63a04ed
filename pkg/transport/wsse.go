package transport

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"github.com/egelke/dssp-client/pkg/message"
	"github.com/egelke/dssp-client/pkg/security"
)

const nsPasswordText = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-username-token-profile-1.0#PasswordText"

// FaultError is a SOAP fault returned by the service, surfaced as a
// channel-level error.
type FaultError struct {
	Code   string
	Reason string
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("soap fault %s: %s", e.Code, e.Reason)
}

// buildEnvelope wraps a serialized request payload in a SOAP 1.2
// envelope with WS-Addressing headers and the security header of the
// channel's authentication mode.
func buildEnvelope(mode Mode, creds *security.Credentials, session *SessionToken, action, to string, payload []byte) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	env := doc.CreateElement("env:Envelope")
	env.CreateAttr("xmlns:env", message.NsSOAPEnv)
	env.CreateAttr("xmlns:wsa", message.NsWSA)
	env.CreateAttr("xmlns:wsse", message.NsWSSE)
	env.CreateAttr("xmlns:wsu", message.NsWSU)

	header := env.CreateElement("env:Header")

	actionElem := header.CreateElement("wsa:Action")
	actionElem.CreateAttr("env:mustUnderstand", "true")
	actionElem.SetText(action)
	header.CreateElement("wsa:MessageID").SetText("urn:uuid:" + uuid.New().String())
	toElem := header.CreateElement("wsa:To")
	toElem.CreateAttr("env:mustUnderstand", "true")
	toElem.SetText(to)

	if err := attachSecurityHeader(header, mode, creds, session); err != nil {
		return nil, err
	}

	body := env.CreateElement("env:Body")

	payloadDoc := etree.NewDocument()
	if err := payloadDoc.ReadFromBytes(payload); err != nil {
		return nil, fmt.Errorf("failed to parse request payload: %w", err)
	}
	body.AddChild(payloadDoc.Root().Copy())

	return doc.WriteToBytes()
}

// attachSecurityHeader adds the wsse:Security header for the mode.
// Anonymous and the TLS-level certificate modes carry only a timestamp;
// message protection itself (signing, encryption) is the binding's job.
func attachSecurityHeader(header *etree.Element, mode Mode, creds *security.Credentials, session *SessionToken) error {
	sec := header.CreateElement("wsse:Security")
	sec.CreateAttr("env:mustUnderstand", "true")

	now := time.Now().UTC()
	ts := sec.CreateElement("wsu:Timestamp")
	ts.CreateAttr("wsu:Id", "TS-"+uuid.New().String())
	ts.CreateElement("wsu:Created").SetText(now.Format("2006-01-02T15:04:05.000Z"))
	ts.CreateElement("wsu:Expires").SetText(now.Add(5 * time.Minute).Format("2006-01-02T15:04:05.000Z"))

	switch mode {
	case ModeUsernamePassword:
		token := sec.CreateElement("wsse:UsernameToken")
		token.CreateAttr("wsu:Id", "UsernameToken-"+uuid.New().String())
		token.CreateElement("wsse:Username").SetText(creds.Username)
		password := token.CreateElement("wsse:Password")
		password.CreateAttr("Type", nsPasswordText)
		password.SetText(creds.Password)

	case ModeSecureConversation:
		// Echo the unattached token reference byte for byte so the
		// service resolves the established security context.
		refDoc := etree.NewDocument()
		if err := refDoc.ReadFromBytes(session.Reference); err != nil {
			return fmt.Errorf("failed to parse session token reference: %w", err)
		}
		sec.AddChild(refDoc.Root().Copy())
	}

	return nil
}

// extractBody pulls the first child of the SOAP body out of a response
// envelope, carrying ancestor namespace declarations along, or turns a
// SOAP fault into a FaultError.
func extractBody(envelope []byte) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(envelope); err != nil {
		return nil, fmt.Errorf("failed to parse response envelope: %w", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "Envelope" {
		return nil, fmt.Errorf("response is not a SOAP envelope")
	}

	body := root.FindElement("./*[local-name()='Body']")
	if body == nil {
		return nil, fmt.Errorf("response envelope has no body")
	}

	var child *etree.Element
	for _, el := range body.ChildElements() {
		child = el
		break
	}
	if child == nil {
		return nil, fmt.Errorf("response body is empty")
	}

	if child.Tag == "Fault" {
		return nil, parseFault(child)
	}

	extracted := child.Copy()
	copyNamespaces(extracted, body)

	out := etree.NewDocument()
	out.SetRoot(extracted)
	return out.WriteToBytes()
}

func parseFault(fault *etree.Element) error {
	fe := &FaultError{}
	if code := fault.FindElement(".//*[local-name()='Value']"); code != nil {
		fe.Code = strings.TrimSpace(code.Text())
	}
	if reason := fault.FindElement(".//*[local-name()='Text']"); reason != nil {
		fe.Reason = strings.TrimSpace(reason.Text())
	}
	if fe.Reason == "" {
		if faultString := fault.FindElement("./*[local-name()='faultstring']"); faultString != nil {
			fe.Reason = strings.TrimSpace(faultString.Text())
		}
	}
	return fe
}

// copyNamespaces carries xmlns declarations from the element's former
// ancestors onto the extracted element so it stays self-contained.
func copyNamespaces(dst, from *etree.Element) {
	for el := from; el != nil; el = el.Parent() {
		for _, attr := range el.Attr {
			if attr.Space != "xmlns" && !(attr.Space == "" && attr.Key == "xmlns") {
				continue
			}
			name := attr.Key
			if attr.Space == "xmlns" {
				name = "xmlns:" + attr.Key
			}
			if dst.SelectAttr(name) == nil {
				dst.CreateAttr(name, attr.Value)
			}
		}
	}
}
