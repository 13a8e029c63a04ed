// Package security implements credentials handling and the WS-Trust
// key derivation used by the DSS-P secure conversation.
package security

import (
	"crypto/hmac"
	"crypto/sha1"
	"fmt"
)

// DeriveKey computes the shared symmetric session key from the client
// nonce and the server entropy using the WS-Trust P_SHA1 pseudorandom
// function (the computed key algorithm
// http://docs.oasis-open.org/ws-sx/ws-trust/200512/CK/PSHA1).
//
// The function is deterministic and pure: P_SHA1 output blocks are
// concatenated until keySizeBits/8 bytes are available, then truncated
// to the exact length.
func DeriveKey(clientNonce, serverEntropy []byte, keySizeBits int) ([]byte, error) {
	if keySizeBits <= 0 {
		return nil, fmt.Errorf("key size must be positive, got %d", keySizeBits)
	}
	if keySizeBits%8 != 0 {
		return nil, fmt.Errorf("key size must be byte aligned, got %d bits", keySizeBits)
	}

	size := keySizeBits / 8
	mac := hmac.New(sha1.New, clientNonce)

	// A(0) is the seed; A(i) = HMAC(secret, A(i-1))
	a := serverEntropy
	key := make([]byte, 0, size)

	for len(key) < size {
		mac.Reset()
		mac.Write(a)
		a = mac.Sum(nil)

		mac.Reset()
		mac.Write(a)
		mac.Write(serverEntropy)
		key = mac.Sum(key)
	}

	return key[:size], nil
}
