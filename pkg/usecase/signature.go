package usecase

import (
	"crypto/hmac"
	"crypto/sha1" // #nosec G505 -- GitHub signs X-Hub-Signature with HMAC-SHA1
	"encoding/hex"
	"hash"
	"strings"

	"github.com/m-mizutani/approval-checker/pkg/domain/model"
)

// SupportedSignatureAlgorithm is the only digest accepted in X-Hub-Signature
const SupportedSignatureAlgorithm = "sha1"

var signatureHashes = map[string]func() hash.Hash{
	SupportedSignatureAlgorithm: sha1.New,
}

// ParseSignature extracts the signature from a header of the form
// "<algorithm>=<signature>".
func ParseSignature(header string) (string, error) {
	parts := strings.Split(header, "=")
	if len(parts) != 2 {
		return "", &model.SignatureError{
			Kind:    model.ErrKindMalformedHeader,
			Message: "Malformed signature header. Expected format: algorithm=signature",
		}
	}

	algo, signature := parts[0], parts[1]
	if _, ok := signatureHashes[algo]; !ok {
		return "", &model.SignatureError{
			Kind:    model.ErrKindUnsupportedAlgorithm,
			Message: "Unsupported signature hash algorithm. Expected " + SupportedSignatureAlgorithm,
		}
	}

	return signature, nil
}

// VerifySignature checks signature against the lower case hex HMAC of body
// keyed with secret. The comparison is constant time.
func VerifySignature(body []byte, signature, secret string) error {
	mac := hmac.New(signatureHashes[SupportedSignatureAlgorithm], []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return &model.SignatureError{
			Kind:    model.ErrKindSignatureMismatch,
			Message: "Computed signature does not match request signature.",
		}
	}
	return nil
}
