package bot

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// Request headers carrying the interaction signature.
const (
	HeaderSignature = "X-Signature-Ed25519"
	HeaderTimestamp = "X-Signature-Timestamp"
)

// ErrBadSignature is returned when a request fails signature verification.
var ErrBadSignature = errors.New("bot: bad request signature")

// Verifier checks that requests were signed by Discord.
type Verifier struct {
	key ed25519.PublicKey
}

// NewVerifier parses the application's hex encoded public key.
func NewVerifier(publicKeyHex string) (*Verifier, error) {
	raw, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("bot: decode public key: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("bot: public key is %d bytes, want %d", len(raw), ed25519.PublicKeySize)
	}
	return &Verifier{key: ed25519.PublicKey(raw)}, nil
}

// Verify checks the signature headers of r against its body.
// The body is left readable for the caller.
func (v *Verifier) Verify(r *http.Request) error {
	if !discordgo.VerifyInteraction(r, v.key) {
		return ErrBadSignature
	}
	return nil
}
