package hostvm

import (
	"crypto/ed25519"
	"fmt"

	"github.com/ChainSafe/go-schnorrkel"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// sr25519SigningContext is the domain-separation label Substrate uses for
// schnorrkel signatures over runtime-originated messages.
var sr25519SigningContext = []byte("substrate")

// IsMagicSignature reports whether sig is the mocking shortcut pattern:
// first 4 bytes de ad be ef, every remaining byte cd. Only ever consulted
// when the task runs with mock_signature_host — callers must gate on that
// flag themselves; this function does not.
func IsMagicSignature(sig []byte) bool {
	if len(sig) < 4 {
		return false
	}
	if sig[0] != 0xde || sig[1] != 0xad || sig[2] != 0xbe || sig[3] != 0xef {
		return false
	}
	for _, b := range sig[4:] {
		if b != 0xcd {
			return false
		}
	}
	return true
}

// VerifySignature checks sig over msg under pubKey using the named scheme
// ("ed25519", "sr25519", or "ecdsa").
func VerifySignature(scheme string, sig, msg, pubKey []byte) (bool, error) {
	switch scheme {
	case "ed25519":
		return verifyEd25519(sig, msg, pubKey)
	case "sr25519":
		return verifySr25519(sig, msg, pubKey)
	case "ecdsa":
		return verifyEcdsa(sig, msg, pubKey)
	default:
		return false, fmt.Errorf("hostvm: unknown signature scheme %q", scheme)
	}
}

func verifyEd25519(sig, msg, pubKey []byte) (bool, error) {
	if len(pubKey) != ed25519.PublicKeySize {
		return false, fmt.Errorf("hostvm: ed25519 public key must be %d bytes, got %d", ed25519.PublicKeySize, len(pubKey))
	}
	if len(sig) != ed25519.SignatureSize {
		return false, fmt.Errorf("hostvm: ed25519 signature must be %d bytes, got %d", ed25519.SignatureSize, len(sig))
	}
	return ed25519.Verify(ed25519.PublicKey(pubKey), msg, sig), nil
}

func verifySr25519(sig, msg, pubKey []byte) (bool, error) {
	if len(pubKey) != 32 {
		return false, fmt.Errorf("hostvm: sr25519 public key must be 32 bytes, got %d", len(pubKey))
	}
	if len(sig) != 64 {
		return false, fmt.Errorf("hostvm: sr25519 signature must be 64 bytes, got %d", len(sig))
	}
	var pubBytes [32]byte
	copy(pubBytes[:], pubKey)
	pub := schnorrkel.NewPublicKey(pubBytes)

	var sigBytes [64]byte
	copy(sigBytes[:], sig)
	signature := new(schnorrkel.Signature)
	if err := signature.Decode(sigBytes); err != nil {
		return false, fmt.Errorf("hostvm: decoding sr25519 signature: %w", err)
	}

	transcript := schnorrkel.NewSigningContext(sr25519SigningContext, msg)
	return pub.Verify(signature, transcript)
}

func verifyEcdsa(sig, msg, pubKey []byte) (bool, error) {
	if len(sig) < 64 {
		return false, fmt.Errorf("hostvm: ecdsa signature must be at least 64 bytes, got %d", len(sig))
	}
	pub, err := secp256k1.ParsePubKey(pubKey)
	if err != nil {
		return false, fmt.Errorf("hostvm: parsing secp256k1 public key: %w", err)
	}

	var r, s secp256k1.ModNScalar
	r.SetByteSlice(sig[0:32])
	s.SetByteSlice(sig[32:64])
	signature := ecdsa.NewSignature(&r, &s)

	return signature.Verify(msg, pub), nil
}
