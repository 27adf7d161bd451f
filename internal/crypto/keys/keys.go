// Package keys manages partner key material and symmetric key derivation.
//
// Partner keypairs are RSA-2048, serialized as PEM (PKIX public,
// PKCS#8 private). Symmetric context keys are derived with HKDF-SHA256;
// the derivation is deterministic so the same secret always yields the
// same 32-byte key.
package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	dErrors "haven/pkg/domain-errors"
)

const (
	// rsaKeyBits is fixed by the partner intake contract.
	rsaKeyBits = 2048

	// DerivedKeySize is the byte length of every derived symmetric key.
	DerivedKeySize = 32
)

// hkdfInfo namespaces derived keys to this service. Changing it changes
// every derived key, so it is part of the partner contract.
var hkdfInfo = []byte("haven/v1/symmetric-context")

// KeyPair holds PEM-serialized partner key material.
type KeyPair struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

// GeneratePartnerKeyPair creates a fresh RSA-2048 keypair from the
// system's secure random source. Two calls never return equal material.
func GeneratePartnerKeyPair() (KeyPair, error) {
	private, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return KeyPair{}, fmt.Errorf("generate rsa keypair: %w", err)
	}

	privateDER, err := x509.MarshalPKCS8PrivateKey(private)
	if err != nil {
		return KeyPair{}, fmt.Errorf("marshal private key: %w", err)
	}
	publicDER, err := x509.MarshalPKIXPublicKey(&private.PublicKey)
	if err != nil {
		return KeyPair{}, fmt.Errorf("marshal public key: %w", err)
	}

	return KeyPair{
		PublicKey:  string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})),
		PrivateKey: string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privateDER})),
	}, nil
}

// ValidateKeyPair checks that both halves are present and parse as RSA
// key material. The error names the offending half.
func ValidateKeyPair(pair KeyPair) error {
	if pair.PublicKey == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "public key is required")
	}
	if pair.PrivateKey == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "private key is required")
	}
	if _, err := ParsePublicKey(pair.PublicKey); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "public key is malformed")
	}
	if _, err := ParsePrivateKey(pair.PrivateKey); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "private key is malformed")
	}
	return nil
}

// ParsePublicKey decodes a PEM-encoded RSA public key.
func ParsePublicKey(pemStr string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemStr))
	if block == nil {
		return nil, fmt.Errorf("no PEM block found")
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	rsaKey, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is not RSA")
	}
	if rsaKey.Size()*8 < rsaKeyBits {
		return nil, fmt.Errorf("public key modulus below %d bits", rsaKeyBits)
	}
	return rsaKey, nil
}

// ParsePrivateKey decodes a PEM-encoded RSA private key (PKCS#8 or PKCS#1).
func ParsePrivateKey(pemStr string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(pemStr))
	if block == nil {
		return nil, fmt.Errorf("no PEM block found")
	}
	if parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		rsaKey, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("private key is not RSA")
		}
		return rsaKey, nil
	}
	rsaKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return rsaKey, nil
}

// DeriveEncryptionKey derives a 32-byte symmetric key from a secret via
// HKDF-SHA256. Identical secrets always yield identical keys; this flow
// is independent of the partner keypair path and serves internal
// symmetric contexts.
func DeriveEncryptionKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "secret cannot be empty")
	}
	reader := hkdf.New(sha256.New, []byte(secret), nil, hkdfInfo)
	key := make([]byte, DerivedKeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return key, nil
}
