// Package envelope implements hybrid encryption for partner delivery.
//
// Each routing context is sealed with a fresh random 256-bit content key
// under AES-256-GCM, and the content key is wrapped for the partner with
// RSA-OAEP/SHA-256. A verification failure of any field is fatal for the
// message; there is no fallback to plaintext anywhere in this package.
package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"haven/internal/crypto/keys"
	routingmodels "haven/internal/routing/models"
	dErrors "haven/pkg/domain-errors"
)

// Algorithm is the only symmetric scheme this service emits or accepts.
const Algorithm = "aes-256-gcm"

const (
	cekSize = 32 // AES-256 content encryption key
	ivSize  = 12 // 96-bit GCM nonce
	tagSize = 16 // 128-bit GCM auth tag
)

// EncryptedPayload is the wire contract crossing the partner boundary.
// All five fields are required together; decryption treats a missing or
// altered field as tampering.
type EncryptedPayload struct {
	EncryptedData string `json:"encryptedData"`
	EncryptedKey  string `json:"encryptedKey"`
	IV            string `json:"iv"`
	AuthTag       string `json:"authTag"`
	Algorithm     string `json:"algorithm"`
}

// EncryptForPartner seals a routing context for the crisis-response
// partner. The CEK and IV are freshly drawn from the secure random source
// on every call and never reused, so encrypting the same context twice
// yields different ciphertext.
func EncryptForPartner(rc routingmodels.RoutingContext, partnerPublicKeyPEM string) (*EncryptedPayload, error) {
	publicKey, err := keys.ParsePublicKey(partnerPublicKeyPEM)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeEncryption, "partner public key is malformed")
	}

	plaintext, err := json.Marshal(rc)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeEncryption, "serialize routing context")
	}

	cek := make([]byte, cekSize)
	if _, err := rand.Read(cek); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeEncryption, "generate content key")
	}
	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeEncryption, "generate iv")
	}

	sealed, err := gcmSeal(cek, iv, plaintext)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeEncryption, "seal routing context")
	}
	ciphertext := sealed[:len(sealed)-tagSize]
	authTag := sealed[len(sealed)-tagSize:]

	wrappedKey, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, publicKey, cek, nil)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeEncryption, "wrap content key")
	}

	return &EncryptedPayload{
		EncryptedData: base64.StdEncoding.EncodeToString(ciphertext),
		EncryptedKey:  base64.StdEncoding.EncodeToString(wrappedKey),
		IV:            base64.StdEncoding.EncodeToString(iv),
		AuthTag:       base64.StdEncoding.EncodeToString(authTag),
		Algorithm:     Algorithm,
	}, nil
}

// DecryptPartnerResponse opens an envelope with the partner private key.
// Every failure mode — missing field, wrong algorithm, wrong key, tag
// mismatch — returns a decryption error and nothing else. Partial
// results are never produced.
func DecryptPartnerResponse(payload *EncryptedPayload, partnerPrivateKeyPEM string) (*routingmodels.RoutingContext, error) {
	if payload == nil {
		return nil, dErrors.New(dErrors.CodeDecryption, "envelope is nil")
	}
	for field, value := range map[string]string{
		"encryptedData": payload.EncryptedData,
		"encryptedKey":  payload.EncryptedKey,
		"iv":            payload.IV,
		"authTag":       payload.AuthTag,
		"algorithm":     payload.Algorithm,
	} {
		if value == "" {
			return nil, dErrors.Newf(dErrors.CodeDecryption, "envelope missing required field: %s", field)
		}
	}
	if payload.Algorithm != Algorithm {
		return nil, dErrors.Newf(dErrors.CodeDecryption, "unsupported algorithm %q", payload.Algorithm)
	}

	privateKey, err := keys.ParsePrivateKey(partnerPrivateKeyPEM)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDecryption, "partner private key is malformed")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(payload.EncryptedData)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDecryption, "decode encryptedData")
	}
	wrappedKey, err := base64.StdEncoding.DecodeString(payload.EncryptedKey)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDecryption, "decode encryptedKey")
	}
	iv, err := base64.StdEncoding.DecodeString(payload.IV)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDecryption, "decode iv")
	}
	authTag, err := base64.StdEncoding.DecodeString(payload.AuthTag)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDecryption, "decode authTag")
	}
	if len(iv) != ivSize {
		return nil, dErrors.Newf(dErrors.CodeDecryption, "iv must be %d bytes", ivSize)
	}
	if len(authTag) != tagSize {
		return nil, dErrors.Newf(dErrors.CodeDecryption, "authTag must be %d bytes", tagSize)
	}

	cek, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, privateKey, wrappedKey, nil)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeDecryption, "content key unwrap failed")
	}
	if len(cek) != cekSize {
		return nil, dErrors.Newf(dErrors.CodeDecryption, "content key must be %d bytes", cekSize)
	}

	plaintext, err := gcmOpen(cek, iv, append(ciphertext, authTag...))
	if err != nil {
		return nil, dErrors.New(dErrors.CodeDecryption, "authentication failed")
	}

	var rc routingmodels.RoutingContext
	if err := json.Unmarshal(plaintext, &rc); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDecryption, "decode routing context")
	}
	return &rc, nil
}

func gcmSeal(key, iv, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init gcm: %w", err)
	}
	return gcm.Seal(nil, iv, plaintext, nil), nil
}

func gcmOpen(key, iv, sealed []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init gcm: %w", err)
	}
	return gcm.Open(nil, iv, sealed, nil)
}
