package service

import (
	"context"
	"encoding/base64"

	"gocloud.dev/secrets"

	apperrors "github.com/allisson/posadmin/internal/errors"

	// Register KMS provider drivers for keeper URIs
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// signingKeyLoader implements SigningKeyLoader. When a ciphertext and KMS key
// URI are configured, the secret is decrypted through a gocloud.dev keeper;
// otherwise the plain environment value is used as-is.
type signingKeyLoader struct {
	plainSecret      string
	secretCiphertext string
	kmsKeyURI        string
}

// NewSigningKeyLoader creates a SigningKeyLoader from configuration values.
// Supported keeper URIs: gcpkms://, awskms://, azurekeyvault://, hashivault://,
// base64key:// (local development).
func NewSigningKeyLoader(plainSecret, secretCiphertext, kmsKeyURI string) SigningKeyLoader {
	return &signingKeyLoader{
		plainSecret:      plainSecret,
		secretCiphertext: secretCiphertext,
		kmsKeyURI:        kmsKeyURI,
	}
}

// Load resolves the token signing secret. Absence of any configured secret is
// an error; callers must treat it as fatal at startup.
func (s *signingKeyLoader) Load(ctx context.Context) ([]byte, error) {
	if s.secretCiphertext != "" && s.kmsKeyURI != "" {
		return s.decrypt(ctx)
	}

	if s.plainSecret != "" {
		return []byte(s.plainSecret), nil
	}

	return nil, apperrors.New(
		"auth token secret is not configured: set AUTH_TOKEN_SECRET or AUTH_TOKEN_SECRET_CIPHERTEXT with KMS_KEY_URI",
	)
}

// decrypt opens the configured keeper and decrypts the base64 ciphertext.
func (s *signingKeyLoader) decrypt(ctx context.Context) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(s.secretCiphertext)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decode token secret ciphertext")
	}

	keeper, err := secrets.OpenKeeper(ctx, s.kmsKeyURI)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open KMS keeper")
	}
	defer keeper.Close()

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decrypt token secret")
	}

	return plaintext, nil
}
