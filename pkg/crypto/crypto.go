package crypto

import (
	"crypto/rand"
	"encoding/base64"
)

func GenerateRandomString() (string, error) {
	b, err := GenerateRandomBytes(32)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(b), nil
}

func GenerateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}

	return b, nil
}
