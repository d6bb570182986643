package gateway

import "golang.org/x/crypto/bcrypt"

// HashAPIKey hashes a merchant API key for storage.
func HashAPIKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyAPIKey checks a presented API key against its stored hash.
func VerifyAPIKey(hash, key string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
		return ErrInvalidAPIKey
	}
	return nil
}
