package redis

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"time"
)

// SessionCache holds token -> user id entries in Redis with encryption.
// It is a read-through cache in front of the relational session store:
// entries carry a TTL capped at the session's remaining lifetime, and
// revocation removes the entry. The SQL store stays the source of truth.
type SessionCache struct {
	encryptionKey []byte
}

var (
	setCacheValue = Set
	getCacheValue = Get
	delCacheValue = Del
)

// NewSessionCache creates a new session cache
func NewSessionCache(encryptionKeyHex string) (*SessionCache, error) {
	key, err := hex.DecodeString(encryptionKeyHex)
	if err != nil {
		return nil, errors.New("invalid encryption key hex")
	}
	if len(key) != 32 {
		return nil, errors.New("encryption key must be 32 bytes (64 hex chars)")
	}
	return &SessionCache{encryptionKey: key}, nil
}

// Put stores an encrypted token -> user id entry with the given TTL
func (s *SessionCache) Put(ctx context.Context, token, userID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	encrypted, err := s.encrypt([]byte(userID))
	if err != nil {
		return err
	}

	return setCacheValue(ctx, "session:"+token, encrypted, ttl)
}

// Get retrieves and decrypts the user id cached for a token
func (s *SessionCache) Get(ctx context.Context, token string) (string, error) {
	encrypted, err := getCacheValue(ctx, "session:"+token)
	if err != nil {
		return "", err
	}

	userID, err := s.decrypt(encrypted)
	if err != nil {
		return "", err
	}
	return string(userID), nil
}

// Invalidate removes the entry for a token
func (s *SessionCache) Invalidate(ctx context.Context, token string) error {
	return delCacheValue(ctx, "session:"+token)
}

func (s *SessionCache) encrypt(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)
	return hex.EncodeToString(ciphertext), nil
}

func (s *SessionCache) decrypt(ciphertextHex string) ([]byte, error) {
	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}
