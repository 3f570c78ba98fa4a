package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 2
	argonKeyLen  = 32
	argonSaltLen = 16
)

func HashPassword(password string) ([]byte, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=19$t=%d,m=%d,p=%d$%s$%s",
		argonTime, argonMemory, argonThreads,
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(hash))

	return []byte(encoded), nil
}

func VerifyPassword(password string, encodedHash []byte) (bool, error) {
	// $argon2id$v=19$t=...,m=...,p=...$<salt>$<hash>
	parts := strings.Split(string(encodedHash), "$")
	if len(parts) != 6 || parts[1] != "argon2id" || parts[2] != "v=19" {
		return false, fmt.Errorf("parse hash: malformed encoding")
	}

	var (
		timeCost uint32
		memory   uint32
		threads  uint8
	)
	if _, err := fmt.Sscanf(parts[3], "t=%d,m=%d,p=%d", &timeCost, &memory, &threads); err != nil {
		return false, fmt.Errorf("parse hash params: %w", err)
	}

	salt, err := base64.StdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("decode salt: %w", err)
	}

	hash, err := base64.StdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("decode hash: %w", err)
	}

	computed := argon2.IDKey([]byte(password), salt, timeCost, memory, threads, uint32(len(hash)))

	return subtle.ConstantTimeCompare(hash, computed) == 1, nil
}
