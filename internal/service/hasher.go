package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/semaphore"
)

// Upper bounds accepted when decoding a stored hash.
const (
	maxArgon2MemoryKiB  = 4 * 1024 * 1024 // 4 GiB
	maxArgon2Iterations = 64
	maxArgon2KeyLength  = 1024
)

// Argon2Params are the argon2id cost parameters used for new hashes.
type Argon2Params struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params mirrors the reference argon2id defaults (m=19456, t=2, p=1).
var DefaultArgon2Params = Argon2Params{
	MemoryKiB:   19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

var _ PasswordHasher = (*Argon2idHasher)(nil)

// Argon2idHasher implements PasswordHasher using argon2id.
// At most workers hashes are computed at once; callers beyond that wait for a slot.
type Argon2idHasher struct {
	params Argon2Params
	slots  *semaphore.Weighted
}

// NewArgon2idHasher creates a new Argon2idHasher. workers below 1 is treated as 1.
func NewArgon2idHasher(params Argon2Params, workers int) *Argon2idHasher {
	if workers < 1 {
		workers = 1
	}
	return &Argon2idHasher{
		params: params,
		slots:  semaphore.NewWeighted(int64(workers)),
	}
}

// Hash produces an argon2id hash of the password in PHC string format:
// $argon2id$v=19$m=19456,t=2,p=1$<salt>$<hash>
func (h *Argon2idHasher) Hash(ctx context.Context, password []byte) (string, string, error) {
	if len(password) == 0 {
		return "", "", ErrEmptyPassword
	}

	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", "", fmt.Errorf("failed to generate salt: %w", err)
	}

	if err := h.slots.Acquire(ctx, 1); err != nil {
		return "", "", fmt.Errorf("failed to acquire hashing worker: %w", err)
	}
	key := argon2.IDKey(password, salt, h.params.Iterations, h.params.MemoryKiB, h.params.Parallelism, h.params.KeyLength)
	h.slots.Release(1)

	encodedSalt := base64.RawStdEncoding.EncodeToString(salt)
	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.MemoryKiB,
		h.params.Iterations,
		h.params.Parallelism,
		encodedSalt,
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encodedSalt, encoded, nil
}

// Verify recomputes the hash with the parameters embedded in encodedHash and
// compares in constant time.
func (h *Argon2idHasher) Verify(ctx context.Context, password []byte, encodedHash string) (bool, error) {
	decoded, err := decodeArgon2idHash(encodedHash)
	if err != nil {
		log.Warn().Err(err).Msg("[Argon2idHasher.Verify] Stored hash could not be decoded")
		return false, nil
	}

	if err := h.slots.Acquire(ctx, 1); err != nil {
		return false, fmt.Errorf("failed to acquire hashing worker: %w", err)
	}
	computed := argon2.IDKey(password, decoded.salt, decoded.iterations, decoded.memory, decoded.parallelism, uint32(len(decoded.key)))
	h.slots.Release(1)

	return subtle.ConstantTimeCompare(computed, decoded.key) == 1, nil
}

type argon2idHash struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	salt        []byte
	key         []byte
}

func decodeArgon2idHash(encoded string) (*argon2idHash, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, fmt.Errorf("invalid hash format")
	}
	if parts[1] != "argon2id" {
		return nil, fmt.Errorf("unsupported hash algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, fmt.Errorf("invalid version segment: %w", err)
	}
	if version != argon2.Version {
		return nil, fmt.Errorf("unsupported argon2 version: %d", version)
	}

	var memory, iterations, parallelism uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return nil, fmt.Errorf("invalid parameter segment: %w", err)
	}
	if memory == 0 || memory > maxArgon2MemoryKiB {
		return nil, fmt.Errorf("memory parameter out of range: %d", memory)
	}
	if iterations == 0 || iterations > maxArgon2Iterations {
		return nil, fmt.Errorf("iterations parameter out of range: %d", iterations)
	}
	if parallelism == 0 || parallelism > 255 {
		return nil, fmt.Errorf("parallelism parameter out of range: %d", parallelism)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, fmt.Errorf("invalid salt encoding: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, fmt.Errorf("invalid hash encoding: %w", err)
	}
	if len(key) == 0 || len(key) > maxArgon2KeyLength {
		return nil, fmt.Errorf("invalid hash key length: %d", len(key))
	}

	return &argon2idHash{
		memory:      memory,
		iterations:  iterations,
		parallelism: uint8(parallelism),
		salt:        salt,
		key:         key,
	}, nil
}
