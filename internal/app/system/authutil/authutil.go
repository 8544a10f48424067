// internal/app/system/authutil/authutil.go
package authutil

// Terminology: Credential Records
//   - Argon2id record: "$argon2id$v=19$m=…,t=…,p=…$<salt>$<hash>" — the scheme
//     for every newly created credential (fresh random salt per call)
//   - Legacy record: 64 lowercase hex chars (unsalted SHA-256) — retained only
//     so pre-existing teacher accounts keep working; never produced for new
//     credentials
//
// CheckPassword dispatches on the record's format, never on caller choice, so
// a record produced under one scheme is never misinterpreted as the other.

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 6
	// MaxPasswordLength caps password length to bound hashing cost.
	MaxPasswordLength = 128
	// TokenLength is the entropy of generated tokens in bytes.
	TokenLength = 32

	argon2Time    = 1
	argon2Memory  = 64 * 1024 // KiB
	argon2Threads = 4
	argon2KeyLen  = 32
	argon2SaltLen = 16

	argon2Prefix = "$argon2id$"
)

var (
	// ErrPasswordTooShort is returned when a password is below MinPasswordLength.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	// ErrPasswordTooLong is returned when a password exceeds MaxPasswordLength.
	ErrPasswordTooLong = errors.New("password must be at most 128 characters")
	// ErrPasswordCommon is returned when a password is on the common-password list.
	ErrPasswordCommon = errors.New("password is too common; please choose another")
)

// commonPasswords are rejected outright (case-insensitive).
var commonPasswords = map[string]struct{}{
	"123456":   {},
	"password": {},
	"qwerty":   {},
	"abc123":   {},
	"iloveyou": {},
	"letmein":  {},
	"football": {},
	"welcome":  {},
}

// ValidatePassword checks length and common-password rules.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	if _, bad := commonPasswords[strings.ToLower(password)]; bad {
		return ErrPasswordCommon
	}
	return nil
}

// PasswordRules describes the password requirements for display to users.
func PasswordRules() string {
	return fmt.Sprintf("Passwords must be %d-%d characters and not a commonly used password.",
		MinPasswordLength, MaxPasswordLength)
}

// HashPassword hashes a password with Argon2id under a fresh random salt and
// returns the encoded record. Two calls with the same password produce
// different records, so records must only ever be compared via CheckPassword.
func HashPassword(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Prefix,
		argon2.Version,
		argon2Memory, argon2Time, argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// CheckPassword verifies a password against a stored credential record,
// dispatching on the record's format. Malformed records and mismatches both
// report false; verification never fails with an error.
func CheckPassword(password, record string) bool {
	if strings.HasPrefix(record, argon2Prefix) {
		return checkArgon2(password, record)
	}
	return checkLegacy(password, record)
}

func checkArgon2(password, record string) bool {
	parts := strings.Split(record, "$")
	// ["", "argon2id", "v=19", "m=…,t=…,p=…", salt, hash]
	if len(parts) != 6 {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory uint32
	var time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

// checkLegacy compares against an unsalted SHA-256 hex record.
func checkLegacy(password, record string) bool {
	if len(record) != sha256.Size*2 {
		return false
	}
	if _, err := hex.DecodeString(record); err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(LegacyHashPassword(password)), []byte(strings.ToLower(record))) == 1
}

// LegacyHashPassword computes the deterministic, unsalted SHA-256 hex digest
// used by pre-existing teacher accounts. It is compared by direct equality in
// the teacher login path and must not be used for any new credential.
func LegacyHashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// GenerateToken returns a cryptographically random, URL-safe token with
// TokenLength bytes of entropy. Used for password reset tokens.
// Panics if the system's cryptographic random number generator fails.
func GenerateToken() string {
	b := make([]byte, TokenLength)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand.Read failed: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
