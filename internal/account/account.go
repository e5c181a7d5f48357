// Package account manages the single local account row: a bcrypt-hashed
// password and an email address encrypted at rest with AES-GCM. Only
// library primitives are used; there is no custom protocol.
package account

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNoAccount      = errors.New("no account configured")
	ErrAccountExists  = errors.New("account already exists")
	ErrWrongPassword  = errors.New("wrong password")
	ErrInvalidKeySize = errors.New("encryption key must be 16, 24, or 32 bytes")
)

type Manager struct {
	db   *sql.DB
	aead cipher.AEAD
}

// New prepares the account table and the AES-GCM cipher. key must be a
// valid AES key (16, 24, or 32 bytes).
func New(db *sql.DB, key []byte) (*Manager, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, ErrInvalidKeySize
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS account (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			email_enc BLOB NOT NULL,
			password_hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return nil, err
	}
	return &Manager{db: db, aead: aead}, nil
}

// Create stores the account. Only one account may exist.
func (m *Manager) Create(email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	enc, err := m.encrypt(email)
	if err != nil {
		return err
	}
	var exists int
	if err := m.db.QueryRow(`SELECT COUNT(*) FROM account WHERE id = 1`).Scan(&exists); err != nil {
		return err
	}
	if exists > 0 {
		return ErrAccountExists
	}
	_, err = m.db.Exec(`INSERT INTO account (id, email_enc, password_hash) VALUES (1, ?, ?)`, enc, string(hash))
	return err
}

// Authenticate checks password against the stored hash.
func (m *Manager) Authenticate(password string) error {
	var hash string
	err := m.db.QueryRow(`SELECT password_hash FROM account WHERE id = 1`).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoAccount
	}
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return ErrWrongPassword
	}
	return nil
}

// Email returns the decrypted email address.
func (m *Manager) Email() (string, error) {
	var enc []byte
	err := m.db.QueryRow(`SELECT email_enc FROM account WHERE id = 1`).Scan(&enc)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoAccount
	}
	if err != nil {
		return "", err
	}
	return m.decrypt(enc)
}

// SetEmail replaces the stored email after verifying the password.
func (m *Manager) SetEmail(password, email string) error {
	if err := m.Authenticate(password); err != nil {
		return err
	}
	enc, err := m.encrypt(email)
	if err != nil {
		return err
	}
	_, err = m.db.Exec(`UPDATE account SET email_enc = ?, updated_at = CURRENT_TIMESTAMP WHERE id = 1`, enc)
	return err
}

// SetPassword replaces the password after verifying the current one.
func (m *Manager) SetPassword(current, next string) error {
	if err := m.Authenticate(current); err != nil {
		return err
	}
	if next == "" {
		return fmt.Errorf("new password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = m.db.Exec(`UPDATE account SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = 1`, string(hash))
	return err
}

// encrypt seals plaintext with a random nonce; the nonce is prepended to
// the ciphertext.
func (m *Manager) encrypt(plaintext string) ([]byte, error) {
	nonce := make([]byte, m.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return m.aead.Seal(nonce, nonce, []byte(plaintext), nil), nil
}

func (m *Manager) decrypt(data []byte) (string, error) {
	if len(data) < m.aead.NonceSize() {
		return "", fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := data[:m.aead.NonceSize()], data[m.aead.NonceSize():]
	plaintext, err := m.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decrypt email: %w", err)
	}
	return string(plaintext), nil
}
