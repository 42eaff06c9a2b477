package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/hkdf"
)

const (
	minSecretLength = 32
	flashPrefix     = "__flash_"
)

var (
	signInfo    = []byte("recipebox cookie signing")
	encryptInfo = []byte("recipebox cookie encryption")
)

type keyPair struct {
	sign []byte
	aead cipher.AEAD
}

type Manager struct {
	keys     []keyPair
	defaults Options
}

// New creates a Manager. Each secret must be at least 32 characters.
func New(secrets []string, opts ...Option) (*Manager, error) {
	m := &Manager{
		defaults: applyOptions(Options{
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}, opts),
	}

	for i, s := range secrets {
		if s == "" {
			continue
		}
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
		kp, err := deriveKeys(s)
		if err != nil {
			return nil, err
		}
		m.keys = append(m.keys, kp)
	}
	if len(m.keys) == 0 {
		return nil, ErrNoSecret
	}
	return m, nil
}

func deriveKeys(secret string) (keyPair, error) {
	sign := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, signInfo), sign); err != nil {
		return keyPair{}, err
	}
	enc := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, encryptInfo), enc); err != nil {
		return keyPair{}, err
	}
	block, err := aes.NewCipher(enc)
	if err != nil {
		return keyPair{}, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return keyPair{}, err
	}
	return keyPair{sign: sign, aead: aead}, nil
}

func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) {
	o := applyOptions(m.defaults, opts)
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.SameSite,
	})
}

func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Delete expires the cookie using the manager's default attributes.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.defaults.Secure,
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
	})
}

func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) {
	m.Set(w, name, m.sign(name, value), opts...)
}

func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.verify(name, raw)
}

func (m *Manager) SetEncrypted(w http.ResponseWriter, name, value string, opts ...Option) error {
	enc, err := m.encrypt(name, value)
	if err != nil {
		return err
	}
	m.Set(w, name, enc, opts...)
	return nil
}

func (m *Manager) GetEncrypted(r *http.Request, name string) (string, error) {
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.decrypt(name, raw)
}

// SetFlash stores value as an encrypted JSON cookie readable once.
func (m *Manager) SetFlash(w http.ResponseWriter, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal flash: %w", err)
	}
	return m.SetEncrypted(w, flashPrefix+key, string(data))
}

// GetFlash reads and deletes the flash cookie for key.
func (m *Manager) GetFlash(w http.ResponseWriter, r *http.Request, key string, dest any) error {
	name := flashPrefix + key
	data, err := m.GetEncrypted(r, name)
	if err != nil {
		return err
	}
	m.Delete(w, name)
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("unmarshal flash: %w", err)
	}
	return nil
}

// The cookie name is bound into the MAC and the AEAD additional data so a
// value cannot be replayed under another name.

func mac(key []byte, name, value string) []byte {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(value))
	return h.Sum(nil)
}

func (m *Manager) sign(name, value string) string {
	sig := mac(m.keys[0].sign, name, value)
	return base64.RawURLEncoding.EncodeToString([]byte(value)) + "." + base64.RawURLEncoding.EncodeToString(sig)
}

func (m *Manager) verify(name, signed string) (string, error) {
	encoded, sigPart, ok := strings.Cut(signed, ".")
	if !ok {
		return "", ErrInvalidFormat
	}
	value, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidFormat
	}
	sig, err := base64.RawURLEncoding.DecodeString(sigPart)
	if err != nil {
		return "", ErrInvalidFormat
	}
	for _, k := range m.keys {
		if hmac.Equal(sig, mac(k.sign, name, string(value))) {
			return string(value), nil
		}
	}
	return "", ErrInvalidSignature
}

func (m *Manager) encrypt(name, value string) (string, error) {
	aead := m.keys[0].aead
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	out := aead.Seal(nonce, nonce, []byte(value), []byte(name))
	return base64.RawURLEncoding.EncodeToString(out), nil
}

func (m *Manager) decrypt(name, encoded string) (string, error) {
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidFormat
	}
	for _, k := range m.keys {
		ns := k.aead.NonceSize()
		if len(data) < ns {
			return "", ErrInvalidFormat
		}
		plain, err := k.aead.Open(nil, data[:ns], data[ns:], []byte(name))
		if err == nil {
			return string(plain), nil
		}
	}
	return "", ErrDecryptionFailed
}
