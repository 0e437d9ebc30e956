package session

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/hkdf"
)

const (
	hashKeyLen  = 64
	blockKeyLen = 32
)

var hkdfSalt = []byte("simaset/session")

// DeriveKeys expands secret into an HMAC key and an AES-256 key.
func DeriveKeys(secret string) (hashKey, blockKey []byte, err error) {
	if secret == "" {
		return nil, nil, errors.New("derive session keys: empty secret")
	}
	kdf := hkdf.New(sha256.New, []byte(secret), hkdfSalt, []byte("cookie"))
	hashKey = make([]byte, hashKeyLen)
	blockKey = make([]byte, blockKeyLen)
	if _, err := io.ReadFull(kdf, hashKey); err != nil {
		return nil, nil, fmt.Errorf("derive hash key: %w", err)
	}
	if _, err := io.ReadFull(kdf, blockKey); err != nil {
		return nil, nil, fmt.Errorf("derive block key: %w", err)
	}
	return hashKey, blockKey, nil
}

// NewCookieStore builds the cookie store. With an empty secret random keys
// are generated, so sessions do not survive a restart; ephemeral is true in
// that case.
func NewCookieStore(secret string, secure bool) (store *sessions.CookieStore, ephemeral bool, err error) {
	var hashKey, blockKey []byte
	if secret == "" {
		hashKey = securecookie.GenerateRandomKey(hashKeyLen)
		blockKey = securecookie.GenerateRandomKey(blockKeyLen)
		if hashKey == nil || blockKey == nil {
			return nil, false, errors.New("generate random session keys")
		}
		ephemeral = true
	} else {
		hashKey, blockKey, err = DeriveKeys(secret)
		if err != nil {
			return nil, false, err
		}
	}

	store = sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store, ephemeral, nil
}
