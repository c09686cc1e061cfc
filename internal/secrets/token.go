package secrets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups the app’s secrets in the OS keychain.
	KeyringService = "gamecraft"
)

func GetSessionToken(account string) (string, error) {
	if strings.TrimSpace(account) == "" {
		return "", errors.New("keyring account name is empty")
	}
	tok, err := keyring.Get(KeyringService, account)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(tok) == "" {
		return "", errors.New("session token not found in keychain")
	}
	return tok, nil
}

func SetSessionToken(account string, token string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, account, token)
}

func DeleteSessionToken(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	err := keyring.Delete(KeyringService, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// SessionAccount namespaces the keychain entry per data dir so two engines
// with separate data dirs don't clobber each other.
func SessionAccount(dataDir string) string {
	return fmt.Sprintf("gamecraft:session:%s", dataDir)
}
