package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotLoggedIn is returned when no token pair has been saved.
var ErrNotLoggedIn = errors.New("not logged in: run `timetrack users login` first")

// Tokens is the pair returned by register and login.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// LoadTokens reads the saved pair from path.
func LoadTokens(path string) (Tokens, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Tokens{}, ErrNotLoggedIn
		}
		return Tokens{}, err
	}
	var t Tokens
	if err := json.Unmarshal(data, &t); err != nil {
		return Tokens{}, fmt.Errorf("corrupt token file %s: %w", path, err)
	}
	if t.Access == "" && t.Refresh == "" {
		return Tokens{}, ErrNotLoggedIn
	}
	return t, nil
}

// SaveTokens writes the pair readable by the current user only.
func SaveTokens(path string, t Tokens) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// ClearTokens removes the saved pair. A missing file is not an error.
func ClearTokens(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
