package client

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultTokenKey is the key the token is stored under in a FileStore.
const DefaultTokenKey = "authToken"

// CredentialProvider yields the bearer token for a request. An empty token
// means the request goes out without an Authorization header.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// EnvToken reads the token from the named environment variable on every call.
type EnvToken string

func (e EnvToken) Token(context.Context) (string, error) {
	return os.Getenv(string(e)), nil
}

// FileStore is a persisted key-value file (YAML mapping). It is re-read on
// every call, so a token written by another tool is picked up immediately.
// A missing file holds no token.
type FileStore struct {
	Path string
	Key  string
}

func (s FileStore) Token(context.Context) (string, error) {
	values, err := s.Load()
	if err != nil {
		return "", err
	}

	key := s.Key
	if key == "" {
		key = DefaultTokenKey
	}

	return values[key], nil
}

func (s FileStore) Load() (map[string]string, error) {
	raw, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read token store: %w", err)
	}

	values := map[string]string{}
	if err = yaml.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("parse token store %s: %w", s.Path, err)
	}

	return values, nil
}

// Save stores value under key, keeping the other entries.
func (s FileStore) Save(key, value string) error {
	values, err := s.Load()
	if err != nil {
		return err
	}

	values[key] = value

	raw, err := yaml.Marshal(values)
	if err != nil {
		return err
	}

	return os.WriteFile(s.Path, raw, 0o600)
}

// ChainProvider returns the first non-empty token.
type ChainProvider []CredentialProvider

func (c ChainProvider) Token(ctx context.Context) (string, error) {
	for _, p := range c {
		token, err := p.Token(ctx)
		if err != nil {
			return "", err
		}
		if token != "" {
			return token, nil
		}
	}

	return "", nil
}
