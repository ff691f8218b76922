package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SecretsDir - стандартный путь Docker Secrets. Переопределяется в тестах.
var SecretsDir = "/run/secrets"

// ErrSecretNotFound is returned when a secret is set neither in the environment
// nor as a file in SecretsDir.
var ErrSecretNotFound = errors.New("secret not found")

// ReadSecret читает секрет сначала из переменной окружения с именем
// strings.ToUpper(name), затем из файла SecretsDir/name.
func ReadSecret(name string) (string, error) {
	if v := strings.TrimSpace(os.Getenv(strings.ToUpper(name))); v != "" {
		return v, nil
	}

	filePath := filepath.Join(SecretsDir, name)
	secretBytes, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrSecretNotFound, name)
		}
		return "", fmt.Errorf("failed to read secret file %s: %w", filePath, err)
	}
	secret := strings.TrimSpace(string(secretBytes))
	if secret == "" {
		return "", fmt.Errorf("%w: secret file %s is empty", ErrSecretNotFound, filePath)
	}
	return secret, nil
}

// readFirstSecret returns the first of names that resolves to a value.
func readFirstSecret(names ...string) (string, error) {
	for _, name := range names {
		v, err := ReadSecret(name)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, ErrSecretNotFound) {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: %s", ErrSecretNotFound, strings.Join(names, " or "))
}
