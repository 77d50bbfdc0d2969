package pyenv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// placeholderEntries are the settings the aggregation app reads from its
// env file. Values are stand-ins a human replaces with real secrets.
var placeholderEntries = [][2]string{
	{"SERVICE_ACCOUNT_FILE", "service_account.json"},
	{"GOOGLE_SHEET_ID", "your-google-sheet-id"},
	{"OPENAI_API_KEY", "your-openai-api-key"},
	{"OVERWRITE_PDFS", "False"},
}

// PlaceholderKeys returns the keys the generated env file carries.
func PlaceholderKeys() []string {
	keys := make([]string, 0, len(placeholderEntries))
	for _, entry := range placeholderEntries {
		keys = append(keys, entry[0])
	}
	return keys
}

// WriteEnvFile generates the placeholder configuration file: plain text,
// one KEY=value pair per line, all entries in a single atomic write. An
// existing file is left untouched unless force is set, so re-running the
// bootstrap never clobbers real secrets with placeholders.
func WriteEnvFile(path string, force bool) (bool, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		} else if !os.IsNotExist(err) {
			return false, fmt.Errorf("failed to check env file: %w", err)
		}
	}

	var b strings.Builder
	for _, entry := range placeholderEntries {
		fmt.Fprintf(&b, "%s=%s\n", entry[0], entry[1])
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), ".env-*")
	if err != nil {
		return false, fmt.Errorf("failed to create temp env file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.WriteString(b.String()); err != nil {
		tempFile.Close()
		return false, fmt.Errorf("failed to write env file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return false, fmt.Errorf("failed to close env file: %w", err)
	}
	if err := os.Chmod(tempFile.Name(), 0600); err != nil {
		return false, fmt.Errorf("failed to set env file permissions: %w", err)
	}

	if err := os.Rename(tempFile.Name(), path); err != nil {
		return false, fmt.Errorf("failed to place env file: %w", err)
	}

	return true, nil
}

// ReadEnvKeys returns the keys present in an env file, one KEY=value
// pair per line. Blank lines and comments are skipped.
func ReadEnvKeys(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, _, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}
