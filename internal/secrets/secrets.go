// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads passwords for encrypted PDFs from a directory of
// plain-text files. Each file holds one password: a file named after a PDF
// stem (e.g. "report" for report.pdf) applies to that document, and a file
// named "default" applies to every other document.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultKey names the password file tried for PDFs without their own entry.
const DefaultKey = "default"

// Passwords maps a PDF stem (or DefaultKey) to its password.
type Passwords map[string]string

// For returns the password for the PDF at pdfPath. The stem-specific entry
// wins over DefaultKey. The boolean is false when neither exists.
func (p Passwords) For(pdfPath string) (string, bool) {
	base := filepath.Base(pdfPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if pw, ok := p[stem]; ok {
		return pw, true
	}
	pw, ok := p[DefaultKey]
	return pw, ok
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (Passwords, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Passwords{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	passwords := make(Passwords)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read password file %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			passwords[strings.TrimSuffix(name, ".password")] = value
		}
	}

	return passwords, nil
}
