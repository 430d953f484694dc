// Package seed loads guest credentials from a YAML file into the store.
package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gravadigital/wedding-api/internal/domain/guest"
	"github.com/gravadigital/wedding-api/internal/storage/postgres"
	"github.com/gravadigital/wedding-api/internal/validation"
)

// Entry is one credential as written in the seed file
type Entry struct {
	Password   string `yaml:"password"`
	GuestName  string `yaml:"guest_name"`
	GuestGroup string `yaml:"guest_group"`
}

// File is the seed file layout
type File struct {
	Guests []Entry `yaml:"guests"`
}

// LoadFile reads and parses a seed file
func LoadFile(path string) ([]*guest.Credential, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes seed YAML and validates every entry. Passwords repeated
// within the file are rejected.
func Parse(data []byte) ([]*guest.Credential, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	v := validation.GuestValidation{}
	seen := make(map[string]bool, len(f.Guests))
	credentials := make([]*guest.Credential, 0, len(f.Guests))

	for i, e := range f.Guests {
		if err := v.ValidatePassword(e.Password); err != nil {
			return nil, fmt.Errorf("guests[%d]: %w", i, err)
		}
		group, err := v.ValidateGroup(e.GuestGroup)
		if err != nil {
			return nil, fmt.Errorf("guests[%d]: %w", i, err)
		}
		if seen[e.Password] {
			return nil, fmt.Errorf("guests[%d]: duplicate password %q", i, e.Password)
		}
		seen[e.Password] = true

		credentials = append(credentials, guest.NewCredential(e.Password, e.GuestName, group))
	}

	return credentials, nil
}

// Apply inserts credentials whose password is not stored yet and returns
// how many were inserted
func Apply(ctx context.Context, repo postgres.GuestRepository, credentials []*guest.Credential) (int64, error) {
	if len(credentials) == 0 {
		return 0, nil
	}
	return repo.CreateIfAbsent(ctx, credentials)
}
