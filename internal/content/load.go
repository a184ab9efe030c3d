package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Load returns the built-in copy when path is empty, otherwise the YAML file at path.
// The result is validated against defaultPackage before it is returned.
func Load(path, defaultPackage string) (*Site, error) {
	site := Default()
	if strings.TrimSpace(path) != "" {
		var err error
		if site, err = LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := site.Validate(defaultPackage); err != nil {
		return nil, err
	}
	return site, nil
}

// LoadFile reads a YAML content file. Unknown keys are rejected.
func LoadFile(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", path, err)
	}
	return Decode(bytes.NewReader(data))
}

// Decode parses YAML content from r.
func Decode(r io.Reader) (*Site, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var site Site
	if err := dec.Decode(&site); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidContent)
		}
		return nil, fmt.Errorf("content: decode: %w", err)
	}
	return &site, nil
}

// Validate checks field constraints plus the rules the struct tags cannot express:
// package names are unique and the booking form's default package exists.
func (s *Site) Validate(defaultPackage string) error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s(%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidContent, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}

	seen := make(map[string]struct{}, len(s.Packages))
	for _, p := range s.Packages {
		key := strings.ToLower(strings.TrimSpace(p.Name))
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: duplicate package %q", ErrInvalidContent, p.Name)
		}
		seen[key] = struct{}{}
	}

	if strings.TrimSpace(defaultPackage) == "" {
		return fmt.Errorf("%w: default package is empty", ErrInvalidContent)
	}
	if err := s.RequirePackage(defaultPackage); err != nil {
		return fmt.Errorf("%w: default package: %v", ErrInvalidContent, err)
	}
	return nil
}
