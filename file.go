package aasa

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
	"howett.net/plist"
)

var ErrUnsupportedMediaType = errors.New("unsupported media type")

// File is the on-disk form of a Config. Fields that
// are absent from the file are left untouched by Apply.
type File struct {
	Apps           []string       `json:"apps,omitempty" yaml:"apps,omitempty" plist:"apps,omitempty"`
	Details        []Detail       `json:"details,omitempty" yaml:"details,omitempty" plist:"details,omitempty"`
	WebCredentials map[string]any `json:"webcredentials,omitempty" yaml:"webcredentials,omitempty" plist:"webcredentials,omitempty"`
}

// Apply sets each field of c that f has.
func (f *File) Apply(c *Config) {
	if f == nil {
		return
	}

	if f.Apps != nil {
		c.SetApps(f.Apps)
	}

	if f.Details != nil {
		c.SetDetails(f.Details)
	}

	if f.WebCredentials != nil {
		c.SetWebCredentials(f.WebCredentials)
	}
}

// DecodeFile decodes a File of the given Content-Type from r.
func DecodeFile(r io.Reader, contentType string) (*File, error) {
	var (
		f   = &File{}
		err error
	)
	switch contentType {
	case ContentTypeJSON:
		err = json.NewDecoder(r).Decode(f)
	case ContentTypeYAML:
		err = yaml.NewDecoder(r).Decode(f)
	case ContentTypePlist:
		// plist needs to seek.
		var b []byte
		if b, err = io.ReadAll(r); err == nil {
			err = plist.NewDecoder(bytes.NewReader(b)).Decode(f)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMediaType, contentType)
	}
	if errors.Is(err, io.EOF) {
		// Empty file.
		return f, nil
	} else if err != nil {
		return nil, fmt.Errorf("decode %s: %w", contentType, err)
	}

	return f, nil
}
