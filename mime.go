package aasa

import (
	"path/filepath"
	"strings"
)

const (
	ContentTypeJSON  = "application/json"
	ContentTypeYAML  = "application/yaml"
	ContentTypePlist = "application/x-plist"
	ContentTypeText  = "text/plain"
)

const (
	ExtJSON  = ".json"
	ExtYAML  = ".yaml"
	ExtYML   = ".yml"
	ExtPlist = ".plist"
)

// ContentTypeFromName returns the Content-Type of a config
// file based on its extension, or "" if it is not supported.
func ContentTypeFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ExtJSON:
		return ContentTypeJSON
	case ExtYAML, ExtYML:
		return ContentTypeYAML
	case ExtPlist:
		return ContentTypePlist
	}

	return ""
}
