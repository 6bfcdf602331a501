package config

import "path/filepath"

// unsupportedFileNames lists the known configuration variants that
// htmlvet cannot read, in detection priority order.
var unsupportedFileNames = []string{
	".htmlvalidate.js",
	".htmlvalidate.cjs",
}

// UnsupportedFileNames returns the known unsupported configuration
// filenames in detection priority order.
func UnsupportedFileNames() []string {
	names := make([]string, len(unsupportedFileNames))
	copy(names, unsupportedFileNames)
	return names
}

// DetectUnsupported checks a project root for known unsupported
// configuration file variants. It returns an UnsupportedFormatError
// naming the first match in priority order, or nil if none is present.
//
// The check is meant to run only after the primary loader reported
// that no JSON configuration exists; a valid primary config always
// takes precedence.
func DetectUnsupported(fsys FileSystem, root string) *UnsupportedFormatError {
	for _, name := range unsupportedFileNames {
		path := filepath.Join(root, name)
		if _, err := fsys.Stat(path); err == nil {
			return &UnsupportedFormatError{Path: path}
		}
	}
	return nil
}
