package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// DocumentExt is the file extension for persisted projects.
const DocumentExt = ".pimp"

// ValidatePath validates a file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateDocumentPath validates the path of a project document.
// On top of [ValidatePath] it requires the .pimp extension (or .json).
func ValidateDocumentPath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case DocumentExt, ".json":
		return nil
	}
	return New(ErrCodeInvalidInput, "project file must end in %s: %q", DocumentExt, path)
}

// projectTypeRegex matches project type names such as "raspi" or "raspi_plus".
var projectTypeRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateProjectTypeName validates the syntax of a project type name.
// Whether the type is known is decided by the hardware package.
func ValidateProjectTypeName(name string) error {
	if name == "" {
		return New(ErrCodeUnknownProjectType, "project type cannot be empty")
	}
	if !projectTypeRegex.MatchString(name) {
		return New(ErrCodeUnknownProjectType, "invalid project type name: %q", name)
	}
	return nil
}
