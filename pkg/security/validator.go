package security

import (
	"errors"
	"regexp"
)

// MaxDocumentIDLength bounds identifiers accepted from request paths
const MaxDocumentIDLength = 128

var documentIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var (
	ErrEmptyDocumentID   = errors.New("document id is empty")
	ErrDocumentIDTooLong = errors.New("document id too long")
	ErrInvalidDocumentID = errors.New("document id contains invalid characters")
)

// ValidateDocumentID checks an identifier taken from a URL path before it
// reaches the store. Generated ids are UUIDs, so letters, digits, '-' and
// '_' cover every id the service hands out.
func ValidateDocumentID(id string) error {
	if id == "" {
		return ErrEmptyDocumentID
	}
	if len(id) > MaxDocumentIDLength {
		return ErrDocumentIDTooLong
	}
	if !documentIDPattern.MatchString(id) {
		return ErrInvalidDocumentID
	}
	return nil
}
