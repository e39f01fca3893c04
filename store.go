package edgar

import (
	"context"
	"time"
)

// FormDRecord is a parsed Form D as persisted by a FormDService.
type FormDRecord struct {
	ID          string    `json:"id"`
	SourcePath  string    `json:"sourcePath"`
	ContentHash string    `json:"contentHash"`
	ParsedAt    time.Time `json:"parsedAt"`
	FormD       *FormD    `json:"formD"`
}

// Validate returns an error if the record contains invalid fields.
func (r *FormDRecord) Validate() error {
	if r.SourcePath == "" {
		return Errorf(EINVALID, "form D source path required")
	}
	if r.ContentHash == "" {
		return Errorf(EINVALID, "form D content hash required")
	}
	if r.FormD == nil {
		return Errorf(EINVALID, "form D data required")
	}
	return nil
}

// FormDService represents a service for managing stored Form D filings.
type FormDService interface {
	// CreateFormD stores a new record and assigns its ID and ParsedAt.
	// Returns ECONFLICT if a record with the same content hash exists.
	CreateFormD(ctx context.Context, rec *FormDRecord) error

	// FindFormDByID retrieves a record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindFormDByID(ctx context.Context, id string) (*FormDRecord, error)

	// FindFormDs retrieves records matching the filter.
	FindFormDs(ctx context.Context, filter FormDFilter) ([]*FormDRecord, error)

	// DeleteFormD permanently removes a record.
	// Returns ENOTFOUND if the record does not exist.
	DeleteFormD(ctx context.Context, id string) error
}

// FormDFilter represents a filter for FindFormDs.
type FormDFilter struct {
	ID              *string `json:"id"`
	CentralIndexKey *string `json:"centralIndexKey"`
	ContentHash     *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
