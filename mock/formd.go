package mock

import (
	"context"

	"github.com/fwojciec/edgar"
)

var _ edgar.FormDService = (*FormDService)(nil)

// FormDService is a mock implementation of edgar.FormDService.
type FormDService struct {
	CreateFormDFn   func(ctx context.Context, rec *edgar.FormDRecord) error
	FindFormDByIDFn func(ctx context.Context, id string) (*edgar.FormDRecord, error)
	FindFormDsFn    func(ctx context.Context, filter edgar.FormDFilter) ([]*edgar.FormDRecord, error)
	DeleteFormDFn   func(ctx context.Context, id string) error
}

func (s *FormDService) CreateFormD(ctx context.Context, rec *edgar.FormDRecord) error {
	return s.CreateFormDFn(ctx, rec)
}

func (s *FormDService) FindFormDByID(ctx context.Context, id string) (*edgar.FormDRecord, error) {
	return s.FindFormDByIDFn(ctx, id)
}

func (s *FormDService) FindFormDs(ctx context.Context, filter edgar.FormDFilter) ([]*edgar.FormDRecord, error) {
	return s.FindFormDsFn(ctx, filter)
}

func (s *FormDService) DeleteFormD(ctx context.Context, id string) error {
	return s.DeleteFormDFn(ctx, id)
}
