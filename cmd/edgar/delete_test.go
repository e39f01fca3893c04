package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/edgar"
	main "github.com/fwojciec/edgar/cmd/edgar"
	"github.com/fwojciec/edgar/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes filing by ID", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		formDs := &mock.FormDService{
			DeleteFormDFn: func(_ context.Context, id string) error {
				deletedID = id
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, FormDs: formDs}

		err := (&main.DeleteCmd{ID: "rec-123"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "rec-123", deletedID)
		assert.Contains(t, stdout.String(), "Deleted filing rec-123")
	})

	t.Run("explains missing filing", func(t *testing.T) {
		t.Parallel()

		formDs := &mock.FormDService{
			DeleteFormDFn: func(context.Context, string) error {
				return edgar.Errorf(edgar.ENOTFOUND, "form D not found")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, FormDs: formDs}

		err := (&main.DeleteCmd{ID: "missing"}).Run(deps)

		assert.Equal(t, edgar.ENOTFOUND, edgar.ErrorCode(err))
		assert.Contains(t, stderr.String(), `filing "missing" not found`)
	})
}
