package apperr

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFound(t *testing.T) {
	err := NotFound("bank")

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "bank", nf.Entity)
	assert.Equal(t, "bank not found", err.Error())
}

func TestValidation(t *testing.T) {
	assert.NoError(t, NewValidation("empty").Err())

	err := NewValidation("Player validation failed").
		Add("phoneNumber", "minlength", "phone number must be at least 9 digits", "123").
		Add("name", "required", "name is required", nil).
		Add("name", "minlength", "ignored", "x").
		Err()

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Fields, 2)
	assert.Equal(t, "required", ve.Fields["name"].Kind)
	assert.Equal(t, "Player validation failed: name: name is required, phoneNumber: phone number must be at least 9 digits", err.Error())
}

func TestTransferError_Unwrap(t *testing.T) {
	err := &TransferError{Op: "copy", Err: io.ErrUnexpectedEOF}

	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "copy")
}
