package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorFormatting(t *testing.T) {
	cause := stderrors.New("file busy")

	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "with cause",
			err:  NewStorageError("failed to open workbook", cause),
			want: "[STORAGE] failed to open workbook: file busy",
		},
		{
			name: "without cause",
			err:  NewValidationError("bad sheet name"),
			want: "[VALIDATION] bad sheet name",
		},
		{
			name: "not found",
			err:  NewNotFoundError("header row"),
			want: "[NOT_FOUND] header row not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := NewParsingError("failed to read sheet", cause)

	assert.True(t, stderrors.Is(err, cause))

	var appErr *AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, ErrTypeParsing, appErr.Type)
}

func TestWithContext(t *testing.T) {
	err := NewParsingError("bad cell", nil).
		WithContext("sheet", "Run1").
		WithContext("row", 7)

	assert.Equal(t, "Run1", err.Context["sheet"])
	assert.Equal(t, 7, err.Context["row"])
}

func TestIsType(t *testing.T) {
	err := NewConfigError("bad config", nil)
	assert.True(t, IsType(err, ErrTypeConfig))
	assert.False(t, IsType(err, ErrTypeStorage))
	assert.False(t, IsType(stderrors.New("plain"), ErrTypeConfig))
}
