package errors

import (
	stderrors "errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesStack(t *testing.T) {
	inner := New(ErrorTypeData, "bad cell")
	outer := Wrap(inner, ErrorTypeFile, "load failed")

	require.NotNil(t, outer)
	assert.Equal(t, inner.Stack, outer.Stack)
	assert.True(t, stderrors.Is(outer, inner))
	assert.Equal(t, "file: load failed: data: bad cell", outer.Error())
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeFile, "nothing"))
}

func TestIsType(t *testing.T) {
	err := Wrap(io.EOF, ErrorTypeConnection, "upload failed")

	assert.True(t, IsType(err, ErrorTypeConnection))
	assert.False(t, IsType(err, ErrorTypeData))
	assert.False(t, IsType(io.EOF, ErrorTypeConnection))
	assert.True(t, stderrors.Is(err, io.EOF))
}

func TestNewfAndDetails(t *testing.T) {
	err := Newf(ErrorTypeNotFound, "column %q does not exist", "rain").
		WithDetail("column", "rain")

	assert.Equal(t, `not_found: column "rain" does not exist`, err.Error())
	v, ok := Detail(err, "column")
	assert.True(t, ok)
	assert.Equal(t, "rain", v)

	_, ok = Detail(err, "missing")
	assert.False(t, ok)
	_, ok = Detail(io.EOF, "column")
	assert.False(t, ok)
	assert.NotEmpty(t, err.Stack)
}
