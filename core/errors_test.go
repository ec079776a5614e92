package core

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodedErrors(t *testing.T) {
	err := Error(EMISSING, "font %s not found", "unifont")
	assert.Equal(t, EMISSING, Code(err))
	assert.Equal(t, "font unifont not found", UserMessage(err))
	assert.Equal(t, "[122] font unifont not found: not found", err.Error())
	//
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, EINTERNAL, Code(io.EOF))
	assert.Equal(t, "internal error", UserMessage(io.EOF))
}

func TestWrappedErrors(t *testing.T) {
	err := WrapError(io.ErrUnexpectedEOF, EINVALID, "truncated font")
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.Equal(t, EINVALID, Code(err))
	//
	err = ErrorWithCode(io.EOF, EINVALID)
	assert.Equal(t, EINVALID, Code(err))
	assert.Equal(t, "[123] invalid: EOF", err.Error())
	assert.Error(t, ErrorWithCode(nil, EMISSING))
	//
	outer := WrapError(err, EINTERNAL, "giving up")
	assert.Equal(t, EINTERNAL, Code(outer))
	assert.True(t, errors.Is(outer, io.EOF))
}
