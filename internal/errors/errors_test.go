package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := NotFound("data file students.csv")
	wrapped := Wrapf(base, "load %s", "students.csv")

	assert.Equal(t, CodeNotFound, GetCode(wrapped))
	assert.True(t, HasCode(wrapped, CodeNotFound))
	assert.True(t, stderrors.Is(wrapped, base))
	assert.Equal(t, "load students.csv: data file students.csv not found", wrapped.Error())
}

func TestWrapPlainError(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(cause, "reading sheet")
	assert.Equal(t, CodeInternalError, GetCode(err))
	assert.ErrorIs(t, err, cause)

	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Nil(t, WithCode(CodeInvalidInput, nil))
	assert.Equal(t, "UNKNOWN", GetCode(cause))
}

func TestWithCode(t *testing.T) {
	cause := stderrors.New("header row missing")
	err := WithCode(CodeInvalidInput, cause)
	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.ErrorIs(t, err, cause)
}
