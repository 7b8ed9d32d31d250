package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/MeJosh/combat-odds/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_PreservesCode(t *testing.T) {
	base := errors.InvalidArgument("bad damage").WithMeta("expr", "abc")

	wrapped := errors.Wrap(base, "cannot parse")
	require.NotNil(t, wrapped)

	assert.Equal(t, errors.CodeInvalidArgument, wrapped.Code)
	assert.True(t, errors.IsInvalidArgument(wrapped))
	assert.Equal(t, "abc", wrapped.Meta["expr"])
	assert.ErrorIs(t, wrapped, base)
}

func TestWrap_ForeignError(t *testing.T) {
	wrapped := errors.Wrap(stderrors.New("io trouble"), "simulation failed")
	require.NotNil(t, wrapped)

	assert.Equal(t, errors.CodeUnknown, wrapped.Code)
	assert.Equal(t, "simulation failed: io trouble", wrapped.Error())
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, "nothing"))
	assert.Nil(t, errors.Wrapf(nil, "nothing %d", 1))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, errors.CodeInternal, errors.GetCode(errors.Internal("oops")))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(fmt.Errorf("plain")))
}
