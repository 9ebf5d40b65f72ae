package errorx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_FormatsMessage(t *testing.T) {
	err := New(BadRequest, "Unsupported connector %s", "walletconnect")
	require.Equal(t, BadRequest, err.Code)
	require.Equal(t, "Unsupported connector walletconnect", err.Error())
}

func TestError_AsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("load state: %w", New(Unavailable, "State store is unavailable"))

	var errx Error
	require.True(t, errors.As(wrapped, &errx))
	require.Equal(t, Unavailable, errx.Code)
}
