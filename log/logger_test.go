package log_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/kcpmux/kcpmux-go/log"
)

func TestSessionID(t *testing.T) {
	ctx := context.Background()
	require.Empty(t, SessionID(ctx))
	ctx = WithSessionID(ctx, 1234)
	require.Equal(t, "1234", SessionID(ctx))
}

func TestSessionID_zero(t *testing.T) {
	ctx := WithSessionID(context.Background(), 0)
	require.Equal(t, "0", SessionID(ctx))
}
