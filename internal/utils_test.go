package internal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	require.Equal(t, "999", FormatNumber(999))
	require.Equal(t, "1,234", FormatNumber(1234))
	require.Equal(t, "1,234,567", FormatNumber(1234567))
}

func TestFormatBytes(t *testing.T) {
	require.Equal(t, "999 B", FormatBytes(999))
	require.Equal(t, "1.0 KB", FormatBytes(1024))
	require.Equal(t, "1.5 KB", FormatBytes(1536))
	require.Equal(t, "1.0 GB", FormatBytes(1024*1024*1024))
}

func TestCancelOperationFlag(t *testing.T) {
	resetOperationCancel()
	require.False(t, shouldCancelOperation())

	CancelOperation()
	require.True(t, shouldCancelOperation())

	resetOperationCancel()
	require.False(t, shouldCancelOperation())
}
