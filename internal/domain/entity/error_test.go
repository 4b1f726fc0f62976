package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectionError_ServiceError(t *testing.T) {
	err := &DetectionError{Kind: KindServiceError, Status: 500, Body: "internal"}
	require.Contains(t, err.Error(), "status 500")
	require.Contains(t, err.Error(), string(KindServiceError))
}

func TestDetectionError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &DetectionError{Kind: KindConnectionFailed, Err: cause}
	require.ErrorIs(t, err, cause)
}
