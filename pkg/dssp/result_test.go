package dssp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egelke/dssp-client/pkg/message"
)

func TestCheckResult(t *testing.T) {
	tests := []struct {
		name      string
		result    *message.Result
		wantMajor string
		wantMinor string
		wantErr   bool
	}{
		{
			name:      "success match",
			result:    &message.Result{ResultMajor: message.ResultMajorSuccess},
			wantMajor: message.ResultMajorSuccess,
		},
		{
			name: "success with expected minor",
			result: &message.Result{
				ResultMajor: message.ResultMajorSuccess,
				ResultMinor: message.ResultMinorDocumentHash,
			},
			wantMajor: message.ResultMajorSuccess,
			wantMinor: message.ResultMinorDocumentHash,
		},
		{
			name:      "pending expected",
			result:    &message.Result{ResultMajor: message.ResultMajorPending},
			wantMajor: message.ResultMajorPending,
		},
		{
			name:      "major mismatch",
			result:    &message.Result{ResultMajor: message.ResultMajorRequesterError},
			wantMajor: message.ResultMajorSuccess,
			wantErr:   true,
		},
		{
			name:      "minor mismatch on matching major",
			result:    &message.Result{ResultMajor: message.ResultMajorSuccess},
			wantMajor: message.ResultMajorSuccess,
			wantMinor: message.ResultMinorDocumentHash,
			wantErr:   true,
		},
		{
			name:      "ignored minor",
			result:    &message.Result{ResultMajor: message.ResultMajorSuccess, ResultMinor: "urn:example:extra"},
			wantMajor: message.ResultMajorSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkResult(tt.result, tt.wantMajor, tt.wantMinor)
			if tt.wantErr {
				var resultErr *ResultError
				require.ErrorAs(t, err, &resultErr)
				assert.Equal(t, tt.result.ResultMajor, resultErr.Major)
				assert.Equal(t, tt.result.ResultMinor, resultErr.Minor)
				assert.Equal(t, tt.result.ResultMessage, resultErr.Message)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckResult_NilResult(t *testing.T) {
	assert.Error(t, checkResult(nil, message.ResultMajorSuccess, ""))
}

func TestResultError_Error(t *testing.T) {
	withMinor := &ResultError{
		Major:   message.ResultMajorRequesterError,
		Minor:   "urn:example:minor",
		Message: "bad request",
	}
	assert.Contains(t, withMinor.Error(), message.ResultMajorRequesterError)
	assert.Contains(t, withMinor.Error(), "urn:example:minor")
	assert.Contains(t, withMinor.Error(), "bad request")

	withoutMinor := &ResultError{Major: message.ResultMajorResponderError, Message: "down"}
	assert.NotContains(t, withoutMinor.Error(), "()")
}
