package dssp

import (
	"fmt"

	"github.com/egelke/dssp-client/pkg/message"
)

// ResultError is a protocol error: the service answered with a
// structured result code the flow did not expect. Major, Minor and
// Message carry the service's values verbatim.
type ResultError struct {
	Major   string
	Minor   string
	Message string
}

func (e *ResultError) Error() string {
	if e.Minor != "" {
		return fmt.Sprintf("unexpected service result %s (%s): %s", e.Major, e.Minor, e.Message)
	}
	return fmt.Sprintf("unexpected service result %s: %s", e.Major, e.Message)
}

// checkResult validates a response's result triple against the codes the
// flow expects. An empty wantMinor skips the minor check. Validation is
// all-or-nothing: a mismatch always surfaces as a ResultError, never as
// a partial result.
func checkResult(result *message.Result, wantMajor, wantMinor string) error {
	if result == nil {
		return fmt.Errorf("response carries no result")
	}
	if result.ResultMajor != wantMajor {
		return &ResultError{
			Major:   result.ResultMajor,
			Minor:   result.ResultMinor,
			Message: result.ResultMessage,
		}
	}
	if wantMinor != "" && result.ResultMinor != wantMinor {
		return &ResultError{
			Major:   result.ResultMajor,
			Minor:   result.ResultMinor,
			Message: result.ResultMessage,
		}
	}
	return nil
}
