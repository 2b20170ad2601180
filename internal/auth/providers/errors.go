package providers

import (
	"context"
	"errors"
	"fmt"
	"net"

	"golang.org/x/oauth2"
)

// Stage identifies which back-channel call to the provider failed.
type Stage string

const (
	StageTokenExchange Stage = "token_exchange"
	StageProfileFetch  Stage = "profile_fetch"
)

// FlowError reports a failed back-channel call to the identity provider.
// Status carries the provider's HTTP status when a response was received,
// zero on transport failures. Timeout marks calls that ran out of time.
type FlowError struct {
	Stage   Stage
	Status  int
	Timeout bool
	Err     error
}

func (e *FlowError) Error() string {
	msg := fmt.Sprintf("%s failed", e.Stage)
	switch {
	case e.Timeout:
		msg = fmt.Sprintf("%s timed out", e.Stage)
	case e.Status != 0:
		msg = fmt.Sprintf("%s failed with status %d", e.Stage, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *FlowError) Unwrap() error {
	return e.Err
}

// classifyFlowError wraps err in a FlowError for the given stage, pulling the
// HTTP status out of oauth2 retrieval errors and flagging timeouts.
func classifyFlowError(stage Stage, err error) *FlowError {
	fe := &FlowError{Stage: stage, Err: err}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		fe.Status = retrieveErr.Response.StatusCode
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		fe.Timeout = true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		fe.Timeout = true
	}

	return fe
}
