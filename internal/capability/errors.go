package capability

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks a provider or capability that is absent on this device.
// Callers degrade the feature instead of failing the process.
var ErrUnavailable = errors.New("capability is not available")

// PairError reports a translator usability verdict of "no" for a language pair.
type PairError struct {
	SourceLang string
	TargetLang string
}

func (e *PairError) Error() string {
	return fmt.Sprintf("translation not available for %s to %s", e.SourceLang, e.TargetLang)
}

// ProvisionError wraps a failure to create a handle or await its readiness.
// The failed handle is never cached, so a later call retries from scratch.
type ProvisionError struct {
	Capability string
	Err        error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("provision %s handle: %v", e.Capability, e.Err)
}

func (e *ProvisionError) Unwrap() error {
	return e.Err
}

// OperationError wraps a failure of the capability operation itself, after a
// handle was successfully provisioned. The handle stays usable for retries.
type OperationError struct {
	Capability string
	Err        error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s operation failed: %v", e.Capability, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
