/*
errors.go - Error types for the simulation engine

PURPOSE:
  The engine is deliberately total: missing optional fields, dormant
  partners and dangling parent references degrade to empty/zero rather
  than aborting a run. The only errors a caller ever sees are parameter
  validation failures detected before the date loop starts.

USAGE:
  years, err := engine.Simulate(params)
  if errors.Is(err, engine.ErrInvalidParameter) {
      var ipe *engine.InvalidParameterError
      errors.As(err, &ipe)
      // ipe.Field, ipe.Reason
  }
*/
package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is the sentinel for all parameter validation
// failures. Use with errors.Is().
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterError reports which parameter failed validation and why.
type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Reason)
}

func (e *InvalidParameterError) Unwrap() error { return ErrInvalidParameter }
