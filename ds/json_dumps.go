package ds

import (
	"encoding/json"
	"fmt"
)

// JSONDumps is meant for error messages and debug logs, where a failed
// marshalling should not hide the original problem.
func JSONDumps[T any](t T) string {
	tBytes, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("JSONDumps error %w", err).Error()
	}

	return string(tBytes)
}
