package ds

import (
	"fmt"
)

// ErrUnreachableCode is returned from branches that only open up when a
// component breaks its contract, such as a factory that hands back storage
// of a type other than the one it was built for. Caller names the branch.
type ErrUnreachableCode struct {
	Caller string
}

func (r ErrUnreachableCode) Error() string {
	return fmt.Sprintf("%s: unreachable code reached, a contract was broken upstream", r.Caller)
}
