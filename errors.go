package pricer

import (
	"errors"
	"fmt"

	"github.com/golang/glog"
)

var (
	// ErrInvalidParameters is returned for any input that cannot define a
	// valid risk-neutral binomial model or contract.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrNumericOverflow is returned when the doubling lattice would not fit
	// in memory.
	ErrNumericOverflow = errors.New("numeric overflow")
)

func invalidf(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	glog.Error(msg)
	return fmt.Errorf("%w: %s", ErrInvalidParameters, msg)
}
