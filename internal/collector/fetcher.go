package collector

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"

	devicedomain "github.com/copystack/printledger/internal/device/domain"
	"github.com/copystack/printledger/internal/metrics"
)

// Fetcher reads a device's cumulative lifetime page counter.
type Fetcher interface {
	Fetch(ctx context.Context, dev *devicedomain.Device) (int64, error)
}

// FailureKind is the low-cardinality classification of a failed fetch.
type FailureKind string

const (
	FailureConnectionRefused FailureKind = "connection_refused"
	FailureTimeout           FailureKind = "timeout"
	FailureResolve           FailureKind = "resolve_failure"
	FailureHTTP              FailureKind = "http_error"
	FailureParse             FailureKind = "parse_failure"
)

// FetchError wraps a fetch failure with its classification.
type FetchError struct {
	Kind FailureKind
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// classify maps an arbitrary transport error onto a FailureKind. Errors
// already wrapped in a FetchError keep their classification.
func classify(err error) FailureKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return FailureTimeout
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return FailureResolve
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return FailureConnectionRefused
	}
	return FailureHTTP
}

// StatusFor maps a failure onto the device status the registry should show:
// unreachable devices are offline, devices that answered garbage are in error.
func StatusFor(kind FailureKind) devicedomain.Status {
	switch kind {
	case FailureTimeout, FailureConnectionRefused, FailureResolve:
		return devicedomain.StatusOffline
	default:
		return devicedomain.StatusError
	}
}

func outcomeFor(kind FailureKind) string {
	switch kind {
	case FailureTimeout:
		return metrics.FetchOutcomeTimeout
	case FailureConnectionRefused:
		return metrics.FetchOutcomeConnectionRefused
	case FailureResolve:
		return metrics.FetchOutcomeResolveFailure
	case FailureParse:
		return metrics.FetchOutcomeParseFailure
	default:
		return metrics.FetchOutcomeHTTPError
	}
}
