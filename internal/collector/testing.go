package collector

import (
	"context"

	devicedomain "github.com/copystack/printledger/internal/device/domain"
)

type fixedFetcher int64

func (f fixedFetcher) Fetch(context.Context, *devicedomain.Device) (int64, error) {
	return int64(f), nil
}

// StubFetcherForTest replaces both fetchers with one returning a fixed
// counter, so tests never touch the network.
func StubFetcherForTest(s *Service, counter int64) {
	s.httpFetcher = fixedFetcher(counter)
	s.snmpFetcher = fixedFetcher(counter)
}
