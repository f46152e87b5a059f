package collector

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	devicedomain "github.com/copystack/printledger/internal/device/domain"
	"github.com/gosnmp/gosnmp"
)

// prtMarkerLifeCountOID is the Printer MIB lifetime page count
// (prtMarkerLifeCount, first marker of the first device).
const prtMarkerLifeCountOID = "1.3.6.1.2.1.43.10.2.1.4.1.1"

const (
	defaultSNMPPort      = 161
	defaultSNMPCommunity = "public"
)

// SNMPFetcher reads the Printer MIB lifetime counter over SNMP v2c.
// Endpoints look like snmp://host[:port][?community=...].
type SNMPFetcher struct {
	timeout time.Duration
}

func NewSNMPFetcher(timeout time.Duration) *SNMPFetcher {
	return &SNMPFetcher{timeout: timeout}
}

func (f *SNMPFetcher) Fetch(ctx context.Context, dev *devicedomain.Device) (int64, error) {
	target, port, community, err := parseSNMPEndpoint(dev.Endpoint)
	if err != nil {
		return 0, &FetchError{Kind: FailureParse, Err: err}
	}

	client := &gosnmp.GoSNMP{
		Target:    target,
		Port:      port,
		Community: community,
		Version:   gosnmp.Version2c,
		Timeout:   f.timeout,
		Retries:   1,
		Context:   ctx,
	}
	if err := client.Connect(); err != nil {
		return 0, &FetchError{Kind: classify(err), Err: err}
	}
	defer client.Conn.Close()

	result, err := client.Get([]string{prtMarkerLifeCountOID})
	if err != nil {
		return 0, &FetchError{Kind: classify(err), Err: err}
	}
	if result.Error != gosnmp.NoError || len(result.Variables) == 0 {
		return 0, &FetchError{Kind: FailureParse, Err: fmt.Errorf("snmp error %v", result.Error)}
	}

	variable := result.Variables[0]
	if variable.Value == nil || variable.Type == gosnmp.NoSuchObject || variable.Type == gosnmp.NoSuchInstance {
		return 0, &FetchError{Kind: FailureParse, Err: errors.New("counter oid not present")}
	}
	return gosnmp.ToBigInt(variable.Value).Int64(), nil
}

func parseSNMPEndpoint(endpoint string) (string, uint16, string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", 0, "", err
	}
	if u.Scheme != "snmp" || u.Hostname() == "" {
		return "", 0, "", fmt.Errorf("not an snmp endpoint: %q", endpoint)
	}

	port := uint16(defaultSNMPPort)
	if p := u.Port(); p != "" {
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return "", 0, "", fmt.Errorf("invalid snmp port %q", p)
		}
		port = uint16(n)
	}

	community := u.Query().Get("community")
	if community == "" {
		community = defaultSNMPCommunity
	}
	return u.Hostname(), port, community, nil
}
