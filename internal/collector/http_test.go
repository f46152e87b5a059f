package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	devicedomain "github.com/copystack/printledger/internal/device/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCounter(t *testing.T) {
	cases := []struct {
		name string
		body string
		want int64
		ok   bool
	}{
		{"bare number", "  12345\n", 12345, true},
		{"json in script", `<html><script>var status = {"model":"LX-200","counter": 48213};</script></html>`, 48213, true},
		{"json string value", `<script>{"total": "991"}</script>`, 991, true},
		{"html fragment", `<div class="counter"><b>Total</b> 9876 pages</div>`, 9876, true},
		{"nested json", `<script>{"printer": 1, "stats": {"x": 2}, "life_count": 777}</script>`, 777, true},
		{"no counter", `<html><body>maintenance mode</body></html>`, 0, false},
		{"empty", "", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseCounter([]byte(tc.body))
			if !tc.ok {
				assert.ErrorIs(t, err, errNoCounter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseCounter_NonUTF8Body(t *testing.T) {
	// Latin-1 text around the digits; the digit bytes themselves are ASCII.
	body := append([]byte{'<', 'p', '>', 0xE9, 0xE8, ' '}, []byte("4321</p>")...)
	got, err := parseCounter(body)
	require.NoError(t, err)
	assert.Equal(t, int64(4321), got)
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<script>{"counter": 20250}</script>`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(2 * time.Second)
	got, err := f.Fetch(context.Background(), &devicedomain.Device{Endpoint: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, int64(20250), got)
}

func TestHTTPFetcher_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(2 * time.Second)
	_, err := f.Fetch(context.Background(), &devicedomain.Device{Endpoint: srv.URL})

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, FailureHTTP, fe.Kind)
}

func TestHTTPFetcher_ParseFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>no numbers here</html>"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(2 * time.Second)
	_, err := f.Fetch(context.Background(), &devicedomain.Device{Endpoint: srv.URL})

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, FailureParse, fe.Kind)
}

func TestParseSNMPEndpoint(t *testing.T) {
	host, port, community, err := parseSNMPEndpoint("snmp://10.0.0.7")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7", host)
	assert.Equal(t, uint16(161), port)
	assert.Equal(t, "public", community)

	host, port, community, err = parseSNMPEndpoint("snmp://printer.lan:1161?community=office")
	require.NoError(t, err)
	assert.Equal(t, "printer.lan", host)
	assert.Equal(t, uint16(1161), port)
	assert.Equal(t, "office", community)

	_, _, _, err = parseSNMPEndpoint("http://printer.lan")
	assert.Error(t, err)
}
