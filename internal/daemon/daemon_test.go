package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/radixd/radixd/internal/api"
	"github.com/radixd/radixd/internal/skill"
)

// freeAddr returns a loopback address with a port that was free when checked.
func freeAddr(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	return addr
}

func TestNewDaemon_Errors(t *testing.T) {
	t.Parallel()

	_, err := NewDaemon(Dependencies{APIAddr: "localhost:8090", Logger: hclog.NewNullLogger()})
	require.ErrorContains(t, err, "invalid daemon dependencies")

	deps, err := NewDependencies(hclog.NewNullLogger(), "localhost:8090", testService(t))
	require.NoError(t, err)

	_, err = NewDaemon(deps, WithSkillOptions(skill.WithConversionIntent(" ")))
	require.ErrorContains(t, err, "failed to create skill handler")

	_, err = NewDaemon(deps, WithAPIOptions(WithRateLimit(1, 0)))
	require.ErrorContains(t, err, "failed to create daemon API server")
}

func TestNewDaemon_MCP(t *testing.T) {
	t.Parallel()

	deps, err := NewDependencies(hclog.NewNullLogger(), "localhost:8090", testService(t))
	require.NoError(t, err)

	d, err := NewDaemon(deps)
	require.NoError(t, err)
	require.NotNil(t, d.apiServer.mcp)

	d, err = NewDaemon(deps, WithMCPEnabled(false))
	require.NoError(t, err)
	require.Nil(t, d.apiServer.mcp)
}

func TestDaemon_StartAndManage(t *testing.T) {
	addr := freeAddr(t)

	deps, err := NewDependencies(hclog.NewNullLogger(), addr, testService(t))
	require.NoError(t, err)

	d, err := NewDaemon(deps, WithAPIOptions(WithShutdownTimeout(time.Second)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- d.StartAndManage(ctx)
	}()

	healthURL := fmt.Sprintf("http://%s/api/v1/health", addr)
	require.Eventually(t, func() bool {
		resp, err := http.Get(healthURL)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := http.Post(
		fmt.Sprintf("http://%s/api/v1/convert", addr),
		"application/json",
		strings.NewReader(`{"numeral": "10", "targetRadix": "2"}`),
	)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got api.ConversionResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, "1010", got.Rendered)
	require.True(t, got.SourceDefaulted)

	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("daemon did not stop after cancellation")
	}
}

func TestDaemon_StartAndManage_ListenFailure(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	deps, err := NewDependencies(hclog.NewNullLogger(), l.Addr().String(), testService(t))
	require.NoError(t, err)

	d, err := NewDaemon(deps, WithMCPEnabled(false))
	require.NoError(t, err)

	err = d.StartAndManage(context.Background())
	require.ErrorContains(t, err, "API server failed")
}
