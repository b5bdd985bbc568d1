package ports_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enicarthage/library-client/internal/mocks"
	mockauth "github.com/enicarthage/library-client/internal/mocks/auth"
	"github.com/enicarthage/library-client/internal/ports"
)

// This test only verifies that our mocks conform to the ports at compile time.
func TestMocksImplementPorts(t *testing.T) {
	t.Helper()

	var _ ports.TokenStorage = (*mockauth.MemoryTokenStorage)(nil)
	var _ ports.TokenStorage = (*mocks.MockTokenStorage)(nil)
	var _ ports.Transport = (*mocks.MockTransport)(nil)
	var _ ports.Notifier = (*mockauth.RecordingNotifier)(nil)
}

func TestChain_OrderIsOutermostFirst(t *testing.T) {
	var calls []string
	mark := func(name string) ports.Middleware {
		return func(next ports.Transport) ports.Transport {
			return ports.TransportFunc(func(ctx context.Context, req ports.Request, out any) error {
				calls = append(calls, name)
				return next.Do(ctx, req, out)
			})
		}
	}
	base := ports.TransportFunc(func(context.Context, ports.Request, any) error {
		calls = append(calls, "base")
		return nil
	})

	tr := ports.Chain(base, mark("outer"), nil, mark("inner"))
	require.NoError(t, tr.Do(context.Background(), ports.Request{}, nil))
	assert.Equal(t, []string{"outer", "inner", "base"}, calls)
}
