package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/saxenaaman628/settlement-elections/config"
)

func TestNewClient(t *testing.T) {
	server := miniredis.RunT(t)

	rdb, err := NewClient(context.Background(), config.Config{RedisURI: server.Addr()})
	require.NoError(t, err)
	defer rdb.Close()

	require.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
	got, err := server.Get("k")
	require.NoError(t, err)
	require.Equal(t, "v", got)
}

func TestNewClientUnreachable(t *testing.T) {
	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()

	_, err := NewClient(context.Background(), config.Config{RedisURI: addr})
	require.Error(t, err)
	require.Contains(t, err.Error(), addr)
}
