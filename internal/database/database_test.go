package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestConnectRedis(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := ConnectRedis(context.Background(), "redis://"+server.Addr())
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	server.CheckGet(t, "k", "v")
}

func TestConnectRedisRejectsBadInput(t *testing.T) {
	_, err := ConnectRedis(context.Background(), "")
	require.Error(t, err)

	_, err = ConnectRedis(context.Background(), "not a url")
	require.Error(t, err)
}

func TestOpenSQLiteInMemory(t *testing.T) {
	db, err := OpenSQLite(context.Background(), "file:database_test?mode=memory&cache=shared")
	require.NoError(t, err)
	defer func() { require.NoError(t, CloseGorm(db)) }()

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	require.Equal(t, 1, one)
}

func TestConnectRequiresAddress(t *testing.T) {
	_, err := ConnectPostgres(context.Background(), "")
	require.Error(t, err)
	_, err = OpenSQLite(context.Background(), "")
	require.Error(t, err)
	_, err = ConnectNATS("", "api")
	require.Error(t, err)
}
