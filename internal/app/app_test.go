package app

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletkv/tabletkv/internal/config"
	"github.com/tabletkv/tabletkv/pkg/client"
	"github.com/tabletkv/tabletkv/pkg/types"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.GRPC.Addr = "127.0.0.1:0"
	cfg.HTTP.AdminAddr = "127.0.0.1:0"
	cfg.Tablet.Engine = config.EngineSQLite
	cfg.Tablet.CompressScan = true
	return cfg
}

func TestApp_ServesClients(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, a.Start(context.Background()))

	c, err := client.New(client.WithEndpoints(a.GRPCAddr()), client.WithTimeout(2*time.Second))
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	ok, err := c.CreateTable(ctx, types.TableSpec{Name: "tj0", TID: 1, SegCnt: 8})
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = c.Put(ctx, 1, 0, "test1", 9527, []byte("test0"))
	require.NoError(t, err)
	require.True(t, ok)

	it, err := c.Scan(ctx, 1, 0, "test1", 9527, 9526)
	require.NoError(t, err)
	require.True(t, it.Valid())
	assert.Equal(t, "test0", string(it.Value()))

	resp, err := http.Get("http://" + a.AdminAddr() + "/v1/tables")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Tables []types.TableStatus `json:"tables"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Tables, 1)
	assert.Equal(t, int64(1), body.Tables[0].RecordCount)

	require.NoError(t, a.Stop(context.Background()))
}

func TestApp_ReopensTables(t *testing.T) {
	for _, engine := range []config.Engine{config.EngineSQLite, config.EngineMemory} {
		t.Run(string(engine), func(t *testing.T) {
			cfg := testConfig(t)
			cfg.HTTP.AdminAddr = ""
			cfg.Tablet.Engine = engine
			testReopen(t, cfg)
		})
	}
}

// testReopen writes through one app instance and reads through a second one
// opened on the same data dir.
func testReopen(t *testing.T, cfg *config.Config) {
	ctx := context.Background()

	a, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, a.Start(ctx))
	c, err := client.New(client.WithEndpoints(a.GRPCAddr()))
	require.NoError(t, err)
	ok, err := c.CreateTable(ctx, types.TableSpec{Name: "tj0", TID: 1, SegCnt: 8})
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = c.Put(ctx, 1, 0, "test1", 9527, []byte("test0"))
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, c.Close())
	require.NoError(t, a.Stop(ctx))

	a, err = New(cfg)
	require.NoError(t, err)
	require.NoError(t, a.Start(ctx))
	defer a.Stop(ctx)

	c, err = client.New(client.WithEndpoints(a.GRPCAddr()))
	require.NoError(t, err)
	defer c.Close()

	value, found, err := c.Get(ctx, 1, 0, "test1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "test0", string(value))
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tablet.Engine = "rocksdb"
	_, err := New(cfg)
	assert.Error(t, err)
}
