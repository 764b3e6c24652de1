package grpc

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/snappy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/tabletkv/tabletkv/api/tabletpb"
	"github.com/tabletkv/tabletkv/internal/config"
	"github.com/tabletkv/tabletkv/internal/server"
	"github.com/tabletkv/tabletkv/internal/storage"
	"github.com/tabletkv/tabletkv/internal/tablet"
	"github.com/tabletkv/tabletkv/pkg/observability"
	"github.com/tabletkv/tabletkv/pkg/scanbuf"
)

type testServer struct {
	client   tabletpb.TabletServiceClient
	shutdown *server.ShutdownManager
	stats    *observability.CallStats
}

func startServer(t *testing.T, compressScan bool) *testServer {
	t.Helper()
	return startServerWithCap(t, compressScan, 0)
}

// startServerWithCap runs the server with maxScan as the tablet's scan cap;
// 0 keeps the default.
func startServerWithCap(t *testing.T, compressScan bool, maxScan int) *testServer {
	t.Helper()
	dir := t.TempDir()

	catalog, err := tablet.OpenCatalog(filepath.Join(dir, "catalog.db"))
	require.NoError(t, err)
	store, err := storage.NewLocalStorage(filepath.Join(dir, "storage"))
	require.NoError(t, err)
	tb, err := tablet.New(context.Background(), catalog, tablet.Options{
		Engine:         config.EngineMemory,
		WorkDir:        filepath.Join(dir, "work"),
		MaxScanEntries: maxScan,
		Storage:        store,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = tb.Close() })

	sm := server.NewShutdownManager(server.ShutdownConfig{DrainTimeout: 100 * time.Millisecond})
	stats := observability.NewCallStats("server", time.Minute)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(UnaryInterceptor(sm, stats)))
	tabletpb.RegisterTabletServiceServer(srv, NewTabletServer(tb, compressScan))
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &testServer{client: tabletpb.NewTabletServiceClient(conn), shutdown: sm, stats: stats}
}

func createReq(tid uint32) *tabletpb.CreateTableRequest {
	return &tabletpb.CreateTableRequest{Name: "tj0", Tid: tid, Pid: 0, Ttl: 0, SegCnt: 8}
}

func TestTabletServer_CreateAndDropCodes(t *testing.T) {
	ts := startServer(t, false)
	ctx := context.Background()

	resp, err := ts.client.CreateTable(ctx, createReq(1))
	require.NoError(t, err)
	assert.Equal(t, tabletpb.CodeOK, resp.Code)

	resp, err = ts.client.CreateTable(ctx, createReq(1))
	require.NoError(t, err)
	assert.Equal(t, tabletpb.CodeTableExists, resp.Code)

	bad := createReq(2)
	bad.Ttl = -1
	resp, err = ts.client.CreateTable(ctx, bad)
	require.NoError(t, err)
	assert.Equal(t, tabletpb.CodeInvalidParameter, resp.Code)

	resp, err = ts.client.DropTable(ctx, &tabletpb.DropTableRequest{Tid: 1})
	require.NoError(t, err)
	assert.Equal(t, tabletpb.CodeOK, resp.Code)

	resp, err = ts.client.DropTable(ctx, &tabletpb.DropTableRequest{Tid: 1})
	require.NoError(t, err)
	assert.Equal(t, tabletpb.CodeTableNotFound, resp.Code)
	assert.Equal(t, "table is not exist", resp.Msg)
}

func TestTabletServer_PutGet(t *testing.T) {
	ts := startServer(t, false)
	ctx := context.Background()

	_, err := ts.client.CreateTable(ctx, createReq(1))
	require.NoError(t, err)

	put, err := ts.client.Put(ctx, &tabletpb.PutRequest{Tid: 1, Pk: "test1", Time: 9527, Value: []byte("test0")})
	require.NoError(t, err)
	assert.Equal(t, tabletpb.CodeOK, put.Code)

	put, err = ts.client.Put(ctx, &tabletpb.PutRequest{Tid: 9, Pk: "test1", Time: 9527, Value: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, tabletpb.CodeTableNotFound, put.Code)

	get, err := ts.client.Get(ctx, &tabletpb.GetRequest{Tid: 1, Key: "test1"})
	require.NoError(t, err)
	assert.Equal(t, tabletpb.CodeOK, get.Code)
	assert.Equal(t, int64(9527), get.Ts)
	assert.Equal(t, []byte("test0"), get.Value)

	get, err = ts.client.Get(ctx, &tabletpb.GetRequest{Tid: 1, Key: "missing"})
	require.NoError(t, err)
	assert.Equal(t, tabletpb.CodeKeyNotFound, get.Code)
}

func TestTabletServer_GetExactTimestamp(t *testing.T) {
	ts := startServer(t, false)
	ctx := context.Background()

	_, err := ts.client.CreateTable(ctx, createReq(1))
	require.NoError(t, err)
	for _, put := range []*tabletpb.PutRequest{
		{Tid: 1, Pk: "k", Time: 0, Value: []byte("epoch")},
		{Tid: 1, Pk: "k", Time: 5, Value: []byte("later")},
	} {
		resp, err := ts.client.Put(ctx, put)
		require.NoError(t, err)
		require.Equal(t, tabletpb.CodeOK, resp.Code)
	}

	get, err := ts.client.Get(ctx, &tabletpb.GetRequest{Tid: 1, Key: "k", Ts: 0, HasTs: true})
	require.NoError(t, err)
	require.Equal(t, tabletpb.CodeOK, get.Code)
	assert.Equal(t, []byte("epoch"), get.Value)

	get, err = ts.client.Get(ctx, &tabletpb.GetRequest{Tid: 1, Key: "k"})
	require.NoError(t, err)
	assert.Equal(t, []byte("later"), get.Value)

	get, err = ts.client.Get(ctx, &tabletpb.GetRequest{Tid: 1, Key: "k", Ts: 3, HasTs: true})
	require.NoError(t, err)
	assert.Equal(t, tabletpb.CodeKeyNotFound, get.Code)
}

func TestTabletServer_ScanReportsTruncation(t *testing.T) {
	ts := startServerWithCap(t, false, 3)
	ctx := context.Background()

	_, err := ts.client.CreateTable(ctx, createReq(1))
	require.NoError(t, err)
	for ts0 := int64(1); ts0 <= 5; ts0++ {
		_, err := ts.client.Put(ctx, &tabletpb.PutRequest{Tid: 1, Pk: "k", Time: ts0, Value: []byte("v")})
		require.NoError(t, err)
	}

	resp, err := ts.client.Scan(ctx, &tabletpb.ScanRequest{Tid: 1, Pk: "k", St: 10, Et: 0})
	require.NoError(t, err)
	require.Equal(t, tabletpb.CodeOK, resp.Code)
	assert.Equal(t, uint32(3), resp.Count)
	assert.True(t, resp.Truncated)

	resp, err = ts.client.Scan(ctx, &tabletpb.ScanRequest{Tid: 1, Pk: "k", St: 10, Et: 0, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, uint32(2), resp.Count)
	assert.False(t, resp.Truncated)
}

func TestTabletServer_ScanCompressed(t *testing.T) {
	ts := startServer(t, true)
	ctx := context.Background()

	_, err := ts.client.CreateTable(ctx, createReq(1))
	require.NoError(t, err)
	for _, ts0 := range []int64{9527, 9528, 9529} {
		_, err := ts.client.Put(ctx, &tabletpb.PutRequest{Tid: 1, Pk: "test1", Time: ts0, Value: []byte("v")})
		require.NoError(t, err)
	}

	resp, err := ts.client.Scan(ctx, &tabletpb.ScanRequest{Tid: 1, Pk: "test1", St: 9529, Et: 9528})
	require.NoError(t, err)
	require.Equal(t, tabletpb.CodeOK, resp.Code)
	require.True(t, resp.Compressed)

	buf, err := snappy.Decode(nil, resp.Pairs)
	require.NoError(t, err)
	it, err := scanbuf.NewIterator(buf, int(resp.Count))
	require.NoError(t, err)

	var got []int64
	for ; it.Valid(); it.Next() {
		got = append(got, it.Key())
	}
	assert.Equal(t, []int64{9529, 9528}, got)

	empty, err := ts.client.Scan(ctx, &tabletpb.ScanRequest{Tid: 1, Pk: "nothing", St: 9529, Et: 9528})
	require.NoError(t, err)
	assert.False(t, empty.Compressed)
	assert.Empty(t, empty.Pairs)

	bad, err := ts.client.Scan(ctx, &tabletpb.ScanRequest{Tid: 1, Pk: "test1", St: 1, Et: 2})
	require.NoError(t, err)
	assert.Equal(t, tabletpb.CodeInvalidParameter, bad.Code)
}

func TestInterceptor_EchoesRequestID(t *testing.T) {
	ts := startServer(t, false)

	ctx := metadata.AppendToOutgoingContext(context.Background(), RequestIDHeader, "req-42")
	var header metadata.MD
	_, err := ts.client.DropTable(ctx, &tabletpb.DropTableRequest{Tid: 5}, grpc.Header(&header))
	require.NoError(t, err)
	assert.Equal(t, []string{"req-42"}, header.Get(RequestIDHeader))

	header = nil
	_, err = ts.client.DropTable(context.Background(), &tabletpb.DropTableRequest{Tid: 5}, grpc.Header(&header))
	require.NoError(t, err)
	require.Len(t, header.Get(RequestIDHeader), 1)
	assert.NotEmpty(t, header.Get(RequestIDHeader)[0])
}

func TestInterceptor_RecordsOutcomes(t *testing.T) {
	ts := startServer(t, false)
	ctx := context.Background()

	_, err := ts.client.CreateTable(ctx, createReq(1))
	require.NoError(t, err)
	_, err = ts.client.CreateTable(ctx, createReq(1))
	require.NoError(t, err)

	st, ok := ts.stats.Get("CreateTable")
	require.True(t, ok)
	assert.Equal(t, int64(2), st.Calls)
	assert.Equal(t, int64(1), st.Outcomes[observability.OutcomeOK])
	assert.Equal(t, int64(1), st.Outcomes[observability.OutcomeRejected])
}

func TestInterceptor_RejectsDuringShutdown(t *testing.T) {
	ts := startServer(t, false)

	require.NoError(t, ts.shutdown.Shutdown(context.Background(), "test"))

	_, err := ts.client.CreateTable(context.Background(), createReq(1))
	require.Error(t, err)
	assert.Equal(t, codes.Unavailable, status.Code(err))
}
