// Package grpc serves a Tablet over the tabletkv gRPC service.
package grpc

import (
	"context"
	"errors"
	"log"

	"github.com/golang/snappy"

	"github.com/tabletkv/tabletkv/api/tabletpb"
	tkerrors "github.com/tabletkv/tabletkv/internal/errors"
	"github.com/tabletkv/tabletkv/internal/tablet"
	"github.com/tabletkv/tabletkv/pkg/types"
)

// TabletServer implements tabletpb.TabletServiceServer on top of a Tablet.
// Outcomes the caller can act on travel as response codes; only transport
// level failures become gRPC errors.
type TabletServer struct {
	tabletpb.UnimplementedTabletServiceServer
	tablet       *tablet.Tablet
	compressScan bool
}

// NewTabletServer creates a new gRPC tablet server.
func NewTabletServer(t *tablet.Tablet, compressScan bool) *TabletServer {
	return &TabletServer{tablet: t, compressScan: compressScan}
}

func (s *TabletServer) CreateTable(ctx context.Context, req *tabletpb.CreateTableRequest) (*tabletpb.GeneralResponse, error) {
	spec := types.TableSpec{
		Name:   req.Name,
		TID:    req.Tid,
		PID:    req.Pid,
		TTL:    req.Ttl,
		SegCnt: req.SegCnt,
	}
	err := s.tablet.CreateTable(ctx, spec)
	return general(ctx, "CreateTable", err), nil
}

func (s *TabletServer) DropTable(ctx context.Context, req *tabletpb.DropTableRequest) (*tabletpb.GeneralResponse, error) {
	err := s.tablet.DropTable(ctx, types.TableKey{TID: req.Tid, PID: req.Pid})
	return general(ctx, "DropTable", err), nil
}

func (s *TabletServer) Put(ctx context.Context, req *tabletpb.PutRequest) (*tabletpb.GeneralResponse, error) {
	err := s.tablet.Put(ctx, types.Record{
		TID:       req.Tid,
		PID:       req.Pid,
		Key:       req.Pk,
		Timestamp: req.Time,
		Value:     req.Value,
	})
	return general(ctx, "Put", err), nil
}

func (s *TabletServer) Get(ctx context.Context, req *tabletpb.GetRequest) (*tabletpb.GetResponse, error) {
	key := types.TableKey{TID: req.Tid, PID: req.Pid}
	var (
		rec types.Record
		err error
	)
	if req.HasTs {
		rec, err = s.tablet.GetAt(ctx, key, req.Key, req.Ts)
	} else {
		rec, err = s.tablet.Get(ctx, key, req.Key)
	}
	if err != nil {
		code, msg := responseCode(ctx, "Get", err)
		return &tabletpb.GetResponse{Code: code, Msg: msg}, nil
	}
	return &tabletpb.GetResponse{Key: rec.Key, Ts: rec.Timestamp, Value: rec.Value}, nil
}

func (s *TabletServer) Scan(ctx context.Context, req *tabletpb.ScanRequest) (*tabletpb.ScanResponse, error) {
	rng := types.ScanRange{Key: req.Pk, Start: req.St, End: req.Et, Limit: req.Limit}
	enc, truncated, err := s.tablet.Scan(ctx, types.TableKey{TID: req.Tid, PID: req.Pid}, rng)
	if err != nil {
		code, msg := responseCode(ctx, "Scan", err)
		return &tabletpb.ScanResponse{Code: code, Msg: msg}, nil
	}

	resp := &tabletpb.ScanResponse{Pairs: enc.Bytes(), Count: uint32(enc.Count()), Truncated: truncated}
	if s.compressScan && enc.Len() > 0 {
		resp.Pairs = snappy.Encode(nil, enc.Bytes())
		resp.Compressed = true
	}
	return resp, nil
}

func (s *TabletServer) GetTableStatus(ctx context.Context, req *tabletpb.GetTableStatusRequest) (*tabletpb.TableStatusResponse, error) {
	st, err := s.tablet.Status(ctx, types.TableKey{TID: req.Tid, PID: req.Pid})
	if err != nil {
		code, msg := responseCode(ctx, "GetTableStatus", err)
		return &tabletpb.TableStatusResponse{Code: code, Msg: msg}, nil
	}
	return &tabletpb.TableStatusResponse{
		Name:        st.Name,
		Tid:         st.TID,
		Pid:         st.PID,
		Ttl:         st.TTL,
		SegCnt:      st.SegCnt,
		RecordCount: st.RecordCount,
		Engine:      st.Engine,
		CreatedAt:   st.CreatedAt,
	}, nil
}

func (s *TabletServer) MakeSnapshot(ctx context.Context, req *tabletpb.MakeSnapshotRequest) (*tabletpb.GeneralResponse, error) {
	_, err := s.tablet.MakeSnapshot(ctx, types.TableKey{TID: req.Tid, PID: req.Pid})
	return general(ctx, "MakeSnapshot", err), nil
}

func (s *TabletServer) LoadTable(ctx context.Context, req *tabletpb.LoadTableRequest) (*tabletpb.GeneralResponse, error) {
	err := s.tablet.LoadTable(ctx, types.TableKey{TID: req.Tid, PID: req.Pid})
	return general(ctx, "LoadTable", err), nil
}

func general(ctx context.Context, method string, err error) *tabletpb.GeneralResponse {
	if err == nil {
		return &tabletpb.GeneralResponse{Code: tabletpb.CodeOK, Msg: "ok"}
	}
	code, msg := responseCode(ctx, method, err)
	return &tabletpb.GeneralResponse{Code: code, Msg: msg}
}

// responseCode maps a tablet error to its wire code.
func responseCode(ctx context.Context, method string, err error) (int32, string) {
	switch {
	case errors.Is(err, tablet.ErrTableNotFound):
		return tabletpb.CodeTableNotFound, "table is not exist"
	case errors.Is(err, tablet.ErrTableExists):
		return tabletpb.CodeTableExists, "table already exists"
	case errors.Is(err, tablet.ErrKeyNotFound):
		return tabletpb.CodeKeyNotFound, "key not found"
	case errors.Is(err, tablet.ErrSnapshotNotFound):
		return tabletpb.CodeSnapshotNotFound, "snapshot not found"
	case tkerrors.GetCategory(err) == tkerrors.ErrCategoryValidation:
		return tabletpb.CodeInvalidParameter, err.Error()
	default:
		log.Printf("grpc: %s failed request_id=%s: %v", method, RequestIDFromContext(ctx), err)
		return tabletpb.CodeInternal, "internal error"
	}
}
