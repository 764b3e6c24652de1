// Package tabletpb holds the tablet service's protobuf messages and gRPC
// stubs, generated from tablet.proto, plus the response codes they carry.
package tabletpb

//go:generate protoc --proto_path=../.. --go_out=../.. --go_opt=paths=source_relative --go-grpc_out=../.. --go-grpc_opt=paths=source_relative api/tabletpb/tablet.proto

// Response codes carried in the code field of every response.
const (
	CodeOK               int32 = 0
	CodeTableNotFound    int32 = 100
	CodeTableExists      int32 = 101
	CodeInvalidParameter int32 = 102
	CodeKeyNotFound      int32 = 103
	CodeSnapshotNotFound int32 = 104
	CodeInternal         int32 = 105
)
