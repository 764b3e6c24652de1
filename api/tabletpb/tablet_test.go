package tabletpb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
)

func TestRegistry_ServiceDescriptor(t *testing.T) {
	d, err := protoregistry.GlobalFiles.FindDescriptorByName("tabletkv.TabletService")
	require.NoError(t, err)

	svc, ok := d.(protoreflect.ServiceDescriptor)
	require.True(t, ok)
	assert.Equal(t, 8, svc.Methods().Len())

	get := svc.Methods().ByName("Get")
	require.NotNil(t, get)
	assert.Equal(t, protoreflect.FullName("tabletkv.GetRequest"), get.Input().FullName())
	assert.Equal(t, protoreflect.FullName("tabletkv.GetResponse"), get.Output().FullName())
	assert.Equal(t, "/tabletkv.TabletService/Get", TabletService_Get_FullMethodName)
}

func TestMarshal_UsesDefaultProtoCodec(t *testing.T) {
	c := encoding.GetCodecV2("proto")
	require.NotNil(t, c)

	in := &PutRequest{Pk: "test1", Time: 9527, Value: []byte("test0"), Tid: 1}
	data, err := c.Marshal(in)
	require.NoError(t, err)

	out := &PutRequest{}
	require.NoError(t, c.Unmarshal(data, out))
	assert.True(t, proto.Equal(in, out), "got %v", out)
}

func TestMarshal_WireLayout(t *testing.T) {
	// GetRequest{tid: 1, key: "test0", ts: 0, has_ts: true}
	var want []byte
	want = protowire.AppendTag(want, 1, protowire.VarintType)
	want = protowire.AppendVarint(want, 1)
	want = protowire.AppendTag(want, 3, protowire.BytesType)
	want = protowire.AppendString(want, "test0")
	want = protowire.AppendTag(want, 5, protowire.VarintType)
	want = protowire.AppendVarint(want, 1)

	got, err := proto.Marshal(&GetRequest{Tid: 1, Key: "test0", HasTs: true})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMarshal_NegativeValuesSurvive(t *testing.T) {
	in := &ScanRequest{Pk: "k", St: -1, Et: -100, Tid: 7, Pid: 3, Limit: 10}

	b, err := proto.Marshal(in)
	require.NoError(t, err)

	out := &ScanRequest{}
	require.NoError(t, proto.Unmarshal(b, out))
	assert.Equal(t, int64(-1), out.GetSt())
	assert.Equal(t, int64(-100), out.GetEt())
	assert.Equal(t, uint32(10), out.GetLimit())
}

func TestUnmarshal_SkipsUnknownFields(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 99, protowire.BytesType)
	b = protowire.AppendString(b, "future")
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(CodeTableExists))

	out := &GeneralResponse{}
	require.NoError(t, proto.Unmarshal(b, out))
	assert.Equal(t, CodeTableExists, out.GetCode())
}

func TestGetters_NilSafe(t *testing.T) {
	var resp *ScanResponse
	assert.Equal(t, int32(0), resp.GetCode())
	assert.Nil(t, resp.GetPairs())
	assert.False(t, resp.GetTruncated())
}
