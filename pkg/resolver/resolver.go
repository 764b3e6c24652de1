// Package resolver maps a table partition to the address of the tablet that
// serves it.
package resolver

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/spaolacci/murmur3"

	"github.com/tabletkv/tabletkv/pkg/types"
)

// ErrNoEndpoint is returned when a resolver has no address for a partition.
var ErrNoEndpoint = errors.New("resolver: no endpoint")

// Resolver returns the tablet address for (tid, pid).
type Resolver interface {
	Resolve(ctx context.Context, tid, pid uint32) (string, error)
}

// Func adapts a function to the Resolver interface.
type Func func(ctx context.Context, tid, pid uint32) (string, error)

// Resolve calls f.
func (f Func) Resolve(ctx context.Context, tid, pid uint32) (string, error) {
	return f(ctx, tid, pid)
}

// Static always resolves to one address.
type Static string

// Resolve returns the static address.
func (s Static) Resolve(_ context.Context, _, _ uint32) (string, error) {
	if s == "" {
		return "", ErrNoEndpoint
	}
	return string(s), nil
}

// Hash spreads partitions over a fixed endpoint list using murmur3 on the
// (tid, pid) pair. The mapping is stable for a given endpoint list.
type Hash struct {
	endpoints []string
}

// NewHash creates a hash resolver. Empty entries are ignored.
func NewHash(endpoints []string) (*Hash, error) {
	eps := make([]string, 0, len(endpoints))
	for _, ep := range endpoints {
		ep = strings.TrimSpace(ep)
		if ep != "" {
			eps = append(eps, ep)
		}
	}
	if len(eps) == 0 {
		return nil, fmt.Errorf("%w: at least one endpoint is required", ErrNoEndpoint)
	}
	return &Hash{endpoints: eps}, nil
}

// Resolve returns the endpoint owning (tid, pid).
func (h *Hash) Resolve(_ context.Context, tid, pid uint32) (string, error) {
	return h.endpoints[bucket(tid, pid, len(h.endpoints))], nil
}

// Endpoints returns a copy of the endpoint list.
func (h *Hash) Endpoints() []string {
	return append([]string(nil), h.endpoints...)
}

func bucket(tid, pid uint32, n int) int {
	var b [8]byte
	binary.BigEndian.PutUint32(b[:4], tid)
	binary.BigEndian.PutUint32(b[4:], pid)
	return int(murmur3.Sum64(b[:]) % uint64(n))
}

// New builds the resolver for an endpoint list: Static for one address,
// Hash for several.
func New(endpoints []string) (Resolver, error) {
	h, err := NewHash(endpoints)
	if err != nil {
		return nil, err
	}
	if len(h.endpoints) == 1 {
		return Static(h.endpoints[0]), nil
	}
	return h, nil
}

func cacheKey(tid, pid uint32) types.TableKey {
	return types.TableKey{TID: tid, PID: pid}
}
