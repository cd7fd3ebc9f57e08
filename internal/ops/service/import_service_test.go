package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/jcchavez3004/SupportLogistic-Platform/internal/ops/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubInserter fails on the batch indices listed in failOn (1-based).
type stubInserter struct {
	calls    int
	inserted int
	failOn   map[int]bool
}

func (s *stubInserter) CreateBatch(_ context.Context, services []entity.Service) error {
	s.calls++
	if s.failOn[s.calls] {
		return fmt.Errorf("connection reset")
	}
	s.inserted += len(services)
	return nil
}

func makeServices(n int) []entity.Service {
	services := make([]entity.Service, n)
	for i := range services {
		services[i] = entity.Service{ID: fmt.Sprintf("svc-%d", i), Status: entity.StatusSolicitado}
	}
	return services
}

func TestInsertInBatchesAllSucceed(t *testing.T) {
	ins := &stubInserter{}
	result := InsertInBatches(context.Background(), ins, makeServices(250), 100)

	assert.True(t, result.Success)
	assert.Equal(t, 250, result.Count)
	assert.Equal(t, 250, result.Total)
	assert.Empty(t, result.ErrorMessage)
	require.Len(t, result.Batches, 3)
	assert.Equal(t, 100, result.Batches[0].Size)
	assert.Equal(t, 100, result.Batches[1].Size)
	assert.Equal(t, 50, result.Batches[2].Size)
}

// A mid-run batch failure must not abort later batches: the result still
// reports success with the surviving count and names the failed batch.
func TestInsertInBatchesPartialFailure(t *testing.T) {
	ins := &stubInserter{failOn: map[int]bool{2: true}}
	result := InsertInBatches(context.Background(), ins, makeServices(250), 100)

	assert.True(t, result.Success)
	assert.Equal(t, 150, result.Count)
	assert.Equal(t, 3, ins.calls, "batch 3 still ran after batch 2 failed")

	require.Len(t, result.Batches, 3)
	assert.True(t, result.Batches[0].Inserted)
	assert.False(t, result.Batches[1].Inserted)
	assert.True(t, result.Batches[2].Inserted)

	assert.Contains(t, result.ErrorMessage, "lote 2")
	assert.Contains(t, result.ErrorMessage, "connection reset")
	assert.NotContains(t, result.ErrorMessage, "lote 1")
}

func TestInsertInBatchesAllFail(t *testing.T) {
	ins := &stubInserter{failOn: map[int]bool{1: true, 2: true}}
	result := InsertInBatches(context.Background(), ins, makeServices(150), 100)

	assert.False(t, result.Success)
	assert.Equal(t, 0, result.Count)
	assert.NotEmpty(t, result.ErrorMessage)
}

func TestInsertInBatchesEmptyInput(t *testing.T) {
	ins := &stubInserter{}
	result := InsertInBatches(context.Background(), ins, nil, 100)

	assert.False(t, result.Success)
	assert.Zero(t, result.Count)
	assert.Zero(t, ins.calls)
}
