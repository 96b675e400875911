package indexer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taste-fun/tf-indexer/internal/adapter"
	"github.com/taste-fun/tf-indexer/internal/chain"
	"github.com/taste-fun/tf-indexer/internal/store/schema"
)

func fastSyncerConfig() SyncerConfig {
	return SyncerConfig{
		MinSlotGap: 100,
		Interval:   time.Hour,
		PageDelay:  time.Millisecond,
	}
}

func TestSyncOnceSkipsSmallGaps(t *testing.T) {
	f := newPipelineFixture(t)

	f.chain.EXPECT().
		GetLatestSlot(gomock.Any()).
		Return(uint64(1000), nil)
	f.store.EXPECT().
		GetSyncState(gomock.Any()).
		Return(&schema.SyncState{ID: schema.SyncStateRowID, Slot: 950}, nil)

	syncer := NewSyncer(f.chain, f.pipeline, Programs{Core: coreAddress}, fastSyncerConfig(), adapter.NewClock())
	require.NoError(t, syncer.SyncOnce(context.Background()))
}

func TestSyncOnceReplaysWindowOldestFirst(t *testing.T) {
	f := newPipelineFixture(t)

	f.chain.EXPECT().
		GetLatestSlot(gomock.Any()).
		Return(uint64(2000), nil)
	f.store.EXPECT().
		GetSyncState(gomock.Any()).
		Return(&schema.SyncState{ID: schema.SyncStateRowID, Slot: 1000}, nil)

	// Newest first over two pages, with one failed transaction in the
	// middle that must be skipped without an RPC fetch.
	gomock.InOrder(
		f.chain.EXPECT().
			ListSignatures(gomock.Any(), coreAddress, uint64(1000), "").
			Return([]chain.SignatureInfo{
				{Signature: "sig3", Slot: 1500},
				{Signature: "sig2", Slot: 1400, Err: true},
			}, nil),
		f.chain.EXPECT().
			ListSignatures(gomock.Any(), coreAddress, uint64(1000), "sig2").
			Return([]chain.SignatureInfo{
				{Signature: "sig1", Slot: 1300},
			}, nil),
		f.chain.EXPECT().
			ListSignatures(gomock.Any(), coreAddress, uint64(1000), "sig1").
			Return(nil, nil),
	)

	var order []string
	f.store.EXPECT().
		IsSignatureProcessed(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sig string) (bool, error) {
			order = append(order, sig)
			// Already processed, so the replay stops at the dedup check
			return true, nil
		}).
		Times(2)

	f.store.EXPECT().
		AdvanceSyncState(gomock.Any(), uint64(2000), "sig3").
		Return(nil)

	syncer := NewSyncer(f.chain, f.pipeline, Programs{Core: coreAddress}, fastSyncerConfig(), adapter.NewClock())
	require.NoError(t, syncer.SyncOnce(context.Background()))

	assert.Equal(t, []string{"sig1", "sig3"}, order)
}

func TestSyncOnceFirstRunSyncsFromGenesisWindow(t *testing.T) {
	f := newPipelineFixture(t)

	f.chain.EXPECT().
		GetLatestSlot(gomock.Any()).
		Return(uint64(500), nil)
	// No checkpoint row yet
	f.store.EXPECT().
		GetSyncState(gomock.Any()).
		Return(nil, nil)

	f.chain.EXPECT().
		ListSignatures(gomock.Any(), coreAddress, uint64(0), "").
		Return(nil, nil)

	f.store.EXPECT().
		AdvanceSyncState(gomock.Any(), uint64(500), "").
		Return(nil)

	syncer := NewSyncer(f.chain, f.pipeline, Programs{Core: coreAddress}, fastSyncerConfig(), adapter.NewClock())
	require.NoError(t, syncer.SyncOnce(context.Background()))
}

func TestSyncOnceDoesNotAdvanceOnReplayFailure(t *testing.T) {
	f := newPipelineFixture(t)

	f.chain.EXPECT().
		GetLatestSlot(gomock.Any()).
		Return(uint64(2000), nil)
	f.store.EXPECT().
		GetSyncState(gomock.Any()).
		Return(&schema.SyncState{ID: schema.SyncStateRowID, Slot: 1000}, nil)

	gomock.InOrder(
		f.chain.EXPECT().
			ListSignatures(gomock.Any(), coreAddress, uint64(1000), "").
			Return([]chain.SignatureInfo{{Signature: "sig1", Slot: 1300}}, nil),
		f.chain.EXPECT().
			ListSignatures(gomock.Any(), coreAddress, uint64(1000), "sig1").
			Return(nil, nil),
	)

	f.store.EXPECT().
		IsSignatureProcessed(gomock.Any(), "sig1").
		Return(false, errors.New("connection refused"))

	// AdvanceSyncState must not be called; the next pass retries the
	// same window.
	syncer := NewSyncer(f.chain, f.pipeline, Programs{Core: coreAddress}, fastSyncerConfig(), adapter.NewClock())
	err := syncer.SyncOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to sync program")
}
