package indexer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taste-fun/tf-indexer/internal/chain"
	"github.com/taste-fun/tf-indexer/internal/domain"
	"github.com/taste-fun/tf-indexer/internal/mocks"
	"github.com/taste-fun/tf-indexer/internal/retry"
)

const coreAddress = "TasteCoreProgram111111111111111111111111111"

func TestSubscriberProcessesLiveNotifications(t *testing.T) {
	f := newPipelineFixture(t)
	ctrl := gomock.NewController(t)
	sub := mocks.NewMockLogSubscription(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f.chain.EXPECT().
		SubscribeLogs(gomock.Any(), coreAddress).
		Return(sub, nil)
	sub.EXPECT().Unsubscribe()

	gomock.InOrder(
		sub.EXPECT().
			Recv(gomock.Any()).
			Return(&chain.LogNotification{Signature: testSignature, Slot: 10}, nil),
		sub.EXPECT().
			Recv(gomock.Any()).
			DoAndReturn(func(context.Context) (*chain.LogNotification, error) {
				cancel()
				return nil, context.Canceled
			}),
	)

	// The notification reaches the pipeline; the dedup fast path is
	// enough to prove the wiring.
	f.store.EXPECT().
		IsSignatureProcessed(gomock.Any(), testSignature).
		Return(true, nil)

	subscriber := NewSubscriber(f.chain, f.pipeline, Programs{Core: coreAddress}, retry.Default())
	err := subscriber.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubscriberReconnectsAfterSubscriptionLoss(t *testing.T) {
	f := newPipelineFixture(t)
	ctrl := gomock.NewController(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	failing := mocks.NewMockLogSubscription(ctrl)
	failing.EXPECT().
		Recv(gomock.Any()).
		Return(nil, errors.New("websocket: close 1006"))
	failing.EXPECT().Unsubscribe()

	recovered := mocks.NewMockLogSubscription(ctrl)
	recovered.EXPECT().
		Recv(gomock.Any()).
		DoAndReturn(func(context.Context) (*chain.LogNotification, error) {
			cancel()
			return nil, context.Canceled
		})
	recovered.EXPECT().Unsubscribe()

	gomock.InOrder(
		f.chain.EXPECT().
			SubscribeLogs(gomock.Any(), coreAddress).
			Return(failing, nil),
		f.chain.EXPECT().
			SubscribeLogs(gomock.Any(), coreAddress).
			Return(recovered, nil),
	)

	policy := retry.Policy{
		InitialInterval: time.Millisecond,
		MaxInterval:     time.Millisecond,
		Multiplier:      1,
	}
	subscriber := NewSubscriber(f.chain, f.pipeline, Programs{Core: coreAddress}, policy)
	err := subscriber.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubscriberSkipsFailedTransactions(t *testing.T) {
	f := newPipelineFixture(t)
	ctrl := gomock.NewController(t)
	sub := mocks.NewMockLogSubscription(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// One subscription for the whole stream: a transaction that failed
	// on chain must not tear it down.
	f.chain.EXPECT().
		SubscribeLogs(gomock.Any(), coreAddress).
		Return(sub, nil)
	sub.EXPECT().Unsubscribe()

	gomock.InOrder(
		sub.EXPECT().
			Recv(gomock.Any()).
			Return(&chain.LogNotification{Signature: "failedSig", Slot: 9, Failed: true}, nil),
		sub.EXPECT().
			Recv(gomock.Any()).
			Return(&chain.LogNotification{Signature: testSignature, Slot: 10}, nil),
		sub.EXPECT().
			Recv(gomock.Any()).
			DoAndReturn(func(context.Context) (*chain.LogNotification, error) {
				cancel()
				return nil, context.Canceled
			}),
	)

	// Only the healthy transaction reaches the pipeline; the failed one
	// is dropped before any store or RPC work.
	f.store.EXPECT().
		IsSignatureProcessed(gomock.Any(), testSignature).
		Return(true, nil)

	subscriber := NewSubscriber(f.chain, f.pipeline, Programs{Core: coreAddress}, retry.Default())
	err := subscriber.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubscriberResetsBackoffAfterApply(t *testing.T) {
	f := newPipelineFixture(t)
	ctrl := gomock.NewController(t)
	sub := mocks.NewMockLogSubscription(ctrl)

	policy := retry.Policy{
		InitialInterval: 10 * time.Millisecond,
		MaxInterval:     10 * time.Second,
		Multiplier:      10,
	}
	b := policy.NewBackOff()

	// Grow the delay the way a run of failed reconnects would
	var grown time.Duration
	for range 4 {
		grown = b.NextBackOff()
	}
	require.GreaterOrEqual(t, grown, 500*time.Millisecond)

	f.chain.EXPECT().
		SubscribeLogs(gomock.Any(), coreAddress).
		Return(sub, nil)
	sub.EXPECT().Unsubscribe()

	gomock.InOrder(
		sub.EXPECT().
			Recv(gomock.Any()).
			Return(&chain.LogNotification{Signature: testSignature, Slot: 10}, nil),
		sub.EXPECT().
			Recv(gomock.Any()).
			Return(nil, errors.New("websocket: close 1006")),
	)

	// Full apply path so the notification counts as applied
	f.store.EXPECT().
		IsSignatureProcessed(gomock.Any(), testSignature).
		Return(false, nil)
	f.chain.EXPECT().
		GetTransaction(gomock.Any(), testSignature).
		Return(&chain.TransactionDetail{Signature: testSignature, Slot: 10}, nil)
	f.store.EXPECT().
		ApplyTransaction(gomock.Any(), gomock.Any()).
		Return(true, nil)

	subscriber := NewSubscriber(f.chain, f.pipeline, Programs{Core: coreAddress}, policy)
	err := subscriber.consumeSubscription(context.Background(), coreAddress, domain.ProgramCore, b)
	require.Error(t, err)

	// One applied notification brings the delay back to the base
	// interval (jitter keeps it within half to one-and-a-half times).
	assert.Less(t, b.NextBackOff(), 50*time.Millisecond)
}

func TestSubscriberContinuesAfterProcessingError(t *testing.T) {
	f := newPipelineFixture(t)
	ctrl := gomock.NewController(t)
	sub := mocks.NewMockLogSubscription(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f.chain.EXPECT().
		SubscribeLogs(gomock.Any(), coreAddress).
		Return(sub, nil)
	sub.EXPECT().Unsubscribe()

	gomock.InOrder(
		sub.EXPECT().
			Recv(gomock.Any()).
			Return(&chain.LogNotification{Signature: testSignature, Slot: 10}, nil),
		sub.EXPECT().
			Recv(gomock.Any()).
			DoAndReturn(func(context.Context) (*chain.LogNotification, error) {
				cancel()
				return nil, context.Canceled
			}),
	)

	// A database hiccup on one signature must not kill the stream.
	f.store.EXPECT().
		IsSignatureProcessed(gomock.Any(), testSignature).
		Return(false, errors.New("connection refused"))

	subscriber := NewSubscriber(f.chain, f.pipeline, Programs{Core: coreAddress}, retry.Default())
	err := subscriber.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
