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
	"github.com/taste-fun/tf-indexer/internal/decoder"
	"github.com/taste-fun/tf-indexer/internal/domain"
	"github.com/taste-fun/tf-indexer/internal/logger"
	"github.com/taste-fun/tf-indexer/internal/mocks"
	"github.com/taste-fun/tf-indexer/internal/realtime"
	"github.com/taste-fun/tf-indexer/internal/retry"
	"github.com/taste-fun/tf-indexer/internal/store"
	"github.com/taste-fun/tf-indexer/internal/store/schema"
	"github.com/taste-fun/tf-indexer/internal/taskqueue"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	m.Run()
}

// fastPolicy keeps retry delays out of test runtime.
func fastPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts:     3,
		InitialInterval: time.Millisecond,
		MaxInterval:     time.Millisecond,
		Multiplier:      1,
	}
}

type pipelineFixture struct {
	chain     *mocks.MockChainClient
	store     *mocks.MockStore
	publisher *mocks.MockRealtimePublisher
	queue     *mocks.MockQueue
	pipeline  *Pipeline
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &pipelineFixture{
		chain:     mocks.NewMockChainClient(ctrl),
		store:     mocks.NewMockStore(ctrl),
		publisher: mocks.NewMockRealtimePublisher(ctrl),
		queue:     mocks.NewMockQueue(ctrl),
	}
	f.pipeline = NewPipeline(f.chain, decoder.New(), f.store, f.publisher, f.queue, fastPolicy())
	return f
}

const testSignature = "5VERYrealSignature1111111111111111111111111111111111111111111111111111111111111111111"

func TestProcessSignatureSkipsProcessedSignatures(t *testing.T) {
	f := newPipelineFixture(t)

	f.store.EXPECT().
		IsSignatureProcessed(gomock.Any(), testSignature).
		Return(true, nil)

	applied, err := f.pipeline.ProcessSignature(context.Background(), domain.ProgramCore, testSignature)
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestProcessSignatureAppliesIdeaCreated(t *testing.T) {
	f := newPipelineFixture(t)

	f.store.EXPECT().
		IsSignatureProcessed(gomock.Any(), testSignature).
		Return(false, nil)
	f.chain.EXPECT().
		GetTransaction(gomock.Any(), testSignature).
		Return(&chain.TransactionDetail{
			Signature: testSignature,
			Slot:      1234,
			LogMessages: []string{
				"Program TasteCoreProgram111111111111111111111111 invoke [1]",
				`Program log: EVENT:IdeaCreated:{"idea":"Idea1","theme":"Theme1","initiator":"Init1","prompt":"a fox in a tea house","depinProvider":"akash"}`,
				"Program TasteCoreProgram111111111111111111111111 success",
			},
		}, nil)

	var appliedInput store.ApplyTransactionInput
	f.store.EXPECT().
		ApplyTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.ApplyTransactionInput) (bool, error) {
			appliedInput = input
			return true, nil
		})

	var published []*realtime.Message
	f.publisher.EXPECT().
		Publish(gomock.Any()).
		DoAndReturn(func(msg *realtime.Message) error {
			published = append(published, msg)
			return nil
		})

	var enqueued *taskqueue.Job
	f.queue.EXPECT().
		Enqueue(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job *taskqueue.Job) error {
			enqueued = job
			return nil
		})

	applied, err := f.pipeline.ProcessSignature(context.Background(), domain.ProgramCore, testSignature)
	require.NoError(t, err)
	assert.True(t, applied)

	assert.Equal(t, testSignature, appliedInput.Signature)
	assert.Equal(t, uint64(1234), appliedInput.Slot)
	require.Len(t, appliedInput.Events, 1)

	require.Len(t, published, 1)
	assert.Equal(t, realtime.MessageIdeaNew, published[0].Type)

	require.NotNil(t, enqueued)
	assert.Equal(t, "Idea1", enqueued.IdeaKey)
	assert.Equal(t, "akash", enqueued.Provider)
	require.Len(t, enqueued.Prompts, domain.GeneratedImageCount)
	for _, p := range enqueued.Prompts {
		assert.Equal(t, "a fox in a tea house", p)
	}
}

func TestProcessSignatureRecordsFailedTransactions(t *testing.T) {
	f := newPipelineFixture(t)

	f.store.EXPECT().
		IsSignatureProcessed(gomock.Any(), testSignature).
		Return(false, nil)
	f.chain.EXPECT().
		GetTransaction(gomock.Any(), testSignature).
		Return(&chain.TransactionDetail{
			Signature:   testSignature,
			Slot:        1234,
			Failed:      true,
			LogMessages: []string{`Program log: EVENT:VoteCast:{"idea":"Idea1","voter":"V1","imageChoice":1,"stakeAmount":5000000}`},
		}, nil)

	// Only the signature is recorded; the events of a failed
	// transaction never reach the projection.
	f.store.EXPECT().
		ApplyTransaction(gomock.Any(), store.ApplyTransactionInput{
			Signature: testSignature,
			Slot:      1234,
		}).
		Return(true, nil)

	applied, err := f.pipeline.ProcessSignature(context.Background(), domain.ProgramCore, testSignature)
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestProcessSignatureRetriesTransientFetches(t *testing.T) {
	f := newPipelineFixture(t)

	f.store.EXPECT().
		IsSignatureProcessed(gomock.Any(), testSignature).
		Return(false, nil)

	gomock.InOrder(
		f.chain.EXPECT().
			GetTransaction(gomock.Any(), testSignature).
			Return(nil, errors.New("rpc timeout")).
			Times(2),
		f.chain.EXPECT().
			GetTransaction(gomock.Any(), testSignature).
			Return(&chain.TransactionDetail{Signature: testSignature, Slot: 42}, nil),
	)

	f.store.EXPECT().
		ApplyTransaction(gomock.Any(), gomock.Any()).
		Return(true, nil)

	applied, err := f.pipeline.ProcessSignature(context.Background(), domain.ProgramCore, testSignature)
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestProcessSignatureGivesUpAfterMaxAttempts(t *testing.T) {
	f := newPipelineFixture(t)

	f.store.EXPECT().
		IsSignatureProcessed(gomock.Any(), testSignature).
		Return(false, nil)
	f.chain.EXPECT().
		GetTransaction(gomock.Any(), testSignature).
		Return(nil, errors.New("rpc timeout")).
		Times(3)

	_, err := f.pipeline.ProcessSignature(context.Background(), domain.ProgramCore, testSignature)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch transaction")
}

func TestProcessSignatureSkipsFanoutWhenRaceLost(t *testing.T) {
	f := newPipelineFixture(t)

	f.store.EXPECT().
		IsSignatureProcessed(gomock.Any(), testSignature).
		Return(false, nil)
	f.chain.EXPECT().
		GetTransaction(gomock.Any(), testSignature).
		Return(&chain.TransactionDetail{
			Signature:   testSignature,
			Slot:        1234,
			LogMessages: []string{`Program log: EVENT:IdeaCreated:{"idea":"Idea1","theme":"Theme1","initiator":"Init1","prompt":"p","depinProvider":""}`},
		}, nil)
	// Another path claimed the signature between the fast check and the
	// projection; no fanout, no job.
	f.store.EXPECT().
		ApplyTransaction(gomock.Any(), gomock.Any()).
		Return(false, nil)

	applied, err := f.pipeline.ProcessSignature(context.Background(), domain.ProgramCore, testSignature)
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestVoteCastPublishesVoteAndStats(t *testing.T) {
	f := newPipelineFixture(t)

	f.store.EXPECT().
		IsSignatureProcessed(gomock.Any(), testSignature).
		Return(false, nil)
	f.chain.EXPECT().
		GetTransaction(gomock.Any(), testSignature).
		Return(&chain.TransactionDetail{
			Signature:   testSignature,
			Slot:        1500,
			LogMessages: []string{`Program log: EVENT:VoteCast:{"idea":"Idea1","voter":"V1","imageChoice":2,"stakeAmount":5000000}`},
		}, nil)
	f.store.EXPECT().
		ApplyTransaction(gomock.Any(), gomock.Any()).
		Return(true, nil)
	f.store.EXPECT().
		GetIdea(gomock.Any(), "Idea1").
		Return(&schema.Idea{
			IdeaKey:     "Idea1",
			VoteWeight2: 2236,
			TotalStaked: 5_000_000,
			TotalVoters: 1,
		}, nil)

	var types []realtime.MessageType
	f.publisher.EXPECT().
		Publish(gomock.Any()).
		DoAndReturn(func(msg *realtime.Message) error {
			types = append(types, msg.Type)
			return nil
		}).
		Times(2)

	applied, err := f.pipeline.ProcessSignature(context.Background(), domain.ProgramCore, testSignature)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, []realtime.MessageType{realtime.MessageVoteNew, realtime.MessageIdeaStats}, types)
}

func TestVotingSettledPublishesGlobalStats(t *testing.T) {
	f := newPipelineFixture(t)

	f.store.EXPECT().
		IsSignatureProcessed(gomock.Any(), testSignature).
		Return(false, nil)
	f.chain.EXPECT().
		GetTransaction(gomock.Any(), testSignature).
		Return(&chain.TransactionDetail{
			Signature:   testSignature,
			Slot:        1600,
			LogMessages: []string{`Program log: EVENT:VotingSettled:{"idea":"Idea1","winningImageIndex":2,"totalStaked":100000000,"curatorFee":1000000,"platformFee":2000000,"penaltyPool":5000000,"winnerCount":12}`},
		}, nil)
	f.store.EXPECT().
		ApplyTransaction(gomock.Any(), gomock.Any()).
		Return(true, nil)
	f.store.EXPECT().
		GetGlobalStats(gomock.Any()).
		Return(&store.GlobalStats{TotalIdeas: 10, CompletedRounds: 3}, nil)

	var types []realtime.MessageType
	f.publisher.EXPECT().
		Publish(gomock.Any()).
		DoAndReturn(func(msg *realtime.Message) error {
			types = append(types, msg.Type)
			return nil
		}).
		Times(2)

	applied, err := f.pipeline.ProcessSignature(context.Background(), domain.ProgramSettlement, testSignature)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, []realtime.MessageType{realtime.MessageIdeaStatus, realtime.MessageStatsGlobal}, types)
}

func TestPublishFailureDoesNotFailProcessing(t *testing.T) {
	f := newPipelineFixture(t)

	f.store.EXPECT().
		IsSignatureProcessed(gomock.Any(), testSignature).
		Return(false, nil)
	f.chain.EXPECT().
		GetTransaction(gomock.Any(), testSignature).
		Return(&chain.TransactionDetail{
			Signature:   testSignature,
			Slot:        1700,
			LogMessages: []string{`Program log: EVENT:ThemeCreated:{"theme":"Theme1","themeId":7,"creator":"C1","name":"teahouse","tokenMint":"Mint1","votingMode":0,"totalSupply":1000000000}`},
		}, nil)
	f.store.EXPECT().
		ApplyTransaction(gomock.Any(), gomock.Any()).
		Return(true, nil)
	f.publisher.EXPECT().
		Publish(gomock.Any()).
		Return(errors.New("nats: connection closed"))

	applied, err := f.pipeline.ProcessSignature(context.Background(), domain.ProgramToken, testSignature)
	require.NoError(t, err)
	assert.True(t, applied)
}
