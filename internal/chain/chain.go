// Package chain abstracts the Solana RPC surface the pipeline needs,
// so the indexer and syncer can be tested against mocks.
package chain

import (
	"context"
	"time"
)

// LogNotification is one live subscription delivery: the signature of
// a transaction that mentioned a monitored program, and the slot it
// landed in. The full transaction is fetched separately after the
// dedup check.
type LogNotification struct {
	Signature string
	Slot      uint64
	// Failed marks a transaction that failed on chain. It carries no
	// events; the stream stays healthy.
	Failed bool
	// Err is set when the subscription itself failed; the stream ends
	// after delivering it.
	Err error
}

// LogSubscription is a live stream of notifications for one program.
type LogSubscription interface {
	// Recv blocks for the next notification or ctx cancellation
	Recv(ctx context.Context) (*LogNotification, error)
	// Unsubscribe tears the stream down
	Unsubscribe()
}

// TransactionDetail is the fetched view of a confirmed transaction.
type TransactionDetail struct {
	Signature   string
	Slot        uint64
	BlockTime   time.Time
	LogMessages []string
	Failed      bool
}

// SignatureInfo is one entry of a signature listing, newest first.
type SignatureInfo struct {
	Signature string
	Slot      uint64
	Err       bool
}

// Client is the read surface of the chain.
//
//go:generate mockgen -source=chain.go -destination=../mocks/chain.go -package=mocks -mock_names=Client=MockChainClient,LogSubscription=MockLogSubscription,Confirmer=MockConfirmer
type Client interface {
	// SubscribeLogs opens a live log subscription mentioning program
	SubscribeLogs(ctx context.Context, program string) (LogSubscription, error)
	// GetTransaction fetches a finalized transaction by signature
	GetTransaction(ctx context.Context, signature string) (*TransactionDetail, error)
	// ListSignatures pages a program's signatures newest-first,
	// starting before beforeSig (empty for the tip) and stopping once
	// entries reach minSlot.
	ListSignatures(ctx context.Context, program string, minSlot uint64, beforeSig string) ([]SignatureInfo, error)
	// GetLatestSlot returns the current finalized head slot
	GetLatestSlot(ctx context.Context) (uint64, error)
	// Close releases the underlying connections
	Close()
}

// Confirmer submits the image-confirmation instruction back on chain
// with the service identity.
type Confirmer interface {
	// ConfirmImages records the generated image URIs for an idea
	ConfirmImages(ctx context.Context, ideaKey string, imageURIs []string) (signature string, err error)
}
