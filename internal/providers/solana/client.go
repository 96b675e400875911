// Package solana implements the chain interfaces over the Solana JSON
// RPC and websocket endpoints.
package solana

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"

	"github.com/taste-fun/tf-indexer/internal/chain"
)

// Config holds the endpoints of one Solana cluster.
type Config struct {
	// RPCURL is the HTTP JSON RPC endpoint
	RPCURL string
	// WSURL is the websocket endpoint for log subscriptions
	WSURL string
}

// Client implements chain.Client over solana-go. All reads use
// finalized commitment; the pipeline never sees a slot that can roll
// back.
type Client struct {
	rpc *rpc.Client
	ws  *ws.Client
}

// NewClient connects the RPC and websocket clients.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	wsClient, err := ws.Connect(ctx, cfg.WSURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect websocket: %w", err)
	}

	return &Client{
		rpc: rpc.New(cfg.RPCURL),
		ws:  wsClient,
	}, nil
}

// SubscribeLogs opens a live log subscription mentioning program
func (c *Client) SubscribeLogs(ctx context.Context, program string) (chain.LogSubscription, error) {
	pubkey, err := solana.PublicKeyFromBase58(program)
	if err != nil {
		return nil, fmt.Errorf("failed to parse program key %q: %w", program, err)
	}

	sub, err := c.ws.LogsSubscribeMentions(pubkey, rpc.CommitmentFinalized)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to logs of %s: %w", program, err)
	}

	return &logSubscription{sub: sub}, nil
}

type logSubscription struct {
	sub *ws.LogSubscription
}

func (s *logSubscription) Recv(ctx context.Context) (*chain.LogNotification, error) {
	result, err := s.sub.Recv(ctx)
	if err != nil {
		return nil, fmt.Errorf("log subscription receive: %w", err)
	}

	// A non-nil value error means the transaction failed on chain, not
	// that the subscription broke. Failed txs are routine; the
	// subscriber drops them without tearing the stream down.
	return &chain.LogNotification{
		Signature: result.Value.Signature.String(),
		Slot:      result.Context.Slot,
		Failed:    result.Value.Err != nil,
	}, nil
}

func (s *logSubscription) Unsubscribe() {
	s.sub.Unsubscribe()
}

// GetTransaction fetches a finalized transaction by signature
func (c *Client) GetTransaction(ctx context.Context, signature string) (*chain.TransactionDetail, error) {
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signature %q: %w", signature, err)
	}

	maxVersion := uint64(0)
	result, err := c.rpc.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
		Commitment:                     rpc.CommitmentFinalized,
		MaxSupportedTransactionVersion: &maxVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transaction %s: %w", signature, err)
	}
	if result == nil || result.Meta == nil {
		return nil, fmt.Errorf("transaction %s has no metadata", signature)
	}

	detail := &chain.TransactionDetail{
		Signature:   signature,
		Slot:        result.Slot,
		LogMessages: result.Meta.LogMessages,
		Failed:      result.Meta.Err != nil,
	}
	if result.BlockTime != nil {
		detail.BlockTime = result.BlockTime.Time()
	}
	return detail, nil
}

// ListSignatures pages a program's signature history newest-first and
// stops once entries fall at or below minSlot.
func (c *Client) ListSignatures(ctx context.Context, program string, minSlot uint64, beforeSig string) ([]chain.SignatureInfo, error) {
	pubkey, err := solana.PublicKeyFromBase58(program)
	if err != nil {
		return nil, fmt.Errorf("failed to parse program key %q: %w", program, err)
	}

	opts := &rpc.GetSignaturesForAddressOpts{
		Commitment: rpc.CommitmentFinalized,
	}
	if beforeSig != "" {
		before, err := solana.SignatureFromBase58(beforeSig)
		if err != nil {
			return nil, fmt.Errorf("failed to parse before signature %q: %w", beforeSig, err)
		}
		opts.Before = before
	}

	entries, err := c.rpc.GetSignaturesForAddressWithOpts(ctx, pubkey, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list signatures of %s: %w", program, err)
	}

	infos := make([]chain.SignatureInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.Slot <= minSlot {
			break
		}
		infos = append(infos, chain.SignatureInfo{
			Signature: entry.Signature.String(),
			Slot:      entry.Slot,
			Err:       entry.Err != nil,
		})
	}
	return infos, nil
}

// GetLatestSlot returns the current finalized head slot
func (c *Client) GetLatestSlot(ctx context.Context) (uint64, error) {
	slot, err := c.rpc.GetSlot(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return 0, fmt.Errorf("failed to get head slot: %w", err)
	}
	return slot, nil
}

// Close releases the underlying connections
func (c *Client) Close() {
	c.ws.Close()
}

var _ chain.Client = (*Client)(nil)
