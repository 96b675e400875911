package solana

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/taste-fun/tf-indexer/internal/chain"
	"github.com/taste-fun/tf-indexer/internal/domain"
)

// Confirmer submits the core program's confirm_images instruction with
// the service authority key. The instruction is idempotent on chain: a
// second confirmation for the same idea fails with a state error the
// worker treats as success.
type Confirmer struct {
	rpc       *rpc.Client
	program   solana.PublicKey
	authority solana.PrivateKey
}

// NewConfirmer builds a Confirmer for the core program.
func NewConfirmer(rpcURL, coreProgram string, authority solana.PrivateKey) (*Confirmer, error) {
	program, err := solana.PublicKeyFromBase58(coreProgram)
	if err != nil {
		return nil, fmt.Errorf("failed to parse core program key %q: %w", coreProgram, err)
	}

	return &Confirmer{
		rpc:       rpc.New(rpcURL),
		program:   program,
		authority: authority,
	}, nil
}

// ConfirmImages records the generated image URIs for an idea
func (c *Confirmer) ConfirmImages(ctx context.Context, ideaKey string, imageURIs []string) (string, error) {
	if len(imageURIs) != domain.GeneratedImageCount {
		return "", fmt.Errorf("%w: got %d", domain.ErrImageCountMismatch, len(imageURIs))
	}

	idea, err := solana.PublicKeyFromBase58(ideaKey)
	if err != nil {
		return "", fmt.Errorf("failed to parse idea key %q: %w", ideaKey, err)
	}

	instruction := solana.NewInstruction(
		c.program,
		solana.AccountMetaSlice{
			solana.Meta(idea).WRITE(),
			solana.Meta(c.authority.PublicKey()).SIGNER(),
		},
		confirmImagesData(imageURIs),
	)

	recent, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return "", fmt.Errorf("failed to get recent blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{instruction},
		recent.Value.Blockhash,
		solana.TransactionPayer(c.authority.PublicKey()),
	)
	if err != nil {
		return "", fmt.Errorf("failed to build confirm transaction: %w", err)
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(c.authority.PublicKey()) {
			return &c.authority
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign confirm transaction: %w", err)
	}

	signature, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: rpc.CommitmentFinalized,
	})
	if err != nil {
		return "", fmt.Errorf("failed to send confirm transaction: %w", err)
	}

	return signature.String(), nil
}

// confirmImagesData encodes the Anchor instruction payload: the 8-byte
// method discriminator followed by a borsh Vec<String> of URIs.
func confirmImagesData(imageURIs []string) []byte {
	discriminator := sha256.Sum256([]byte("global:confirm_images"))

	data := make([]byte, 0, 8+4+len(imageURIs)*64)
	data = append(data, discriminator[:8]...)
	data = binary.LittleEndian.AppendUint32(data, uint32(len(imageURIs)))
	for _, uri := range imageURIs {
		data = binary.LittleEndian.AppendUint32(data, uint32(len(uri)))
		data = append(data, uri...)
	}
	return data
}

var _ chain.Confirmer = (*Confirmer)(nil)
