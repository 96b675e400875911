package decoder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taste-fun/tf-indexer/internal/decoder"
	"github.com/taste-fun/tf-indexer/internal/domain"
)

// Sample log output captured from devnet transactions. The decoder is
// pinned to exactly this shape; these lines are the contract.
var capturedVoteTxLogs = []string{
	"Program ComputeBudget111111111111111111111111111111 invoke [1]",
	"Program ComputeBudget111111111111111111111111111111 success",
	"Program tfCoReVote111111111111111111111111111111111 invoke [1]",
	"Program log: Instruction: CastVote",
	`Program log: EVENT:VoteCast:{"idea":"GxkT4pVp3WcqZ9kA1uB2cD3eF4gH5iJ6kL7mN8oP9qR","voter":"9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin","imageChoice":2,"stakeAmount":25000000}`,
	"Program tfCoReVote111111111111111111111111111111111 consumed 24831 of 200000 compute units",
	"Program tfCoReVote111111111111111111111111111111111 success",
}

var capturedSwapTxLogs = []string{
	"Program tfToKen1111111111111111111111111111111111111 invoke [1]",
	"Program log: Instruction: SwapTokens",
	`Program log: EVENT:TokensSwapped:{"theme":"ThmM1nT111111111111111111111111111111111111","user":"9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin","solAmount":1000000000,"tokenAmount":420000000,"isBuy":true,"newSolReserves":31000000000,"newTokenReserves":792580000000}`,
	"Program tfToKen1111111111111111111111111111111111111 success",
}

func TestDecodeCapturedVoteTransaction(t *testing.T) {
	d := decoder.New()

	events, malformed := d.Decode(domain.ProgramCore, capturedVoteTxLogs)
	require.Empty(t, malformed)
	require.Len(t, events, 1)

	vote, ok := events[0].(domain.VoteCast)
	require.True(t, ok)
	assert.Equal(t, "GxkT4pVp3WcqZ9kA1uB2cD3eF4gH5iJ6kL7mN8oP9qR", vote.Idea)
	assert.Equal(t, "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin", vote.Voter)
	assert.Equal(t, uint8(2), vote.ImageChoice)
	assert.Equal(t, uint64(25_000_000), vote.StakeAmount)
}

func TestDecodeCapturedSwapTransaction(t *testing.T) {
	d := decoder.New()

	events, malformed := d.Decode(domain.ProgramToken, capturedSwapTxLogs)
	require.Empty(t, malformed)
	require.Len(t, events, 1)

	swap, ok := events[0].(domain.TokensSwapped)
	require.True(t, ok)
	assert.True(t, swap.IsBuy)
	assert.Equal(t, uint64(31_000_000_000), swap.NewSolReserves)
	assert.Equal(t, uint64(792_580_000_000), swap.NewTokenReserves)
}

func TestDecodeSkipsUnknownEventNames(t *testing.T) {
	d := decoder.New()

	logs := []string{
		`Program log: EVENT:SomethingNew:{"idea":"abc"}`,
	}
	events, malformed := d.Decode(domain.ProgramCore, logs)
	assert.Empty(t, events)
	assert.Empty(t, malformed, "unknown names are skipped, not reported")
}

func TestDecodeEnforcesProgramWhitelist(t *testing.T) {
	d := decoder.New()

	// A settlement event appearing in core program logs is not decoded.
	logs := []string{
		`Program log: EVENT:VotingSettled:{"idea":"GxkT4pVp3WcqZ9kA1uB2cD3eF4gH5iJ6kL7mN8oP9qR","winningImageIndex":1}`,
	}
	events, malformed := d.Decode(domain.ProgramCore, logs)
	assert.Empty(t, events)
	assert.Empty(t, malformed)

	events, malformed = d.Decode(domain.ProgramSettlement, logs)
	assert.Empty(t, malformed)
	assert.Len(t, events, 1)
}

func TestDecodeReportsMalformedPayloads(t *testing.T) {
	d := decoder.New()

	tests := []struct {
		name string
		line string
	}{
		{
			name: "truncated json",
			line: `Program log: EVENT:VoteCast:{"idea":"abc","voter":`,
		},
		{
			name: "missing payload separator",
			line: "Program log: EVENT:VoteCast",
		},
		{
			name: "wrong casing decodes to empty struct",
			line: `Program log: EVENT:VoteCast:{"idea_key":"abc","voter_key":"def","image_choice":1,"stake_amount":5}`,
		},
		{
			name: "image choice out of range",
			line: `Program log: EVENT:VoteCast:{"idea":"abc","voter":"def","imageChoice":9,"stakeAmount":5}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, malformed := d.Decode(domain.ProgramCore, []string{tt.line})
			assert.Empty(t, events)
			assert.Len(t, malformed, 1)
		})
	}
}

func TestDecodeLineIgnoresPlainLogs(t *testing.T) {
	d := decoder.New()

	event, err := d.DecodeLine(domain.ProgramCore, "Program log: Instruction: CreateIdea")
	assert.NoError(t, err)
	assert.Nil(t, event)
}

func TestDecodeMultipleEventsInOrder(t *testing.T) {
	d := decoder.New()

	logs := []string{
		`Program log: EVENT:IdeaCreated:{"idea":"Idea111","theme":"Thm111","initiator":"Init111","prompt":"a fox made of circuitry","depinProvider":"render"}`,
		`Program log: EVENT:VoteCast:{"idea":"Idea111","voter":"Voter111","imageChoice":0,"stakeAmount":1000000}`,
	}
	events, malformed := d.Decode(domain.ProgramCore, logs)
	require.Empty(t, malformed)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventIdeaCreated, events[0].Type())
	assert.Equal(t, domain.EventVoteCast, events[1].Type())
}
