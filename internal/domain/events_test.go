package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVoteCastValidate(t *testing.T) {
	tests := []struct {
		name    string
		event   VoteCast
		wantErr error
	}{
		{
			name: "valid image choice",
			event: VoteCast{
				Idea:        "GxkT4pVp3WcqZ9kA1uB2cD3eF4gH5iJ6kL7mN8oP9qR",
				Voter:       "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin",
				ImageChoice: 2,
				StakeAmount: 5_000_000,
			},
		},
		{
			name: "reject-all sentinel",
			event: VoteCast{
				Idea:        "GxkT4pVp3WcqZ9kA1uB2cD3eF4gH5iJ6kL7mN8oP9qR",
				Voter:       "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin",
				ImageChoice: RejectAllChoice,
				StakeAmount: 5_000_000,
			},
		},
		{
			name: "choice out of range",
			event: VoteCast{
				Idea:        "GxkT4pVp3WcqZ9kA1uB2cD3eF4gH5iJ6kL7mN8oP9qR",
				Voter:       "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin",
				ImageChoice: 4,
			},
			wantErr: ErrInvalidImageChoice,
		},
		{
			name: "missing voter",
			event: VoteCast{
				Idea:        "GxkT4pVp3WcqZ9kA1uB2cD3eF4gH5iJ6kL7mN8oP9qR",
				ImageChoice: 0,
			},
			wantErr: ErrMalformedEvent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestImagesGeneratedValidate(t *testing.T) {
	uris := []string{
		"ipfs://bafy0/0.png",
		"ipfs://bafy0/1.png",
		"ipfs://bafy0/2.png",
		"ipfs://bafy0/3.png",
	}

	valid := ImagesGenerated{Idea: "GxkT4pVp3WcqZ9kA1uB2cD3eF4gH5iJ6kL7mN8oP9qR", ImageURIs: uris}
	assert.NoError(t, valid.Validate())

	short := ImagesGenerated{Idea: valid.Idea, ImageURIs: uris[:3]}
	assert.ErrorIs(t, short.Validate(), ErrMalformedEvent)

	long := ImagesGenerated{Idea: valid.Idea, ImageURIs: append(uris, "ipfs://bafy0/4.png")}
	assert.ErrorIs(t, long.Validate(), ErrMalformedEvent)
}

func TestVotingSettledValidate(t *testing.T) {
	e := VotingSettled{Idea: "GxkT4pVp3WcqZ9kA1uB2cD3eF4gH5iJ6kL7mN8oP9qR", WinningImageIndex: 3}
	assert.NoError(t, e.Validate())

	e.WinningImageIndex = 4
	assert.ErrorIs(t, e.Validate(), ErrInvalidImageChoice)
}

func TestVotingModeFromIndex(t *testing.T) {
	assert.Equal(t, VotingModeClassic, VotingModeFromIndex(0))
	assert.Equal(t, VotingModeReverse, VotingModeFromIndex(1))
	assert.Equal(t, VotingModeMiddleWay, VotingModeFromIndex(2))
	assert.Equal(t, VotingModeClassic, VotingModeFromIndex(7))
}
