package api

import (
	"encoding/json"
	"time"

	"github.com/taste-fun/tf-indexer/internal/store/schema"
)

// ThemeDTO is the wire shape of a theme.
type ThemeDTO struct {
	ThemeKey          string    `json:"themeKey"`
	ThemeID           uint64    `json:"themeId"`
	Creator           string    `json:"creator"`
	Name              string    `json:"name"`
	TokenMint         string    `json:"tokenMint"`
	VotingMode        string    `json:"votingMode"`
	Status            string    `json:"status"`
	TotalSupply       uint64    `json:"totalSupply"`
	CirculatingSupply uint64    `json:"circulatingSupply"`
	TokenReserves     uint64    `json:"tokenReserves"`
	SolReserves       uint64    `json:"solReserves"`
	BuybackPool       uint64    `json:"buybackPool"`
	Price             float64   `json:"price"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// IdeaDTO is the wire shape of an idea and its voting round.
type IdeaDTO struct {
	IdeaKey           string    `json:"ideaKey"`
	ThemeKey          string    `json:"themeKey,omitempty"`
	Initiator         string    `json:"initiator"`
	Sponsor           *string   `json:"sponsor,omitempty"`
	Prompt            string    `json:"prompt"`
	DepinProvider     string    `json:"depinProvider,omitempty"`
	ImageURIs         []string  `json:"imageUris,omitempty"`
	Status            string    `json:"status"`
	VoteWeights       [4]uint64 `json:"voteWeights"`
	RejectAllWeight   uint64    `json:"rejectAllWeight"`
	TotalStaked       uint64    `json:"totalStaked"`
	TotalVoters       uint64    `json:"totalVoters"`
	WinningImageIndex *int16    `json:"winningImageIndex,omitempty"`
	InitialPrizePool  uint64    `json:"initialPrizePool,omitempty"`
	CancelReason      *string   `json:"cancelReason,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// VoteDTO is the wire shape of a reviewer's current vote.
type VoteDTO struct {
	Voter             string    `json:"voter"`
	ImageChoice       int16     `json:"imageChoice"`
	StakeAmount       uint64    `json:"stakeAmount"`
	VoteWeight        uint64    `json:"voteWeight"`
	IsWinner          bool      `json:"isWinner"`
	WinningsWithdrawn bool      `json:"winningsWithdrawn"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// SwapDTO is the wire shape of a bonding-curve trade.
type SwapDTO struct {
	Actor         string    `json:"actor,omitempty"`
	SolAmount     uint64    `json:"solAmount"`
	TokenAmount   uint64    `json:"tokenAmount"`
	IsBuy         bool      `json:"isBuy"`
	IsBuyback     bool      `json:"isBuyback"`
	SolReserves   uint64    `json:"solReserves"`
	TokenReserves uint64    `json:"tokenReserves"`
	Signature     string    `json:"signature"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ParkedJobDTO is the wire shape of a parked generation job.
type ParkedJobDTO struct {
	JobID     string    `json:"jobId"`
	IdeaKey   string    `json:"ideaKey"`
	Prompt    string    `json:"prompt"`
	Provider  string    `json:"provider,omitempty"`
	Attempts  int       `json:"attempts"`
	Status    string    `json:"status"`
	LastError string    `json:"lastError,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func themeDTO(t *schema.Theme) ThemeDTO {
	return ThemeDTO{
		ThemeKey:          t.ThemeKey,
		ThemeID:           t.ThemeID,
		Creator:           t.Creator,
		Name:              t.Name,
		TokenMint:         t.TokenMint,
		VotingMode:        string(t.VotingMode),
		Status:            string(t.Status),
		TotalSupply:       t.TotalSupply,
		CirculatingSupply: t.CirculatingSupply,
		TokenReserves:     t.TokenReserves,
		SolReserves:       t.SolReserves,
		BuybackPool:       t.BuybackPool,
		Price:             t.Price(),
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

func ideaDTO(i *schema.Idea) IdeaDTO {
	var imageURIs []string
	if len(i.ImageURIs) > 0 {
		// Stored as a JSONB array; a decode failure leaves the field empty
		_ = json.Unmarshal(i.ImageURIs, &imageURIs)
	}

	return IdeaDTO{
		IdeaKey:           i.IdeaKey,
		ThemeKey:          i.ThemeKey,
		Initiator:         i.Initiator,
		Sponsor:           i.Sponsor,
		Prompt:            i.Prompt,
		DepinProvider:     i.DepinProvider,
		ImageURIs:         imageURIs,
		Status:            string(i.Status),
		VoteWeights:       [4]uint64{i.VoteWeight0, i.VoteWeight1, i.VoteWeight2, i.VoteWeight3},
		RejectAllWeight:   i.RejectAllWeight,
		TotalStaked:       i.TotalStaked,
		TotalVoters:       i.TotalVoters,
		WinningImageIndex: i.WinningImageIndex,
		InitialPrizePool:  i.InitialPrizePool,
		CancelReason:      i.CancelReason,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}

func voteDTO(v *schema.Vote) VoteDTO {
	return VoteDTO{
		Voter:             v.Voter,
		ImageChoice:       v.ImageChoice,
		StakeAmount:       v.StakeAmount,
		VoteWeight:        v.VoteWeight,
		IsWinner:          v.IsWinner,
		WinningsWithdrawn: v.WinningsWithdrawn,
		UpdatedAt:         v.UpdatedAt,
	}
}

func swapDTO(s *schema.TokenSwap) SwapDTO {
	return SwapDTO{
		Actor:         s.Actor,
		SolAmount:     s.SolAmount,
		TokenAmount:   s.TokenAmount,
		IsBuy:         s.IsBuy,
		IsBuyback:     s.IsBuyback,
		SolReserves:   s.SolReserves,
		TokenReserves: s.TokenReserves,
		Signature:     s.Signature,
		CreatedAt:     s.CreatedAt,
	}
}

func parkedJobDTO(j *schema.GenerationJob) ParkedJobDTO {
	return ParkedJobDTO{
		JobID:     j.JobID,
		IdeaKey:   j.IdeaKey,
		Prompt:    j.Prompt,
		Provider:  j.Provider,
		Attempts:  j.Attempts,
		Status:    string(j.Status),
		LastError: j.LastError,
		CreatedAt: j.CreatedAt,
	}
}
