package realtime

// IdeaPayload is the data of idea:new.
type IdeaPayload struct {
	IdeaKey          string `json:"ideaKey"`
	ThemeKey         string `json:"themeKey,omitempty"`
	Initiator        string `json:"initiator"`
	Sponsor          string `json:"sponsor,omitempty"`
	Prompt           string `json:"prompt"`
	DepinProvider    string `json:"depinProvider,omitempty"`
	Status           string `json:"status"`
	InitialPrizePool uint64 `json:"initialPrizePool,omitempty"`
}

// IdeaStatusPayload is the data of idea:update:status.
type IdeaStatusPayload struct {
	IdeaKey           string   `json:"ideaKey"`
	Status            string   `json:"status"`
	ImageURIs         []string `json:"imageUris,omitempty"`
	WinningImageIndex *uint8   `json:"winningImageIndex,omitempty"`
	Reason            string   `json:"reason,omitempty"`
}

// IdeaStatsPayload is the data of idea:update:stats.
type IdeaStatsPayload struct {
	IdeaKey         string    `json:"ideaKey"`
	VoteWeights     [4]uint64 `json:"voteWeights"`
	RejectAllWeight uint64    `json:"rejectAllWeight"`
	TotalStaked     uint64    `json:"totalStaked"`
	TotalVoters     uint64    `json:"totalVoters"`
}

// VotePayload is the data of vote:new.
type VotePayload struct {
	IdeaKey     string `json:"ideaKey"`
	Voter       string `json:"voter"`
	ImageChoice uint8  `json:"imageChoice"`
	StakeAmount uint64 `json:"stakeAmount"`
	VoteWeight  uint64 `json:"voteWeight"`
}

// ThemePayload is the data of theme:new.
type ThemePayload struct {
	ThemeKey    string `json:"themeKey"`
	Creator     string `json:"creator"`
	Name        string `json:"name,omitempty"`
	TokenMint   string `json:"tokenMint"`
	VotingMode  string `json:"votingMode"`
	TotalSupply uint64 `json:"totalSupply"`
}

// SwapPayload is the data of token:swap.
type SwapPayload struct {
	ThemeKey      string `json:"themeKey"`
	User          string `json:"user"`
	SolAmount     uint64 `json:"solAmount"`
	TokenAmount   uint64 `json:"tokenAmount"`
	IsBuy         bool   `json:"isBuy"`
	SolReserves   uint64 `json:"solReserves"`
	TokenReserves uint64 `json:"tokenReserves"`
}

// BuybackPayload is the data of token:buyback.
type BuybackPayload struct {
	ThemeKey      string `json:"themeKey"`
	SolSpent      uint64 `json:"solSpent"`
	TokensBurned  uint64 `json:"tokensBurned"`
	TokenReserves uint64 `json:"tokenReserves"`
}
