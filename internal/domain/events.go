package domain

import "fmt"

// Program labels the on-chain program an event is emitted by.
type Program string

const (
	// ProgramCore is the idea/vote lifecycle program
	ProgramCore Program = "core"
	// ProgramSettlement is the settlement and withdrawal program
	ProgramSettlement Program = "settlement"
	// ProgramToken is the theme token bonding-curve program
	ProgramToken Program = "token"
)

// EventType identifies one event variant across the three programs.
type EventType string

const (
	EventThemeCreated         EventType = "ThemeCreated"
	EventIdeaCreated          EventType = "IdeaCreated"
	EventSponsoredIdeaCreated EventType = "SponsoredIdeaCreated"
	EventImagesGenerated      EventType = "ImagesGenerated"
	EventVoteCast             EventType = "VoteCast"
	EventIdeaCancelled        EventType = "IdeaCancelled"
	EventVotingSettled        EventType = "VotingSettled"
	EventVotingCancelled      EventType = "VotingCancelled"
	EventWinningsWithdrawn    EventType = "WinningsWithdrawn"
	EventRefundWithdrawn      EventType = "RefundWithdrawn"
	EventTokensSwapped        EventType = "TokensSwapped"
	EventBuybackExecuted      EventType = "BuybackExecuted"
)

// Event is one decoded program event. The concrete types below form a
// closed set; anything else in the logs is not an event.
type Event interface {
	Type() EventType
	Validate() error
}

// ThemeCreated announces a new theme and its token market.
type ThemeCreated struct {
	Theme       string `json:"theme"`
	ThemeID     uint64 `json:"themeId"`
	Creator     string `json:"creator"`
	Name        string `json:"name"`
	TokenMint   string `json:"tokenMint"`
	VotingMode  uint8  `json:"votingMode"`
	TotalSupply uint64 `json:"totalSupply"`
}

func (ThemeCreated) Type() EventType { return EventThemeCreated }

func (e ThemeCreated) Validate() error {
	if e.Theme == "" || e.Creator == "" || e.TokenMint == "" {
		return fmt.Errorf("%w: theme created missing account keys", ErrMalformedEvent)
	}
	return nil
}

// IdeaCreated opens an idea and requests image generation for its prompt.
type IdeaCreated struct {
	Idea          string `json:"idea"`
	Theme         string `json:"theme"`
	Initiator     string `json:"initiator"`
	Prompt        string `json:"prompt"`
	DepinProvider string `json:"depinProvider"`
}

func (IdeaCreated) Type() EventType { return EventIdeaCreated }

func (e IdeaCreated) Validate() error {
	if e.Idea == "" || e.Initiator == "" {
		return fmt.Errorf("%w: idea created missing account keys", ErrMalformedEvent)
	}
	if e.Prompt == "" {
		return fmt.Errorf("%w: idea created with empty prompt", ErrMalformedEvent)
	}
	return nil
}

// SponsoredIdeaCreated is IdeaCreated with a sponsor seeding the prize pool.
type SponsoredIdeaCreated struct {
	Idea             string `json:"idea"`
	Theme            string `json:"theme"`
	Initiator        string `json:"initiator"`
	Sponsor          string `json:"sponsor"`
	Prompt           string `json:"prompt"`
	DepinProvider    string `json:"depinProvider"`
	InitialPrizePool uint64 `json:"initialPrizePool"`
}

func (SponsoredIdeaCreated) Type() EventType { return EventSponsoredIdeaCreated }

func (e SponsoredIdeaCreated) Validate() error {
	if e.Idea == "" || e.Initiator == "" || e.Sponsor == "" {
		return fmt.Errorf("%w: sponsored idea missing account keys", ErrMalformedEvent)
	}
	if e.Prompt == "" {
		return fmt.Errorf("%w: sponsored idea with empty prompt", ErrMalformedEvent)
	}
	return nil
}

// ImagesGenerated confirms the candidate images and opens voting.
type ImagesGenerated struct {
	Idea      string   `json:"idea"`
	ImageURIs []string `json:"imageUris"`
}

func (ImagesGenerated) Type() EventType { return EventImagesGenerated }

func (e ImagesGenerated) Validate() error {
	if e.Idea == "" {
		return fmt.Errorf("%w: images generated missing idea key", ErrMalformedEvent)
	}
	if len(e.ImageURIs) != GeneratedImageCount {
		return fmt.Errorf("%w: expected %d image URIs, got %d", ErrMalformedEvent, GeneratedImageCount, len(e.ImageURIs))
	}
	return nil
}

// VoteCast records a reviewer staking on an image choice.
type VoteCast struct {
	Idea        string `json:"idea"`
	Voter       string `json:"voter"`
	ImageChoice uint8  `json:"imageChoice"`
	StakeAmount uint64 `json:"stakeAmount"`
}

func (VoteCast) Type() EventType { return EventVoteCast }

func (e VoteCast) Validate() error {
	if e.Idea == "" || e.Voter == "" {
		return fmt.Errorf("%w: vote cast missing account keys", ErrMalformedEvent)
	}
	if e.ImageChoice >= GeneratedImageCount && e.ImageChoice != RejectAllChoice {
		return fmt.Errorf("%w: %d", ErrInvalidImageChoice, e.ImageChoice)
	}
	return nil
}

// IdeaCancelled terminates an idea before settlement.
type IdeaCancelled struct {
	Idea   string `json:"idea"`
	Reason string `json:"reason"`
}

func (IdeaCancelled) Type() EventType { return EventIdeaCancelled }

func (e IdeaCancelled) Validate() error {
	if e.Idea == "" {
		return fmt.Errorf("%w: idea cancelled missing idea key", ErrMalformedEvent)
	}
	return nil
}

// VotingSettled closes a round with the winning image and the fee split.
type VotingSettled struct {
	Idea              string `json:"idea"`
	WinningImageIndex uint8  `json:"winningImageIndex"`
	TotalStaked       uint64 `json:"totalStaked"`
	CuratorFee        uint64 `json:"curatorFee"`
	PlatformFee       uint64 `json:"platformFee"`
	PenaltyPool       uint64 `json:"penaltyPool"`
	WinnerCount       uint64 `json:"winnerCount"`
}

func (VotingSettled) Type() EventType { return EventVotingSettled }

func (e VotingSettled) Validate() error {
	if e.Idea == "" {
		return fmt.Errorf("%w: voting settled missing idea key", ErrMalformedEvent)
	}
	if e.WinningImageIndex >= GeneratedImageCount {
		return fmt.Errorf("%w: winning index %d", ErrInvalidImageChoice, e.WinningImageIndex)
	}
	return nil
}

// VotingCancelled terminates a round without a winner, e.g. on a
// reject-all supermajority or a reviewer quorum failure.
type VotingCancelled struct {
	Idea   string `json:"idea"`
	Reason string `json:"reason"`
}

func (VotingCancelled) Type() EventType { return EventVotingCancelled }

func (e VotingCancelled) Validate() error {
	if e.Idea == "" {
		return fmt.Errorf("%w: voting cancelled missing idea key", ErrMalformedEvent)
	}
	return nil
}

// WinningsWithdrawn records a winning reviewer claiming their reward.
type WinningsWithdrawn struct {
	Idea     string `json:"idea"`
	Reviewer string `json:"reviewer"`
	Amount   uint64 `json:"amount"`
}

func (WinningsWithdrawn) Type() EventType { return EventWinningsWithdrawn }

func (e WinningsWithdrawn) Validate() error {
	if e.Idea == "" || e.Reviewer == "" {
		return fmt.Errorf("%w: winnings withdrawn missing account keys", ErrMalformedEvent)
	}
	return nil
}

// RefundWithdrawn records a stake refund after a cancelled round.
type RefundWithdrawn struct {
	Idea     string `json:"idea"`
	Reviewer string `json:"reviewer"`
	Amount   uint64 `json:"amount"`
}

func (RefundWithdrawn) Type() EventType { return EventRefundWithdrawn }

func (e RefundWithdrawn) Validate() error {
	if e.Idea == "" || e.Reviewer == "" {
		return fmt.Errorf("%w: refund withdrawn missing account keys", ErrMalformedEvent)
	}
	return nil
}

// TokensSwapped records a bonding-curve trade with post-trade reserves.
type TokensSwapped struct {
	Theme            string `json:"theme"`
	User             string `json:"user"`
	SolAmount        uint64 `json:"solAmount"`
	TokenAmount      uint64 `json:"tokenAmount"`
	IsBuy            bool   `json:"isBuy"`
	NewSolReserves   uint64 `json:"newSolReserves"`
	NewTokenReserves uint64 `json:"newTokenReserves"`
}

func (TokensSwapped) Type() EventType { return EventTokensSwapped }

func (e TokensSwapped) Validate() error {
	if e.Theme == "" || e.User == "" {
		return fmt.Errorf("%w: tokens swapped missing account keys", ErrMalformedEvent)
	}
	return nil
}

// BuybackExecuted records a burn funded by the theme buyback pool.
type BuybackExecuted struct {
	Theme            string `json:"theme"`
	SolSpent         uint64 `json:"solSpent"`
	TokensBurned     uint64 `json:"tokensBurned"`
	NewTokenReserves uint64 `json:"newTokenReserves"`
}

func (BuybackExecuted) Type() EventType { return EventBuybackExecuted }

func (e BuybackExecuted) Validate() error {
	if e.Theme == "" {
		return fmt.Errorf("%w: buyback executed missing theme key", ErrMalformedEvent)
	}
	return nil
}
