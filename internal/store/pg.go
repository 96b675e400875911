package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/taste-fun/tf-indexer/internal/domain"
	"github.com/taste-fun/tf-indexer/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a
// GORM database connection. Zero values fall back to defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool
// settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// IsSignatureProcessed checks the idempotency ledger without writing
func (s *pgStore) IsSignatureProcessed(ctx context.Context, signature string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.ProcessedSignature{}).
		Where("signature = ?", signature).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check processed signature: %w", err)
	}
	return count > 0, nil
}

// ApplyTransaction projects a transaction's events atomically with the
// ledger insert and checkpoint advance. The primary key on
// processed_signatures is the dedup authority: a duplicate signature
// commits an empty transaction and returns false.
func (s *pgStore) ApplyTransaction(ctx context.Context, input ApplyTransactionInput) (bool, error) {
	applied := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Claim the signature
		ledger := schema.ProcessedSignature{
			Signature: input.Signature,
			Slot:      input.Slot,
		}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&ledger)
		if result.Error != nil {
			return fmt.Errorf("failed to record signature: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			// Already processed, nothing to project
			return nil
		}

		// 2. Project each event in log order
		for _, event := range input.Events {
			if err := s.applyEvent(tx, input.Signature, event); err != nil {
				return fmt.Errorf("failed to apply %s: %w", event.Type(), err)
			}
		}

		// 3. Advance the checkpoint
		if err := advanceSyncState(tx, input.Slot, input.Signature); err != nil {
			return err
		}

		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return applied, nil
}

func (s *pgStore) applyEvent(tx *gorm.DB, signature string, event domain.Event) error {
	switch e := event.(type) {
	case domain.ThemeCreated:
		return s.applyThemeCreated(tx, e)
	case domain.IdeaCreated:
		return s.applyIdeaCreated(tx, e.Idea, e.Theme, e.Initiator, nil, e.Prompt, e.DepinProvider, 0)
	case domain.SponsoredIdeaCreated:
		return s.applyIdeaCreated(tx, e.Idea, e.Theme, e.Initiator, &e.Sponsor, e.Prompt, e.DepinProvider, e.InitialPrizePool)
	case domain.ImagesGenerated:
		return s.applyImagesGenerated(tx, e)
	case domain.VoteCast:
		return s.applyVoteCast(tx, e)
	case domain.IdeaCancelled:
		return s.applyCancellation(tx, e.Idea, e.Reason)
	case domain.VotingCancelled:
		return s.applyCancellation(tx, e.Idea, e.Reason)
	case domain.VotingSettled:
		return s.applyVotingSettled(tx, e)
	case domain.WinningsWithdrawn:
		return s.applyWithdrawal(tx, e.Idea, e.Reviewer, e.Amount, true)
	case domain.RefundWithdrawn:
		return s.applyWithdrawal(tx, e.Idea, e.Reviewer, e.Amount, false)
	case domain.TokensSwapped:
		return s.applyTokensSwapped(tx, signature, e)
	case domain.BuybackExecuted:
		return s.applyBuybackExecuted(tx, signature, e)
	default:
		return fmt.Errorf("%w: %T", domain.ErrUnknownEvent, event)
	}
}

func (s *pgStore) applyThemeCreated(tx *gorm.DB, e domain.ThemeCreated) error {
	theme := schema.Theme{
		ThemeKey:    e.Theme,
		ThemeID:     e.ThemeID,
		Creator:     e.Creator,
		Name:        e.Name,
		TokenMint:   e.TokenMint,
		VotingMode:  domain.VotingModeFromIndex(e.VotingMode),
		Status:      domain.ThemeStatusActive,
		TotalSupply: e.TotalSupply,
		// Reserves start as the full supply; swap events carry the
		// authoritative values from then on.
		TokenReserves: e.TotalSupply,
	}

	// An existing row may be a stub created by an out-of-order swap
	// event; fill in the descriptive fields but leave the live reserve
	// counters alone.
	result := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "theme_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"theme_id":    e.ThemeID,
			"creator":     e.Creator,
			"name":        e.Name,
			"token_mint":  e.TokenMint,
			"voting_mode": domain.VotingModeFromIndex(e.VotingMode),
			"total_supply": gorm.Expr(
				"CASE WHEN themes.total_supply = 0 THEN EXCLUDED.total_supply ELSE themes.total_supply END"),
			"token_reserves": gorm.Expr(
				"CASE WHEN themes.token_reserves = 0 AND themes.sol_reserves = 0 THEN EXCLUDED.token_reserves ELSE themes.token_reserves END"),
			"updated_at": gorm.Expr("now()"),
		}),
	}).Create(&theme)
	if result.Error != nil {
		return fmt.Errorf("failed to create theme: %w", result.Error)
	}

	return nil
}

func (s *pgStore) applyIdeaCreated(tx *gorm.DB, ideaKey, themeKey, initiator string, sponsor *string, prompt, provider string, prizePool uint64) error {
	idea := schema.Idea{
		IdeaKey:          ideaKey,
		ThemeKey:         themeKey,
		Initiator:        initiator,
		Sponsor:          sponsor,
		Prompt:           prompt,
		DepinProvider:    provider,
		Status:           domain.IdeaStatusGeneratingImages,
		InitialPrizePool: prizePool,
	}

	// An existing row may be a stub created by an out-of-order vote or
	// settlement event; fill in the descriptive fields but never touch
	// status or the vote counters.
	result := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "idea_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"theme_key":          themeKey,
			"initiator":          initiator,
			"sponsor":            sponsor,
			"prompt":             prompt,
			"depin_provider":     provider,
			"initial_prize_pool": prizePool,
			"updated_at":         gorm.Expr("now()"),
		}),
	}).Create(&idea)
	if result.Error != nil {
		return fmt.Errorf("failed to create idea: %w", result.Error)
	}

	return nil
}

func (s *pgStore) applyImagesGenerated(tx *gorm.DB, e domain.ImagesGenerated) error {
	idea, err := lockIdea(tx, e.Idea)
	if err != nil {
		return err
	}

	uris, err := json.Marshal(e.ImageURIs)
	if err != nil {
		return fmt.Errorf("failed to marshal image URIs: %w", err)
	}

	idea.ImageURIs = datatypes.JSON(uris)
	// Terminal states win over a late confirmation
	if idea.Status == domain.IdeaStatusGeneratingImages {
		idea.Status = domain.IdeaStatusVoting
	}
	idea.UpdatedAt = time.Now()

	if err := tx.Save(idea).Error; err != nil {
		return fmt.Errorf("failed to update idea images: %w", err)
	}

	return nil
}

func (s *pgStore) applyVoteCast(tx *gorm.DB, e domain.VoteCast) error {
	// 1. Lock the idea row for the counter updates
	idea, err := lockIdea(tx, e.Idea)
	if err != nil {
		return err
	}

	weight := domain.VoteWeight(e.StakeAmount)
	choice := int16(e.ImageChoice)
	now := time.Now()

	// 2. Last-write-wins on the vote row; only a first vote counts a voter
	var existing schema.Vote
	err = tx.Where("idea_key = ? AND voter = ?", e.Idea, e.Voter).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		vote := schema.Vote{
			IdeaKey:     e.Idea,
			Voter:       e.Voter,
			ImageChoice: choice,
			StakeAmount: e.StakeAmount,
			VoteWeight:  weight,
		}
		if err := tx.Create(&vote).Error; err != nil {
			return fmt.Errorf("failed to create vote: %w", err)
		}
		idea.TotalVoters++
	case err != nil:
		return fmt.Errorf("failed to look up vote: %w", err)
	default:
		// Move the previous weight out of its bucket before re-counting
		subtractWeight(idea, existing.ImageChoice, existing.VoteWeight)
		updates := map[string]interface{}{
			"image_choice": choice,
			"stake_amount": e.StakeAmount,
			"vote_weight":  weight,
			"updated_at":   now,
		}
		if err := tx.Model(&schema.Vote{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update vote: %w", err)
		}
	}

	// 3. Count the new vote into the idea
	addWeight(idea, choice, weight)
	idea.TotalStaked += e.StakeAmount
	idea.UpdatedAt = now
	if err := tx.Save(idea).Error; err != nil {
		return fmt.Errorf("failed to update idea counters: %w", err)
	}

	// 4. Accumulate the reviewer's stake
	stake := schema.ReviewerStake{
		IdeaKey:     e.Idea,
		Reviewer:    e.Voter,
		TotalStaked: e.StakeAmount,
	}
	err = tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "idea_key"}, {Name: "reviewer"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_staked": gorm.Expr("reviewer_stakes.total_staked + EXCLUDED.total_staked"),
			"updated_at":   now,
		}),
	}).Create(&stake).Error
	if err != nil {
		return fmt.Errorf("failed to upsert reviewer stake: %w", err)
	}

	return nil
}

func (s *pgStore) applyVotingSettled(tx *gorm.DB, e domain.VotingSettled) error {
	// 1. Close the round with the settlement figures, taken verbatim
	idea, err := lockIdea(tx, e.Idea)
	if err != nil {
		return err
	}

	winning := int16(e.WinningImageIndex)
	idea.Status = domain.IdeaStatusCompleted
	idea.WinningImageIndex = &winning
	idea.TotalStaked = e.TotalStaked
	idea.CuratorFee = e.CuratorFee
	idea.PlatformFee = e.PlatformFee
	idea.PenaltyPool = e.PenaltyPool
	idea.WinnerCount = e.WinnerCount
	idea.UpdatedAt = time.Now()

	if err := tx.Save(idea).Error; err != nil {
		return fmt.Errorf("failed to settle idea: %w", err)
	}

	// 2. Mark the winning votes
	err = tx.Model(&schema.Vote{}).
		Where("idea_key = ? AND image_choice = ?", e.Idea, winning).
		Updates(map[string]interface{}{
			"is_winner":  true,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark winning votes: %w", err)
	}

	// 3. Propagate to the reviewer stakes
	err = tx.Exec(`
		UPDATE reviewer_stakes rs
		SET is_winner = TRUE, updated_at = now()
		FROM votes v
		WHERE rs.idea_key = ?
		  AND v.idea_key = rs.idea_key
		  AND v.voter = rs.reviewer
		  AND v.image_choice = ?`, e.Idea, winning).Error
	if err != nil {
		return fmt.Errorf("failed to mark winning reviewer stakes: %w", err)
	}

	return nil
}

func (s *pgStore) applyCancellation(tx *gorm.DB, ideaKey, reason string) error {
	idea, err := lockIdea(tx, ideaKey)
	if err != nil {
		return err
	}

	// A settled round stays settled
	if idea.Status == domain.IdeaStatusCompleted {
		return nil
	}

	idea.Status = domain.IdeaStatusCancelled
	idea.CancelReason = &reason
	idea.UpdatedAt = time.Now()

	if err := tx.Save(idea).Error; err != nil {
		return fmt.Errorf("failed to cancel idea: %w", err)
	}

	return nil
}

func (s *pgStore) applyWithdrawal(tx *gorm.DB, ideaKey, reviewer string, amount uint64, winnings bool) error {
	now := time.Now()

	voteUpdates := map[string]interface{}{
		"winnings_withdrawn": true,
		"updated_at":         now,
	}
	if winnings {
		voteUpdates["is_winner"] = true
	}
	err := tx.Model(&schema.Vote{}).
		Where("idea_key = ? AND voter = ?", ideaKey, reviewer).
		Updates(voteUpdates).Error
	if err != nil {
		return fmt.Errorf("failed to mark vote withdrawal: %w", err)
	}

	stakeUpdates := map[string]interface{}{
		"winnings":   amount,
		"updated_at": now,
	}
	if winnings {
		stakeUpdates["is_winner"] = true
	}
	err = tx.Model(&schema.ReviewerStake{}).
		Where("idea_key = ? AND reviewer = ?", ideaKey, reviewer).
		Updates(stakeUpdates).Error
	if err != nil {
		return fmt.Errorf("failed to mark reviewer stake withdrawal: %w", err)
	}

	return nil
}

func (s *pgStore) applyTokensSwapped(tx *gorm.DB, signature string, e domain.TokensSwapped) error {
	// 1. Reserves come verbatim from the event
	theme, err := lockTheme(tx, e.Theme)
	if err != nil {
		return err
	}

	theme.SolReserves = e.NewSolReserves
	theme.TokenReserves = e.NewTokenReserves
	if e.IsBuy {
		theme.CirculatingSupply += e.TokenAmount
	} else if theme.CirculatingSupply >= e.TokenAmount {
		theme.CirculatingSupply -= e.TokenAmount
	} else {
		theme.CirculatingSupply = 0
	}
	theme.UpdatedAt = time.Now()

	if err := tx.Save(theme).Error; err != nil {
		return fmt.Errorf("failed to update theme reserves: %w", err)
	}

	// 2. Append to the trade history
	swap := schema.TokenSwap{
		ThemeKey:      e.Theme,
		Actor:         e.User,
		SolAmount:     e.SolAmount,
		TokenAmount:   e.TokenAmount,
		IsBuy:         e.IsBuy,
		SolReserves:   e.NewSolReserves,
		TokenReserves: e.NewTokenReserves,
		Signature:     signature,
	}
	if err := tx.Create(&swap).Error; err != nil {
		return fmt.Errorf("failed to record swap: %w", err)
	}

	return nil
}

func (s *pgStore) applyBuybackExecuted(tx *gorm.DB, signature string, e domain.BuybackExecuted) error {
	theme, err := lockTheme(tx, e.Theme)
	if err != nil {
		return err
	}

	theme.TokenReserves = e.NewTokenReserves
	if theme.BuybackPool >= e.SolSpent {
		theme.BuybackPool -= e.SolSpent
	} else {
		theme.BuybackPool = 0
	}
	if theme.TotalSupply >= e.TokensBurned {
		theme.TotalSupply -= e.TokensBurned
	} else {
		theme.TotalSupply = 0
	}
	theme.UpdatedAt = time.Now()

	if err := tx.Save(theme).Error; err != nil {
		return fmt.Errorf("failed to update theme after buyback: %w", err)
	}

	swap := schema.TokenSwap{
		ThemeKey:      e.Theme,
		SolAmount:     e.SolSpent,
		TokenAmount:   e.TokensBurned,
		IsBuy:         false,
		IsBuyback:     true,
		TokenReserves: e.NewTokenReserves,
		SolReserves:   theme.SolReserves,
		Signature:     signature,
	}
	if err := tx.Create(&swap).Error; err != nil {
		return fmt.Errorf("failed to record buyback: %w", err)
	}

	return nil
}

// lockIdea fetches an idea under FOR UPDATE, creating a stub row first
// if events arrived out of order. The stub converges once the creation
// event replays through historical sync.
func lockIdea(tx *gorm.DB, ideaKey string) (*schema.Idea, error) {
	stub := schema.Idea{
		IdeaKey: ideaKey,
		Status:  domain.IdeaStatusVoting,
	}
	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "idea_key"}},
		DoNothing: true,
	}).Create(&stub)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to ensure idea row: %w", result.Error)
	}

	var idea schema.Idea
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("idea_key = ?", ideaKey).
		First(&idea).Error
	if err != nil {
		return nil, fmt.Errorf("failed to lock idea: %w", err)
	}
	return &idea, nil
}

// lockTheme is lockIdea for themes.
func lockTheme(tx *gorm.DB, themeKey string) (*schema.Theme, error) {
	stub := schema.Theme{
		ThemeKey:   themeKey,
		VotingMode: domain.VotingModeClassic,
		Status:     domain.ThemeStatusActive,
	}
	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "theme_key"}},
		DoNothing: true,
	}).Create(&stub)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to ensure theme row: %w", result.Error)
	}

	var theme schema.Theme
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("theme_key = ?", themeKey).
		First(&theme).Error
	if err != nil {
		return nil, fmt.Errorf("failed to lock theme: %w", err)
	}
	return &theme, nil
}

func addWeight(idea *schema.Idea, choice int16, weight uint64) {
	switch choice {
	case 0:
		idea.VoteWeight0 += weight
	case 1:
		idea.VoteWeight1 += weight
	case 2:
		idea.VoteWeight2 += weight
	case 3:
		idea.VoteWeight3 += weight
	case int16(domain.RejectAllChoice):
		idea.RejectAllWeight += weight
	}
}

func subtractWeight(idea *schema.Idea, choice int16, weight uint64) {
	sub := func(v uint64) uint64 {
		if v >= weight {
			return v - weight
		}
		return 0
	}
	switch choice {
	case 0:
		idea.VoteWeight0 = sub(idea.VoteWeight0)
	case 1:
		idea.VoteWeight1 = sub(idea.VoteWeight1)
	case 2:
		idea.VoteWeight2 = sub(idea.VoteWeight2)
	case 3:
		idea.VoteWeight3 = sub(idea.VoteWeight3)
	case int16(domain.RejectAllChoice):
		idea.RejectAllWeight = sub(idea.RejectAllWeight)
	}
}

// advanceSyncState upserts the single checkpoint row. GREATEST keeps
// the slot non-decreasing under concurrent or replayed applies.
func advanceSyncState(tx *gorm.DB, slot uint64, signature string) error {
	state := schema.SyncState{
		ID:        schema.SyncStateRowID,
		Slot:      slot,
		Signature: signature,
	}
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"slot":       gorm.Expr("GREATEST(sync_state.slot, EXCLUDED.slot)"),
			"signature":  gorm.Expr("CASE WHEN EXCLUDED.slot >= sync_state.slot THEN EXCLUDED.signature ELSE sync_state.signature END"),
			"updated_at": gorm.Expr("now()"),
		}),
	}).Create(&state).Error
	if err != nil {
		return fmt.Errorf("failed to advance sync state: %w", err)
	}
	return nil
}

// GetSyncState retrieves the checkpoint row, nil before first sync
func (s *pgStore) GetSyncState(ctx context.Context) (*schema.SyncState, error) {
	var state schema.SyncState
	err := s.db.WithContext(ctx).
		Where("id = ?", schema.SyncStateRowID).
		First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sync state: %w", err)
	}
	return &state, nil
}

// AdvanceSyncState moves the checkpoint forward outside an apply, used
// by the historical syncer after a completed pass.
func (s *pgStore) AdvanceSyncState(ctx context.Context, slot uint64, signature string) error {
	return advanceSyncState(s.db.WithContext(ctx), slot, signature)
}

// GetTheme retrieves a theme by its account address
func (s *pgStore) GetTheme(ctx context.Context, themeKey string) (*schema.Theme, error) {
	var theme schema.Theme
	err := s.db.WithContext(ctx).
		Where("theme_key = ?", themeKey).
		First(&theme).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get theme: %w", err)
	}
	return &theme, nil
}

// ListThemes retrieves themes matching the filter, newest first
func (s *pgStore) ListThemes(ctx context.Context, filter ThemeFilter) ([]*schema.Theme, error) {
	query := s.db.WithContext(ctx).Model(&schema.Theme{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Creator != "" {
		query = query.Where("creator = ?", filter.Creator)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var themes []*schema.Theme
	if err := query.Order("created_at DESC").Find(&themes).Error; err != nil {
		return nil, fmt.Errorf("failed to list themes: %w", err)
	}
	return themes, nil
}

// GetIdea retrieves an idea by its account address
func (s *pgStore) GetIdea(ctx context.Context, ideaKey string) (*schema.Idea, error) {
	var idea schema.Idea
	err := s.db.WithContext(ctx).
		Where("idea_key = ?", ideaKey).
		First(&idea).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get idea: %w", err)
	}
	return &idea, nil
}

// ListIdeas retrieves ideas matching the filter, newest first
func (s *pgStore) ListIdeas(ctx context.Context, filter IdeaFilter) ([]*schema.Idea, error) {
	query := s.db.WithContext(ctx).Model(&schema.Idea{})
	if filter.ThemeKey != "" {
		query = query.Where("theme_key = ?", filter.ThemeKey)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Initiator != "" {
		query = query.Where("initiator = ?", filter.Initiator)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var ideas []*schema.Idea
	if err := query.Order("created_at DESC").Find(&ideas).Error; err != nil {
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}
	return ideas, nil
}

// ListVotesByIdea retrieves the current votes on an idea
func (s *pgStore) ListVotesByIdea(ctx context.Context, ideaKey string) ([]*schema.Vote, error) {
	var votes []*schema.Vote
	err := s.db.WithContext(ctx).
		Where("idea_key = ?", ideaKey).
		Order("created_at ASC").
		Find(&votes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	return votes, nil
}

// ListSwapsByTheme retrieves recent trades on a theme, newest first
func (s *pgStore) ListSwapsByTheme(ctx context.Context, themeKey string, limit int) ([]*schema.TokenSwap, error) {
	query := s.db.WithContext(ctx).Where("theme_key = ?", themeKey)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var swaps []*schema.TokenSwap
	if err := query.Order("created_at DESC, id DESC").Find(&swaps).Error; err != nil {
		return nil, fmt.Errorf("failed to list swaps: %w", err)
	}
	return swaps, nil
}

// GetGlobalStats aggregates projection-wide counters
func (s *pgStore) GetGlobalStats(ctx context.Context) (*GlobalStats, error) {
	var stats GlobalStats
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM themes) AS total_themes,
			(SELECT COUNT(*) FROM ideas) AS total_ideas,
			(SELECT COUNT(*) FROM ideas WHERE status = ?) AS active_voting,
			(SELECT COUNT(*) FROM ideas WHERE status = ?) AS completed_rounds,
			(SELECT COUNT(*) FROM votes) AS total_votes,
			(SELECT COALESCE(SUM(total_staked), 0) FROM ideas) AS total_staked`,
		domain.IdeaStatusVoting, domain.IdeaStatusCompleted,
	).Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate global stats: %w", err)
	}
	return &stats, nil
}

// ParkGenerationJob records a job whose retries were exhausted. Parking
// the same job twice keeps the first record.
func (s *pgStore) ParkGenerationJob(ctx context.Context, job *schema.GenerationJob) error {
	job.Status = schema.GenerationJobStatusParked
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "job_id"}},
		DoNothing: true,
	}).Create(job).Error
	if err != nil {
		return fmt.Errorf("failed to park generation job: %w", err)
	}
	return nil
}

// ListParkedJobs retrieves parked jobs for inspection, newest first
func (s *pgStore) ListParkedJobs(ctx context.Context, limit, offset int) ([]*schema.GenerationJob, error) {
	query := s.db.WithContext(ctx).
		Model(&schema.GenerationJob{}).
		Where("status = ?", schema.GenerationJobStatusParked)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var jobs []*schema.GenerationJob
	if err := query.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list parked jobs: %w", err)
	}
	return jobs, nil
}
