// Package decoder turns raw program log lines into typed domain events.
package decoder

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/taste-fun/tf-indexer/internal/domain"
)

// eventLogPrefix marks structured event lines emitted by the programs.
// Everything else in the log output (compute budget lines, invoke
// traces, free-form msg! output) is not an event and is skipped.
const eventLogPrefix = "Program log: EVENT:"

// Decoder extracts events from transaction logs. Payload field names
// are camelCase only; there is no fallback probing of alternate
// casings, so a payload produced with the wrong casing decodes to an
// empty struct and is rejected by validation.
type Decoder struct {
	allowed map[domain.Program]map[domain.EventType]struct{}
}

// New returns a Decoder with the per-program event whitelists. An
// event logged by a program outside its whitelist is treated as
// unknown.
func New() *Decoder {
	allow := func(types ...domain.EventType) map[domain.EventType]struct{} {
		m := make(map[domain.EventType]struct{}, len(types))
		for _, t := range types {
			m[t] = struct{}{}
		}
		return m
	}

	return &Decoder{
		allowed: map[domain.Program]map[domain.EventType]struct{}{
			domain.ProgramCore: allow(
				domain.EventIdeaCreated,
				domain.EventSponsoredIdeaCreated,
				domain.EventImagesGenerated,
				domain.EventVoteCast,
				domain.EventIdeaCancelled,
			),
			domain.ProgramSettlement: allow(
				domain.EventVotingSettled,
				domain.EventVotingCancelled,
				domain.EventWinningsWithdrawn,
				domain.EventRefundWithdrawn,
			),
			domain.ProgramToken: allow(
				domain.EventThemeCreated,
				domain.EventTokensSwapped,
				domain.EventBuybackExecuted,
			),
		},
	}
}

// Decode returns the events found in logs, in log order. Non-event
// lines and unknown event names are skipped; payloads of known events
// that fail to decode or validate are reported through malformed so
// the caller can log them without aborting the transaction.
func (d *Decoder) Decode(program domain.Program, logs []string) (events []domain.Event, malformed []error) {
	for _, line := range logs {
		event, err := d.DecodeLine(program, line)
		if err != nil {
			if !errors.Is(err, domain.ErrUnknownEvent) {
				malformed = append(malformed, err)
			}
			continue
		}
		if event != nil {
			events = append(events, event)
		}
	}
	return events, malformed
}

// DecodeLine decodes a single log line. It returns (nil, nil) for
// non-event lines, domain.ErrUnknownEvent for names outside the
// program's whitelist, and domain.ErrMalformedEvent for payloads that
// fail to decode or validate.
func (d *Decoder) DecodeLine(program domain.Program, line string) (domain.Event, error) {
	rest, ok := strings.CutPrefix(line, eventLogPrefix)
	if !ok {
		return nil, nil
	}

	name, payload, ok := strings.Cut(rest, ":")
	if !ok {
		return nil, fmt.Errorf("%w: event line without payload separator", domain.ErrMalformedEvent)
	}

	eventType := domain.EventType(name)
	whitelist, ok := d.allowed[program]
	if !ok {
		return nil, fmt.Errorf("%w: program %q", domain.ErrUnknownEvent, program)
	}
	if _, ok := whitelist[eventType]; !ok {
		return nil, fmt.Errorf("%w: %q from program %q", domain.ErrUnknownEvent, name, program)
	}

	event, err := unmarshalEvent(eventType, []byte(payload))
	if err != nil {
		return nil, err
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}
	return event, nil
}

func unmarshalEvent(eventType domain.EventType, payload []byte) (domain.Event, error) {
	var (
		event domain.Event
		err   error
	)

	decode := func(dst any) error {
		if uerr := json.Unmarshal(payload, dst); uerr != nil {
			return fmt.Errorf("%w: %s payload: %v", domain.ErrMalformedEvent, eventType, uerr)
		}
		return nil
	}

	switch eventType {
	case domain.EventThemeCreated:
		var e domain.ThemeCreated
		err = decode(&e)
		event = e
	case domain.EventIdeaCreated:
		var e domain.IdeaCreated
		err = decode(&e)
		event = e
	case domain.EventSponsoredIdeaCreated:
		var e domain.SponsoredIdeaCreated
		err = decode(&e)
		event = e
	case domain.EventImagesGenerated:
		var e domain.ImagesGenerated
		err = decode(&e)
		event = e
	case domain.EventVoteCast:
		var e domain.VoteCast
		err = decode(&e)
		event = e
	case domain.EventIdeaCancelled:
		var e domain.IdeaCancelled
		err = decode(&e)
		event = e
	case domain.EventVotingSettled:
		var e domain.VotingSettled
		err = decode(&e)
		event = e
	case domain.EventVotingCancelled:
		var e domain.VotingCancelled
		err = decode(&e)
		event = e
	case domain.EventWinningsWithdrawn:
		var e domain.WinningsWithdrawn
		err = decode(&e)
		event = e
	case domain.EventRefundWithdrawn:
		var e domain.RefundWithdrawn
		err = decode(&e)
		event = e
	case domain.EventTokensSwapped:
		var e domain.TokensSwapped
		err = decode(&e)
		event = e
	case domain.EventBuybackExecuted:
		var e domain.BuybackExecuted
		err = decode(&e)
		event = e
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownEvent, eventType)
	}

	if err != nil {
		return nil, err
	}
	return event, nil
}
