package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "premam/internal/errors"
	"premam/internal/model"
	"premam/internal/repository"
)

// VoteService is the anonymous vote ledger: at most one row per
// (message, voter identity), repeat casts update in place.
type VoteService interface {
	Cast(ctx context.Context, messageID uuid.UUID, voterKey string, value model.VoteValue) error
	Tally(ctx context.Context, messageID uuid.UUID, voterKey string) (*model.Tally, error)
}

type voteService struct {
	votes    repository.VoteRepository
	messages repository.MessageRepository
}

// NewVoteService creates the vote service.
func NewVoteService(votes repository.VoteRepository, messages repository.MessageRepository) VoteService {
	return &voteService{votes: votes, messages: messages}
}

// Cast records or replaces the caller's vote. The upsert rides the unique
// (message_id, voter_key) constraint, so two concurrent casts from the same
// identity settle on one row.
func (s *voteService) Cast(ctx context.Context, messageID uuid.UUID, voterKey string, value model.VoteValue) error {
	if value != model.VoteYes && value != model.VoteNo {
		return apperrors.NewValidationError("vote", "vote must be yes or no")
	}
	if voterKey == "" {
		return apperrors.NewValidationError("voter", "voter identity is required")
	}

	if _, err := s.messages.FindByID(ctx, messageID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrMessageNotFound
		}
		return fmt.Errorf("find message: %w", err)
	}

	vote := &model.Vote{
		MessageID: messageID,
		VoterKey:  voterKey,
		Vote:      value,
	}
	if err := s.votes.Upsert(ctx, vote); err != nil {
		return fmt.Errorf("upsert vote: %w", err)
	}
	return nil
}

// Tally counts yes/no for the message and reports the caller's own prior
// vote. The voterKey must come from the same derivation Cast used, or the
// "my vote" lookup would miss.
func (s *voteService) Tally(ctx context.Context, messageID uuid.UUID, voterKey string) (*model.Tally, error) {
	yes, err := s.votes.CountByValue(ctx, messageID, model.VoteYes)
	if err != nil {
		return nil, fmt.Errorf("count yes: %w", err)
	}
	no, err := s.votes.CountByValue(ctx, messageID, model.VoteNo)
	if err != nil {
		return nil, fmt.Errorf("count no: %w", err)
	}

	tally := &model.Tally{
		Yes:   int(yes),
		No:    int(no),
		Total: int(yes + no),
	}

	if voterKey != "" {
		if mine, err := s.votes.FindByMessageAndVoter(ctx, messageID, voterKey); err == nil {
			v := mine.Vote
			tally.MyVote = &v
		}
	}
	return tally, nil
}
