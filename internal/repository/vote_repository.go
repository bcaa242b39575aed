package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"premam/internal/model"
)

// VoteRepository defines vote persistence operations.
type VoteRepository interface {
	Upsert(ctx context.Context, vote *model.Vote) error
	FindByMessageAndVoter(ctx context.Context, messageID uuid.UUID, voterKey string) (*model.Vote, error)
	CountByValue(ctx context.Context, messageID uuid.UUID, value model.VoteValue) (int64, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new vote repository.
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// Upsert inserts the vote or, when a row for (message_id, voter_key) already
// exists, updates its value. The unique index resolves the race of two
// concurrent casts from the same identity without application-level locking.
func (r *voteRepository) Upsert(ctx context.Context, vote *model.Vote) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "message_id"}, {Name: "voter_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"vote", "updated_at"}),
	}).Create(vote).Error
}

// FindByMessageAndVoter returns the caller's prior vote, if any.
func (r *voteRepository) FindByMessageAndVoter(ctx context.Context, messageID uuid.UUID, voterKey string) (*model.Vote, error) {
	var vote model.Vote
	if err := r.db.WithContext(ctx).
		Where("message_id = ? AND voter_key = ?", messageID, voterKey).
		First(&vote).Error; err != nil {
		return nil, err
	}
	return &vote, nil
}

// CountByValue counts votes with the given value for a message.
func (r *voteRepository) CountByValue(ctx context.Context, messageID uuid.UUID, value model.VoteValue) (int64, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.Vote{}).
		Where("message_id = ? AND vote = ?", messageID, value).
		Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}
