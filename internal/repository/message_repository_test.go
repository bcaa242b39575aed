package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"premam/internal/model"
)

func seedCreator(t *testing.T, db *gorm.DB, slug string) *model.Creator {
	t.Helper()
	creator := &model.Creator{DisplayName: slug, Slug: slug, PasscodeHash: "x"}
	if err := db.Create(creator).Error; err != nil {
		t.Fatalf("seed creator: %v", err)
	}
	return creator
}

func TestMessageRepository_ListForCreator(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	rosy := seedCreator(t, db, "rosy")
	other := seedCreator(t, db, "other")
	now := time.Now()

	older := &model.Message{CreatorID: rosy.ID, Type: model.MessageTypeConfession, Content: "first", SenderTimestamp: now.Add(-time.Hour)}
	newer := &model.Message{CreatorID: rosy.ID, Type: model.MessageTypeConfession, Content: "second", SenderTimestamp: now}
	foreign := &model.Message{CreatorID: other.ID, Type: model.MessageTypeConfession, Content: "not yours", SenderTimestamp: now}
	for _, m := range []*model.Message{older, newer, foreign} {
		assert.NoError(t, repo.Create(ctx, m))
	}

	messages, err := repo.ListForCreator(ctx, rosy.ID)
	assert.NoError(t, err)
	if assert.Len(t, messages, 2) {
		// Newest first.
		assert.Equal(t, "second", messages[0].Content)
		assert.Equal(t, "first", messages[1].Content)
	}
}

func TestMessageRepository_ListPublic(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()
	creator := seedCreator(t, db, "rosy")

	hidden := &model.Message{CreatorID: creator.ID, Type: model.MessageTypeConfession, Content: "hidden"}
	shown := &model.Message{CreatorID: creator.ID, Type: model.MessageTypeConfession, Content: "shown", IsPublic: true}
	assert.NoError(t, repo.Create(ctx, hidden))
	assert.NoError(t, repo.Create(ctx, shown))

	messages, err := repo.ListPublic(ctx)
	assert.NoError(t, err)
	if assert.Len(t, messages, 1) {
		assert.Equal(t, "shown", messages[0].Content)
	}
}

func TestMessageRepository_Flags(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()
	creator := seedCreator(t, db, "rosy")

	message := &model.Message{CreatorID: creator.ID, Type: model.MessageTypeConfession, Content: "hello"}
	assert.NoError(t, repo.Create(ctx, message))

	assert.NoError(t, repo.SetVisibility(ctx, message.ID, true))
	assert.NoError(t, repo.SetRead(ctx, message.ID, true))
	assert.NoError(t, repo.SetArchived(ctx, message.ID, true))

	stored, err := repo.FindByID(ctx, message.ID)
	assert.NoError(t, err)
	assert.True(t, stored.IsPublic)
	assert.True(t, stored.IsRead)
	assert.True(t, stored.IsArchived)

	// Flags are idempotent toggles. Re-asserting the current value must
	// succeed even when the driver reports zero changed rows for it.
	assert.NoError(t, repo.SetVisibility(ctx, message.ID, true))
	assert.NoError(t, repo.SetRead(ctx, message.ID, true))

	assert.NoError(t, repo.SetVisibility(ctx, message.ID, false))
	stored, err = repo.FindByID(ctx, message.ID)
	assert.NoError(t, err)
	assert.False(t, stored.IsPublic)

	// Unknown ids surface as not found, not as silent no-ops.
	assert.ErrorIs(t, repo.SetVisibility(ctx, uuid.New(), true), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.SetRead(ctx, uuid.New(), true), gorm.ErrRecordNotFound)
}

func TestMessageRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	votes := NewVoteRepository(db)
	ctx := context.Background()
	creator := seedCreator(t, db, "rosy")

	message := &model.Message{CreatorID: creator.ID, Type: model.MessageTypeConfession, Content: "hello"}
	assert.NoError(t, repo.Create(ctx, message))
	assert.NoError(t, votes.Upsert(ctx, &model.Vote{MessageID: message.ID, VoterKey: "fp_a", Vote: model.VoteYes}))

	assert.NoError(t, repo.Delete(ctx, message.ID))

	_, err := repo.FindByID(ctx, message.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The message's votes go with it.
	var count int64
	assert.NoError(t, db.Model(&model.Vote{}).Where("message_id = ?", message.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	assert.ErrorIs(t, repo.Delete(ctx, message.ID), gorm.ErrRecordNotFound)
}

func TestCreatorRepository_FindBySlugOrCreate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCreatorRepository(db)
	ctx := context.Background()

	created, err := repo.FindBySlugOrCreate(ctx, &model.Creator{DisplayName: "Admin", Slug: "admin", PasscodeHash: "x"})
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	// A second boot finds the same row instead of inserting another.
	again, err := repo.FindBySlugOrCreate(ctx, &model.Creator{DisplayName: "Admin", Slug: "admin", PasscodeHash: "y"})
	assert.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	var count int64
	assert.NoError(t, db.Model(&model.Creator{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
