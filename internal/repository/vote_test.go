package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"teamdex/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestVoteRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewVoteRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "votes"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		err := repo.Create(ctx, &models.Vote{UserID: 1, CommentID: 2, IsUpvote: true})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Vote", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewVoteRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "votes"`)).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_user_comment"})
		mock.ExpectRollback()

		err := repo.Create(ctx, &models.Vote{UserID: 1, CommentID: 2, IsUpvote: false})
		require.Error(t, err)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeConflict, appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewVoteRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "votes"`)).
			WillReturnError(errors.New("connection timeout"))
		mock.ExpectRollback()

		err := repo.Create(ctx, &models.Vote{UserID: 1, CommentID: 2, IsUpvote: true})
		require.Error(t, err)
		var appErr *models.AppError
		assert.False(t, errors.As(err, &appErr), "plain database errors must not be mapped to conflicts")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVoteRepository_GetByUserAndComment(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVoteRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "user_id", "comment_id", "is_upvote"}).
			AddRow(5, 1, 2, true)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "votes" WHERE user_id = $1 AND comment_id = $2`)).
			WithArgs(1, 2, 1).
			WillReturnRows(rows)

		vote, err := repo.GetByUserAndComment(ctx, 1, 2)
		assert.NoError(t, err)
		require.NotNil(t, vote)
		assert.True(t, vote.IsUpvote)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "votes" WHERE user_id = $1 AND comment_id = $2`)).
			WithArgs(1, 99, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		vote, err := repo.GetByUserAndComment(ctx, 1, 99)
		assert.Error(t, err)
		assert.Nil(t, vote)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVoteRepository_DeleteByUserAndComment(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes Existing Vote", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewVoteRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "votes" WHERE user_id = $1 AND comment_id = $2`)).
			WithArgs(1, 2).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		deleted, err := repo.DeleteByUserAndComment(ctx, 1, 2)
		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Nothing To Delete", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewVoteRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "votes" WHERE user_id = $1 AND comment_id = $2`)).
			WithArgs(1, 99).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		deleted, err := repo.DeleteByUserAndComment(ctx, 1, 99)
		assert.NoError(t, err)
		assert.False(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVoteRepository_CountByComment(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVoteRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "votes" WHERE comment_id = $1 AND is_upvote = $2`)).
		WithArgs(2, true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountByComment(ctx, 2, true)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
