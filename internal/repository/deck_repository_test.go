package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var deckRowColumns = []string{
	"id", "user_id", "name", "description", "format", "deck_size", "created_at", "last_modified",
}

func deckRow(id, userID uint64, name string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(deckRowColumns).AddRow(id, userID, name, nil, "modern", 60, now, now)
}

const deckUpdateSQL = "UPDATE decks SET last_modified=NOW(), name=? WHERE id=? AND user_id=?"
const deckByIDAndOwnerSQL = "SELECT " + deckColumns + " FROM decks WHERE id=? AND user_id=? LIMIT 1"

func TestDeckRepoUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDeckRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(deckUpdateSQL)).
		WithArgs("Burn", 3, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + deckColumns + " FROM decks WHERE id=? LIMIT 1")).
		WithArgs(3).
		WillReturnRows(deckRow(3, 7, "Burn"))

	name := "Burn"
	deck, err := repo.Update(context.Background(), 3, 7, DeckPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Burn", deck.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The driver reports changed rows, so re-sending the current values
// within the same DATETIME second affects zero rows. That must read
// back the deck, not turn into a not-found.
func TestDeckRepoUpdateNoOpStillFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDeckRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(deckUpdateSQL)).
		WithArgs("Burn", 3, 7).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(deckByIDAndOwnerSQL)).
		WithArgs(3, 7).
		WillReturnRows(deckRow(3, 7, "Burn"))

	name := "Burn"
	deck, err := repo.Update(context.Background(), 3, 7, DeckPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), deck.ID)
	assert.Equal(t, "Burn", deck.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeckRepoUpdateMissingDeck(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDeckRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(deckUpdateSQL)).
		WithArgs("Burn", 3, 7).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(deckByIDAndOwnerSQL)).
		WithArgs(3, 7).
		WillReturnError(sql.ErrNoRows)

	name := "Burn"
	_, err := repo.Update(context.Background(), 3, 7, DeckPatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeckRepoDeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDeckRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM decks WHERE id=? AND user_id=?")).
		WithArgs(3, 7).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 3, 7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
