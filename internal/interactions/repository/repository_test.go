package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (pgxmock.PgxPoolIface, *Repository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, New(mock)
}

func TestCreateDefaultsTagsToEmptyArray(t *testing.T) {
	mock, repo := newMock(t)
	userID := uuid.New()

	mock.ExpectExec(`INSERT INTO interactions \(user_id, message, bot_response, detected_colleges\)`).
		WithArgs(userID, "fees at VIT?", "Approx. ₹1.98 - 7.8 Lakhs", []string{}).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), CreateParams{
		UserID:      userID,
		Message:     "fees at VIT?",
		BotResponse: "Approx. ₹1.98 - 7.8 Lakhs",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReassignUserReturnsMovedCount(t *testing.T) {
	mock, repo := newMock(t)
	from, to := uuid.New(), uuid.New()

	mock.ExpectExec(`UPDATE interactions SET user_id = \$2 WHERE user_id = \$1`).
		WithArgs(from, to).
		WillReturnResult(pgxmock.NewResult("UPDATE", 7))

	moved, err := repo.ReassignUser(context.Background(), from, to)
	require.NoError(t, err)
	assert.EqualValues(t, 7, moved)
}

func TestListWithLeadsFiltersByLeadAndSearch(t *testing.T) {
	mock, repo := newMock(t)
	leadID := uuid.New()
	interactionID := uuid.New()
	created := time.Date(2024, 8, 2, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM interactions i JOIN leads l ON l.id = i.user_id WHERE TRUE AND i.user_id = \$1 AND \(l.name ILIKE \$2`).
		WithArgs(leadID, "%srm%").
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`LIMIT \$3 OFFSET \$4`).
		WithArgs(leadID, "%srm%", 20, 0).
		WillReturnRows(mock.NewRows([]string{
			"id", "user_id", "message", "bot_response", "detected_colleges", "created_at", "name", "phone", "email",
		}).AddRow(
			interactionID, leadID, "Tell me about SRM", "SRM offers CSE...", []string{"SRM Institute of Science and Technology"}, created,
			"Asha", "9876543210", "asha@example.com",
		))

	items, total, err := repo.ListWithLeads(context.Background(), ListParams{Search: "srm", LeadID: &leadID})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Asha", items[0].LeadName)
	assert.Equal(t, []string{"SRM Institute of Science and Technology"}, items[0].DetectedColleges)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopColleges(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(`unnest\(detected_colleges\)`).
		WithArgs(5).
		WillReturnRows(mock.NewRows([]string{"college", "mentions"}).
			AddRow("IIT Madras", 12).
			AddRow("VIT Vellore", 4))

	mentions, err := repo.TopColleges(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []CollegeMention{{College: "IIT Madras", Count: 12}, {College: "VIT Vellore", Count: 4}}, mentions)
}

func TestCreateReportsMissingLead(t *testing.T) {
	mock, repo := newMock(t)
	userID := uuid.New()

	mock.ExpectExec(`INSERT INTO interactions`).
		WithArgs(userID, "hello", "Hi!", []string{}).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "interactions_user_id_fkey"})

	err := repo.Create(context.Background(), CreateParams{UserID: userID, Message: "hello", BotResponse: "Hi!"})
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestCreatePassesOtherErrorsThrough(t *testing.T) {
	mock, repo := newMock(t)
	userID := uuid.New()
	boom := errors.New("connection reset")

	mock.ExpectExec(`INSERT INTO interactions`).
		WithArgs(userID, "hello", "Hi!", []string{}).
		WillReturnError(boom)

	err := repo.Create(context.Background(), CreateParams{UserID: userID, Message: "hello", BotResponse: "Hi!"})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrLeadNotFound)
}
