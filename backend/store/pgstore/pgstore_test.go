package pgstore

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aebonlee/stepup-cloud/backend/models"
	"github.com/aebonlee/stepup-cloud/backend/store"
)

// openTestStore connects to TEST_DATABASE_URL and empties the tables.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	st, err := Open(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	_, err = st.Pool.Exec(ctx, `TRUNCATE users, study_records, reading_records, awards_activities RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return st
}

func TestPostgresUsersAndRecords(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	user := &models.User{Email: "pg@x.com", PasswordHash: "hash"}
	require.NoError(t, st.CreateUser(ctx, user))
	assert.NotZero(t, user.ID)

	err := st.CreateUser(ctx, &models.User{Email: "pg@x.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)

	_, err = st.UserByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	for _, day := range []string{"2024-01-01", "2024-01-08", "2021-01-01"} {
		require.NoError(t, st.CreateStudyRecord(ctx, &models.StudyRecord{
			UserID: user.ID, Date: models.Date(day), Subject: "Math", Minutes: 30,
		}))
	}

	recs, err := st.ListStudyRecords(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, models.Date("2024-01-08"), recs[0].Date)

	weekly, err := st.WeeklyStudyMinutes(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.WeeklyMinutes{
		{Week: "2024-W02", TotalMinutes: 30},
		{Week: "2024-W01", TotalMinutes: 30},
		{Week: "2020-W53", TotalMinutes: 30},
	}, weekly)

	reading, err := st.MonthlyReadingCounts(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, reading)

	reviews, err := st.ReviewCount(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, reviews)

	overview, err := st.Overview(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 90, overview.TotalStudyMinutes)
}
