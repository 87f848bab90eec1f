package gormstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aebonlee/stepup-cloud/backend/models"
	"github.com/aebonlee/stepup-cloud/backend/store"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func createUser(t *testing.T, st *Store, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "hash"}
	require.NoError(t, st.CreateUser(context.Background(), user))
	require.NotZero(t, user.ID)
	return user
}

func addStudy(t *testing.T, st *Store, userID uint, date, subject string, minutes int) {
	t.Helper()
	require.NoError(t, st.CreateStudyRecord(context.Background(), &models.StudyRecord{
		UserID: userID, Date: models.Date(date), Subject: subject, Minutes: minutes,
	}))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	user := createUser(t, st, "a@x.com")

	err := st.CreateUser(ctx, &models.User{Email: "a@x.com", PasswordHash: "other"})
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)

	byEmail, err := st.UserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := st.UserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)

	_, err = st.UserByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.UserByID(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListOrderAndScope(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	alice := createUser(t, st, "alice@x.com")
	bob := createUser(t, st, "bob@x.com")

	addStudy(t, st, alice.ID, "2024-01-02", "Math", 10)
	addStudy(t, st, alice.ID, "2024-03-01", "Science", 20)
	addStudy(t, st, alice.ID, "2024-02-15", "English", 30)
	addStudy(t, st, bob.ID, "2024-05-01", "Math", 40)

	recs, err := st.ListStudyRecords(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, models.Date("2024-03-01"), recs[0].Date)
	assert.Equal(t, models.Date("2024-02-15"), recs[1].Date)
	assert.Equal(t, models.Date("2024-01-02"), recs[2].Date)

	empty, err := st.ListReadingRecords(ctx, alice.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestStudyAggregations(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	user := createUser(t, st, "stats@x.com")

	addStudy(t, st, user.ID, "2024-01-01", "Math", 30)
	addStudy(t, st, user.ID, "2024-01-01", "English", 15)
	addStudy(t, st, user.ID, "2024-01-07", "Math", 10)
	addStudy(t, st, user.ID, "2024-01-08", "Math", 5)
	addStudy(t, st, user.ID, "2021-01-01", "History", 60)

	daily, err := st.DailyStudyMinutes(ctx, user.ID, store.DailyLimit)
	require.NoError(t, err)
	assert.Equal(t, []models.DailyMinutes{
		{Date: "2024-01-08", TotalMinutes: 5},
		{Date: "2024-01-07", TotalMinutes: 10},
		{Date: "2024-01-01", TotalMinutes: 45},
		{Date: "2021-01-01", TotalMinutes: 60},
	}, daily)

	limited, err := st.DailyStudyMinutes(ctx, user.ID, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	subjects, err := st.SubjectStudyMinutes(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.SubjectMinutes{
		{Subject: "English", TotalMinutes: 15},
		{Subject: "History", TotalMinutes: 60},
		{Subject: "Math", TotalMinutes: 45},
	}, subjects)

	weekly, err := st.WeeklyStudyMinutes(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.WeeklyMinutes{
		{Week: "2024-W02", TotalMinutes: 5},
		{Week: "2024-W01", TotalMinutes: 55},
		{Week: "2020-W53", TotalMinutes: 60},
	}, weekly)
}

func TestReadingAggregations(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	user := createUser(t, st, "reader@x.com")

	novel := "novel"
	review := "loved it"
	for _, rec := range []models.ReadingRecord{
		{Date: "2024-02-01", BookTitle: "Dune", Category: &novel, Review: &review},
		{Date: "2024-02-20", BookTitle: "Emma", Category: &novel},
		{Date: "2024-03-03", BookTitle: "Cosmos"},
	} {
		rec := rec
		rec.UserID = user.ID
		require.NoError(t, st.CreateReadingRecord(ctx, &rec))
	}

	monthly, err := st.MonthlyReadingCounts(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.MonthlyCount{
		{Month: "2024-03", BookCount: 1},
		{Month: "2024-02", BookCount: 2},
	}, monthly)

	categories, err := st.CategoryReadingCounts(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Nil(t, categories[0].Category)
	assert.EqualValues(t, 1, categories[0].BookCount)
	assert.Equal(t, "novel", *categories[1].Category)
	assert.EqualValues(t, 2, categories[1].BookCount)

	reviews, err := st.ReviewCount(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, reviews)
}

func TestOverview(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	user := createUser(t, st, "overview@x.com")

	addStudy(t, st, user.ID, "2024-01-01", "Math", 30)
	hours := 4
	require.NoError(t, st.CreateAwardActivity(ctx, &models.AwardActivity{
		UserID: user.ID, Date: "2024-01-02", Title: "Volunteering", Type: models.TypeActivity, Hours: &hours,
	}))
	require.NoError(t, st.CreateAwardActivity(ctx, &models.AwardActivity{
		UserID: user.ID, Date: "2024-01-03", Title: "Olympiad", Type: models.TypeAward,
	}))

	overview, err := st.Overview(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, &models.ProgressOverview{
		TotalStudyMinutes:  30,
		TotalBooks:         0,
		TotalActivities:    1,
		TotalAwards:        1,
		TotalActivityHours: 4,
	}, overview)

	empty, err := st.Overview(ctx, 999)
	require.NoError(t, err)
	assert.Equal(t, &models.ProgressOverview{}, empty)
}
