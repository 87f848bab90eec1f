package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aebonlee/stepup-cloud/backend/config"
	"github.com/aebonlee/stepup-cloud/backend/models"
	"github.com/aebonlee/stepup-cloud/backend/revocation"
	"github.com/aebonlee/stepup-cloud/backend/store"
	"github.com/aebonlee/stepup-cloud/backend/store/gormstore"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:       config.EnvDevelopment,
		JWTSecret: "testsecret",
		TokenTTL:  time.Hour,
	}
}

func openStore(t *testing.T) *gormstore.Store {
	t.Helper()
	st, err := gormstore.Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	auth := NewAuthService(openStore(t), revocation.NewMemory(), testConfig())

	session, err := auth.Register(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "a@x.com", session.User.Email)
	assert.NotZero(t, session.User.ID)

	_, err = auth.Register(ctx, "a@x.com", "other")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	login, err := auth.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, login.User.ID)

	_, err = auth.Login(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(ctx, "nobody@x.com", "pw")
	assert.ErrorIs(t, err, ErrUserNotFound)

	identity, err := auth.Authenticate(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, identity.UserID)
	assert.Equal(t, "a@x.com", identity.Email)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	auth := NewAuthService(openStore(t), nil, testConfig())

	var verr *ValidationError
	_, err := auth.Register(ctx, "", "pw")
	assert.ErrorAs(t, err, &verr)

	_, err = auth.Register(ctx, "a@x.com", "")
	assert.ErrorAs(t, err, &verr)

	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	_, err = auth.Register(ctx, "a@x.com", string(long))
	assert.ErrorAs(t, err, &verr)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	auth := NewAuthService(openStore(t), revocation.NewMemory(), cfg)

	_, err := auth.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = auth.Authenticate(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrForbidden)

	session, err := auth.Register(ctx, "b@x.com", "pw")
	require.NoError(t, err)

	other := *cfg
	other.JWTSecret = "another-secret"
	_, err = NewAuthService(auth.Users, nil, &other).Authenticate(ctx, session.Token)
	assert.ErrorIs(t, err, ErrForbidden)

	expired := *cfg
	expired.TokenTTL = -time.Minute
	stale, err := NewAuthService(auth.Users, nil, &expired).Register(ctx, "c@x.com", "pw")
	require.NoError(t, err)
	_, err = auth.Authenticate(ctx, stale.Token)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	auth := NewAuthService(openStore(t), revocation.NewMemory(), testConfig())

	session, err := auth.Register(ctx, "d@x.com", "pw")
	require.NoError(t, err)
	identity, err := auth.Authenticate(ctx, session.Token)
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, identity))

	_, err = auth.Authenticate(ctx, session.Token)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateStudyValidation(t *testing.T) {
	ctx := context.Background()
	records := NewRecordService(openStore(t))

	cases := map[string]StudyInput{
		"missing date":     {Subject: "Math", Minutes: intPtr(30)},
		"bad date":         {Date: "2024/01/01", Subject: "Math", Minutes: intPtr(30)},
		"missing subject":  {Date: "2024-01-01", Subject: "  ", Minutes: intPtr(30)},
		"missing minutes":  {Date: "2024-01-01", Subject: "Math"},
		"zero minutes":     {Date: "2024-01-01", Subject: "Math", Minutes: intPtr(0)},
		"negative minutes": {Date: "2024-01-01", Subject: "Math", Minutes: intPtr(-5)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := records.CreateStudy(ctx, 1, in)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestCreateStudyNormalisesBook(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	auth := NewAuthService(st, nil, testConfig())
	records := NewRecordService(st)

	session, err := auth.Register(ctx, "e@x.com", "pw")
	require.NoError(t, err)

	rec, err := records.CreateStudy(ctx, session.User.ID, StudyInput{
		Date: "2024-03-01", Subject: "English", Book: strPtr(""), Minutes: intPtr(45),
	})
	require.NoError(t, err)
	assert.NotZero(t, rec.ID)
	assert.Nil(t, rec.Book)

	list, err := records.ListStudy(ctx, session.User.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 45, list[0].Minutes)
	assert.Equal(t, models.Date("2024-03-01"), list[0].Date)
}

func TestCreateAwardActivity(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	auth := NewAuthService(st, nil, testConfig())
	records := NewRecordService(st)

	session, err := auth.Register(ctx, "f@x.com", "pw")
	require.NoError(t, err)
	uid := session.User.ID

	award, err := records.CreateAwardActivity(ctx, uid, AwardActivityInput{
		Date: "2024-05-01", Title: "Science fair", Type: "입상", Hours: intPtr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, models.TypeAward, award.Type)
	assert.Nil(t, award.Hours)

	activity, err := records.CreateAwardActivity(ctx, uid, AwardActivityInput{
		Date: "2024-05-02", Title: "Volunteering", Type: "Activity", Hours: intPtr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, models.TypeActivity, activity.Type)
	require.NotNil(t, activity.Hours)
	assert.Equal(t, 4, *activity.Hours)

	var verr *ValidationError
	_, err = records.CreateAwardActivity(ctx, uid, AwardActivityInput{Date: "2024-05-02", Title: "x", Type: "club"})
	assert.ErrorAs(t, err, &verr)
	_, err = records.CreateAwardActivity(ctx, uid, AwardActivityInput{Date: "2024-05-02", Title: "x", Type: "activity", Hours: intPtr(0)})
	assert.ErrorAs(t, err, &verr)

	list, err := records.ListAwardActivities(ctx, uid)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Volunteering", list[0].Title)
}

func TestStudyStatsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	auth := NewAuthService(st, nil, testConfig())
	records := NewRecordService(st)
	stats := NewStatsService(st)

	session, err := auth.Register(ctx, "g@x.com", "pw")
	require.NoError(t, err)
	_, err = records.CreateStudy(ctx, session.User.ID, StudyInput{Date: "2024-01-01", Subject: "Math", Minutes: intPtr(30)})
	require.NoError(t, err)

	first, err := stats.Study(ctx, session.User.ID)
	require.NoError(t, err)
	second, err := stats.Study(ctx, session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.Len(t, first.Subjects, 1)
	assert.Equal(t, "Math", first.Subjects[0].Subject)
	assert.EqualValues(t, 30, first.Subjects[0].TotalMinutes)
}

// failingStats fails exactly one aggregation.
type failingStats struct {
	store.StatsStore
	failWeekly  bool
	failReviews bool
}

var errBoom = errors.New("boom")

func (f *failingStats) WeeklyStudyMinutes(ctx context.Context, userID uint) ([]models.WeeklyMinutes, error) {
	if f.failWeekly {
		return nil, errBoom
	}
	return f.StatsStore.WeeklyStudyMinutes(ctx, userID)
}

func (f *failingStats) ReviewCount(ctx context.Context, userID uint) (int64, error) {
	if f.failReviews {
		return 0, errBoom
	}
	return f.StatsStore.ReviewCount(ctx, userID)
}

func TestStatsFailAtomically(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	study, err := NewStatsService(&failingStats{StatsStore: st, failWeekly: true}).Study(ctx, 1)
	assert.Nil(t, study)
	var aerr *AggregationError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "study", aerr.Stats)
	assert.ErrorIs(t, err, errBoom)

	reading, err := NewStatsService(&failingStats{StatsStore: st, failReviews: true}).Reading(ctx, 1)
	assert.Nil(t, reading)
	assert.ErrorIs(t, err, errBoom)
}

func TestReadingStatsEmpty(t *testing.T) {
	stats, err := NewStatsService(openStore(t)).Reading(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, stats.Monthly)
	assert.Empty(t, stats.Categories)
	assert.EqualValues(t, 0, stats.TotalReviews)
}
