package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/heartwatch-app/backend/internal/dto"
	"github.com/heartwatch-app/backend/internal/models"
	"github.com/heartwatch-app/backend/internal/vitals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, svc *AuthService, email string) uuid.UUID {
	t.Helper()
	resp, err := svc.Register(&dto.RegisterRequest{Email: email, Password: "secret123"})
	require.NoError(t, err)
	return resp.User.ID
}

func TestReadingService_Simulate(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, testConfig())
	svc := NewReadingService(db)

	userID := newUser(t, auth, "sim@example.com")

	reading, err := svc.Simulate(userID, vitals.ModeNormal)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, reading.Bpm, 60)
	assert.LessOrEqual(t, reading.Bpm, 90)
	assert.Equal(t, string(vitals.StatusNormal), reading.Status)
	assert.Nil(t, reading.Label)
	assert.NotEmpty(t, reading.Ts)

	var count int64
	db.Model(&models.Reading{}).Where("user_id = ?", userID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestReadingService_ImportCSVCountsOnlyValidRows(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, testConfig())
	svc := NewReadingService(db)

	userID := newUser(t, auth, "upload@example.com")

	csv := "timestamp,bpm,label\n" +
		"2024-03-01 10:00:00,70,\n" +
		"2024-03-01 10:01:00,72.9,1\n" +
		",75,\n" +
		"2024-03-01 10:03:00,bad,\n" +
		"2024-03-01 10:04:00,80,\n" +
		"2024-03-01 10:05:00,85,\n" +
		"2024-03-01 10:06:00,90,\n"

	inserted, err := svc.ImportCSV(userID, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 5, inserted)

	var readings []models.Reading
	require.NoError(t, db.Where("user_id = ?", userID).Order("ts ASC").Find(&readings).Error)
	require.Len(t, readings, 5)

	// 72.9 truncates, never rounds.
	assert.Equal(t, 72, readings[1].Bpm)
	require.NotNil(t, readings[1].Label)
	assert.Equal(t, 1, *readings[1].Label)
	assert.Equal(t, string(vitals.StatusNormal), readings[1].Status)
}

func TestReadingService_ImportCSVEscalatesWithinBatch(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, testConfig())
	svc := NewReadingService(db)

	userID := newUser(t, auth, "escalate@example.com")

	// Two abnormal rows then a third: the third escalates off the first two.
	csv := "timestamp,bpm\n" +
		"2024-03-01 10:00:00,125\n" +
		"2024-03-01 10:01:00,128\n" +
		"2024-03-01 10:02:00,130\n"

	inserted, err := svc.ImportCSV(userID, strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 3, inserted)

	var readings []models.Reading
	require.NoError(t, db.Where("user_id = ?", userID).Order("ts ASC").Find(&readings).Error)
	require.Len(t, readings, 3)

	assert.Equal(t, string(vitals.StatusAbnormal), readings[0].Status)
	assert.Equal(t, string(vitals.StatusAbnormal), readings[1].Status)
	assert.Equal(t, string(vitals.StatusCritical), readings[2].Status)
}

func TestReadingService_ImportCSVSeedsHistoryFromPersistedReadings(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, testConfig())
	svc := NewReadingService(db)

	userID := newUser(t, auth, "seed@example.com")

	_, err := svc.ImportCSV(userID, strings.NewReader(
		"timestamp,bpm\n2024-03-01 10:00:00,125\n2024-03-01 10:01:00,128\n"))
	require.NoError(t, err)

	// A later upload sees the two persisted abnormal readings and escalates
	// its first out-of-band row.
	_, err = svc.ImportCSV(userID, strings.NewReader(
		"timestamp,bpm\n2024-03-01 10:02:00,130\n"))
	require.NoError(t, err)

	var reading models.Reading
	require.NoError(t, db.Where("user_id = ? AND bpm = ?", userID, 130).First(&reading).Error)
	assert.Equal(t, string(vitals.StatusCritical), reading.Status)
}

func TestReadingService_ImportCSVRejectsBadHeader(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, testConfig())
	svc := NewReadingService(db)

	userID := newUser(t, auth, "badheader@example.com")

	_, err := svc.ImportCSV(userID, strings.NewReader("when,value\n2024-03-01,70\n"))
	assert.ErrorIs(t, err, vitals.ErrMissingColumns)

	_, err = svc.ImportCSV(userID, strings.NewReader(""))
	assert.ErrorIs(t, err, vitals.ErrEmptyFile)

	var count int64
	db.Model(&models.Reading{}).Where("user_id = ?", userID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestReadingService_LatestAndRecent(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, testConfig())
	svc := NewReadingService(db)

	userID := newUser(t, auth, "windows@example.com")

	_, err := svc.Latest(userID)
	assert.ErrorIs(t, err, ErrNoReadings)

	_, err = svc.ImportCSV(userID, strings.NewReader(
		"timestamp,bpm\n"+
			"2024-03-01 10:00:00,70\n"+
			"2024-03-01 10:01:00,75\n"+
			"2024-03-01 10:02:00,80\n"))
	require.NoError(t, err)

	latest, err := svc.Latest(userID)
	require.NoError(t, err)
	assert.Equal(t, 80, latest.Bpm)

	// Recent is chronological for display, most recent last.
	recent, err := svc.Recent(userID)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, 70, recent[0].Bpm)
	assert.Equal(t, 80, recent[2].Bpm)
}

func TestReadingService_ScopedToUser(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, testConfig())
	svc := NewReadingService(db)

	alice := newUser(t, auth, "alice-scope@example.com")
	bob := newUser(t, auth, "bob-scope@example.com")

	_, err := svc.ImportCSV(alice, strings.NewReader("timestamp,bpm\n2024-03-01 10:00:00,70\n"))
	require.NoError(t, err)

	_, err = svc.Latest(bob)
	assert.ErrorIs(t, err, ErrNoReadings)

	history, err := svc.History(bob)
	require.NoError(t, err)
	assert.Empty(t, history)
}
