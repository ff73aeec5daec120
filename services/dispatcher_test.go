package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/abocci/phrasepush/models"
	"github.com/abocci/phrasepush/phrases"
	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fakeSender records every send and fails the identifiers listed in errFor.
type fakeSender struct {
	platform string
	errFor   map[string]error
	calls    []fakeCall
}

type fakeCall struct {
	identifier string
	phrase     phrases.Phrase
}

func (f *fakeSender) Platform() string {
	return f.platform
}

func (f *fakeSender) Send(subscription *models.Subscription, phrase phrases.Phrase, sentAt time.Time) error {
	f.calls = append(f.calls, fakeCall{identifier: subscription.Identifier(), phrase: phrase})
	return f.errFor[subscription.Identifier()]
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Subscription{}, &models.Notification{}))
	return db
}

func newTestDispatcher(t *testing.T, db *gorm.DB, senders ...Sender) *Dispatcher {
	t.Helper()
	config := models.Config{AdminEmail: "admin@example.com", Debug: true}
	bus := EventBus.New()
	return NewDispatcher(db, &config, phrases.NewSelector(), senders, &bus)
}

func createWebSubscription(t *testing.T, db *gorm.DB, endpoint, language, difficulty string) *models.Subscription {
	t.Helper()
	manager := NewSubscriptionManager(db, &models.Config{})
	subscription, err := manager.UpsertWeb(endpoint, `{"endpoint":"`+endpoint+`","keys":{"p256dh":"k","auth":"a"}}`, language, difficulty)
	require.NoError(t, err)
	return subscription
}

func createIOSSubscription(t *testing.T, db *gorm.DB, token, language, difficulty string) *models.Subscription {
	t.Helper()
	manager := NewSubscriptionManager(db, &models.Config{})
	subscription, err := manager.UpsertIOS(token, language, difficulty)
	require.NoError(t, err)
	return subscription
}

func reload(t *testing.T, db *gorm.DB, subscription *models.Subscription) *models.Subscription {
	t.Helper()
	var fresh models.Subscription
	require.NoError(t, db.First(&fresh, "id = ?", subscription.ID).Error)
	return &fresh
}

func historyFor(t *testing.T, db *gorm.DB, subscription *models.Subscription) []models.Notification {
	t.Helper()
	var rows []models.Notification
	require.NoError(t, db.Where("subscription_id = ?", subscription.ID).Order("sent_at desc").Find(&rows).Error)
	return rows
}

func TestBroadcastSharesPhraseAcrossPlatforms(t *testing.T) {
	db := newTestDB(t)
	web := &fakeSender{platform: models.PlatformWeb}
	ios := &fakeSender{platform: models.PlatformIOS}
	dispatcher := newTestDispatcher(t, db, web, ios)

	subA := createWebSubscription(t, db, "https://push.example/a", "spanish", "easy")
	subB := createIOSSubscription(t, db, "token-b", "spanish", "easy")

	report, err := dispatcher.Broadcast()
	require.NoError(t, err)
	assert.Equal(t, 2, report.Sent)
	assert.Equal(t, 0, report.Failed)

	require.Len(t, web.calls, 1)
	require.Len(t, ios.calls, 1)
	assert.Equal(t, web.calls[0].phrase, ios.calls[0].phrase, "same combination must receive the same phrase")
	assert.Equal(t, report.Phrases["spanish/easy"], web.calls[0].phrase)

	for _, subscription := range []*models.Subscription{subA, subB} {
		fresh := reload(t, db, subscription)
		assert.Equal(t, web.calls[0].phrase.Original, fresh.LastPhraseOriginal)
		assert.Equal(t, web.calls[0].phrase.English, fresh.LastPhraseEnglish)
		require.NotNil(t, fresh.LastNotificationSentAt)
		assert.Len(t, historyFor(t, db, subscription), 1)
	}
}

func TestBroadcastDrawsOnePhrasePerCombination(t *testing.T) {
	db := newTestDB(t)
	web := &fakeSender{platform: models.PlatformWeb}
	dispatcher := newTestDispatcher(t, db, web)

	createWebSubscription(t, db, "https://push.example/a", "italian", "easy")
	createWebSubscription(t, db, "https://push.example/b", "italian", "easy")
	createWebSubscription(t, db, "https://push.example/c", "italian", "medium")

	report, err := dispatcher.Broadcast()
	require.NoError(t, err)
	assert.Equal(t, 3, report.Sent)
	assert.Len(t, report.Phrases, 2)
	assert.Contains(t, report.Phrases, "italian/easy")
	assert.Contains(t, report.Phrases, "italian/medium")
}

func TestBroadcastDeactivatesOnPermanentFailure(t *testing.T) {
	db := newTestDB(t)
	web := &fakeSender{
		platform: models.PlatformWeb,
		errFor: map[string]error{
			"https://push.example/gone": &DeliveryError{StatusCode: 410, Permanent: true},
		},
	}
	dispatcher := newTestDispatcher(t, db, web)

	gone := createWebSubscription(t, db, "https://push.example/gone", "italian", "easy")
	alive := createWebSubscription(t, db, "https://push.example/alive", "italian", "easy")

	report, err := dispatcher.Broadcast()
	require.NoError(t, err)
	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 1, report.Failed)

	assert.True(t, reload(t, db, gone).Deactivated)
	assert.False(t, reload(t, db, alive).Deactivated)
	assert.Empty(t, historyFor(t, db, gone))

	// A deactivated subscription is gone for send-now purposes.
	err = dispatcher.SendNow(Identifier{Endpoint: "https://push.example/gone"}, false)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestBroadcastKeepsSubscriptionOnTransientFailure(t *testing.T) {
	db := newTestDB(t)
	web := &fakeSender{
		platform: models.PlatformWeb,
		errFor: map[string]error{
			"https://push.example/busy": &DeliveryError{StatusCode: 503},
		},
	}
	dispatcher := newTestDispatcher(t, db, web)

	busy := createWebSubscription(t, db, "https://push.example/busy", "french", "easy")

	report, err := dispatcher.Broadcast()
	require.NoError(t, err)
	assert.Equal(t, 0, report.Sent)
	assert.Equal(t, 1, report.Failed)

	fresh := reload(t, db, busy)
	assert.False(t, fresh.Deactivated, "transient failures must not retire the subscription")
	assert.Nil(t, fresh.LastNotificationSentAt)
	assert.Empty(t, historyFor(t, db, busy))
}

func TestSendNowUnknownSubscriber(t *testing.T) {
	db := newTestDB(t)
	web := &fakeSender{platform: models.PlatformWeb}
	dispatcher := newTestDispatcher(t, db, web)

	err := dispatcher.SendNow(Identifier{Endpoint: "https://push.example/nobody"}, false)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
	assert.Empty(t, web.calls, "no transport call for an unknown subscriber")
}

func TestSendNowAppOpenSkipsTransport(t *testing.T) {
	db := newTestDB(t)
	web := &fakeSender{platform: models.PlatformWeb}
	dispatcher := newTestDispatcher(t, db, web)

	subscription := createWebSubscription(t, db, "https://push.example/open", "japanese", "medium")

	require.NoError(t, dispatcher.SendNow(Identifier{Endpoint: "https://push.example/open"}, true))

	assert.Empty(t, web.calls, "appIsOpen must suppress the push")
	fresh := reload(t, db, subscription)
	require.NotNil(t, fresh.LastNotificationSentAt)
	rows := historyFor(t, db, subscription)
	require.Len(t, rows, 1)
	assert.Equal(t, fresh.LastPhraseOriginal, rows[0].PhraseOriginal)
}

func TestSendNowWritesSnapshotAndHistoryTogether(t *testing.T) {
	db := newTestDB(t)
	ios := &fakeSender{platform: models.PlatformIOS}
	dispatcher := newTestDispatcher(t, db, ios)

	subscription := createIOSSubscription(t, db, "token-now", "spanish", "medium")

	require.NoError(t, dispatcher.SendNow(Identifier{IOSToken: "token-now"}, false))

	require.Len(t, ios.calls, 1)
	fresh := reload(t, db, subscription)
	rows := historyFor(t, db, subscription)
	require.Len(t, rows, 1)
	assert.Equal(t, ios.calls[0].phrase.Original, fresh.LastPhraseOriginal)
	assert.Equal(t, ios.calls[0].phrase.Original, rows[0].PhraseOriginal)
	assert.Equal(t, ios.calls[0].phrase.English, rows[0].PhraseEnglish)
	require.NotNil(t, fresh.LastNotificationSentAt)
	assert.Equal(t, fresh.LastNotificationSentAt.UTC(), rows[0].SentAt.UTC())
	assert.Equal(t, "spanish", rows[0].Language)
	assert.Equal(t, "medium", rows[0].Difficulty)
}

func TestSendNowPermanentFailureDeactivates(t *testing.T) {
	db := newTestDB(t)
	ios := &fakeSender{
		platform: models.PlatformIOS,
		errFor: map[string]error{
			"token-dead": &DeliveryError{StatusCode: 410, Reason: "Unregistered", Permanent: true},
		},
	}
	dispatcher := newTestDispatcher(t, db, ios)

	subscription := createIOSSubscription(t, db, "token-dead", "italian", "easy")

	err := dispatcher.SendNow(Identifier{IOSToken: "token-dead"}, false)
	var deliveryErr *DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	assert.True(t, deliveryErr.Permanent)

	assert.True(t, reload(t, db, subscription).Deactivated)
	assert.ErrorIs(t, dispatcher.SendNow(Identifier{IOSToken: "token-dead"}, false), ErrSubscriptionNotFound)
}

func TestSendToUnconfiguredPlatformFails(t *testing.T) {
	db := newTestDB(t)
	// No iOS sender configured, as when APNs credentials are absent.
	web := &fakeSender{platform: models.PlatformWeb}
	dispatcher := newTestDispatcher(t, db, web)

	subscription := createIOSSubscription(t, db, "token-noapns", "italian", "easy")

	err := dispatcher.SendNow(Identifier{IOSToken: "token-noapns"}, false)
	require.Error(t, err)
	// Configuration trouble is not a permanent delivery failure.
	assert.False(t, reload(t, db, subscription).Deactivated)
}
