package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/geprek-app/hub"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func TestKafkaPublisherKeysByEntity(t *testing.T) {
	w := &mockWriter{}
	w.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
		return len(msgs) == 1 &&
			string(msgs[0].Key) == "42" &&
			string(msgs[0].Headers[0].Value) == hub.EventOrderCreated &&
			strings.Contains(string(msgs[0].Value), `"entity_id":42`)
	})).Return(nil).Once()

	KafkaPublisher{Writer: w}.Publish(context.Background(), NewEvent(hub.EventOrderCreated, 42, map[string]int{"total": 15000}))
	w.AssertExpectations(t)
}

func TestPublishFailuresAreSwallowed(t *testing.T) {
	w := &mockWriter{}
	w.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("broker down"))
	rec := &recordingPublisher{}

	pub := MultiPublisher{KafkaPublisher{Writer: w}, nil, rec, NopPublisher{}, HubPublisher{}}
	assert.NotPanics(t, func() {
		pub.Publish(context.Background(), NewEvent(hub.EventRecapApproved, 1, nil))
	})
	assert.Equal(t, []string{hub.EventRecapApproved}, rec.types())
	w.AssertNumberOfCalls(t, "WriteMessages", 1)
}

func TestLocalStorageUpload(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStorage(dir, "http://localhost:8080/")

	url, err := store.Upload(context.Background(), "geprek.JPG", []byte("fake-image"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	saved, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, "fake-image", string(saved))

	_, err = store.Upload(context.Background(), "script.sh", []byte("echo"))
	assert.True(t, IsValidation(err))
	_, err = store.Upload(context.Background(), "kosong.png", nil)
	assert.True(t, IsValidation(err))
}

func TestOrderQRCode(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/orders/12", OrderTrackingURL("http://localhost:8080", 12))
	png, err := OrderQRCode("http://localhost:8080", 12)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestRenderRevenueChart(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, wib)

	png, err := RenderRevenueChart(RevenueSeries(nil, now, 7))
	require.NoError(t, err, "all-zero week still renders")
	assert.True(t, bytes.HasPrefix(png, pngMagic))

	_, err = RenderRevenueChart(nil)
	assert.Error(t, err)
}
