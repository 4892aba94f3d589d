package sheet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Day,Time,Clinicians,Insurance
Monday,9:00 AM,"Alex Rivera, Sam Chen","Aetna, Blue Cross Blue Shield"
Tuesday,10:00 AM,Alex Rivera,
,11:00 AM,Nobody,
Wednesday,1:00 PM,,Cigna
`

func TestSourceSlots(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	src := NewSource(srv.URL, time.Minute)
	slots, err := src.Slots(context.Background())
	require.NoError(t, err)
	require.Len(t, slots, 2, "rows missing a day or clinicians are dropped")

	assert.Equal(t, "monday-900-am", slots[0].ID)
	assert.Equal(t, "Monday", slots[0].Day)
	assert.Equal(t, "9:00 AM", slots[0].Time)
	assert.Equal(t, []string{"Alex Rivera", "Sam Chen"}, slots[0].Clinicians)
	assert.Equal(t, "Aetna, Blue Cross Blue Shield", slots[0].Insurance)

	assert.Equal(t, "tuesday-1000-am", slots[1].ID)
	assert.Empty(t, slots[1].Insurance)

	// Second read comes from cache.
	_, err = src.Slots(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestSourceSlots_DeterministicIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	first, err := NewSource(srv.URL, time.Minute).Slots(context.Background())
	require.NoError(t, err)
	second, err := NewSource(srv.URL, time.Minute).Slots(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSourceSlots_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewSource(srv.URL, time.Minute).Slots(context.Background())
	assert.Error(t, err)
}
