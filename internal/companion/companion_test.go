package companion

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		weather bool
		invert  *bool
		err     error
	}{
		{name: "weather", body: `{"KEY_TEMP":72,"KEY_ICON":"01d"}`, weather: true},
		{name: "weather and invert", body: `{"KEY_TEMP":-4,"KEY_ICON":"snow","KEY_INVERT_COLORS":1}`, weather: true, invert: boolPtr(true)},
		{name: "invert only", body: `{"KEY_INVERT_COLORS":0}`, invert: boolPtr(false)},
		{name: "invert bool", body: `{"KEY_INVERT_COLORS":true}`, invert: boolPtr(true)},
		{name: "temperature only", body: `{"KEY_TEMP":10}`},
		{name: "unknown keys ignored", body: `{"KEY_OTHER":"x","KEY_ICON":"rain"}`},
		{name: "not json", body: `hello`, err: ErrMalformed},
		{name: "wrong type", body: `{"KEY_TEMP":"hot","KEY_ICON":"01d"}`, err: ErrMalformed},
		{name: "bad flag", body: `{"KEY_INVERT_COLORS":"yes"}`, err: ErrMalformed},
		{name: "empty", body: ``, err: ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Decode(strings.NewReader(tt.body), DefaultInboxSize)
			if tt.err != nil {
				require.Error(t, err)
				assert.Equal(t, tt.err, pkgerrors.Cause(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.weather, msg.HasWeather())
			if tt.invert == nil {
				assert.Nil(t, msg.InvertColors)
			} else {
				require.NotNil(t, msg.InvertColors)
				assert.Equal(t, *tt.invert, msg.InvertColors.Enabled())
			}
		})
	}
}

func TestDecode_Overflow(t *testing.T) {
	body := `{"KEY_ICON":"` + strings.Repeat("x", 200) + `"}`
	_, err := Decode(strings.NewReader(body), DefaultInboxSize)
	assert.Equal(t, ErrInboxOverflow, err)

	_, err = Decode(strings.NewReader(body), 1024)
	assert.NoError(t, err)
}

func TestDecode_Values(t *testing.T) {
	msg, err := Decode(strings.NewReader(`{"KEY_TEMP":72,"KEY_ICON":"01d"}`), 0)
	require.NoError(t, err)
	assert.Equal(t, 72, *msg.Temperature)
	assert.Equal(t, "01d", *msg.Icon)
}

func TestFlag_OnlyOneEnables(t *testing.T) {
	assert.True(t, Flag(1).Enabled())
	assert.False(t, Flag(0).Enabled())
	assert.False(t, Flag(2).Enabled())
	assert.True(t, FlagPtr(true).Enabled())
	assert.False(t, FlagPtr(false).Enabled())
}

func TestNewWeatherRequest(t *testing.T) {
	a := NewWeatherRequest()
	b := NewWeatherRequest()
	assert.Equal(t, map[string]int{"0": 0}, a.Payload)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestHTTPOutbox_Deliver(t *testing.T) {
	var gotBody map[string]int
	var gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Message-Id")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	req := NewWeatherRequest()
	require.NoError(t, NewHTTPOutbox(srv.URL, time.Second).Deliver(context.Background(), req))
	assert.Equal(t, req.ID, gotID)
	assert.Equal(t, map[string]int{"0": 0}, gotBody)
}

func TestHTTPOutbox_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "phone asleep", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := NewHTTPOutbox(srv.URL, time.Second).Deliver(context.Background(), NewWeatherRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "phone asleep")

	err = NewHTTPOutbox("", 0).Deliver(context.Background(), NewWeatherRequest())
	assert.Equal(t, ErrNoOutbox, err)
}

func TestAsyncOutbox_ReportsResults(t *testing.T) {
	rec := &RecordingOutbox{}
	var mu sync.Mutex
	var sent []Request
	var failed []error
	out := NewAsyncOutbox(rec,
		func(r Request) { mu.Lock(); sent = append(sent, r); mu.Unlock() },
		func(r Request, err error) { mu.Lock(); failed = append(failed, err); mu.Unlock() },
	)

	req := NewWeatherRequest()
	require.NoError(t, out.Send(req))
	out.Close()
	assert.Equal(t, []Request{req}, sent)
	assert.Empty(t, failed)
	assert.Len(t, rec.Requests(), 1)

	assert.Error(t, out.Send(NewWeatherRequest()))
}

func TestAsyncOutbox_Failure(t *testing.T) {
	boom := pkgerrors.New("boom")
	rec := &RecordingOutbox{Err: boom}
	done := make(chan error, 1)
	out := NewAsyncOutbox(rec, nil, func(r Request, err error) { done <- err })
	require.NoError(t, out.Send(NewWeatherRequest()))

	select {
	case err := <-done:
		assert.Equal(t, boom, err)
	case <-time.After(time.Second):
		t.Fatal("no failure reported")
	}
	out.Close()
}

func TestAsyncOutbox_SendDuringClose(t *testing.T) {
	rec := &RecordingOutbox{}
	out := NewAsyncOutbox(rec, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = out.Send(NewWeatherRequest())
		}()
	}
	out.Close()
	wg.Wait()

	n := len(rec.Requests())
	assert.Error(t, out.Send(NewWeatherRequest()))
	assert.Equal(t, n, len(rec.Requests()))
}

func TestAsyncOutbox_NoDeliverer(t *testing.T) {
	out := NewAsyncOutbox(nil, nil, nil)
	assert.Equal(t, ErrNoOutbox, out.Send(NewWeatherRequest()))
}

func boolPtr(v bool) *bool { return &v }
