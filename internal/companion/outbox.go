package companion

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
)

const DefaultOutboxTimeout = 10 * time.Second

var ErrNoOutbox = pkgerrors.New("no companion outbox configured")

// Deliverer pushes one request to the companion and waits for the result.
type Deliverer interface {
	Deliver(ctx context.Context, req Request) error
}

// HTTPOutbox posts requests as JSON to the companion's URL.
type HTTPOutbox struct {
	URL    string
	client *http.Client
}

func NewHTTPOutbox(url string, timeout time.Duration) *HTTPOutbox {
	if timeout <= 0 {
		timeout = DefaultOutboxTimeout
	}
	return &HTTPOutbox{URL: url, client: &http.Client{Timeout: timeout}}
}

func (o *HTTPOutbox) Deliver(ctx context.Context, req Request) error {
	if o.URL == "" {
		return ErrNoOutbox
	}
	body, err := json.Marshal(req.Payload)
	if err != nil {
		return pkgerrors.Wrap(err, "encode outbound message")
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.URL, bytes.NewReader(body))
	if err != nil {
		return pkgerrors.Wrap(err, "build outbound request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Message-Id", req.ID)

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrapf(err, "post to %s", o.URL)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return pkgerrors.Errorf("companion answered %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// AsyncOutbox sends requests in the background and reports each result
// through OnSent or OnFailed. Send never blocks on the network.
type AsyncOutbox struct {
	Deliverer Deliverer
	Timeout   time.Duration
	OnSent    func(req Request)
	OnFailed  func(req Request, err error)

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	wg     sync.WaitGroup
}

func NewAsyncOutbox(d Deliverer, onSent func(Request), onFailed func(Request, error)) *AsyncOutbox {
	ctx, cancel := context.WithCancel(context.Background())
	return &AsyncOutbox{
		Deliverer: d,
		Timeout:   DefaultOutboxTimeout,
		OnSent:    onSent,
		OnFailed:  onFailed,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (o *AsyncOutbox) Send(req Request) error {
	if o.Deliverer == nil {
		return ErrNoOutbox
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultOutboxTimeout
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.ctx.Err() != nil {
		return pkgerrors.Wrap(o.ctx.Err(), "outbox closed")
	}
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ctx, cancel := context.WithTimeout(o.ctx, timeout)
		defer cancel()
		if err := o.Deliverer.Deliver(ctx, req); err != nil {
			if o.OnFailed != nil {
				o.OnFailed(req, err)
			}
			return
		}
		if o.OnSent != nil {
			o.OnSent(req)
		}
	}()
	return nil
}

// Close cancels in-flight sends and waits for them to report.
func (o *AsyncOutbox) Close() {
	o.mu.Lock()
	o.cancel()
	o.mu.Unlock()
	o.wg.Wait()
}

// RecordingOutbox keeps every delivered request. Err, when set, fails each delivery.
type RecordingOutbox struct {
	mu       sync.Mutex
	requests []Request
	Err      error
}

func (o *RecordingOutbox) Deliver(ctx context.Context, req Request) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.requests = append(o.requests, req)
	return o.Err
}

// Send records synchronously, for callers that want the Send shape without goroutines.
func (o *RecordingOutbox) Send(req Request) error {
	return o.Deliver(context.Background(), req)
}

func (o *RecordingOutbox) Requests() []Request {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Request(nil), o.requests...)
}
