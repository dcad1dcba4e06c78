package service

import (
	"sync"

	roaring "github.com/RoaringBitmap/roaring/roaring64"
	"github.com/op/go-logging"

	"merchant-insights/analytics"
	mw "merchant-insights/middleware"
	"merchant-insights/queries"
)

var log = logging.MustGetLogger("log")

// WorkerOptions carries per-deployment defaults applied to requests that
// omit the corresponding parameter.
type WorkerOptions struct {
	Currency           string
	TrendWindowDays    int
	StockThresholdDays float64
}

// QueryWorker consumes query requests, runs them against a shared read-only
// analyzer, and publishes responses. Redelivered requests are detected by
// their sequence number and acked without rerunning the operation.
type QueryWorker struct {
	analyzer *analytics.Analyzer
	input    mw.MessageMiddleware
	output   mw.MessageMiddleware
	opts     WorkerOptions

	processed *roaring.Bitmap
	mu        sync.Mutex

	callback  mw.OnMessageCallback
	closeChan chan struct{}
	closeOnce sync.Once
}

func NewQueryWorker(analyzer *analytics.Analyzer, input, output mw.MessageMiddleware, opts WorkerOptions) *QueryWorker {
	w := &QueryWorker{
		analyzer:  analyzer,
		input:     input,
		output:    output,
		opts:      opts,
		processed: roaring.New(),
		closeChan: make(chan struct{}),
	}
	w.callback = w.messageCallback()
	return w
}

func (w *QueryWorker) Start() {
	if err := w.input.StartConsuming(w.callback); err != nil {
		w.Close()
		log.Fatalf("Failed to start consuming query requests: %v", err)
	}
	<-w.closeChan
}

func (w *QueryWorker) Close() {
	w.closeOnce.Do(func() {
		if err := w.input.Close(); err != nil {
			log.Errorf("Failed to close input: %v", err)
		}
		if err := w.output.Close(); err != nil {
			log.Errorf("Failed to close output: %v", err)
		}
		close(w.closeChan)
	})
}

func (w *QueryWorker) messageCallback() mw.OnMessageCallback {
	return func(msg mw.MiddlewareMessage, done chan *mw.MessageMiddlewareError) {
		defer func() { done <- nil }() // malformed or duplicate messages are acked, not requeued

		req, err := queries.RequestFromBytes(msg.Body)
		if err != nil {
			log.Errorf("Failed to parse query request: %v", err)
			return
		}

		if w.alreadyProcessed(req.Seq) {
			log.Debugf("Skipping duplicate request %s (seq %d)", req.RequestID, req.Seq)
			return
		}

		if req.WindowDays <= 0 {
			req.WindowDays = w.opts.TrendWindowDays
		}
		if req.ThresholdDay <= 0 {
			req.ThresholdDay = w.opts.StockThresholdDays
		}

		log.Infof("Running %s for request %s", req.Op, req.RequestID)
		resp := Dispatch(w.analyzer, req, w.opts.Currency)

		data, err := resp.Marshal()
		if err != nil {
			log.Errorf("Failed to marshal response for request %s: %v", req.RequestID, err)
			return
		}
		if err := w.output.Send(data); err != nil {
			log.Errorf("Failed to send response for request %s: %v", req.RequestID, err)
			return
		}
		w.markProcessed(req.Seq)
	}
}

func (w *QueryWorker) alreadyProcessed(seq uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.processed.Contains(seq)
}

func (w *QueryWorker) markProcessed(seq uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.processed.Add(seq)
}
