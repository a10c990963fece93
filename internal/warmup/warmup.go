// Package warmup keeps Lambda containers warm so the first directive after
// a quiet period does not pay for a cold start. An EventBridge schedule
// sends {"source": "warmup", "concurrency": N}.
package warmup

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

const (
	// Source identifies warmup events.
	Source = "warmup"

	// Delay keeps this instance busy long enough for the copies to land on
	// other containers.
	Delay = 75 * time.Millisecond

	// MaxConcurrency caps the copies a single warmup event may start.
	MaxConcurrency = 50
)

// Event is the scheduled warmup payload.
type Event struct {
	Source      string `json:"source"`
	Concurrency int    `json:"concurrency"`
}

// Response is returned to the scheduler.
type Response struct {
	StatusCode int  `json:"statusCode"`
	Body       Body `json:"body"`
}

// Body summarises a warmup run.
type Body struct {
	Status          string `json:"status"`
	InstancesWarmed int    `json:"instancesWarmed"`
}

// Invoker is the subset of the Lambda client used for self-invocation.
type Invoker interface {
	Invoke(ctx context.Context, params *lambdasdk.InvokeInput, optFns ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error)
}

// Parse reports whether event is a warmup event. Directives never carry a
// top-level "source" field.
func Parse(event json.RawMessage) (*Event, bool) {
	var probe struct {
		Source      *string  `json:"source"`
		Concurrency *float64 `json:"concurrency"`
	}
	if err := json.Unmarshal(event, &probe); err != nil {
		return nil, false
	}
	if probe.Source == nil || *probe.Source != Source {
		return nil, false
	}

	ev := &Event{Source: Source}
	if c := probe.Concurrency; c != nil && *c > 0 {
		// Compare as float so huge values never reach the int conversion.
		if *c >= MaxConcurrency {
			ev.Concurrency = MaxConcurrency
		} else {
			ev.Concurrency = int(*c)
		}
	}
	return ev, true
}

// Warmer answers warmup events, fanning out to extra containers on request.
type Warmer struct {
	// NewInvoker is called lazily, only when copies must be started.
	NewInvoker   func(ctx context.Context) (Invoker, error)
	FunctionName string
	Delay        time.Duration
}

// Handle processes a warmup event. Fan-out failures are reported in the
// error but still produce a response counting this instance and every copy
// that was started.
func (w *Warmer) Handle(ctx context.Context, ev *Event) (*Response, error) {
	warmed := 1

	var err error
	if count := min(ev.Concurrency, MaxConcurrency); count > 0 {
		var started int
		started, err = w.selfInvoke(ctx, count)
		warmed += started
	}

	time.Sleep(w.Delay)

	return &Response{
		StatusCode: 200,
		Body: Body{
			Status:          "warm",
			InstancesWarmed: warmed,
		},
	}, err
}

// selfInvoke starts count asynchronous copies of this function and returns
// how many were accepted. Copies are sent with concurrency 0 so they do not
// fan out again.
func (w *Warmer) selfInvoke(ctx context.Context, count int) (int, error) {
	if w.NewInvoker == nil || w.FunctionName == "" {
		return 0, fmt.Errorf("self-invocation is not configured")
	}

	client, err := w.NewInvoker(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to create lambda client: %w", err)
	}

	payload, err := json.Marshal(Event{Source: Source})
	if err != nil {
		return 0, err
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		started   int
		invokeErr error
	)
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := client.Invoke(ctx, &lambdasdk.InvokeInput{
				FunctionName:   aws.String(w.FunctionName),
				InvocationType: types.InvocationTypeEvent,
				Payload:        payload,
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if invokeErr == nil {
					invokeErr = fmt.Errorf("failed to invoke %s: %w", w.FunctionName, err)
				}
				return
			}
			started++
		}()
	}

	wg.Wait()
	return started, invokeErr
}
