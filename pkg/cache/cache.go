/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package cache reads objects from the host cache, suspending the calling
// goroutine until the host reports the outcome.
package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tsgo/tsgo/api"
	"github.com/tsgo/tsgo/pkg/continuation"
)

const tracerName = "github.com/tsgo/tsgo/pkg/cache"

var (
	ErrOpenReadFailed  = errors.New("cache open read failed")
	ErrUnexpectedEvent = errors.New("unexpected cache event")
	// ErrChannelClosed is returned when the host dropped the read without
	// ever reporting an outcome.
	ErrChannelClosed = errors.New("cache read abandoned by host")
)

// OpenFailedError carries the host's failure code, usually a negated
// cache errno such as ECACHE_NO_DOC.
type OpenFailedError struct {
	Code int
}

func (e *OpenFailedError) Error() string {
	return fmt.Sprintf("%s: code %d", ErrOpenReadFailed, e.Code)
}

func (e *OpenFailedError) Unwrap() error {
	return ErrOpenReadFailed
}

var defaultTimeout atomic.Int64

// SetDefaultTimeout bounds reads whose context carries no deadline. Zero
// or less disables the bound.
func SetDefaultTimeout(d time.Duration) {
	defaultTimeout.Store(int64(d))
}

func DefaultTimeout() time.Duration {
	return time.Duration(defaultTimeout.Load())
}

type result struct {
	obj *Object
	err error
}

// waiter hands the single result from the host thread to the reader. Once the
// reader gave up, a late object is closed instead of delivered.
type waiter struct {
	ch chan result

	mu   sync.Mutex
	gone bool
}

func (w *waiter) deliver(r result) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gone {
		if r.obj != nil {
			r.obj.Close()
		}
		return
	}
	w.ch <- r
}

func (w *waiter) abandon() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.gone {
		close(w.ch)
	}
}

func (w *waiter) giveUp() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.gone = true
	select {
	case r, ok := <-w.ch:
		if ok && r.obj != nil {
			r.obj.Close()
		}
	default:
	}
}

func (w *waiter) handle(event api.Event, edata api.EventData) error {
	switch event {
	case api.EventCacheOpenRead:
		w.deliver(result{obj: newObject(api.VConn(edata))})
	case api.EventCacheOpenReadFailed:
		w.deliver(result{err: &OpenFailedError{Code: int(edata)}})
	default:
		err := errors.Wrapf(ErrUnexpectedEvent, "event %s", event)
		w.deliver(result{err: err})
		return err
	}
	return nil
}

// Read looks key up in the host cache. On a hit the returned Object must be
// closed by the caller. A miss is reported as *OpenFailedError.
func Read(ctx context.Context, key []byte) (obj *Object, err error) {
	ctx, span := otel.GetTracerProvider().Tracer(tracerName).Start(ctx, "cache.Read",
		trace.WithAttributes(attribute.Int("tsgo.cache.key_size", len(key))))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Int64("tsgo.cache.object_size", obj.Size()))
		}
		span.End()
	}()

	if _, ok := ctx.Deadline(); !ok {
		if d := DefaultTimeout(); d > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}
	}

	cAPI := api.GetCAPI()
	ck := cAPI.CacheKeyCreate()
	defer cAPI.CacheKeyDestroy(ck)

	if rc := cAPI.CacheKeyDigestSet(ck, key); !rc.OK() {
		return nil, errors.Wrap(api.ErrHostCallFailed, "set cache key digest")
	}

	w := &waiter{ch: make(chan result, 1)}
	contp := continuation.NewOnce(w.handle, continuation.WithOnAbandon(w.abandon))
	cAPI.CacheRead(contp, ck)

	select {
	case r, ok := <-w.ch:
		if !ok {
			return nil, ErrChannelClosed
		}
		return r.obj, r.err
	case <-ctx.Done():
		w.giveUp()
		return nil, errors.Wrap(ctx.Err(), "waiting for cache read")
	}
}
