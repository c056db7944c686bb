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

package cache

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/tsgo/tsgo/api"
	"github.com/tsgo/tsgo/api/fake"
	"github.com/tsgo/tsgo/pkg/continuation"
)

func newHost(t *testing.T) *fake.Host {
	t.Helper()
	host := fake.NewHost()
	api.SetCAPI(host)
	t.Cleanup(func() { api.SetCAPI(nil) })
	return host
}

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return sr
}

func TestReadHit(t *testing.T) {
	host := newHost(t)
	sr := recordSpans(t)
	baseline := continuation.Pending()

	vconn := host.NewVConn(1024)
	host.SetCacheOutcome(fake.CacheOutcome{Event: api.EventCacheOpenRead, Data: api.EventData(vconn)})

	obj, err := Read(context.Background(), []byte("http://example.com/a"))
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.Equal(t, vconn, obj.VConn())
	assert.Equal(t, int64(1024), obj.Size())

	buf, err := obj.Buffer()
	require.NoError(t, err)
	again, err := obj.Buffer()
	require.NoError(t, err)
	assert.Equal(t, buf, again)

	obj.Close()
	obj.Close()

	_, err = obj.Buffer()
	assert.ErrorIs(t, err, ErrObjectClosed)

	assert.Equal(t, []string{
		"cache_key_create",
		"cache_key_digest http://example.com/a",
		"mutex_create",
		"cont_create once",
		"cache_read http://example.com/a",
		"cont_invoke cache_open_read",
		"cont_destroy",
		"cache_key_destroy",
		"iobuffer_create",
		"iobuffer_destroy",
		"vconn_close",
	}, host.Calls())
	assert.Equal(t, 0, host.OpenVConns())
	assert.Equal(t, 0, host.DoubleDestroys)
	assert.Equal(t, baseline, continuation.Pending())

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "cache.Read", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestReadMiss(t *testing.T) {
	host := newHost(t)
	sr := recordSpans(t)

	host.SetCacheOutcome(fake.CacheOutcome{Event: api.EventCacheOpenReadFailed, Data: 42})

	obj, err := Read(context.Background(), []byte("k"))
	assert.Nil(t, obj)
	var failed *OpenFailedError
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, 42, failed.Code)
	assert.ErrorIs(t, err, ErrOpenReadFailed)

	assert.Equal(t, 1, host.CountCalls("cache_key_destroy"))
	assert.Equal(t, 0, host.LiveConts())

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestReadNegativeFailureCode(t *testing.T) {
	host := newHost(t)
	code := -20400
	host.SetCacheOutcome(fake.CacheOutcome{Event: api.EventCacheOpenReadFailed, Data: api.EventData(code)})

	_, err := Read(context.Background(), []byte("k"))
	var failed *OpenFailedError
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, code, failed.Code)
}

func TestReadUnexpectedEvent(t *testing.T) {
	host := newHost(t)
	host.SetCacheOutcome(fake.CacheOutcome{Event: api.EventImmediate})

	_, err := Read(context.Background(), []byte("k"))
	assert.ErrorIs(t, err, ErrUnexpectedEvent)
	assert.Equal(t, 1, host.CountCalls("cache_key_destroy"))
	assert.Equal(t, 0, host.LiveConts())
}

func TestReadAbandoned(t *testing.T) {
	host := newHost(t)
	baseline := continuation.Pending()
	host.SetCacheOutcome(fake.CacheOutcome{Drop: true})

	_, err := Read(context.Background(), []byte("k"))
	assert.ErrorIs(t, err, ErrChannelClosed)
	assert.Equal(t, 1, host.CountCalls("cache_key_destroy"))
	assert.Equal(t, 0, host.LiveConts())
	assert.Equal(t, baseline, continuation.Pending())
}

func TestReadDeferred(t *testing.T) {
	host := newHost(t)
	vconn := host.NewVConn(7)
	host.SetCacheOutcome(fake.CacheOutcome{Event: api.EventCacheOpenRead, Data: api.EventData(vconn), Defer: true})

	type outcome struct {
		obj *Object
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		obj, err := Read(context.Background(), []byte("k"))
		done <- outcome{obj, err}
	}()

	require.Eventually(t, func() bool { return host.PendingReads() == 1 }, 5*time.Second, 10*time.Millisecond)
	select {
	case <-done:
		t.Fatal("read completed before the host fired")
	default:
	}

	host.FirePending()
	got := <-done
	require.NoError(t, got.err)
	assert.Equal(t, int64(7), got.obj.Size())
	got.obj.Close()
	assert.Equal(t, 0, host.OpenVConns())
}

func TestReadContextCanceled(t *testing.T) {
	host := newHost(t)
	baseline := continuation.Pending()
	vconn := host.NewVConn(7)
	host.SetCacheOutcome(fake.CacheOutcome{Event: api.EventCacheOpenRead, Data: api.EventData(vconn), Defer: true})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := Read(ctx, []byte("k"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, host.CountCalls("cache_key_destroy"))

	// the object arriving after the reader left is closed right away
	host.FirePending()
	assert.Equal(t, 0, host.OpenVConns())
	assert.Equal(t, 0, host.LiveConts())
	assert.Equal(t, baseline, continuation.Pending())
}

func TestReadDefaultTimeout(t *testing.T) {
	host := newHost(t)
	SetDefaultTimeout(20 * time.Millisecond)
	t.Cleanup(func() { SetDefaultTimeout(0) })
	assert.Equal(t, 20*time.Millisecond, DefaultTimeout())
	vconn := host.NewVConn(7)
	host.SetCacheOutcome(fake.CacheOutcome{Event: api.EventCacheOpenRead, Data: api.EventData(vconn), Defer: true})

	start := time.Now()
	_, err := Read(context.Background(), []byte("k"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)

	host.FirePending()
	assert.Equal(t, 0, host.OpenVConns())
}

func TestReadCallerDeadlineWins(t *testing.T) {
	host := newHost(t)
	SetDefaultTimeout(time.Millisecond)
	t.Cleanup(func() { SetDefaultTimeout(0) })
	vconn := host.NewVConn(7)
	host.SetCacheOutcome(fake.CacheOutcome{Event: api.EventCacheOpenRead, Data: api.EventData(vconn), Defer: true})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		obj, err := Read(ctx, []byte("k"))
		if obj != nil {
			obj.Close()
		}
		done <- err
	}()

	require.Eventually(t, func() bool { return host.PendingReads() == 1 }, 5*time.Second, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	host.FirePending()
	require.NoError(t, <-done)
	assert.Equal(t, 0, host.OpenVConns())
}

func TestObjectFinalizer(t *testing.T) {
	host := newHost(t)
	vconn := host.NewVConn(1)
	func() {
		o := newObject(vconn)
		_, _ = o.Buffer()
	}()

	require.Eventually(t, func() bool {
		runtime.GC()
		return host.OpenVConns() == 0
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, host.CountCalls("iobuffer_destroy"))
}
