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

// Package continuation turns Go functions into host continuations.
//
// A one-shot continuation runs its handler at most once and then releases both
// the handler and the host continuation, whatever the handler returned. A
// recurring continuation stays registered until Free is called.
package continuation

import (
	"runtime/debug"
	"sync/atomic"

	"github.com/tsgo/tsgo/api"
)

// Handler receives the event code and the event payload. A non-nil error is
// reported to the host as api.ReturnError.
type Handler func(event api.Event, edata api.EventData) error

type entry struct {
	handler   Handler
	onAbandon func()
}

type Option func(*entry)

// WithOnAbandon sets a function run when a one-shot continuation is abandoned
// instead of invoked.
func WithOnAbandon(fn func()) Option {
	return func(e *entry) {
		e.onAbandon = fn
	}
}

var handlers = newManager[entry]()

func init() {
	api.SetContinuationHooks(api.ContinuationHooks{
		Once:      invokeOnce,
		Recurring: invokeRecurring,
		Abandon:   Abandon,
	})
}

func create(kind api.ContKind, e *entry) api.Cont {
	cAPI := api.GetCAPI()
	id := handlers.record(e)
	// the host requires a mutex per continuation even if nothing contends
	contp := cAPI.ContCreate(kind, cAPI.MutexCreate())
	cAPI.ContDataSet(contp, id)
	return contp
}

// NewOnce creates a continuation that runs h on its first invocation and
// then destroys itself. Hand the result to exactly one host operation.
func NewOnce(h Handler, opts ...Option) api.Cont {
	e := &entry{handler: h}
	for _, opt := range opts {
		opt(e)
	}
	return create(api.ContOnce, e)
}

// Recurring is a continuation that may be invoked any number of times.
type Recurring struct {
	contp api.Cont
	freed atomic.Bool
}

// New creates a recurring continuation. Free must be called once the host no
// longer references it, otherwise the handler is leaked.
func New(h Handler) *Recurring {
	return &Recurring{contp: create(api.ContRecurring, &entry{handler: h})}
}

func (r *Recurring) Cont() api.Cont {
	return r.contp
}

// Free releases the handler and destroys the host continuation. Calls after
// the first are no-ops.
func (r *Recurring) Free() {
	if r.freed.CompareAndSwap(false, true) {
		Free(r.contp)
	}
}

// Free releases a continuation created by this package. Unknown or already
// released continuations are left alone.
func Free(contp api.Cont) {
	cAPI := api.GetCAPI()
	if handlers.take(cAPI.ContDataGet(contp)) == nil {
		return
	}
	cAPI.ContDestroy(contp)
}

// Abandon releases a one-shot continuation the host will never invoke, e.g.
// because the transaction it belonged to went away. The WithOnAbandon
// callback runs before the host continuation is destroyed.
func Abandon(contp api.Cont) {
	cAPI := api.GetCAPI()
	e := handlers.take(cAPI.ContDataGet(contp))
	if e == nil {
		return
	}
	defer cAPI.ContDestroy(contp)
	if e.onAbandon != nil {
		e.onAbandon()
	}
}

// Pending reports handlers that have not been released yet.
func Pending() int {
	return handlers.len()
}

func invokeOnce(contp api.Cont, event api.Event, edata api.EventData) api.ReturnCode {
	cAPI := api.GetCAPI()
	e := handlers.take(cAPI.ContDataGet(contp))
	if e == nil {
		// already consumed, the host continuation is gone with it
		return api.ReturnError
	}
	defer cAPI.ContDestroy(contp)
	return run(e.handler, event, edata)
}

func invokeRecurring(contp api.Cont, event api.Event, edata api.EventData) api.ReturnCode {
	e := handlers.search(api.GetCAPI().ContDataGet(contp))
	if e == nil {
		return api.ReturnError
	}
	return run(e.handler, event, edata)
}

func run(h Handler, event api.Event, edata api.EventData) (rc api.ReturnCode) {
	defer func() {
		if p := recover(); p != nil {
			api.Errorf("continuation handler panic on event %s: %v\n%s", event, p, debug.Stack())
			rc = api.ReturnError
		}
	}()
	if err := h(event, edata); err != nil {
		return api.ReturnError
	}
	return api.ReturnSuccess
}
