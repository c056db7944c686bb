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

package api

import "sync/atomic"

// ContKind selects the trampoline a continuation is created with.
type ContKind int

const (
	// ContOnce continuations are invoked at most once and release themselves.
	ContOnce ContKind = iota
	// ContRecurring continuations live until explicitly freed.
	ContRecurring
)

func (k ContKind) String() string {
	switch k {
	case ContOnce:
		return "once"
	case ContRecurring:
		return "recurring"
	}
	return "unknown"
}

// EventFunc is the Go side of a host continuation callback.
type EventFunc func(contp Cont, event Event, edata EventData) ReturnCode

// ContinuationHooks are the Go entry points the host binding forwards
// continuation callbacks to.
type ContinuationHooks struct {
	Once      EventFunc
	Recurring EventFunc
	// Abandon reclaims a one-shot continuation that will never be invoked.
	Abandon func(contp Cont)
}

var contHooks atomic.Pointer[ContinuationHooks]

// SetContinuationHooks is called once by the continuation package at init.
func SetContinuationHooks(h ContinuationHooks) {
	contHooks.Store(&h)
}

// Trampoline returns the callback for kind, or nil when none is installed.
func Trampoline(kind ContKind) EventFunc {
	h := contHooks.Load()
	if h == nil {
		return nil
	}
	switch kind {
	case ContOnce:
		return h.Once
	case ContRecurring:
		return h.Recurring
	}
	return nil
}

// AbandonCont forwards to the installed Abandon hook.
func AbandonCont(contp Cont) {
	if h := contHooks.Load(); h != nil && h.Abandon != nil {
		h.Abandon(contp)
	}
}
