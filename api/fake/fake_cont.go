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

package fake

import (
	"github.com/tsgo/tsgo/api"
)

// ****************** continuation start ******************//

func (h *Host) MutexCreate() api.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("mutex_create")
	return api.Mutex(h.id())
}

func (h *Host) ContCreate(kind api.ContKind, mutex api.Mutex) api.Cont {
	h.mu.Lock()
	defer h.mu.Unlock()
	contp := api.Cont(h.id())
	h.conts[contp] = &contEntry{kind: kind, mutex: mutex}
	h.record("cont_create %s", kind)
	return contp
}

func (h *Host) ContDataSet(contp api.Cont, data uintptr) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if e, ok := h.conts[contp]; ok && !e.destroyed {
		e.data = data
	}
}

func (h *Host) ContDataGet(contp api.Cont) uintptr {
	h.mu.Lock()
	defer h.mu.Unlock()
	if e, ok := h.conts[contp]; ok && !e.destroyed {
		return e.data
	}
	return 0
}

func (h *Host) ContDestroy(contp api.Cont) {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.conts[contp]
	if !ok || e.destroyed {
		h.DoubleDestroys++
		return
	}
	e.destroyed = true
	h.record("cont_destroy")
}

// LiveConts reports continuations created and not destroyed.
func (h *Host) LiveConts() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, e := range h.conts {
		if !e.destroyed {
			n++
		}
	}
	return n
}

// Invocations reports how often contp was invoked.
func (h *Host) Invocations(contp api.Cont) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if e, ok := h.conts[contp]; ok {
		return e.invocations
	}
	return 0
}

// Fire invokes contp through the installed trampoline. Like the real host it
// refuses to call a destroyed continuation.
func (h *Host) Fire(contp api.Cont, event api.Event, edata api.EventData) (api.ReturnCode, error) {
	h.mu.Lock()
	e, ok := h.conts[contp]
	if !ok || e.destroyed {
		h.mu.Unlock()
		return api.ReturnError, ErrContinuationGone
	}
	e.invocations++
	kind := e.kind
	h.record("cont_invoke %s", event)
	h.mu.Unlock()

	fn := api.Trampoline(kind)
	if fn == nil {
		return api.ReturnError, ErrContinuationGone
	}
	return fn(contp, event, edata), nil
}

//******************* continuation end *******************//

// ****************** cache start ******************//

// SetCacheOutcome decides what the next CacheRead calls do.
func (h *Host) SetCacheOutcome(o CacheOutcome) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cacheOutcome = o
}

// NewVConn registers an open cache connection whose object has size bytes.
func (h *Host) NewVConn(size int64) api.VConn {
	h.mu.Lock()
	defer h.mu.Unlock()
	vconn := api.VConn(h.id())
	h.vconns[vconn] = size
	return vconn
}

func (h *Host) CacheKeyCreate() api.CacheKey {
	h.mu.Lock()
	defer h.mu.Unlock()
	key := api.CacheKey(h.id())
	h.keys[key] = nil
	h.record("cache_key_create")
	return key
}

func (h *Host) CacheKeyDigestSet(key api.CacheKey, digest []byte) api.ReturnCode {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.keys[key]; !ok {
		return api.ReturnError
	}
	h.keys[key] = append([]byte(nil), digest...)
	h.record("cache_key_digest %s", digest)
	return api.ReturnSuccess
}

func (h *Host) CacheKeyDestroy(key api.CacheKey) api.ReturnCode {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.keys[key]; !ok {
		h.DoubleDestroys++
		return api.ReturnError
	}
	delete(h.keys, key)
	h.record("cache_key_destroy")
	return api.ReturnSuccess
}

func (h *Host) CacheRead(contp api.Cont, key api.CacheKey) {
	h.mu.Lock()
	o := h.cacheOutcome
	h.record("cache_read %s", h.keys[key])
	if o.Defer {
		h.pending = append(h.pending, contp)
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	if o.Drop {
		api.AbandonCont(contp)
		return
	}
	_, _ = h.Fire(contp, o.Event, o.Data)
}

// FirePending completes deferred cache reads with the current outcome.
func (h *Host) FirePending() {
	h.mu.Lock()
	pending := h.pending
	h.pending = nil
	o := h.cacheOutcome
	h.mu.Unlock()

	for _, contp := range pending {
		if o.Drop {
			api.AbandonCont(contp)
			continue
		}
		_, _ = h.Fire(contp, o.Event, o.Data)
	}
}

// PendingReads reports deferred cache reads.
func (h *Host) PendingReads() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pending)
}

func (h *Host) IOBufferCreate() api.IOBuffer {
	h.mu.Lock()
	defer h.mu.Unlock()
	buf := api.IOBuffer(h.id())
	h.iobufs[buf] = true
	h.record("iobuffer_create")
	return buf
}

func (h *Host) IOBufferDestroy(buf api.IOBuffer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.iobufs[buf] {
		h.DoubleDestroys++
		return
	}
	delete(h.iobufs, buf)
	h.record("iobuffer_destroy")
}

func (h *Host) VConnCacheObjectSizeGet(vconn api.VConn) int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.vconns[vconn]
}

func (h *Host) VConnClose(vconn api.VConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.vconns[vconn]; !ok {
		h.DoubleDestroys++
		return
	}
	delete(h.vconns, vconn)
	h.record("vconn_close")
}

// OpenVConns reports cache connections not yet closed.
func (h *Host) OpenVConns() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.vconns)
}

//******************* cache end *******************//
