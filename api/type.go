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

import "net/http"

// ****************** handles start ******************//

// Opaque handles owned by the host. Values are copied from the host's C
// pointers; the zero value is the host's null.
type (
	// MBuffer is a host marshal buffer holding a request, response or URL.
	MBuffer uintptr
	// MLoc identifies an object inside an MBuffer. It is only meaningful
	// together with the MBuffer that produced it.
	MLoc uintptr
	// Cont is a host continuation: a callback plus an opaque data word.
	Cont uintptr
	// HttpTxn is one HTTP transaction.
	HttpTxn uintptr
	// VConn is a host virtual connection, e.g. an open cache entry.
	VConn uintptr
	// IOBuffer is a host I/O buffer.
	IOBuffer uintptr
	// CacheKey is a host cache key.
	CacheKey uintptr
	// Mutex is a host mutex handed to continuations.
	Mutex uintptr
	// RemapInfo points to the host's per-request remap information.
	RemapInfo uintptr
	// EventData is the untyped payload delivered with an event. Depending on
	// the event it carries a handle (VConn, HttpTxn) or a signed status code.
	EventData uintptr
)

const (
	NullMLoc MLoc = 0
	NullCont Cont = 0
)

//******************* handles end *******************//

// ****************** return code start ******************//

// ReturnCode is the host's own success/error convention.
type ReturnCode int

const (
	ReturnSuccess ReturnCode = 0
	ReturnError   ReturnCode = -1
)

func (r ReturnCode) OK() bool {
	return r == ReturnSuccess
}

func (r ReturnCode) String() string {
	if r == ReturnSuccess {
		return "success"
	}
	return "error"
}

//******************* return code end *******************//

// ****************** event start ******************//

// Event is the host event code delivered to continuations.
// refer https://github.com/apache/trafficserver/blob/master/include/ts/apidefs.h.in
type Event int

const (
	EventNone      Event = 0
	EventImmediate Event = 1
	EventTimeout   Event = 2
	EventError     Event = 3
	EventContinue  Event = 4

	EventCacheOpenRead        Event = 1102
	EventCacheOpenReadFailed  Event = 1103
	EventCacheOpenWrite       Event = 1108
	EventCacheOpenWriteFailed Event = 1109

	EventHttpContinue            Event = 60000
	EventHttpError               Event = 60001
	EventHttpReadRequestHdr      Event = 60002
	EventHttpOSDNS               Event = 60003
	EventHttpSendRequestHdr      Event = 60004
	EventHttpReadCacheHdr        Event = 60005
	EventHttpReadResponseHdr     Event = 60006
	EventHttpSendResponseHdr     Event = 60007
	EventHttpRequestTransform    Event = 60008
	EventHttpResponseTransform   Event = 60009
	EventHttpSelectAlt           Event = 60010
	EventHttpTxnStart            Event = 60011
	EventHttpTxnClose            Event = 60012
	EventHttpSsnStart            Event = 60013
	EventHttpSsnClose            Event = 60014
	EventHttpCacheLookupComplete Event = 60015
	EventHttpPreRemap            Event = 60016
	EventHttpPostRemap           Event = 60017
)

func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventImmediate:
		return "immediate"
	case EventTimeout:
		return "timeout"
	case EventError:
		return "error"
	case EventContinue:
		return "continue"
	case EventCacheOpenRead:
		return "cache_open_read"
	case EventCacheOpenReadFailed:
		return "cache_open_read_failed"
	case EventCacheOpenWrite:
		return "cache_open_write"
	case EventCacheOpenWriteFailed:
		return "cache_open_write_failed"
	case EventHttpContinue:
		return "http_continue"
	case EventHttpError:
		return "http_error"
	}
	if e >= EventHttpReadRequestHdr && e <= EventHttpPostRemap {
		return "http_" + HookID(e-EventHttpReadRequestHdr).String()
	}
	return "unknown"
}

//******************* event end *******************//

// ****************** hook start ******************//

// HookID identifies a point in transaction processing at which the host calls
// plugin code.
type HookID int

const (
	HookReadRequestHdr      HookID = 0
	HookOSDNS               HookID = 1
	HookSendRequestHdr      HookID = 2
	HookReadCacheHdr        HookID = 3
	HookReadResponseHdr     HookID = 4
	HookSendResponseHdr     HookID = 5
	HookRequestTransform    HookID = 6
	HookResponseTransform   HookID = 7
	HookSelectAlt           HookID = 8
	HookTxnStart            HookID = 9
	HookTxnClose            HookID = 10
	HookSsnStart            HookID = 11
	HookSsnClose            HookID = 12
	HookCacheLookupComplete HookID = 13
	HookPreRemap            HookID = 14
	HookPostRemap           HookID = 15

	// HookRemap is the remap plugin entry point. It is not a host hook and
	// can not be registered with HttpHookAdd.
	HookRemap HookID = -1
)

// Registrable reports whether the hook can be passed to HttpHookAdd.
func (h HookID) Registrable() bool {
	return h >= HookReadRequestHdr && h <= HookPostRemap
}

// Event returns the event the host delivers when the hook fires.
func (h HookID) Event() Event {
	if !h.Registrable() {
		return EventNone
	}
	return EventHttpReadRequestHdr + Event(h)
}

func (h HookID) String() string {
	switch h {
	case HookReadRequestHdr:
		return "read_request_hdr"
	case HookOSDNS:
		return "os_dns"
	case HookSendRequestHdr:
		return "send_request_hdr"
	case HookReadCacheHdr:
		return "read_cache_hdr"
	case HookReadResponseHdr:
		return "read_response_hdr"
	case HookSendResponseHdr:
		return "send_response_hdr"
	case HookRequestTransform:
		return "request_transform"
	case HookResponseTransform:
		return "response_transform"
	case HookSelectAlt:
		return "select_alt"
	case HookTxnStart:
		return "txn_start"
	case HookTxnClose:
		return "txn_close"
	case HookSsnStart:
		return "ssn_start"
	case HookSsnClose:
		return "ssn_close"
	case HookCacheLookupComplete:
		return "cache_lookup_complete"
	case HookPreRemap:
		return "pre_remap"
	case HookPostRemap:
		return "post_remap"
	case HookRemap:
		return "remap"
	}
	return "unknown"
}

//******************* hook end *******************//

// ****************** http message start ******************//

// HttpMessage selects which of the transaction's marshaled messages to fetch.
type HttpMessage int

const (
	ClientRequest HttpMessage = iota
	ServerRequest
	ServerResponse
	ClientResponse
)

func (m HttpMessage) String() string {
	switch m {
	case ClientRequest:
		return "client request"
	case ServerRequest:
		return "server request"
	case ServerResponse:
		return "server response"
	case ClientResponse:
		return "client response"
	}
	return "unknown message"
}

// HttpStatus is a response status code as reported by the host.
type HttpStatus int

const HttpStatusNone HttpStatus = 0

func (s HttpStatus) String() string {
	return http.StatusText(int(s))
}

// URLField selects a string component of a URL.
type URLField int

const (
	URLScheme URLField = iota
	URLUser
	URLPassword
	URLHost
	URLPath
	URLQuery
	URLParams
	URLFragment
)

func (f URLField) String() string {
	switch f {
	case URLScheme:
		return "scheme"
	case URLUser:
		return "user"
	case URLPassword:
		return "password"
	case URLHost:
		return "host"
	case URLPath:
		return "path"
	case URLQuery:
		return "query"
	case URLParams:
		return "params"
	case URLFragment:
		return "fragment"
	}
	return "unknown"
}

//******************* http message end *******************//

// ****************** remap start ******************//

// RemapStatus is returned to the host from a remap plugin.
type RemapStatus int

const (
	RemapNo         RemapStatus = 0
	RemapDid        RemapStatus = 1
	RemapNoStop     RemapStatus = 2
	RemapDidStop    RemapStatus = 3
	RemapError      RemapStatus = -1
	remapStatusLast             = RemapDidStop
)

func (s RemapStatus) Valid() bool {
	return s == RemapError || (s >= RemapNo && s <= remapStatusLast)
}

// RemapRequest mirrors the host's per-request remap information.
type RemapRequest struct {
	RequestBuf MBuffer
	RequestHdr MLoc
	MapFromURL MLoc
	MapToURL   MLoc
	RequestURL MLoc
	Redirect   bool
}

//******************* remap end *******************//

// CRUUIDLen is the size of the buffer the host fills with the client request UUID.
const CRUUIDLen = 58
