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

//go:generate mockgen -source=capi.go -destination=mocks/mock_capi.go -package=mocks -exclude_interfaces=MimeCAPI,URLCAPI,HttpCAPI,CAPI

package api

import "unsafe"

// String getters follow the host convention: the returned pointer addresses
// length bytes of host memory, or is nil on failure.

type ContinuationCAPI interface {
	MutexCreate() Mutex
	// ContCreate creates a continuation whose callback is the trampoline
	// registered for kind with SetContinuationHooks.
	ContCreate(kind ContKind, mutex Mutex) Cont
	ContDataSet(contp Cont, data uintptr)
	ContDataGet(contp Cont) uintptr
	ContDestroy(contp Cont)
}

type CacheCAPI interface {
	CacheKeyCreate() CacheKey
	CacheKeyDigestSet(key CacheKey, digest []byte) ReturnCode
	CacheKeyDestroy(key CacheKey) ReturnCode
	// CacheRead submits an open-for-read. The outcome is delivered to contp
	// with EventCacheOpenRead or EventCacheOpenReadFailed.
	CacheRead(contp Cont, key CacheKey)

	IOBufferCreate() IOBuffer
	IOBufferDestroy(buf IOBuffer)
	VConnCacheObjectSizeGet(vconn VConn) int64
	VConnClose(vconn VConn)
}

type MimeCAPI interface {
	MimeHdrFieldsCount(bufp MBuffer, hdr MLoc) int
	// MimeHdrFieldGet returns NullMLoc when idx is out of range. A non-null
	// result must be released with HandleMLocRelease.
	MimeHdrFieldGet(bufp MBuffer, hdr MLoc, idx int) MLoc
	MimeHdrFieldFind(bufp MBuffer, hdr MLoc, name string) MLoc
	MimeHdrFieldNameGet(bufp MBuffer, hdr MLoc, field MLoc, length *int32) unsafe.Pointer
	MimeHdrFieldValuesCount(bufp MBuffer, hdr MLoc, field MLoc) int
	MimeHdrFieldValueStringGet(bufp MBuffer, hdr MLoc, field MLoc, idx int, length *int32) unsafe.Pointer

	MimeHdrFieldCreateNamed(bufp MBuffer, hdr MLoc, name string) (MLoc, ReturnCode)
	MimeHdrFieldAppend(bufp MBuffer, hdr MLoc, field MLoc) ReturnCode
	MimeHdrFieldDestroy(bufp MBuffer, hdr MLoc, field MLoc) ReturnCode
	MimeHdrFieldValuesClear(bufp MBuffer, hdr MLoc, field MLoc) ReturnCode
	// idx -1 appends.
	MimeHdrFieldValueStringInsert(bufp MBuffer, hdr MLoc, field MLoc, idx int, value string) ReturnCode

	HandleMLocRelease(bufp MBuffer, parent MLoc, mloc MLoc) ReturnCode
}

type URLCAPI interface {
	UrlGet(bufp MBuffer, loc MLoc, field URLField, length *int32) unsafe.Pointer
	UrlSet(bufp MBuffer, loc MLoc, field URLField, value string) ReturnCode
	UrlPortGet(bufp MBuffer, loc MLoc) int
	UrlPortSet(bufp MBuffer, loc MLoc, port int) ReturnCode
	// UrlStringGet returns memory allocated by the host, release it with Free.
	UrlStringGet(bufp MBuffer, loc MLoc, length *int32) unsafe.Pointer
}

type HttpCAPI interface {
	HttpHdrMethodGet(bufp MBuffer, hdr MLoc, length *int32) unsafe.Pointer
	HttpHdrHostGet(bufp MBuffer, hdr MLoc, length *int32) unsafe.Pointer
	HttpHdrReasonGet(bufp MBuffer, hdr MLoc, length *int32) unsafe.Pointer
	HttpHdrStatusGet(bufp MBuffer, hdr MLoc) HttpStatus
	HttpHdrUrlGet(bufp MBuffer, hdr MLoc) (MLoc, ReturnCode)

	HttpTxnMessageGet(txnp HttpTxn, msg HttpMessage) (MBuffer, MLoc, ReturnCode)
	HttpTxnReenable(txnp HttpTxn, event Event)
	// ClientRequestUuidGet fills buf, which must hold CRUUIDLen bytes.
	ClientRequestUuidGet(txnp HttpTxn, buf []byte) ReturnCode

	HttpHookAdd(hook HookID, contp Cont)
	HttpTxnHookAdd(txnp HttpTxn, hook HookID, contp Cont)

	RemapRequestGet(rri RemapInfo) RemapRequest
	RemapRedirectSet(rri RemapInfo, redirect bool)
}

type LogCAPI interface {
	Debug(tag string, message string)
	Error(message string)
	// ConfigDirGet returns "" when the host has no config dir.
	ConfigDirGet() string
}

type CAPI interface {
	ContinuationCAPI
	CacheCAPI
	MimeCAPI
	URLCAPI
	HttpCAPI
	LogCAPI

	// Free releases memory the host allocated on the plugin's behalf.
	Free(ptr unsafe.Pointer)
}

var cAPI CAPI

// SetCAPI installs the host binding. The cgo implementation registers itself
// from api_impl; tests install a fake or a mock.
func SetCAPI(api CAPI) {
	cAPI = api
}

func GetCAPI() CAPI {
	return cAPI
}
