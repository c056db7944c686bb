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

//go:build cgo && trafficserver

package api_impl

/*
// ref https://github.com/golang/go/issues/25832

#cgo linux LDFLAGS: -Wl,-unresolved-symbols=ignore-all
#cgo darwin LDFLAGS: -Wl,-undefined,dynamic_lookup

#include <stdint.h>
#include <stdlib.h>
#include <string.h>

#include <ts/ts.h>
#include <ts/remap.h>

extern int tsgoContOnce(TSCont contp, TSEvent event, void *edata);
extern int tsgoContRecurring(TSCont contp, TSEvent event, void *edata);

// TSDebug and TSError are variadic, cgo can not call them directly.
static void tsgo_debug(const char *tag, const char *msg) {
	TSDebug(tag, "%s", msg);
}

static void tsgo_error(const char *msg) {
	TSError("%s", msg);
}

static void tsgo_free(void *ptr) {
	TSfree(ptr);
}

// handles are kept as integers on the Go side
static void *tsgo_handle(uintptr_t h) {
	return (void *)h;
}

*/
import "C"
import (
	"unsafe"

	"github.com/tsgo/tsgo/api"
)

type cAPIImpl struct{}

func init() {
	api.SetCAPI(&cAPIImpl{})
}

// ****************** conversions start ******************//

func handle(h uintptr) unsafe.Pointer { return C.tsgo_handle(C.uintptr_t(h)) }

func mbuf(b api.MBuffer) C.TSMBuffer { return C.TSMBuffer(handle(uintptr(b))) }
func mloc(l api.MLoc) C.TSMLoc       { return C.TSMLoc(handle(uintptr(l))) }
func cont(c api.Cont) C.TSCont       { return C.TSCont(handle(uintptr(c))) }
func txn(t api.HttpTxn) C.TSHttpTxn  { return C.TSHttpTxn(handle(uintptr(t))) }

func rc(r C.TSReturnCode) api.ReturnCode {
	if r == C.TS_SUCCESS {
		return api.ReturnSuccess
	}
	return api.ReturnError
}

func cStr(s string) *C.char {
	return (*C.char)(unsafe.Pointer(unsafe.StringData(s)))
}

func cLen(length *int32) *C.int {
	return (*C.int)(unsafe.Pointer(length))
}

//******************* conversions end *******************//

// ****************** continuation start ******************//

func (c *cAPIImpl) MutexCreate() api.Mutex {
	return api.Mutex(uintptr(unsafe.Pointer(C.TSMutexCreate())))
}

func (c *cAPIImpl) ContCreate(kind api.ContKind, mutex api.Mutex) api.Cont {
	fn := C.TSEventFunc(C.tsgoContOnce)
	if kind == api.ContRecurring {
		fn = C.TSEventFunc(C.tsgoContRecurring)
	}
	contp := C.TSContCreate(fn, C.TSMutex(handle(uintptr(mutex))))
	return api.Cont(uintptr(unsafe.Pointer(contp)))
}

func (c *cAPIImpl) ContDataSet(contp api.Cont, data uintptr) {
	// data is a registry id, never a Go pointer
	C.TSContDataSet(cont(contp), unsafe.Pointer(data))
}

func (c *cAPIImpl) ContDataGet(contp api.Cont) uintptr {
	return uintptr(C.TSContDataGet(cont(contp)))
}

func (c *cAPIImpl) ContDestroy(contp api.Cont) {
	C.TSContDestroy(cont(contp))
}

//******************* continuation end *******************//

// ****************** cache start ******************//

func (c *cAPIImpl) CacheKeyCreate() api.CacheKey {
	return api.CacheKey(uintptr(unsafe.Pointer(C.TSCacheKeyCreate())))
}

func (c *cAPIImpl) CacheKeyDigestSet(key api.CacheKey, digest []byte) api.ReturnCode {
	return rc(C.TSCacheKeyDigestSet(C.TSCacheKey(handle(uintptr(key))),
		(*C.char)(unsafe.Pointer(unsafe.SliceData(digest))), C.int(len(digest))))
}

func (c *cAPIImpl) CacheKeyDestroy(key api.CacheKey) api.ReturnCode {
	return rc(C.TSCacheKeyDestroy(C.TSCacheKey(handle(uintptr(key)))))
}

func (c *cAPIImpl) CacheRead(contp api.Cont, key api.CacheKey) {
	C.TSCacheRead(cont(contp), C.TSCacheKey(handle(uintptr(key))))
}

func (c *cAPIImpl) IOBufferCreate() api.IOBuffer {
	return api.IOBuffer(uintptr(unsafe.Pointer(C.TSIOBufferCreate())))
}

func (c *cAPIImpl) IOBufferDestroy(buf api.IOBuffer) {
	C.TSIOBufferDestroy(C.TSIOBuffer(handle(uintptr(buf))))
}

func (c *cAPIImpl) VConnCacheObjectSizeGet(vconn api.VConn) int64 {
	return int64(C.TSVConnCacheObjectSizeGet(C.TSVConn(handle(uintptr(vconn)))))
}

func (c *cAPIImpl) VConnClose(vconn api.VConn) {
	C.TSVConnClose(C.TSVConn(handle(uintptr(vconn))))
}

//******************* cache end *******************//

// ****************** mime start ******************//

func (c *cAPIImpl) MimeHdrFieldsCount(bufp api.MBuffer, hdr api.MLoc) int {
	return int(C.TSMimeHdrFieldsCount(mbuf(bufp), mloc(hdr)))
}

func (c *cAPIImpl) MimeHdrFieldGet(bufp api.MBuffer, hdr api.MLoc, idx int) api.MLoc {
	return api.MLoc(uintptr(unsafe.Pointer(C.TSMimeHdrFieldGet(mbuf(bufp), mloc(hdr), C.int(idx)))))
}

func (c *cAPIImpl) MimeHdrFieldFind(bufp api.MBuffer, hdr api.MLoc, name string) api.MLoc {
	return api.MLoc(uintptr(unsafe.Pointer(C.TSMimeHdrFieldFind(mbuf(bufp), mloc(hdr), cStr(name), C.int(len(name))))))
}

func (c *cAPIImpl) MimeHdrFieldNameGet(bufp api.MBuffer, hdr api.MLoc, field api.MLoc, length *int32) unsafe.Pointer {
	return unsafe.Pointer(C.TSMimeHdrFieldNameGet(mbuf(bufp), mloc(hdr), mloc(field), cLen(length)))
}

func (c *cAPIImpl) MimeHdrFieldValuesCount(bufp api.MBuffer, hdr api.MLoc, field api.MLoc) int {
	return int(C.TSMimeHdrFieldValuesCount(mbuf(bufp), mloc(hdr), mloc(field)))
}

func (c *cAPIImpl) MimeHdrFieldValueStringGet(bufp api.MBuffer, hdr api.MLoc, field api.MLoc, idx int, length *int32) unsafe.Pointer {
	return unsafe.Pointer(C.TSMimeHdrFieldValueStringGet(mbuf(bufp), mloc(hdr), mloc(field), C.int(idx), cLen(length)))
}

func (c *cAPIImpl) MimeHdrFieldCreateNamed(bufp api.MBuffer, hdr api.MLoc, name string) (api.MLoc, api.ReturnCode) {
	var loc C.TSMLoc
	res := C.TSMimeHdrFieldCreateNamed(mbuf(bufp), mloc(hdr), cStr(name), C.int(len(name)), &loc)
	return api.MLoc(uintptr(unsafe.Pointer(loc))), rc(res)
}

func (c *cAPIImpl) MimeHdrFieldAppend(bufp api.MBuffer, hdr api.MLoc, field api.MLoc) api.ReturnCode {
	return rc(C.TSMimeHdrFieldAppend(mbuf(bufp), mloc(hdr), mloc(field)))
}

func (c *cAPIImpl) MimeHdrFieldDestroy(bufp api.MBuffer, hdr api.MLoc, field api.MLoc) api.ReturnCode {
	return rc(C.TSMimeHdrFieldDestroy(mbuf(bufp), mloc(hdr), mloc(field)))
}

func (c *cAPIImpl) MimeHdrFieldValuesClear(bufp api.MBuffer, hdr api.MLoc, field api.MLoc) api.ReturnCode {
	return rc(C.TSMimeHdrFieldValuesClear(mbuf(bufp), mloc(hdr), mloc(field)))
}

func (c *cAPIImpl) MimeHdrFieldValueStringInsert(bufp api.MBuffer, hdr api.MLoc, field api.MLoc, idx int, value string) api.ReturnCode {
	return rc(C.TSMimeHdrFieldValueStringInsert(mbuf(bufp), mloc(hdr), mloc(field), C.int(idx), cStr(value), C.int(len(value))))
}

func (c *cAPIImpl) HandleMLocRelease(bufp api.MBuffer, parent api.MLoc, loc api.MLoc) api.ReturnCode {
	return rc(C.TSHandleMLocRelease(mbuf(bufp), mloc(parent), mloc(loc)))
}

//******************* mime end *******************//

// ****************** url start ******************//

func (c *cAPIImpl) UrlGet(bufp api.MBuffer, loc api.MLoc, field api.URLField, length *int32) unsafe.Pointer {
	b, l, n := mbuf(bufp), mloc(loc), cLen(length)
	var p *C.char
	switch field {
	case api.URLScheme:
		p = C.TSUrlSchemeGet(b, l, n)
	case api.URLUser:
		p = C.TSUrlUserGet(b, l, n)
	case api.URLPassword:
		p = C.TSUrlPasswordGet(b, l, n)
	case api.URLHost:
		p = C.TSUrlHostGet(b, l, n)
	case api.URLPath:
		p = C.TSUrlPathGet(b, l, n)
	case api.URLQuery:
		p = C.TSUrlHttpQueryGet(b, l, n)
	case api.URLParams:
		p = C.TSUrlHttpParamsGet(b, l, n)
	case api.URLFragment:
		p = C.TSUrlHttpFragmentGet(b, l, n)
	}
	return unsafe.Pointer(p)
}

func (c *cAPIImpl) UrlSet(bufp api.MBuffer, loc api.MLoc, field api.URLField, value string) api.ReturnCode {
	b, l, v, n := mbuf(bufp), mloc(loc), cStr(value), C.int(len(value))
	switch field {
	case api.URLScheme:
		return rc(C.TSUrlSchemeSet(b, l, v, n))
	case api.URLUser:
		return rc(C.TSUrlUserSet(b, l, v, n))
	case api.URLPassword:
		return rc(C.TSUrlPasswordSet(b, l, v, n))
	case api.URLHost:
		return rc(C.TSUrlHostSet(b, l, v, n))
	case api.URLPath:
		return rc(C.TSUrlPathSet(b, l, v, n))
	case api.URLQuery:
		return rc(C.TSUrlHttpQuerySet(b, l, v, n))
	case api.URLParams:
		return rc(C.TSUrlHttpParamsSet(b, l, v, n))
	case api.URLFragment:
		return rc(C.TSUrlHttpFragmentSet(b, l, v, n))
	}
	return api.ReturnError
}

func (c *cAPIImpl) UrlPortGet(bufp api.MBuffer, loc api.MLoc) int {
	return int(C.TSUrlPortGet(mbuf(bufp), mloc(loc)))
}

func (c *cAPIImpl) UrlPortSet(bufp api.MBuffer, loc api.MLoc, port int) api.ReturnCode {
	return rc(C.TSUrlPortSet(mbuf(bufp), mloc(loc), C.int(port)))
}

func (c *cAPIImpl) UrlStringGet(bufp api.MBuffer, loc api.MLoc, length *int32) unsafe.Pointer {
	return unsafe.Pointer(C.TSUrlStringGet(mbuf(bufp), mloc(loc), cLen(length)))
}

func (c *cAPIImpl) Free(ptr unsafe.Pointer) {
	C.tsgo_free(ptr)
}

//******************* url end *******************//

// ****************** http start ******************//

func (c *cAPIImpl) HttpHdrMethodGet(bufp api.MBuffer, hdr api.MLoc, length *int32) unsafe.Pointer {
	return unsafe.Pointer(C.TSHttpHdrMethodGet(mbuf(bufp), mloc(hdr), cLen(length)))
}

func (c *cAPIImpl) HttpHdrHostGet(bufp api.MBuffer, hdr api.MLoc, length *int32) unsafe.Pointer {
	return unsafe.Pointer(C.TSHttpHdrHostGet(mbuf(bufp), mloc(hdr), cLen(length)))
}

func (c *cAPIImpl) HttpHdrReasonGet(bufp api.MBuffer, hdr api.MLoc, length *int32) unsafe.Pointer {
	return unsafe.Pointer(C.TSHttpHdrReasonGet(mbuf(bufp), mloc(hdr), cLen(length)))
}

func (c *cAPIImpl) HttpHdrStatusGet(bufp api.MBuffer, hdr api.MLoc) api.HttpStatus {
	return api.HttpStatus(C.TSHttpHdrStatusGet(mbuf(bufp), mloc(hdr)))
}

func (c *cAPIImpl) HttpHdrUrlGet(bufp api.MBuffer, hdr api.MLoc) (api.MLoc, api.ReturnCode) {
	var loc C.TSMLoc
	res := C.TSHttpHdrUrlGet(mbuf(bufp), mloc(hdr), &loc)
	return api.MLoc(uintptr(unsafe.Pointer(loc))), rc(res)
}

func (c *cAPIImpl) HttpTxnMessageGet(txnp api.HttpTxn, msg api.HttpMessage) (api.MBuffer, api.MLoc, api.ReturnCode) {
	var bufp C.TSMBuffer
	var loc C.TSMLoc
	var res C.TSReturnCode
	switch msg {
	case api.ClientRequest:
		res = C.TSHttpTxnClientReqGet(txn(txnp), &bufp, &loc)
	case api.ServerRequest:
		res = C.TSHttpTxnServerReqGet(txn(txnp), &bufp, &loc)
	case api.ServerResponse:
		res = C.TSHttpTxnServerRespGet(txn(txnp), &bufp, &loc)
	case api.ClientResponse:
		res = C.TSHttpTxnClientRespGet(txn(txnp), &bufp, &loc)
	default:
		return 0, api.NullMLoc, api.ReturnError
	}
	return api.MBuffer(uintptr(unsafe.Pointer(bufp))), api.MLoc(uintptr(unsafe.Pointer(loc))), rc(res)
}

func (c *cAPIImpl) HttpTxnReenable(txnp api.HttpTxn, event api.Event) {
	C.TSHttpTxnReenable(txn(txnp), C.TSEvent(event))
}

func (c *cAPIImpl) ClientRequestUuidGet(txnp api.HttpTxn, buf []byte) api.ReturnCode {
	if len(buf) < api.CRUUIDLen {
		return api.ReturnError
	}
	return rc(C.TSClientRequestUuidGet(txn(txnp), (*C.char)(unsafe.Pointer(unsafe.SliceData(buf)))))
}

func (c *cAPIImpl) HttpHookAdd(hook api.HookID, contp api.Cont) {
	C.TSHttpHookAdd(C.TSHttpHookID(hook), cont(contp))
}

func (c *cAPIImpl) HttpTxnHookAdd(txnp api.HttpTxn, hook api.HookID, contp api.Cont) {
	C.TSHttpTxnHookAdd(txn(txnp), C.TSHttpHookID(hook), cont(contp))
}

func (c *cAPIImpl) RemapRequestGet(rri api.RemapInfo) api.RemapRequest {
	r := (*C.TSRemapRequestInfo)(handle(uintptr(rri)))
	return api.RemapRequest{
		RequestBuf: api.MBuffer(uintptr(unsafe.Pointer(r.requestBufp))),
		RequestHdr: api.MLoc(uintptr(unsafe.Pointer(r.requestHdrp))),
		MapFromURL: api.MLoc(uintptr(unsafe.Pointer(r.mapFromUrl))),
		MapToURL:   api.MLoc(uintptr(unsafe.Pointer(r.mapToUrl))),
		RequestURL: api.MLoc(uintptr(unsafe.Pointer(r.requestUrl))),
		Redirect:   r.redirect != 0,
	}
}

func (c *cAPIImpl) RemapRedirectSet(rri api.RemapInfo, redirect bool) {
	r := (*C.TSRemapRequestInfo)(handle(uintptr(rri)))
	if redirect {
		r.redirect = 1
	} else {
		r.redirect = 0
	}
}

//******************* http end *******************//

// ****************** log start ******************//

func (c *cAPIImpl) Debug(tag string, message string) {
	ctag := C.CString(tag)
	cmsg := C.CString(message)
	defer C.free(unsafe.Pointer(ctag))
	defer C.free(unsafe.Pointer(cmsg))
	C.tsgo_debug(ctag, cmsg)
}

func (c *cAPIImpl) Error(message string) {
	cmsg := C.CString(message)
	defer C.free(unsafe.Pointer(cmsg))
	C.tsgo_error(cmsg)
}

func (c *cAPIImpl) ConfigDirGet() string {
	dir := C.TSConfigDirGet()
	if dir == nil {
		return ""
	}
	return C.GoString(dir)
}

//******************* log end *******************//
