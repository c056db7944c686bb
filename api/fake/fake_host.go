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

// Package fake provides an in-memory host implementing api.CAPI for tests.
// Every call that acquires or releases a resource is appended to an ordered
// call log so tests can assert release discipline.
package fake

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/tsgo/tsgo/api"
)

var ErrContinuationGone = errors.New("fake host: continuation destroyed or unknown")

// Field is one MIME field. Values are raw bytes so tests can plant invalid UTF-8.
type Field struct {
	Name   []byte
	Values [][]byte
}

func NewField(name string, values ...string) *Field {
	f := &Field{Name: []byte(name)}
	for _, v := range values {
		f.Values = append(f.Values, []byte(v))
	}
	return f
}

// Header is a marshaled HTTP message. A nil URL makes HttpHdrUrlGet fail.
type Header struct {
	Method []byte
	Host   []byte
	Reason []byte
	Status api.HttpStatus
	URL    *URL
	Fields []*Field
}

type URL struct {
	Scheme   []byte
	User     []byte
	Password []byte
	Host     []byte
	Path     []byte
	Query    []byte
	Params   []byte
	Fragment []byte
	Port     int
}

func (u *URL) part(f api.URLField) *[]byte {
	switch f {
	case api.URLScheme:
		return &u.Scheme
	case api.URLUser:
		return &u.User
	case api.URLPassword:
		return &u.Password
	case api.URLHost:
		return &u.Host
	case api.URLPath:
		return &u.Path
	case api.URLQuery:
		return &u.Query
	case api.URLParams:
		return &u.Params
	case api.URLFragment:
		return &u.Fragment
	}
	return nil
}

func (u *URL) String() string {
	var b strings.Builder
	if len(u.Scheme) > 0 {
		b.Write(u.Scheme)
		b.WriteString("://")
	}
	if len(u.User) > 0 {
		b.Write(u.User)
		if len(u.Password) > 0 {
			b.WriteByte(':')
			b.Write(u.Password)
		}
		b.WriteByte('@')
	}
	b.Write(u.Host)
	if u.Port != 0 {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(u.Port))
	}
	b.WriteByte('/')
	b.Write(u.Path)
	if len(u.Params) > 0 {
		b.WriteByte(';')
		b.Write(u.Params)
	}
	if len(u.Query) > 0 {
		b.WriteByte('?')
		b.Write(u.Query)
	}
	if len(u.Fragment) > 0 {
		b.WriteByte('#')
		b.Write(u.Fragment)
	}
	return b.String()
}

// Txn describes a transaction. Messages missing from the map fail to load,
// a nil UUID makes ClientRequestUuidGet fail.
type Txn struct {
	Messages map[api.HttpMessage]*Header
	UUID     []byte

	Reenabled []api.Event
}

type Remap struct {
	Request  *Header
	MapFrom  *URL
	MapTo    *URL
	Redirect bool
}

// CacheOutcome controls what CacheRead does with the continuation.
type CacheOutcome struct {
	Event api.Event
	Data  api.EventData
	// Drop abandons the continuation without invoking it.
	Drop bool
	// Defer keeps the continuation pending until FirePending is called.
	Defer bool
}

type LogLine struct {
	Tag     string
	Message string
}

type hdrEntry struct {
	buf    api.MBuffer
	hdr    *Header
	urlLoc api.MLoc
}

type urlEntry struct {
	buf api.MBuffer
	url *URL
}

type fieldEntry struct {
	buf   api.MBuffer
	hdr   api.MLoc
	field *Field
}

type contEntry struct {
	kind        api.ContKind
	mutex       api.Mutex
	data        uintptr
	destroyed   bool
	invocations int
}

type txnEntry struct {
	txn  *Txn
	msgs map[api.HttpMessage][2]uintptr
}

type remapEntry struct {
	remap *Remap
	req   api.RemapRequest
}

type Host struct {
	mu   sync.Mutex
	next uintptr

	hdrs   map[api.MLoc]*hdrEntry
	urls   map[api.MLoc]*urlEntry
	fields map[api.MLoc]*fieldEntry
	conts  map[api.Cont]*contEntry
	txns   map[api.HttpTxn]*txnEntry
	remaps map[api.RemapInfo]*remapEntry
	keys   map[api.CacheKey][]byte
	vconns map[api.VConn]int64
	iobufs map[api.IOBuffer]bool
	allocs map[unsafe.Pointer][]byte

	globalHooks map[api.HookID][]api.Cont
	txnHooks    map[api.HttpTxn]map[api.HookID][]api.Cont

	cacheOutcome CacheOutcome
	pending      []api.Cont

	calls  []string
	debugs []LogLine
	errs   []string

	// ConfigDir is returned by ConfigDirGet.
	ConfigDir string

	DoubleReleases int
	DoubleDestroys int
	DoubleFrees    int
}

func NewHost() *Host {
	return &Host{
		next:        0x1000,
		hdrs:        make(map[api.MLoc]*hdrEntry),
		urls:        make(map[api.MLoc]*urlEntry),
		fields:      make(map[api.MLoc]*fieldEntry),
		conts:       make(map[api.Cont]*contEntry),
		txns:        make(map[api.HttpTxn]*txnEntry),
		remaps:      make(map[api.RemapInfo]*remapEntry),
		keys:        make(map[api.CacheKey][]byte),
		vconns:      make(map[api.VConn]int64),
		iobufs:      make(map[api.IOBuffer]bool),
		allocs:      make(map[unsafe.Pointer][]byte),
		globalHooks: make(map[api.HookID][]api.Cont),
		txnHooks:    make(map[api.HttpTxn]map[api.HookID][]api.Cont),
	}
}

var _ api.CAPI = (*Host)(nil)

// must be called with mu held
func (h *Host) id() uintptr {
	h.next += 8
	return h.next
}

func (h *Host) record(format string, v ...any) {
	h.calls = append(h.calls, fmt.Sprintf(format, v...))
}

// Calls returns the ordered call log.
func (h *Host) Calls() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.calls...)
}

// CountCalls returns how many log entries start with prefix.
func (h *Host) CountCalls(prefix string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, c := range h.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (h *Host) DebugLines() []LogLine {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]LogLine(nil), h.debugs...)
}

func (h *Host) ErrorLines() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.errs...)
}

var empty [1]byte

func hostString(b []byte, length *int32) unsafe.Pointer {
	if b == nil {
		*length = 0
		return nil
	}
	*length = int32(len(b))
	if len(b) == 0 {
		return unsafe.Pointer(&empty[0])
	}
	return unsafe.Pointer(&b[0])
}

// ****************** buffers start ******************//

// NewMessage marshals hdr into a fresh buffer.
func (h *Host) NewMessage(hdr *Header) (api.MBuffer, api.MLoc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.newMessage(hdr)
}

func (h *Host) newMessage(hdr *Header) (api.MBuffer, api.MLoc) {
	buf := api.MBuffer(h.id())
	loc := api.MLoc(h.id())
	h.hdrs[loc] = &hdrEntry{buf: buf, hdr: hdr}
	return buf, loc
}

func (h *Host) newURL(buf api.MBuffer, u *URL) api.MLoc {
	loc := api.MLoc(h.id())
	h.urls[loc] = &urlEntry{buf: buf, url: u}
	return loc
}

func (h *Host) header(bufp api.MBuffer, hdr api.MLoc) *Header {
	e, ok := h.hdrs[hdr]
	if !ok || e.buf != bufp {
		return nil
	}
	return e.hdr
}

func (h *Host) url(bufp api.MBuffer, loc api.MLoc) *URL {
	e, ok := h.urls[loc]
	if !ok || e.buf != bufp {
		return nil
	}
	return e.url
}

func (h *Host) field(bufp api.MBuffer, hdr api.MLoc, field api.MLoc) *Field {
	e, ok := h.fields[field]
	if !ok || e.buf != bufp || e.hdr != hdr {
		return nil
	}
	return e.field
}

func (h *Host) newFieldHandle(bufp api.MBuffer, hdr api.MLoc, f *Field) api.MLoc {
	loc := api.MLoc(h.id())
	h.fields[loc] = &fieldEntry{buf: bufp, hdr: hdr, field: f}
	h.record("field_acquire %d", loc)
	return loc
}

// OpenFieldHandles reports field handles acquired and not yet released.
func (h *Host) OpenFieldHandles() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.fields)
}

//******************* buffers end *******************//

// ****************** mime start ******************//

func (h *Host) MimeHdrFieldsCount(bufp api.MBuffer, hdr api.MLoc) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m := h.header(bufp, hdr); m != nil {
		return len(m.Fields)
	}
	return 0
}

func (h *Host) MimeHdrFieldGet(bufp api.MBuffer, hdr api.MLoc, idx int) api.MLoc {
	h.mu.Lock()
	defer h.mu.Unlock()
	m := h.header(bufp, hdr)
	if m == nil || idx < 0 || idx >= len(m.Fields) || m.Fields[idx] == nil {
		return api.NullMLoc
	}
	return h.newFieldHandle(bufp, hdr, m.Fields[idx])
}

func (h *Host) MimeHdrFieldFind(bufp api.MBuffer, hdr api.MLoc, name string) api.MLoc {
	h.mu.Lock()
	defer h.mu.Unlock()
	m := h.header(bufp, hdr)
	if m == nil {
		return api.NullMLoc
	}
	for _, f := range m.Fields {
		if f != nil && strings.EqualFold(string(f.Name), name) {
			return h.newFieldHandle(bufp, hdr, f)
		}
	}
	return api.NullMLoc
}

func (h *Host) MimeHdrFieldNameGet(bufp api.MBuffer, hdr api.MLoc, field api.MLoc, length *int32) unsafe.Pointer {
	h.mu.Lock()
	defer h.mu.Unlock()
	f := h.field(bufp, hdr, field)
	if f == nil {
		*length = 0
		return nil
	}
	return hostString(f.Name, length)
}

func (h *Host) MimeHdrFieldValuesCount(bufp api.MBuffer, hdr api.MLoc, field api.MLoc) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if f := h.field(bufp, hdr, field); f != nil {
		return len(f.Values)
	}
	return 0
}

func (h *Host) MimeHdrFieldValueStringGet(bufp api.MBuffer, hdr api.MLoc, field api.MLoc, idx int, length *int32) unsafe.Pointer {
	h.mu.Lock()
	defer h.mu.Unlock()
	f := h.field(bufp, hdr, field)
	if f == nil || idx < 0 || idx >= len(f.Values) {
		*length = 0
		return nil
	}
	return hostString(f.Values[idx], length)
}

func (h *Host) MimeHdrFieldCreateNamed(bufp api.MBuffer, hdr api.MLoc, name string) (api.MLoc, api.ReturnCode) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.header(bufp, hdr) == nil {
		return api.NullMLoc, api.ReturnError
	}
	return h.newFieldHandle(bufp, hdr, &Field{Name: []byte(name)}), api.ReturnSuccess
}

func (h *Host) MimeHdrFieldAppend(bufp api.MBuffer, hdr api.MLoc, field api.MLoc) api.ReturnCode {
	h.mu.Lock()
	defer h.mu.Unlock()
	m := h.header(bufp, hdr)
	f := h.field(bufp, hdr, field)
	if m == nil || f == nil {
		return api.ReturnError
	}
	m.Fields = append(m.Fields, f)
	return api.ReturnSuccess
}

func (h *Host) MimeHdrFieldDestroy(bufp api.MBuffer, hdr api.MLoc, field api.MLoc) api.ReturnCode {
	h.mu.Lock()
	defer h.mu.Unlock()
	m := h.header(bufp, hdr)
	f := h.field(bufp, hdr, field)
	if m == nil || f == nil {
		return api.ReturnError
	}
	for i, cur := range m.Fields {
		if cur == f {
			m.Fields = append(m.Fields[:i], m.Fields[i+1:]...)
			return api.ReturnSuccess
		}
	}
	return api.ReturnError
}

func (h *Host) MimeHdrFieldValuesClear(bufp api.MBuffer, hdr api.MLoc, field api.MLoc) api.ReturnCode {
	h.mu.Lock()
	defer h.mu.Unlock()
	f := h.field(bufp, hdr, field)
	if f == nil {
		return api.ReturnError
	}
	f.Values = nil
	return api.ReturnSuccess
}

func (h *Host) MimeHdrFieldValueStringInsert(bufp api.MBuffer, hdr api.MLoc, field api.MLoc, idx int, value string) api.ReturnCode {
	h.mu.Lock()
	defer h.mu.Unlock()
	f := h.field(bufp, hdr, field)
	if f == nil {
		return api.ReturnError
	}
	v := []byte(value)
	if idx < 0 || idx >= len(f.Values) {
		f.Values = append(f.Values, v)
		return api.ReturnSuccess
	}
	f.Values = append(f.Values[:idx], append([][]byte{v}, f.Values[idx:]...)...)
	return api.ReturnSuccess
}

func (h *Host) HandleMLocRelease(bufp api.MBuffer, parent api.MLoc, mloc api.MLoc) api.ReturnCode {
	h.mu.Lock()
	defer h.mu.Unlock()
	if e, ok := h.fields[mloc]; ok {
		if e.buf != bufp || e.hdr != parent {
			return api.ReturnError
		}
		delete(h.fields, mloc)
		h.record("field_release %d", mloc)
		return api.ReturnSuccess
	}
	if _, ok := h.hdrs[mloc]; ok {
		return api.ReturnSuccess
	}
	if _, ok := h.urls[mloc]; ok {
		return api.ReturnSuccess
	}
	h.DoubleReleases++
	return api.ReturnError
}

//******************* mime end *******************//

// ****************** url start ******************//

func (h *Host) UrlGet(bufp api.MBuffer, loc api.MLoc, field api.URLField, length *int32) unsafe.Pointer {
	h.mu.Lock()
	defer h.mu.Unlock()
	u := h.url(bufp, loc)
	if u == nil {
		*length = 0
		return nil
	}
	p := u.part(field)
	if p == nil {
		*length = 0
		return nil
	}
	return hostString(*p, length)
}

func (h *Host) UrlSet(bufp api.MBuffer, loc api.MLoc, field api.URLField, value string) api.ReturnCode {
	h.mu.Lock()
	defer h.mu.Unlock()
	u := h.url(bufp, loc)
	if u == nil {
		return api.ReturnError
	}
	p := u.part(field)
	if p == nil {
		return api.ReturnError
	}
	*p = []byte(value)
	return api.ReturnSuccess
}

func (h *Host) UrlPortGet(bufp api.MBuffer, loc api.MLoc) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if u := h.url(bufp, loc); u != nil {
		return u.Port
	}
	return 0
}

func (h *Host) UrlPortSet(bufp api.MBuffer, loc api.MLoc, port int) api.ReturnCode {
	h.mu.Lock()
	defer h.mu.Unlock()
	u := h.url(bufp, loc)
	if u == nil {
		return api.ReturnError
	}
	u.Port = port
	return api.ReturnSuccess
}

func (h *Host) UrlStringGet(bufp api.MBuffer, loc api.MLoc, length *int32) unsafe.Pointer {
	h.mu.Lock()
	defer h.mu.Unlock()
	u := h.url(bufp, loc)
	if u == nil {
		*length = 0
		return nil
	}
	s := u.String()
	b := make([]byte, len(s)+1)
	copy(b, s)
	p := unsafe.Pointer(&b[0])
	h.allocs[p] = b
	h.record("alloc")
	*length = int32(len(s))
	return p
}

func (h *Host) Free(ptr unsafe.Pointer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.allocs[ptr]; !ok {
		h.DoubleFrees++
		return
	}
	delete(h.allocs, ptr)
	h.record("free")
}

// LiveAllocations reports host allocations not yet freed.
func (h *Host) LiveAllocations() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.allocs)
}

//******************* url end *******************//

// ****************** http start ******************//

func (h *Host) HttpHdrMethodGet(bufp api.MBuffer, hdr api.MLoc, length *int32) unsafe.Pointer {
	h.mu.Lock()
	defer h.mu.Unlock()
	m := h.header(bufp, hdr)
	if m == nil {
		*length = 0
		return nil
	}
	return hostString(m.Method, length)
}

func (h *Host) HttpHdrHostGet(bufp api.MBuffer, hdr api.MLoc, length *int32) unsafe.Pointer {
	h.mu.Lock()
	defer h.mu.Unlock()
	m := h.header(bufp, hdr)
	if m == nil {
		*length = 0
		return nil
	}
	return hostString(m.Host, length)
}

func (h *Host) HttpHdrReasonGet(bufp api.MBuffer, hdr api.MLoc, length *int32) unsafe.Pointer {
	h.mu.Lock()
	defer h.mu.Unlock()
	m := h.header(bufp, hdr)
	if m == nil {
		*length = 0
		return nil
	}
	return hostString(m.Reason, length)
}

func (h *Host) HttpHdrStatusGet(bufp api.MBuffer, hdr api.MLoc) api.HttpStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m := h.header(bufp, hdr); m != nil {
		return m.Status
	}
	return api.HttpStatusNone
}

func (h *Host) HttpHdrUrlGet(bufp api.MBuffer, hdr api.MLoc) (api.MLoc, api.ReturnCode) {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.hdrs[hdr]
	if !ok || e.buf != bufp || e.hdr.URL == nil {
		return api.NullMLoc, api.ReturnError
	}
	if e.urlLoc == api.NullMLoc {
		e.urlLoc = h.newURL(bufp, e.hdr.URL)
	}
	return e.urlLoc, api.ReturnSuccess
}

// NewTxn registers a transaction and marshals its messages.
func (h *Host) NewTxn(t *Txn) api.HttpTxn {
	h.mu.Lock()
	defer h.mu.Unlock()
	e := &txnEntry{txn: t, msgs: make(map[api.HttpMessage][2]uintptr)}
	for msg, hdr := range t.Messages {
		buf, loc := h.newMessage(hdr)
		e.msgs[msg] = [2]uintptr{uintptr(buf), uintptr(loc)}
	}
	txnp := api.HttpTxn(h.id())
	h.txns[txnp] = e
	return txnp
}

func (h *Host) HttpTxnMessageGet(txnp api.HttpTxn, msg api.HttpMessage) (api.MBuffer, api.MLoc, api.ReturnCode) {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.txns[txnp]
	if !ok {
		return 0, api.NullMLoc, api.ReturnError
	}
	m, ok := e.msgs[msg]
	if !ok {
		return 0, api.NullMLoc, api.ReturnError
	}
	return api.MBuffer(m[0]), api.MLoc(m[1]), api.ReturnSuccess
}

func (h *Host) HttpTxnReenable(txnp api.HttpTxn, event api.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if e, ok := h.txns[txnp]; ok {
		e.txn.Reenabled = append(e.txn.Reenabled, event)
	}
	h.record("txn_reenable %s", event)
}

func (h *Host) ClientRequestUuidGet(txnp api.HttpTxn, buf []byte) api.ReturnCode {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.txns[txnp]
	if !ok || e.txn.UUID == nil || len(buf) < api.CRUUIDLen {
		return api.ReturnError
	}
	copy(buf[:api.CRUUIDLen], e.txn.UUID)
	return api.ReturnSuccess
}

func (h *Host) HttpHookAdd(hook api.HookID, contp api.Cont) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.globalHooks[hook] = append(h.globalHooks[hook], contp)
	h.record("hook_add %s", hook)
}

func (h *Host) HttpTxnHookAdd(txnp api.HttpTxn, hook api.HookID, contp api.Cont) {
	h.mu.Lock()
	defer h.mu.Unlock()
	m, ok := h.txnHooks[txnp]
	if !ok {
		m = make(map[api.HookID][]api.Cont)
		h.txnHooks[txnp] = m
	}
	m[hook] = append(m[hook], contp)
	h.record("txn_hook_add %s", hook)
}

// FireHook runs the global and transaction continuations registered on hook
// for txnp, like the host does when the transaction reaches that state.
func (h *Host) FireHook(hook api.HookID, txnp api.HttpTxn) error {
	h.mu.Lock()
	conts := append([]api.Cont(nil), h.globalHooks[hook]...)
	if m, ok := h.txnHooks[txnp]; ok {
		conts = append(conts, m[hook]...)
	}
	h.mu.Unlock()

	for _, contp := range conts {
		if _, err := h.Fire(contp, hook.Event(), api.EventData(txnp)); err != nil {
			return err
		}
	}
	return nil
}

// NewRemap registers remap information whose URLs live in the request buffer.
func (h *Host) NewRemap(r *Remap) api.RemapInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	buf, hdr := h.newMessage(r.Request)
	req := api.RemapRequest{
		RequestBuf: buf,
		RequestHdr: hdr,
		Redirect:   r.Redirect,
	}
	if r.Request.URL != nil {
		req.RequestURL = h.newURL(buf, r.Request.URL)
		h.hdrs[hdr].urlLoc = req.RequestURL
	}
	if r.MapFrom != nil {
		req.MapFromURL = h.newURL(buf, r.MapFrom)
	}
	if r.MapTo != nil {
		req.MapToURL = h.newURL(buf, r.MapTo)
	}
	rri := api.RemapInfo(h.id())
	h.remaps[rri] = &remapEntry{remap: r, req: req}
	return rri
}

func (h *Host) RemapRequestGet(rri api.RemapInfo) api.RemapRequest {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.remaps[rri]
	if !ok {
		return api.RemapRequest{}
	}
	e.req.Redirect = e.remap.Redirect
	return e.req
}

func (h *Host) RemapRedirectSet(rri api.RemapInfo, redirect bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if e, ok := h.remaps[rri]; ok {
		e.remap.Redirect = redirect
	}
}

//******************* http end *******************//

// ****************** log start ******************//

func (h *Host) Debug(tag string, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.debugs = append(h.debugs, LogLine{Tag: tag, Message: message})
}

func (h *Host) Error(message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errs = append(h.errs, message)
}

func (h *Host) ConfigDirGet() string {
	return h.ConfigDir
}

//******************* log end *******************//
