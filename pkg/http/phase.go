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

package http

import "github.com/tsgo/tsgo/api"

// Phase markers name the hook a Transaction was delivered on. Which messages
// can be read is decided by the capability interfaces the marker satisfies,
// so reading a message the host has not built yet does not type-check.
type Phase interface {
	Hook() api.HookID
}

type ClientRequestReader interface {
	Phase
	clientRequest()
}

type ServerRequestReader interface {
	Phase
	serverRequest()
}

type ServerResponseReader interface {
	Phase
	serverResponse()
}

type ClientResponseReader interface {
	Phase
	clientResponse()
}

type (
	TxnStartHook            struct{}
	ReadRequestHeaderHook   struct{}
	PreRemapHook            struct{}
	RemapHook               struct{}
	PostRemapHook           struct{}
	OSDNSHook               struct{}
	CacheLookupCompleteHook struct{}
	SendRequestHeaderHook   struct{}
	ReadResponseHeaderHook  struct{}
	SendResponseHeaderHook  struct{}
	TxnCloseHook            struct{}
)

func (TxnStartHook) Hook() api.HookID            { return api.HookTxnStart }
func (ReadRequestHeaderHook) Hook() api.HookID   { return api.HookReadRequestHdr }
func (PreRemapHook) Hook() api.HookID            { return api.HookPreRemap }
func (RemapHook) Hook() api.HookID               { return api.HookRemap }
func (PostRemapHook) Hook() api.HookID           { return api.HookPostRemap }
func (OSDNSHook) Hook() api.HookID               { return api.HookOSDNS }
func (CacheLookupCompleteHook) Hook() api.HookID { return api.HookCacheLookupComplete }
func (SendRequestHeaderHook) Hook() api.HookID   { return api.HookSendRequestHdr }
func (ReadResponseHeaderHook) Hook() api.HookID  { return api.HookReadResponseHdr }
func (SendResponseHeaderHook) Hook() api.HookID  { return api.HookSendResponseHdr }
func (TxnCloseHook) Hook() api.HookID            { return api.HookTxnClose }

func (ReadRequestHeaderHook) clientRequest()   {}
func (PreRemapHook) clientRequest()            {}
func (RemapHook) clientRequest()               {}
func (PostRemapHook) clientRequest()           {}
func (OSDNSHook) clientRequest()               {}
func (CacheLookupCompleteHook) clientRequest() {}
func (SendRequestHeaderHook) clientRequest()   {}
func (ReadResponseHeaderHook) clientRequest()  {}
func (SendResponseHeaderHook) clientRequest()  {}
func (TxnCloseHook) clientRequest()            {}

func (SendRequestHeaderHook) serverRequest()  {}
func (ReadResponseHeaderHook) serverRequest() {}

func (ReadResponseHeaderHook) serverResponse() {}

func (SendResponseHeaderHook) clientResponse() {}
func (TxnCloseHook) clientResponse()           {}
