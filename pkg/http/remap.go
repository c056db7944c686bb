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

import (
	"github.com/tsgo/tsgo/api"
)

// RemapRequestInfo is the host's remap information for one request, valid
// for the duration of a single DoRemap call.
type RemapRequestInfo struct {
	rri   api.RemapInfo
	req   api.RemapRequest
	scope *scope
}

func NewRemapRequestInfo(rri api.RemapInfo) *RemapRequestInfo {
	return &RemapRequestInfo{
		rri:   rri,
		req:   api.GetCAPI().RemapRequestGet(rri),
		scope: &scope{},
	}
}

// NewRemap returns the transaction and remap information handed to a remap
// plugin. They share one scope, so End on the information also ends every
// view obtained through the transaction.
func NewRemap(txnp api.HttpTxn, rri api.RemapInfo) (*Transaction[RemapHook], *RemapRequestInfo) {
	info := NewRemapRequestInfo(rri)
	return &Transaction[RemapHook]{txnp: txnp, scope: info.scope}, info
}

// MappedFrom is the "from" URL of the matching remap rule.
func (r *RemapRequestInfo) MappedFrom() *URL {
	return newURL(r.req.RequestBuf, r.req.MapFromURL, r.scope)
}

// MappedTo is the "to" URL of the matching remap rule.
func (r *RemapRequestInfo) MappedTo() *URL {
	return newURL(r.req.RequestBuf, r.req.MapToURL, r.scope)
}

// RequestURL is the URL being remapped. Changes made through it are what
// the host forwards.
func (r *RemapRequestInfo) RequestURL() *URL {
	return newURL(r.req.RequestBuf, r.req.RequestURL, r.scope)
}

func (r *RemapRequestInfo) RequestHeaders() *Headers {
	return newHeaders(r.req.RequestBuf, r.req.RequestHdr, r.scope)
}

func (r *RemapRequestInfo) Redirect() bool {
	return r.req.Redirect
}

// SetRedirect asks the host to answer with a redirect to the remapped URL.
func (r *RemapRequestInfo) SetRedirect(redirect bool) error {
	if err := r.scope.check(); err != nil {
		return err
	}
	api.GetCAPI().RemapRedirectSet(r.rri, redirect)
	r.req.Redirect = redirect
	return nil
}

// End invalidates every view obtained from r. The remap entry point calls it
// once the plugin returned.
func (r *RemapRequestInfo) End() {
	r.scope.end()
}
