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
	"unsafe"

	"github.com/tsgo/tsgo/api"
	"github.com/tsgo/tsgo/pkg/utils"
)

// Request is a view of a request held by the host, either the client request
// or the request sent upstream.
type Request struct {
	bufp  api.MBuffer
	loc   api.MLoc
	scope *scope
}

func newRequest(bufp api.MBuffer, loc api.MLoc, s *scope) *Request {
	return &Request{bufp: bufp, loc: loc, scope: s}
}

func (r *Request) Method() (string, error) {
	if err := r.scope.check(); err != nil {
		return "", err
	}
	return utils.CheckedString(func(length *int32) unsafe.Pointer {
		return api.GetCAPI().HttpHdrMethodGet(r.bufp, r.loc, length)
	})
}

// Host returns the host of the request, taken from the URL or the Host header.
func (r *Request) Host() (string, error) {
	if err := r.scope.check(); err != nil {
		return "", err
	}
	return utils.CheckedString(func(length *int32) unsafe.Pointer {
		return api.GetCAPI().HttpHdrHostGet(r.bufp, r.loc, length)
	})
}

func (r *Request) URL() (*URL, error) {
	if err := r.scope.check(); err != nil {
		return nil, err
	}
	loc, rc := api.GetCAPI().HttpHdrUrlGet(r.bufp, r.loc)
	if !rc.OK() {
		return nil, api.ErrGetURLFailed
	}
	return newURL(r.bufp, loc, r.scope), nil
}

func (r *Request) Headers() *Headers {
	return newHeaders(r.bufp, r.loc, r.scope)
}
