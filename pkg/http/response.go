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

// Response is a view of a response held by the host.
type Response struct {
	bufp  api.MBuffer
	loc   api.MLoc
	scope *scope
}

func newResponse(bufp api.MBuffer, loc api.MLoc, s *scope) *Response {
	return &Response{bufp: bufp, loc: loc, scope: s}
}

// Status returns the status code, false when the host has none set.
func (r *Response) Status() (api.HttpStatus, bool) {
	if r.scope.check() != nil {
		return api.HttpStatusNone, false
	}
	status := api.GetCAPI().HttpHdrStatusGet(r.bufp, r.loc)
	if status == api.HttpStatusNone {
		return api.HttpStatusNone, false
	}
	return status, true
}

func (r *Response) Reason() (string, error) {
	if err := r.scope.check(); err != nil {
		return "", err
	}
	return utils.CheckedString(func(length *int32) unsafe.Pointer {
		return api.GetCAPI().HttpHdrReasonGet(r.bufp, r.loc, length)
	})
}

func (r *Response) Headers() *Headers {
	return newHeaders(r.bufp, r.loc, r.scope)
}
