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

package cache

import (
	"runtime"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/tsgo/tsgo/api"
)

var ErrObjectClosed = errors.New("cache object already closed")

// Object is an open cache entry. It owns the host connection and, once
// Buffer has been called, an I/O buffer for reading the body.
type Object struct {
	vconn api.VConn

	mu     sync.Mutex
	buf    api.IOBuffer
	closed bool
}

func objectFinalize(o *Object) {
	o.Close()
}

func newObject(vconn api.VConn) *Object {
	o := &Object{vconn: vconn}
	runtime.SetFinalizer(o, objectFinalize)
	return o
}

func (o *Object) VConn() api.VConn {
	return o.vconn
}

// Size reports the size of the cached object in bytes.
func (o *Object) Size() int64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return 0
	}
	return api.GetCAPI().VConnCacheObjectSizeGet(o.vconn)
}

// Buffer returns the object's I/O buffer, allocating it on first use.
func (o *Object) Buffer() (api.IOBuffer, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return 0, ErrObjectClosed
	}
	if o.buf == 0 {
		o.buf = api.GetCAPI().IOBufferCreate()
	}
	return o.buf, nil
}

// Close destroys the I/O buffer, if any, and then closes the connection.
// Only the first call has an effect.
func (o *Object) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	runtime.SetFinalizer(o, nil)

	cAPI := api.GetCAPI()
	if o.buf != 0 {
		cAPI.IOBufferDestroy(o.buf)
		o.buf = 0
	}
	cAPI.VConnClose(o.vconn)
}
