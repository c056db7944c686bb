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

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Errors raised at the FFI boundary while reading host strings.
var (
	ErrInvalidStringPointer  = errors.New("invalid string pointer")
	ErrInvalidStringLength   = errors.New("invalid string length")
	ErrInvalidStringEncoding = errors.New("invalid string encoding")
)

// InvalidEncodingError reports the offset of the first byte that is not part
// of a valid UTF-8 sequence.
type InvalidEncodingError struct {
	Offset int
}

func (e *InvalidEncodingError) Error() string {
	return fmt.Sprintf("%s: invalid utf-8 sequence at byte %d", ErrInvalidStringEncoding, e.Offset)
}

func (e *InvalidEncodingError) Unwrap() error {
	return ErrInvalidStringEncoding
}

// Errors raised when a host accessor returns its own failure code.
var (
	ErrGetClientRequestFailed     = errors.New("failed to get client request from transaction")
	ErrGetServerRequestFailed     = errors.New("failed to get server request from transaction")
	ErrGetClientResponseFailed    = errors.New("failed to get client response from transaction")
	ErrGetServerResponseFailed    = errors.New("failed to get server response from transaction")
	ErrGetURLFailed               = errors.New("failed to get url from request")
	ErrGetClientRequestUUIDFailed = errors.New("failed to get client request uuid from transaction")
	ErrInvalidString              = errors.New("invalid string")
	ErrHostCallFailed             = errors.New("host call failed")
)

// Errors raised when a handle is used outside of its lifetime.
var (
	ErrTransactionEnded = errors.New("transaction already resumed or aborted")
	ErrScopeEnded       = errors.New("view used after its owner ended")
	ErrFieldReleased    = errors.New("header field already released")
	ErrHookNotSupported = errors.New("hook can not be registered with the host")
)
