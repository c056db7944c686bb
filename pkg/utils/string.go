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

package utils

import (
	"runtime"
	"sync"
	"unicode/utf8"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/tsgo/tsgo/api"
)

// Getter calls a host string accessor. The accessor writes the byte length
// into length and returns the address of the first byte, or nil.
type Getter func(length *int32) unsafe.Pointer

// CheckedString validates the host string returned by get and returns it as a
// string sharing the host's memory. The result is only valid while the host
// buffer it was read from is alive; copy it with strings.Clone to keep it.
func CheckedString(get Getter) (string, error) {
	p, n, err := checked(get)
	if err != nil {
		return "", err
	}
	return unsafe.String((*byte)(p), n), nil
}

func checked(get Getter) (unsafe.Pointer, int, error) {
	var length int32
	p := get(&length)
	if p == nil {
		return nil, 0, api.ErrInvalidStringPointer
	}
	if length < 0 {
		return p, 0, errors.Wrapf(api.ErrInvalidStringLength, "length %d", length)
	}
	n := int(length)
	if off := InvalidUTF8Offset(unsafe.Slice((*byte)(p), n)); off >= 0 {
		return p, 0, &api.InvalidEncodingError{Offset: off}
	}
	return p, n, nil
}

// InvalidUTF8Offset returns the offset of the first byte of b that does not
// start a valid UTF-8 sequence, or -1 if b is valid.
func InvalidUTF8Offset(b []byte) int {
	if utf8.Valid(b) {
		return -1
	}
	for i := 0; i < len(b); {
		if b[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

// TrimNul cuts b at its first zero byte.
func TrimNul(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b
}

// OwnedString is a validated string allocated by the host on the plugin's
// behalf. Close hands the memory back to the host allocator; it runs exactly
// once, from Close or from the finalizer if the owner never calls it.
type OwnedString struct {
	ptr  unsafe.Pointer
	n    int
	free func(unsafe.Pointer)

	mu       sync.Mutex
	released bool
}

func ownedStringFinalize(s *OwnedString) {
	s.Close()
}

// CheckedOwnedString is CheckedString for accessors that return freshly
// allocated memory. Memory is released right away when validation fails.
func CheckedOwnedString(get Getter) (*OwnedString, error) {
	free := api.GetCAPI().Free
	p, n, err := checked(get)
	if err != nil {
		if p != nil {
			free(p)
		}
		return nil, err
	}
	s := &OwnedString{ptr: p, n: n, free: free}
	runtime.SetFinalizer(s, ownedStringFinalize)
	return s, nil
}

// String returns a view of the host memory, "" once released.
func (s *OwnedString) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return ""
	}
	return unsafe.String((*byte)(s.ptr), s.n)
}

// Copy returns a Go-owned copy.
func (s *OwnedString) Copy() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return ""
	}
	return string(unsafe.Slice((*byte)(s.ptr), s.n))
}

func (s *OwnedString) Len() int {
	return s.n
}

func (s *OwnedString) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return nil
	}
	s.released = true
	runtime.SetFinalizer(s, nil)
	s.free(s.ptr)
	return nil
}
