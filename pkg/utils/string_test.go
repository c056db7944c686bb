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
	"strings"
	"sync"
	"testing"
	"time"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsgo/tsgo/api"
)

var zero [1]byte

func hostBytes(b []byte) Getter {
	return func(length *int32) unsafe.Pointer {
		*length = int32(len(b))
		if len(b) == 0 {
			return unsafe.Pointer(&zero[0])
		}
		return unsafe.Pointer(&b[0])
	}
}

func TestCheckedStringNullPointer(t *testing.T) {
	_, err := CheckedString(func(length *int32) unsafe.Pointer {
		*length = 12
		return nil
	})
	require.ErrorIs(t, err, api.ErrInvalidStringPointer)
}

func TestCheckedStringNegativeLength(t *testing.T) {
	b := []byte("abc")
	_, err := CheckedString(func(length *int32) unsafe.Pointer {
		*length = -1
		return unsafe.Pointer(&b[0])
	})
	require.ErrorIs(t, err, api.ErrInvalidStringLength)
	assert.Contains(t, err.Error(), "-1")
}

func TestCheckedStringInvalidEncoding(t *testing.T) {
	tests := []struct {
		name   string
		input  []byte
		offset int
	}{
		{name: "lone continuation", input: []byte("ab\x80cd"), offset: 2},
		{name: "invalid first byte", input: []byte("\xff"), offset: 0},
		{name: "truncated sequence", input: []byte("héllo\xe2\x82"), offset: 6},
		{name: "surrogate", input: []byte("x\xed\xa0\x80"), offset: 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CheckedString(hostBytes(tc.input))
			require.ErrorIs(t, err, api.ErrInvalidStringEncoding)

			var encErr *api.InvalidEncodingError
			require.True(t, errors.As(err, &encErr))
			assert.Equal(t, tc.offset, encErr.Offset)
		})
	}
}

func TestCheckedStringRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"GET",
		"example.com",
		"/päth/ünïcode/日本語",
		strings.Repeat("x", 1<<16),
		"emoji 🚀 in header",
	}
	for _, in := range inputs {
		b := []byte(in)
		out, err := CheckedString(hostBytes(b))
		require.NoError(t, err)
		assert.Equal(t, in, out)
		if len(b) > 0 {
			// zero copy: the result shares the host bytes
			assert.Equal(t, unsafe.Pointer(&b[0]), unsafe.Pointer(unsafe.StringData(out)))
		}
	}
}

func TestTrimNul(t *testing.T) {
	assert.Equal(t, []byte("abc"), TrimNul([]byte("abc\x00\x00def")))
	assert.Equal(t, []byte("abc"), TrimNul([]byte("abc")))
	assert.Empty(t, TrimNul([]byte{0, 'a'}))
}

type freeRecorder struct {
	api.CAPI

	mu    sync.Mutex
	freed map[unsafe.Pointer]int
}

func (f *freeRecorder) Free(ptr unsafe.Pointer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.freed[ptr]++
}

func (f *freeRecorder) count(ptr unsafe.Pointer) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.freed[ptr]
}

func withFreeRecorder(t *testing.T) *freeRecorder {
	rec := &freeRecorder{freed: make(map[unsafe.Pointer]int)}
	prev := api.GetCAPI()
	api.SetCAPI(rec)
	t.Cleanup(func() { api.SetCAPI(prev) })
	return rec
}

func TestCheckedOwnedStringReleasesOnce(t *testing.T) {
	rec := withFreeRecorder(t)
	b := []byte("http://example.com/")
	p := unsafe.Pointer(&b[0])

	s, err := CheckedOwnedString(hostBytes(b))
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/", s.String())
	assert.Equal(t, len(b), s.Len())

	cp := s.Copy()
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.Equal(t, 1, rec.count(p))
	assert.Equal(t, "", s.String())
	assert.Equal(t, "http://example.com/", cp)
}

func TestCheckedOwnedStringReleasesInvalid(t *testing.T) {
	rec := withFreeRecorder(t)
	b := []byte("bad\xff")

	_, err := CheckedOwnedString(hostBytes(b))
	require.ErrorIs(t, err, api.ErrInvalidStringEncoding)
	assert.Equal(t, 1, rec.count(unsafe.Pointer(&b[0])))
}

func TestCheckedOwnedStringFinalizer(t *testing.T) {
	rec := withFreeRecorder(t)
	b := []byte("never read")
	p := unsafe.Pointer(&b[0])

	func() {
		_, err := CheckedOwnedString(hostBytes(b))
		require.NoError(t, err)
	}()

	require.Eventually(t, func() bool {
		runtime.GC()
		return rec.count(p) == 1
	}, 5*time.Second, 10*time.Millisecond)
	runtime.KeepAlive(b)
}
