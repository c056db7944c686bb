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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsgo/tsgo/api"
	"github.com/tsgo/tsgo/api/fake"
)

func newHeadersFor(t *testing.T, fields ...*fake.Field) (*fake.Host, *fake.Header, *Headers) {
	t.Helper()
	host := newHost(t)
	hdr := &fake.Header{Fields: fields}
	bufp, loc := host.NewMessage(hdr)
	return host, hdr, newHeaders(bufp, loc, &scope{})
}

func TestHeadersFields(t *testing.T) {
	host, _, headers := newHeadersFor(t,
		fake.NewField("Host", "example.com"),
		fake.NewField("Accept", "text/html"),
		fake.NewField("Cookie", "a=1", "b=2"),
	)

	assert.Equal(t, 3, headers.Len())
	var names []string
	for f := range headers.Fields() {
		name, err := f.Name()
		require.NoError(t, err)
		names = append(names, name)
		assert.Equal(t, 1, host.OpenFieldHandles())
	}
	assert.Equal(t, []string{"Host", "Accept", "Cookie"}, names)
	assert.Zero(t, host.OpenFieldHandles())

	calls := host.Calls()
	require.Len(t, calls, 6)
	for i := 0; i < len(calls); i += 2 {
		assert.True(t, strings.HasPrefix(calls[i], "field_acquire"))
		assert.Equal(t, strings.Replace(calls[i], "acquire", "release", 1), calls[i+1])
	}
}

func TestHeadersFieldsBreak(t *testing.T) {
	host, _, headers := newHeadersFor(t,
		fake.NewField("A", "1"),
		fake.NewField("B", "2"),
		fake.NewField("C", "3"),
	)

	var kept *HeaderField
	for f := range headers.Fields() {
		kept = f
		break
	}
	assert.Zero(t, host.OpenFieldHandles())
	assert.Equal(t, 1, host.CountCalls("field_acquire"))

	_, err := kept.Name()
	assert.ErrorIs(t, err, api.ErrFieldReleased)
	kept.Close()
	assert.Zero(t, host.DoubleReleases)
}

func TestHeadersFieldsStopAtNull(t *testing.T) {
	_, _, headers := newHeadersFor(t,
		fake.NewField("A", "1"),
		nil,
		fake.NewField("C", "3"),
	)

	assert.Equal(t, 3, headers.Len())
	n := 0
	for range headers.Fields() {
		n++
	}
	assert.Equal(t, 1, n)
}

func TestHeaderFieldValues(t *testing.T) {
	host, _, headers := newHeadersFor(t,
		fake.NewField("X-Mixed", "ok", "\xff\xfe", "fine"),
		fake.NewField("X-Bad-First", "\xc3\x28", "good"),
	)

	f, ok := headers.Find("x-mixed")
	require.True(t, ok)
	defer f.Close()

	it := f.Values()
	lower, upper := it.SizeHint()
	assert.Equal(t, 0, lower)
	assert.Equal(t, 3, upper)

	var values []string
	for v := range it.All() {
		values = append(values, v)
	}
	assert.Equal(t, []string{"ok", "fine"}, values)
	_, upper = it.SizeHint()
	assert.Zero(t, upper)
	_, ok = it.Next()
	assert.False(t, ok)

	v, err := f.Value()
	require.NoError(t, err)
	assert.Equal(t, "ok", v)

	bad, ok := headers.Find("X-Bad-First")
	require.True(t, ok)
	_, err = bad.Value()
	assert.ErrorIs(t, err, api.ErrInvalidStringEncoding)
	bad.Close()
	bad.Close()

	_, err = bad.Value()
	assert.ErrorIs(t, err, api.ErrFieldReleased)
	_, ok = bad.Values().Next()
	assert.False(t, ok)
	assert.Zero(t, host.DoubleReleases)
}

func TestHeadersFindAndGet(t *testing.T) {
	host, _, headers := newHeadersFor(t,
		fake.NewField("Content-Type", "text/plain"),
	)

	_, ok := headers.Find("Missing")
	assert.False(t, ok)
	assert.Zero(t, host.CountCalls("field_acquire"))

	v, ok := headers.Get("content-type")
	require.True(t, ok)
	assert.Equal(t, "text/plain", v)
	_, ok = headers.Get("Missing")
	assert.False(t, ok)
	assert.Zero(t, host.OpenFieldHandles())
}

func TestHeaderFieldReleasedWithScope(t *testing.T) {
	host, _, headers := newHeadersFor(t,
		fake.NewField("Content-Type", "text/plain"),
		fake.NewField("Accept", "*/*"),
	)

	kept, ok := headers.Find("Content-Type")
	require.True(t, ok)
	closed, ok := headers.Find("Accept")
	require.True(t, ok)
	closed.Close()
	assert.Equal(t, 1, host.OpenFieldHandles())

	headers.scope.end()
	assert.Zero(t, host.OpenFieldHandles())

	kept.Close()
	_, err := kept.Name()
	assert.ErrorIs(t, err, api.ErrScopeEnded)
	assert.Equal(t, 2, host.CountCalls("field_release"))
	assert.Zero(t, host.DoubleReleases)

	_, ok = headers.Find("Content-Type")
	assert.False(t, ok)
}

func TestHeadersNames(t *testing.T) {
	_, _, headers := newHeadersFor(t,
		fake.NewField("Set-Cookie", "a=1"),
		fake.NewField("Vary", "Accept"),
		fake.NewField("set-cookie", "b=2"),
		&fake.Field{Name: []byte("\xff"), Values: [][]byte{[]byte("x")}},
	)

	assert.Equal(t, []string{"Set-Cookie", "Vary"}, headers.Names())
}

func TestHeadersWrite(t *testing.T) {
	host, hdr, headers := newHeadersFor(t,
		fake.NewField("Cache-Control", "no-cache"),
		fake.NewField("Via", "proxy-a"),
		fake.NewField("cache-control", "private"),
	)

	require.NoError(t, headers.Set("Cache-Control", "max-age=60"))
	require.Len(t, hdr.Fields, 2)
	assert.Equal(t, "Cache-Control", string(hdr.Fields[0].Name))
	assert.Equal(t, [][]byte{[]byte("max-age=60")}, hdr.Fields[0].Values)
	assert.Equal(t, "Via", string(hdr.Fields[1].Name))
	values := []string{}
	for f := range headers.Fields() {
		name, _ := f.Name()
		if strings.EqualFold(name, "Cache-Control") {
			values = append(values, f.Values().Collect()...)
		}
	}
	assert.Equal(t, []string{"max-age=60"}, values)

	require.NoError(t, headers.Append("Via", "proxy-b"))
	require.NoError(t, headers.Append("X-Request-Id", "abc"))
	v, ok := headers.Get("X-Request-Id")
	require.True(t, ok)
	assert.Equal(t, "abc", v)

	via, ok := headers.Find("Via")
	require.True(t, ok)
	assert.Equal(t, []string{"proxy-a", "proxy-b"}, via.Values().Collect())
	via.Close()

	require.NoError(t, headers.Remove("via"))
	_, ok = headers.Find("Via")
	assert.False(t, ok)
	require.NoError(t, headers.Remove("Via"))

	assert.Len(t, hdr.Fields, 2)
	assert.Zero(t, host.OpenFieldHandles())
	assert.Zero(t, host.DoubleReleases)
}

func TestHeadersWriteAfterEnd(t *testing.T) {
	_, _, headers := newHeadersFor(t, fake.NewField("A", "1"))
	headers.scope.end()

	assert.ErrorIs(t, headers.Set("A", "2"), api.ErrScopeEnded)
	assert.ErrorIs(t, headers.Append("B", "2"), api.ErrScopeEnded)
	assert.ErrorIs(t, headers.Remove("A"), api.ErrScopeEnded)
	n := 0
	for range headers.Fields() {
		n++
	}
	assert.Zero(t, n)
}
