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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsgo/tsgo/api"
	"github.com/tsgo/tsgo/api/fake"
)

func TestLoadSettingsDefaults(t *testing.T) {
	for _, key := range []string{"TSGO_DEBUG_TAG", "TSGO_CACHE_READ_TIMEOUT"} {
		// Setenv restores the previous value on cleanup
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "tsgo", s.DebugTag)
	assert.Equal(t, 5*time.Second, s.CacheReadTimeout)
}

func TestLoadSettingsFromEnv(t *testing.T) {
	t.Setenv("TSGO_DEBUG_TAG", "remap-example")
	t.Setenv("TSGO_CACHE_READ_TIMEOUT", "250ms")

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "remap-example", s.DebugTag)
	assert.Equal(t, 250*time.Millisecond, s.CacheReadTimeout)

	t.Setenv("TSGO_CACHE_READ_TIMEOUT", "soon")
	_, err = LoadSettings()
	assert.Error(t, err)
}

func TestParseArgs(t *testing.T) {
	inst, err := Parse([]string{
		"http://example.com", "http://origin.internal", "remap-example",
		"header=X-Request-Id", "", "verbose", "redirect=false", "header=X-Trace-Id",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://example.com", inst.FromURL)
	assert.Equal(t, "http://origin.internal", inst.ToURL)
	assert.Equal(t, "remap-example", inst.Plugin)
	assert.Empty(t, inst.TypeURL)

	header, ok := inst.String("header")
	require.True(t, ok)
	assert.Equal(t, "X-Trace-Id", header)

	verbose, ok := inst.Bool("verbose")
	require.True(t, ok)
	assert.True(t, verbose)
	redirect, ok := inst.Bool("redirect")
	require.True(t, ok)
	assert.False(t, redirect)

	_, ok = inst.String("verbose")
	assert.False(t, ok)
	_, ok = inst.Bool("header")
	assert.False(t, ok)
	_, ok = inst.String("missing")
	assert.False(t, ok)

	assert.Equal(t, map[string]any{
		"header":   "X-Trace-Id",
		"verbose":  true,
		"redirect": "false",
	}, inst.Map())
}

func TestParseMissingArgs(t *testing.T) {
	_, err := Parse([]string{"http://example.com", "http://origin.internal"})
	assert.ErrorIs(t, err, ErrMissingArgs)
}

func TestParseTypedStructFile(t *testing.T) {
	host := fake.NewHost()
	dir, err := filepath.Abs("testdata")
	require.NoError(t, err)
	host.ConfigDir = dir
	api.SetCAPI(host)
	t.Cleanup(func() { api.SetCAPI(nil) })

	inst, err := Parse([]string{"from", "to", "plugin", "@header_rewrite.json", "limit=20"})
	require.NoError(t, err)
	assert.Equal(t, "type.googleapis.com/tsgo.remap.HeaderRewrite", inst.TypeURL)

	set, ok := inst.String("set")
	require.True(t, ok)
	assert.Equal(t, "X-Request-Id", set)
	redirect, ok := inst.Bool("redirect")
	require.True(t, ok)
	assert.False(t, redirect)
	limit, ok := inst.String("limit")
	require.True(t, ok)
	assert.Equal(t, "20", limit)

	abs := filepath.Join(dir, "header_rewrite.json")
	inst, err = Parse([]string{"from", "to", "plugin", "@" + abs})
	require.NoError(t, err)
	assert.Equal(t, float64(10), inst.Map()["limit"])
}

func TestParseTypedStructFileErrors(t *testing.T) {
	host := fake.NewHost()
	dir, err := filepath.Abs("testdata")
	require.NoError(t, err)
	host.ConfigDir = dir
	api.SetCAPI(host)
	t.Cleanup(func() { api.SetCAPI(nil) })

	_, err = Parse([]string{"from", "to", "plugin", "@missing.json"})
	assert.ErrorContains(t, err, "read config file")

	_, err = Parse([]string{"from", "to", "plugin", "@broken.json"})
	assert.ErrorContains(t, err, "decode config file")
}
