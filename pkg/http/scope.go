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
	"sync"
	"sync/atomic"

	"github.com/tsgo/tsgo/api"
)

// scope is shared by every view derived from one owner. Views keep working
// until the owner ends it, then fail with api.ErrScopeEnded. Field handles
// still open at that point are released by end, before the owner hands
// control back to the host.
type scope struct {
	ended atomic.Bool

	mu     sync.Mutex
	fields map[*HeaderField]struct{}
}

func (s *scope) check() error {
	if s.ended.Load() {
		return api.ErrScopeEnded
	}
	return nil
}

// track registers an open field. It returns false once the scope ended, the
// caller then owns the release.
func (s *scope) track(f *HeaderField) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended.Load() {
		return false
	}
	if s.fields == nil {
		s.fields = make(map[*HeaderField]struct{})
	}
	s.fields[f] = struct{}{}
	return true
}

func (s *scope) untrack(f *HeaderField) {
	s.mu.Lock()
	delete(s.fields, f)
	s.mu.Unlock()
}

func (s *scope) end() {
	s.mu.Lock()
	s.ended.Store(true)
	fields := s.fields
	s.fields = nil
	s.mu.Unlock()

	for f := range fields {
		f.release()
	}
}
