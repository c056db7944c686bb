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
	"iter"
	"slices"
	"strings"
	"sync/atomic"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/tsgo/tsgo/api"
	"github.com/tsgo/tsgo/pkg/utils"
)

// Headers is a view of the MIME fields of a request or response.
type Headers struct {
	bufp  api.MBuffer
	loc   api.MLoc
	scope *scope
}

func newHeaders(bufp api.MBuffer, loc api.MLoc, s *scope) *Headers {
	return &Headers{bufp: bufp, loc: loc, scope: s}
}

// Len returns the number of fields, 0 once the owner ended.
func (h *Headers) Len() int {
	if h.scope.check() != nil {
		return 0
	}
	return api.GetCAPI().MimeHdrFieldsCount(h.bufp, h.loc)
}

// Fields yields the fields in order. Each field is released when the loop
// body returns, so it must not be kept past its iteration.
func (h *Headers) Fields() iter.Seq[*HeaderField] {
	return func(yield func(*HeaderField) bool) {
		n := h.Len()
		for i := 0; i < n; i++ {
			if h.scope.check() != nil {
				return
			}
			loc := api.GetCAPI().MimeHdrFieldGet(h.bufp, h.loc, i)
			if loc == api.NullMLoc {
				return
			}
			f, ok := h.open(loc)
			if !ok {
				return
			}
			more := yield(f)
			f.Close()
			if !more {
				return
			}
		}
	}
}

// Find returns the first field named name, compared case-insensitively.
// The caller must Close the field.
func (h *Headers) Find(name string) (*HeaderField, bool) {
	if h.scope.check() != nil {
		return nil, false
	}
	loc := api.GetCAPI().MimeHdrFieldFind(h.bufp, h.loc, name)
	if loc == api.NullMLoc {
		return nil, false
	}
	return h.open(loc)
}

// open wraps a field handle the host just handed out. If the scope ended in
// the meantime the handle is released at once.
func (h *Headers) open(loc api.MLoc) (*HeaderField, bool) {
	f := &HeaderField{headers: h, loc: loc}
	if !h.scope.track(f) {
		f.release()
		return nil, false
	}
	return f, true
}

// Get returns the first value of the field named name.
func (h *Headers) Get(name string) (string, bool) {
	f, ok := h.Find(name)
	if !ok {
		return "", false
	}
	defer f.Close()
	v, err := f.Value()
	if err != nil {
		return "", false
	}
	return v, true
}

// Names returns the distinct field names in order of first appearance.
// Fields whose name is not valid UTF-8 are left out.
func (h *Headers) Names() []string {
	var names []string
	for f := range h.Fields() {
		if name, err := f.Name(); err == nil {
			names = append(names, name)
		}
	}
	return lo.UniqBy(names, strings.ToLower)
}

// Set makes value the only value of the field named name. The first such
// field keeps its position, later duplicates are destroyed.
func (h *Headers) Set(name, value string) error {
	if err := h.scope.check(); err != nil {
		return err
	}
	dups := h.indexes(name)
	if len(dups) == 0 {
		return h.create(name, value)
	}
	cAPI := api.GetCAPI()
	for i := len(dups) - 1; i > 0; i-- {
		loc := cAPI.MimeHdrFieldGet(h.bufp, h.loc, dups[i])
		if loc == api.NullMLoc {
			return errors.Wrapf(api.ErrHostCallFailed, "get field %q", name)
		}
		rc := cAPI.MimeHdrFieldDestroy(h.bufp, h.loc, loc)
		cAPI.HandleMLocRelease(h.bufp, h.loc, loc)
		if !rc.OK() {
			return errors.Wrapf(api.ErrHostCallFailed, "remove duplicate %q", name)
		}
	}

	loc := cAPI.MimeHdrFieldGet(h.bufp, h.loc, dups[0])
	if loc == api.NullMLoc {
		return errors.Wrapf(api.ErrHostCallFailed, "get field %q", name)
	}
	defer cAPI.HandleMLocRelease(h.bufp, h.loc, loc)
	if rc := cAPI.MimeHdrFieldValuesClear(h.bufp, h.loc, loc); !rc.OK() {
		return errors.Wrapf(api.ErrHostCallFailed, "clear values of %q", name)
	}
	if rc := cAPI.MimeHdrFieldValueStringInsert(h.bufp, h.loc, loc, -1, value); !rc.OK() {
		return errors.Wrapf(api.ErrHostCallFailed, "set value of %q", name)
	}
	return nil
}

// indexes returns the positions of the fields named name, ascending.
func (h *Headers) indexes(name string) []int {
	cAPI := api.GetCAPI()
	var idx []int
	n := cAPI.MimeHdrFieldsCount(h.bufp, h.loc)
	for i := 0; i < n; i++ {
		loc := cAPI.MimeHdrFieldGet(h.bufp, h.loc, i)
		if loc == api.NullMLoc {
			break
		}
		got, err := utils.CheckedString(func(length *int32) unsafe.Pointer {
			return cAPI.MimeHdrFieldNameGet(h.bufp, h.loc, loc, length)
		})
		cAPI.HandleMLocRelease(h.bufp, h.loc, loc)
		if err == nil && strings.EqualFold(got, name) {
			idx = append(idx, i)
		}
	}
	return idx
}

// Append adds value to the field named name, creating the field if needed.
func (h *Headers) Append(name, value string) error {
	f, ok := h.Find(name)
	if !ok {
		if err := h.scope.check(); err != nil {
			return err
		}
		return h.create(name, value)
	}
	defer f.Close()
	if rc := api.GetCAPI().MimeHdrFieldValueStringInsert(h.bufp, h.loc, f.loc, -1, value); !rc.OK() {
		return errors.Wrapf(api.ErrHostCallFailed, "append value to %q", name)
	}
	return nil
}

// Remove destroys every field named name.
func (h *Headers) Remove(name string) error {
	if err := h.scope.check(); err != nil {
		return err
	}
	cAPI := api.GetCAPI()
	for {
		loc := cAPI.MimeHdrFieldFind(h.bufp, h.loc, name)
		if loc == api.NullMLoc {
			return nil
		}
		rc := cAPI.MimeHdrFieldDestroy(h.bufp, h.loc, loc)
		cAPI.HandleMLocRelease(h.bufp, h.loc, loc)
		if !rc.OK() {
			return errors.Wrapf(api.ErrHostCallFailed, "remove field %q", name)
		}
	}
}

func (h *Headers) create(name, value string) error {
	cAPI := api.GetCAPI()
	loc, rc := cAPI.MimeHdrFieldCreateNamed(h.bufp, h.loc, name)
	if !rc.OK() {
		return errors.Wrapf(api.ErrHostCallFailed, "create field %q", name)
	}
	defer cAPI.HandleMLocRelease(h.bufp, h.loc, loc)

	if rc := cAPI.MimeHdrFieldValueStringInsert(h.bufp, h.loc, loc, -1, value); !rc.OK() {
		return errors.Wrapf(api.ErrHostCallFailed, "set value of %q", name)
	}
	if rc := cAPI.MimeHdrFieldAppend(h.bufp, h.loc, loc); !rc.OK() {
		return errors.Wrapf(api.ErrHostCallFailed, "append field %q", name)
	}
	return nil
}

// ****************** header field start ******************//

// HeaderField is one MIME field. It holds a host handle that is released
// exactly once, by Close or when the owning transaction or remap call ends,
// whichever comes first.
type HeaderField struct {
	headers  *Headers
	loc      api.MLoc
	released atomic.Bool
}

func (f *HeaderField) check() error {
	if err := f.headers.scope.check(); err != nil {
		return err
	}
	if f.released.Load() {
		return api.ErrFieldReleased
	}
	return nil
}

func (f *HeaderField) Name() (string, error) {
	if err := f.check(); err != nil {
		return "", err
	}
	h := f.headers
	return utils.CheckedString(func(length *int32) unsafe.Pointer {
		return api.GetCAPI().MimeHdrFieldNameGet(h.bufp, h.loc, f.loc, length)
	})
}

// Value returns the first value. Unlike Values it reports an invalid value
// instead of skipping it.
func (f *HeaderField) Value() (string, error) {
	if err := f.check(); err != nil {
		return "", err
	}
	return f.value(0)
}

func (f *HeaderField) value(idx int) (string, error) {
	h := f.headers
	return utils.CheckedString(func(length *int32) unsafe.Pointer {
		return api.GetCAPI().MimeHdrFieldValueStringGet(h.bufp, h.loc, f.loc, idx, length)
	})
}

// Values iterates over the field's values, skipping those that are not
// valid strings.
func (f *HeaderField) Values() *ValueIter {
	if f.check() != nil {
		return &ValueIter{field: f}
	}
	h := f.headers
	return &ValueIter{
		field:  f,
		length: api.GetCAPI().MimeHdrFieldValuesCount(h.bufp, h.loc, f.loc),
	}
}

// Close releases the field handle. It is a no-op after the owner ended.
func (f *HeaderField) Close() {
	f.headers.scope.untrack(f)
	f.release()
}

func (f *HeaderField) release() {
	if !f.released.CompareAndSwap(false, true) {
		return
	}
	h := f.headers
	api.GetCAPI().HandleMLocRelease(h.bufp, h.loc, f.loc)
}

//******************* header field end *******************//

// ****************** value iterator start ******************//

type ValueIter struct {
	field  *HeaderField
	index  int
	length int
}

// Next returns the next valid value.
func (it *ValueIter) Next() (string, bool) {
	for it.index < it.length {
		if it.field.check() != nil {
			it.index = it.length
			return "", false
		}
		v, err := it.field.value(it.index)
		it.index++
		if err == nil {
			return v, true
		}
	}
	return "", false
}

// SizeHint returns bounds on the number of values left. The lower bound is
// 0 because invalid values are skipped.
func (it *ValueIter) SizeHint() (lower, upper int) {
	return 0, it.length - it.index
}

func (it *ValueIter) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Collect drains the iterator into a slice.
func (it *ValueIter) Collect() []string {
	return slices.Collect(it.All())
}

//******************* value iterator end *******************//
