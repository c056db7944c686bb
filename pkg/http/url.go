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

	"github.com/cockroachdb/errors"

	"github.com/tsgo/tsgo/api"
	"github.com/tsgo/tsgo/pkg/utils"
)

// URL is a view of a URL inside a host buffer. Getters return strings that
// share the host's memory and stay valid as long as the owning transaction.
type URL struct {
	bufp  api.MBuffer
	loc   api.MLoc
	scope *scope
}

func newURL(bufp api.MBuffer, loc api.MLoc, s *scope) *URL {
	return &URL{bufp: bufp, loc: loc, scope: s}
}

func (u *URL) get(field api.URLField) (string, error) {
	if err := u.scope.check(); err != nil {
		return "", err
	}
	return utils.CheckedString(func(length *int32) unsafe.Pointer {
		return api.GetCAPI().UrlGet(u.bufp, u.loc, field, length)
	})
}

func (u *URL) Scheme() (string, error)   { return u.get(api.URLScheme) }
func (u *URL) User() (string, error)     { return u.get(api.URLUser) }
func (u *URL) Password() (string, error) { return u.get(api.URLPassword) }
func (u *URL) Host() (string, error)     { return u.get(api.URLHost) }
func (u *URL) Path() (string, error)     { return u.get(api.URLPath) }
func (u *URL) Query() (string, error)    { return u.get(api.URLQuery) }
func (u *URL) Params() (string, error)   { return u.get(api.URLParams) }
func (u *URL) Fragment() (string, error) { return u.get(api.URLFragment) }

// Port returns the port as reported by the host. The host fills in the
// scheme's default when the URL has none. 0 once the owner ended.
func (u *URL) Port() int {
	if u.scope.check() != nil {
		return 0
	}
	return api.GetCAPI().UrlPortGet(u.bufp, u.loc)
}

// String returns the whole URL. The host renders it into a fresh
// allocation, the result is a Go copy.
func (u *URL) String() (string, error) {
	if err := u.scope.check(); err != nil {
		return "", err
	}
	s, err := utils.CheckedOwnedString(func(length *int32) unsafe.Pointer {
		return api.GetCAPI().UrlStringGet(u.bufp, u.loc, length)
	})
	if err != nil {
		return "", err
	}
	defer s.Close()
	return s.Copy(), nil
}

func (u *URL) set(field api.URLField, value string) error {
	if err := u.scope.check(); err != nil {
		return err
	}
	if rc := api.GetCAPI().UrlSet(u.bufp, u.loc, field, value); !rc.OK() {
		return errors.Wrapf(api.ErrHostCallFailed, "set url %s", field)
	}
	return nil
}

func (u *URL) SetScheme(scheme string) error { return u.set(api.URLScheme, scheme) }
func (u *URL) SetHost(host string) error     { return u.set(api.URLHost, host) }
func (u *URL) SetPath(path string) error     { return u.set(api.URLPath, path) }
func (u *URL) SetQuery(query string) error   { return u.set(api.URLQuery, query) }

func (u *URL) SetPort(port int) error {
	if err := u.scope.check(); err != nil {
		return err
	}
	if port < 0 || port > 65535 {
		return errors.Newf("invalid port %d", port)
	}
	if rc := api.GetCAPI().UrlPortSet(u.bufp, u.loc, port); !rc.OK() {
		return errors.Wrap(api.ErrHostCallFailed, "set url port")
	}
	return nil
}
