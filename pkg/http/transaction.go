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
	"sync/atomic"

	"github.com/cockroachdb/errors"

	"github.com/tsgo/tsgo/api"
	"github.com/tsgo/tsgo/pkg/utils"
)

// Transaction is an HTTP transaction as seen from hook P. Resume or Abort
// hands it back to the host; both end every view obtained from it.
type Transaction[P Phase] struct {
	txnp  api.HttpTxn
	scope *scope
	done  atomic.Bool
}

func NewTransaction[P Phase](txnp api.HttpTxn) *Transaction[P] {
	return &Transaction[P]{
		txnp:  txnp,
		scope: &scope{},
	}
}

func (t *Transaction[P]) Handle() api.HttpTxn {
	return t.txnp
}

func (t *Transaction[P]) Hook() api.HookID {
	var p P
	return p.Hook()
}

// Ended reports whether Resume or Abort has been called.
func (t *Transaction[P]) Ended() bool {
	return t.done.Load()
}

// Resume lets the host continue processing the transaction.
func (t *Transaction[P]) Resume() error {
	return t.reenable(api.EventHttpContinue)
}

// Abort makes the host end the transaction with an error.
func (t *Transaction[P]) Abort() error {
	return t.reenable(api.EventHttpError)
}

func (t *Transaction[P]) reenable(event api.Event) error {
	if !t.done.CompareAndSwap(false, true) {
		return api.ErrTransactionEnded
	}
	t.scope.end()
	api.GetCAPI().HttpTxnReenable(t.txnp, event)
	return nil
}

// ClientRequestUUID returns the UUID the host assigned to the client request.
func (t *Transaction[P]) ClientRequestUUID() (string, error) {
	if t.done.Load() {
		return "", api.ErrTransactionEnded
	}
	buf := make([]byte, api.CRUUIDLen)
	if rc := api.GetCAPI().ClientRequestUuidGet(t.txnp, buf); !rc.OK() {
		return "", api.ErrGetClientRequestUUIDFailed
	}
	buf = utils.TrimNul(buf)
	if off := utils.InvalidUTF8Offset(buf); off >= 0 {
		return "", errors.Wrapf(api.ErrInvalidString, "invalid utf-8 at byte %d", off)
	}
	return string(buf), nil
}

func (t *Transaction[P]) message(msg api.HttpMessage, failed error) (api.MBuffer, api.MLoc, error) {
	if t.done.Load() {
		return 0, api.NullMLoc, api.ErrTransactionEnded
	}
	bufp, loc, rc := api.GetCAPI().HttpTxnMessageGet(t.txnp, msg)
	if !rc.OK() {
		return 0, api.NullMLoc, failed
	}
	return bufp, loc, nil
}

// ClientRequest returns the request as received from the client.
func ClientRequest[P ClientRequestReader](t *Transaction[P]) (*Request, error) {
	bufp, loc, err := t.message(api.ClientRequest, api.ErrGetClientRequestFailed)
	if err != nil {
		return nil, err
	}
	return newRequest(bufp, loc, t.scope), nil
}

// ServerRequest returns the request that is sent to the origin.
func ServerRequest[P ServerRequestReader](t *Transaction[P]) (*Request, error) {
	bufp, loc, err := t.message(api.ServerRequest, api.ErrGetServerRequestFailed)
	if err != nil {
		return nil, err
	}
	return newRequest(bufp, loc, t.scope), nil
}

// ServerResponse returns the response as received from the origin.
func ServerResponse[P ServerResponseReader](t *Transaction[P]) (*Response, error) {
	bufp, loc, err := t.message(api.ServerResponse, api.ErrGetServerResponseFailed)
	if err != nil {
		return nil, err
	}
	return newResponse(bufp, loc, t.scope), nil
}

// ClientResponse returns the response that is sent to the client.
func ClientResponse[P ClientResponseReader](t *Transaction[P]) (*Response, error) {
	bufp, loc, err := t.message(api.ClientResponse, api.ErrGetClientResponseFailed)
	if err != nil {
		return nil, err
	}
	return newResponse(bufp, loc, t.scope), nil
}
