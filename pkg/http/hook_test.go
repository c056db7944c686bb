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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsgo/tsgo/api"
	"github.com/tsgo/tsgo/pkg/continuation"
)

func TestAddGlobalHook(t *testing.T) {
	host := newHost(t)
	baseline := continuation.Pending()

	var seen []api.HttpTxn
	r, err := AddGlobalHook(func(txn *Transaction[ReadRequestHeaderHook]) {
		seen = append(seen, txn.Handle())
		req, err := ClientRequest(txn)
		require.NoError(t, err)
		method, err := req.Method()
		require.NoError(t, err)
		assert.Equal(t, "GET", method)
		require.NoError(t, txn.Resume())
	})
	require.NoError(t, err)
	assert.Equal(t, 1, host.CountCalls("hook_add read_request_hdr"))

	txn1, ft1 := newTxn(host)
	txn2, ft2 := newTxn(host)
	require.NoError(t, host.FireHook(api.HookReadRequestHdr, txn1))
	require.NoError(t, host.FireHook(api.HookReadRequestHdr, txn2))

	assert.Equal(t, []api.HttpTxn{txn1, txn2}, seen)
	assert.Equal(t, []api.Event{api.EventHttpContinue}, ft1.Reenabled)
	assert.Equal(t, []api.Event{api.EventHttpContinue}, ft2.Reenabled)

	r.Free()
	assert.Equal(t, baseline, continuation.Pending())
}

func TestAddGlobalHookUnexpectedEvent(t *testing.T) {
	host := newHost(t)

	called := false
	r, err := AddGlobalHook(func(*Transaction[SendResponseHeaderHook]) { called = true })
	require.NoError(t, err)
	defer r.Free()

	txnp, _ := newTxn(host)
	rc, err := host.Fire(r.Cont(), api.EventHttpTxnClose, api.EventData(txnp))
	require.NoError(t, err)
	assert.Equal(t, api.ReturnError, rc)
	assert.False(t, called)
	require.Len(t, host.ErrorLines(), 1)
	assert.Contains(t, host.ErrorLines()[0], "send_response_hdr")
}

func TestAddGlobalHookPanic(t *testing.T) {
	host := newHost(t)

	r, err := AddGlobalHook(func(*Transaction[ReadRequestHeaderHook]) {
		panic("plugin bug")
	})
	require.NoError(t, err)
	defer r.Free()

	txnp, ft := newTxn(host)
	rc, err := host.Fire(r.Cont(), api.HookReadRequestHdr.Event(), api.EventData(txnp))
	require.NoError(t, err)
	assert.Equal(t, api.ReturnError, rc)
	assert.Equal(t, []api.Event{api.EventHttpError}, ft.Reenabled)
	require.Len(t, host.ErrorLines(), 1)
	assert.Contains(t, host.ErrorLines()[0], "plugin bug")

	resumed, err := AddGlobalHook(func(txn *Transaction[SendResponseHeaderHook]) {
		require.NoError(t, txn.Resume())
		panic("after resume")
	})
	require.NoError(t, err)
	defer resumed.Free()

	txnp, ft = newTxn(host)
	require.NoError(t, host.FireHook(api.HookSendResponseHdr, txnp))
	assert.Equal(t, []api.Event{api.EventHttpContinue}, ft.Reenabled)
}

func TestAddGlobalHookRemapRejected(t *testing.T) {
	host := newHost(t)

	_, err := AddGlobalHook(func(*Transaction[RemapHook]) {})
	assert.ErrorIs(t, err, api.ErrHookNotSupported)
	assert.Zero(t, host.CountCalls("cont_create"))
}

func TestAddTransactionHook(t *testing.T) {
	host := newHost(t)
	baseline := continuation.Pending()
	txnp, ft := newTxn(host)
	txn := NewTransaction[ReadRequestHeaderHook](txnp)

	var status api.HttpStatus
	err := AddTransactionHook(txn, func(txn *Transaction[SendResponseHeaderHook]) {
		resp, err := ClientResponse(txn)
		require.NoError(t, err)
		status, _ = resp.Status()
		require.NoError(t, resp.Headers().Set("X-Served-By", "tsgo"))
		require.NoError(t, txn.Resume())
	})
	require.NoError(t, err)
	require.NoError(t, txn.Resume())

	require.NoError(t, host.FireHook(api.HookSendResponseHdr, txnp))
	require.NoError(t, host.FireHook(api.HookTxnClose, txnp))

	assert.Equal(t, api.HttpStatus(200), status)
	assert.Equal(t, []api.Event{api.EventHttpContinue, api.EventHttpContinue, api.EventHttpContinue}, ft.Reenabled)
	assert.Equal(t, baseline, continuation.Pending())
	assert.Zero(t, host.LiveConts())
	assert.Zero(t, host.DoubleDestroys)
}

func TestAddTransactionHookNeverFired(t *testing.T) {
	host := newHost(t)
	baseline := continuation.Pending()
	txnp, ft := newTxn(host)
	txn := NewTransaction[ReadRequestHeaderHook](txnp)

	called := false
	require.NoError(t, AddTransactionHook(txn, func(*Transaction[ReadResponseHeaderHook]) { called = true }))
	require.NoError(t, txn.Abort())

	require.NoError(t, host.FireHook(api.HookTxnClose, txnp))
	assert.False(t, called)
	assert.Equal(t, []api.Event{api.EventHttpError, api.EventHttpContinue}, ft.Reenabled)
	assert.Equal(t, baseline, continuation.Pending())
	assert.Zero(t, host.LiveConts())
}

func TestAddTransactionHookOnClose(t *testing.T) {
	host := newHost(t)
	txnp, ft := newTxn(host)
	txn := NewTransaction[TxnStartHook](txnp)

	require.NoError(t, AddTransactionHook(txn, func(txn *Transaction[TxnCloseHook]) {
		require.NoError(t, txn.Resume())
	}))
	assert.Equal(t, 1, host.CountCalls("txn_hook_add"))

	require.NoError(t, host.FireHook(api.HookTxnClose, txnp))
	assert.Equal(t, []api.Event{api.EventHttpContinue}, ft.Reenabled)

	require.NoError(t, txn.Resume())
	assert.ErrorIs(t, AddTransactionHook(txn, func(*Transaction[TxnCloseHook]) {}), api.ErrTransactionEnded)
}
