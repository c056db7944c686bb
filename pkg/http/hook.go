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
	"github.com/tsgo/tsgo/pkg/continuation"
)

var ErrUnexpectedHookEvent = errors.New("unexpected hook event")

func hookHandler[P Phase](fn func(*Transaction[P])) continuation.Handler {
	var p P
	hook := p.Hook()
	return func(event api.Event, edata api.EventData) error {
		if event != hook.Event() {
			api.Errorf("event %s delivered to %s hook, ignored", event, hook)
			return errors.Wrapf(ErrUnexpectedHookEvent, "event %s on hook %s", event, hook)
		}
		txn := NewTransaction[P](api.HttpTxn(edata))
		defer func() {
			if r := recover(); r != nil {
				// the host waits for a reenable that fn will never send
				if !txn.Ended() {
					_ = txn.Abort()
				}
				panic(r)
			}
		}()
		fn(txn)
		return nil
	}
}

func registrable(hook api.HookID) error {
	if !hook.Registrable() {
		return errors.Wrapf(api.ErrHookNotSupported, "hook %s", hook)
	}
	return nil
}

// AddGlobalHook calls fn for every transaction reaching hook P. fn must
// Resume or Abort the transaction, possibly later from another goroutine.
// Free the
// returned continuation only when the host can no longer fire the hook.
func AddGlobalHook[P Phase](fn func(*Transaction[P])) (*continuation.Recurring, error) {
	var p P
	if err := registrable(p.Hook()); err != nil {
		return nil, err
	}
	r := continuation.New(hookHandler(fn))
	api.GetCAPI().HttpHookAdd(p.Hook(), r.Cont())
	return r, nil
}

// AddTransactionHook calls fn when txn reaches hook P. If the transaction
// closes first, the handler is released without being called.
func AddTransactionHook[P Phase, Q Phase](txn *Transaction[Q], fn func(*Transaction[P])) error {
	var p P
	hook := p.Hook()
	if err := registrable(hook); err != nil {
		return err
	}
	if txn.Ended() {
		return api.ErrTransactionEnded
	}

	cAPI := api.GetCAPI()
	var fired atomic.Bool
	handler := hookHandler(fn)
	contp := continuation.NewOnce(func(event api.Event, edata api.EventData) error {
		fired.Store(true)
		return handler(event, edata)
	})
	cAPI.HttpTxnHookAdd(txn.txnp, hook, contp)
	if hook == api.HookTxnClose {
		return nil
	}

	cleanup := continuation.NewOnce(func(api.Event, api.EventData) error {
		if !fired.Load() {
			continuation.Abandon(contp)
		}
		api.GetCAPI().HttpTxnReenable(txn.txnp, api.EventHttpContinue)
		return nil
	})
	cAPI.HttpTxnHookAdd(txn.txnp, api.HookTxnClose, cleanup)
	return nil
}
