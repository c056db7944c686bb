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

package remap

import (
	"sync"

	"github.com/tsgo/tsgo/api"
	"github.com/tsgo/tsgo/pkg/config"
	"github.com/tsgo/tsgo/pkg/http"
)

// Plugin handles remap requests for one remap rule. If it also implements
// io.Closer, Close is called when the rule is unloaded.
type Plugin interface {
	DoRemap(txn *http.Transaction[http.RemapHook], rri *http.RemapRequestInfo) api.RemapStatus
}

// Factory builds a Plugin for one remap rule.
type Factory func(cfg *config.Instance) (Plugin, error)

var remapPluginFactories = sync.Map{}

// Register makes a plugin available under name, the third remap rule
// argument. Call it from an init function.
func Register(name string, factory Factory) {
	if factory == nil {
		panic("remap plugin factory should not be nil")
	}
	remapPluginFactories.Store(name, factory)
}

func getFactory(name string) (Factory, bool) {
	v, ok := remapPluginFactories.Load(name)
	if !ok {
		return nil, false
	}
	return v.(Factory), true
}
