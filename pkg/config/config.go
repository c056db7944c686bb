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

// Package config holds plugin-wide settings read from the environment and
// per-instance configuration read from remap rule arguments.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	xds "github.com/cncf/xds/go/xds/type/v3"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tsgo/tsgo/api"
)

// Settings apply to every plugin loaded into the process.
type Settings struct {
	DebugTag         string        `env:"TSGO_DEBUG_TAG" envDefault:"tsgo"`
	CacheReadTimeout time.Duration `env:"TSGO_CACHE_READ_TIMEOUT" envDefault:"5s"`
}

func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return s, errors.Wrap(err, "failed to parse environment")
	}
	return s, nil
}

var ErrMissingArgs = errors.New("remap instance needs from url, to url and plugin name")

// Instance is the configuration of one remap rule.
type Instance struct {
	FromURL string
	ToURL   string
	Plugin  string
	// TypeURL is set when the configuration came from a typed struct file.
	TypeURL string
	Values  *structpb.Struct
}

// Parse reads remap rule arguments: from url, to url, plugin name, then any
// number of key=value pairs or @file references. A file holds a JSON encoded
// xds.type.v3.TypedStruct and is resolved against the host config dir when
// relative. Later arguments override earlier ones.
func Parse(args []string) (*Instance, error) {
	if len(args) < 3 {
		return nil, errors.Wrapf(ErrMissingArgs, "got %d args", len(args))
	}
	inst := &Instance{
		FromURL: args[0],
		ToURL:   args[1],
		Plugin:  args[2],
		Values:  &structpb.Struct{Fields: map[string]*structpb.Value{}},
	}

	params := lo.Filter(args[3:], func(arg string, _ int) bool {
		return strings.TrimSpace(arg) != ""
	})
	for _, arg := range params {
		if path, ok := strings.CutPrefix(arg, "@"); ok {
			ts, err := loadTypedStruct(path)
			if err != nil {
				return nil, err
			}
			inst.TypeURL = ts.GetTypeUrl()
			for k, v := range ts.GetValue().GetFields() {
				inst.Values.Fields[k] = v
			}
			continue
		}
		key, value, found := strings.Cut(arg, "=")
		if !found {
			// a bare key switches a flag on
			inst.Values.Fields[key] = structpb.NewBoolValue(true)
			continue
		}
		inst.Values.Fields[key] = structpb.NewStringValue(value)
	}
	return inst, nil
}

func loadTypedStruct(path string) (*xds.TypedStruct, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(api.ConfigDir(), path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}
	ts := &xds.TypedStruct{}
	if err := protojson.Unmarshal(data, ts); err != nil {
		return nil, errors.Wrapf(err, "decode config file %s", path)
	}
	return ts, nil
}

// String returns the value under key if it is a string.
func (i *Instance) String(key string) (string, bool) {
	v, ok := i.Values.GetFields()[key]
	if !ok {
		return "", false
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", false
	}
	return s.StringValue, true
}

// Bool accepts JSON booleans and the strings "true" and "false".
func (i *Instance) Bool(key string) (bool, bool) {
	v, ok := i.Values.GetFields()[key]
	if !ok {
		return false, false
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_BoolValue:
		return k.BoolValue, true
	case *structpb.Value_StringValue:
		switch k.StringValue {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

func (i *Instance) Map() map[string]any {
	return i.Values.AsMap()
}
