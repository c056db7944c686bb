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

// Package remap drives Go remap plugins from the host's remap entry points.
package remap

import (
	"context"
	"io"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/tsgo/tsgo/api"
	"github.com/tsgo/tsgo/pkg/cache"
	"github.com/tsgo/tsgo/pkg/config"
	"github.com/tsgo/tsgo/pkg/http"
)

const tracerName = "github.com/tsgo/tsgo/pkg/remap"

var ErrUnknownPlugin = errors.New("remap plugin not registered")

var (
	instanceNumGenerator uint64
	instanceCache        = &sync.Map{} // uint64 -> *instance

	settings config.Settings
	logger   = zap.NewNop()
)

type instance struct {
	cfg    *config.Instance
	plugin Plugin
}

// Init is called once when the host loads the plugin library.
func Init() error {
	s, err := config.LoadSettings()
	if err != nil {
		return err
	}
	settings = s
	cache.SetDefaultTimeout(s.CacheReadTimeout)
	logger = api.NewLogger(s.DebugTag)
	logger.Debug("remap init",
		zap.String("config_dir", api.ConfigDir()),
		zap.Duration("cache_read_timeout", s.CacheReadTimeout))
	return nil
}

// CurrentSettings returns the settings loaded by Init.
func CurrentSettings() config.Settings {
	return settings
}

// Logger returns the logger configured by Init.
func Logger() *zap.Logger {
	return logger
}

// NewInstance creates the plugin for one remap rule and returns its id.
func NewInstance(args []string) (uint64, error) {
	cfg, err := config.Parse(args)
	if err != nil {
		return 0, err
	}
	factory, ok := getFactory(cfg.Plugin)
	if !ok {
		return 0, errors.Wrapf(ErrUnknownPlugin, "plugin %q", cfg.Plugin)
	}
	plugin, err := factory(cfg)
	if err != nil {
		return 0, errors.Wrapf(err, "create remap plugin %q", cfg.Plugin)
	}

	id := atomic.AddUint64(&instanceNumGenerator, 1)
	instanceCache.Store(id, &instance{cfg: cfg, plugin: plugin})
	logger.Debug("remap new instance",
		zap.Uint64("id", id),
		zap.String("plugin", cfg.Plugin),
		zap.String("from", cfg.FromURL),
		zap.String("to", cfg.ToURL))
	return id, nil
}

// DoRemap runs the plugin of instance id for one request. A panicking plugin
// or an out of range status yields api.RemapError.
func DoRemap(id uint64, txnp api.HttpTxn, rri api.RemapInfo) (status api.RemapStatus) {
	v, ok := instanceCache.Load(id)
	if !ok {
		api.Errorf("remap instance %d not found", id)
		return api.RemapError
	}
	inst := v.(*instance)

	_, span := otel.GetTracerProvider().Tracer(tracerName).Start(context.Background(), "remap.DoRemap")
	span.SetAttributes(attribute.String("tsgo.remap.plugin", inst.cfg.Plugin))

	txn, info := http.NewRemap(txnp, rri)
	defer func() {
		info.End()
		if p := recover(); p != nil {
			logger.Error("remap plugin panic",
				zap.String("plugin", inst.cfg.Plugin),
				zap.Any("panic", p),
				zap.ByteString("stack", debug.Stack()))
			status = api.RemapError
		}
		if !status.Valid() {
			logger.Error("remap plugin returned invalid status",
				zap.String("plugin", inst.cfg.Plugin),
				zap.Int("status", int(status)))
			status = api.RemapError
		}
		span.SetAttributes(attribute.Int("tsgo.remap.status", int(status)))
		if status == api.RemapError {
			span.SetStatus(codes.Error, "remap error")
		}
		span.End()
	}()

	return inst.plugin.DoRemap(txn, info)
}

// DeleteInstance releases the plugin of instance id.
func DeleteInstance(id uint64) {
	v, ok := instanceCache.LoadAndDelete(id)
	if !ok {
		return
	}
	inst := v.(*instance)
	if c, ok := inst.plugin.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.Warn("close remap plugin", zap.String("plugin", inst.cfg.Plugin), zap.Error(err))
		}
	}
	logger.Debug("remap delete instance", zap.Uint64("id", id))
}

// Done is called when the host unloads the plugin library.
func Done() {
	instanceCache.Range(func(key, _ any) bool {
		DeleteInstance(key.(uint64))
		return true
	})
	logger.Debug("remap done")
	_ = logger.Sync()
}
