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

package api

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// The host sinks take C strings, a message with an embedded NUL is replaced
// by the empty string instead of being truncated. Logging never fails.
func cString(s string) string {
	if strings.IndexByte(s, 0) >= 0 {
		return ""
	}
	return s
}

// Debug writes message to the host debug log under tag. The host only prints
// it when the tag is enabled.
func Debug(tag string, message string) {
	if cAPI == nil {
		return
	}
	cAPI.Debug(cString(tag), cString(message))
}

func Debugf(tag string, format string, v ...any) {
	Debug(tag, fmt.Sprintf(format, v...))
}

// Error writes message to the host error log.
func Error(message string) {
	if cAPI == nil {
		return
	}
	cAPI.Error(cString(message))
}

func Errorf(format string, v ...any) {
	Error(fmt.Sprintf(format, v...))
}

// ConfigDir returns the host's configuration directory, or "" if unknown.
func ConfigDir() string {
	if cAPI == nil {
		return ""
	}
	return cAPI.ConfigDirGet()
}

// ****************** zap bridge start ******************//

type hostCore struct {
	zapcore.LevelEnabler
	enc zapcore.Encoder
	tag string
}

// NewLogger returns a zap logger writing to the host logs: entries below Warn
// go to the debug log under tag, the rest to the error log.
func NewLogger(tag string, opts ...zap.Option) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "msg",
		StacktraceKey:    "stacktrace",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.LowercaseLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: " ",
	})
	core := &hostCore{
		LevelEnabler: zapcore.DebugLevel,
		enc:          enc,
		tag:          tag,
	}
	return zap.New(core, opts...).Named(tag)
}

func (c *hostCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &hostCore{
		LevelEnabler: c.LevelEnabler,
		enc:          c.enc.Clone(),
		tag:          c.tag,
	}
	for i := range fields {
		fields[i].AddTo(clone.enc)
	}
	return clone
}

func (c *hostCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *hostCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	msg := strings.TrimSuffix(buf.String(), "\n")
	buf.Free()

	if ent.Level >= zapcore.WarnLevel {
		Error(msg)
	} else {
		Debug(c.tag, msg)
	}
	return nil
}

func (c *hostCore) Sync() error {
	return nil
}

//******************* zap bridge end *******************//
