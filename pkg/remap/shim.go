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

//go:build cgo && trafficserver

package remap

/*
// ref https://github.com/golang/go/issues/25832

#cgo linux LDFLAGS: -Wl,-unresolved-symbols=ignore-all
#cgo darwin LDFLAGS: -Wl,-undefined,dynamic_lookup

#include <stdint.h>
#include <stdlib.h>
#include <string.h>

#include <ts/ts.h>
#include <ts/remap.h>

static void tsgo_set_instance(void **ih, uint64_t id) {
    *ih = (void *)(uintptr_t)id;
}

*/
import "C"
import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/tsgo/tsgo/api"
)

func writeErr(errbuf *C.char, size C.int, err error) {
	if errbuf == nil || size <= 0 {
		return
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(errbuf)), int(size))
	n := copy(buf[:len(buf)-1], err.Error())
	buf[n] = 0
}

//export TSRemapInit
func TSRemapInit(apiInfo *C.TSRemapInterface, errbuf *C.char, errbufSize C.int) C.TSReturnCode {
	if apiInfo == nil {
		writeErr(errbuf, errbufSize, errors.New("missing remap interface argument"))
		return C.TS_ERROR
	}
	if apiInfo.tsremap_version < C.TSREMAP_VERSION {
		writeErr(errbuf, errbufSize, errors.Newf("incorrect remap api version %d", int(apiInfo.tsremap_version)))
		return C.TS_ERROR
	}
	if err := Init(); err != nil {
		writeErr(errbuf, errbufSize, err)
		return C.TS_ERROR
	}
	return C.TS_SUCCESS
}

//export TSRemapDone
func TSRemapDone() {
	Done()
}

//export TSRemapNewInstance
func TSRemapNewInstance(argc C.int, argv **C.char, ih *unsafe.Pointer, errbuf *C.char, errbufSize C.int) C.TSReturnCode {
	args := make([]string, 0, int(argc))
	for _, p := range unsafe.Slice(argv, int(argc)) {
		args = append(args, C.GoString(p))
	}
	id, err := NewInstance(args)
	if err != nil {
		api.Errorf("remap new instance: %v", err)
		writeErr(errbuf, errbufSize, err)
		return C.TS_ERROR
	}
	// the host only stores the instance id, no Go pointer crosses over
	C.tsgo_set_instance(ih, C.uint64_t(id))
	return C.TS_SUCCESS
}

//export TSRemapDeleteInstance
func TSRemapDeleteInstance(ih unsafe.Pointer) {
	DeleteInstance(uint64(uintptr(ih)))
}

//export TSRemapDoRemap
func TSRemapDoRemap(ih unsafe.Pointer, rh C.TSHttpTxn, rri *C.TSRemapRequestInfo) C.TSRemapStatus {
	status := DoRemap(uint64(uintptr(ih)), api.HttpTxn(uintptr(unsafe.Pointer(rh))), api.RemapInfo(uintptr(unsafe.Pointer(rri))))
	return C.TSRemapStatus(status)
}

//export TSRemapOSResponse
func TSRemapOSResponse(ih unsafe.Pointer, rh C.TSHttpTxn, osResponseType C.int) {
	logger.Debug("remap os response",
		zap.Uint64("id", uint64(uintptr(ih))),
		zap.Int("type", int(osResponseType)))
}
