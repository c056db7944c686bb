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

package api_impl

/*
#include <ts/ts.h>
*/
import "C"
import (
	"unsafe"

	"github.com/tsgo/tsgo/api"
)

func dispatch(kind api.ContKind, contp C.TSCont, event C.TSEvent, edata unsafe.Pointer) C.int {
	fn := api.Trampoline(kind)
	if fn == nil {
		api.Errorf("no %s continuation handler installed, event %d dropped", kind, int(event))
		return C.int(api.ReturnError)
	}
	return C.int(fn(api.Cont(uintptr(unsafe.Pointer(contp))), api.Event(event), api.EventData(uintptr(edata))))
}

//export tsgoContOnce
func tsgoContOnce(contp C.TSCont, event C.TSEvent, edata unsafe.Pointer) C.int {
	return dispatch(api.ContOnce, contp, event, edata)
}

//export tsgoContRecurring
func tsgoContRecurring(contp C.TSCont, event C.TSEvent, edata unsafe.Pointer) C.int {
	return dispatch(api.ContRecurring, contp, event, edata)
}
