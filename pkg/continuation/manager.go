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

package continuation

import (
	"sync"
	"sync/atomic"
)

const numManagerShards = 32

// manager keeps Go handlers reachable while the host holds their id. The host
// only ever sees the id, never a Go pointer.
type manager[T any] struct {
	data  [numManagerShards]map[uintptr]*T
	mutex [numManagerShards]sync.Mutex
	next  atomic.Uintptr
}

func newManager[T any]() *manager[T] {
	m := &manager[T]{}
	for i := 0; i < numManagerShards; i++ {
		m.data[i] = make(map[uintptr]*T)
	}
	return m
}

func (m *manager[T]) record(item *T) uintptr {
	id := m.next.Add(1)
	index := id % numManagerShards
	m.mutex[index].Lock()
	defer m.mutex[index].Unlock()
	m.data[index][id] = item
	return id
}

func (m *manager[T]) search(id uintptr) *T {
	index := id % numManagerShards
	m.mutex[index].Lock()
	defer m.mutex[index].Unlock()
	return m.data[index][id]
}

// take removes and returns the item. Only one caller gets a non-nil result.
func (m *manager[T]) take(id uintptr) *T {
	index := id % numManagerShards
	m.mutex[index].Lock()
	defer m.mutex[index].Unlock()
	item, ok := m.data[index][id]
	if !ok {
		return nil
	}
	delete(m.data[index], id)
	return item
}

func (m *manager[T]) len() int {
	n := 0
	for i := 0; i < numManagerShards; i++ {
		m.mutex[i].Lock()
		n += len(m.data[i])
		m.mutex[i].Unlock()
	}
	return n
}
