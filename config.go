// Copyright 2021 Airbus Defence and Space
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gdalkit

import (
	"os"
	"sync"
)

var configMu sync.RWMutex
var configOptions = make(map[string]string)

// SetConfigOption sets a process-wide configuration option. Options set
// through this function override values inherited from the environment.
func SetConfigOption(key, value string) {
	configMu.Lock()
	configOptions[key] = value
	configMu.Unlock()
}

// GetConfigOption returns the value of a configuration option, looking up
// options set with SetConfigOption first, then the process environment, and
// finally falling back to def.
func GetConfigOption(key, def string) string {
	configMu.RLock()
	v, ok := configOptions[key]
	configMu.RUnlock()
	if ok {
		return v
	}
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// ClearConfigOption removes a configuration option previously set with
// SetConfigOption. Values inherited from the environment become visible
// again.
func ClearConfigOption(key string) {
	configMu.Lock()
	delete(configOptions, key)
	configMu.Unlock()
}
