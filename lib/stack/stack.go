/*
Copyright 2020 Gravitational, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package stack

import (
	"strings"

	"github.com/gravitational/trace"
)

// Stack describes a stack ready to be deployed
type Stack struct {
	// Name is the unique stack name
	Name string `json:"name"`
	// Lab names the lab the stack belongs to.
	// Templates are looked up in the lab's directory
	Lab string `json:"lab"`
	// Template is the stack template file name
	Template string `json:"template"`
	// Parameters lists template parameters in order
	Parameters Parameters `json:"parameters"`
}

// Check validates this stack
func (r Stack) Check() error {
	if r.Name == "" {
		return trace.BadParameter("missing stack name")
	}
	if r.Template == "" {
		return trace.BadParameter("missing stack template")
	}
	return nil
}

// Name returns a stack name composed of the specified non-empty parts
func Name(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, "-")
}
