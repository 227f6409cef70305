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
	"fmt"
	"strings"

	"github.com/gravitational/trace"
)

// Parameter is a single named stack template parameter
type Parameter struct {
	// Name is the template parameter name
	Name string `json:"name"`
	// Value is the parameter value
	Value string `json:"value"`
}

// String returns a text representation of this parameter
func (r Parameter) String() string {
	return fmt.Sprintf("%v=%v", r.Name, r.Value)
}

// Parameters is an ordered list of stack template parameters.
// The order is the order parameters are handed to the deployer
type Parameters []Parameter

// Names returns parameter names in order
func (r Parameters) Names() []string {
	names := make([]string, 0, len(r))
	for _, param := range r {
		names = append(names, param.Name)
	}
	return names
}

// Get returns the value of the parameter with the specified name
func (r Parameters) Get(name string) (value string, ok bool) {
	for _, param := range r {
		if param.Name == name {
			return param.Value, true
		}
	}
	return "", false
}

// Has returns true if the list contains a parameter with the specified name
func (r Parameters) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// String returns a text representation of this list
func (r Parameters) String() string {
	params := make([]string, 0, len(r))
	for _, param := range r {
		params = append(params, param.String())
	}
	return fmt.Sprintf("parameters(%v)", strings.Join(params, ", "))
}

// Builder accumulates parameters in insertion order and
// rejects duplicate names.
//
// The first error sticks: subsequent calls to Add are no-ops
// and Build returns the error
type Builder struct {
	params Parameters
	seen   map[string]struct{}
	err    error
}

// NewBuilder returns a new empty parameter builder
func NewBuilder() *Builder {
	return &Builder{seen: make(map[string]struct{})}
}

// Add appends the parameter with the given name and value
func (b *Builder) Add(name, value string) *Builder {
	if b.err != nil {
		return b
	}
	if name == "" {
		b.err = trace.BadParameter("parameter name cannot be empty")
		return b
	}
	if _, ok := b.seen[name]; ok {
		b.err = trace.AlreadyExists("duplicate parameter %q", name)
		return b
	}
	b.seen[name] = struct{}{}
	b.params = append(b.params, Parameter{Name: name, Value: value})
	return b
}

// Build returns the accumulated list of parameters
func (b *Builder) Build() (Parameters, error) {
	if b.err != nil {
		return nil, trace.Wrap(b.err)
	}
	params := make(Parameters, len(b.params))
	copy(params, b.params)
	return params, nil
}
