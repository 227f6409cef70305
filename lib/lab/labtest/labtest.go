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

// Package labtest provides test doubles for lab collaborators
package labtest

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/gravitational/labs/lib/stack"

	"github.com/davecgh/go-spew/spew"
	"github.com/gravitational/trace"
	"github.com/kylelemons/godebug/diff"
	"gopkg.in/check.v1"
)

// Lookup kinds recorded by Resolver
const (
	LookupVPC        = "vpc"
	LookupSubnet     = "subnet"
	LookupTopic      = "topic"
	LookupRole       = "role"
	LookupHostedZone = "hostedzone"
)

// Call is a single recorded Resolver call
type Call struct {
	// Kind is the lookup kind
	Kind string
	// Args lists lookup arguments
	Args []string
}

// String returns a text representation of this call
func (r Call) String() string {
	return fmt.Sprintf("%v%v", r.Kind, r.Args)
}

// Resolver is an in-memory lab.Resolver.
// Lookups are keyed by resource name and are recorded in order.
// Unknown names resolve to trace.NotFound
type Resolver struct {
	// VPCs maps environment to VPC ID
	VPCs map[string]string
	// Subnets maps subnet name to subnet ID
	Subnets map[string]string
	// Topics maps topic name to topic ARN
	Topics map[string]string
	// Roles maps requested role name to the resolved role name
	Roles map[string]string
	// HostedZones maps DNS zone name to hosted zone ID
	HostedZones map[string]string
	// Errors optionally fails lookups of the specified kind
	Errors map[string]error

	mu    sync.Mutex
	calls []Call
}

// VPC returns the VPC ID for the specified environment
func (r *Resolver) VPC(ctx context.Context, environment string) (string, error) {
	return r.lookup(LookupVPC, r.VPCs, environment)
}

// Subnet returns the subnet ID for the specified subnet name
func (r *Resolver) Subnet(ctx context.Context, name, vpcID, zone string) (string, error) {
	return r.lookup(LookupSubnet, r.Subnets, name, vpcID, zone)
}

// Topic returns the topic ARN for the specified topic name
func (r *Resolver) Topic(ctx context.Context, name string) (string, error) {
	return r.lookup(LookupTopic, r.Topics, name)
}

// Role returns the role name for the specified role name
func (r *Resolver) Role(ctx context.Context, name string) (string, error) {
	return r.lookup(LookupRole, r.Roles, name)
}

// HostedZone returns the hosted zone ID for the specified zone name
func (r *Resolver) HostedZone(ctx context.Context, name string) (string, error) {
	return r.lookup(LookupHostedZone, r.HostedZones, name)
}

// Calls returns the recorded calls in order
func (r *Resolver) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	calls := make([]Call, len(r.calls))
	copy(calls, r.calls)
	return calls
}

// Kinds returns the kinds of recorded calls in order
func (r *Resolver) Kinds() (kinds []string) {
	for _, call := range r.Calls() {
		kinds = append(kinds, call.Kind)
	}
	return kinds
}

func (r *Resolver) lookup(kind string, values map[string]string, args ...string) (string, error) {
	r.mu.Lock()
	r.calls = append(r.calls, Call{Kind: kind, Args: args})
	r.mu.Unlock()
	if err, ok := r.Errors[kind]; ok {
		return "", err
	}
	value, ok := values[args[0]]
	if !ok {
		return "", trace.NotFound("%v %q not found", kind, args[0])
	}
	return value, nil
}

// Deployer is a lab.Deployer that records deployed stacks
type Deployer struct {
	// Err optionally fails every deploy
	Err error

	mu     sync.Mutex
	stacks []stack.Stack
}

// Deploy records the specified stack
func (r *Deployer) Deploy(ctx context.Context, s stack.Stack) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.stacks = append(r.stacks, s)
	return nil
}

// Stacks returns the deployed stacks
func (r *Deployer) Stacks() []stack.Stack {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]stack.Stack(nil), r.stacks...)
}

// DeepCompare compares the two values and fails with a readable diff if they differ
func DeepCompare(c *check.C, obtained, expected interface{}) {
	c.Assert(obtained, check.DeepEquals, expected,
		check.Commentf("%v\nStack:\n%v\n", Diff(obtained, expected), string(debug.Stack())))
}

// Diff returns a line diff of the text dumps of the two values
func Diff(a, b interface{}) string {
	d := &spew.ConfigState{Indent: " ", DisableMethods: true, DisablePointerMethods: true, DisablePointerAddresses: true}
	return diff.Diff(d.Sdump(a), d.Sdump(b))
}

// Params returns a parameter list built from alternating name/value pairs
func Params(nameValues ...string) stack.Parameters {
	params := make(stack.Parameters, 0, len(nameValues)/2)
	for i := 0; i+1 < len(nameValues); i += 2 {
		params = append(params, stack.Parameter{Name: nameValues[i], Value: nameValues[i+1]})
	}
	return params
}
