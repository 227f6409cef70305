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

/*
Package lab implements the pieces shared by all lab stacks: the request
fields every lab accepts and the collaborators a lab depends upon.

A lab turns a deployment request into a stack: an ordered list of
template parameters, a stack name and a template reference. Cloud
resources the template refers to (VPC, subnets, notification topic,
instance role, DNS zone) are looked up with a Resolver. The finished
stack is handed to a Deployer by the caller.
*/
package lab

import (
	"context"
	"strconv"

	"github.com/gravitational/labs/lib/stack"

	"github.com/gravitational/trace"
)

// Resolver looks up identifiers of existing cloud resources.
// All methods return trace.NotFound if no matching resource exists
type Resolver interface {
	// VPC returns the ID of the VPC for the specified environment
	VPC(ctx context.Context, environment string) (id string, err error)
	// Subnet returns the ID of the subnet with the specified name
	// in the given VPC and availability zone
	Subnet(ctx context.Context, name, vpcID, zone string) (id string, err error)
	// Topic returns the ARN of the notification topic with the specified name
	Topic(ctx context.Context, name string) (arn string, err error)
	// Role returns the name of the instance role matching the specified name
	Role(ctx context.Context, name string) (roleName string, err error)
	// HostedZone returns the ID of the DNS hosted zone with the specified name
	HostedZone(ctx context.Context, name string) (id string, err error)
}

// Deployer deploys a stack
type Deployer interface {
	// Deploy creates the specified stack
	Deploy(ctx context.Context, stack stack.Stack) error
}

// Request defines the fields common to all lab deployment requests
type Request struct {
	// Environment is the environment to deploy to.
	// It also names the key pair instances are launched with
	Environment string `json:"environment"`
	// Deployment is the unique name of the deployment
	Deployment string `json:"deployment"`
	// Region is the cloud region to deploy to
	Region string `json:"region"`
	// Zone is the availability zone to deploy to
	Zone string `json:"zone"`
	// NodeCount is the number of instances to deploy
	NodeCount int `json:"node_count"`
	// InstanceType is the instance type to deploy
	InstanceType string `json:"instance_type"`
}

// Check validates this request
func (r Request) Check() error {
	if r.Environment == "" {
		return trace.BadParameter("missing environment")
	}
	if r.Deployment == "" {
		return trace.BadParameter("missing deployment name")
	}
	if r.Region == "" {
		return trace.BadParameter("missing region")
	}
	if r.Zone == "" {
		return trace.BadParameter("missing availability zone")
	}
	if r.NodeCount < 0 {
		return trace.BadParameter("node count cannot be negative: %v", r.NodeCount)
	}
	if r.InstanceType == "" {
		return trace.BadParameter("missing instance type")
	}
	return nil
}

// NodeCountString formats the node count as a template parameter value
func (r Request) NodeCountString() string {
	return strconv.Itoa(r.NodeCount)
}

// FormatBool formats the flag as a template parameter value
func FormatBool(flag bool) string {
	return strconv.FormatBool(flag)
}
