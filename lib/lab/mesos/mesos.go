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

// Package mesos builds stacks for the Mesos cluster lab
package mesos

import (
	"context"

	"github.com/gravitational/labs/lib/constants"
	"github.com/gravitational/labs/lib/defaults"
	"github.com/gravitational/labs/lib/lab"
	"github.com/gravitational/labs/lib/stack"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

// Request describes a Mesos node group deployment
type Request struct {
	lab.Request
	// HostedZone is the name of the DNS hosted zone for cluster records
	HostedZone string `json:"hosted_zone"`
	// MesosVersion is the Mesos version to deploy
	MesosVersion string `json:"mesos_version"`
	// ZookeeperVersion is the Zookeeper version to deploy
	ZookeeperVersion string `json:"zookeeper_version"`
	// Node selects the node role along with role-specific settings
	Node Node `json:"node"`
}

// Check validates this request
func (r Request) Check() error {
	if err := r.Request.Check(); err != nil {
		return trace.Wrap(err)
	}
	if r.HostedZone == "" {
		return trace.BadParameter("missing hosted zone")
	}
	if r.Node == nil {
		return trace.BadParameter("missing node role, expected %v or %v",
			constants.NodeMaster, constants.NodeSlave)
	}
	return nil
}

// Node is the role of the deployed Mesos nodes: either Master or Slave
type Node interface {
	// Role returns the node role name
	Role() string
	// addParameters appends role-specific parameters
	addParameters(ctx context.Context, resolver lab.Resolver, b *stack.Builder, net network) error
}

// Master configures a group of Mesos master nodes
type Master struct {
	// AuroraURL is the Aurora scheduler URL. Optional
	AuroraURL string `json:"aurora_url"`
	// MarathonVersion is the Marathon version to deploy
	MarathonVersion string `json:"marathon_version"`
	// Marathon enables the Marathon framework
	Marathon bool `json:"marathon"`
	// Aurora enables the Aurora framework
	Aurora bool `json:"aurora"`
	// MesosDNS enables Mesos-DNS on Marathon
	MesosDNS bool `json:"mesos_dns"`
	// SlaveOnMaster also runs Mesos slaves on master nodes
	SlaveOnMaster bool `json:"slave_on_master"`
}

// Role returns the master role name
func (Master) Role() string { return constants.NodeMaster }

// addParameters resolves the public subnet masters are exposed in
// and appends the scheduler settings
func (r Master) addParameters(ctx context.Context, resolver lab.Resolver, b *stack.Builder, net network) error {
	publicSubnetID, err := resolver.Subnet(ctx, constants.PublicSubnetPrefix+net.environment, net.vpcID, net.zone)
	if err != nil {
		return trace.Wrap(err)
	}
	b.Add(constants.ParamPublicSubnetID, publicSubnetID).
		Add(constants.ParamAuroraURL, r.AuroraURL).
		Add(constants.ParamMarathonVersion, r.MarathonVersion).
		Add(constants.ParamMarathon, lab.FormatBool(r.Marathon)).
		Add(constants.ParamAurora, lab.FormatBool(r.Aurora)).
		Add(constants.ParamMesosDNS, lab.FormatBool(r.MesosDNS)).
		Add(constants.ParamSlaveOnMaster, lab.FormatBool(r.SlaveOnMaster))
	return nil
}

// Slave configures a group of Mesos slave nodes
type Slave struct{}

// Role returns the slave role name
func (Slave) Role() string { return constants.NodeSlave }

func (Slave) addParameters(context.Context, lab.Resolver, *stack.Builder, network) error {
	return nil
}

// BuildParameters resolves the identifiers of the cloud resources
// the node group depends on and returns the ordered list of template parameters.
//
// Nodes run in the private subnet of the environment. The hosted zone
// is resolved for both roles. Masters additionally get the public subnet
// and the scheduler settings appended after the common parameters.
// Any lookup failure aborts the build and no parameters are returned
func BuildParameters(ctx context.Context, resolver lab.Resolver, req Request) (stack.Parameters, error) {
	if err := req.Check(); err != nil {
		return nil, trace.Wrap(err)
	}
	logger := logrus.WithFields(logrus.Fields{
		trace.Component:            constants.ComponentLab,
		constants.FieldEnvironment: req.Environment,
		constants.FieldNode:        req.Node.Role(),
	})
	vpcID, err := resolver.VPC(ctx, req.Environment)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	privateSubnetID, err := resolver.Subnet(ctx, constants.PrivateSubnetPrefix+req.Environment, vpcID, req.Zone)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	topicARN, err := resolver.Topic(ctx, constants.AutoscalingTopicPrefix+req.Environment)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	roleName, err := resolver.Role(ctx, constants.GenericRole)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	hostedZoneID, err := resolver.HostedZone(ctx, req.HostedZone)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	virtualization := stack.Virtualization(req.InstanceType)
	logger.Debugf("Resolved vpc=%v subnet=%v topic=%v role=%v zone=%v virtualization=%v.",
		vpcID, privateSubnetID, topicARN, roleName, hostedZoneID, virtualization)

	b := stack.NewBuilder().
		Add(constants.ParamKeyName, req.Environment).
		Add(constants.ParamEnvironment, req.Environment).
		Add(constants.ParamDeployment, req.Deployment).
		Add(constants.ParamAvailabilityZone, req.Zone).
		Add(constants.ParamNumberOfNodes, req.NodeCountString()).
		Add(constants.ParamInstanceType, req.InstanceType).
		Add(constants.ParamMesosVersion, req.MesosVersion).
		Add(constants.ParamZookeeperVersion, req.ZookeeperVersion).
		Add(constants.ParamVpcID, vpcID).
		Add(constants.ParamPrivateSubnetID, privateSubnetID).
		Add(constants.ParamAsgTopicArn, topicARN).
		Add(constants.ParamRoleName, roleName).
		Add(constants.ParamVirtualization, virtualization).
		Add(constants.ParamHostedZoneID, hostedZoneID)
	err = req.Node.addParameters(ctx, resolver, b, network{
		environment: req.Environment,
		vpcID:       vpcID,
		zone:        req.Zone,
	})
	if err != nil {
		return nil, trace.Wrap(err)
	}
	params, err := b.Build()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return params, nil
}

// NewStack builds the node group stack for the specified request
func NewStack(ctx context.Context, resolver lab.Resolver, req Request) (*stack.Stack, error) {
	params, err := BuildParameters(ctx, resolver, req)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return &stack.Stack{
		Name:       StackName(req),
		Lab:        constants.LabMesos,
		Template:   TemplateName(req.Node),
		Parameters: params,
	}, nil
}

// StackName returns the name of the node group stack
func StackName(req Request) string {
	var role string
	if req.Node != nil {
		role = req.Node.Role()
	}
	return stack.Name(constants.LabMesos, role, req.Environment, req.Deployment, req.Region, req.Zone)
}

// TemplateName returns the name of the template for the specified node role
func TemplateName(node Node) string {
	return stack.Name(node.Role(), defaults.TemplateName)
}

// network groups the resolved network placement of the node group
type network struct {
	environment string
	vpcID       string
	zone        string
}
