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

// Package producer builds stacks for the Kafka producer lab
package producer

import (
	"context"

	"github.com/gravitational/labs/lib/constants"
	"github.com/gravitational/labs/lib/defaults"
	"github.com/gravitational/labs/lib/lab"
	"github.com/gravitational/labs/lib/stack"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

// Request describes a Kafka producer fleet deployment
type Request struct {
	lab.Request
	// ProducerURL is the URL of the producer package. Optional
	ProducerURL string `json:"producer_url"`
}

// BuildParameters resolves the network, topic and role identifiers
// for the producer fleet and returns the ordered list of template parameters.
//
// The producer fleet runs in the public subnet of the environment.
// Any lookup failure aborts the build and no parameters are returned
func BuildParameters(ctx context.Context, resolver lab.Resolver, req Request) (stack.Parameters, error) {
	if err := req.Check(); err != nil {
		return nil, trace.Wrap(err)
	}
	logger := logrus.WithFields(logrus.Fields{
		trace.Component:            constants.ComponentLab,
		constants.FieldEnvironment: req.Environment,
	})
	vpcID, err := resolver.VPC(ctx, req.Environment)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	publicSubnetID, err := resolver.Subnet(ctx, constants.PublicSubnetPrefix+req.Environment, vpcID, req.Zone)
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
	virtualization := stack.Virtualization(req.InstanceType)
	logger.Debugf("Resolved vpc=%v subnet=%v topic=%v role=%v virtualization=%v.",
		vpcID, publicSubnetID, topicARN, roleName, virtualization)

	params, err := stack.NewBuilder().
		Add(constants.ParamKeyName, req.Environment).
		Add(constants.ParamEnvironment, req.Environment).
		Add(constants.ParamDeployment, req.Deployment).
		Add(constants.ParamAvailabilityZone, req.Zone).
		Add(constants.ParamNumberOfNodes, req.NodeCountString()).
		Add(constants.ParamInstanceType, req.InstanceType).
		Add(constants.ParamProducerURL, req.ProducerURL).
		Add(constants.ParamVpcID, vpcID).
		Add(constants.ParamPublicSubnetID, publicSubnetID).
		Add(constants.ParamAsgTopicArn, topicARN).
		Add(constants.ParamRoleName, roleName).
		Add(constants.ParamVirtualization, virtualization).
		Build()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return params, nil
}

// NewStack builds the producer fleet stack for the specified request
func NewStack(ctx context.Context, resolver lab.Resolver, req Request) (*stack.Stack, error) {
	params, err := BuildParameters(ctx, resolver, req)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return &stack.Stack{
		Name:       StackName(req),
		Lab:        constants.LabProducer,
		Template:   defaults.TemplateName,
		Parameters: params,
	}, nil
}

// StackName returns the name of the producer fleet stack
func StackName(req Request) string {
	return stack.Name(constants.LabProducer, req.Environment, req.Deployment, req.Region, req.Zone)
}
