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

package aws

import (
	"context"
	"strings"

	"github.com/gravitational/labs/lib/constants"
	"github.com/gravitational/labs/lib/log"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/iam"
	"github.com/aws/aws-sdk-go/service/route53"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

// ResolverConfig is the AWS resource resolver configuration
type ResolverConfig struct {
	// Cloud is Elastic Compute Cloud, AWS cloud service
	Cloud EC2
	// Notifications is Simple Notification Service, AWS pub/sub service
	Notifications SNS
	// Identity is Identity and Access Management service
	Identity IAM
	// DNS is Route53, AWS DNS service
	DNS Route53
	// FieldLogger is the logger to use
	logrus.FieldLogger
}

// CheckAndSetDefaults checks and sets default values
func (r *ResolverConfig) CheckAndSetDefaults() error {
	if r.Cloud == nil {
		return trace.BadParameter("missing parameter Cloud")
	}
	if r.Notifications == nil {
		return trace.BadParameter("missing parameter Notifications")
	}
	if r.Identity == nil {
		return trace.BadParameter("missing parameter Identity")
	}
	if r.DNS == nil {
		return trace.BadParameter("missing parameter DNS")
	}
	r.FieldLogger = log.OrDefault(r.FieldLogger, constants.ComponentResolver)
	return nil
}

// NewResolver returns a new resolver backed by the specified AWS session
func NewResolver(session *session.Session) (*Resolver, error) {
	return NewResolverWithConfig(ResolverConfig{
		Cloud:         ec2.New(session),
		Notifications: sns.New(session),
		Identity:      iam.New(session),
		DNS:           route53.New(session),
	})
}

// NewResolverWithConfig returns a new resolver for the specified configuration
func NewResolverWithConfig(config ResolverConfig) (*Resolver, error) {
	if err := config.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	return &Resolver{ResolverConfig: config}, nil
}

// Resolver looks up identifiers of existing AWS resources
// by their Name tags and names
type Resolver struct {
	ResolverConfig
}

// VPC returns the ID of the VPC tagged with the environment name
func (r *Resolver) VPC(ctx context.Context, environment string) (string, error) {
	out, err := r.Cloud.DescribeVpcsWithContext(ctx, &ec2.DescribeVpcsInput{
		Filters: []*ec2.Filter{nameTagFilter(environment)},
	})
	if err != nil {
		return "", trace.Wrap(ConvertError(err))
	}
	if len(out.Vpcs) == 0 {
		return "", trace.NotFound("no VPC named %q", environment)
	}
	if len(out.Vpcs) > 1 {
		r.Warnf("Multiple VPCs named %q, using the first one.", environment)
	}
	vpcID := aws.StringValue(out.Vpcs[0].VpcId)
	r.Debugf("Resolved VPC %v to %v.", environment, vpcID)
	return vpcID, nil
}

// Subnet returns the ID of the subnet with the specified Name tag
// in the given VPC and availability zone
func (r *Resolver) Subnet(ctx context.Context, name, vpcID, zone string) (string, error) {
	out, err := r.Cloud.DescribeSubnetsWithContext(ctx, &ec2.DescribeSubnetsInput{
		Filters: []*ec2.Filter{
			nameTagFilter(name),
			{
				Name:   aws.String("vpc-id"),
				Values: aws.StringSlice([]string{vpcID}),
			},
			{
				Name:   aws.String("availability-zone"),
				Values: aws.StringSlice([]string{zone}),
			},
		},
	})
	if err != nil {
		return "", trace.Wrap(ConvertError(err))
	}
	if len(out.Subnets) == 0 {
		return "", trace.NotFound("no subnet named %q in %v/%v", name, vpcID, zone)
	}
	subnetID := aws.StringValue(out.Subnets[0].SubnetId)
	r.Debugf("Resolved subnet %v to %v.", name, subnetID)
	return subnetID, nil
}

// Topic returns the ARN of the notification topic with the specified name
func (r *Resolver) Topic(ctx context.Context, name string) (arn string, err error) {
	err = r.Notifications.ListTopicsPagesWithContext(ctx, &sns.ListTopicsInput{},
		func(page *sns.ListTopicsOutput, lastPage bool) bool {
			for _, topic := range page.Topics {
				if topicName(aws.StringValue(topic.TopicArn)) == name {
					arn = aws.StringValue(topic.TopicArn)
					return false
				}
			}
			return true
		})
	if err != nil {
		return "", trace.Wrap(ConvertError(err))
	}
	if arn == "" {
		return "", trace.NotFound("no notification topic named %q", name)
	}
	r.Debugf("Resolved topic %v to %v.", name, arn)
	return arn, nil
}

// Role returns the name of the IAM role matching the specified name.
//
// Roles created by CloudFormation embed the logical name into a generated
// name, so if there is no exact match, the first role whose name contains
// the specified name is returned
func (r *Resolver) Role(ctx context.Context, name string) (string, error) {
	var exact, partial string
	err := r.Identity.ListRolesPagesWithContext(ctx, &iam.ListRolesInput{},
		func(page *iam.ListRolesOutput, lastPage bool) bool {
			for _, role := range page.Roles {
				roleName := aws.StringValue(role.RoleName)
				if roleName == name {
					exact = roleName
					return false
				}
				if partial == "" && strings.Contains(roleName, name) {
					partial = roleName
				}
			}
			return true
		})
	if err != nil {
		return "", trace.Wrap(ConvertError(err))
	}
	switch {
	case exact != "":
		return exact, nil
	case partial != "":
		r.Debugf("Resolved role %v to %v.", name, partial)
		return partial, nil
	}
	return "", trace.NotFound("no IAM role matching %q", name)
}

// HostedZone returns the ID of the Route53 hosted zone with the specified DNS name
func (r *Resolver) HostedZone(ctx context.Context, name string) (string, error) {
	dnsName := fqdn(name)
	out, err := r.DNS.ListHostedZonesByNameWithContext(ctx, &route53.ListHostedZonesByNameInput{
		DNSName: aws.String(dnsName),
	})
	if err != nil {
		return "", trace.Wrap(ConvertError(err))
	}
	// Zones are listed in lexicographic order starting from the requested name
	for _, zone := range out.HostedZones {
		if aws.StringValue(zone.Name) == dnsName {
			zoneID := strings.TrimPrefix(aws.StringValue(zone.Id), hostedZonePrefix)
			r.Debugf("Resolved hosted zone %v to %v.", name, zoneID)
			return zoneID, nil
		}
	}
	return "", trace.NotFound("no hosted zone named %q", name)
}

func nameTagFilter(name string) *ec2.Filter {
	return &ec2.Filter{
		Name:   aws.String("tag:Name"),
		Values: aws.StringSlice([]string{name}),
	}
}

// topicName returns the name of the topic from its ARN:
// arn:aws:sns:<region>:<account>:<name>
func topicName(arn string) string {
	return arn[strings.LastIndex(arn, ":")+1:]
}

func fqdn(name string) string {
	if strings.HasSuffix(name, ".") {
		return name
	}
	return name + "."
}

const hostedZonePrefix = "/hostedzone/"
