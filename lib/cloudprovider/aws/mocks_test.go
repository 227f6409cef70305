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
	"io/ioutil"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/cloudformation"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/iam"
	"github.com/aws/aws-sdk-go/service/route53"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/sns"
)

type mockEC2 struct {
	vpcs    []*ec2.Vpc
	subnets []*ec2.Subnet
	err     error

	vpcInputs    []*ec2.DescribeVpcsInput
	subnetInputs []*ec2.DescribeSubnetsInput
}

func (m *mockEC2) DescribeVpcsWithContext(ctx aws.Context, input *ec2.DescribeVpcsInput, opts ...request.Option) (*ec2.DescribeVpcsOutput, error) {
	m.vpcInputs = append(m.vpcInputs, input)
	if m.err != nil {
		return nil, m.err
	}
	var vpcs []*ec2.Vpc
	for _, vpc := range m.vpcs {
		if matchesFilters(vpc.Tags, map[string]string{"vpc-id": aws.StringValue(vpc.VpcId)}, input.Filters) {
			vpcs = append(vpcs, vpc)
		}
	}
	return &ec2.DescribeVpcsOutput{Vpcs: vpcs}, nil
}

func (m *mockEC2) DescribeSubnetsWithContext(ctx aws.Context, input *ec2.DescribeSubnetsInput, opts ...request.Option) (*ec2.DescribeSubnetsOutput, error) {
	m.subnetInputs = append(m.subnetInputs, input)
	if m.err != nil {
		return nil, m.err
	}
	var subnets []*ec2.Subnet
	for _, subnet := range m.subnets {
		attrs := map[string]string{
			"vpc-id":            aws.StringValue(subnet.VpcId),
			"availability-zone": aws.StringValue(subnet.AvailabilityZone),
		}
		if matchesFilters(subnet.Tags, attrs, input.Filters) {
			subnets = append(subnets, subnet)
		}
	}
	return &ec2.DescribeSubnetsOutput{Subnets: subnets}, nil
}

// matchesFilters implements the subset of EC2 filter semantics used by the resolver:
// tag:<key> filters match tags, other filters match the specified attributes
func matchesFilters(tags []*ec2.Tag, attrs map[string]string, filters []*ec2.Filter) bool {
	for _, filter := range filters {
		name := aws.StringValue(filter.Name)
		var value string
		var ok bool
		if len(name) > 4 && name[:4] == "tag:" {
			for _, tag := range tags {
				if aws.StringValue(tag.Key) == name[4:] {
					value, ok = aws.StringValue(tag.Value), true
				}
			}
		} else {
			value, ok = attrs[name]
		}
		if !ok || !contains(aws.StringValueSlice(filter.Values), value) {
			return false
		}
	}
	return true
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func nameTags(name string) []*ec2.Tag {
	return []*ec2.Tag{{Key: aws.String("Name"), Value: aws.String(name)}}
}

type mockSNS struct {
	pages [][]string
	err   error
	// requested counts the pages handed to the callback
	requested int
}

func (m *mockSNS) ListTopicsPagesWithContext(ctx aws.Context, input *sns.ListTopicsInput, fn func(*sns.ListTopicsOutput, bool) bool, opts ...request.Option) error {
	if m.err != nil {
		return m.err
	}
	for i, page := range m.pages {
		out := &sns.ListTopicsOutput{}
		for _, arn := range page {
			out.Topics = append(out.Topics, &sns.Topic{TopicArn: aws.String(arn)})
		}
		m.requested++
		if !fn(out, i == len(m.pages)-1) {
			return nil
		}
	}
	return nil
}

type mockIAM struct {
	pages [][]string
	err   error
}

func (m *mockIAM) ListRolesPagesWithContext(ctx aws.Context, input *iam.ListRolesInput, fn func(*iam.ListRolesOutput, bool) bool, opts ...request.Option) error {
	if m.err != nil {
		return m.err
	}
	for i, page := range m.pages {
		out := &iam.ListRolesOutput{}
		for _, name := range page {
			out.Roles = append(out.Roles, &iam.Role{RoleName: aws.String(name)})
		}
		if !fn(out, i == len(m.pages)-1) {
			return nil
		}
	}
	return nil
}

type mockRoute53 struct {
	zones []*route53.HostedZone
	err   error

	inputs []*route53.ListHostedZonesByNameInput
}

func (m *mockRoute53) ListHostedZonesByNameWithContext(ctx aws.Context, input *route53.ListHostedZonesByNameInput, opts ...request.Option) (*route53.ListHostedZonesByNameOutput, error) {
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	return &route53.ListHostedZonesByNameOutput{HostedZones: m.zones}, nil
}

type mockCloudFormation struct {
	mu sync.Mutex
	// statuses lists the stack statuses returned by subsequent describe calls.
	// The last status repeats
	statuses  []string
	reason    string
	createErr error

	created   []*cloudformation.CreateStackInput
	described int
}

func (m *mockCloudFormation) CreateStackWithContext(ctx aws.Context, input *cloudformation.CreateStackInput, opts ...request.Option) (*cloudformation.CreateStackOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = append(m.created, input)
	return &cloudformation.CreateStackOutput{
		StackId: aws.String("arn:aws:cloudformation:stack/" + aws.StringValue(input.StackName)),
	}, nil
}

func (m *mockCloudFormation) DescribeStacksWithContext(ctx aws.Context, input *cloudformation.DescribeStacksInput, opts ...request.Option) (*cloudformation.DescribeStacksOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	status := m.statuses[len(m.statuses)-1]
	if m.described < len(m.statuses) {
		status = m.statuses[m.described]
	}
	m.described++
	return &cloudformation.DescribeStacksOutput{
		Stacks: []*cloudformation.Stack{{
			StackName:         input.StackName,
			StackStatus:       aws.String(status),
			StackStatusReason: aws.String(m.reason),
		}},
	}, nil
}

type mockUploader struct {
	bucket string
	key    string
	body   []byte
}

func (m *mockUploader) UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	body, err := ioutil.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	m.bucket = aws.StringValue(input.Bucket)
	m.key = aws.StringValue(input.Key)
	m.body = body
	return &s3manager.UploadOutput{
		Location: "https://" + m.bucket + ".s3.amazonaws.com/" + m.key,
	}, nil
}
