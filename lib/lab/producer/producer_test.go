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

package producer

import (
	"context"
	"testing"

	"github.com/gravitational/labs/lib/lab"
	"github.com/gravitational/labs/lib/lab/labtest"

	"github.com/gravitational/trace"
	"gopkg.in/check.v1"
)

func TestProducer(t *testing.T) { check.TestingT(t) }

type ProducerSuite struct{}

var _ = check.Suite(&ProducerSuite{})

func (*ProducerSuite) TestBuildsParameters(c *check.C) {
	resolver := newResolver()
	params, err := BuildParameters(context.TODO(), resolver, newRequest())
	c.Assert(err, check.IsNil)
	labtest.DeepCompare(c, params, labtest.Params(
		"KeyName", "prod",
		"Environment", "prod",
		"Deployment", "d1",
		"AvailabilityZone", "us-east-1a",
		"NumberOfNodes", "3",
		"InstanceType", "m1.small",
		"ProducerUrl", "http://x",
		"VpcId", "vpc-1",
		"PublicSubnetId", "subnet-1",
		"AsgTopicArn", "arn:topic-1",
		"RoleName", "GenericDev",
		"Virtualization", "paravirt",
	))
	c.Assert(resolver.Calls(), check.DeepEquals, []labtest.Call{
		{Kind: labtest.LookupVPC, Args: []string{"prod"}},
		{Kind: labtest.LookupSubnet, Args: []string{"public.prod", "vpc-1", "us-east-1a"}},
		{Kind: labtest.LookupTopic, Args: []string{"autoscaling-notifications-prod"}},
		{Kind: labtest.LookupRole, Args: []string{"GenericDev"}},
	})
}

func (*ProducerSuite) TestHVMInstanceAndEmptyProducerURL(c *check.C) {
	req := newRequest()
	req.InstanceType = "m4.large"
	req.ProducerURL = ""
	params, err := BuildParameters(context.TODO(), newResolver(), req)
	c.Assert(err, check.IsNil)
	c.Assert(params, check.HasLen, 12)
	virtualization, _ := params.Get("Virtualization")
	c.Assert(virtualization, check.Equals, "hvm")
	producerURL, ok := params.Get("ProducerUrl")
	c.Assert(ok, check.Equals, true)
	c.Assert(producerURL, check.Equals, "")
}

func (*ProducerSuite) TestParameterNamesAreUnique(c *check.C) {
	params, err := BuildParameters(context.TODO(), newResolver(), newRequest())
	c.Assert(err, check.IsNil)
	seen := make(map[string]bool)
	for _, name := range params.Names() {
		c.Assert(seen[name], check.Equals, false, check.Commentf("duplicate %v", name))
		seen[name] = true
	}
}

func (*ProducerSuite) TestLookupFailureAborts(c *check.C) {
	for _, kind := range []string{
		labtest.LookupVPC,
		labtest.LookupSubnet,
		labtest.LookupTopic,
		labtest.LookupRole,
	} {
		comment := check.Commentf(kind)
		resolver := newResolver()
		resolver.Errors = map[string]error{kind: trace.NotFound("%v not found", kind)}
		s, err := NewStack(context.TODO(), resolver, newRequest())
		c.Assert(trace.IsNotFound(err), check.Equals, true, comment)
		c.Assert(s, check.IsNil, comment)
		kinds := resolver.Kinds()
		c.Assert(kinds[len(kinds)-1], check.Equals, kind, comment)
	}
}

func (*ProducerSuite) TestMissingSubnet(c *check.C) {
	resolver := newResolver()
	delete(resolver.Subnets, "public.prod")
	params, err := BuildParameters(context.TODO(), resolver, newRequest())
	c.Assert(trace.IsNotFound(err), check.Equals, true)
	c.Assert(params, check.IsNil)
}

func (*ProducerSuite) TestValidatesRequest(c *check.C) {
	resolver := newResolver()
	req := newRequest()
	req.Environment = ""
	_, err := BuildParameters(context.TODO(), resolver, req)
	c.Assert(trace.IsBadParameter(err), check.Equals, true)
	c.Assert(resolver.Calls(), check.HasLen, 0)
}

func (*ProducerSuite) TestNewStack(c *check.C) {
	s, err := NewStack(context.TODO(), newResolver(), newRequest())
	c.Assert(err, check.IsNil)
	c.Assert(s.Name, check.Equals, "producer-prod-d1-us-east-1-us-east-1a")
	c.Assert(s.Lab, check.Equals, "producer")
	c.Assert(s.Template, check.Equals, "template.cfn")
	c.Assert(s.Parameters, check.HasLen, 12)
	c.Assert(s.Check(), check.IsNil)
}

func newRequest() Request {
	return Request{
		Request: lab.Request{
			Environment:  "prod",
			Deployment:   "d1",
			Region:       "us-east-1",
			Zone:         "us-east-1a",
			NodeCount:    3,
			InstanceType: "m1.small",
		},
		ProducerURL: "http://x",
	}
}

func newResolver() *labtest.Resolver {
	return &labtest.Resolver{
		VPCs:    map[string]string{"prod": "vpc-1"},
		Subnets: map[string]string{"public.prod": "subnet-1"},
		Topics:  map[string]string{"autoscaling-notifications-prod": "arn:topic-1"},
		Roles:   map[string]string{"GenericDev": "GenericDev"},
	}
}
