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
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gravitational/labs/lib/stack"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/cloudformation"
	"github.com/gravitational/trace"
	"github.com/jonboulle/clockwork"
	"gopkg.in/check.v1"
)

type DeployerSuite struct {
	dir    string
	stacks *mockCloudFormation
}

var _ = check.Suite(&DeployerSuite{})

func (s *DeployerSuite) SetUpTest(c *check.C) {
	s.dir = c.MkDir()
	c.Assert(os.MkdirAll(filepath.Join(s.dir, "mesos"), 0755), check.IsNil)
	c.Assert(ioutil.WriteFile(filepath.Join(s.dir, "mesos", "master-template.cfn"), []byte(`{"Resources":{}}`), 0644), check.IsNil)
	s.stacks = &mockCloudFormation{statuses: []string{cloudformation.StackStatusCreateComplete}}
}

func (s *DeployerSuite) TestCreatesStackWithOrderedParameters(c *check.C) {
	d := s.newDeployer(c, DeployerConfig{})
	err := d.Deploy(context.TODO(), newStack())
	c.Assert(err, check.IsNil)
	c.Assert(s.stacks.created, check.HasLen, 1)
	input := s.stacks.created[0]
	c.Assert(aws.StringValue(input.StackName), check.Equals, "mesos-master-prod")
	c.Assert(aws.StringValue(input.TemplateBody), check.Equals, `{"Resources":{}}`)
	c.Assert(input.TemplateURL, check.IsNil)
	c.Assert(aws.StringValueSlice(input.Capabilities), check.DeepEquals, []string{cloudformation.CapabilityCapabilityIam})
	var keys, values []string
	for _, param := range input.Parameters {
		keys = append(keys, aws.StringValue(param.ParameterKey))
		values = append(values, aws.StringValue(param.ParameterValue))
	}
	c.Assert(keys, check.DeepEquals, []string{"KeyName", "VpcId", "Marathon"})
	c.Assert(values, check.DeepEquals, []string{"prod", "vpc-1", "true"})
	c.Assert(s.stacks.described, check.Equals, 0, check.Commentf("should not wait"))
}

func (s *DeployerSuite) TestPassesTemplateURL(c *check.C) {
	d := s.newDeployer(c, DeployerConfig{})
	st := newStack()
	st.Template = "https://bucket.s3.amazonaws.com/template.cfn"
	c.Assert(d.Deploy(context.TODO(), st), check.IsNil)
	c.Assert(aws.StringValue(s.stacks.created[0].TemplateURL), check.Equals, st.Template)
	c.Assert(s.stacks.created[0].TemplateBody, check.IsNil)
}

func (s *DeployerSuite) TestMissingTemplate(c *check.C) {
	d := s.newDeployer(c, DeployerConfig{})
	st := newStack()
	st.Template = "slave-template.cfn"
	err := d.Deploy(context.TODO(), st)
	c.Assert(trace.IsNotFound(err), check.Equals, true, check.Commentf("%v", err))
	c.Assert(s.stacks.created, check.HasLen, 0)
}

func (s *DeployerSuite) TestUploadsLargeTemplate(c *check.C) {
	s.writeLargeTemplate(c)
	uploader := &mockUploader{}
	d := s.newDeployer(c, DeployerConfig{
		TemplateBucket: "templates",
		Uploader:       uploader,
	})
	c.Assert(d.Deploy(context.TODO(), newStack()), check.IsNil)
	c.Assert(uploader.bucket, check.Equals, "templates")
	c.Assert(uploader.key, check.Equals, "templates/mesos-master-prod/master-template.cfn")
	c.Assert(len(uploader.body) > 51200, check.Equals, true)
	c.Assert(aws.StringValue(s.stacks.created[0].TemplateURL), check.Equals,
		"https://templates.s3.amazonaws.com/templates/mesos-master-prod/master-template.cfn")
	c.Assert(s.stacks.created[0].TemplateBody, check.IsNil)
}

func (s *DeployerSuite) TestLargeTemplateRequiresBucket(c *check.C) {
	s.writeLargeTemplate(c)
	d := s.newDeployer(c, DeployerConfig{})
	err := d.Deploy(context.TODO(), newStack())
	c.Assert(trace.IsBadParameter(err), check.Equals, true)
	c.Assert(s.stacks.created, check.HasLen, 0)
}

func (s *DeployerSuite) TestWaitsForCompletion(c *check.C) {
	s.stacks.statuses = []string{
		cloudformation.StackStatusCreateInProgress,
		cloudformation.StackStatusCreateInProgress,
		cloudformation.StackStatusCreateComplete,
	}
	d := s.newDeployer(c, DeployerConfig{Wait: true})
	c.Assert(d.Deploy(context.TODO(), newStack()), check.IsNil)
	c.Assert(s.stacks.described, check.Equals, 3)
}

func (s *DeployerSuite) TestReportsFailedStack(c *check.C) {
	s.stacks.statuses = []string{
		cloudformation.StackStatusCreateInProgress,
		cloudformation.StackStatusRollbackInProgress,
	}
	s.stacks.reason = "The following resource(s) failed to create: [LaunchConfig]."
	d := s.newDeployer(c, DeployerConfig{Wait: true})
	err := d.Deploy(context.TODO(), newStack())
	c.Assert(err, check.NotNil)
	c.Assert(strings.Contains(err.Error(), "ROLLBACK_IN_PROGRESS"), check.Equals, true, check.Commentf("%v", err))
	c.Assert(strings.Contains(err.Error(), "LaunchConfig"), check.Equals, true, check.Commentf("%v", err))
}

func (s *DeployerSuite) TestWaitTimesOut(c *check.C) {
	s.stacks.statuses = []string{cloudformation.StackStatusCreateInProgress}
	d := s.newDeployer(c, DeployerConfig{Wait: true, WaitTimeout: 20 * time.Millisecond})
	err := d.Deploy(context.TODO(), newStack())
	c.Assert(trace.IsLimitExceeded(err), check.Equals, true, check.Commentf("%v", err))
}

func (s *DeployerSuite) TestConvertsCreateError(c *check.C) {
	s.stacks.createErr = awserr.New("AlreadyExistsException", "Stack [mesos-master-prod] already exists", nil)
	d := s.newDeployer(c, DeployerConfig{})
	err := d.Deploy(context.TODO(), newStack())
	c.Assert(trace.IsAlreadyExists(err), check.Equals, true)
}

func (s *DeployerSuite) TestRejectsInvalidStack(c *check.C) {
	d := s.newDeployer(c, DeployerConfig{})
	err := d.Deploy(context.TODO(), stack.Stack{})
	c.Assert(trace.IsBadParameter(err), check.Equals, true)
}

func (s *DeployerSuite) TestBucketRequiresUploader(c *check.C) {
	_, err := NewDeployerWithConfig(DeployerConfig{Stacks: s.stacks, TemplateBucket: "templates"})
	c.Assert(trace.IsBadParameter(err), check.Equals, true)
}

func (s *DeployerSuite) newDeployer(c *check.C, config DeployerConfig) *Deployer {
	config.Stacks = s.stacks
	config.TemplateDir = s.dir
	config.PollInterval = time.Millisecond
	config.Clock = clockwork.NewFakeClock()
	d, err := NewDeployerWithConfig(config)
	c.Assert(err, check.IsNil)
	return d
}

func (s *DeployerSuite) writeLargeTemplate(c *check.C) {
	body := `{"Description":"` + strings.Repeat("x", 60000) + `"}`
	err := ioutil.WriteFile(filepath.Join(s.dir, "mesos", "master-template.cfn"), []byte(body), 0644)
	c.Assert(err, check.IsNil)
}

func newStack() stack.Stack {
	return stack.Stack{
		Name:     "mesos-master-prod",
		Lab:      "mesos",
		Template: "master-template.cfn",
		Parameters: stack.Parameters{
			{Name: "KeyName", Value: "prod"},
			{Name: "VpcId", Value: "vpc-1"},
			{Name: "Marathon", Value: "true"},
		},
	}
}
