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
	"bytes"
	"context"
	"io/ioutil"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gravitational/labs/lib/constants"
	"github.com/gravitational/labs/lib/defaults"
	"github.com/gravitational/labs/lib/log"
	"github.com/gravitational/labs/lib/stack"
	"github.com/gravitational/labs/lib/utils"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudformation"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/cenkalti/backoff"
	"github.com/dustin/go-humanize"
	"github.com/gravitational/trace"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// DeployerConfig is the stack deployer configuration
type DeployerConfig struct {
	// Stacks is the CloudFormation client
	Stacks CloudFormation
	// Uploader uploads templates too large to be passed inline.
	// Only used if TemplateBucket is set
	Uploader Uploader
	// TemplateDir is the directory with lab templates
	TemplateDir string
	// TemplateBucket is an optional S3 bucket for large templates
	TemplateBucket string
	// Wait blocks until the stack reaches a terminal state
	Wait bool
	// WaitTimeout limits the time to wait for the stack
	WaitTimeout time.Duration
	// PollInterval is the interval between stack status queries
	PollInterval time.Duration
	// Clock is used to measure elapsed time
	Clock clockwork.Clock
	// FieldLogger is the logger to use
	logrus.FieldLogger
}

// CheckAndSetDefaults checks and sets default values
func (r *DeployerConfig) CheckAndSetDefaults() error {
	if r.Stacks == nil {
		return trace.BadParameter("missing parameter Stacks")
	}
	if r.TemplateBucket != "" && r.Uploader == nil {
		return trace.BadParameter("missing parameter Uploader")
	}
	if r.TemplateDir == "" {
		r.TemplateDir = defaults.TemplateDir
	}
	if r.WaitTimeout == 0 {
		r.WaitTimeout = defaults.StackWaitTimeout
	}
	if r.PollInterval == 0 {
		r.PollInterval = defaults.StackPollInterval
	}
	if r.Clock == nil {
		r.Clock = clockwork.NewRealClock()
	}
	r.FieldLogger = log.OrDefault(r.FieldLogger, constants.ComponentDeployer)
	return nil
}

// NewDeployer returns a new CloudFormation deployer backed by the specified AWS session
func NewDeployer(session *session.Session, config DeployerConfig) (*Deployer, error) {
	if config.Stacks == nil {
		config.Stacks = cloudformation.New(session)
	}
	if config.TemplateBucket != "" && config.Uploader == nil {
		config.Uploader = s3manager.NewUploader(session)
	}
	return NewDeployerWithConfig(config)
}

// NewDeployerWithConfig returns a new deployer for the specified configuration
func NewDeployerWithConfig(config DeployerConfig) (*Deployer, error) {
	if err := config.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	return &Deployer{DeployerConfig: config}, nil
}

// Deployer creates CloudFormation stacks
type Deployer struct {
	DeployerConfig
}

// Deploy creates the specified stack and optionally waits for it to complete
func (r *Deployer) Deploy(ctx context.Context, s stack.Stack) error {
	if err := s.Check(); err != nil {
		return trace.Wrap(err)
	}
	input := &cloudformation.CreateStackInput{
		StackName:    aws.String(s.Name),
		Parameters:   convertParameters(s.Parameters),
		Capabilities: aws.StringSlice([]string{cloudformation.CapabilityCapabilityIam}),
	}
	if err := r.setTemplate(ctx, s, input); err != nil {
		return trace.Wrap(err)
	}
	start := r.Clock.Now()
	out, err := r.Stacks.CreateStackWithContext(ctx, input)
	if err != nil {
		return trace.Wrap(ConvertError(err), "failed to create stack %v", s.Name)
	}
	logger := r.WithField(constants.FieldStack, s.Name)
	logger.Infof("Created stack %v.", aws.StringValue(out.StackId))
	if !r.Wait {
		return nil
	}
	if err := r.waitForStack(ctx, s.Name); err != nil {
		return trace.Wrap(err)
	}
	logger.Infof("Stack is ready after %v.", r.Clock.Now().Sub(start))
	return nil
}

// setTemplate sets the template reference on the input.
// Templates given as URLs are passed as is. Local templates are passed
// inline unless they exceed the inline size limit, in which case
// they are uploaded to the template bucket
func (r *Deployer) setTemplate(ctx context.Context, s stack.Stack, input *cloudformation.CreateStackInput) error {
	if isURL(s.Template) {
		input.TemplateURL = aws.String(s.Template)
		return nil
	}
	templatePath := filepath.Join(r.TemplateDir, s.Lab, s.Template)
	body, err := ioutil.ReadFile(templatePath)
	if err != nil {
		return trace.ConvertSystemError(err)
	}
	r.Debugf("Read template %v (%v).", templatePath, humanize.Bytes(uint64(len(body))))
	if len(body) <= defaults.MaxTemplateBodyBytes {
		input.TemplateBody = aws.String(string(body))
		return nil
	}
	if r.TemplateBucket == "" {
		return trace.BadParameter("template %v is %v, larger than the inline limit of %v: specify a template bucket",
			templatePath, humanize.Bytes(uint64(len(body))), humanize.Bytes(defaults.MaxTemplateBodyBytes))
	}
	key := path.Join(defaults.TemplateKeyPrefix, s.Name, s.Template)
	out, err := r.Uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(r.TemplateBucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		return trace.Wrap(ConvertError(err), "failed to upload template to s3://%v/%v", r.TemplateBucket, key)
	}
	r.Infof("Uploaded template to %v.", out.Location)
	input.TemplateURL = aws.String(out.Location)
	return nil
}

// waitForStack polls the stack status until the stack creation
// either succeeds or fails
func (r *Deployer) waitForStack(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, r.WaitTimeout)
	defer cancel()
	err := utils.RetryWithInterval(ctx, backoff.NewConstantBackOff(r.PollInterval), func() error {
		status, reason, err := r.describeStack(ctx, name)
		if err != nil {
			return utils.Abort(err)
		}
		switch {
		case isInProgress(status):
			return utils.Continue("stack %v is %v", name, status)
		case status == cloudformation.StackStatusCreateComplete:
			return nil
		}
		return utils.Abort(trace.BadParameter("stack %v failed with status %v: %v", name, status, reason))
	}, r.FieldLogger)
	if err != nil && ctx.Err() == context.DeadlineExceeded {
		return trace.LimitExceeded("timed out waiting for stack %v: %v", name, err)
	}
	return trace.Wrap(err)
}

func (r *Deployer) describeStack(ctx context.Context, name string) (status, reason string, err error) {
	out, err := r.Stacks.DescribeStacksWithContext(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(name),
	})
	if err != nil {
		return "", "", trace.Wrap(ConvertError(err))
	}
	if len(out.Stacks) == 0 {
		return "", "", trace.NotFound("stack %v not found", name)
	}
	st := out.Stacks[0]
	return aws.StringValue(st.StackStatus), aws.StringValue(st.StackStatusReason), nil
}

func convertParameters(params stack.Parameters) []*cloudformation.Parameter {
	result := make([]*cloudformation.Parameter, 0, len(params))
	for _, param := range params {
		result = append(result, &cloudformation.Parameter{
			ParameterKey:   aws.String(param.Name),
			ParameterValue: aws.String(param.Value),
		})
	}
	return result
}

// isInProgress returns true for transitional stack states.
// ROLLBACK_IN_PROGRESS is excluded as the creation has already failed
func isInProgress(status string) bool {
	return strings.HasSuffix(status, "_IN_PROGRESS") && status != cloudformation.StackStatusRollbackInProgress
}

func isURL(template string) bool {
	return strings.HasPrefix(template, "https://") || strings.HasPrefix(template, "http://")
}
