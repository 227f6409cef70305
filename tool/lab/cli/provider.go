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

package cli

import (
	"time"

	"github.com/gravitational/labs/lib/cloudprovider/aws"
	"github.com/gravitational/labs/lib/constants"
	"github.com/gravitational/labs/lib/lab"
	labslog "github.com/gravitational/labs/lib/log"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/gravitational/trace"
)

// CloudProvider creates clients for the cloud the labs are deployed to
type CloudProvider interface {
	// NewResolver returns a resolver of resources in the specified region
	NewResolver(region string) (lab.Resolver, error)
	// NewDeployer returns a stack deployer for the specified region
	NewDeployer(region string, config DeployConfig) (lab.Deployer, error)
}

// DeployConfig configures stack deployment
type DeployConfig struct {
	// TemplateDir is the directory with lab stack templates
	TemplateDir string
	// TemplateBucket is the S3 bucket for oversized templates
	TemplateBucket string
	// Wait blocks deploy until the stack has been created
	Wait bool
	// WaitTimeout limits the time to wait for the stack
	WaitTimeout time.Duration
	// PollInterval is the stack status polling interval
	PollInterval time.Duration
}

func newAWSProvider(app Application) *awsProvider {
	return &awsProvider{
		accessKey:    *app.AccessKey,
		secretKey:    *app.SecretKey,
		sessionToken: *app.SessionToken,
	}
}

// awsProvider creates AWS clients using credentials from the command line
// or the default credentials chain
type awsProvider struct {
	accessKey    string
	secretKey    string
	sessionToken string
}

// NewResolver returns the AWS resource resolver for the specified region
func (r *awsProvider) NewResolver(region string) (lab.Resolver, error) {
	sess, err := r.newSession(region)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	resolver, err := aws.NewResolver(sess)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return resolver, nil
}

// NewDeployer returns the CloudFormation deployer for the specified region
func (r *awsProvider) NewDeployer(region string, config DeployConfig) (lab.Deployer, error) {
	sess, err := r.newSession(region)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	deployer, err := aws.NewDeployer(sess, aws.DeployerConfig{
		TemplateDir:    config.TemplateDir,
		TemplateBucket: config.TemplateBucket,
		Wait:           config.Wait,
		WaitTimeout:    config.WaitTimeout,
		PollInterval:   config.PollInterval,
		FieldLogger:    labslog.New(constants.ComponentDeployer),
	})
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return deployer, nil
}

func (r *awsProvider) newSession(region string) (*session.Session, error) {
	return aws.NewSession(aws.SessionConfig{
		Region:       region,
		AccessKey:    r.accessKey,
		SecretKey:    r.secretKey,
		SessionToken: r.sessionToken,
	})
}
