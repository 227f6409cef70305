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
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/gravitational/trace"
)

// SessionConfig defines the AWS session parameters
type SessionConfig struct {
	// Region is the AWS region to connect to
	Region string
	// AccessKey is an optional AWS access key.
	// If unspecified, the SDK default credential chain is used
	AccessKey string
	// SecretKey is the AWS secret key for AccessKey
	SecretKey string
	// SessionToken is an optional session token for temporary credentials
	SessionToken string
}

// Check validates this configuration
func (r SessionConfig) Check() error {
	if r.Region == "" {
		return trace.BadParameter("missing AWS region")
	}
	if r.AccessKey != "" && r.SecretKey == "" {
		return trace.BadParameter("AWS access key requires a secret key")
	}
	if r.AccessKey == "" && r.SecretKey != "" {
		return trace.BadParameter("AWS secret key requires an access key")
	}
	return nil
}

// NewSession creates a new AWS session for the specified configuration
func NewSession(config SessionConfig) (*session.Session, error) {
	if err := config.Check(); err != nil {
		return nil, trace.Wrap(err)
	}
	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
		// Enable verbose error logging
		CredentialsChainVerboseErrors: aws.Bool(true),
	}
	if config.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(
			config.AccessKey, config.SecretKey, config.SessionToken)
	}
	session, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return session, nil
}
