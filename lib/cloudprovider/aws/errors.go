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
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/cloudformation"
	"github.com/aws/aws-sdk-go/service/iam"
	"github.com/aws/aws-sdk-go/service/route53"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/gravitational/trace"
)

// ConvertError converts an error from AWS APIs to an appropriate trace error
func ConvertError(err error) error {
	if err == nil {
		return nil
	}
	awsErr, ok := err.(awserr.Error)
	if !ok {
		return err
	}
	switch awsErr.Code() {
	case iam.ErrCodeNoSuchEntityException,
		sns.ErrCodeNotFoundException,
		route53.ErrCodeNoSuchHostedZone,
		s3.ErrCodeNoSuchBucket,
		s3.ErrCodeNoSuchKey:
		return trace.NotFound(awsErr.Message())
	case cloudformation.ErrCodeAlreadyExistsException:
		return trace.AlreadyExists(awsErr.Message())
	case "AccessDenied", "AccessDeniedException", "UnauthorizedOperation", sns.ErrCodeAuthorizationErrorException:
		return trace.AccessDenied(awsErr.Message())
	}
	// EC2 reports missing resources as e.g. InvalidVpcID.NotFound
	if strings.HasSuffix(awsErr.Code(), ".NotFound") {
		return trace.NotFound(awsErr.Message())
	}
	if reqErr, ok := err.(awserr.RequestFailure); ok {
		switch reqErr.StatusCode() {
		case http.StatusNotFound:
			return trace.NotFound(awsErr.Message())
		case http.StatusForbidden:
			return trace.AccessDenied(awsErr.Message())
		}
	}
	return err
}
