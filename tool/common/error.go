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

package common

import (
	"github.com/gravitational/trace"
)

// ProcessRunError looks at the error that happened during a CLI command
// execution and converts it to a user-friendly format
func ProcessRunError(runErr error) error {
	if runErr == nil {
		return nil
	}
	switch {
	case trace.IsNotFound(runErr):
		return trace.NotFound("%v. Make sure the environment exists in the "+
			"selected region and the credentials have access to it",
			trace.UserMessage(runErr))
	case trace.IsAccessDenied(runErr):
		return trace.AccessDenied("%v. Check the AWS credentials and the IAM "+
			"policy attached to them", trace.UserMessage(runErr))
	}
	return runErr
}
