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

package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

// Abort causes RetryWithInterval to stop and return err
func Abort(err error) error {
	return &backoff.PermanentError{Err: err}
}

// Continue causes RetryWithInterval to retry the operation
func Continue(format string, args ...interface{}) *ContinueRetry {
	return &ContinueRetry{Message: fmt.Sprintf(format, args...)}
}

// IsContinueError returns true if provided error is of ContinueRetry type
func IsContinueError(err error) bool {
	_, ok := trace.Unwrap(err).(*ContinueRetry)
	return ok
}

// ContinueRetry if returned from the operation, leads to another attempt
type ContinueRetry struct {
	Message string
}

// Error returns the continue error string representation
func (s *ContinueRetry) Error() string {
	return s.Message
}

// RetryWithInterval retries the specified operation fn using the specified backoff interval.
// fn can return Abort to stop retrying with an error, any other error is retried.
// Returns nil on success or the last received error upon exhausting the interval
// or the context
func RetryWithInterval(ctx context.Context, interval backoff.BackOff, fn func() error, logger logrus.FieldLogger) error {
	b := backoff.WithContext(interval, ctx)
	err := backoff.RetryNotify(fn, b, func(err error, d time.Duration) {
		logger.Debugf("%v, retrying in %v.", err, d)
	})
	if err != nil {
		return trace.Wrap(err)
	}
	return nil
}
