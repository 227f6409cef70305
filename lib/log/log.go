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

// Package log configures the process-wide logger
package log

import (
	"io"
	"os"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

// InitLogger configures the standard logger to write to stderr.
// In debug mode all messages are logged with source locations attached
// to errors; otherwise only warnings and above reach the console
func InitLogger(debug bool) {
	initLogger(os.Stderr, debug)
}

func initLogger(w io.Writer, debug bool) {
	logrus.SetOutput(w)
	trace.SetDebug(debug)
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return
	}
	logrus.SetLevel(logrus.WarnLevel)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
}

// New returns a logger for the specified component
func New(component string) logrus.FieldLogger {
	return logrus.WithField(trace.Component, component)
}

// OrDefault returns the specified logger, or a logger for the component
// if the logger is nil
func OrDefault(logger logrus.FieldLogger, component string) logrus.FieldLogger {
	if logger == nil {
		return New(component)
	}
	return logger
}
