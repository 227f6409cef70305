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
	"github.com/gravitational/labs/lib/constants"

	"github.com/gravitational/trace"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Format is the CLI parser for output format flag
func Format(s kingpin.Settings) *constants.Format {
	var f constants.Format
	s.SetValue(&f)
	return &f
}

// CheckFormat validates the output format against the list of supported ones
func CheckFormat(format constants.Format, supported ...constants.Format) error {
	for _, f := range supported {
		if f == format {
			return nil
		}
	}
	return trace.BadParameter("unsupported output format %q, expected one of %v", format, supported)
}
