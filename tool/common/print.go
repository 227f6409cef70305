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
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gravitational/trace"
)

// PrintError prints the red error message to the console
func PrintError(err error) {
	color.Red("[ERROR]: %v\n", trace.UserMessage(err))
}

// PrintWarning prints the yellow warning message to the console
func PrintWarning(format string, args ...interface{}) {
	color.Yellow("[WARNING]: %v\n", fmt.Sprintf(format, args...))
}

// PrintHeader formats the provided string as a header and writes it to w
func PrintHeader(w io.Writer, val string) {
	fmt.Fprintf(w, "\n[%v]\n%v\n", val, strings.Repeat("-", len(val)+2))
}
