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
	"encoding/json"
	"fmt"
	"io"

	"github.com/gravitational/labs/lib/constants"
	"github.com/gravitational/labs/lib/defaults"
	"github.com/gravitational/labs/lib/stack"
	"github.com/gravitational/labs/tool/common"

	"github.com/ghodss/yaml"
	"github.com/gravitational/trace"
	"github.com/olekukonko/tablewriter"
)

// printStack outputs the stack in the specified format
func printStack(w io.Writer, s stack.Stack, format constants.Format) error {
	if err := common.CheckFormat(format, constants.OutputFormats...); err != nil {
		return trace.Wrap(err)
	}
	switch format {
	case constants.EncodingText:
		printStackTable(w, s)
	case constants.EncodingJSON:
		bytes, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return trace.Wrap(err)
		}
		fmt.Fprintln(w, string(bytes))
	case constants.EncodingYAML:
		bytes, err := yaml.Marshal(s)
		if err != nil {
			return trace.Wrap(err)
		}
		fmt.Fprint(w, string(bytes))
	}
	return nil
}

func printStackTable(w io.Writer, s stack.Stack) {
	fmt.Fprintf(w, "Stack:\t\t%v\nTemplate:\t%v/%v\n", s.Name, s.Lab, s.Template)
	common.PrintHeader(w, "Parameters")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Value"})
	table.SetColWidth(defaults.TableColumnWidth)
	table.SetAutoWrapText(false)
	for _, param := range s.Parameters {
		table.Append([]string{param.Name, param.Value})
	}
	table.Render()
}
