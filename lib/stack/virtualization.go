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

package stack

import "github.com/gravitational/labs/lib/constants"

// paravirtualInstanceTypes lists instance types of the previous generation
// (m1, c1, m2) that can only boot paravirtualized machine images
var paravirtualInstanceTypes = map[string]struct{}{
	"m1.small":   {},
	"m1.medium":  {},
	"m1.large":   {},
	"m1.xlarge":  {},
	"c1.medium":  {},
	"c1.large":   {},
	"m2.xlarge":  {},
	"m2.2xlarge": {},
	"m2.4xlarge": {},
}

// Virtualization returns the virtualization mode of the machine image
// for the specified instance type.
// Instance type match is exact and case-sensitive
func Virtualization(instanceType string) string {
	if _, ok := paravirtualInstanceTypes[instanceType]; ok {
		return constants.VirtualizationParavirtual
	}
	return constants.VirtualizationHVM
}
