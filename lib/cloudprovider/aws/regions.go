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
	"strings"

	"github.com/gravitational/trace"
)

// CheckZone verifies that the availability zone belongs to the region.
// Zone names are the region name followed by a zone letter, e.g. us-east-1a
func CheckZone(region, zone string) error {
	if !strings.HasPrefix(zone, region) || len(zone) <= len(region) {
		return trace.BadParameter("availability zone %q is not in region %q", zone, region)
	}
	return nil
}

// SupportsInstanceType returns true if instances of the specified type can be provisioned
// in the specified region. AWS does not provide a way to check this via API.
//
// NOTE: Currently this function is aware only of certain regions/instance types and can
// be extended further as needed
func SupportsInstanceType(region, instanceType string) bool {
	switch region {
	case Seoul, Mumbai, Ohio, London, Paris, Canada:
		// Previous generation instance types were never offered in
		// regions launched since 2016
		for _, prefix := range []string{"m1.", "m2.", "c1.", "t1."} {
			if strings.HasPrefix(instanceType, prefix) {
				return false
			}
		}
		if region == Seoul || region == Mumbai {
			if strings.HasPrefix(instanceType, "c3.") || strings.HasPrefix(instanceType, "m3.") {
				return false
			}
		}
	}
	return true
}

const (
	NVirginia   = "us-east-1"
	Ohio        = "us-east-2"
	NCalifornia = "us-west-1"
	Oregon      = "us-west-2"
	Ireland     = "eu-west-1"
	London      = "eu-west-2"
	Paris       = "eu-west-3"
	Canada      = "ca-central-1"
	Frankfurt   = "eu-central-1"
	Tokyo       = "ap-northeast-1"
	Seoul       = "ap-northeast-2"
	Singapore   = "ap-southeast-1"
	Sydney      = "ap-southeast-2"
	Mumbai      = "ap-south-1"
	SPaulo      = "sa-east-1"
)
