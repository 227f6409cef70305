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

package defaults

import "time"

const (
	// NodeCount is the default number of instances to deploy
	NodeCount = 1

	// InstanceType is the default EC2 instance type
	InstanceType = "m1.small"

	// MesosVersion is the default Mesos version to deploy
	MesosVersion = "0.21.0"

	// ZookeeperVersion is the default Zookeeper version to deploy
	ZookeeperVersion = "3.4.6"

	// MarathonVersion is the default Marathon version to deploy
	MarathonVersion = "0.7.5"

	// TemplateName is the file name of a lab's stack template
	TemplateName = "template.cfn"

	// TemplateDir is the directory with lab stack templates,
	// one subdirectory per lab
	TemplateDir = "labs"

	// ConfigEnvar names the environment variable with the path to the configuration file
	ConfigEnvar = "LAB_CONFIG"

	// MaxTemplateBodyBytes is the largest template CloudFormation accepts inline.
	// Larger templates have to be uploaded to S3 first
	MaxTemplateBodyBytes = 51200

	// TemplateKeyPrefix is the S3 key prefix for uploaded stack templates
	TemplateKeyPrefix = "templates"

	// StackWaitTimeout is the maximum amount of time to wait for a stack
	// to reach a terminal state
	StackWaitTimeout = 30 * time.Minute

	// StackPollInterval is the interval between stack status queries
	StackPollInterval = 10 * time.Second

	// TableColumnWidth is the maximum width of a column in text output
	TableColumnWidth = 60
)
