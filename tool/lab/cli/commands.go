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
	"github.com/gravitational/labs/lib/constants"

	"gopkg.in/alecthomas/kingpin.v2"
)

// Application represents the command-line "lab" application and contains
// definitions of all its flags, arguments and subcommands
type Application struct {
	*kingpin.Application
	// Debug allows to run the command in debug mode
	Debug *bool
	// ConfigPath is the path to the optional configuration file
	ConfigPath *string
	// AccessKey is the AWS access key ID
	AccessKey *string
	// SecretKey is the AWS secret access key
	SecretKey *string
	// SessionToken is the optional AWS session token
	SessionToken *string
	// VersionCmd outputs the binary version
	VersionCmd VersionCmd
	// ProducerCmd deploys a fleet of Kafka producers
	ProducerCmd ProducerCmd
	// MesosCmd combines commands deploying Mesos cluster nodes
	MesosCmd MesosCmd
	// MesosMasterCmd deploys Mesos master nodes
	MesosMasterCmd MesosMasterCmd
	// MesosSlaveCmd deploys Mesos slave nodes
	MesosSlaveCmd MesosSlaveCmd
}

// VersionCmd displays the binary version
type VersionCmd struct {
	*kingpin.CmdClause
	// Output is the version output format
	Output *constants.Format
}

// LabFlags combines flags shared by all lab commands
type LabFlags struct {
	// Environment is the target environment name
	Environment *string
	// Deployment is the deployment name
	Deployment *string
	// Region is the target AWS region
	Region *string
	// Zone is the target availability zone
	Zone *string
	// NodeCount is the number of instances to deploy
	NodeCount *int
	// InstanceType is the EC2 instance type
	InstanceType *string
	// DryRun prints the stack instead of deploying it
	DryRun *bool
	// Output is the dry run output format
	Output *constants.Format
	// Wait blocks until the stack has been created
	Wait *bool
	// TemplateDir overrides the stack template directory
	TemplateDir *string
	// TemplateBucket overrides the S3 bucket for oversized templates
	TemplateBucket *string
}

// ProducerCmd deploys a fleet of Kafka producers
type ProducerCmd struct {
	*kingpin.CmdClause
	LabFlags
	// ProducerURL is the producer package URL
	ProducerURL *string
}

// MesosCmd combines commands deploying Mesos cluster nodes
type MesosCmd struct {
	*kingpin.CmdClause
}

// MesosFlags combines flags shared by the Mesos node commands
type MesosFlags struct {
	LabFlags
	// HostedZone is the DNS hosted zone name
	HostedZone *string
	// MesosVersion is the Mesos version to deploy
	MesosVersion *string
	// ZookeeperVersion is the Zookeeper version to deploy
	ZookeeperVersion *string
}

// MesosMasterCmd deploys Mesos master nodes
type MesosMasterCmd struct {
	*kingpin.CmdClause
	MesosFlags
	// AuroraURL is the Aurora scheduler package URL
	AuroraURL *string
	// MarathonVersion is the Marathon version to deploy
	MarathonVersion *string
	// Marathon enables the Marathon scheduler
	Marathon *bool
	// Aurora enables the Aurora scheduler
	Aurora *bool
	// MesosDNS enables Mesos-DNS
	MesosDNS *bool
	// SlaveOnMaster runs a slave process on master nodes
	SlaveOnMaster *bool
}

// MesosSlaveCmd deploys Mesos slave nodes
type MesosSlaveCmd struct {
	*kingpin.CmdClause
	MesosFlags
}
