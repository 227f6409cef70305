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

// package constants contains global constants
// shared between packages
package constants

const (
	// ComponentLab is the logging component for lab parameter builders
	ComponentLab = "lab"
	// ComponentResolver is the logging component for cloud resource lookups
	ComponentResolver = "resolver"
	// ComponentDeployer is the logging component for stack deployment
	ComponentDeployer = "deployer"
	// ComponentCLI is the logging component for the command line tool
	ComponentCLI = "cli"

	// FieldEnvironment is a logging field for the target environment
	FieldEnvironment = "env"
	// FieldStack is a logging field for the stack name
	FieldStack = "stack"
	// FieldNode is a logging field for the cluster node role
	FieldNode = "node"
)

const (
	// LabProducer is the name of the Kafka producer lab
	LabProducer = "producer"
	// LabMesos is the name of the Mesos cluster lab
	LabMesos = "mesos"
)

const (
	// NodeMaster is the Mesos master node role
	NodeMaster = "master"
	// NodeSlave is the Mesos slave node role
	NodeSlave = "slave"
)

const (
	// VirtualizationParavirtual selects a paravirtualized machine image
	VirtualizationParavirtual = "paravirt"
	// VirtualizationHVM selects a hardware virtual machine image
	VirtualizationHVM = "hvm"
)

// Stack template parameter names
const (
	ParamKeyName          = "KeyName"
	ParamEnvironment      = "Environment"
	ParamDeployment       = "Deployment"
	ParamAvailabilityZone = "AvailabilityZone"
	ParamNumberOfNodes    = "NumberOfNodes"
	ParamInstanceType     = "InstanceType"
	ParamProducerURL      = "ProducerUrl"
	ParamVpcID            = "VpcId"
	ParamPublicSubnetID   = "PublicSubnetId"
	ParamPrivateSubnetID  = "PrivateSubnetId"
	ParamAsgTopicArn      = "AsgTopicArn"
	ParamRoleName         = "RoleName"
	ParamVirtualization   = "Virtualization"
	ParamHostedZoneID     = "HostedZoneId"
	ParamMesosVersion     = "MesosVersion"
	ParamZookeeperVersion = "ZookeeperVersion"
	ParamAuroraURL        = "AuroraUrl"
	ParamMarathonVersion  = "MarathonVersion"
	ParamMarathon         = "Marathon"
	ParamAurora           = "Aurora"
	ParamMesosDNS         = "MesosDns"
	ParamSlaveOnMaster    = "SlaveOnMaster"
)

const (
	// PublicSubnetPrefix prefixes the environment name to form the public subnet name
	PublicSubnetPrefix = "public."
	// PrivateSubnetPrefix prefixes the environment name to form the private subnet name
	PrivateSubnetPrefix = "private."
	// AutoscalingTopicPrefix prefixes the environment name to form the
	// autoscaling notifications topic name
	AutoscalingTopicPrefix = "autoscaling-notifications-"
	// GenericRole is the name of the IAM role instances are launched with
	GenericRole = "GenericDev"
)

const (
	// EncodingJSON is for the JSON encoding format
	EncodingJSON Format = "json"
	// EncodingText is for the plain-text encoding format
	EncodingText Format = "text"
	// EncodingYAML is for the YAML encoding format
	EncodingYAML Format = "yaml"
)

// OutputFormats is a list of recognized output formats for lab CLI commands
var OutputFormats = []Format{
	EncodingText,
	EncodingJSON,
	EncodingYAML,
}

// Format is the type for supported output formats
type Format string

// Set sets the format value
func (f *Format) Set(v string) error {
	*f = Format(v)
	return nil
}

// String returns the format string representation
func (f *Format) String() string {
	return string(*f)
}
