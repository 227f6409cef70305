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
	"fmt"
	"strconv"

	"github.com/gravitational/labs/lib/constants"
	"github.com/gravitational/labs/lib/defaults"
	"github.com/gravitational/labs/tool/common"

	"gopkg.in/alecthomas/kingpin.v2"
)

// RegisterCommands registers all lab tool flags, arguments and subcommands
func RegisterCommands(app *kingpin.Application) Application {
	lab := Application{
		Application: app,
	}

	lab.Debug = app.Flag("debug", "Enable debug mode.").Bool()
	lab.ConfigPath = app.Flag("config", "Path to the configuration file.").Envar(defaults.ConfigEnvar).String()
	lab.AccessKey = app.Flag("aws-access-key", "AWS access key ID. Defaults to the shared credentials chain.").Envar("AWS_ACCESS_KEY_ID").String()
	lab.SecretKey = app.Flag("aws-secret-key", "AWS secret access key.").Envar("AWS_SECRET_ACCESS_KEY").String()
	lab.SessionToken = app.Flag("aws-session-token", "AWS session token for temporary credentials.").Envar("AWS_SESSION_TOKEN").String()

	lab.VersionCmd.CmdClause = app.Command("version", "Print version information and exit.")
	lab.VersionCmd.Output = common.Format(lab.VersionCmd.Flag("output", "Output format: text or json.").Default(string(constants.EncodingText)))

	lab.ProducerCmd.CmdClause = app.Command("producer", "Deploy a fleet of Kafka producers.")
	lab.ProducerCmd.LabFlags = registerLabFlags(lab.ProducerCmd.CmdClause)
	lab.ProducerCmd.ProducerURL = lab.ProducerCmd.Flag("producer-url", "URL of the producer package to install.").Short('c').Default("").String()

	lab.MesosCmd.CmdClause = app.Command("mesos", "Deploy Mesos cluster nodes.")

	lab.MesosMasterCmd.CmdClause = lab.MesosCmd.Command("master", "Deploy Mesos master nodes.")
	lab.MesosMasterCmd.MesosFlags = registerMesosFlags(lab.MesosMasterCmd.CmdClause)
	lab.MesosMasterCmd.AuroraURL = lab.MesosMasterCmd.Flag("aurora-url", "URL of the Aurora scheduler package.").Short('a').Default("").String()
	lab.MesosMasterCmd.MarathonVersion = lab.MesosMasterCmd.Flag("marathon-version", "Marathon version to install.").Short('t').Default(defaults.MarathonVersion).String()
	lab.MesosMasterCmd.Marathon = lab.MesosMasterCmd.Flag("marathon", "Run the Marathon scheduler.").Bool()
	lab.MesosMasterCmd.Aurora = lab.MesosMasterCmd.Flag("aurora", "Run the Aurora scheduler.").Bool()
	lab.MesosMasterCmd.MesosDNS = lab.MesosMasterCmd.Flag("mesos-dns", "Run Mesos-DNS.").Bool()
	lab.MesosMasterCmd.SlaveOnMaster = lab.MesosMasterCmd.Flag("slave-on-master", "Run a Mesos slave on master nodes.").Bool()

	lab.MesosSlaveCmd.CmdClause = lab.MesosCmd.Command("slave", "Deploy Mesos slave nodes.")
	lab.MesosSlaveCmd.MesosFlags = registerMesosFlags(lab.MesosSlaveCmd.CmdClause)

	return lab
}

func registerLabFlags(cmd *kingpin.CmdClause) LabFlags {
	return LabFlags{
		Environment:    cmd.Flag("environment", "Name of the target environment.").Short('e').Required().String(),
		Deployment:     cmd.Flag("deployment", "Name of the deployment.").Short('d').Required().String(),
		Region:         cmd.Flag("region", "AWS region. Defaults to the region from the configuration file.").Short('r').String(),
		Zone:           cmd.Flag("availability-zone", "Availability zone, e.g. us-east-1a.").Short('z').Required().String(),
		NodeCount:      cmd.Flag("num-nodes", "Number of instances to launch.").Short('n').Default(strconv.Itoa(defaults.NodeCount)).Int(),
		InstanceType:   cmd.Flag("instance-type", "EC2 instance type.").Short('i').Default(defaults.InstanceType).String(),
		DryRun:         cmd.Flag("dry-run", "Print the stack without deploying it.").Bool(),
		Output:         common.Format(cmd.Flag("output", fmt.Sprintf("Dry run output format: %v.", constants.OutputFormats)).Default(string(constants.EncodingText))),
		Wait:           cmd.Flag("wait", "Wait for the stack to be created.").Bool(),
		TemplateDir:    cmd.Flag("template-dir", "Directory with lab stack templates.").String(),
		TemplateBucket: cmd.Flag("template-bucket", "S3 bucket to upload oversized stack templates to.").String(),
	}
}

func registerMesosFlags(cmd *kingpin.CmdClause) MesosFlags {
	return MesosFlags{
		LabFlags:         registerLabFlags(cmd),
		HostedZone:       cmd.Flag("hosted-zone", "Name of the DNS hosted zone for cluster records.").Short('o').Required().String(),
		MesosVersion:     cmd.Flag("mesos-version", "Mesos version to install.").Short('m').Default(defaults.MesosVersion).String(),
		ZookeeperVersion: cmd.Flag("zk-version", "Zookeeper version to install.").Short('v').Default(defaults.ZookeeperVersion).String(),
	}
}
