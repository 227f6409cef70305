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
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gravitational/labs/lib/cloudprovider/aws"
	"github.com/gravitational/labs/lib/config"
	"github.com/gravitational/labs/lib/constants"
	"github.com/gravitational/labs/lib/lab"
	"github.com/gravitational/labs/lib/lab/mesos"
	"github.com/gravitational/labs/lib/lab/producer"
	labslog "github.com/gravitational/labs/lib/log"
	"github.com/gravitational/labs/lib/stack"
	"github.com/gravitational/labs/lib/utils"
	"github.com/gravitational/labs/tool/common"

	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"
)

// Run parses CLI arguments and executes an appropriate command
func Run(app Application) error {
	log.Debugf("Executing: %v.", os.Args)
	cmd, err := app.Parse(os.Args[1:])
	if err != nil {
		return trace.Wrap(err)
	}

	labslog.InitLogger(*app.Debug)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	utils.WatchTerminationSignals(ctx, cancel, labslog.New(constants.ComponentCLI))

	return execute(ctx, app, cmd, newAWSProvider(app), os.Stdout)
}

func execute(ctx context.Context, app Application, cmd string, provider CloudProvider, w io.Writer) error {
	if cmd == app.VersionCmd.FullCommand() {
		return printVersion(w, *app.VersionCmd.Output)
	}

	cfg, err := config.Read(*app.ConfigPath)
	if err != nil {
		return trace.Wrap(err)
	}

	switch cmd {
	case app.ProducerCmd.FullCommand():
		req := producer.Request{
			Request:     newLabRequest(app.ProducerCmd.LabFlags, *cfg),
			ProducerURL: *app.ProducerCmd.ProducerURL,
		}
		return deployLab(ctx, deployRequest{
			provider: provider,
			flags:    app.ProducerCmd.LabFlags,
			config:   *cfg,
			request:  req.Request,
			w:        w,
			build: func(ctx context.Context, resolver lab.Resolver) (*stack.Stack, error) {
				return producer.NewStack(ctx, resolver, req)
			},
		})
	case app.MesosMasterCmd.FullCommand():
		node := mesos.Master{
			AuroraURL:       *app.MesosMasterCmd.AuroraURL,
			MarathonVersion: *app.MesosMasterCmd.MarathonVersion,
			Marathon:        *app.MesosMasterCmd.Marathon,
			Aurora:          *app.MesosMasterCmd.Aurora,
			MesosDNS:        *app.MesosMasterCmd.MesosDNS,
			SlaveOnMaster:   *app.MesosMasterCmd.SlaveOnMaster,
		}
		return deployMesos(ctx, provider, app.MesosMasterCmd.MesosFlags, *cfg, node, w)
	case app.MesosSlaveCmd.FullCommand():
		return deployMesos(ctx, provider, app.MesosSlaveCmd.MesosFlags, *cfg, mesos.Slave{}, w)
	}
	return trace.NotImplemented("unknown command %v", cmd)
}

func deployMesos(ctx context.Context, provider CloudProvider, flags MesosFlags, cfg config.Config, node mesos.Node, w io.Writer) error {
	req := mesos.Request{
		Request:          newLabRequest(flags.LabFlags, cfg),
		HostedZone:       *flags.HostedZone,
		MesosVersion:     *flags.MesosVersion,
		ZookeeperVersion: *flags.ZookeeperVersion,
		Node:             node,
	}
	return deployLab(ctx, deployRequest{
		provider: provider,
		flags:    flags.LabFlags,
		config:   cfg,
		request:  req.Request,
		w:        w,
		build: func(ctx context.Context, resolver lab.Resolver) (*stack.Stack, error) {
			return mesos.NewStack(ctx, resolver, req)
		},
	})
}

type deployRequest struct {
	provider CloudProvider
	flags    LabFlags
	config   config.Config
	request  lab.Request
	build    func(context.Context, lab.Resolver) (*stack.Stack, error)
	w        io.Writer
}

// deployLab resolves the stack for the lab and either prints it (in dry run mode)
// or hands it over to the deployer.
// Nothing is deployed unless all parameters have been resolved
func deployLab(ctx context.Context, req deployRequest) error {
	if err := req.request.Check(); err != nil {
		return trace.Wrap(err)
	}
	if err := aws.CheckZone(req.request.Region, req.request.Zone); err != nil {
		return trace.Wrap(err)
	}
	if *req.flags.DryRun {
		if err := common.CheckFormat(*req.flags.Output, constants.OutputFormats...); err != nil {
			return trace.Wrap(err)
		}
	}
	if !aws.SupportsInstanceType(req.request.Region, req.request.InstanceType) {
		common.PrintWarning("Instance type %v is not offered in region %v.",
			req.request.InstanceType, req.request.Region)
	}

	resolver, err := req.provider.NewResolver(req.request.Region)
	if err != nil {
		return trace.Wrap(err)
	}
	s, err := req.build(ctx, resolver)
	if err != nil {
		return trace.Wrap(err)
	}
	if *req.flags.DryRun {
		return printStack(req.w, *s, *req.flags.Output)
	}

	deployer, err := req.provider.NewDeployer(req.request.Region, newDeployConfig(req.flags, req.config))
	if err != nil {
		return trace.Wrap(err)
	}
	if err := deployer.Deploy(ctx, *s); err != nil {
		return trace.Wrap(err)
	}
	if *req.flags.Wait || req.config.Wait {
		fmt.Fprintf(req.w, "Stack %v has been created.\n", s.Name)
	} else {
		fmt.Fprintf(req.w, "Stack %v is being created.\n", s.Name)
	}
	return nil
}

func newLabRequest(flags LabFlags, cfg config.Config) lab.Request {
	region := *flags.Region
	if region == "" {
		region = cfg.Region
	}
	return lab.Request{
		Environment:  *flags.Environment,
		Deployment:   *flags.Deployment,
		Region:       region,
		Zone:         *flags.Zone,
		NodeCount:    *flags.NodeCount,
		InstanceType: *flags.InstanceType,
	}
}

// newDeployConfig merges deploy flags with the configuration file.
// Flags take precedence
func newDeployConfig(flags LabFlags, cfg config.Config) DeployConfig {
	deployConfig := DeployConfig{
		TemplateDir:    cfg.TemplateDir,
		TemplateBucket: cfg.TemplateBucket,
		Wait:           cfg.Wait || *flags.Wait,
		WaitTimeout:    cfg.WaitTimeout.Value(),
		PollInterval:   cfg.PollInterval.Value(),
	}
	if *flags.TemplateDir != "" {
		deployConfig.TemplateDir = *flags.TemplateDir
	}
	if *flags.TemplateBucket != "" {
		deployConfig.TemplateBucket = *flags.TemplateBucket
	}
	return deployConfig
}
