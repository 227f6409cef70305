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

// Package config reads the lab tool configuration file
package config

import (
	"io/ioutil"
	"time"

	"github.com/gravitational/labs/lib/defaults"

	"github.com/ghodss/yaml"
	"github.com/gravitational/trace"
)

// Config defines the deployment settings shared by all labs.
// Command line flags take precedence over values from the file
type Config struct {
	// TemplateDir is the directory with lab templates
	TemplateDir string `json:"template_dir,omitempty"`
	// TemplateBucket is the S3 bucket for templates too large to pass inline
	TemplateBucket string `json:"template_bucket,omitempty"`
	// Region is the default AWS region
	Region string `json:"region,omitempty"`
	// Wait makes deploys block until the stack is ready
	Wait bool `json:"wait,omitempty"`
	// WaitTimeout limits the time to wait for the stack
	WaitTimeout Duration `json:"wait_timeout,omitempty"`
	// PollInterval is the interval between stack status queries
	PollInterval Duration `json:"poll_interval,omitempty"`
}

// CheckAndSetDefaults validates this configuration and sets defaults
func (r *Config) CheckAndSetDefaults() error {
	if r.WaitTimeout < 0 {
		return trace.BadParameter("wait_timeout cannot be negative")
	}
	if r.PollInterval < 0 {
		return trace.BadParameter("poll_interval cannot be negative")
	}
	if r.TemplateDir == "" {
		r.TemplateDir = defaults.TemplateDir
	}
	if r.WaitTimeout == 0 {
		r.WaitTimeout = Duration(defaults.StackWaitTimeout)
	}
	if r.PollInterval == 0 {
		r.PollInterval = Duration(defaults.StackPollInterval)
	}
	return nil
}

// Read reads the configuration from the file at the specified path.
// Empty path yields the default configuration
func Read(path string) (*Config, error) {
	var config Config
	if path != "" {
		data, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, trace.ConvertSystemError(err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, trace.BadParameter("failed to parse %v: %v", path, err)
		}
	}
	if err := config.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	return &config, nil
}

// Duration is a time.Duration that is configured in text form, e.g. 10m
type Duration time.Duration

// Value returns this duration as time.Duration
func (d Duration) Value() time.Duration {
	return time.Duration(d)
}

// MarshalText formats the duration as text
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText parses the duration from text
func (d *Duration) UnmarshalText(data []byte) error {
	duration, err := time.ParseDuration(string(data))
	if err != nil {
		return trace.BadParameter("invalid duration %q: %v", data, err)
	}
	*d = Duration(duration)
	return nil
}
