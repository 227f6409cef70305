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

package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gravitational/labs/lib/defaults"

	"github.com/gravitational/trace"
	"github.com/stretchr/testify/require"
)

func TestReadsConfig(t *testing.T) {
	path := writeConfig(t, `
template_dir: /etc/labs
template_bucket: lab-templates
region: eu-west-1
wait: true
wait_timeout: 45m
`)
	config, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, &Config{
		TemplateDir:    "/etc/labs",
		TemplateBucket: "lab-templates",
		Region:         "eu-west-1",
		Wait:           true,
		WaitTimeout:    Duration(45 * time.Minute),
		PollInterval:   Duration(defaults.StackPollInterval),
	}, config)
}

func TestDefaultsWithoutFile(t *testing.T) {
	config, err := Read("")
	require.NoError(t, err)
	require.Equal(t, defaults.TemplateDir, config.TemplateDir)
	require.Equal(t, defaults.StackWaitTimeout, config.WaitTimeout.Value())
	require.Equal(t, defaults.StackPollInterval, config.PollInterval.Value())
	require.False(t, config.Wait)
}

func TestMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(os.TempDir(), "labs-missing-config.yaml"))
	require.True(t, trace.IsNotFound(err), "%v", err)
}

func TestInvalidDuration(t *testing.T) {
	path := writeConfig(t, "wait_timeout: soon\n")
	_, err := Read(path)
	require.Error(t, err)
}

func TestNegativeDuration(t *testing.T) {
	path := writeConfig(t, "poll_interval: -1s\n")
	_, err := Read(path)
	require.True(t, trace.IsBadParameter(err), "%v", err)
}

func writeConfig(t *testing.T, data string) string {
	dir, err := ioutil.TempDir("", "labs")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte(data), 0644))
	return path
}
