// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build !integration

package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CodecSuite struct {
	suite.Suite
}

func TestCodecSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(CodecSuite))
}

func (s *CodecSuite) TestRoundTrip() {
	doc := map[string]any{
		"server": map[string]any{"addr": ":8080"},
		"debug":  true,
	}

	for _, typ := range []Type{TypeJSON, TypeYAML, TypeTOML} {
		c, err := Get(typ)
		s.Require().NoError(err, typ)

		data, err := c.Encode(doc)
		s.Require().NoError(err, typ)

		var out map[string]any
		s.Require().NoError(c.Decode(data, &out), typ)
		s.Equal(true, out["debug"], typ)
		server, ok := out["server"].(map[string]any)
		s.Require().True(ok, "%s: server should decode as map[string]any, got %T", typ, out["server"])
		s.Equal(":8080", server["addr"], typ)
	}
}

func (s *CodecSuite) TestForPath() {
	tests := map[string]Type{
		"fram.yaml":      TypeYAML,
		"conf/fram.YML":  TypeYAML,
		"fram.json":      TypeJSON,
		"/etc/fram.toml": TypeTOML,
	}
	for path, want := range tests {
		got, err := ForPath(path)
		s.Require().NoError(err, path)
		s.Equal(want, got, path)
	}

	_, err := ForPath("fram.ini")
	s.ErrorIs(err, ErrUnknownExtension)
}

func (s *CodecSuite) TestUnknownType() {
	_, err := Get("xml")
	s.ErrorIs(err, ErrUnknownType)
	s.Contains(Types(), TypeEnvVar)
}

func TestEnvVar_Decode(t *testing.T) {
	t.Parallel()

	data := []byte("SERVER__ADDR=:9000\nSERVER__READ_TIMEOUT= 5s \nDEBUG=true\n=ignored\nnovalue\nLOG__LEVEL__=debug")

	var out map[string]any
	require.NoError(t, EnvVar{}.Decode(data, &out))
	assert.Equal(t, map[string]any{
		"server": map[string]any{"addr": ":9000", "read_timeout": "5s"},
		"debug":  "true",
		"log":    map[string]any{"level": "debug"},
	}, out)

	var wrong map[string]string
	require.Error(t, EnvVar{}.Decode(data, &wrong))

	_, err := EnvVar{}.Encode(out)
	require.ErrorIs(t, err, ErrEncodeUnsupported)
}
