package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kaspanet/ledgercore/domain/chainconfig"
)

func TestResolveNetwork(t *testing.T) {
	tests := []struct {
		name         string
		flags        NetworkFlags
		expectedName string
		expectError  bool
	}{
		{name: "default", flags: NetworkFlags{}, expectedName: "mainnet"},
		{name: "testnet", flags: NetworkFlags{Testnet: true}, expectedName: "testnet"},
		{name: "simnet", flags: NetworkFlags{Simnet: true}, expectedName: "simnet"},
		{name: "devnet", flags: NetworkFlags{Devnet: true}, expectedName: "devnet"},
		{name: "two networks", flags: NetworkFlags{Testnet: true, Devnet: true}, expectError: true},
	}

	for _, test := range tests {
		networkFlags := test.flags
		err := networkFlags.ResolveNetwork(nil)
		if test.expectError {
			if err == nil {
				t.Errorf("TestResolveNetwork: %s: expected an error", test.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("TestResolveNetwork: %s: unexpected error: %+v", test.name, err)
			continue
		}
		if networkFlags.NetParams().Name != test.expectedName {
			t.Errorf("TestResolveNetwork: %s: expected %s, got %s",
				test.name, test.expectedName, networkFlags.NetParams().Name)
		}
	}
}

func writeOverrideFile(t *testing.T, content string) (path string, teardown func()) {
	dir, err := ioutil.TempDir("", "TestOverrideParams")
	if err != nil {
		t.Fatalf("TempDir: %s", err)
	}
	path = filepath.Join(dir, "override.json")
	err = ioutil.WriteFile(path, []byte(content), 0600)
	if err != nil {
		t.Fatalf("WriteFile: %s", err)
	}
	return path, func() { os.RemoveAll(dir) }
}

func TestOverrideParams(t *testing.T) {
	path, teardown := writeOverrideFile(t, `{"initialReward": 7, "halvingInterval": 3, "powMax": "ffff"}`)
	defer teardown()

	networkFlags := NetworkFlags{Devnet: true, OverrideParamsFile: path}
	err := networkFlags.ResolveNetwork(nil)
	if err != nil {
		t.Fatalf("TestOverrideParams: unexpected error: %+v", err)
	}
	params := networkFlags.NetParams()
	if params.InitialReward != 7 || params.HalvingInterval != 3 || params.PowMax.Int64() != 0xffff {
		t.Fatalf("TestOverrideParams: overrides were not applied: %+v", params)
	}

	// The network's own params must stay untouched
	if chainconfig.DevnetParams.InitialReward == 7 {
		t.Fatalf("TestOverrideParams: overrides leaked into DevnetParams")
	}

	networkFlags = NetworkFlags{Testnet: true, OverrideParamsFile: path}
	err = networkFlags.ResolveNetwork(nil)
	if err == nil {
		t.Fatalf("TestOverrideParams: overriding testnet params unexpectedly succeeded")
	}
}

func TestOverrideParamsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "initialReward=7"},
		{name: "unknown field", content: `{"k": 18}`},
		{name: "bad powMax", content: `{"powMax": "xyz"}`},
		{name: "powMax too wide", content: `{"powMax": "1` + strings.Repeat("0", 64) + `"}`},
	}

	for _, test := range tests {
		path, teardown := writeOverrideFile(t, test.content)
		networkFlags := NetworkFlags{Devnet: true, OverrideParamsFile: path}
		err := networkFlags.ResolveNetwork(nil)
		teardown()
		if err == nil {
			t.Errorf("TestOverrideParamsMalformed: %s: expected an error", test.name)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	appDir, err := ioutil.TempDir("", "TestLoadConfig")
	if err != nil {
		t.Fatalf("TestLoadConfig: TempDir: %s", err)
	}
	defer os.RemoveAll(appDir)

	cfg, err := LoadConfig([]string{"--simnet", "--appdir", appDir, "--loglevel", "CNSS=debug"})
	if err != nil {
		t.Fatalf("TestLoadConfig: unexpected error: %+v", err)
	}
	if cfg.NetParams().Name != "simnet" {
		t.Fatalf("TestLoadConfig: expected simnet, got %s", cfg.NetParams().Name)
	}
	if cfg.DataDir != filepath.Join(appDir, "simnet", defaultDataDirname) {
		t.Fatalf("TestLoadConfig: unexpected data dir %s", cfg.DataDir)
	}
	if cfg.LogFile != filepath.Join(appDir, "simnet", defaultLogDirname, defaultLogFilename) {
		t.Fatalf("TestLoadConfig: unexpected log file %s", cfg.LogFile)
	}
	if cfg.LogLevel != "CNSS=debug" {
		t.Fatalf("TestLoadConfig: unexpected log level %s", cfg.LogLevel)
	}

	cfg, err = LoadConfig([]string{"--appdir", appDir, "--nofilelogging"})
	if err != nil {
		t.Fatalf("TestLoadConfig: unexpected error: %+v", err)
	}
	if cfg.LogFile != "" || cfg.ErrLogFile != "" {
		t.Fatalf("TestLoadConfig: file logging was not disabled")
	}

	_, err = LoadConfig([]string{"--no-such-flag"})
	if err == nil {
		t.Fatalf("TestLoadConfig: an unknown flag was accepted")
	}
	_, err = LoadConfig([]string{"extra"})
	if err == nil {
		t.Fatalf("TestLoadConfig: a positional argument was accepted")
	}
}
