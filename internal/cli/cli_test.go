package cli

import "testing"

func TestParseArgs_Defaults(t *testing.T) {
	t.Parallel()
	args, err := ParseArgs(nil)
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if args.BaseURL != "" || args.Backend != "" || args.ConfigPath != "" {
		t.Errorf("unexpected defaults: %+v", args)
	}
	if args.Environment != "local" {
		t.Errorf("environment = %q, want local", args.Environment)
	}
}

func TestParseArgs_AllFlags(t *testing.T) {
	t.Parallel()
	args, err := ParseArgs([]string{
		"-base-url", "http://localhost:9990",
		"-backend", "static",
		"-config", "testdata/config.yaml",
		"-env", "ci",
	})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if args.BaseURL != "http://localhost:9990" {
		t.Errorf("base URL = %q", args.BaseURL)
	}
	if args.Backend != "static" {
		t.Errorf("backend = %q", args.Backend)
	}
	if args.ConfigPath != "testdata/config.yaml" {
		t.Errorf("config path = %q", args.ConfigPath)
	}
	if args.Environment != "ci" {
		t.Errorf("environment = %q", args.Environment)
	}
}

func TestParseArgs_RejectsUnknownBackend(t *testing.T) {
	t.Parallel()
	if _, err := ParseArgs([]string{"-backend", "firefox"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestParseArgs_RejectsUnknownFlag(t *testing.T) {
	t.Parallel()
	if _, err := ParseArgs([]string{"-nope"}); err == nil {
		t.Error("expected error for unknown flag")
	}
}
