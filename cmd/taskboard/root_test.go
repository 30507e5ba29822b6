package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kingrea/taskboard/internal/config"
	"github.com/kingrea/taskboard/internal/task"
	"github.com/kingrea/taskboard/internal/view"
)

func TestBuildBoardAppliesFlagOverrides(t *testing.T) {
	cfg, err := config.NewConfig(t.TempDir())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	b, err := buildBoard(cfg, &rootOptions{search: "bug", filter: "high", order: "desc", locale: "sv"})
	if err != nil {
		t.Fatalf("buildBoard: %v", err)
	}
	params := b.Params()
	if params.Search != "bug" || params.Filter != view.FilterHigh || params.Order != view.Descending {
		t.Fatalf("params = %+v", params)
	}
	b.Create("Fix bug", task.PriorityHigh)
	b.Create("Fix bug later", task.PriorityLow)
	if got := b.Visible(); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("visible = %+v", got)
	}
}

func TestBuildBoardRejectsBadFlags(t *testing.T) {
	cfg, err := config.NewConfig(t.TempDir())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cases := []rootOptions{
		{filter: "urgent"},
		{order: "sideways"},
		{locale: "not a locale!"},
	}
	for _, opts := range cases {
		opts := opts
		if _, err := buildBoard(cfg, &opts); err == nil {
			t.Fatalf("expected error for %+v", opts)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "taskboard "+version) {
		t.Fatalf("output = %q", out.String())
	}
}

func TestValidateConfigCommand(t *testing.T) {
	projectDir := t.TempDir()
	if err := config.InitDir(projectDir); err != nil {
		t.Fatalf("init: %v", err)
	}
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"validate-config", "--dir", projectDir})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(out.String(), "OK: ") {
		t.Fatalf("output = %q", out.String())
	}

	bad := filepath.Join(projectDir, config.TaskboardDir, "config.yaml")
	if err := os.WriteFile(bad, []byte("version: 1\ndefaults:\n  order: sideways\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cmd = newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"validate-config", "--dir", projectDir})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected invalid config to fail")
	}
}

func TestResolveProjectDirRejectsFiles(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveProjectDir(file); err == nil {
		t.Fatalf("expected error for non-directory")
	}
}
