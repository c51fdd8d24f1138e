package handlers

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"

	"github.com/xolan/daylog/internal/cli"
	"github.com/xolan/daylog/internal/config"
)

// ShowConfig displays the current configuration. Secrets are masked.
func ShowConfig(deps *cli.Deps) {
	cfg := deps.Services.Config.Get()
	path := deps.Services.Config.GetPath()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Config file: %s\n", path)
	if deps.Services.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: File exists")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Using defaults (no config file)")
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))

	tbl := uitable.New()
	tbl.Separator = " "
	tbl.AddRow("backend:", cfg.Backend)
	switch cfg.Backend {
	case config.BackendSupabase:
		tbl.AddRow("supabase.url:", orUnset(cfg.Supabase.URL))
		tbl.AddRow("supabase.anon_key:", mask(cfg.Supabase.AnonKey))
	case config.BackendPostgres:
		tbl.AddRow("postgres.dsn:", mask(cfg.Postgres.DSN))
		tbl.AddRow("postgres.user_id:", orUnset(cfg.Postgres.UserID))
	case config.BackendLocal:
		tbl.AddRow("local.path:", orUnset(cfg.Local.Path))
	}
	tbl.AddRow("log.level:", cfg.Log.Level)
	tbl.AddRow("export.dir:", orUnset(cfg.Export.Dir))
	if cfg.Export.S3.Region != "" {
		tbl.AddRow("export.s3.region:", cfg.Export.S3.Region)
	}
	tbl.AddRow("tui.theme:", orUnset(cfg.TUI.Theme))
	tbl.AddRow("presets:", orUnset(strings.Join(cfg.PresetNames(), ", ")))
	_, _ = fmt.Fprintln(deps.Stdout, tbl)
}

// InitConfig creates a sample config file
func InitConfig(deps *cli.Deps) {
	err := deps.Services.Config.Init()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	path := deps.Services.Config.GetPath()
	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", path)
	_, _ = fmt.Fprintln(deps.Stdout, "Edit this file to customize your settings.")
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func mask(secret string) string {
	switch {
	case secret == "":
		return "(not set)"
	case len(secret) <= 8:
		return "********"
	}
	return secret[:4] + "…" + secret[len(secret)-4:]
}
