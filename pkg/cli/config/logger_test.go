package config_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/approval-checker/pkg/cli/config"
	"github.com/m-mizutani/approval-checker/pkg/domain/model"
	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"
)

func flagNames(flags []cli.Flag) map[string]bool {
	names := make(map[string]bool)
	for _, flag := range flags {
		for _, name := range flag.Names() {
			names[name] = true
		}
	}
	return names
}

func TestLogger_New(t *testing.T) {
	tests := []struct {
		level   string
		emitted []string
		wantErr bool
	}{
		{level: "debug", emitted: []string{"d", "i", "w", "e"}},
		{level: "INFO", emitted: []string{"i", "w", "e"}},
		{level: "Warn", emitted: []string{"w", "e"}},
		{level: "error", emitted: []string{"e"}},
		{level: "trace", wantErr: true},
		{level: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := (&config.Logger{Level: tt.level, JSON: true}).New(&buf)
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)

			logger.Debug("d")
			logger.Info("i")
			logger.Warn("w")
			logger.Error("e")

			var got []string
			for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
				var record map[string]any
				gt.NoError(t, json.Unmarshal([]byte(line), &record))
				got = append(got, record["msg"].(string))
			}
			gt.Value(t, got).Equal(tt.emitted)
		})
	}
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := (&config.Logger{Level: "info"}).New(&buf)
	gt.NoError(t, err)

	logger.Info("delivery accepted", "repo", "acme/widgets")
	gt.String(t, buf.String()).Contains("msg=\"delivery accepted\"")
	gt.String(t, buf.String()).Contains("repo=acme/widgets")
}

func TestLogger_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger, err := (&config.Logger{Level: "info", JSON: true}).New(&buf)
	gt.NoError(t, err)

	github := config.GitHub{
		WebhookSecret: "hook-secret-value",
		Username:      "bot",
		Token:         "ghp_secret_token_value",
		Timeout:       5 * time.Second,
	}
	logger.Info("configured",
		slog.Any("github", github),
		slog.Any("credentials", model.Credentials{Username: "bot", Token: "ghp_other_token"}),
		slog.Any("sentry", config.Sentry{DSN: "https://key@sentry.example/1", Env: "prod"}),
	)

	out := buf.String()
	gt.String(t, out).Contains("bot")
	gt.String(t, out).Contains("prod")
	for _, secret := range []string{"hook-secret-value", "ghp_secret_token_value", "ghp_other_token", "key@sentry.example"} {
		gt.Value(t, strings.Contains(out, secret)).Equal(false)
	}
}

func TestFlags(t *testing.T) {
	tests := []struct {
		name  string
		flags []cli.Flag
		want  []string
	}{
		{
			name:  "logger",
			flags: (&config.Logger{}).Flags(),
			want:  []string{"log-level", "log-json"},
		},
		{
			name:  "server",
			flags: (&config.Server{}).Flags(),
			want:  []string{"addr"},
		},
		{
			name:  "github",
			flags: (&config.GitHub{}).Flags(),
			want:  []string{"webhook-secret", "github-username", "github-token", "policy-file", "github-api-url", "github-timeout"},
		},
		{
			name:  "sentry",
			flags: (&config.Sentry{}).Flags(),
			want:  []string{"sentry-dsn", "sentry-env"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names := flagNames(tt.flags)
			gt.Number(t, len(tt.flags)).Equal(len(tt.want))
			for _, want := range tt.want {
				gt.Value(t, names[want]).Equal(true)
			}
		})
	}
}

func TestGitHub_Credentials(t *testing.T) {
	cfg := config.GitHub{Username: "bot", Token: "tok"}
	gt.Value(t, cfg.Credentials()).Equal(model.Credentials{Username: "bot", Token: "tok"})
}

func TestSentry_ConfigureWithoutDSN(t *testing.T) {
	enabled, err := (&config.Sentry{}).Configure()
	gt.NoError(t, err)
	gt.Value(t, enabled).Equal(false)
}

func TestGitHub_PolicyFileDefault(t *testing.T) {
	for _, flag := range (&config.GitHub{}).Flags() {
		if sf, ok := flag.(*cli.StringFlag); ok && sf.Name == "policy-file" {
			gt.Value(t, sf.Value).Equal(model.DefaultPolicyFile)
			return
		}
	}
	t.Fatal("policy-file flag is not defined")
}
