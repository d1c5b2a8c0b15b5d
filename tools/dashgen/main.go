package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/sellerlink/tools/dashgen/dashboards"
	"github.com/donaldgifford/sellerlink/tools/dashgen/rules"
	"github.com/donaldgifford/sellerlink/tools/dashgen/validate"
)

const generatedHeader = "# Code generated by tools/dashgen. DO NOT EDIT.\n"

// Output paths relative to Config.OutputDir.
var (
	dashboardPath = filepath.Join("grafana", "data", "sellerlink-overview.json")
	recordingPath = filepath.Join("prometheus", "sellerlink-recording-rules.yaml")
	alertsPath    = filepath.Join("prometheus", "sellerlink-alerts.yaml")
	plainPath     = filepath.Join("prometheus", "rules", "sellerlink.rules.yaml")
)

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	plain := flag.Bool("plain-rules", false, "also write a standalone rules file for Prometheus without the operator")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly, *plain); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type artifact struct {
	path string
	data []byte
}

func run(cfg Config, validateOnly, plainRules bool) error {
	artifacts, err := generate(cfg, plainRules)
	if err != nil {
		return err
	}

	if validateOnly {
		fmt.Println("validation passed")
		return nil
	}

	for _, a := range artifacts {
		path := filepath.Join(cfg.OutputDir, a.path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", a.path, err)
		}
		if err := os.WriteFile(path, a.data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", a.path, err)
		}
		fmt.Printf("dashgen: wrote %s\n", path)
	}
	return nil
}

// generate builds and validates every enabled artifact.
func generate(cfg Config, plainRules bool) ([]artifact, error) {
	var artifacts []artifact

	if cfg.DashboardEnabled {
		dash, err := dashboards.BuildOverview().Build()
		if err != nil {
			return nil, fmt.Errorf("building dashboard: %w", err)
		}
		if err := check(validate.Dashboard(dash, KnownMetrics)); err != nil {
			return nil, fmt.Errorf("dashboard: %w", err)
		}
		data, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling dashboard: %w", err)
		}
		artifacts = append(artifacts, artifact{path: dashboardPath, data: append(data, '\n')})
	}

	if cfg.RulesEnabled {
		recording := rules.RecordingRules()
		alerts := rules.AlertRules()

		for _, cr := range []rules.PrometheusRule{recording, alerts} {
			if err := check(validate.Rules(cr.Expressions(), KnownMetrics)); err != nil {
				return nil, fmt.Errorf("%s: %w", cr.Metadata.Name, err)
			}
		}

		recordingYAML, err := marshalYAML(recording)
		if err != nil {
			return nil, err
		}
		alertsYAML, err := marshalYAML(alerts)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts,
			artifact{path: recordingPath, data: recordingYAML},
			artifact{path: alertsPath, data: alertsYAML},
		)

		if plainRules {
			file := rules.RuleFile{Groups: append(recording.File().Groups, alerts.File().Groups...)}
			plainYAML, err := marshalYAML(file)
			if err != nil {
				return nil, err
			}
			artifacts = append(artifacts, artifact{path: plainPath, data: plainYAML})
		}
	}

	return artifacts, nil
}

func marshalYAML(v any) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling rules: %w", err)
	}
	return append([]byte(generatedHeader), data...), nil
}

func check(res validate.Result) error {
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if res.Ok() {
		return nil
	}
	return fmt.Errorf("validation failed: %s", strings.Join(res.Errors, "; "))
}
