// Package validate checks generated dashboards and rules: every query must
// parse as PromQL and reference only metrics sellerlink exports.
package validate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/prometheus/promql/parser"
)

// Result collects problems found during validation. Errors make the
// artifact unusable; warnings flag queries that work but are fragile.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation found no errors.
func (r Result) Ok() bool { return len(r.Errors) == 0 }

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// histogram series suffixes resolved back to their family name.
var seriesSuffixes = []string{"_bucket", "_sum", "_count"}

// Dashboard validates every query target in a built dashboard. Raw metric
// selectors in dashboards must carry a job matcher so they survive a shared
// Prometheus.
func Dashboard(dash any, known map[string]bool) Result {
	var res Result

	data, err := json.Marshal(dash)
	if err != nil {
		res.errorf("marshaling dashboard: %v", err)
		return res
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		res.errorf("decoding dashboard: %v", err)
		return res
	}

	for _, q := range collectQueries(doc, "") {
		checkExpr(&res, q.where, q.expr, known, true)
	}
	sortResult(&res)
	return res
}

// Rules validates rule expressions keyed by rule name.
func Rules(exprs map[string]string, known map[string]bool) Result {
	var res Result
	for name, expr := range exprs {
		checkExpr(&res, "rule "+name, expr, known, false)
	}
	sortResult(&res)
	return res
}

type query struct {
	where string
	expr  string
}

// collectQueries walks decoded dashboard JSON and returns every target expr
// together with the title of the panel that owns it.
func collectQueries(node any, title string) []query {
	var out []query
	switch v := node.(type) {
	case map[string]any:
		if t, ok := v["title"].(string); ok {
			title = t
		}
		if targets, ok := v["targets"].([]any); ok {
			for _, t := range targets {
				m, ok := t.(map[string]any)
				if !ok {
					continue
				}
				expr, _ := m["expr"].(string)
				ref, _ := m["refId"].(string)
				out = append(out, query{where: fmt.Sprintf("panel %q target %s", title, ref), expr: expr})
			}
		}
		for k, child := range v {
			if k == "targets" {
				continue
			}
			out = append(out, collectQueries(child, title)...)
		}
	case []any:
		for _, child := range v {
			out = append(out, collectQueries(child, title)...)
		}
	}
	return out
}

func checkExpr(res *Result, where, expr string, known map[string]bool, requireJob bool) {
	if strings.TrimSpace(expr) == "" {
		res.errorf("%s: empty expression", where)
		return
	}

	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		res.errorf("%s: %v", where, err)
		return
	}

	parser.Inspect(parsed, func(node parser.Node, _ []parser.Node) error {
		vs, ok := node.(*parser.VectorSelector)
		if !ok {
			return nil
		}

		name := selectorName(vs)
		if name == "" {
			res.warnf("%s: selector %s has no metric name", where, vs.String())
			return nil
		}
		if !isKnown(name, known) {
			res.errorf("%s: unknown metric %q", where, name)
			return nil
		}
		if requireJob && !strings.Contains(name, ":") && !hasMatcher(vs, "job") {
			res.warnf("%s: %s has no job matcher", where, name)
		}
		return nil
	})
}

func selectorName(vs *parser.VectorSelector) string {
	if vs.Name != "" {
		return vs.Name
	}
	for _, m := range vs.LabelMatchers {
		if m.Name == "__name__" {
			return m.Value
		}
	}
	return ""
}

func hasMatcher(vs *parser.VectorSelector, label string) bool {
	for _, m := range vs.LabelMatchers {
		if m.Name == label {
			return true
		}
	}
	return false
}

func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range seriesSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

func sortResult(r *Result) {
	sort.Strings(r.Errors)
	sort.Strings(r.Warnings)
}
