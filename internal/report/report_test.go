package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"ramcalc/internal/estimator"
	"ramcalc/internal/form"
)

func TestGB(t *testing.T) {
	cases := map[float64]string{0: "0.00", 1: "1.00", 13.0385: "13.04", 3.259629: "3.26"}
	for in, want := range cases {
		if got := GB(in); got != want {
			t.Fatalf("GB(%v)=%q want %q", in, got, want)
		}
	}
}

func TestResponse_WarningsNeverNil(t *testing.T) {
	resp := Response(estimator.Result{SystemRAMGB: 2})
	if resp.Warnings == nil || len(resp.Warnings) != 0 {
		t.Fatalf("warnings=%v", resp.Warnings)
	}
	if resp.SystemRAMGB != 2 {
		t.Fatalf("system=%v", resp.SystemRAMGB)
	}
}

func TestWriteText(t *testing.T) {
	res := estimator.Estimate(form.Parse(form.Defaults()))
	var buf bytes.Buffer
	if err := WriteText(&buf, res); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"CALCULATION RESULTS", "Model RAM:", "13.04 GB", "1.00 GB", "Total Estimated System RAM: 16.04 GB"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Warnings:") {
		t.Fatalf("no warnings expected:\n%s", out)
	}

	buf.Reset()
	if err := WriteText(&buf, estimator.Estimate(estimator.Input{})); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "Warnings:\n  - Model parameters") {
		t.Fatalf("warnings not listed:\n%s", buf.String())
	}
}

func TestWriteSweepTable(t *testing.T) {
	var buf bytes.Buffer
	points := estimator.Sweep(form.Parse(form.Defaults()))
	if err := WriteSweepTable(&buf, points); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"3.26", "6.52", "13.04", "26.08"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	resp := SweepResponse(points)
	if len(resp.Rows) != 4 || resp.Rows[3].QuantizationBits != 32 {
		t.Fatalf("unexpected sweep response: %+v", resp)
	}
}

func TestWritePage(t *testing.T) {
	values := form.Defaults().Merge(form.Values{form.KeyQuantizationBits: "8"})
	res := estimator.Estimate(form.Parse(values))
	page := NewPage(values, res)
	if page.ShowAdvanced {
		t.Fatalf("advanced section should start closed with default values")
	}
	var buf bytes.Buffer
	if err := WritePage(&buf, page); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `<option value="8" selected>8-bit</option>`) {
		t.Fatalf("selected precision not rendered")
	}
	if !strings.Contains(out, "Total Estimated System RAM: "+GB(res.SystemRAMGB)+" GB") {
		t.Fatalf("total not rendered")
	}
	if strings.Contains(out, `class="warnings"`) {
		t.Fatalf("no warnings expected")
	}

	values = values.Merge(form.Values{form.KeyHiddenSize: ""})
	res = estimator.Estimate(form.Parse(values))
	page = NewPage(values, res)
	if !page.ShowAdvanced {
		t.Fatalf("changed advanced field should open the section")
	}
	buf.Reset()
	if err := WritePage(&buf, page); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "<li>To calculate KV cache RAM") {
		t.Fatalf("warning not rendered")
	}
}

func TestCheckFinite(t *testing.T) {
	if err := CheckFinite(estimator.Estimate(form.Parse(form.Defaults()))); err != nil {
		t.Fatalf("defaults: %v", err)
	}
	res := estimator.Estimate(form.Parse(form.Defaults().Merge(form.Values{form.KeyModelParamsB: "1e300"})))
	err := CheckFinite(res)
	nf, ok := err.(*NonFiniteError)
	if !ok || nf.Field != "model_ram_gb" {
		t.Fatalf("err=%v", err)
	}
	if err := CheckFinite(estimator.Result{KVCacheRAMGB: math.NaN()}); err == nil || !strings.Contains(err.Error(), "kv_cache_ram_gb") {
		t.Fatalf("nan: %v", err)
	}
}
