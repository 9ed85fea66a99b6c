package report

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"reflect"
	"strings"
	"testing"

	"github.com/dhamidi/javamet/java/metrics"
	"github.com/dhamidi/javamet/java/syntax"
)

func sampleTree(t *testing.T) *metrics.Java {
	t.Helper()
	c := metrics.NewCollector()
	files := map[string]string{
		"Greeter.java": `package com.example;

/** Greets. */
class Greeter {
    String name = "world";

    String greet() {
        return "Hello, " + name;
    }
}
`,
		"module-info.java": `open module com.example.app {
    requires java.base;
    exports com.example;
}
`,
	}
	for _, name := range []string{"Greeter.java", "module-info.java"} {
		unit, err := syntax.Parse(context.Background(), name, []byte(files[name]))
		if err != nil {
			t.Fatalf("Failed to parse %s: %v", name, err)
		}
		c.Collect(unit)
	}
	return c.Metrics()
}

func TestFormats(t *testing.T) {
	want := []string{"text", "json", "xml", "html"}
	if got := Formats(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := New("yaml", &bytes.Buffer{})
	if err == nil {
		t.Fatal("Expected an error for an unknown format")
	}
	if got := err.Error(); got != `unknown report format "yaml"` {
		t.Errorf("Unexpected error message: %q", got)
	}
}

func TestNewDefaultsToText(t *testing.T) {
	enc, err := New("", &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, ok := enc.(*TextEncoder); !ok {
		t.Errorf("Expected a text encoder, got %T", enc)
	}
}

func TestTextReport(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextEncoder(&buf).Encode(sampleTree(t)); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"PACKAGE",
		"TOTAL",
		"com.example",
		"Comments: 0 line (0 chars), 0 block (0 lines, 0 chars), 1 doc (1 lines, 7 chars)",
		"MODULE",
		"com.example.app",
		"open",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestJSONReport(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(sampleTree(t)); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("Expected a trailing newline")
	}

	var v View
	if err := json.Unmarshal(buf.Bytes(), &v); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	checkView(t, &v)
}

func TestXMLReport(t *testing.T) {
	var buf bytes.Buffer
	if err := NewXMLEncoder(&buf).Encode(sampleTree(t)); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), xml.Header) {
		t.Error("Expected the XML header")
	}

	var v View
	if err := xml.Unmarshal(buf.Bytes(), &v); err != nil {
		t.Fatalf("Output is not valid XML: %v", err)
	}
	checkView(t, &v)
}

func checkView(t *testing.T, v *View) {
	t.Helper()
	if v.Totals.Types != 1 || v.Totals.Methods != 1 || v.Totals.Fields != 1 {
		t.Errorf("Unexpected totals: %+v", v.Totals)
	}
	if v.Totals.Statements != 2 {
		t.Errorf("Expected 2 statements, got %d", v.Totals.Statements)
	}
	if len(v.Packages) != 1 || v.Packages[0].Name != "com.example" {
		t.Fatalf("Unexpected packages: %+v", v.Packages)
	}
	if len(v.ModularUnits) != 1 {
		t.Fatalf("Expected 1 modular unit, got %d", len(v.ModularUnits))
	}
	m := v.ModularUnits[0].Module
	if m == nil || m.Name != "com.example.app" || !m.Open {
		t.Fatalf("Unexpected module: %+v", m)
	}
	if m.Requires != 1 || m.Exports != 1 {
		t.Errorf("Unexpected directive counts: %+v", m)
	}
}

func TestHTMLReport(t *testing.T) {
	var buf bytes.Buffer
	if err := NewHTMLEncoder(&buf).Encode(sampleTree(t)); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		"Java Metrics Report",
		"com.example",
		"Greeter",
		"com.example.app",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestDefaultPackageDisplayName(t *testing.T) {
	p := &PackageView{Name: ""}
	if got := p.DisplayName(); got != "(default)" {
		t.Errorf("Expected %q, got %q", "(default)", got)
	}
	p.Name = "com.example"
	if got := p.DisplayName(); got != "com.example" {
		t.Errorf("Expected %q, got %q", "com.example", got)
	}
}
