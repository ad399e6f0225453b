package generator

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

const generatedSuffix = "_pulse.go"

// generateFile writes the *_pulse.go file for the behaviors of one source file.
func (g *Generator) generateFile(pkgPath, pkgName, sourceFile string, behaviors []*BehaviorInfo) error {
	baseName := strings.TrimSuffix(filepath.Base(sourceFile), ".go")
	outputFile := filepath.Join(pkgPath, baseName+generatedSuffix)

	fmt.Fprintf(g.opts.Log, "generating %s\n", outputFile)
	if g.opts.DryRun {
		return nil
	}

	code, err := g.renderTemplate(pkgName, filepath.Base(sourceFile), behaviors)
	if err != nil {
		return fmt.Errorf("render template: %w", err)
	}

	formatted, err := format.Source(code)
	if err != nil {
		if writeErr := os.WriteFile(outputFile+".unformatted", code, 0644); writeErr == nil {
			fmt.Fprintf(g.opts.Log, "  wrote unformatted code to %s.unformatted for debugging\n", outputFile)
		}
		return fmt.Errorf("format source: %w", err)
	}
	return os.WriteFile(outputFile, formatted, 0644)
}

// renderTemplate renders the generated code template.
func (g *Generator) renderTemplate(pkgName, source string, behaviors []*BehaviorInfo) ([]byte, error) {
	tmpl, err := template.New("pulse").Funcs(template.FuncMap{
		"call": handlerCall,
	}).Parse(pulseTemplate)
	if err != nil {
		return nil, err
	}

	data := struct {
		Package   string
		Source    string
		Behaviors []*BehaviorInfo
	}{
		Package:   pkgName,
		Source:    source,
		Behaviors: behaviors,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// handlerCall adapts a method to the pulse.Handler signature.
func handlerCall(h HandlerInfo) string {
	switch h.Shape {
	case ShapeEventElement:
		return fmt.Sprintf("func(ev *pulse.Event, el *html.Node) { b.%s(ev, el) }", h.Method)
	case ShapeEvent:
		return fmt.Sprintf("func(ev *pulse.Event, _ *html.Node) { b.%s(ev) }", h.Method)
	default:
		return fmt.Sprintf("func(*pulse.Event, *html.Node) { b.%s() }", h.Method)
	}
}

const pulseTemplate = `// Code generated by pulse generate. DO NOT EDIT.
// Source: {{.Source}}

package {{.Package}}

import (
	"github.com/pthm/pulse"
	"golang.org/x/net/html"
)
{{range .Behaviors}}
var _ pulse.HandlerProvider = (*{{.TypeName}})(nil)

// PulseHandlers returns the binding targets of {{.TypeName}}.
func (b *{{.TypeName}}) PulseHandlers() map[string]pulse.Handler {
	return map[string]pulse.Handler{
	{{- range .Handlers}}
		"{{.Key}}": {{call .}},
	{{- end}}
	}
}
{{end}}`
