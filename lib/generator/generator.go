package generator

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pthm/pulse"
)

// Options configures the generator.
type Options struct {
	DryRun bool

	// Log receives progress lines. Defaults to os.Stdout.
	Log io.Writer
}

// Generator generates handler tables for pulse behaviors.
type Generator struct {
	opts Options
	fset *token.FileSet
}

// New creates a new generator.
func New(opts Options) *Generator {
	if opts.Log == nil {
		opts.Log = os.Stdout
	}
	return &Generator{
		opts: opts,
		fset: token.NewFileSet(),
	}
}

// Generate generates code for the given package patterns.
func (g *Generator) Generate(patterns ...string) error {
	packages, err := g.findPackages(patterns)
	if err != nil {
		return err
	}

	for _, pkg := range packages {
		if err := g.generatePackage(pkg); err != nil {
			return fmt.Errorf("package %s: %w", pkg, err)
		}
	}
	return nil
}

// Clean removes generated files for the given package patterns.
func (g *Generator) Clean(patterns ...string) error {
	packages, err := g.findPackages(patterns)
	if err != nil {
		return err
	}

	for _, pkg := range packages {
		if err := g.cleanPackage(pkg); err != nil {
			return fmt.Errorf("package %s: %w", pkg, err)
		}
	}
	return nil
}

// findPackages resolves package patterns to directory paths.
func (g *Generator) findPackages(patterns []string) ([]string, error) {
	var packages []string

	for _, pattern := range patterns {
		if !strings.HasSuffix(pattern, "/...") {
			packages = append(packages, pattern)
			continue
		}

		root := strings.TrimSuffix(pattern, "/...")
		if root == "" {
			root = "."
		}
		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			base := filepath.Base(path)
			if path != root && (strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") ||
				base == "vendor" || base == "testdata") {
				return filepath.SkipDir
			}
			if hasGoFiles(path) {
				packages = append(packages, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return packages, nil
}

func hasGoFiles(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go") {
			return true
		}
	}
	return false
}

// generatePackage generates code for a single package.
func (g *Generator) generatePackage(pkgPath string) error {
	pkgs, err := parser.ParseDir(g.fset, pkgPath, func(info os.FileInfo) bool {
		name := info.Name()
		return !strings.HasSuffix(name, "_test.go") && !strings.HasSuffix(name, generatedSuffix)
	}, parser.ParseComments)
	if err != nil {
		return err
	}

	for pkgName, pkg := range pkgs {
		behaviors, err := g.findBehaviors(pkg)
		if err != nil {
			return err
		}

		bySource := map[string][]*BehaviorInfo{}
		for _, b := range behaviors {
			if len(b.Handlers) == 0 {
				continue
			}
			bySource[b.SourceFile] = append(bySource[b.SourceFile], b)
		}
		sources := make([]string, 0, len(bySource))
		for src := range bySource {
			sources = append(sources, src)
		}
		sort.Strings(sources)

		for _, src := range sources {
			if err := g.generateFile(pkgPath, pkgName, src, bySource[src]); err != nil {
				return err
			}
		}
	}
	return nil
}

// cleanPackage removes generated files from a package.
func (g *Generator) cleanPackage(pkgPath string) error {
	entries, err := os.ReadDir(pkgPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), generatedSuffix) {
			continue
		}
		path := filepath.Join(pkgPath, entry.Name())
		fmt.Fprintf(g.opts.Log, "removing %s\n", path)
		if !g.opts.DryRun {
			if err := os.Remove(path); err != nil {
				return err
			}
		}
	}
	return nil
}

// Shape is the parameter list of a handler method.
type Shape int

const (
	ShapeNone         Shape = iota // func()
	ShapeEvent                     // func(*pulse.Event)
	ShapeEventElement              // func(*pulse.Event, *html.Node)
)

// BehaviorInfo describes a struct holding a *pulse.Component field.
type BehaviorInfo struct {
	SourceFile string
	TypeName   string
	Fields     []string
	Handlers   []HandlerInfo
}

// HandlerInfo is one entry of a generated handler table.
type HandlerInfo struct {
	Key    string // binding attribute value, e.g. "increment"
	Method string // method name, e.g. "Increment"
	Shape  Shape
}

// findBehaviors finds behavior types and their handler methods, and
// rejects members that shadow a base capability.
func (g *Generator) findBehaviors(pkg *ast.Package) ([]*BehaviorInfo, error) {
	byName := map[string]*BehaviorInfo{}

	files := make([]string, 0, len(pkg.Files))
	for filename := range pkg.Files {
		files = append(files, filename)
	}
	sort.Strings(files)

	for _, filename := range files {
		for _, decl := range pkg.Files[filename].Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}
			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				structType, ok := typeSpec.Type.(*ast.StructType)
				if !ok || !holdsComponent(structType) {
					continue
				}
				if embedsComponent(structType) {
					return nil, fmt.Errorf("%s: %s embeds *pulse.Component; hold it in a named field", g.position(typeSpec), typeSpec.Name.Name)
				}
				byName[typeSpec.Name.Name] = &BehaviorInfo{
					SourceFile: filename,
					TypeName:   typeSpec.Name.Name,
					Fields:     fieldNames(structType),
				}
			}
		}
	}

	for _, filename := range files {
		for _, decl := range pkg.Files[filename].Decls {
			funcDecl, ok := decl.(*ast.FuncDecl)
			if !ok || funcDecl.Recv == nil || len(funcDecl.Recv.List) != 1 {
				continue
			}
			b, ok := byName[receiverName(funcDecl.Recv.List[0].Type)]
			if !ok {
				continue
			}
			name := funcDecl.Name.Name
			if !funcDecl.Name.IsExported() || name == "PulseHandlers" {
				continue
			}
			if isReserved(name) {
				return nil, fmt.Errorf("%s: method %s.%s shadows a reserved capability", g.position(funcDecl), b.TypeName, name)
			}
			shape, ok := detectShape(funcDecl.Type)
			if !ok {
				continue
			}
			b.Handlers = append(b.Handlers, HandlerInfo{Key: lowerFirst(name), Method: name, Shape: shape})
		}
	}

	behaviors := make([]*BehaviorInfo, 0, len(byName))
	for _, b := range byName {
		for _, f := range b.Fields {
			if isReserved(f) {
				return nil, fmt.Errorf("%s: field %s.%s shadows a reserved capability", b.SourceFile, b.TypeName, f)
			}
		}
		sort.Slice(b.Handlers, func(i, j int) bool { return b.Handlers[i].Key < b.Handlers[j].Key })
		behaviors = append(behaviors, b)
	}
	sort.Slice(behaviors, func(i, j int) bool { return behaviors[i].TypeName < behaviors[j].TypeName })
	return behaviors, nil
}

func (g *Generator) position(n ast.Node) string {
	return g.fset.Position(n.Pos()).String()
}

// holdsComponent reports whether a struct has a *pulse.Component field.
func holdsComponent(st *ast.StructType) bool {
	for _, field := range st.Fields.List {
		if isPtrTo(field.Type, "pulse", "Component") {
			return true
		}
	}
	return false
}

func embedsComponent(st *ast.StructType) bool {
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 && isPtrTo(field.Type, "pulse", "Component") {
			return true
		}
	}
	return false
}

func fieldNames(st *ast.StructType) []string {
	var names []string
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			// embedded: the field is named after its type
			names = append(names, typeName(field.Type))
			continue
		}
		for _, n := range field.Names {
			names = append(names, n.Name)
		}
	}
	return names
}

func typeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return typeName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.IndexExpr:
		return typeName(t.X)
	default:
		return ""
	}
}

func receiverName(expr ast.Expr) string {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name
	}
	return ""
}

// detectShape matches the handler signatures pulse can bind.
func detectShape(ft *ast.FuncType) (Shape, bool) {
	if ft.Results != nil && len(ft.Results.List) > 0 {
		return 0, false
	}

	var params []ast.Expr
	if ft.Params != nil {
		for _, field := range ft.Params.List {
			n := len(field.Names)
			if n == 0 {
				n = 1
			}
			for i := 0; i < n; i++ {
				params = append(params, field.Type)
			}
		}
	}

	switch {
	case len(params) == 0:
		return ShapeNone, true
	case len(params) == 1 && isPtrTo(params[0], "pulse", "Event"):
		return ShapeEvent, true
	case len(params) == 2 && isPtrTo(params[0], "pulse", "Event") && isPtrTo(params[1], "html", "Node"):
		return ShapeEventElement, true
	default:
		return 0, false
	}
}

func isPtrTo(expr ast.Expr, pkg, name string) bool {
	star, ok := expr.(*ast.StarExpr)
	if !ok {
		return false
	}
	sel, ok := star.X.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	ident, ok := sel.X.(*ast.Ident)
	return ok && ident.Name == pkg && sel.Sel.Name == name
}

func isReserved(name string) bool {
	lower := strings.ToLower(name)
	for _, r := range pulse.Reserved() {
		if lower == r {
			return true
		}
	}
	return false
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
