package main

import (
	"bytes"
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/imports"
)

type (
	// target is a context type that receives generated Commander methods
	target struct {
		Name     string
		TypeArgs string
		Receiver string
		HasUndo  bool
	}

	// output is everything the template needs to render one file
	output struct {
		Package string
		Import  string
		Targets []target
	}
)

const (
	stratagemImport = "github.com/kode4food/stratagem"

	loadMode = packages.NeedName | packages.NeedSyntax |
		packages.NeedTypes | packages.NeedTypesInfo
)

var (
	// ErrNoTypes is returned when no type names were requested
	ErrNoTypes = errors.New("no types requested")

	// ErrTypeNotFound is returned when a requested type isn't declared in
	// the package
	ErrTypeNotFound = errors.New("type not found")

	// ErrUnsupportedType is returned for aliases, interfaces, and other
	// types that can't take pointer-receiver methods
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrExecuteDefined is returned when the type already has an Execute
	// method outside the generated file
	ErrExecuteDefined = errors.New("execute already defined")
)

var fileTemplate = template.Must(template.New("commander").Parse(
	`// Code generated by commandergen; DO NOT EDIT.

package {{.Package}}

import "{{.Import}}"
{{range .Targets}}
// Execute runs cmd against {{.Receiver}}
func ({{.Receiver}} *{{.Name}}{{.TypeArgs}}) Execute(cmd stratagem.Command[{{.Name}}{{.TypeArgs}}]) {
	stratagem.Apply({{.Receiver}}, cmd)
}
{{if not .HasUndo}}
// Undo does nothing. {{.Name}} keeps no history of its own
func (*{{.Name}}{{.TypeArgs}}) Undo() {}
{{end}}{{end}}`,
))

// load inspects the package in dir and resolves the requested type names.
// The contents of outPath are hidden from the type checker so that methods
// from an earlier run don't count as hand-written ones. Type errors are
// expected, since the package may already call the methods being generated
func load(dir, outPath string, names []string) (*output, error) {
	if len(names) == 0 {
		return nil, ErrNoTypes
	}

	cfg := &packages.Config{
		Mode: loadMode,
		Dir:  dir,
	}
	overlay, err := hideGenerated(outPath)
	if err != nil {
		return nil, err
	}
	cfg.Overlay = overlay

	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("loading package: %w", err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("expected one package in %s, found %d",
			dir, len(pkgs))
	}
	pkg := pkgs[0]
	for _, e := range pkg.Errors {
		if e.Kind != packages.TypeError {
			return nil, fmt.Errorf("loading package %s: %w", pkg.PkgPath, e)
		}
	}
	if pkg.Types == nil {
		return nil, fmt.Errorf("loading package %s: no type information",
			pkg.PkgPath)
	}

	res := &output{
		Package: pkg.Name,
		Import:  stratagemImport,
	}
	for _, name := range names {
		t, err := resolve(pkg.Types, name)
		if err != nil {
			return nil, err
		}
		res.Targets = append(res.Targets, t)
	}
	return res, nil
}

func resolve(pkg *types.Package, name string) (target, error) {
	obj, ok := pkg.Scope().Lookup(name).(*types.TypeName)
	if !ok {
		return target{}, fmt.Errorf("%w: %s", ErrTypeNotFound, name)
	}
	named, ok := obj.Type().(*types.Named)
	if !ok || obj.IsAlias() {
		return target{}, fmt.Errorf("%w: %s is not a defined type",
			ErrUnsupportedType, name)
	}
	switch named.Underlying().(type) {
	case *types.Interface, *types.Pointer:
		return target{}, fmt.Errorf("%w: %s cannot have methods",
			ErrUnsupportedType, name)
	}

	methods := types.NewMethodSet(types.NewPointer(named))
	if methods.Lookup(pkg, "Execute") != nil {
		return target{}, fmt.Errorf("%w: %s", ErrExecuteDefined, name)
	}
	recv := receiverName(name)
	return target{
		Name:     name,
		TypeArgs: typeArgs(named.TypeParams(), recv),
		Receiver: recv,
		HasUndo:  methods.Lookup(pkg, "Undo") != nil,
	}, nil
}

// render produces the formatted source for out
func render(filename string, out *output) ([]byte, error) {
	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, out); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", filename, err)
	}
	src, err := imports.Process(filename, buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("formatting %s: %w", filename, err)
	}
	return src, nil
}

// hideGenerated returns an overlay that reduces an existing output file to
// its package clause
func hideGenerated(path string) (map[string][]byte, error) {
	src, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	f, err := parser.ParseFile(
		token.NewFileSet(), path, src, parser.PackageClauseOnly,
	)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return map[string][]byte{
		abs: []byte("package " + f.Name.Name + "\n"),
	}, nil
}

func receiverName(typeName string) string {
	r, _ := utf8.DecodeRuneInString(typeName)
	if !unicode.IsLetter(r) {
		return "c"
	}
	return string(unicode.ToLower(r))
}

// typeArgs renders the receiver type parameters of a generic type, such as
// "[K, V]". Blank names, and names that would shadow the receiver or the
// generated identifiers, are replaced
func typeArgs(params *types.TypeParamList, recv string) string {
	if params.Len() == 0 {
		return ""
	}
	names := make([]string, params.Len())
	for i := range params.Len() {
		name := params.At(i).Obj().Name()
		switch name {
		case "_", recv, "cmd", "stratagem":
			name = fmt.Sprintf("T%d", i)
		}
		names[i] = name
	}
	return "[" + strings.Join(names, ", ") + "]"
}

func defaultOutput(names []string) string {
	return strings.ToLower(names[0]) + "_commander.go"
}
