// Package testutil provides reusable testing helpers for enforcing architectural
// and API boundary invariants across the repository.
package testutil

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// Module is the import path prefix of this repository.
const Module = "microplate"

// AssertNoTransitiveDependency loads pattern (e.g. microplate/pkg/domain) with its
// full dependency graph and fails the test if any dependency path satisfies the
// forbidden predicate. The reason string is appended to the failure for clarity.
func AssertNoTransitiveDependency(t testing.TB, pattern string, forbidden func(path string) bool, reason string) {
	t.Helper()
	pkgs, err := loadPackages(packages.NeedName|packages.NeedImports|packages.NeedDeps, pattern)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	failIfTransitiveViolations(t, reason, transitiveDependencyViolations(pkgs, forbidden))
}

// AssertNoDirectImports scans all non-test .go files in dir (typically "." from within the package)
// and fails if any import path satisfies the forbidden predicate. It does not follow build tags.
func AssertNoDirectImports(t testing.TB, dir string, forbidden func(importPath string) bool, reason string) {
	t.Helper()
	viols, err := directImportViolations(dir, forbidden)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	failIfDirectViolations(t, reason, viols)
}

// AssertLayering loads every package of the module and fails if a package imports a
// module package that is not listed for it in allowed. Keys and values are paths
// relative to the module root (e.g. "pkg/domain"). Packages missing from allowed
// may not import any module package.
func AssertLayering(t testing.TB, allowed map[string][]string) {
	t.Helper()
	pkgs, err := loadPackages(packages.NeedName|packages.NeedImports, Module+"/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	failIfDirectViolations(t, "layering", layerViolations(pkgs, allowed))
}

// InternalImportForbidden returns a predicate matching any import path containing /internal/.
func InternalImportForbidden(path string) bool {
	return strings.Contains(path, "/internal/")
}

// MetricsImportForbidden matches the Prometheus client, which only the
// observability package may use.
func MetricsImportForbidden(path string) bool {
	return path == "github.com/prometheus/client_golang" ||
		strings.HasPrefix(path, "github.com/prometheus/client_golang/")
}

// CollaboratorImportForbidden matches the packages that sit above the container
// core: the operation engine and the statistics, export and catalog collaborators.
func CollaboratorImportForbidden(path string) bool {
	for _, p := range []string{"operation", "stats", "export", "platetype", "observability"} {
		if path == Module+"/pkg/"+p {
			return true
		}
	}
	return false
}

// AnyOf combines predicates.
func AnyOf(preds ...func(string) bool) func(string) bool {
	return func(path string) bool {
		for _, p := range preds {
			if p(path) {
				return true
			}
		}
		return false
	}
}

var loadPackages = func(mode packages.LoadMode, patterns ...string) ([]*packages.Package, error) {
	return packages.Load(&packages.Config{Mode: mode}, patterns...)
}

func transitiveDependencyViolations(roots []*packages.Package, forbidden func(path string) bool) []string {
	seen := make(map[string]struct{})
	packages.Visit(roots, nil, func(p *packages.Package) {
		if forbidden(p.PkgPath) {
			seen[p.PkgPath] = struct{}{}
		}
	})
	return sortedKeys(seen)
}

func layerViolations(pkgs []*packages.Package, allowed map[string][]string) []string {
	seen := make(map[string]struct{})
	for _, pkg := range pkgs {
		rel := strings.TrimPrefix(strings.TrimPrefix(pkg.PkgPath, Module), "/")
		ok := make(map[string]bool, len(allowed[rel]))
		for _, a := range allowed[rel] {
			ok[a] = true
		}
		for importPath := range pkg.Imports {
			if !strings.HasPrefix(importPath, Module+"/") {
				continue
			}
			dep := strings.TrimPrefix(importPath, Module+"/")
			if !ok[dep] {
				seen[rel+" -> "+dep] = struct{}{}
			}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func directImportViolations(dir string, forbidden func(importPath string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	fset := token.NewFileSet()
	var viols []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		path := filepath.Join(dir, name)
		fileAst, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return nil, err
		}
		for _, imp := range fileAst.Imports {
			ip := strings.Trim(imp.Path.Value, "\"")
			if forbidden(ip) {
				viols = append(viols, ip+" (in "+name+")")
			}
		}
	}
	return viols, nil
}

type fatalLogger interface {
	Fatalf(format string, args ...any)
}

func failIfTransitiveViolations(t fatalLogger, reason string, viols []string) {
	if len(viols) > 0 {
		t.Fatalf("forbidden transitive dependency detected (%s):\n%s", reason, strings.Join(viols, "\n"))
	}
}

func failIfDirectViolations(t fatalLogger, reason string, viols []string) {
	if len(viols) > 0 {
		t.Fatalf("forbidden direct imports detected (%s):\n%s", reason, strings.Join(viols, "\n"))
	}
}
