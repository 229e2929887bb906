package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"
)

const testForbiddenImport = "some/forbidden/package"

type recordingFatal struct{ msg string }

func (r *recordingFatal) Fatalf(format string, args ...any) { r.msg = fmt.Sprintf(format, args...) }

func TestPredicates(t *testing.T) {
	cases := []struct {
		pred func(string) bool
		in   string
		want bool
	}{
		{InternalImportForbidden, "example.com/mod/internal/x", true},
		{InternalImportForbidden, "example.com/mod/pkg/x", false},
		{MetricsImportForbidden, "github.com/prometheus/client_golang/prometheus", true},
		{MetricsImportForbidden, "github.com/prometheus/client_golang", true},
		{MetricsImportForbidden, "github.com/prometheus/client_model/go", false},
		{CollaboratorImportForbidden, "microplate/pkg/operation", true},
		{CollaboratorImportForbidden, "microplate/pkg/stats", true},
		{CollaboratorImportForbidden, "microplate/pkg/domain", false},
		{CollaboratorImportForbidden, "microplate/pkg/operationx", false},
		{AnyOf(InternalImportForbidden, MetricsImportForbidden), "a/internal/b", true},
		{AnyOf(), "anything", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.pred(tc.in), tc.in)
	}
}

func writeFile(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o600))
}

func TestDirectImportViolations(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package tmp\nimport \"fmt\"\nfunc X() { fmt.Println(1) }\n")
	writeFile(t, dir, "main_test.go", "package tmp\nimport \""+testForbiddenImport+"\"\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o750))
	writeFile(t, filepath.Join(dir, "sub"), "sub.go", "package sub\nimport \""+testForbiddenImport+"\"\n")

	forbidden := func(p string) bool { return p == testForbiddenImport }
	AssertNoDirectImports(t, dir, forbidden, "test files and subdirectories are ignored")

	writeFile(t, dir, "bad.go", "package tmp\nimport \""+testForbiddenImport+"\"\n")
	viols, err := directImportViolations(dir, forbidden)
	require.NoError(t, err)
	assert.Equal(t, []string{testForbiddenImport + " (in bad.go)"}, viols)

	writeFile(t, dir, "broken.go", "package tmp\nimport (\n")
	_, err = directImportViolations(dir, forbidden)
	assert.Error(t, err)

	_, err = directImportViolations(filepath.Join(dir, "missing"), forbidden)
	assert.Error(t, err)
}

func TestLayerViolations(t *testing.T) {
	orderedset := &packages.Package{PkgPath: "microplate/pkg/orderedset", Imports: map[string]*packages.Package{}}
	domain := &packages.Package{PkgPath: "microplate/pkg/domain", Imports: map[string]*packages.Package{
		"microplate/pkg/orderedset": orderedset,
		"fmt":                       {PkgPath: "fmt"},
	}}
	bad := &packages.Package{PkgPath: "microplate/pkg/orderedset", Imports: map[string]*packages.Package{
		"microplate/pkg/domain": domain,
	}}
	allowed := map[string][]string{"pkg/domain": {"pkg/orderedset"}}

	assert.Empty(t, layerViolations([]*packages.Package{orderedset, domain}, allowed))
	assert.Equal(t, []string{"pkg/orderedset -> pkg/domain"}, layerViolations([]*packages.Package{bad}, allowed))
}

func TestTransitiveDependencyViolations(t *testing.T) {
	leaf := &packages.Package{PkgPath: "github.com/prometheus/client_golang/prometheus"}
	mid := &packages.Package{PkgPath: "microplate/pkg/observability", Imports: map[string]*packages.Package{leaf.PkgPath: leaf}}
	root := &packages.Package{PkgPath: "microplate/pkg/operation", Imports: map[string]*packages.Package{mid.PkgPath: mid}}

	assert.Equal(t, []string{leaf.PkgPath}, transitiveDependencyViolations([]*packages.Package{root}, MetricsImportForbidden))
	assert.Empty(t, transitiveDependencyViolations([]*packages.Package{root}, InternalImportForbidden))
}

func TestFailHelpers(t *testing.T) {
	r := &recordingFatal{}
	failIfDirectViolations(r, "reason", nil)
	failIfTransitiveViolations(r, "reason", nil)
	assert.Empty(t, r.msg)

	failIfDirectViolations(r, "layering", []string{"a -> b"})
	assert.Contains(t, r.msg, "forbidden direct imports detected (layering)")
	failIfTransitiveViolations(r, "metrics", []string{"x"})
	assert.Contains(t, r.msg, "forbidden transitive dependency detected (metrics)")
}
