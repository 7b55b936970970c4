package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPlanFromFile_YAML(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "plan.yaml")

	content := `
suites:
  - name: a
  - name: b
    methods: [Run]
`
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))

	plan, err := LoadPlanFromFile(p)
	require.NoError(t, err)
	require.Len(t, plan.Suites, 2)
	assert.Equal(t, "a", plan.Suites[0].Name)
	assert.Empty(t, plan.Suites[0].Methods)
	assert.Equal(t, []string{"Run"}, plan.Suites[1].Methods)
}

func TestLoadPlanFromFile_JSON(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "plan.json")

	content := `{"suites": [{"name": "a", "methods": ["Run"]}]}`
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))

	plan, err := LoadPlanFromFile(p)
	require.NoError(t, err)
	require.Len(t, plan.Suites, 1)
	assert.Equal(t, "a", plan.Suites[0].Name)
}

func TestLoadPlanFromFile_NotFound(t *testing.T) {
	_, err := LoadPlanFromFile("/nonexistent/plan.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestParsePlan_UnknownField(t *testing.T) {
	_, err := parsePlan([]byte("suites: []\nbogus: 1\n"), "inline")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inline")
}

func TestPlan_Resolve(t *testing.T) {
	r := NewRegistry()
	s := newStub("a")
	s.Methods = append(s.Methods, M("Second", passing))
	require.NoError(t, r.Register(s))

	all, err := (&Plan{Suites: []PlanEntry{{Name: "a"}}}).Resolve(r)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Len(t, all[0].Methods, 2)

	one, err := (&Plan{Suites: []PlanEntry{
		{Name: "a", Methods: []string{"Second"}},
	}}).Resolve(r)
	require.NoError(t, err)
	require.Len(t, one[0].Methods, 1)
	assert.Equal(t, "Second", one[0].Methods[0].Name)

	_, err = (&Plan{Suites: []PlanEntry{{Name: "zzz"}}}).Resolve(r)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = (&Plan{Suites: []PlanEntry{
		{Name: "a", Methods: []string{"Nope"}},
	}}).Resolve(r)
	assert.Contains(t, err.Error(), "has no method Nope")
}
