package resource

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundled_ResourcesParse(t *testing.T) {
	r := Bundled()

	var groups []map[string]any
	require.NoError(t, r.ReadJSON(TaxAccountTemplate, &groups))
	assert.Len(t, groups, 2)

	var brackets struct {
		ChartOfAccounts map[string]map[string]any `json:"chart_of_accounts"`
	}
	require.NoError(t, r.ReadJSON(TaxBracketTemplate, &brackets))
	assert.Contains(t, brackets.ChartOfAccounts, "*")
}

func TestReadJSON_NotFound(t *testing.T) {
	r := New(fstest.MapFS{})

	var v any
	err := r.ReadJSON("missing.json", &v)

	assert.ErrorIs(t, err, ErrResourceNotFound)
	assert.Contains(t, err.Error(), "missing.json")
}

func TestReadJSON_Malformed(t *testing.T) {
	r := New(fstest.MapFS{"bad.json": {Data: []byte(`[{"type": `)}})

	var v any
	err := r.ReadJSON("bad.json", &v)

	assert.ErrorIs(t, err, ErrResourceParse)
}

func TestReadJSON_Decodes(t *testing.T) {
	r := New(fstest.MapFS{"ok.json": {Data: []byte(`{"title":"Standard"}`)}})

	var v struct {
		Title string `json:"title"`
	}
	require.NoError(t, r.ReadJSON("ok.json", &v))
	assert.Equal(t, "Standard", v.Title)
}

func TestDir_ReadsFromDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, TaxAccountTemplate), []byte(`[{"type":"Sales Account","accounts":[]}]`), 0644))

	var groups []map[string]any
	require.NoError(t, Dir(dir).ReadJSON(TaxAccountTemplate, &groups))
	assert.Len(t, groups, 1)

	var v any
	assert.ErrorIs(t, Dir(dir).ReadJSON(TaxBracketTemplate, &v), ErrResourceNotFound)
}
