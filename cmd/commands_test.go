package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCatalogCommand_JSON(t *testing.T) {
	out, err := execute(t, "catalog")
	require.NoError(t, err)

	var catalog struct {
		Segments []struct {
			ID string `json:"id"`
		} `json:"segments"`
		Templates  []map[string]interface{} `json:"templates"`
		Compliance []string                 `json:"compliance"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &catalog))
	require.Len(t, catalog.Segments, 4)
	assert.Equal(t, "provider", catalog.Segments[0].ID)
	assert.Len(t, catalog.Templates, 5)
	assert.Contains(t, catalog.Compliance, "HIPAA")
}

func TestCatalogCommand_YAML(t *testing.T) {
	out, err := execute(t, "catalog", "--format", "yaml")
	require.NoError(t, err)

	var catalog map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &catalog))
	assert.Contains(t, catalog, "segments")
	assert.Contains(t, catalog, "templates")
}

func TestCatalogCommand_UnknownFormat(t *testing.T) {
	_, err := execute(t, "catalog", "--format", "xml")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	t.Setenv("APP_NAME", "MediForge")
	t.Setenv("APP_VERSION", "2.3.4")

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "MediForge 2.3.4\n", out)
}
