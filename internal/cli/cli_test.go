package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const book = `<?xml version="1.0" encoding="utf-8"?>
<utwor>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:dc="http://purl.org/dc/elements/1.1/">
<rdf:Description rdf:about="http://example.org/lektura/test">
<dc:creator>Prus, Bolesław</dc:creator>
<dc:title>Kamizelka</dc:title>
<dc:publisher>Fundacja Nowoczesna Polska</dc:publisher>
<dc:subject.period>Pozytywizm</dc:subject.period>
<dc:subject.type>Epika</dc:subject.type>
<dc:subject.genre>Nowela</dc:subject.genre>
<dc:identifier.url>http://example.org/lektura/test</dc:identifier.url>
<dc:rights>Domena publiczna</dc:rights>
<dc:date>1882</dc:date>
</rdf:Description>
</rdf:RDF>
<opowiadanie><akap>Raz</akap></opowiadanie>
</utwor>`

const rendered = `<html><body><div id="book-text">` +
	`<h2>Rozdział</h2>` +
	`<p class="paragraph">A<span class="theme-begin" fid="1">Miłość</span>B<strong>C</strong><span class="theme-end" fid="1"/></p>` +
	`</div></body></html>`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetArgs(args)
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&bytes.Buffer{})
	RootCmd.SetIn(strings.NewReader(stdin))
	configPath, logLevel = "", ""
	err := RootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestEntities(t *testing.T) {
	out, err := run(t, "", "entities", "a--b", "c...")
	require.NoError(t, err)
	assert.Equal(t, "a–b c…\n", out)

	out, err = run(t, ",,cytat\"\n", "entities")
	require.NoError(t, err)
	assert.Equal(t, "„cytat”\n", out)
}

func TestInfoJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "book.xml", book)

	out, err := run(t, "", "info", "--format", "json", path)
	require.NoError(t, err)

	var entries []infoEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, path, entries[0].File)
	assert.Equal(t, "Kamizelka", entries[0].Metadata.Fields["title"].Value)
}

func TestInfoYAMLWithGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a/one.xml", book)
	writeFile(t, dir, "b/c/two.xml", book)

	out, err := run(t, "", "info", "-f", "yaml", filepath.Join(dir, "**", "*.xml"))
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &entries))
	assert.Len(t, entries, 2)
}

func TestInfoXML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "book.xml", book)

	out, err := run(t, "", "info", "--format", "xml", path)
	require.NoError(t, err)
	assert.Contains(t, out, "<dc:title>Kamizelka</dc:title>")
}

func TestInfoErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "book.xml", book)

	_, err := run(t, "", "info", "--format", "toml", path)
	assert.ErrorContains(t, err, "unknown format")

	_, err = run(t, "", "info", "--format", "json", filepath.Join(t.TempDir(), "missing.xml"))
	assert.ErrorContains(t, err, "missing.xml")
}

func TestFragments(t *testing.T) {
	path := writeFile(t, t.TempDir(), "book.html", rendered)

	out, err := run(t, "", "fragments", "--format", "markup", path)
	require.NoError(t, err)
	assert.Equal(t, "--- 1: Miłość\n<p class=\"paragraph\">B<strong>C</strong></p>\n", out)

	out, err = run(t, "", "fragments", "--format", "markdown", path)
	require.NoError(t, err)
	assert.Equal(t, "--- 1: Miłość\nB**C**\n", out)
}

func TestAnnotateToFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "book.html", rendered)
	output := filepath.Join(dir, "out.html")

	_, err := run(t, "", "annotate", "-o", output, path)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<div id="toc">`)
	assert.Contains(t, string(data), `<a href="#f1" class="anchor">1</a>`)
}

func TestAnnotateSourceBookNeedsEngine(t *testing.T) {
	path := writeFile(t, t.TempDir(), "book.xml", book)

	_, err := run(t, "", "annotate", "-o", "", path)
	assert.ErrorContains(t, err, "stylesheet engine")
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "custom.yaml", "toc_title: Contents\nindent: -1\n")
	path := writeFile(t, dir, "book.html", rendered)

	RootCmd.SetArgs([]string{"annotate", "--config", cfgPath, "-o", "", path})
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	require.NoError(t, RootCmd.Execute())
	assert.Contains(t, out.String(), "<h2>Contents</h2>")
	configPath = ""

	bad := writeFile(t, dir, "bad.yaml", "log_format: xml\n")
	RootCmd.SetArgs([]string{"entities", "--config", bad, "x"})
	err := RootCmd.Execute()
	assert.ErrorContains(t, err, "loading config")
	configPath = ""
}

func TestExpandArgsKeepsUnmatched(t *testing.T) {
	paths, err := expandArgs([]string{"no-such-file.xml"})
	require.NoError(t, err)
	assert.Equal(t, []string{"no-such-file.xml"}, paths)
}

func TestFragmentsReportsProblems(t *testing.T) {
	doc := `<html><body><div id="book-text">` +
		`<p class="paragraph"><span class="theme-begin" fid="2">Wojna</span>X<span class="theme-end" fid="7"/></p>` +
		`</div></body></html>`
	path := writeFile(t, t.TempDir(), "open.html", doc)

	var out, stderr bytes.Buffer
	RootCmd.SetArgs([]string{"fragments", "--format", "markup", path})
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&stderr)
	configPath, logLevel = "", ""
	require.NoError(t, RootCmd.Execute())

	assert.Empty(t, out.String())
	assert.Contains(t, stderr.String(), `fragment "2" (Wojna) was never closed`)
	assert.Contains(t, stderr.String(), `end marker for fragment "7" that was never opened`)
}
