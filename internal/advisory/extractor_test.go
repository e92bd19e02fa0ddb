package advisory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsHTML(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        bool
	}{
		{"html content type", "text/html; charset=utf-8", "", true},
		{"plain content type", "text/plain", "<html></html>", false},
		{"sniff doctype", "", "<!DOCTYPE html><html></html>", true},
		{"sniff html tag", "", "  <html lang=\"en\">", true},
		{"sniff plain text", "", "CVE-2024-0001", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHTML(tt.contentType, tt.body))
		})
	}
}

func TestExtractText_PrefersMain(t *testing.T) {
	html := `<html><head><title>Advisory GHSA-xxxx</title><style>p{color:red}</style></head>
<body>
<header>Site header</header>
<main>
  <h1>Remote code execution in libfoo</h1>
  <p>Versions    before 2.3.1 are affected.<br>Upgrade immediately.</p>
  <ul><li>CVSS 9.8</li><li>CWE-502</li></ul>
</main>
<footer>Copyright</footer>
</body></html>`

	text, err := ExtractText(html)
	require.NoError(t, err)

	assert.Contains(t, text, "Title: Advisory GHSA-xxxx")
	assert.Contains(t, text, "Remote code execution in libfoo")
	assert.Contains(t, text, "Versions before 2.3.1 are affected.\nUpgrade immediately.")
	assert.Contains(t, text, "- CVSS 9.8")
	assert.Contains(t, text, "- CWE-502")
	assert.NotContains(t, text, "Site header")
	assert.NotContains(t, text, "Copyright")
	assert.NotContains(t, text, "color:red")
	assert.NotContains(t, text, "\n\n\n")
}

func TestExtractText_FallsBackToBody(t *testing.T) {
	text, err := ExtractText(`<body><div>SQL injection in /login</div></body>`)
	require.NoError(t, err)
	assert.Equal(t, "SQL injection in /login", text)
}
