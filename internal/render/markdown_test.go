package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/sqlgallery/internal/render"
)

func TestMarkdown_HTML(t *testing.T) {
	md := render.NewMarkdown()

	out, err := md.HTML("Top statements by **total time** from `pg_stat_statements`.")
	require.NoError(t, err)
	assert.Contains(t, string(out), "<strong>total time</strong>")
	assert.Contains(t, string(out), "<code>pg_stat_statements</code>")
}

func TestMarkdown_StripsScripts(t *testing.T) {
	md := render.NewMarkdown()

	out, err := md.HTML("hello <script>alert(1)</script> [x](javascript:alert(1))")
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script")
	assert.NotContains(t, string(out), "javascript:")
	assert.Contains(t, string(out), "hello")
}

func TestMarkdown_ExternalLinksOpenInNewTab(t *testing.T) {
	md := render.NewMarkdown()

	out, err := md.HTML("[docs](https://www.postgresql.org/docs/)")
	require.NoError(t, err)
	assert.Contains(t, string(out), `target="_blank"`)
	assert.Contains(t, string(out), "noopener")
	assert.Contains(t, string(out), "noreferrer")
}
