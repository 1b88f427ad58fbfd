package resume

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractText_Docx(t *testing.T) {
	data := docx(t, `<w:document><w:body><w:p><w:r><w:t>Ada  Lovelace</w:t></w:r></w:p><w:p><w:r><w:t>Go</w:t><w:tab/><w:t>SQL</w:t></w:r></w:p></w:body></w:document>`)

	res := NewParser().ExtractText(context.Background(), data)

	require.False(t, res.Failed(), res.Err)
	assert.Equal(t, "Ada Lovelace\nGo SQL", res.Data.Text)
	assert.Zero(t, res.Data.PageCount)
}

func TestExtractText_DocxWithoutDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, _ = zw.Create("other.xml")
	require.NoError(t, zw.Close())

	res := NewParser().ExtractText(context.Background(), buf.Bytes())

	assert.EqualError(t, res.Err, "no document.xml found in docx")
}

func TestExtractText_DocxUnescapesEntities(t *testing.T) {
	data := docx(t, `<w:document><w:body><w:p><w:r><w:t>AT&amp;T, R&amp;D &lt;lead&gt; &quot;Go&quot;</w:t></w:r></w:p></w:body></w:document>`)

	res := NewParser().ExtractText(context.Background(), data)

	require.False(t, res.Failed(), res.Err)
	assert.Equal(t, `AT&T, R&D <lead> "Go"`, res.Data.Text)
}

func TestExtractText_PlainText(t *testing.T) {
	data := append([]byte("\xEF\xBB\xBF"), []byte("Jane Doe\n\n  Go developer\tBerlin ")...)

	res := NewParser().ExtractText(context.Background(), data)

	require.False(t, res.Failed(), res.Err)
	assert.Equal(t, "Jane Doe\nGo developer Berlin", res.Data.Text)
}

func TestExtractText_Unsupported(t *testing.T) {
	tests := map[string][]byte{
		"empty":        nil,
		"binary":       {0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00},
		"invalid utf8": {0xff, 0xfe, 'a'},
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			res := NewParser().ExtractText(context.Background(), data)
			assert.ErrorIs(t, res.Err, ErrUnsupportedFormat)
		})
	}
}

func TestExtractText_BrokenPDF(t *testing.T) {
	res := NewParser().ExtractText(context.Background(), []byte("%PDF-1.4 truncated"))
	assert.True(t, res.Failed())
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b\nc", normalizeWhitespace("  a \t b\n\n\nc  "))
}

func TestNormalizeWhitespace_TrimsAroundNewlines(t *testing.T) {
	assert.Equal(t, "Skills\nGo\nSQL", normalizeWhitespace("Skills \n\n   Go \n \nSQL"))
}
