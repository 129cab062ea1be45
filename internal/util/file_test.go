package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMimeType(t *testing.T) {
	pdf := []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n")
	r := bytes.NewReader(pdf)

	mime, err := ValidateMimeType(r, AllowedSubmissionMimeTypes)
	require.NoError(t, err)
	assert.Equal(t, MimePDF, mime)

	// 校验后游标复位，后续上传读到完整内容
	assert.Equal(t, int64(len(pdf)), r.Size())
	pos, _ := r.Seek(0, 1)
	assert.Equal(t, int64(0), pos)
}

func TestValidateMimeTypeRejects(t *testing.T) {
	html := bytes.NewReader([]byte("<html><body>hi</body></html>"))

	_, err := ValidateMimeType(html, []string{MimePDF})
	require.Error(t, err)

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "file", ve.Field)
}

func TestSafeExt(t *testing.T) {
	assert.Equal(t, ".pdf", SafeExt("Report.PDF"))
	assert.Equal(t, "", SafeExt("noext"))
	assert.Equal(t, "", SafeExt("a.verylongextension"))
}
