package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"staffdesk/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intakeRequest(t *testing.T, withFile bool) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("first_name", "Maria"))
	if withFile {
		fw, err := w.CreateFormFile("license_document", "license.pdf")
		require.NoError(t, err)
		_, err = fw.Write([]byte("%PDF-1.4"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/applications", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestFormFileMissingUploadIsNotAnError(t *testing.T) {
	req := intakeRequest(t, false)
	require.NoError(t, req.ParseMultipartForm(maxIntakeFormSize))

	file, header, err := formFile(req, "license_document")
	assert.NoError(t, err)
	assert.Nil(t, file)
	assert.Nil(t, header)
}

func TestFormFileReturnsUpload(t *testing.T) {
	req := intakeRequest(t, true)
	require.NoError(t, req.ParseMultipartForm(maxIntakeFormSize))

	file, header, err := formFile(req, "license_document")
	require.NoError(t, err)
	require.NotNil(t, file)
	defer file.Close()

	assert.Equal(t, "license.pdf", header.Filename)
}

func TestFormFileRejectsMalformedPayload(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/applications", strings.NewReader("not a form"))
	req.Header.Set("Content-Type", "text/plain")

	_, _, err := formFile(req, "license_document")

	var verr *types.ValidationError
	assert.ErrorAs(t, err, &verr)
}
