package docgen

import (
	"archive/zip"
	"crypto/sha256"
	"io"
	"os"
	"path/filepath"
	"testing"

	apperrors "letter-office-backend/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:r><w:t>Ref: [[CODE]]</w:t></w:r></w:p>
<w:p><w:r><w:t>[[SUB</w:t></w:r><w:r><w:t>JECT]]</w:t></w:r></w:p>
<w:tbl><w:tr><w:tc><w:p><w:r><w:t>[[ORGANIZATION_NAME]]</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
<w:p><w:r><w:t>[[BODY]]</w:t></w:r></w:p>
</w:body></w:document>`

const testHeaderXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:hdr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:p><w:r><w:t>[[DATE]]</w:t></w:r></w:p></w:hdr>`

const testFooterXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:ftr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:p><w:r><w:t>[[COMPANY_NAME]]</w:t></w:r></w:p></w:ftr>`

const testRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`

// writeTemplateParts builds a .docx (a zip archive) from the given part map.
func writeTemplateParts(t *testing.T, path string, parts map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

// writeTestTemplate builds a minimal .docx with a document, the rels part
// the reader requires, one header and one footer.
func writeTestTemplate(t *testing.T, path string) {
	writeTemplateParts(t, path, map[string]string{
		"word/document.xml":            testDocumentXML,
		"word/_rels/document.xml.rels": testRelsXML,
		"word/header1.xml":             testHeaderXML,
		"word/footer1.xml":             testFooterXML,
	})
}

// readDocxPart extracts one part of a generated document by name.
func readDocxPart(t *testing.T, path, part string) string {
	t.Helper()

	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	for _, f := range r.File {
		if f.Name == part {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(data)
		}
	}
	t.Fatalf("part %s not found in %s", part, path)
	return ""
}

func hashFile(t *testing.T, path string) [32]byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return sha256.Sum256(data)
}

func fullReplacements() map[string]string {
	return map[string]string{
		TokenDate:             "۱۴۰۳/۰۵/۱۷",
		TokenCode:             "NGRR-FIN-1403-001",
		TokenOrganizationName: "Acme Holdings",
		TokenContactName:      "---",
		TokenSubject:          "Quarterly invoice",
		TokenBody:             "First line\nSecond line",
		TokenCompanyName:      "Negar Rayaneh Co.",
	}
}

func TestMaterializeReplacesAllParts(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, "letterhead.docx")
	dest := filepath.Join(dir, "out", "NGRR-FIN-1403-001 - Quarterly invoice.docx")
	writeTestTemplate(t, template)

	require.NoError(t, Materialize(template, dest, fullReplacements()))

	body := readDocxPart(t, dest, "word/document.xml")
	assert.Contains(t, body, "NGRR-FIN-1403-001")
	assert.Contains(t, body, "Acme Holdings")
	assert.Contains(t, body, "Quarterly invoice")
	assert.NotContains(t, body, "[[CODE]]")
	assert.NotContains(t, body, "[[ORGANIZATION_NAME]]")

	header := readDocxPart(t, dest, "word/header1.xml")
	assert.Contains(t, header, "۱۴۰۳/۰۵/۱۷")
	assert.NotContains(t, header, "[[DATE]]")

	footer := readDocxPart(t, dest, "word/footer1.xml")
	assert.Contains(t, footer, "Negar Rayaneh Co.")
	assert.NotContains(t, footer, "[[COMPANY_NAME]]")
}

func TestMaterializeResolvesSplitPlaceholder(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, "letterhead.docx")
	dest := filepath.Join(dir, "out.docx")
	writeTestTemplate(t, template)

	require.NoError(t, Materialize(template, dest, fullReplacements()))

	// [[SUBJECT]] is split across two runs in the template.
	body := readDocxPart(t, dest, "word/document.xml")
	assert.Contains(t, body, "Quarterly invoice")
	assert.NotContains(t, body, "[[SUB")
	assert.NotContains(t, body, "JECT]]")
}

func TestMaterializeResolvesSplitTokensInHeaderAndFooter(t *testing.T) {
	const splitHeaderXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:hdr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:p><w:r><w:t>[[DA</w:t></w:r><w:r><w:t>TE]]</w:t></w:r></w:p></w:hdr>`
	const splitFooterXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:ftr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:p><w:r><w:t>[[COMPANY</w:t></w:r><w:r><w:t>_NAME]]</w:t></w:r></w:p></w:ftr>`

	dir := t.TempDir()
	template := filepath.Join(dir, "letterhead.docx")
	dest := filepath.Join(dir, "out.docx")
	writeTemplateParts(t, template, map[string]string{
		"word/document.xml":            testDocumentXML,
		"word/_rels/document.xml.rels": testRelsXML,
		"word/header1.xml":             splitHeaderXML,
		"word/footer1.xml":             splitFooterXML,
	})

	require.NoError(t, Materialize(template, dest, fullReplacements()))

	header := readDocxPart(t, dest, "word/header1.xml")
	assert.Contains(t, header, "۱۴۰۳/۰۵/۱۷")
	assert.NotContains(t, header, "[[DA")
	assert.NotContains(t, header, "TE]]")

	footer := readDocxPart(t, dest, "word/footer1.xml")
	assert.Contains(t, footer, "Negar Rayaneh Co.")
	assert.NotContains(t, footer, "[[COMPANY")
}

func TestMaterializeRendersNewlinesAsBreaks(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, "letterhead.docx")
	dest := filepath.Join(dir, "out.docx")
	writeTestTemplate(t, template)

	require.NoError(t, Materialize(template, dest, fullReplacements()))

	body := readDocxPart(t, dest, "word/document.xml")
	assert.Contains(t, body, "First line")
	assert.Contains(t, body, "Second line")
	assert.NotContains(t, body, "First line\nSecond line")
}

func TestMaterializeNeverMutatesTemplate(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, "letterhead.docx")
	writeTestTemplate(t, template)
	before := hashFile(t, template)

	for i := 0; i < 3; i++ {
		dest := filepath.Join(dir, "out", FileName("NGRR-FIN-1403-00"+string(rune('1'+i)), "subject"))
		require.NoError(t, Materialize(template, dest, fullReplacements()))
	}

	assert.Equal(t, before, hashFile(t, template))
}

func TestMaterializePerTokenSubstitutionIsIndependent(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, "letterhead.docx")
	dest := filepath.Join(dir, "out.docx")
	writeTestTemplate(t, template)

	// Replacing only the subject must leave every other placeholder intact.
	require.NoError(t, Materialize(template, dest, map[string]string{
		TokenSubject: "lone subject",
	}))

	body := readDocxPart(t, dest, "word/document.xml")
	assert.Contains(t, body, "lone subject")
	assert.Contains(t, body, "[[BODY]]")
	assert.Contains(t, body, "[[ORGANIZATION_NAME]]")
}

func TestMaterializeMissingTemplate(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out", "letter.docx")

	err := Materialize(filepath.Join(dir, "nope.docx"), dest, fullReplacements())
	assert.Error(t, err)
	assert.True(t, apperrors.IsFileError(err))

	// Aborts before any file is written.
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Dir(dest))
	assert.True(t, os.IsNotExist(statErr))
}

func TestMaterializeEmptyTemplatePath(t *testing.T) {
	err := Materialize("", filepath.Join(t.TempDir(), "out.docx"), nil)
	assert.ErrorIs(t, err, apperrors.ErrTemplateNotConfigured)
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "Quarterly invoice (final)", SanitizeFileName("Quarterly /invoice:* (final)?"))
	assert.Equal(t, "گزارش مالی", SanitizeFileName("گزارش مالی"))
	assert.Equal(t, "a-b_c.d", SanitizeFileName(`a-b_c.d\/:*?"<>|`))
	assert.Equal(t, "", SanitizeFileName(`\/:*?"<>|`))
}

func TestFileName(t *testing.T) {
	assert.Equal(t,
		"NGRR-FIN-1403-001 - Quarterly invoice.docx",
		FileName("NGRR-FIN-1403-001", "Quarterly /invoice"))
}
