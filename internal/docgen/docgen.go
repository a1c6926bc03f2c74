// Package docgen fills a .docx letterhead template with placeholder values.
// The template file is only ever read; the finished document is written to a
// separate destination path.
package docgen

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	apperrors "letter-office-backend/internal/errors"

	"github.com/nguyenthenguyen/docx"
)

// Placeholder tokens the template contract guarantees. Exact spelling
// matters for compatibility with existing letterhead files.
const (
	TokenDate             = "[[DATE]]"
	TokenCode             = "[[CODE]]"
	TokenOrganizationName = "[[ORGANIZATION_NAME]]"
	TokenContactName      = "[[CONTACT_NAME]]"
	TokenSubject          = "[[SUBJECT]]"
	TokenBody             = "[[BODY]]"
	TokenCompanyName      = "[[COMPANY_NAME]]"
)

// SanitizeFileName strips characters outside the allow-list of letters,
// digits (any script), space, dash, underscore, dot and parentheses.
func SanitizeFileName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case strings.ContainsRune(" -_.()", r):
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// FileName builds the generated document name: "<code> - <subject>.docx".
func FileName(code, subject string) string {
	return fmt.Sprintf("%s - %s.docx", code, SanitizeFileName(subject))
}

// Materialize reads the template, substitutes every replacement token in the
// document body (including inside tables), headers and footers, and writes
// the result to destPath. The destination directory is created if missing.
// On error the destination may be left in a partial state; the template is
// never modified.
func Materialize(templatePath, destPath string, replacements map[string]string) error {
	if templatePath == "" {
		return apperrors.ErrTemplateNotConfigured
	}
	if _, err := os.Stat(templatePath); err != nil {
		return apperrors.NewTemplateMissingError(templatePath)
	}

	if dir := filepath.Dir(destPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}

	reader, err := docx.ReadDocxFile(templatePath)
	if err != nil {
		return fmt.Errorf("read template %s: %w", templatePath, err)
	}
	defer reader.Close()

	doc := reader.Editable()
	for token, value := range replacements {
		if err := doc.Replace(token, value, -1); err != nil {
			return fmt.Errorf("replace %s: %w", token, err)
		}
		if err := doc.ReplaceHeader(token, value); err != nil {
			return fmt.Errorf("replace %s in header: %w", token, err)
		}
		if err := doc.ReplaceFooter(token, value); err != nil {
			return fmt.Errorf("replace %s in footer: %w", token, err)
		}
	}

	// Second pass for placeholders split across formatting runs: match the
	// token with arbitrary run markup interleaved between its characters.
	// Formatting of the first run wins for the whole replacement.
	content := doc.GetContent()
	for token, value := range replacements {
		content = replaceSplitToken(content, token, value)
	}
	doc.SetContent(content)

	if err := doc.WriteToFile(destPath); err != nil {
		return fmt.Errorf("write document %s: %w", destPath, err)
	}

	// The library exposes raw content for the document body only, so header
	// and footer parts get their split-token pass as a rewrite of the
	// finished archive.
	if err := resolveSplitHeaderFooterTokens(destPath, replacements); err != nil {
		return fmt.Errorf("replace split tokens in headers and footers: %w", err)
	}
	return nil
}

// resolveSplitHeaderFooterTokens rewrites the header and footer parts of the
// document at path, substituting placeholder tokens that survive the library
// pass because run boundaries split them.
func resolveSplitHeaderFooterTokens(path string, replacements map[string]string) error {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return err
	}

	type part struct {
		name string
		data []byte
	}
	parts := make([]part, 0, len(reader.File))
	changed := false
	for _, f := range reader.File {
		rc, err := f.Open()
		if err != nil {
			reader.Close()
			return err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			reader.Close()
			return err
		}
		if isHeaderFooterPart(f.Name) {
			content := string(data)
			for token, value := range replacements {
				content = replaceSplitToken(content, token, value)
			}
			if content != string(data) {
				data = []byte(content)
				changed = true
			}
		}
		parts = append(parts, part{name: f.Name, data: data})
	}
	reader.Close()

	if !changed {
		return nil
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(out)
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err == nil {
			_, err = w.Write(p.data)
		}
		if err != nil {
			zw.Close()
			out.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func isHeaderFooterPart(name string) bool {
	base, ok := strings.CutPrefix(name, "word/")
	if !ok || !strings.HasSuffix(base, ".xml") {
		return false
	}
	return strings.HasPrefix(base, "header") || strings.HasPrefix(base, "footer")
}

// replaceSplitToken substitutes occurrences of token in raw OOXML content
// even when run boundaries (</w:t>...<w:t>) sit between the token's
// characters.
func replaceSplitToken(content, token, value string) string {
	pattern := splitTokenPattern(token)
	return pattern.ReplaceAllLiteralString(content, encodeText(value))
}

func splitTokenPattern(token string) *regexp.Regexp {
	parts := make([]string, 0, len(token))
	for _, r := range token {
		parts = append(parts, regexp.QuoteMeta(string(r)))
	}
	// Allow closing/opening XML tags between any two token characters.
	return regexp.MustCompile(strings.Join(parts, `(?:<[^>]*>)*`))
}

// encodeText escapes a replacement value for inline use inside a <w:t>
// element, rendering newlines as explicit breaks.
func encodeText(value string) string {
	value = strings.ReplaceAll(value, "&", "&amp;")
	value = strings.ReplaceAll(value, "<", "&lt;")
	value = strings.ReplaceAll(value, ">", "&gt;")
	value = strings.ReplaceAll(value, "\r\n", "\n")
	value = strings.ReplaceAll(value, "\n", "</w:t><w:br/><w:t>")
	return value
}
