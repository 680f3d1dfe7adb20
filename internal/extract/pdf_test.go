package extract

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF assembles a minimal single-page PDF containing text, tracking
// byte offsets so the cross-reference table is exact.
func buildPDF(t *testing.T, text string) []byte {
	t.Helper()

	content := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefStart)

	return buf.Bytes()
}

func TestPDFTextExtractsPageText(t *testing.T) {
	data := buildPDF(t, "Monday rice soup milk")

	text, err := PDFText(data)
	require.NoError(t, err)
	assert.Contains(t, text, "Monday")
	assert.Contains(t, text, "milk")
}

func TestPDFTextUnreadable(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "not a pdf", data: []byte("plain text file")},
		{name: "empty", data: nil},
		{name: "truncated header", data: []byte("%PDF-1.4\ngarbage")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := PDFText(tt.data)
			require.Error(t, err)
			assert.Empty(t, text)
			// The error indicator prefix the dashboard shows inline.
			assert.Contains(t, err.Error(), "PDF 읽기 오류")
		})
	}
}
