package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageNumber(t *testing.T) {
	tests := []struct {
		name string
		num  int
		ok   bool
	}{
		{"PCAP_Content_page_3.txt", 3, true},
		{"page_12.txt", 12, true},
		{"doc_page_1.txt", 1, true},
		{"metadata.txt", 0, false},
		{"page_.txt", 0, false},
	}
	for _, tt := range tests {
		n, ok := pageNumber(tt.name)
		assert.Equal(t, tt.ok, ok, "name: %s", tt.name)
		assert.Equal(t, tt.num, n, "name: %s", tt.name)
	}
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF([]byte("%PDF-1.7 ...")))
	assert.False(t, IsPDF([]byte("PK\x03\x04")))
	assert.False(t, IsPDF(nil))
}

func TestExtractTextEmpty(t *testing.T) {
	e, err := NewExtractor()
	assert.NoError(t, err)
	_, err = e.ExtractText(nil)
	assert.Error(t, err)
}
