package models

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
)

// FlexFloat is a float64 that tolerates the number formats LLMs actually
// emit: plain numbers, quoted numbers, decimal commas, null. Unparsable
// input decodes as zero rather than failing the whole report.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	s := string(data)
	if s[0] == '"' {
		s = strings.Trim(s, `"`)
		s = strings.TrimSpace(s)
		s = strings.ReplaceAll(s, ",", ".")
	}
	if s == "" {
		*f = 0
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		*f = 0
		return nil
	}
	v, _ := d.Float64()
	*f = FlexFloat(v)
	return nil
}

func (f FlexFloat) Float64() float64 { return float64(f) }
