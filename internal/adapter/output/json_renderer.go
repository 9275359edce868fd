// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"encoding/json"

	"github.com/rafaelvolkmer/codemetrics/internal/domain/model"
	"github.com/rafaelvolkmer/codemetrics/internal/domain/ports"
)

// JSONRenderer writes the report in the layout of metrics.json. HTML
// escaping is off so generic signatures and && stay readable.
type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

var _ ports.OutputRenderer = (*JSONRenderer)(nil)

func (r *JSONRenderer) Format() string {
	return "json"
}

func (r *JSONRenderer) Render(report *model.ProjectReport) (string, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(report); err != nil {
		return "", err
	}
	return buf.String(), nil
}
