package domain

import "time"

// ExportRecord is the persisted result of one export run, read back by later compile steps.
type ExportRecord struct {
	// Table is the state table in wire form.
	Table string `json:"table"`
	// Toolchain is the toolchain fingerprint string.
	Toolchain string `json:"toolchain,omitzero"`
	// OutDir is the build output directory the record was written to.
	OutDir string `json:"out_dir,omitzero"`
	// Roots lists the root module directories the table covers.
	Roots []string `json:"roots,omitzero"`
	// Timestamp records when the export ran.
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// StateTable decodes the record's table.
func (r *ExportRecord) StateTable() (StateTable, error) {
	return ParseStateTable(r.Table)
}
