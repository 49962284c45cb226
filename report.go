package tablerecon

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// reportHeader is the fixed column order of the mapping report.
var reportHeader = []string{
	"SourceOrder", "SourceId", "TargetOrder", "TargetId",
	"similarity", "pos_diff", "status",
}

// WriteReport writes the classified rows as CSV: a header row followed
// by one row per aligned pair. Gapped sides produce empty fields.
// Fields are quoted only when they contain a comma, quote, or newline.
func WriteReport(w io.Writer, rows []MappingRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(reportHeader); err != nil {
		return errors.Wrap(err, "failed to write report header")
	}

	for _, row := range rows {
		record := []string{
			orderField(row.SourceOrder),
			row.SourceID,
			orderField(row.TargetOrder),
			row.TargetID,
			"",
			"",
			string(row.Status),
		}
		if !row.IsGap() {
			record[4] = fmt.Sprintf("%.3f", row.Similarity)
			record[5] = strconv.Itoa(row.PositionDelta)
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "failed to write report row")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush report")
}

// orderField formats a 1-based order number, empty for a gapped side.
func orderField(order int) string {
	if order == 0 {
		return ""
	}
	return strconv.Itoa(order)
}

// MarshalMapping serializes an ID map as JSON. An empty map serializes
// as {} rather than null.
func MarshalMapping(mapping map[string]string) ([]byte, error) {
	if mapping == nil {
		mapping = map[string]string{}
	}
	data, err := sonic.Marshal(mapping)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal mapping")
	}
	return data, nil
}
