package records

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"NewsPipeline/internal/domain"
)

const maxLineBytes = 1 << 20

// EncodeJSONL renders records as newline-delimited JSON, one record per line.
func EncodeJSONL(recs []domain.ArticleRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for _, rec := range recs {
		if err := enc.Encode(rec); err != nil {
			return nil, fmt.Errorf("encode record %s: %w", rec.URL, err)
		}
	}
	return buf.Bytes(), nil
}

// DecodeJSONL parses newline-delimited records. Blank lines are ignored and
// lines that are not valid JSON are skipped and counted.
func DecodeJSONL(r io.Reader) (recs []domain.ArticleRecord, skipped int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec domain.ArticleRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			skipped++
			continue
		}
		recs = append(recs, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("scan records: %w", err)
	}
	return recs, skipped, nil
}
