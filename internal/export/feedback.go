// Package export renders already-fetched feedback records into the two
// download formats the admin screen offers: a spreadsheet-friendly CSV
// and a Word-compatible HTML document.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/Alka-null/nbcc2026gamesweb/internal/model"
)

// csvHeaders matches the column set of the admin feedback table.
var csvHeaders = []string{
	"Feedback ID", "Full Name", "Cluster/Sales Area", "Digital Sales Tool",
	"What do you value most?", "What improvement?",
	"Digital/RTC support impact?", "Unique Code", "Submitted At",
}

// FeedbackCSV renders the records as UTF-8 CSV. A byte-order mark is
// prepended so Excel detects the encoding.
func FeedbackCSV(records []model.Feedback) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, fb := range records {
		row := []string{
			strconv.FormatInt(fb.ID, 10),
			fb.FullName,
			fb.ClusterSalesArea,
			fb.DigitalSalesTool,
			fb.WhatWorks,
			fb.WhatCanBeBetter,
			fb.WhatIsConfusing,
			fb.UniqueCode,
			fb.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFilename builds the dated download name, e.g. feedback_2026-08-29.csv.
func ExportFilename(ext string, now time.Time) string {
	return "feedback_" + now.Format("2006-01-02") + "." + ext
}

// docTemplate is the Office-namespaced HTML that Word opens as a .doc:
// a heading plus one table per feedback record.
var docTemplate = template.Must(template.New("feedback_doc").Parse(`<html xmlns:o='urn:schemas-microsoft-com:office:office' xmlns:w='urn:schemas-microsoft-com:office:word'><head><meta charset='utf-8'><title>Feedback Report</title></head><body>
<h1 style="text-align:center;color:#16a34a;">Feedback Report</h1>
<p style="text-align:center;color:#666;">Generated on {{.Generated}}</p><hr/>
{{range $i, $r := .Records}}<div style="margin-bottom:20px;page-break-inside:avoid;">
<h3 style="color:#16a34a;">Response #{{$r.Number}}{{if $r.FullName}} — {{$r.FullName}}{{end}}</h3>
<table border="1" cellpadding="6" cellspacing="0" style="border-collapse:collapse;width:100%;font-size:14px;">
{{range $r.Fields}}<tr><td style="font-weight:bold;background:#f3f4f6;width:35%;">{{.Label}}</td><td>{{.Value}}</td></tr>
{{end}}</table></div>
{{end}}</body></html>`))

type docField struct {
	Label string
	Value string
}

type docRecord struct {
	Number   int
	FullName string
	Fields   []docField
}

type docData struct {
	Generated string
	Records   []docRecord
}

// FeedbackDoc renders the records as a Word-compatible HTML document.
func FeedbackDoc(records []model.Feedback, now time.Time) ([]byte, error) {
	data := docData{Generated: now.Format("1/2/2006")}
	for i, fb := range records {
		data.Records = append(data.Records, docRecord{
			Number:   i + 1,
			FullName: fb.FullName,
			Fields: []docField{
				{"Full Name", fb.FullName},
				{"Cluster/Sales Area", fb.ClusterSalesArea},
				{"Digital Sales Tool", fb.DigitalSalesTool},
				{"What do you value most?", fb.WhatWorks},
				{"What improvement?", fb.WhatCanBeBetter},
				{"Digital/RTC support impact?", fb.WhatIsConfusing},
				{"Unique Code", fb.UniqueCode},
				{"Submitted At", fb.CreatedAt.Format(time.RFC3339)},
			},
		})
	}

	var buf bytes.Buffer
	if err := docTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render feedback doc: %w", err)
	}
	return buf.Bytes(), nil
}
