package junit

import (
	"encoding/xml"
	"io"

	"github.com/securego/memcheck"
)

// WriteReport write a report in JUnit XML format to the output writer
func WriteReport(w io.Writer, data *memcheck.ReportInfo) error {
	junitXMLStruct := GenerateReport(data)
	raw, err := xml.MarshalIndent(junitXMLStruct, "", "\t")
	if err != nil {
		return err
	}

	xmlHeader := []byte("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	raw = append(xmlHeader, raw...)
	_, err = w.Write(raw)
	return err
}
