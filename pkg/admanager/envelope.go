package admanager

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// normalizeDate reduces YYYY-MM-DD or an ISO timestamp to the date
// part. It returns an error for anything shorter or malformed.
func normalizeDate(s string) (string, error) {
	if len(s) < 10 {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateRange, s)
	}
	d := s[:10]
	if d[4] != '-' || d[7] != '-' {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateRange, s)
	}
	for i, r := range d {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: %q", ErrInvalidDateRange, s)
		}
	}
	return d, nil
}

// dateParts splits a normalized date into year, month, day integers.
func dateParts(d string) (int, int, int) {
	y, _ := strconv.Atoi(d[:4])
	m, _ := strconv.Atoi(d[5:7])
	day, _ := strconv.Atoi(d[8:10])
	return y, m, day
}

func xmlEscape(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

// wrapEnvelope wraps a body fragment in a SOAP envelope with the
// network request header.
func (c *implClient) wrapEnvelope(body string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString(`<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:ns1="`)
	b.WriteString(APIVersionNamespace)
	b.WriteString(`"><soapenv:Header><ns1:RequestHeader><ns1:networkCode>`)
	b.WriteString(xmlEscape(c.cfg.NetworkCode))
	b.WriteString(`</ns1:networkCode><ns1:applicationName>`)
	b.WriteString(ApplicationName)
	b.WriteString(`</ns1:applicationName></ns1:RequestHeader></soapenv:Header><soapenv:Body>`)
	b.WriteString(body)
	b.WriteString(`</soapenv:Body></soapenv:Envelope>`)
	return b.String()
}

// buildRunReportJob renders the runReportJob request body for the
// given date range and entity dimension.
func (c *implClient) buildRunReportJob(req ReportRequest) (string, error) {
	start, err := normalizeDate(req.StartDate)
	if err != nil {
		return "", err
	}
	end, err := normalizeDate(req.EndDate)
	if err != nil {
		return "", err
	}
	if start > end {
		return "", fmt.Errorf("%w: start %s after end %s", ErrInvalidDateRange, start, end)
	}

	dim := req.EntityDimension
	if dim == "" {
		dim = DimensionSite
	}

	var b strings.Builder
	b.WriteString(`<ns1:runReportJob><ns1:reportJob><ns1:reportQuery>`)
	b.WriteString(`<ns1:dimensions>DATE</ns1:dimensions>`)
	fmt.Fprintf(&b, `<ns1:dimensions>%s</ns1:dimensions>`, dim)
	b.WriteString(`<ns1:columns>AD_SERVER_IMPRESSIONS</ns1:columns>`)
	b.WriteString(`<ns1:columns>AD_SERVER_CPM_AND_CPC_REVENUE</ns1:columns>`)
	if c.cfg.LineItemID != "" {
		fmt.Fprintf(&b, `<ns1:statement><ns1:query>WHERE LINE_ITEM_ID = %s</ns1:query></ns1:statement>`, xmlEscape(c.cfg.LineItemID))
	}
	writeDate(&b, "startDate", start)
	writeDate(&b, "endDate", end)
	b.WriteString(`<ns1:dateRangeType>CUSTOM_DATE</ns1:dateRangeType>`)
	b.WriteString(`</ns1:reportQuery></ns1:reportJob></ns1:runReportJob>`)
	return b.String(), nil
}

func writeDate(b *strings.Builder, tag, d string) {
	y, m, day := dateParts(d)
	fmt.Fprintf(b, `<ns1:%s><ns1:year>%d</ns1:year><ns1:month>%d</ns1:month><ns1:day>%d</ns1:day></ns1:%s>`, tag, y, m, day, tag)
}

func buildGetStatus(jobID string) string {
	return fmt.Sprintf(`<ns1:getReportJobStatus><ns1:reportJobId>%s</ns1:reportJobId></ns1:getReportJobStatus>`, xmlEscape(jobID))
}

func buildGetDownloadURL(jobID string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<ns1:getReportDownloadUrlWithOptions><ns1:reportJobId>%s</ns1:reportJobId>`, xmlEscape(jobID))
	b.WriteString(`<ns1:reportDownloadOptions>`)
	b.WriteString(`<ns1:exportFormat>CSV_DUMP</ns1:exportFormat>`)
	b.WriteString(`<ns1:includeReportProperties>false</ns1:includeReportProperties>`)
	b.WriteString(`<ns1:includeTotalsRow>false</ns1:includeTotalsRow>`)
	b.WriteString(`<ns1:useGzipCompression>true</ns1:useGzipCompression>`)
	b.WriteString(`</ns1:reportDownloadOptions></ns1:getReportDownloadUrlWithOptions>`)
	return b.String()
}
