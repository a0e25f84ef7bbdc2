package admanager

import (
	"strings"
	"testing"

	"widget-srv/pkg/log"
)

func newTestClient(cfg Config) *implClient {
	if cfg.NetworkCode == "" {
		cfg.NetworkCode = "123456"
	}
	return New(log.NewNop(), cfg).(*implClient)
}

func TestNormalizeDate(t *testing.T) {
	tcs := map[string]struct {
		in      string
		want    string
		wantErr bool
	}{
		"plain date":       {in: "2024-03-01", want: "2024-03-01"},
		"iso timestamp":    {in: "2024-03-01T10:00:00Z", want: "2024-03-01"},
		"offset timestamp": {in: "2024-12-31T23:59:59+07:00", want: "2024-12-31"},
		"too short":        {in: "2024-03", wantErr: true},
		"wrong separators": {in: "2024/03/01", wantErr: true},
		"not a date":       {in: "yesterday..", wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			got, err := normalizeDate(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("normalizeDate(%q): expected error, got %q", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizeDate(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("normalizeDate(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestBuildRunReportJob(t *testing.T) {
	t.Run("timestamps reduce to date triples", func(t *testing.T) {
		c := newTestClient(Config{})
		body, err := c.buildRunReportJob(ReportRequest{
			StartDate: "2024-03-01T10:00:00Z",
			EndDate:   "2024-03-05T00:00:00Z",
		})
		if err != nil {
			t.Fatalf("buildRunReportJob: %v", err)
		}

		wantFragments := []string{
			"<ns1:startDate><ns1:year>2024</ns1:year><ns1:month>3</ns1:month><ns1:day>1</ns1:day></ns1:startDate>",
			"<ns1:endDate><ns1:year>2024</ns1:year><ns1:month>3</ns1:month><ns1:day>5</ns1:day></ns1:endDate>",
			"<ns1:dimensions>DATE</ns1:dimensions>",
			"<ns1:dimensions>SITE_NAME</ns1:dimensions>",
			"<ns1:columns>AD_SERVER_IMPRESSIONS</ns1:columns>",
			"<ns1:columns>AD_SERVER_CPM_AND_CPC_REVENUE</ns1:columns>",
			"<ns1:dateRangeType>CUSTOM_DATE</ns1:dateRangeType>",
		}
		for _, f := range wantFragments {
			if !strings.Contains(body, f) {
				t.Errorf("body missing %q", f)
			}
		}
	})

	t.Run("start after end rejected", func(t *testing.T) {
		c := newTestClient(Config{})
		_, err := c.buildRunReportJob(ReportRequest{StartDate: "2024-03-05", EndDate: "2024-03-01"})
		if err == nil {
			t.Fatal("expected error for inverted range")
		}
	})

	t.Run("line item filter present only when configured", func(t *testing.T) {
		c := newTestClient(Config{LineItemID: "987"})
		body, err := c.buildRunReportJob(ReportRequest{StartDate: "2024-01-01", EndDate: "2024-01-02"})
		if err != nil {
			t.Fatalf("buildRunReportJob: %v", err)
		}
		if !strings.Contains(body, "WHERE LINE_ITEM_ID = 987") {
			t.Error("expected line item statement in body")
		}

		c = newTestClient(Config{})
		body, err = c.buildRunReportJob(ReportRequest{StartDate: "2024-01-01", EndDate: "2024-01-02"})
		if err != nil {
			t.Fatalf("buildRunReportJob: %v", err)
		}
		if strings.Contains(body, "LINE_ITEM_ID") {
			t.Error("unexpected line item statement in body")
		}
	})

	t.Run("ad unit dimension", func(t *testing.T) {
		c := newTestClient(Config{})
		body, err := c.buildRunReportJob(ReportRequest{
			StartDate:       "2024-01-01",
			EndDate:         "2024-01-02",
			EntityDimension: DimensionAdUnit,
		})
		if err != nil {
			t.Fatalf("buildRunReportJob: %v", err)
		}
		if !strings.Contains(body, "<ns1:dimensions>AD_UNIT_NAME</ns1:dimensions>") {
			t.Error("expected AD_UNIT_NAME dimension")
		}
	})
}

func TestWrapEnvelope(t *testing.T) {
	c := newTestClient(Config{NetworkCode: "111"})
	env := c.wrapEnvelope("<ns1:ping/>")

	for _, f := range []string{
		"<ns1:networkCode>111</ns1:networkCode>",
		"<ns1:applicationName>" + ApplicationName + "</ns1:applicationName>",
		"<ns1:ping/>",
		"soapenv:Envelope",
	} {
		if !strings.Contains(env, f) {
			t.Errorf("envelope missing %q", f)
		}
	}
}

func TestBuildGetDownloadURL(t *testing.T) {
	body := buildGetDownloadURL("42")
	for _, f := range []string{
		"<ns1:reportJobId>42</ns1:reportJobId>",
		"<ns1:exportFormat>CSV_DUMP</ns1:exportFormat>",
		"<ns1:includeReportProperties>false</ns1:includeReportProperties>",
		"<ns1:includeTotalsRow>false</ns1:includeTotalsRow>",
		"<ns1:useGzipCompression>true</ns1:useGzipCompression>",
	} {
		if !strings.Contains(body, f) {
			t.Errorf("body missing %q", f)
		}
	}
}
