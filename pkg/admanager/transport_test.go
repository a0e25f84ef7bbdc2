package admanager

import "testing"

func TestExtractField(t *testing.T) {
	tcs := map[string]struct {
		body string
		name string
		want string
	}{
		"no prefix": {
			body: `<rval>12345</rval>`,
			name: "rval",
			want: "12345",
		},
		"namespaced": {
			body: `<soap:Body><ns1:id>777</ns1:id></soap:Body>`,
			name: "id",
			want: "777",
		},
		"attributes on element": {
			body: `<ns1:status xsi:type="string">COMPLETED</ns1:status>`,
			name: "status",
			want: "COMPLETED",
		},
		"first match wins": {
			body: `<a:id>1</a:id><b:id>2</b:id>`,
			name: "id",
			want: "1",
		},
		"multiline content": {
			body: "<rval>\n  https://example.com/report\n</rval>",
			name: "rval",
			want: "https://example.com/report",
		},
		"missing": {
			body: `<rval>x</rval>`,
			name: "id",
			want: "",
		},
		"prefix is not a suffix match": {
			body: `<reportJobStatus>IN_PROGRESS</reportJobStatus>`,
			name: "status",
			want: "",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			if got := extractField(tc.body, tc.name); got != tc.want {
				t.Errorf("extractField(%q) = %q, want %q", tc.name, got, tc.want)
			}
		})
	}
}

func TestUnescapeXML(t *testing.T) {
	in := "https://example.com/dl?id=1&amp;fmt=csv&amp;q=&quot;a&quot;&lt;&gt;&#39;"
	want := `https://example.com/dl?id=1&fmt=csv&q="a"<>'`
	if got := unescapeXML(in); got != want {
		t.Errorf("unescapeXML = %q, want %q", got, want)
	}
}
