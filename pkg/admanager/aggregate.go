package admanager

import (
	"bufio"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// FetchAndAggregate resolves the finished job's download URL, streams
// the gzip CSV artifact, and folds it into per-date and per-entity
// totals.
func (c *implClient) FetchAndAggregate(ctx context.Context, jobID string, opts AggregateOptions) (*Report, error) {
	resp, err := c.send(ctx, OpGetDownloadURL, buildGetDownloadURL(jobID))
	if err != nil {
		c.l.Errorf(ctx, "admanager.FetchAndAggregate: resolve url for job %s: %v", jobID, err)
		return nil, err
	}

	url := unescapeXML(extractField(resp, "rval"))
	if url == "" {
		err := &ProtocolError{
			Op:         OpGetDownloadURL,
			StatusCode: 200,
			Message:    "response missing download url",
			Body:       excerpt([]byte(resp)),
		}
		c.l.Errorf(ctx, "admanager.FetchAndAggregate: %v", err)
		return nil, err
	}

	body, err := c.download(ctx, url)
	if err != nil {
		c.l.Errorf(ctx, "admanager.FetchAndAggregate: download job %s: %v", jobID, err)
		return nil, err
	}
	defer body.Close()

	gz, err := gzip.NewReader(body)
	if err != nil {
		return nil, &DownloadError{Message: "artifact is not gzip: " + err.Error()}
	}
	defer gz.Close()

	report, err := aggregate(gz, opts)
	if err != nil {
		c.l.Errorf(ctx, "admanager.FetchAndAggregate: read artifact for job %s: %v", jobID, err)
		return nil, err
	}
	return report, nil
}

// download fetches the artifact. The signed URL normally needs no
// auth; on 401/403 it retries once with a bearer token.
func (c *implClient) download(ctx context.Context, url string) (io.ReadCloser, error) {
	resp, err := c.downloadGet(ctx, url, "")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		resp.Body.Close()
		token, err := c.cfg.Auth.AccessToken(ctx)
		if err != nil {
			return nil, &DownloadError{Message: "token for authorized retry: " + err.Error()}
		}
		resp, err = c.downloadGet(ctx, url, token)
		if err != nil {
			return nil, err
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyExcerptLen))
		resp.Body.Close()
		return nil, &DownloadError{
			StatusCode: resp.StatusCode,
			Message:    "artifact fetch rejected",
			Body:       string(raw),
		}
	}
	return resp.Body, nil
}

func (c *implClient) downloadGet(ctx context.Context, url, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &DownloadError{Message: "build request: " + err.Error()}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.downloader.Do(req)
	if err != nil {
		return nil, &DownloadError{Message: err.Error()}
	}
	return resp, nil
}

// aggregate folds a decompressed CSV stream into a Report. Memory
// stays proportional to the number of distinct grouping keys, never
// the number of rows. The first line is the header; rows with fewer
// than three columns or unparsable numbers are skipped.
func aggregate(r io.Reader, opts AggregateOptions) (*Report, error) {
	report := &Report{
		ByDate:   map[string]*Stats{},
		BySite:   map[string]*Stats{},
		ByAdUnit: map[string]*Stats{},
	}

	br := bufio.NewReader(r)
	first := true
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimRight(line, "\r\n")
			if first {
				first = false
			} else {
				foldRow(report, line, opts)
			}
		}
		if err == io.EOF {
			return report, nil
		}
		if err != nil {
			return nil, &DownloadError{Message: "read artifact: " + err.Error()}
		}
	}
}

func foldRow(report *Report, line string, opts AggregateOptions) {
	if line == "" {
		return
	}
	cols := strings.Split(line, ",")
	if len(cols) < 3 {
		return
	}

	var entity string
	if len(cols) >= 4 {
		entity = strings.TrimSpace(cols[3])
	}
	if opts.EntityFilter != "" && entity != opts.EntityFilter {
		return
	}
	if opts.EntityMatch != nil && !opts.EntityMatch(entity) {
		return
	}

	date := strings.TrimSpace(cols[0])
	impressions, err := strconv.ParseInt(strings.TrimSpace(cols[1]), 10, 64)
	if err != nil {
		return
	}
	revenueMicros, err := strconv.ParseFloat(strings.TrimSpace(cols[2]), 64)
	if err != nil {
		return
	}
	revenue := revenueMicros / microsPerUnit

	bump(report.ByDate, date, impressions, revenue)
	if entity != "" {
		switch opts.Dimension {
		case DimensionAdUnit:
			bump(report.ByAdUnit, entity, impressions, revenue)
		default:
			bump(report.BySite, entity, impressions, revenue)
		}
	}

	report.TotalImpressions += impressions
	report.TotalRevenue += revenue
	report.RowCount++
}

func bump(m map[string]*Stats, key string, impressions int64, revenue float64) {
	s, ok := m[key]
	if !ok {
		s = &Stats{}
		m[key] = s
	}
	s.Impressions += impressions
	s.Revenue += revenue
}
