package admanager

import (
	"context"
	"fmt"
)

// RunReport submits a report job and returns the job ID the service
// assigned.
func (c *implClient) RunReport(ctx context.Context, req ReportRequest) (string, error) {
	body, err := c.buildRunReportJob(req)
	if err != nil {
		return "", err
	}

	resp, err := c.send(ctx, OpRunReportJob, body)
	if err != nil {
		c.l.Errorf(ctx, "admanager.RunReport: submit job: %v", err)
		return "", err
	}

	jobID := extractField(resp, "id")
	if jobID == "" {
		err := &ProtocolError{
			Op:         OpRunReportJob,
			StatusCode: 200,
			Message:    "response missing job id",
			Body:       excerpt([]byte(resp)),
		}
		c.l.Errorf(ctx, "admanager.RunReport: %v", err)
		return "", err
	}

	c.l.Infof(ctx, "admanager.RunReport: submitted job %s for %s..%s", jobID, req.StartDate, req.EndDate)
	return jobID, nil
}

// AwaitCompletion polls the job status at a fixed interval until it
// reaches a terminal state or the attempt budget runs out.
func (c *implClient) AwaitCompletion(ctx context.Context, jobID string) error {
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		resp, err := c.send(ctx, OpGetJobStatus, buildGetStatus(jobID))
		if err != nil {
			c.l.Errorf(ctx, "admanager.AwaitCompletion: poll job %s: %v", jobID, err)
			return err
		}

		status := extractField(resp, "reportJobStatus")
		if status == "" {
			status = extractField(resp, "status")
		}

		switch status {
		case JobStatusCompleted:
			return nil
		case JobStatusFailed:
			c.l.Errorf(ctx, "admanager.AwaitCompletion: job %s failed", jobID)
			return fmt.Errorf("%w: job %s", ErrJobFailed, jobID)
		}

		if attempt == c.maxAttempts {
			break
		}
		if err := c.sleep(ctx, c.interval); err != nil {
			return err
		}
	}

	c.l.Errorf(ctx, "admanager.AwaitCompletion: job %s still pending after %d attempts", jobID, c.maxAttempts)
	return fmt.Errorf("%w: job %s after %d attempts", ErrPollTimeout, jobID, c.maxAttempts)
}

// Report runs the full pipeline for one request.
func (c *implClient) Report(ctx context.Context, req ReportRequest) (*Report, error) {
	jobID, err := c.RunReport(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := c.AwaitCompletion(ctx, jobID); err != nil {
		return nil, err
	}
	return c.FetchAndAggregate(ctx, jobID, AggregateOptions{
		Dimension:   req.EntityDimension,
		EntityMatch: req.EntityMatch,
	})
}
