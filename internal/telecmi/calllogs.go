package telecmi

import (
	"context"
	"sort"
	"sync"
	"time"
)

const (
	callLogWindow = 7 * 24 * time.Hour
	callLogPage   = 1
	callLogLimit  = 100
)

// CDR type flags: answered vs missed
const (
	typeAnswered = 1
	typeMissed   = 0
)

// CallLog is one call detail record as returned by Telecmi, decorated with
// a recordingFile field. Upstream fields pass through untouched.
type CallLog map[string]any

type cdrRequest struct {
	From  int64  `json:"from"`
	To    int64  `json:"to"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Type  int    `json:"type"`
	Token string `json:"token"`
}

type cdrResponse struct {
	CDR []map[string]any `json:"cdr"`
}

// FetchAllCallLogs fetches the trailing 7-day window of call logs across
// all four CDR variants (incoming/outgoing x answered/missed) in parallel,
// merged and sorted most recent first. Any one failed fetch fails the
// whole operation.
func (c *Client) FetchAllCallLogs(ctx context.Context, now time.Time) ([]CallLog, error) {
	token, err := c.ValidToken(ctx)
	if err != nil {
		return nil, err
	}

	to := now.UnixMilli()
	base := cdrRequest{
		From:  now.Add(-callLogWindow).UnixMilli(),
		To:    to,
		Page:  callLogPage,
		Limit: callLogLimit,
	}

	fetches := []struct {
		endpoint string
		cdrType  int
	}{
		{"in_cdr", typeAnswered},
		{"in_cdr", typeMissed},
		{"out_cdr", typeAnswered},
		{"out_cdr", typeMissed},
	}

	results := make([]*cdrResponse, len(fetches))
	errs := make([]error, len(fetches))

	var wg sync.WaitGroup
	for i, f := range fetches {
		wg.Add(1)
		go func(i int, endpoint string, cdrType int) {
			defer wg.Done()
			req := base
			req.Type = cdrType
			results[i], errs[i] = c.fetchCDR(ctx, endpoint, req, token)
		}(i, f.endpoint, f.cdrType)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var all []CallLog
	for _, res := range results {
		for _, rec := range res.CDR {
			all = append(all, CallLog(rec))
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return callTime(all[i]) > callTime(all[j])
	})

	for _, call := range all {
		if f, ok := call["filename"]; ok && f != nil && f != "" {
			call["recordingFile"] = f
		} else {
			call["recordingFile"] = nil
		}
	}

	return all, nil
}

func callTime(call CallLog) float64 {
	if v, ok := call["time"].(float64); ok {
		return v
	}
	return 0
}
