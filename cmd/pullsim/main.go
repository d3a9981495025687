// Command pullsim generates synthetic telemetry events, submits them to
// a running atompull instance and optionally drives pulls, printing a
// summary of what came back.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/okian/atompull/internal/domain/model"
)

// Default configuration constants.
const (
	defaultNumEvents = 1000
	defaultTimeout   = 30 * time.Second
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numEvents = flag.Int("events", defaultNumEvents, "Number of events to generate and submit")
		pull      = flag.Bool("pull", true, "Pull all kinds after submitting")
		seed      = flag.Int64("seed", time.Now().UnixNano(), "Random seed for event generation")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	ctx := context.Background()
	client := &http.Client{Timeout: *timeout}
	rng := rand.New(rand.NewSource(*seed))

	accepted, duplicates, failed := 0, 0, 0
	for i := 0; i < *numEvents; i++ {
		status, err := postEvent(ctx, client, *baseURL, generateEvent(rng))
		switch {
		case err != nil:
			failed++
		case status == http.StatusOK:
			duplicates++
		case status == http.StatusAccepted:
			accepted++
		default:
			failed++
		}
	}
	fmt.Printf("submitted %d events: %d accepted, %d duplicate, %d failed\n",
		*numEvents, accepted, duplicates, failed)

	if !*pull {
		return
	}
	for _, kind := range []string{
		"sim_slot_state",
		"supported_radio_access_family",
		"carrier_id_table_version",
		"voice_call_rat_usage",
		"voice_call_session",
		"incoming_sms",
		"outgoing_sms",
		"data_call_session",
	} {
		status, count, err := pullKind(ctx, client, *baseURL, kind)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pull %s failed: %v\n", kind, err)
			continue
		}
		fmt.Printf("pull %-30s -> %s (%d records)\n", kind, status, count)
	}
}

// generateEvent produces one random raw event across the buffered kinds.
func generateEvent(rng *rand.Rand) model.RawEvent {
	e := model.RawEvent{EventID: uuid.NewString()}
	switch rng.Intn(5) {
	case 0:
		e.VoiceCallRatUsage = &model.VoiceCallRatUsage{
			CarrierID:           int32(rng.Intn(4) + 1),
			Rat:                 int32(rng.Intn(3)),
			TotalDurationMillis: int64(rng.Intn(30*60)) * 1000,
			CallCount:           int64(rng.Intn(10) + 1),
		}
	case 1:
		e.VoiceCallSession = &model.VoiceCallSession{
			Direction:           int32(rng.Intn(2)),
			SetupDurationMillis: int32(rng.Intn(10000)),
			SetupFailed:         rng.Intn(10) == 0,
			RatAtStart:          int32(rng.Intn(3)),
			RatAtEnd:            int32(rng.Intn(3)),
			CarrierID:           int32(rng.Intn(4) + 1),
			SimSlotIndex:        int32(rng.Intn(2)),
		}
	case 2:
		e.IncomingSms = &model.IncomingSms{
			SmsFormat:     int32(rng.Intn(2)),
			Rat:           int32(rng.Intn(3)),
			TotalParts:    1,
			ReceivedParts: 1,
			CarrierID:     int32(rng.Intn(4) + 1),
			MessageID:     rng.Int63(),
		}
	case 3:
		e.OutgoingSms = &model.OutgoingSms{
			SmsFormat:  int32(rng.Intn(2)),
			Rat:        int32(rng.Intn(3)),
			SendResult: int32(rng.Intn(3)),
			CarrierID:  int32(rng.Intn(4) + 1),
			MessageID:  rng.Int63(),
		}
	default:
		e.DataCallSession = &model.DataCallSession{
			Dimension:       rng.Int31(),
			Profile:         int32(rng.Intn(3)),
			CarrierID:       int32(rng.Intn(4) + 1),
			RatAtEnd:        int32(rng.Intn(3)),
			DurationMinutes: int64(rng.Intn(120)),
		}
	}
	return e
}

// postEvent submits one event and returns the HTTP status.
func postEvent(ctx context.Context, client *http.Client, baseURL string, e model.RawEvent) (int, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/events", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

// pullKind drives one pull and returns the reported status and record count.
func pullKind(ctx context.Context, client *http.Client, baseURL, kind string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/pull/"+kind, nil)
	if err != nil {
		return "", 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var out struct {
		Status  string            `json:"status"`
		Records []json.RawMessage `json:"records"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", 0, err
	}
	return out.Status, len(out.Records), nil
}
