// Command seed-submissions posts generated hill submissions against a
// running instance, then prints the resulting leaderboard snapshot. Useful
// for smoke-testing a fresh deployment or filling a demo database.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Default configuration constants.
const (
	defaultCount    = 200
	defaultTimeout  = 30 * time.Second
	defaultRunLimit = 5 * time.Minute
	maxReps         = 12
)

var firstNames = []string{"Ada", "Bo", "Cleo", "Dev", "Eli", "Finn", "Gus", "Hana", "Iris", "Jo"}
var lastNames = []string{"Larsen", "Moreno", "Nassar", "Okafor", "Pike", "Quinn", "Reyes", "Stone"}

type submission struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Location    string `json:"location"`
	Repetitions string `json:"repetitions"`
	StravaLink  string `json:"strava_link,omitempty"`
}

type hill struct {
	Name string `json:"name"`
}

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		catalog = flag.String("catalog", "assets/hills.json", "Hill catalog file to draw locations from")
		count   = flag.Int("count", defaultCount, "Number of submissions to generate and post")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "Random seed for reproducible runs")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunLimit)
	defer cancel()

	hills, err := loadHillNames(*catalog)
	if err != nil {
		os.Stderr.WriteString("failed to load catalog: " + err.Error() + "\n")
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	client := &http.Client{Timeout: *timeout}

	accepted, rejected := 0, 0
	for i := 0; i < *count; i++ {
		sub := randomSubmission(rng, hills)
		ok, err := post(ctx, client, *baseURL+"/submissions", sub)
		if err != nil {
			os.Stderr.WriteString("post failed: " + err.Error() + "\n")
			os.Exit(1)
		}
		if ok {
			accepted++
		} else {
			rejected++
		}
	}
	fmt.Printf("posted %d submissions: %d accepted, %d rejected\n", *count, accepted, rejected)

	if err := printSnapshot(ctx, client, *baseURL+"/leaderboard"); err != nil {
		os.Stderr.WriteString("failed to fetch leaderboard: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func loadHillNames(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var hills []hill
	if err := json.Unmarshal(data, &hills); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(hills))
	for _, h := range hills {
		names = append(names, h.Name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("catalog %s has no hills", path)
	}
	return names, nil
}

func randomSubmission(rng *rand.Rand, hills []string) submission {
	first := firstNames[rng.Intn(len(firstNames))]
	last := lastNames[rng.Intn(len(lastNames))]
	sub := submission{
		Name:        first + " " + last,
		Email:       fmt.Sprintf("%s.%s@example.com", first, last),
		Location:    hills[rng.Intn(len(hills))],
		Repetitions: strconv.Itoa(1 + rng.Intn(maxReps)),
	}
	if rng.Intn(2) == 0 {
		sub.StravaLink = fmt.Sprintf("https://www.strava.com/activities/%d", rng.Int63n(1_000_000_000))
	}
	return sub
}

func post(ctx context.Context, client *http.Client, url string, sub submission) (bool, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return false, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusCreated:
		return true, nil
	case http.StatusBadRequest:
		return false, nil
	default:
		return false, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}

func printSnapshot(ctx context.Context, client *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var snap map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return err
	}
	pretty, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(pretty))
	return nil
}
