// Command benchmark drives a running rephrase API with sample chat messages
// and reports latency or rewrite quality.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
)

type rephraseRequest struct {
	Message string `json:"message"`
}

type rephraseResponse struct {
	Original  string `json:"original"`
	Tone      string `json:"tone"`
	Rephrased string `json:"rephrased"`
}

type healthResponse struct {
	Provider struct {
		Name      string `json:"name"`
		Available bool   `json:"available"`
	} `json:"provider"`
}

type result struct {
	Sample   string `json:"sample"`
	Chars    int    `json:"chars"`
	Run      int    `json:"run"`
	Tone     string `json:"tone,omitempty"`
	WallMs   int64  `json:"wall_ms"`
	OutChars int    `json:"out_chars"`
	Error    string `json:"error,omitempty"`
}

type client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

func main() {
	url := flag.String("url", "http://localhost:8000", "API base URL")
	apiKey := flag.String("api-key", "", "API key (optional)")
	runs := flag.Int("runs", 3, "Number of runs per sample")
	quality := flag.Bool("quality", false, "Quality mode: show input, tone and output for each sample (1 run, no timing table)")
	jsonOut := flag.String("json", "", "Write results to JSON file (e.g. results.json)")
	warmup := flag.Bool("warmup", false, "Run one warmup request per sample before measuring")
	flag.Parse()

	c := &client{
		http:    &http.Client{Timeout: 180 * time.Second},
		baseURL: strings.TrimRight(*url, "/"),
		apiKey:  *apiKey,
	}

	providerName := c.discoverProvider()

	if *quality {
		runQualityMode(c, providerName)
		return
	}

	fmt.Printf("Benchmarking against %s using provider: %s (%d runs per sample", c.baseURL, providerName, *runs)
	if *warmup {
		fmt.Print(", warmup enabled")
	}
	fmt.Println(")")

	var results []result
	var failures int
	for _, sample := range Samples {
		if *warmup {
			fmt.Printf("  Warming up %s...", sample.Name)
			w := c.benchmark(sample, 0)
			if w.Error != "" {
				fmt.Printf(" FAILED (%s)\n", w.Error)
			} else {
				fmt.Printf(" %dms (discarded)\n", w.WallMs)
			}
		}
		for run := 1; run <= *runs; run++ {
			fmt.Printf("  Running %s (run %d/%d)...", sample.Name, run, *runs)
			r := c.benchmark(sample, run)
			results = append(results, r)
			if r.Error != "" {
				fmt.Printf(" FAILED (%s)\n", r.Error)
				failures++
			} else {
				fmt.Printf(" %dms\n", r.WallMs)
			}
		}
	}

	fmt.Println()
	printTable(os.Stdout, results)
	printSummary(results)

	if *jsonOut != "" {
		if err := writeJSON(*jsonOut, results, c.baseURL, providerName); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
		} else {
			fmt.Printf("\nResults written to %s\n", *jsonOut)
		}
	}

	if failures > 0 {
		os.Exit(1)
	}
}

func (c *client) discoverProvider() string {
	resp, err := c.http.Get(c.baseURL + "/health")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reaching API: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	var h healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding health: %v\n", err)
		os.Exit(1)
	}
	if !h.Provider.Available {
		fmt.Fprintf(os.Stderr, "Warning: provider %s reports unavailable\n", h.Provider.Name)
	}
	return h.Provider.Name
}

// rephrase posts one message and returns the decoded response and the wall
// time of the round trip.
func (c *client) rephrase(text string) (rephraseResponse, int64, error) {
	payload, _ := json.Marshal(rephraseRequest{Message: text})

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/rephrase", strings.NewReader(string(payload)))
	if err != nil {
		return rephraseResponse{}, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	wallMs := time.Since(start).Milliseconds()
	if err != nil {
		return rephraseResponse{}, wallMs, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return rephraseResponse{}, wallMs, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var rr rephraseResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return rephraseResponse{}, wallMs, err
	}
	return rr, wallMs, nil
}

func (c *client) benchmark(sample Sample, run int) result {
	r := result{Sample: sample.Name, Chars: len(sample.Text), Run: run}

	rr, wallMs, err := c.rephrase(sample.Text)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	r.Tone = rr.Tone
	r.WallMs = wallMs
	r.OutChars = len(rr.Rephrased)
	return r
}

func printTable(w io.Writer, results []result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Sample", "Chars", "Run", "Tone", "Wall (ms)", "Out Chars", "Ratio"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, r := range results {
		if r.Error != "" {
			table.Append([]string{r.Sample, strconv.Itoa(r.Chars), strconv.Itoa(r.Run), "-", "FAIL", "-", "-"})
			continue
		}
		ratio := float64(r.OutChars) / float64(r.Chars)
		table.Append([]string{
			r.Sample,
			strconv.Itoa(r.Chars),
			strconv.Itoa(r.Run),
			r.Tone,
			strconv.FormatInt(r.WallMs, 10),
			strconv.Itoa(r.OutChars),
			fmt.Sprintf("%.2f", ratio),
		})
	}
	table.Render()
}

func runQualityMode(c *client, providerName string) {
	fmt.Printf("Quality test against %s using provider: %s\n", c.baseURL, providerName)
	fmt.Println(strings.Repeat("=", 72))

	var failures, mislabeled int
	for i, sample := range QualitySamples {
		fmt.Printf("\n--- %d/%d: %s (%d chars) ---\n", i+1, len(QualitySamples), sample.Name, len(sample.Text))
		fmt.Printf("IN:   %s\n", sample.Text)

		rr, wallMs, err := c.rephrase(sample.Text)
		if err != nil {
			fmt.Printf("ERR:  %s\n", err)
			failures++
			continue
		}

		label := rr.Tone
		if sample.ExpectTone != "" && rr.Tone != sample.ExpectTone {
			label += " (expected " + sample.ExpectTone + ")"
			mislabeled++
		}
		fmt.Printf("TONE: %s\n", label)
		fmt.Printf("OUT:  %s\n", rr.Rephrased)
		fmt.Printf("      [%dms, %d->%d chars]\n", wallMs, len(sample.Text), len(rr.Rephrased))
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 72))
	fmt.Printf("Done: %d/%d passed, %d mislabeled\n", len(QualitySamples)-failures, len(QualitySamples), mislabeled)
	if failures > 0 {
		os.Exit(1)
	}
}

func printSummary(results []result) {
	var ok []result
	for _, r := range results {
		if r.Error == "" {
			ok = append(ok, r)
		}
	}

	failed := len(results) - len(ok)

	if len(ok) == 0 {
		fmt.Printf("\nSummary: all %d runs failed\n", len(results))
		return
	}

	var totalWall int64
	minWall := ok[0].WallMs
	maxWall := ok[0].WallMs
	minSample := ok[0].Sample
	maxSample := ok[0].Sample
	tones := map[string]int{}

	for _, r := range ok {
		totalWall += r.WallMs
		tones[r.Tone]++
		if r.WallMs < minWall {
			minWall = r.WallMs
			minSample = r.Sample
		}
		if r.WallMs > maxWall {
			maxWall = r.WallMs
			maxSample = r.Sample
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("- Avg wall: %dms\n", totalWall/int64(len(ok)))
	fmt.Printf("- Min wall: %dms (%s)\n", minWall, minSample)
	fmt.Printf("- Max wall: %dms (%s)\n", maxWall, maxSample)
	fmt.Printf("- Tones: %v\n", tones)
	fmt.Printf("- Total runs: %d (%d ok, %d failed)\n", len(results), len(ok), failed)
}

type jsonReport struct {
	Timestamp string   `json:"timestamp"`
	URL       string   `json:"url"`
	Provider  string   `json:"provider"`
	Results   []result `json:"results"`
}

func writeJSON(path string, results []result, baseURL, providerName string) error {
	report := jsonReport{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       baseURL,
		Provider:  providerName,
		Results:   results,
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
