// Command checkapi verifies that the companion API is reachable with the
// same configuration the bot uses. It exits 0 when the health endpoint
// answers ok, 1 otherwise.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const healthTimeout = 5 * time.Second

type healthResponse struct {
	OK bool `json:"ok"`
}

func main() {
	_ = godotenv.Load()

	base := strings.TrimRight(os.Getenv("API_BASE_URL"), "/")
	if base == "" {
		base = "http://localhost:3000"
	}
	url := base + "/health"

	fmt.Printf("Checking API at %s ...\n", url)
	if err := probe(url); err != nil {
		fmt.Fprintf(os.Stderr, "Health check failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("OK – API is reachable.")
}

func probe(url string) error {
	ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}
	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("decode health response: %w", err)
	}
	if !health.OK {
		return fmt.Errorf("api responded but ok != true")
	}
	return nil
}
