package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/flashfund/server/internal/middleware"
)

// ledgerctl performs owner operations against a running API server. It
// mints a short-lived owner token from the shared JWT secret, so it needs
// the same JWT_SECRET the server was started with.
func main() {
	var (
		opFlag       string
		apiFlag      string
		accountFlag  string
		bpsFlag      int64
		newOwnerFlag string
	)

	flag.StringVar(&opFlag, "op", "", "operation: pause | unpause | set-fee | withdraw-fees | transfer-owner")
	flag.StringVar(&apiFlag, "api", "http://localhost:8080", "base URL of the API server")
	flag.StringVar(&accountFlag, "account", "", "owner account to act as (defaults to LEDGER_OWNER)")
	flag.Int64Var(&bpsFlag, "bps", -1, "fee in basis points for set-fee")
	flag.StringVar(&newOwnerFlag, "new-owner", "", "account for transfer-owner")
	flag.Parse()

	_ = godotenv.Load()

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		exitWithError(errors.New("JWT_SECRET is required"))
	}
	account := strings.TrimSpace(accountFlag)
	if account == "" {
		account = strings.TrimSpace(os.Getenv("LEDGER_OWNER"))
	}
	if account == "" {
		exitWithError(errors.New("either -account or LEDGER_OWNER must be provided"))
	}

	var (
		method string
		path   string
		body   any
	)
	switch strings.TrimSpace(opFlag) {
	case "pause":
		method, path = http.MethodPost, "/v1/pause"
	case "unpause":
		method, path = http.MethodPost, "/v1/unpause"
	case "withdraw-fees":
		method, path = http.MethodPost, "/v1/fees/withdraw"
	case "set-fee":
		if bpsFlag < 0 {
			exitWithError(errors.New("-bps is required for set-fee"))
		}
		method, path = http.MethodPut, "/v1/fees/percent"
		body = map[string]int64{"bps": bpsFlag}
	case "transfer-owner":
		if strings.TrimSpace(newOwnerFlag) == "" {
			exitWithError(errors.New("-new-owner is required for transfer-owner"))
		}
		method, path = http.MethodPost, "/v1/owner/transfer"
		body = map[string]string{"new_owner": strings.TrimSpace(newOwnerFlag)}
	case "":
		exitWithError(errors.New("-op is required"))
	default:
		exitWithError(fmt.Errorf("unsupported operation %q", opFlag))
	}

	token, err := middleware.SignToken(secret, account, 5*time.Minute)
	if err != nil {
		exitWithError(fmt.Errorf("sign token: %w", err))
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			exitWithError(err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, strings.TrimRight(apiFlag, "/")+path, payload)
	if err != nil {
		exitWithError(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		exitWithError(err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		exitWithError(err)
	}
	fmt.Printf("%s %s\n", resp.Status, strings.TrimSpace(string(out)))
	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
