package integration

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// post fires a JSON POST without any testing.T plumbing, safe to call from
// spawned goroutines. Returns the status code, or 0 on transport error.
func post(app *testApp, path, token, body string) int {
	req, err := http.NewRequest(http.MethodPost, app.server.URL+path, bytes.NewBufferString(body))
	if err != nil {
		return 0
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0
	}
	defer resp.Body.Close()
	_, _ = io.ReadAll(resp.Body)
	return resp.StatusCode
}

// TestConcurrentFunds fires many concurrent funding requests at one wallet.
// The transactor serializes every atomic unit, so no update may be lost: the
// final balance must be exactly the sum of all deposits and the log must hold
// one row per deposit.
func TestConcurrentFunds(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := registerAndLogin(t, app, "concurrent-fund@example.com")
	walletID := openWallet(t, app, token)

	concurrency := 50
	var wg sync.WaitGroup
	var failCount atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			body := fmt.Sprintf(`{"amount":"10","source":"card-%d"}`, idx)
			if post(app, "/api/v1/wallets/"+walletID+"/fund", token, body) != http.StatusOK {
				failCount.Add(1)
			}
		}(i)
	}
	wg.Wait()

	require.Zero(t, failCount.Load(), "all funding requests must succeed")

	code, body := app.do(t, http.MethodGet, "/api/v1/wallets/"+walletID, token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "500", data(t, body)["balance"])

	// One log row per deposit
	code, body = app.do(t, http.MethodGet, "/api/v1/wallets/"+walletID+"/transactions?limit=200", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"].([]interface{}), concurrency)
}

// TestConcurrentRedeems verifies the read-check-append cycle cannot
// over-spend points: with 100 points and twenty concurrent redemptions of 10,
// exactly ten succeed and the balance ends at zero, never negative.
func TestConcurrentRedeems(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := registerAndLogin(t, app, "concurrent-redeem@example.com")

	// Earn 100 points (ten booking activities at 10 each)
	for i := 0; i < 10; i++ {
		code, _ := app.do(t, http.MethodPost, "/api/v1/points/earn", token, map[string]string{
			"activity_type": "booking",
		})
		require.Equal(t, http.StatusCreated, code)
	}

	concurrency := 20
	var wg sync.WaitGroup
	var successCount, insufficientCount atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			switch post(app, "/api/v1/points/redeem", token, `{"points":10,"reward_type":"discount"}`) {
			case http.StatusOK:
				successCount.Add(1)
			case http.StatusPaymentRequired:
				insufficientCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(10), successCount.Load(), "exactly ten redemptions fit the balance")
	assert.Equal(t, int64(10), insufficientCount.Load(), "the rest must be rejected")

	code, body := app.do(t, http.MethodGet, "/api/v1/points/balance", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), data(t, body)["balance"])
}

// TestConcurrentTransfers shuffles money between two wallets from both
// directions at once. Ordered locking means no deadlock and no lost update:
// the combined balance is conserved.
func TestConcurrentTransfers(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := registerAndLogin(t, app, "concurrent-xfer@example.com")
	aID := openWallet(t, app, token)
	bID := openWallet(t, app, token)
	fundWallet(t, app, token, aID, "500")
	fundWallet(t, app, token, bID, "500")

	concurrency := 20
	var wg sync.WaitGroup

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			from, to := aID, bID
			if idx%2 == 0 {
				from, to = bID, aID
			}
			body := fmt.Sprintf(`{"to_wallet_id":"%s","amount":"25"}`, to)
			post(app, "/api/v1/wallets/"+from+"/transfer", token, body)
		}(i)
	}
	wg.Wait()

	code, body := app.do(t, http.MethodGet, "/api/v1/transactions/summary", token, nil)
	require.Equal(t, http.StatusOK, code)
	// Transfers net to zero across the pair, so only the funding remains.
	assert.Equal(t, "1000", data(t, body)["current_balance"])
}
