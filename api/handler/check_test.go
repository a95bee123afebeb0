package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/pricebot/cache"
	"github.com/use-agent/pricebot/models"
)

// fakeChecker returns a canned response or error without a browser.
type fakeChecker struct {
	resp  *models.CheckResponse
	err   error
	calls int
}

func (f *fakeChecker) Check(_ context.Context, req *models.CheckRequest) (*models.CheckResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := *f.resp
	out.Product = req.Product
	return &out, nil
}

func (f *fakeChecker) Stats() models.SessionStats {
	return models.SessionStats{}
}

func newTestRouter(chk Checker, cc *cache.Cache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/check", Check(chk, "hand soap", "https://www.amazon.com/", cc))
	return r
}

func postCheck(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/check", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheck_Success(t *testing.T) {
	chk := &fakeChecker{resp: &models.CheckResponse{Success: true, Price: "$4.99"}}
	r := newTestRouter(chk, nil)

	w := postCheck(t, r, `{}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var resp models.CheckResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Success {
		t.Error("Success = false, want true")
	}
	if resp.Price != "$4.99" {
		t.Errorf("Price = %q, want %q", resp.Price, "$4.99")
	}
	if resp.Product != "hand soap" {
		t.Errorf("Product = %q, want default applied", resp.Product)
	}
}

func TestCheck_SearchFailureIsNotAnHTTPError(t *testing.T) {
	// A clean unsuccessful search is a 200 with Success=false.
	chk := &fakeChecker{resp: &models.CheckResponse{Success: false}}
	r := newTestRouter(chk, nil)

	w := postCheck(t, r, `{"product":"dish sponge"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp models.CheckResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Success {
		t.Error("Success = true, want false")
	}
	if resp.Error != nil {
		t.Errorf("Error = %v, want nil for a clean failure", resp.Error)
	}
}

func TestCheck_PriceTimeoutMapsTo504(t *testing.T) {
	chk := &fakeChecker{err: models.NewCheckError(models.ErrCodePriceTimeout, "price element did not appear", context.DeadlineExceeded)}
	r := newTestRouter(chk, nil)

	w := postCheck(t, r, `{}`)
	if w.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want 504", w.Code)
	}

	var resp models.CheckResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != models.ErrCodePriceTimeout {
		t.Errorf("Error = %v, want code %s", resp.Error, models.ErrCodePriceTimeout)
	}
}

func TestCheck_InvalidTimeoutRejected(t *testing.T) {
	chk := &fakeChecker{resp: &models.CheckResponse{Success: true}}
	r := newTestRouter(chk, nil)

	w := postCheck(t, r, `{"timeout": 999}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if chk.calls != 0 {
		t.Errorf("checker was called %d times for an invalid request", chk.calls)
	}
}

func TestCheck_CacheHitSkipsChecker(t *testing.T) {
	chk := &fakeChecker{resp: &models.CheckResponse{Success: true, Price: "$4.99"}}
	cc := cache.New(8)
	r := newTestRouter(chk, cc)

	// First call populates the cache.
	w := postCheck(t, r, `{"max_age": 60000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("first call status = %d, want 200", w.Code)
	}
	if chk.calls != 1 {
		t.Fatalf("checker calls = %d, want 1", chk.calls)
	}

	// Second call is served from cache.
	w = postCheck(t, r, `{"max_age": 60000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("second call status = %d, want 200", w.Code)
	}
	if chk.calls != 1 {
		t.Errorf("checker calls = %d, want 1 (cache hit)", chk.calls)
	}

	var resp models.CheckResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.CacheStatus != "hit" {
		t.Errorf("CacheStatus = %q, want %q", resp.CacheStatus, "hit")
	}
}
