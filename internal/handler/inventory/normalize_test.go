package inventory

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"neonorm/internal/model"
	"neonorm/internal/service/classify"
	"neonorm/internal/service/normalize"
)

func newTestRouter(maxBatchSize int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	pipeline := normalize.NewPipeline(
		classify.NewFallbackOwnerParser(nil),
		classify.NewFallbackDeviceClassifier(nil),
	)
	runner := normalize.NewBatchRunner(pipeline, 2)
	handler := NewNormalizeHandler(pipeline, runner, maxBatchSize)

	router := gin.New()
	router.POST("/api/v1/inventory/normalize", handler.NormalizeBatch)
	router.POST("/api/v1/inventory/normalize/record", handler.NormalizeRecord)
	return router
}

func TestNormalizeBatch(t *testing.T) {
	router := newTestRouter(0)

	body := `{
		"records": [
			{"source_row_id": "r1", "fields": {"ip": " 10.1.2.3 ", "hostname": "web-01", "device_type": "server"}},
			{"source_row_id": "r2", "fields": {"ip": "300.1.1.1"}}
		]
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/normalize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp model.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, float64(2), data["total"])
	assert.Equal(t, float64(1), data["anomalies"])

	records, ok := data["records"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, records, 2)

	// 顺序与输入一致
	first := records[0].(map[string]interface{})
	assert.Equal(t, "r1", first["source_row_id"])
	assert.Equal(t, "10.1.2.3", first["ip"])
	assert.Equal(t, true, first["ip_valid"])
	assert.Equal(t, "server", first["device_type"])
	assert.Equal(t, "high", first["device_type_confidence"])

	second := records[1].(map[string]interface{})
	assert.Equal(t, "r2", second["source_row_id"])
	assert.Equal(t, false, second["ip_valid"])
}

func TestNormalizeBatchInvalidBody(t *testing.T) {
	router := newTestRouter(0)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/normalize", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp model.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "failed", resp.Status)
}

func TestNormalizeBatchEmptyRecords(t *testing.T) {
	router := newTestRouter(0)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/normalize", strings.NewReader(`{"records": []}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNormalizeBatchSizeLimit(t *testing.T) {
	router := newTestRouter(1)

	body := `{
		"records": [
			{"source_row_id": "r1", "fields": {}},
			{"source_row_id": "r2", "fields": {}}
		]
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/normalize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "exceeds limit")
}

func TestNormalizeRecord(t *testing.T) {
	router := newTestRouter(0)

	body := `{
		"source_row_id": "r7",
		"fields": {
			"ip": "aa:bb:cc",
			"hostname": "rtr-edge",
			"owner": "priya (platform) priya@corp.example.com",
			"site": "bldg-1_campus"
		}
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/normalize/record", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp model.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)

	data := resp.Data.(map[string]interface{})
	record := data["record"].(map[string]interface{})
	assert.Equal(t, "r7", record["source_row_id"])
	assert.Equal(t, false, record["ip_valid"])
	assert.Equal(t, "priya", record["owner"])
	assert.Equal(t, "priya@corp.example.com", record["owner_email"])
	assert.Equal(t, "platform", record["owner_team"])
	assert.Equal(t, "Building 1 Campus", record["site_normalized"])

	// 无效IP必定产生异常
	anomaly := data["anomaly"].(map[string]interface{})
	assert.Equal(t, "r7", anomaly["source_row_id"])
}
