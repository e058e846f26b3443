package serverhttp_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/catalog"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/config"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/importer/model"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/importer/service"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/store/memory"
	serverhttp "github.com/wendrick1998/outlet-vault-tracker-sub001/server/http"
)

func newTestServer(t *testing.T, st *memory.Store) *httptest.Server {
	t.Helper()
	cfg := config.Config{
		AllowOrigins:          []string{"*"},
		MaxUploadMB:           4,
		PreviewRows:           20,
		DefaultWarrantyMonths: 3,
	}
	orch := service.NewOrchestrator(st, cfg.PreviewRows, zerolog.Nop())
	srv := httptest.NewServer(serverhttp.NewRouter(cfg, zerolog.Nop(), catalog.Default(), orch))
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, memory.New())

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestPreviewEndpointCSVUpload(t *testing.T) {
	srv := newTestServer(t, memory.New())

	csvBody := "Título,IMEI 1,Serial,% Bateria\n" +
		"iPhone 13 Pro 128GB Grafite Seminovo,359984989957537,F2LLD0ABC123,95\n" +
		"iPhone 12 64GB Azul,not-an-imei,,\n"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "estoque.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(csvBody))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/import/preview", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res model.PreviewResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))

	require.Len(t, res.Items, 2)
	assert.NotEmpty(t, res.BatchID)
	assert.Equal(t, 2, res.Summary.Total)
	assert.Equal(t, 1, res.Summary.Ready)
	assert.Equal(t, 1, res.Summary.ReviewRequired)

	first := res.Items[0]
	assert.Equal(t, "359984989957537", first.IMEI)
	assert.Equal(t, "Apple", first.Brand)
	assert.Equal(t, "iPhone 13 Pro", first.Model)
	assert.Equal(t, 95, first.BatteryPct)
	assert.Equal(t, model.StatusReady, first.Status)
}

func TestPreviewEndpointRejectsUnknownExtension(t *testing.T) {
	srv := newTestServer(t, memory.New())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "estoque.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("whatever"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/import/preview", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCommitEndpoint(t *testing.T) {
	st := memory.New()
	srv := newTestServer(t, st)

	body, err := json.Marshal(map[string]any{
		"batch_id": "b-1",
		"items": []model.ParsedItem{
			{
				Brand:  "Apple",
				Model:  "iPhone 13 Pro",
				IMEI:   "359984989957537",
				Status: model.StatusReady,
			},
		},
	})
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/import/commit", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res model.CommitResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, 1, res.Summary.Created)
	assert.Equal(t, 0, res.Summary.Duplicates)
	assert.Equal(t, 1, st.Len())
}

func TestCommitEndpointRejectsEmptyItems(t *testing.T) {
	srv := newTestServer(t, memory.New())

	resp, err := http.Post(srv.URL+"/import/commit", "application/json", strings.NewReader(`{"items":[]}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSupplierParseEndpoint(t *testing.T) {
	srv := newTestServer(t, memory.New())

	text := "iPhone 13 Pro 128GB Grafite Seminovo (100%)\n" +
		"IMEI: 359984989957537\n" +
		"R$ 2.150,00\n" +
		"Garantia: 3 meses\n"
	body, err := json.Marshal(map[string]any{"text": text})
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/supplier/parse", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res struct {
		Devices []model.ParsedDevice `json:"devices"`
		Stats   model.ParseStats     `json:"stats"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))

	require.Len(t, res.Devices, 1)
	dev := res.Devices[0]
	assert.Equal(t, "359984989957537", dev.IMEI)
	assert.Equal(t, 100, dev.BatteryPct)
	assert.Equal(t, 3, dev.WarrantyMonths)
	require.NotNil(t, dev.Cost)
	assert.InDelta(t, 2150.0, *dev.Cost, 0.001)
	assert.Equal(t, 1, res.Stats.Valid)
}

func TestTemplateEndpoint(t *testing.T) {
	srv := newTestServer(t, memory.New())

	resp, err := http.Get(srv.URL + "/import/template")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "modelo_importacao.csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "Título,IMEI 1,Serial,% Bateria\n"))
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, memory.New())

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/import/preview", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
