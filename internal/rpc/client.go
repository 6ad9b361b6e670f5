package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client es el cliente JSON-over-HTTP para llamadas gateway → servicio
// interno. Cada llamada toma el contexto del request entrante: si el
// cliente externo se desconecta, la llamada downstream se cancela en vez de
// correr hasta el final sin observador.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient crea un cliente hacia un servicio interno.
// timeout acota cada llamada (parámetro de deployment, no hard-code del core);
// 0 usa 10s.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Call ejecuta method+path con body JSON opcional y decodifica la respuesta
// en result. Un fault del servicio vuelve como *Envelope (por return value,
// nunca por panic); errores de transporte vuelven como Internal para que el
// edge no cuelgue ni filtre detalle.
func (c *Client) Call(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &Envelope{Code: CodeInternal, Message: "rpc: request encoding failed"}
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return &Envelope{Code: CodeInternal, Message: "rpc: request build failed"}
	}
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeout, cancelación o red caída: fault Internal, sin retry acá.
		return &Envelope{Code: CodeInternal, Message: "rpc: upstream unavailable"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env Envelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil || env.Code == CodeOK {
			// Fault malformado: colapsa a Internal genérico.
			return &Envelope{Code: CodeInternal, Message: "rpc: malformed fault"}
		}
		return &env
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return &Envelope{Code: CodeInternal, Message: "rpc: response decoding failed"}
		}
	}
	return nil
}

// Get es azúcar para llamadas de lectura con query params.
func (c *Client) Get(ctx context.Context, path string, query url.Values, result any) error {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	return c.Call(ctx, http.MethodGet, path, nil, result)
}

// Post es azúcar para llamadas de escritura.
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.Call(ctx, http.MethodPost, path, body, result)
}
