package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	requestIDHeader = "X-Request-Id"
	pathPrefix      = "/rpc/"
)

// Request es una llamada a un metodo remoto.
type Request struct {
	RequestID string
	Method    string
	Payload   any
}

func NewRequest(method string, payload any) *Request {
	return &Request{
		RequestID: ulid.Make().String(),
		Method:    method,
		Payload:   payload,
	}
}

type Client struct {
	httpClient *http.Client
	buffers    sync.Pool
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		buffers: sync.Pool{
			New: func() any { return new(bytes.Buffer) },
		},
	}
}

// Send envia la peticion en segundo plano e invoca el callback exactamente una vez.
func (c *Client) Send(ctx context.Context, addr string, req *Request, cb ResponseCallback) {
	once := newOnceCallback(cb)
	go c.send(ctx, addr, req, once)
}

// Call es la version sincrona: decodifica la respuesta en out (si no es nil).
func (c *Client) Call(ctx context.Context, addr string, req *Request, out any) error {
	done := make(chan error, 1)
	c.Send(ctx, addr, req, CallbackFuncs{
		Success: func(resp *Response) {
			if out == nil {
				done <- nil
				return
			}
			done <- resp.Decode(out)
		},
		Failure: func(err error) { done <- err },
	})
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) send(ctx context.Context, addr string, req *Request, cb ResponseCallback) {
	payload, err := json.Marshal(req.Payload)
	if err != nil {
		cb.OnFailure(fmt.Errorf("no se pudo serializar %s: %w", req.Method, err))
		return
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint(addr, req.Method), bytes.NewReader(payload))
	if err != nil {
		cb.OnFailure(err)
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(requestIDHeader, req.RequestID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		cb.OnFailure(fmt.Errorf("no se pudo conectar con %s: %w", addr, err))
		return
	}
	defer resp.Body.Close()

	buf := c.buffers.Get().(*bytes.Buffer)
	buf.Reset()
	defer c.buffers.Put(buf)

	if _, err := io.Copy(buf, resp.Body); err != nil {
		cb.OnFailure(fmt.Errorf("error leyendo respuesta de %s: %w", addr, err))
		return
	}
	if resp.StatusCode != http.StatusOK {
		cb.OnFailure(&StatusError{Method: req.Method, Code: resp.StatusCode, Message: strings.TrimSpace(buf.String())})
		return
	}

	cb.OnSuccess(&Response{RequestID: req.RequestID, Body: buf.Bytes()})
}

func endpoint(addr, method string) string {
	if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
		addr = "http://" + addr
	}
	return strings.TrimSuffix(addr, "/") + pathPrefix + method
}

// StatusError es un error devuelto por el servidor remoto.
type StatusError struct {
	Method  string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s devolvio status %d: %s", e.Method, e.Code, e.Message)
}
