// Package rpc es el transporte JSON sobre HTTP entre clientes, shuffle servers y coordinador.
package rpc

import (
	"encoding/json"
	"sync"
)

// Response es la respuesta exitosa de un servidor.
type Response struct {
	RequestID string
	Body      []byte // valido solo durante OnSuccess
}

// Decode deserializa el cuerpo; el resultado no comparte memoria con Body.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// ResponseCallback recibe exactamente uno de los dos resultados, una sola vez.
type ResponseCallback interface {
	// OnSuccess recibe la respuesta serializada. Al volver, Body se recicla:
	// hay que copiar su contenido si se quiere usar despues.
	OnSuccess(resp *Response)

	// OnFailure recibe el error del servidor o del lado cliente.
	OnFailure(err error)
}

// CallbackFuncs adapta dos funciones a ResponseCallback.
type CallbackFuncs struct {
	Success func(resp *Response)
	Failure func(err error)
}

func (c CallbackFuncs) OnSuccess(resp *Response) {
	if c.Success != nil {
		c.Success(resp)
	}
}

func (c CallbackFuncs) OnFailure(err error) {
	if c.Failure != nil {
		c.Failure(err)
	}
}

// onceCallback garantiza que solo uno de los dos metodos se invoca, y una vez.
type onceCallback struct {
	once sync.Once
	cb   ResponseCallback
}

func newOnceCallback(cb ResponseCallback) *onceCallback {
	return &onceCallback{cb: cb}
}

func (o *onceCallback) OnSuccess(resp *Response) {
	o.once.Do(func() { o.cb.OnSuccess(resp) })
}

func (o *onceCallback) OnFailure(err error) {
	o.once.Do(func() { o.cb.OnFailure(err) })
}
