package ui

import "sync/atomic"

// Sequence token de secuencia monótono para descartar respuestas obsoletas:
// el emisor toma Next() antes de la petición y aplica el resultado solo si
// Current(token) sigue siendo cierto cuando la respuesta llega.
type Sequence struct {
	n atomic.Uint64
}

// Next reserva el siguiente token.
func (s *Sequence) Next() uint64 {
	return s.n.Add(1)
}

// Current indica si token sigue siendo el más reciente emitido.
func (s *Sequence) Current(token uint64) bool {
	return s.n.Load() == token
}
