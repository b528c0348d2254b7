package dominio

import "errors"

var (
	ErrNaoEncontrado = errors.New("recurso não encontrado")
	ErrValidacao     = errors.New("requisição inválida")
	ErrConflito      = errors.New("conflito de estado")
)

// Erro carrega a mensagem mostrada ao cliente e o tipo usado para escolher o
// status HTTP.
type Erro struct {
	Tipo     error
	Mensagem string
}

func (e *Erro) Error() string {
	return e.Mensagem
}

func (e *Erro) Unwrap() error {
	return e.Tipo
}

func NaoEncontrado(mensagem string) error {
	return &Erro{Tipo: ErrNaoEncontrado, Mensagem: mensagem}
}

func Validacao(mensagem string) error {
	return &Erro{Tipo: ErrValidacao, Mensagem: mensagem}
}

func Conflito(mensagem string) error {
	return &Erro{Tipo: ErrConflito, Mensagem: mensagem}
}
