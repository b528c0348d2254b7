package servico

import (
	"context"
	"fmt"
	"strings"

	"servico-restaurante/internal/dominio"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CadastroServico mantém ambientes e produtos.
type CadastroServico struct {
	armazem Armazem
}

func NovoCadastroServico(armazem Armazem) *CadastroServico {
	return &CadastroServico{armazem: armazem}
}

func (s *CadastroServico) CriarAmbiente(ctx context.Context, nome string, limitePessoas int) (*dominio.Ambiente, error) {
	ambiente := &dominio.Ambiente{ID: uuid.New(), Nome: strings.TrimSpace(nome), LimitePessoas: limitePessoas}
	if err := ambiente.Validar(); err != nil {
		return nil, err
	}
	if err := s.armazem.Repositorios().Ambientes.Criar(ctx, ambiente); err != nil {
		return nil, err
	}
	return ambiente, nil
}

func (s *CadastroServico) ListarAmbientes(ctx context.Context) ([]dominio.Ambiente, error) {
	return s.armazem.Repositorios().Ambientes.Listar(ctx)
}

func (s *CadastroServico) AtualizarAmbiente(ctx context.Context, id uuid.UUID, nome *string, limitePessoas *int) (*dominio.Ambiente, error) {
	repos := s.armazem.Repositorios()
	ambiente, err := repos.Ambientes.BuscarPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if nome != nil {
		ambiente.Nome = strings.TrimSpace(*nome)
	}
	if limitePessoas != nil {
		ambiente.LimitePessoas = *limitePessoas
	}
	if err := ambiente.Validar(); err != nil {
		return nil, err
	}
	if err := repos.Ambientes.Salvar(ctx, ambiente); err != nil {
		return nil, err
	}
	return ambiente, nil
}

// ExcluirAmbiente recusa ambientes que ainda têm mesas.
func (s *CadastroServico) ExcluirAmbiente(ctx context.Context, id uuid.UUID) error {
	return s.armazem.Transacao(ctx, func(r Repositorios) error {
		if _, err := r.Ambientes.BuscarPorID(ctx, id); err != nil {
			return err
		}
		_, total, err := r.Mesas.Listar(ctx, FiltroMesas{AmbienteID: &id, Pagina: 1, Limite: 1})
		if err != nil {
			return err
		}
		if total > 0 {
			return dominio.Conflito("Ambiente possui mesas cadastradas.")
		}
		return r.Ambientes.Excluir(ctx, id)
	})
}

func (s *CadastroServico) CriarProduto(ctx context.Context, nome string, preco decimal.Decimal, estoque int) (*dominio.Produto, error) {
	produto := &dominio.Produto{
		ID:                uuid.New(),
		Nome:              strings.TrimSpace(nome),
		Preco:             dominio.Arredondar(preco),
		QuantidadeEstoque: estoque,
		Ativo:             true,
	}
	if err := produto.Validar(); err != nil {
		return nil, err
	}
	if err := s.armazem.Repositorios().Produtos.Criar(ctx, produto); err != nil {
		return nil, fmt.Errorf("falha ao criar produto: %w", err)
	}
	return produto, nil
}

func (s *CadastroServico) ListarProdutos(ctx context.Context) ([]dominio.Produto, error) {
	return s.armazem.Repositorios().Produtos.Listar(ctx)
}

func (s *CadastroServico) BuscarProduto(ctx context.Context, id uuid.UUID) (*dominio.Produto, error) {
	return s.armazem.Repositorios().Produtos.BuscarPorID(ctx, id)
}
