// Package recibo gera o PDF da comanda no formato de bobina térmica de 80 mm.
package recibo

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"servico-restaurante/internal/dominio"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
)

const (
	larguraBobina = 80.0
	margem        = 4.0
	largura       = larguraBobina - 2*margem
	linha         = 4.5
	tamanhoQR     = 28.0
)

// Estabelecimento vai no cabeçalho do recibo.
type Estabelecimento struct {
	Nome     string
	CNPJ     string
	Endereco string
	Rodape   string
}

// GeradorPDF grava os recibos em Diretorio e devolve o caminho público
// (/recibos/<id>.pdf). O QR code aponta para a comanda em URLPublica.
type GeradorPDF struct {
	Diretorio       string
	URLPublica      string
	Estabelecimento Estabelecimento
}

func NovoGeradorPDF(diretorio, urlPublica string, est Estabelecimento) *GeradorPDF {
	return &GeradorPDF{
		Diretorio:       diretorio,
		URLPublica:      strings.TrimRight(urlPublica, "/"),
		Estabelecimento: est,
	}
}

func NomeArquivo(comandaID uuid.UUID) string {
	return comandaID.String() + ".pdf"
}

func (g *GeradorPDF) Gerar(ctx context.Context, comanda *dominio.Comanda) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(g.Diretorio, 0o755); err != nil {
		return "", fmt.Errorf("falha ao criar diretório de recibos: %w", err)
	}

	qr, err := qrcode.Encode(fmt.Sprintf("%s/api/comandas/%s", g.URLPublica, comanda.ID), qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("falha ao gerar QR code: %w", err)
	}

	pdf := g.montar(comanda, qr)
	if err := pdf.Error(); err != nil {
		return "", fmt.Errorf("falha ao montar PDF: %w", err)
	}

	nome := NomeArquivo(comanda.ID)
	if err := pdf.OutputFileAndClose(filepath.Join(g.Diretorio, nome)); err != nil {
		return "", fmt.Errorf("falha ao gravar PDF: %w", err)
	}
	return "/recibos/" + nome, nil
}

func (g *GeradorPDF) montar(c *dominio.Comanda, qr []byte) *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: larguraBobina, Ht: 297},
	})
	pdf.SetMargins(margem, margem, margem)
	pdf.SetAutoPageBreak(true, margem)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	texto := func(estilo string, tamanho float64, alinhamento, s string) {
		pdf.SetFont("Helvetica", estilo, tamanho)
		pdf.MultiCell(largura, linha, tr(s), "", alinhamento, false)
	}
	valor := func(rotulo string, v decimal.Decimal) {
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(largura/2, linha, tr(rotulo), "", 0, "L", false, 0, "")
		pdf.CellFormat(largura/2, linha, tr(moeda(v)), "", 1, "R", false, 0, "")
	}
	separador := func() {
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(largura, linha, strings.Repeat("-", 48), "", 1, "C", false, 0, "")
	}

	est := g.Estabelecimento
	if est.Nome != "" {
		texto("B", 11, "C", strings.ToUpper(est.Nome))
	}
	if est.CNPJ != "" {
		texto("", 7, "C", "CNPJ: "+est.CNPJ)
	}
	if est.Endereco != "" {
		texto("", 7, "C", est.Endereco)
	}
	pdf.Ln(2)

	texto("B", 9, "L", fmt.Sprintf("Comanda da Mesa: %d", c.NumeroMesa))
	texto("", 8, "L", "Finalização: "+c.DataFinalizacao.Format("02/01/2006 15:04"))
	separador()

	for i, p := range c.Pedidos {
		cab := fmt.Sprintf("Pedido %d", i+1)
		if p.NumeroAssento != nil {
			cab += fmt.Sprintf(" - Assento %d", *p.NumeroAssento)
		}
		if p.NomeCliente != nil && *p.NomeCliente != "" {
			cab += " (" + *p.NomeCliente + ")"
		}
		texto("B", 8, "L", cab)
		for _, it := range p.Itens {
			valor(fmt.Sprintf("%d x %s", it.Quantidade, it.Nome), it.Total)
		}
		separador()
	}

	valor("Subtotal", c.ValorTotal)
	switch c.TipoDesconto {
	case dominio.DescontoPorcentagem:
		valor(fmt.Sprintf("Desconto (%s%%)", c.ValorDesconto.StringFixed(2)), c.ValorTotal.Sub(c.TotalComDesconto))
	case dominio.DescontoValor:
		valor("Desconto", c.ValorTotal.Sub(c.TotalComDesconto))
	}
	if c.ValorTaxaServico.IsPositive() {
		valor("Taxa de serviço", c.ValorTaxaServico)
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(largura/2, linha+1, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(largura/2, linha+1, tr(moeda(c.TotalComDesconto.Add(c.ValorTaxaServico))), "", 1, "R", false, 0, "")

	texto("", 8, "L", "Forma de pagamento: "+string(c.FormaPagamento))
	if c.FormaPagamento == dominio.PagamentoDinheiro {
		valor("Valor pago", c.ValorPago)
		valor("Troco", c.Troco)
	}
	pdf.Ln(2)

	opcoes := fpdf.ImageOptions{ImageType: "PNG"}
	nomeQR := "qr-" + c.ID.String()
	pdf.RegisterImageOptionsReader(nomeQR, opcoes, bytes.NewReader(qr))
	pdf.ImageOptions(nomeQR, (larguraBobina-tamanhoQR)/2, pdf.GetY(), tamanhoQR, tamanhoQR, true, opcoes, 0, "")
	pdf.Ln(1)

	texto("", 8, "C", "Obrigado pela preferência!")
	if est.Rodape != "" {
		texto("", 7, "C", est.Rodape)
	}
	return pdf
}

func moeda(v decimal.Decimal) string {
	return "R$ " + strings.Replace(v.StringFixed(2), ".", ",", 1)
}
