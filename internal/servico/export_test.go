package servico

import "time"

func (s *FilaServico) DefinirRelogio(f func() time.Time)       { s.agora = f }
func (s *MesaServico) DefinirRelogio(f func() time.Time)       { s.agora = f }
func (s *LiquidacaoServico) DefinirRelogio(f func() time.Time) { s.agora = f }
func (s *PedidoServico) DefinirRelogio(f func() time.Time)     { s.agora = f }
