package assistant

import (
	"context"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/intent"
)

// ImportStatement convierte un extracto bancario en registros SAVE_TRANSACTION para
// revisión. No escribe nada: los registros aprobados se aplican con ApplyBatch.
func (a *Assistant) ImportStatement(ctx context.Context, raw []byte) ([]intent.Record, error) {
	if len(raw) == 0 {
		return nil, domain.NewValidationError("file", "vacío")
	}
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	records, err := a.cfg.Parser.ParseStatement(ctx, raw)
	if err != nil {
		a.cfg.Logger.Warn().Err(err).Int("bytes", len(raw)).Msg("importación de extracto falló")
		return nil, err
	}
	out := make([]intent.Record, 0, len(records))
	for _, r := range records {
		if r.Intent == "" {
			r.Intent = intent.SaveTransaction
		}
		if r.Intent != intent.SaveTransaction {
			continue
		}
		out = append(out, r)
	}
	a.cfg.Logger.Info().Int("records", len(out)).Int("discarded", len(records)-len(out)).Msg("extracto procesado")
	return out, nil
}

// ApplyBatch aplica registros revisados; cada fallo es local a su registro.
func (a *Assistant) ApplyBatch(ctx context.Context, records []intent.Record) BatchResult {
	res := a.cfg.Dispatcher.ApplyBatch(ctx, records)
	a.cfg.Logger.Info().
		Int("success", res.SuccessCount).
		Int("errors", res.ErrorCount).
		Msg("importación por lotes")
	return res
}
