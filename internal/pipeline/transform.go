package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/ocean-globe/internal/domain"
)

// GlobeTransformer implements Transformer by classifying each reading and
// drawing the next fact for its region from a FactCycler it owns.
type GlobeTransformer struct {
	cycler *domain.FactCycler
	logger *slog.Logger
}

// NewTransformer creates a GlobeTransformer around cycler. The cycler's cursors
// advance with every call, so one transformer should serve one run.
func NewTransformer(cycler *domain.FactCycler, logger *slog.Logger) *GlobeTransformer {
	return &GlobeTransformer{
		cycler: cycler,
		logger: logger,
	}
}

func (t *GlobeTransformer) Transform(_ context.Context, index int, reading domain.Reading) (domain.AnnotatedReading, error) {
	out, err := domain.Annotate(index, reading, t.cycler)
	if err != nil {
		return domain.AnnotatedReading{}, err
	}
	t.logger.Debug("reading annotated", "index", index, "region", out.Region, "animal", out.Fact.Animal)
	return out, nil
}
