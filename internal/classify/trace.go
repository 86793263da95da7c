package classify

import (
	"github.com/AdrianCGon/centeno-api/internal/comision"
	"github.com/AdrianCGon/centeno-api/internal/logger"
)

type logTracer struct {
	log *logger.Logger
}

// NewLogTracer returns a Tracer that writes every decision at debug level.
func NewLogTracer(log *logger.Logger) Tracer {
	return logTracer{log: log.WithModule("classify")}
}

func (t logTracer) TraceDecision(d Decision) {
	t.log.Debug("Cell classified",
		"position", d.Position,
		"value", d.Value,
		"categories", categoryNames(d.Categories))
}

func (t logTracer) TraceMissing(code string, missing []comision.Category) {
	t.log.Debug("Record has unresolved fields",
		"section_code", code,
		"missing", categoryNames(missing))
}

func categoryNames(cats []comision.Category) []string {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.String()
	}
	return names
}
